// Package sqlite provides a SearchIndex backed by SQLite: FTS5 serves
// keyword queries, embeddings are scanned brute-force for vector
// queries, and hybrid mode fuses the two rankings with reciprocal rank
// fusion. Corpora here are per-user document sets, small enough that a
// linear embedding scan beats the operational cost of a vector server.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/binary"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/praksa-labs/wiedza-cli/internal/adapters/driven/search/sqlite/migrations"
	"github.com/praksa-labs/wiedza-cli/internal/core/domain"
	"github.com/praksa-labs/wiedza-cli/internal/core/ports/driven"
)

// rrfConstant dampens the contribution of low ranks in hybrid fusion.
// 60 is the value from the original RRF paper and works well unchanged.
const rrfConstant = 60

// Ensure Index implements the interface.
var _ driven.SearchIndex = (*Index)(nil)

// Index is the SQLite-backed chunk index.
type Index struct {
	db   *sql.DB
	path string
}

// NewIndex creates the index at the specified data directory.
// If dataDir is empty, defaults to ~/.wiedza/data.
func NewIndex(dataDir string) (*Index, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".wiedza", "data")
	}

	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "index.db")

	// WAL mode keeps the watch-mode writer from blocking ask readers.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	idx := &Index{db: db, path: dbPath}
	if err := idx.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return idx, nil
}

// Close closes the database connection.
func (x *Index) Close() error {
	return x.db.Close()
}

// Path returns the database file path.
func (x *Index) Path() string {
	return x.path
}

// migrate runs all pending migrations.
func (x *Index) migrate(fsys embed.FS) error {
	_, err := x.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := x.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := x.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := x.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}
	return nil
}

// Upsert writes chunks, replacing any rows with the same IDs.
func (x *Index) Upsert(ctx context.Context, chunks []domain.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	tx, err := x.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (id, doc_id, content, position, total_chunks, content_hash, file, source, embedding)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			doc_id = excluded.doc_id,
			content = excluded.content,
			position = excluded.position,
			total_chunks = excluded.total_chunks,
			content_hash = excluded.content_hash,
			file = excluded.file,
			source = excluded.source,
			embedding = excluded.embedding
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, chunk := range chunks {
		if _, err := stmt.ExecContext(ctx, chunk.ID, chunk.DocID, chunk.Content,
			chunk.Position, chunk.TotalChunks, chunk.ContentHash, chunk.File,
			chunk.Source, float32SliceToBytes(chunk.Embedding)); err != nil {
			return fmt.Errorf("saving chunk %s: %w", chunk.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// DeleteByDoc removes every chunk whose DocID matches.
func (x *Index) DeleteByDoc(ctx context.Context, docID string) (int, error) {
	res, err := x.db.ExecContext(ctx, "DELETE FROM chunks WHERE doc_id = ?", docID)
	if err != nil {
		return 0, fmt.Errorf("deleting chunks for %s: %w", docID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting deleted chunks: %w", err)
	}
	return int(n), nil
}

// Search returns up to k chunks ranked best-first.
func (x *Index) Search(
	ctx context.Context,
	query string,
	vector []float32,
	k int,
	mode driven.SearchMode,
) ([]domain.ScoredChunk, error) {
	if k <= 0 {
		return nil, nil
	}

	switch mode {
	case driven.SearchModeText:
		return x.searchText(ctx, query, k)
	case driven.SearchModeVector:
		return x.searchVector(ctx, vector, k)
	case driven.SearchModeHybrid:
		return x.searchHybrid(ctx, query, vector, k)
	default:
		return nil, fmt.Errorf("%w: unknown search mode %q", domain.ErrInvalidInput, mode)
	}
}

// searchText runs a BM25-ranked FTS5 query.
func (x *Index) searchText(ctx context.Context, query string, k int) ([]domain.ScoredChunk, error) {
	match := ftsMatchExpr(query)
	if match == "" {
		return nil, nil
	}

	rows, err := x.db.QueryContext(ctx, `
		SELECT c.id, c.doc_id, c.content, c.position, c.total_chunks,
		       c.content_hash, c.file, c.source, c.embedding,
		       bm25(chunks_fts) AS rank
		FROM chunks_fts
		JOIN chunks c ON c.rowid = chunks_fts.rowid
		WHERE chunks_fts MATCH ?
		ORDER BY rank
		LIMIT ?
	`, match, k)
	if err != nil {
		return nil, fmt.Errorf("querying fts: %w", err)
	}
	defer rows.Close()

	var results []domain.ScoredChunk
	for rows.Next() {
		var chunk domain.Chunk
		var blob []byte
		var rank float64
		if err := rows.Scan(&chunk.ID, &chunk.DocID, &chunk.Content, &chunk.Position,
			&chunk.TotalChunks, &chunk.ContentHash, &chunk.File, &chunk.Source,
			&blob, &rank); err != nil {
			return nil, fmt.Errorf("scanning fts row: %w", err)
		}
		chunk.Embedding = bytesToFloat32Slice(blob)
		// bm25() is smaller-is-better; negate so callers always sort
		// descending.
		results = append(results, domain.ScoredChunk{Chunk: chunk, Score: -rank})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating fts rows: %w", err)
	}
	return results, nil
}

// searchVector scans all embedded chunks and ranks by cosine similarity.
func (x *Index) searchVector(ctx context.Context, vector []float32, k int) ([]domain.ScoredChunk, error) {
	if len(vector) == 0 {
		return nil, fmt.Errorf("%w: vector mode needs a query embedding", domain.ErrInvalidInput)
	}

	rows, err := x.db.QueryContext(ctx, `
		SELECT id, doc_id, content, position, total_chunks,
		       content_hash, file, source, embedding
		FROM chunks
		WHERE embedding IS NOT NULL
	`)
	if err != nil {
		return nil, fmt.Errorf("querying embeddings: %w", err)
	}
	defer rows.Close()

	var results []domain.ScoredChunk
	for rows.Next() {
		var chunk domain.Chunk
		var blob []byte
		if err := rows.Scan(&chunk.ID, &chunk.DocID, &chunk.Content, &chunk.Position,
			&chunk.TotalChunks, &chunk.ContentHash, &chunk.File, &chunk.Source,
			&blob); err != nil {
			return nil, fmt.Errorf("scanning chunk row: %w", err)
		}
		chunk.Embedding = bytesToFloat32Slice(blob)
		if len(chunk.Embedding) != len(vector) {
			continue
		}
		results = append(results, domain.ScoredChunk{
			Chunk: chunk,
			Score: cosineSimilarity(vector, chunk.Embedding),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunk rows: %w", err)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

// searchHybrid fuses keyword and vector rankings with RRF. The two score
// scales never meet, so fusion works on ranks alone. Missing vectors
// degrade to a pure keyword result.
func (x *Index) searchHybrid(ctx context.Context, query string, vector []float32, k int) ([]domain.ScoredChunk, error) {
	textResults, err := x.searchText(ctx, query, k)
	if err != nil {
		return nil, err
	}
	if len(vector) == 0 {
		return textResults, nil
	}
	vectorResults, err := x.searchVector(ctx, vector, k)
	if err != nil {
		return nil, err
	}

	type fused struct {
		chunk domain.Chunk
		score float64
	}
	byID := make(map[string]*fused)
	accumulate := func(ranked []domain.ScoredChunk) {
		for rank, sc := range ranked {
			f, ok := byID[sc.Chunk.ID]
			if !ok {
				f = &fused{chunk: sc.Chunk}
				byID[sc.Chunk.ID] = f
			}
			f.score += 1.0 / float64(rrfConstant+rank+1)
		}
	}
	accumulate(textResults)
	accumulate(vectorResults)

	results := make([]domain.ScoredChunk, 0, len(byID))
	for _, f := range byID {
		results = append(results, domain.ScoredChunk{Chunk: f.chunk, Score: f.score})
	}
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Chunk.ID < results[j].Chunk.ID
	})
	if len(results) > k {
		results = results[:k]
	}
	return results, nil
}

// ftsMatchExpr turns free text into a safe FTS5 match expression: each
// token is quoted so query punctuation cannot reach the FTS parser.
func ftsMatchExpr(query string) string {
	tokens := strings.FieldsFunc(query, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	if len(tokens) == 0 {
		return ""
	}
	quoted := make([]string, len(tokens))
	for i, tok := range tokens {
		quoted[i] = `"` + tok + `"`
	}
	return strings.Join(quoted, " OR ")
}

// cosineSimilarity computes the cosine of the angle between two vectors
// of equal length.
func cosineSimilarity(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// float32SliceToBytes converts a []float32 to a byte slice for storage.
func float32SliceToBytes(floats []float32) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}
