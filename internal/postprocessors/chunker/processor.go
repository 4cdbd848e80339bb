// Package chunker splits normalised documents into overlapping,
// size-bounded passages and stamps each with positional and content
// metadata. The split runs in two stages: a structural pass that prefers
// semantic boundaries (headings, list items, paragraphs), then a
// token-count pass that bounds what a single chunk can feed the model
// regardless of where the structural pass cut.
package chunker

import "github.com/praksa-labs/wiedza-cli/internal/core/domain"

// Default split parameters, matched to the retrieval context budget.
const (
	DefaultChunkSize    = 2000
	DefaultChunkOverlap = 200
	DefaultTokenSize    = 700
	DefaultTokenOverlap = 150
)

// Processor turns documents into chunks.
type Processor struct {
	chunkSize    int
	chunkOverlap int
	tokenSize    int
	tokenOverlap int
}

// Option configures the processor.
type Option func(*Processor)

// WithChunkSize sets the structural-stage chunk size in characters.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		if size > 0 {
			p.chunkSize = size
		}
	}
}

// WithChunkOverlap sets the structural-stage overlap in characters.
func WithChunkOverlap(overlap int) Option {
	return func(p *Processor) {
		if overlap >= 0 {
			p.chunkOverlap = overlap
		}
	}
}

// WithTokenSize sets the token-stage chunk size.
func WithTokenSize(size int) Option {
	return func(p *Processor) {
		if size > 0 {
			p.tokenSize = size
		}
	}
}

// WithTokenOverlap sets the token-stage overlap.
func WithTokenOverlap(overlap int) Option {
	return func(p *Processor) {
		if overlap >= 0 {
			p.tokenOverlap = overlap
		}
	}
}

// New creates a processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{
		chunkSize:    DefaultChunkSize,
		chunkOverlap: DefaultChunkOverlap,
		tokenSize:    DefaultTokenSize,
		tokenOverlap: DefaultTokenOverlap,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.chunkOverlap >= p.chunkSize {
		p.chunkOverlap = p.chunkSize / 4
	}
	if p.tokenOverlap >= p.tokenSize {
		p.tokenOverlap = p.tokenSize / 4
	}
	return p
}

// Process chunks a batch of documents. Output order follows input
// document order, sub-ordered by position within each document.
// Positions are assigned over the whole batch; per-document ingestion
// always passes a single document, which keeps positions dense per
// doc_id. Chunking never fails for well-formed input.
func (p *Processor) Process(docs []domain.Document) []domain.Chunk {
	var chunks []domain.Chunk
	position := 0

	for _, doc := range docs {
		for _, text := range p.split(doc.Content) {
			hash := ContentHash(text)
			chunks = append(chunks, domain.Chunk{
				ID:          ChunkID(doc.File, hash, position),
				DocID:       doc.ID,
				Content:     text,
				Position:    position,
				ContentHash: hash,
				File:        doc.File,
				Source:      doc.Source,
			})
			position++
		}
	}

	for i := range chunks {
		chunks[i].TotalChunks = len(chunks)
	}
	return chunks
}

// split runs both stages over one document's content.
func (p *Processor) split(content string) []string {
	if content == "" {
		return nil
	}
	var out []string
	for _, stage1 := range splitStructural(content, p.chunkSize, p.chunkOverlap) {
		out = append(out, splitTokens(stage1, p.tokenSize, p.tokenOverlap)...)
	}
	return out
}
