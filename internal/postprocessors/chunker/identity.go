package chunker

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"strconv"
)

// ChunkID derives the stable identifier for a chunk from its display
// name, content hash and position. The ID is deterministic, so repeated
// ingestion of identical content upserts the same row, while any change
// to text, file identity or position produces a different ID.
//
// The raw URL-safe base64 alphabet keeps the ID usable as a storage key
// without padding or escaping concerns.
func ChunkID(file, contentHash string, position int) string {
	h := sha256.New()
	h.Write([]byte(file))
	h.Write([]byte{0})
	h.Write([]byte(contentHash))
	h.Write([]byte{0})
	h.Write([]byte(strconv.Itoa(position)))
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}

// ContentHash returns the sha256 hex digest of the chunk text.
func ContentHash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
