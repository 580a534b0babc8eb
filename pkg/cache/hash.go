package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Hash computes the SHA-256 content hash of the input data as a
// 64-character hex string. Graph hashes are computed over the canonical
// JSON serialization.
func Hash(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// AnalysisKey builds the cache key for one analysis of one graph. params
// carries analysis-specific inputs (the source node, for example) and is
// hashed structurally, never formatted into the key directly.
func AnalysisKey(graphHash, kind string, params ...any) string {
	data, _ := json.Marshal(params)
	h := sha256.Sum256(data)
	return fmt.Sprintf("analysis:%s:%s:%s", kind, graphHash, hex.EncodeToString(h[:]))
}
