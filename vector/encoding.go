package vector

import (
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// EncodeEmbedding encodes a slice of float32 values into a BLOB representation
// suitable for storage in SQLite: a little-endian sequence of IEEE 754
// float32 values without a length prefix.
func EncodeEmbedding(vec []float32) ([]byte, error) {
	if len(vec) == 0 {
		return nil, nil
	}
	b := make([]byte, len(vec)*4)
	for i, v := range vec {
		binary.LittleEndian.PutUint32(b[i*4:], math.Float32bits(v))
	}
	return b, nil
}

// DecodeEmbedding decodes a BLOB produced by EncodeEmbedding back into a
// slice of float32 values.
func DecodeEmbedding(b []byte) ([]float32, error) {
	if len(b) == 0 {
		return nil, nil
	}
	if len(b)%4 != 0 {
		return nil, fmt.Errorf("vector: invalid embedding blob length %d (not multiple of 4)", len(b))
	}
	vec := make([]float32, len(b)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return vec, nil
}

// ParseEmbedding parses a textual embedding: a JSON array ("[1, 2.5]"), a
// comma separated list ("1,2.5") or a base64-encoded embedding BLOB.
func ParseEmbedding(raw string) ([]float32, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, fmt.Errorf("vector: empty embedding text")
	}
	if strings.HasPrefix(s, "[") {
		var floats []float64
		if err := json.Unmarshal([]byte(s), &floats); err != nil {
			return nil, fmt.Errorf("vector: invalid JSON embedding: %w", err)
		}
		vec := make([]float32, len(floats))
		for i, f := range floats {
			vec[i] = float32(f)
		}
		return vec, nil
	}
	if !strings.Contains(s, ",") {
		if b, err := base64.StdEncoding.DecodeString(s); err == nil {
			if vec, err := DecodeEmbedding(b); err == nil && len(vec) > 0 {
				return vec, nil
			}
		}
	}
	parts := strings.Split(s, ",")
	vec := make([]float32, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		f, err := strconv.ParseFloat(p, 32)
		if err != nil {
			return nil, fmt.Errorf("vector: invalid embedding value %q: %w", p, err)
		}
		vec = append(vec, float32(f))
	}
	if len(vec) == 0 {
		return nil, fmt.Errorf("vector: no values in embedding %q", raw)
	}
	return vec, nil
}
