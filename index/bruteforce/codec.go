package bruteforce

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// Encode stores: dim(uint32), n(uint32), then for each item:
// idLen(uint32), id bytes, vec(float32[dim]). All vectors must share one
// dimension.
func Encode(ids []string, vecs [][]float32) ([]byte, error) {
	if len(ids) != len(vecs) {
		return nil, fmt.Errorf("bruteforce: ids and vectors length mismatch: %d != %d", len(ids), len(vecs))
	}
	if len(ids) == 0 {
		return make([]byte, 8), nil
	}
	dim := len(vecs[0])
	size := 8
	for _, id := range ids {
		size += 4 + len(id) + 4*dim
	}
	out := make([]byte, 0, size)
	out = binary.LittleEndian.AppendUint32(out, uint32(dim))
	out = binary.LittleEndian.AppendUint32(out, uint32(len(ids)))
	for idx, id := range ids {
		vec := vecs[idx]
		if len(vec) != dim {
			return nil, fmt.Errorf("bruteforce: inconsistent vector dims %d vs %d", len(vec), dim)
		}
		out = binary.LittleEndian.AppendUint32(out, uint32(len(id)))
		out = append(out, id...)
		for _, v := range vec {
			out = binary.LittleEndian.AppendUint32(out, math.Float32bits(v))
		}
	}
	return out, nil
}

// Decode parses the output of Encode.
func Decode(data []byte) ([]string, [][]float32, error) {
	if len(data) < 8 {
		return nil, nil, errors.New("bruteforce: invalid data")
	}
	off := 0
	getU32 := func() uint32 { v := binary.LittleEndian.Uint32(data[off : off+4]); off += 4; return v }
	dim := int(getU32())
	n := int(getU32())
	if n == 0 {
		return nil, nil, nil
	}
	ids := make([]string, n)
	vecs := make([][]float32, n)
	for idx := 0; idx < n; idx++ {
		if off+4 > len(data) {
			return nil, nil, errors.New("bruteforce: truncated")
		}
		idlen := int(getU32())
		if off+idlen > len(data) {
			return nil, nil, errors.New("bruteforce: truncated id")
		}
		ids[idx] = string(data[off : off+idlen])
		off += idlen
		if off+4*dim > len(data) {
			return nil, nil, errors.New("bruteforce: truncated vec")
		}
		vec := make([]float32, dim)
		for j := range vec {
			vec[j] = math.Float32frombits(getU32())
		}
		vecs[idx] = vec
	}
	return ids, vecs, nil
}
