package probe

import (
	"encoding/binary"
	"fmt"

	"github.com/tuneinsight/lattigo/v4/utils"
)

// samplePairs draws n operand pairs uniformly from [0, limit)² using a
// keyed PRNG, so the same seed always probes the same pairs.
func samplePairs(seed string, n int, limit int64) ([]pair, error) {
	prng, err := utils.NewKeyedPRNG([]byte(seed))
	if err != nil {
		return nil, fmt.Errorf("probe: seed PRNG: %w", err)
	}
	out := make([]pair, n)
	buf := make([]byte, 16)
	for k := range out {
		if _, err := prng.Read(buf); err != nil {
			return nil, fmt.Errorf("probe: read PRNG: %w", err)
		}
		out[k] = pair{
			i: uniform(binary.LittleEndian.Uint64(buf[:8]), limit),
			j: uniform(binary.LittleEndian.Uint64(buf[8:]), limit),
		}
	}
	return out, nil
}

// uniform maps a random word into [0, limit). The modulo bias is below
// limit/2^64, far under the resolution of an error-rate estimate.
func uniform(w uint64, limit int64) int64 {
	return int64(w % uint64(limit))
}
