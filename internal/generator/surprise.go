package generator

import (
	"encoding/binary"
	"hash/fnv"
)

// surpriseValue maps (seed, fileID) to a stable value in [0, 1). It is
// a pure function of its inputs, so the surprise contribution and the
// seeded tie-break are independent of candidate evaluation order: the
// same (request, strategy, index, seed) always reproduces the same
// playlist, parallel or not.
func surpriseValue(seed, fileID int64) float64 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], uint64(seed))
	binary.LittleEndian.PutUint64(buf[8:], uint64(fileID))

	h := fnv.New64a()
	h.Write(buf[:]) //nolint:errcheck // fnv never errors
	return float64(h.Sum64()>>11) / float64(1<<53)
}
