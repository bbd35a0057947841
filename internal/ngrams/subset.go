package ngrams

import (
	"math"
	"strconv"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"
)

// Subset is a set of language ids to retain. The zero value is an empty set.
type Subset struct {
	bits *roaring.Bitmap
}

// NewSubset builds a subset from ids. Negative ids and ids beyond uint32 are
// ignored since no catalog entry can carry them.
func NewSubset(ids ...int) Subset {
	bits := roaring.New()
	for _, id := range ids {
		if id < 0 || uint64(id) > math.MaxUint32 {
			continue
		}
		bits.Add(uint32(id))
	}
	return Subset{bits: bits}
}

// Contains reports whether id is part of the subset.
func (s Subset) Contains(id int) bool {
	if s.bits == nil || id < 0 || uint64(id) > math.MaxUint32 {
		return false
	}
	return s.bits.Contains(uint32(id))
}

// Len returns the number of distinct ids.
func (s Subset) Len() int {
	if s.bits == nil {
		return 0
	}
	return int(s.bits.GetCardinality())
}

// Empty reports whether the subset has no ids.
func (s Subset) Empty() bool {
	return s.Len() == 0
}

// IDs returns the ids in ascending order.
func (s Subset) IDs() []int {
	if s.bits == nil {
		return nil
	}
	raw := s.bits.ToArray()
	ids := make([]int, len(raw))
	for i, id := range raw {
		ids[i] = int(id)
	}
	return ids
}

func (s Subset) String() string {
	ids := s.IDs()
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}
