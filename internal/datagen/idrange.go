package datagen

import "math/rand"

// IDRange is the contiguous block of surrogate keys a generator produced.
// Downstream generators sample foreign keys from it instead of assuming
// keys start at 1, which is what makes append runs safe.
type IDRange struct {
	First int
	Last  int
}

// NewIDRange returns the range for count keys starting after offset, so a
// fresh run (offset 0) yields [1, count].
func NewIDRange(offset, count int) IDRange {
	if count <= 0 {
		return IDRange{}
	}
	return IDRange{First: offset + 1, Last: offset + count}
}

func (r IDRange) Count() int {
	if r.Empty() {
		return 0
	}
	return r.Last - r.First + 1
}

func (r IDRange) Empty() bool {
	return r.First <= 0 || r.Last < r.First
}

func (r IDRange) Contains(id int) bool {
	return !r.Empty() && id >= r.First && id <= r.Last
}

// Random draws one key uniformly, with replacement across calls.
func (r IDRange) Random(rng *rand.Rand) int {
	return r.First + rng.Intn(r.Count())
}
