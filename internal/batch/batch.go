// Package batch splits the manifest into contiguous, sequentially executed
// batches. Batches are checkpoints: the run pauses between them and a
// cancelled run stops at a batch boundary.
package batch

import "clipbatch/internal/manifest"

const (
	smallRunLimit  = 10
	mediumRunLimit = 30
	mediumSize     = 10
	largeSize      = 20
)

// Batch is one contiguous slice of the item sequence. Start is inclusive and
// End exclusive; Index is zero-based.
type Batch struct {
	Index int
	Start int
	End   int
	Items []manifest.Item
}

// Size returns the batch size policy for total items: all of them when there
// are at most 10, 10 when there are at most 30, and 20 beyond that.
func Size(total int) int {
	switch {
	case total <= 0:
		return 0
	case total <= smallRunLimit:
		return total
	case total <= mediumRunLimit:
		return mediumSize
	default:
		return largeSize
	}
}

// Count returns the number of batches Partition produces for total items.
func Count(total int) int {
	size := Size(total)
	if size == 0 {
		return 0
	}
	return (total + size - 1) / size
}

// Partition splits items into Size(len(items)) sized batches in order. The
// last batch may be shorter.
func Partition(items []manifest.Item) []Batch {
	total := len(items)
	size := Size(total)
	if size == 0 {
		return nil
	}
	batches := make([]Batch, 0, Count(total))
	for start := 0; start < total; start += size {
		end := min(start+size, total)
		batches = append(batches, Batch{
			Index: len(batches),
			Start: start,
			End:   end,
			Items: items[start:end:end],
		})
	}
	return batches
}
