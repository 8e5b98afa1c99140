package rating

import (
	"cmp"
	"container/heap"
	"fmt"
	"math"
	"slices"
)

// minHeap implements heap.Interface over point contributions, smallest on top.
type minHeap []float64

func (h minHeap) Len() int           { return len(h) }
func (h minHeap) Less(i, j int) bool { return h[i] < h[j] }
func (h minHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *minHeap) Push(x any) { *h = append(*h, x.(float64)) }

func (h *minHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// PlayerRecord keeps a player's best RecordLength contributions; Rating is
// their sum.
type PlayerRecord struct {
	ID     PlayerID
	Rating float64

	limit  int
	points minHeap
}

// NewPlayerRecord returns an empty record that retains up to recordLength results.
func NewPlayerRecord(id PlayerID, recordLength int) *PlayerRecord {
	return &PlayerRecord{
		ID:     id,
		limit:  recordLength,
		points: make(minHeap, 0, recordLength+1),
	}
}

// AddResult records a contribution. Once the record is full the smallest
// retained value is evicted. It reports whether the rating changed, and the
// rating afterwards.
func (r *PlayerRecord) AddResult(points float64) (bool, float64) {
	if math.IsNaN(points) || math.IsInf(points, 0) {
		panic(fmt.Sprintf("rating: non-finite contribution %v for player %d", points, r.ID))
	}
	if r.points.Len() < r.limit {
		r.Rating += points
		heap.Push(&r.points, points)
		return points != 0, r.Rating
	}

	heap.Push(&r.points, points)
	removed := heap.Pop(&r.points).(float64)
	if removed == points {
		return false, r.Rating
	}
	r.Rating = r.Rating - removed + points
	return true, r.Rating
}

// Len returns the number of retained contributions.
func (r *PlayerRecord) Len() int { return r.points.Len() }

// Contributions returns the retained contributions, largest first.
func (r *PlayerRecord) Contributions() []float64 {
	out := slices.Clone([]float64(r.points))
	slices.SortFunc(out, func(a, b float64) int { return cmp.Compare(b, a) })
	return out
}
