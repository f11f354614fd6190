package books

import "math"

// StarBuckets holds the five stored rating counters for one book. The buckets
// are the source of truth; count and average are always derived from them.
type StarBuckets struct {
	Star1 int
	Star2 int
	Star3 int
	Star4 int
	Star5 int
}

// Total is the number of ratings across all five buckets.
func (b StarBuckets) Total() int {
	return b.Star1 + b.Star2 + b.Star3 + b.Star4 + b.Star5
}

// Average is the count-weighted mean star rating, unrounded, or nil when the
// book has no ratings. Nil serializes as JSON null; NaN is never produced.
func (b StarBuckets) Average() *float64 {
	total := b.Total()
	if total == 0 {
		return nil
	}
	weighted := b.Star1 + 2*b.Star2 + 3*b.Star3 + 4*b.Star4 + 5*b.Star5
	avg := float64(weighted) / float64(total)
	return &avg
}

// round1 rounds to one decimal place, halves away from zero. Applied only
// when an average is surfaced to a caller; the buckets stay exact integers.
func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
