package review

// Ladder is the ascending list of day offsets from the learned date at
// which a review is due. Day 0 is the learning day itself and never gets
// a progress flag of its own.
type Ladder []int

// DefaultLadder is the fixed review schedule used by the app
var DefaultLadder = Ladder{0, 1, 2, 4, 7, 15, 30, 90, 180}

// ReviewDays returns the ladder steps that carry a per-day progress flag,
// i.e. every step except day 0.
func (l Ladder) ReviewDays() []int {
	days := make([]int, 0, len(l))
	for _, step := range l {
		if step > 0 {
			days = append(days, step)
		}
	}
	return days
}

// Contains reports whether step is part of the ladder
func (l Ladder) Contains(step int) bool {
	for _, s := range l {
		if s == step {
			return true
		}
	}
	return false
}
