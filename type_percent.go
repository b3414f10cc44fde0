package budget

import "fmt"

// Percent is a percentage, 12.5 means 12.5%.
type Percent float64

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

// String returns the percentage with one decimal, e.g. "66.7%".
func (p Percent) String() string {
	return fmt.Sprintf("%.1f%%", float64(p))
}
