package chat

import "math/rand/v2"

// pickRetries caps the redraw loop so Pick terminates even with an adversarial
// random source.
const pickRetries = 50

// Picker selects a random item from a rotating list while avoiding an
// immediate repeat of the last chosen item.
type Picker struct {
	intn func(n int) int
}

// NewPicker creates a Picker backed by the default random source.
func NewPicker() *Picker {
	return &Picker{intn: rand.IntN}
}

// newPickerWithSource is used by tests to make picks deterministic.
func newPickerWithSource(intn func(n int) int) *Picker {
	return &Picker{intn: intn}
}

// Pick draws uniformly from list, redrawing when the draw equals last. After
// pickRetries draws it falls back to a deterministic scan for any element
// different from last, so it always terminates. A single-element list always
// yields that element.
func (p *Picker) Pick(list []string, last string) string {
	if len(list) == 0 {
		return ""
	}
	if len(list) == 1 {
		return list[0]
	}

	for i := 0; i < pickRetries; i++ {
		out := list[p.intn(len(list))]
		if out != last {
			return out
		}
	}

	for _, out := range list {
		if out != last {
			return out
		}
	}
	// Every element equals last (list of duplicates).
	return list[0]
}
