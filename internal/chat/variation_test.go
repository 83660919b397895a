package chat

import "testing"

func TestPickNeverRepeatsLast(t *testing.T) {
	p := NewPicker()
	list := []string{"a", "b", "c"}

	last := ""
	for i := 0; i < 200; i++ {
		out := p.Pick(list, last)
		if out == last {
			t.Fatalf("iteration %d: picked %q twice in a row", i, out)
		}
		last = out
	}
}

func TestPickEdgeCases(t *testing.T) {
	p := NewPicker()

	if out := p.Pick(nil, "x"); out != "" {
		t.Fatalf("empty list: got %q, want empty string", out)
	}
	if out := p.Pick([]string{"only"}, "only"); out != "only" {
		t.Fatalf("single-element list must return its element even when it equals last, got %q", out)
	}
}

func TestPickTerminatesWithAdversarialSource(t *testing.T) {
	// A source that always draws index 0 exhausts the redraw budget; the
	// deterministic scan must still find a non-repeat.
	p := newPickerWithSource(func(n int) int { return 0 })

	if out := p.Pick([]string{"a", "b", "c"}, "a"); out != "b" {
		t.Fatalf("expected deterministic scan to yield %q, got %q", "b", out)
	}
}

func TestPickAllDuplicates(t *testing.T) {
	p := newPickerWithSource(func(n int) int { return 0 })

	if out := p.Pick([]string{"x", "x", "x"}, "x"); out != "x" {
		t.Fatalf("all-duplicate list: got %q, want %q", out, "x")
	}
}
