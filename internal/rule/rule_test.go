package rule

import "testing"

func intp(v int) *int { return &v }

func TestSwipeRuleIsDirectMouse(t *testing.T) {
	cases := []struct {
		name string
		rule *SwipeRule
		want bool
	}{
		{"all set", &SwipeRule{Direction: SwipeAny, Acceleration: intp(20), MouseUpDelay: intp(500)}, true},
		{"missing acceleration", &SwipeRule{Direction: SwipeAny, MouseUpDelay: intp(500)}, false},
		{"missing delay", &SwipeRule{Direction: SwipeAny, Acceleration: intp(20)}, false},
		{"non-any direction", &SwipeRule{Direction: SwipeE, Acceleration: intp(20), MouseUpDelay: intp(500)}, false},
	}
	for _, c := range cases {
		if got := c.rule.IsDirectMouse(); got != c.want {
			t.Errorf("%s: IsDirectMouse() = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestCellLoadStoreReplacesWholesale(t *testing.T) {
	c := NewCell(&Config{Holds: []*HoldRule{{Fingers: 3, Action: "a"}}})
	first := c.Load()
	if len(first.Holds) != 1 {
		t.Fatalf("unexpected initial config: %+v", first)
	}

	c.Store(&Config{})
	second := c.Load()
	if len(second.Holds) != 0 {
		t.Fatalf("store did not replace config: %+v", second)
	}
	// The old snapshot returned by Load must remain untouched: readers
	// that captured it before the swap never see a torn config.
	if len(first.Holds) != 1 {
		t.Fatalf("previously loaded snapshot was mutated")
	}
}

func TestNewCellNilDefaultsToEmptyConfig(t *testing.T) {
	c := NewCell(nil)
	cfg := c.Load()
	if cfg == nil {
		t.Fatal("NewCell(nil) should still produce a usable Config")
	}
}
