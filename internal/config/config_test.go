package config

import (
	"testing"

	"gesturesd/internal/rule"
)

func TestDecodeOrdersRulesByDeclaration(t *testing.T) {
	data := []byte(`
[[swipe]]
direction = "e"
fingers = 3
update = "first"

[[swipe]]
direction = "e"
fingers = 3
update = "second"

[[pinch]]
direction = "in"
fingers = 2
end = "zoom-out"

[[hold]]
fingers = 4
action = "lock-screen"
`)
	cfg, err := Decode(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.Swipes) != 2 || cfg.Swipes[0].Update != "first" || cfg.Swipes[1].Update != "second" {
		t.Fatalf("expected declaration-order swipes, got %+v", cfg.Swipes)
	}
	if len(cfg.Pinches) != 1 || cfg.Pinches[0].Direction != rule.PinchIn {
		t.Fatalf("unexpected pinches: %+v", cfg.Pinches)
	}
	if len(cfg.Holds) != 1 || cfg.Holds[0].Action != "lock-screen" {
		t.Fatalf("unexpected holds: %+v", cfg.Holds)
	}
}

func TestDecodeDirectMouseRuleFields(t *testing.T) {
	data := []byte(`
[[swipe]]
direction = "any"
fingers = 3
acceleration = 1
mouse_up_delay = 150
`)
	cfg, err := Decode(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.Swipes) != 1 || !cfg.Swipes[0].IsDirectMouse() {
		t.Fatalf("expected a direct-mouse rule, got %+v", cfg.Swipes)
	}
}

func TestDecodeRejectsMalformedTOML(t *testing.T) {
	if _, err := Decode([]byte("not = [valid")); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestSearchPathsPrefersXDGConfigHome(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdgtest")
	paths := SearchPaths()
	if len(paths) != 2 || paths[0] != "/tmp/xdgtest/gestures.toml" {
		t.Fatalf("unexpected search paths: %v", paths)
	}
}
