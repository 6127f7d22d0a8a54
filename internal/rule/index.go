package rule

import "time"

// StaleAfter is how long a built Index may be used before the event
// loop should rebuild it from the current Config snapshot.
const StaleAfter = time.Second

// Index denormalises a Config into fingers-keyed buckets per gesture
// kind so rule lookup during event dispatch is O(1) plus a linear scan
// of the (typically tiny) matching bucket. Rebuilding installs a
// brand-new Index value; nothing about an in-use Index is ever mutated,
// so a reader never observes partial state.
type Index struct {
	builtAt time.Time
	swipe   map[int][]*SwipeRule
	pinch   map[int][]*PinchRule
	hold    map[int][]*HoldRule
}

// Build partitions cfg's Swipes, Pinches and Holds into the three
// fingers-keyed maps. Order
// within each bucket matches the rules' order in cfg, so ties fire in
// declaration order.
func Build(cfg *Config) *Index {
	idx := &Index{
		builtAt: time.Now(),
		swipe:   make(map[int][]*SwipeRule),
		pinch:   make(map[int][]*PinchRule),
		hold:    make(map[int][]*HoldRule),
	}
	if cfg == nil {
		return idx
	}
	for _, s := range cfg.Swipes {
		idx.swipe[s.Fingers] = append(idx.swipe[s.Fingers], s)
	}
	for _, p := range cfg.Pinches {
		idx.pinch[p.Fingers] = append(idx.pinch[p.Fingers], p)
	}
	for _, h := range cfg.Holds {
		idx.hold[h.Fingers] = append(idx.hold[h.Fingers], h)
	}
	return idx
}

// Stale reports whether this Index was built at least StaleAfter ago.
func (idx *Index) Stale() bool {
	if idx == nil {
		return true
	}
	return time.Since(idx.builtAt) >= StaleAfter
}

func (idx *Index) SwipeRules(fingers int) []*SwipeRule {
	if idx == nil {
		return nil
	}
	return idx.swipe[fingers]
}

func (idx *Index) PinchRules(fingers int) []*PinchRule {
	if idx == nil {
		return nil
	}
	return idx.pinch[fingers]
}

func (idx *Index) HoldRules(fingers int) []*HoldRule {
	if idx == nil {
		return nil
	}
	return idx.hold[fingers]
}
