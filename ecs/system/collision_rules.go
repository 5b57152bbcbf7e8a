package system

import (
	"github.com/milk9111/stargather/ecs"
	"github.com/milk9111/stargather/ecs/component"
)

// CollisionHandler receives the two entities of a contact in the order the
// rule was registered with.
type CollisionHandler func(w *ecs.World, a, b ecs.Entity)

type CollisionMode int

const (
	// ModeCollide pairs get a physical response.
	ModeCollide CollisionMode = iota + 1
	// ModeOverlap pairs only report contact.
	ModeOverlap
)

type CollisionRule struct {
	A, B    component.BodyKind
	Mode    CollisionMode
	Handler CollisionHandler
}

type kindPair struct {
	lo, hi component.BodyKind
}

func makeKindPair(a, b component.BodyKind) kindPair {
	if b < a {
		a, b = b, a
	}
	return kindPair{lo: a, hi: b}
}

// CollisionRules is the table of body-kind pairs that interact. Pairs that are
// not registered pass through each other.
type CollisionRules struct {
	rules map[kindPair]CollisionRule
	order []kindPair
}

func NewCollisionRules() *CollisionRules {
	return &CollisionRules{rules: make(map[kindPair]CollisionRule)}
}

// Collider registers a pair that collides physically. handler may be nil.
func (r *CollisionRules) Collider(a, b component.BodyKind, handler CollisionHandler) {
	r.set(CollisionRule{A: a, B: b, Mode: ModeCollide, Handler: handler})
}

// Overlap registers a pair that reports contact without a response.
func (r *CollisionRules) Overlap(a, b component.BodyKind, handler CollisionHandler) {
	r.set(CollisionRule{A: a, B: b, Mode: ModeOverlap, Handler: handler})
}

func (r *CollisionRules) set(rule CollisionRule) {
	key := makeKindPair(rule.A, rule.B)
	if _, ok := r.rules[key]; !ok {
		r.order = append(r.order, key)
	}
	r.rules[key] = rule
}

// Lookup finds the rule for a pair in either order. swapped reports that
// (a, b) is the reverse of the registered order.
func (r *CollisionRules) Lookup(a, b component.BodyKind) (rule CollisionRule, swapped bool, ok bool) {
	if r == nil {
		return CollisionRule{}, false, false
	}
	rule, ok = r.rules[makeKindPair(a, b)]
	if !ok {
		return CollisionRule{}, false, false
	}
	return rule, rule.A != a, true
}

// Rules lists the registered rules in registration order.
func (r *CollisionRules) Rules() []CollisionRule {
	if r == nil {
		return nil
	}
	out := make([]CollisionRule, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.rules[key])
	}
	return out
}

// Partners returns the kinds that kind interacts with.
func (r *CollisionRules) Partners(kind component.BodyKind) []component.BodyKind {
	var out []component.BodyKind
	for _, rule := range r.Rules() {
		switch kind {
		case rule.A:
			out = append(out, rule.B)
		case rule.B:
			out = append(out, rule.A)
		}
	}
	return out
}
