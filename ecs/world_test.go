package ecs

import (
	"errors"
	"testing"

	"github.com/milk9111/stargather/ecs/component"
)

func TestWorldEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_create_destroy_middle", 3, 1},
		{"none_destroy", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, CreateEntity(w))
			}
			if len(Entities(w)) != c.create {
				t.Fatalf("expected %d entities, got %d", c.create, len(Entities(w)))
			}
			if c.destroyIndex < 0 {
				return
			}
			if !DestroyEntity(w, ents[c.destroyIndex]) {
				t.Fatalf("DestroyEntity should return true for alive entity")
			}
			if IsAlive(w, ents[c.destroyIndex]) {
				t.Fatalf("entity should not be alive after destruction")
			}
			if DestroyEntity(w, ents[c.destroyIndex]) {
				t.Fatalf("second DestroyEntity should return false")
			}
			if len(Entities(w)) != c.create-1 {
				t.Fatalf("expected %d entities after destroy, got %d", c.create-1, len(Entities(w)))
			}
		})
	}
}

func TestWorldRecyclesSlotsWithNewGeneration(t *testing.T) {
	w := NewWorld()
	old := CreateEntity(w)
	DestroyEntity(w, old)

	fresh := CreateEntity(w)
	if fresh.id() != old.id() {
		t.Fatalf("expected slot %d to be reused, got %d", old.id(), fresh.id())
	}
	if fresh == old {
		t.Fatalf("recycled entity must not equal the stale handle")
	}
	if IsAlive(w, old) {
		t.Fatalf("stale handle should not be alive")
	}

	kind := component.NewComponent[int]().Kind()
	if err := Add(w, fresh, kind, intPtr(7)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := Get(w, old, kind); ok {
		t.Fatalf("stale handle should not see the new entity's component")
	}
}

func TestWorldComponents(t *testing.T) {
	ints := component.NewComponent[int]().Kind()
	strs := component.NewComponent[string]().Kind()

	tests := []struct {
		name string
		run  func(t *testing.T, w *World, e Entity)
	}{
		{
			name: "add_then_get",
			run: func(t *testing.T, w *World, e Entity) {
				if err := Add(w, e, ints, intPtr(42)); err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				v, ok := Get(w, e, ints)
				if !ok || *v != 42 {
					t.Fatalf("expected 42, got %v (ok=%v)", v, ok)
				}
			},
		},
		{
			name: "add_replaces",
			run: func(t *testing.T, w *World, e Entity) {
				_ = Add(w, e, ints, intPtr(1))
				_ = Add(w, e, ints, intPtr(2))
				v, _ := Get(w, e, ints)
				if *v != 2 {
					t.Fatalf("expected replacement value 2, got %d", *v)
				}
			},
		},
		{
			name: "nil_value_rejected",
			run: func(t *testing.T, w *World, e Entity) {
				if err := Add[int](w, e, ints, nil); !errors.Is(err, component.ErrNilComponent) {
					t.Fatalf("expected ErrNilComponent, got %v", err)
				}
			},
		},
		{
			name: "dead_entity_rejected",
			run: func(t *testing.T, w *World, e Entity) {
				DestroyEntity(w, e)
				if err := Add(w, e, ints, intPtr(1)); !errors.Is(err, component.ErrEntityNotAlive) {
					t.Fatalf("expected ErrEntityNotAlive, got %v", err)
				}
			},
		},
		{
			name: "invalid_kind_rejected",
			run: func(t *testing.T, w *World, e Entity) {
				var zero component.ComponentKind[int]
				if err := Add(w, e, zero, intPtr(1)); !errors.Is(err, component.ErrInvalidComponentKind) {
					t.Fatalf("expected ErrInvalidComponentKind, got %v", err)
				}
			},
		},
		{
			name: "remove",
			run: func(t *testing.T, w *World, e Entity) {
				_ = Add(w, e, strs, stringPtr("x"))
				if !Remove(w, e, strs) {
					t.Fatalf("expected Remove to report true")
				}
				if Has(w, e, strs) {
					t.Fatalf("component should be gone")
				}
				if Remove(w, e, strs) {
					t.Fatalf("second Remove should report false")
				}
			},
		},
		{
			name: "destroy_drops_components",
			run: func(t *testing.T, w *World, e Entity) {
				_ = Add(w, e, ints, intPtr(3))
				DestroyEntity(w, e)
				if len(w.Query(ints)) != 0 {
					t.Fatalf("destroyed entity should not match queries")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWorld()
			tt.run(t, w, CreateEntity(w))
		})
	}
}

func TestWorldQuery(t *testing.T) {
	w := NewWorld()
	ints := component.NewComponent[int]().Kind()
	strs := component.NewComponent[string]().Kind()
	floats := component.NewComponent[float64]().Kind()

	e1 := CreateEntity(w)
	e2 := CreateEntity(w)
	e3 := CreateEntity(w)
	_ = Add(w, e1, ints, intPtr(1))
	_ = Add(w, e2, ints, intPtr(2))
	_ = Add(w, e2, strs, stringPtr("two"))
	_ = Add(w, e3, strs, stringPtr("three"))

	tests := []struct {
		name  string
		kinds []component.AnyKind
		want  []Entity
	}{
		{name: "ints", kinds: []component.AnyKind{ints}, want: []Entity{e1, e2}},
		{name: "strings", kinds: []component.AnyKind{strs}, want: []Entity{e2, e3}},
		{name: "both", kinds: []component.AnyKind{ints, strs}, want: []Entity{e2}},
		{name: "unused_kind", kinds: []component.AnyKind{ints, floats}},
		{name: "no_kinds"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := toSet(w.Query(tt.kinds...))
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, w.Query(tt.kinds...))
			}
			for _, e := range tt.want {
				if _, ok := got[e]; !ok {
					t.Fatalf("expected %v in result", e)
				}
			}
		})
	}
}

func TestForEachToleratesMutation(t *testing.T) {
	w := NewWorld()
	ints := component.NewComponent[int]().Kind()
	for i := 0; i < 4; i++ {
		_ = Add(w, CreateEntity(w), ints, intPtr(i))
	}

	visited := 0
	ForEach(w, ints, func(e Entity, v *int) {
		visited++
		DestroyEntity(w, e)
		_ = Add(w, CreateEntity(w), ints, intPtr(100))
	})
	if visited != 4 {
		t.Fatalf("expected to visit the 4 original entities, visited %d", visited)
	}
	if n := len(w.Query(ints)); n != 4 {
		t.Fatalf("expected 4 replacement entities, got %d", n)
	}
}

func TestForEach2And3(t *testing.T) {
	w := NewWorld()
	ints := component.NewComponent[int]().Kind()
	strs := component.NewComponent[string]().Kind()
	floats := component.NewComponent[float64]().Kind()

	full := CreateEntity(w)
	_ = Add(w, full, ints, intPtr(1))
	_ = Add(w, full, strs, stringPtr("a"))
	_ = Add(w, full, floats, float64Ptr(1.5))

	partial := CreateEntity(w)
	_ = Add(w, partial, ints, intPtr(2))
	_ = Add(w, partial, strs, stringPtr("b"))

	pairs := 0
	ForEach2(w, ints, strs, func(Entity, *int, *string) { pairs++ })
	if pairs != 2 {
		t.Fatalf("expected 2 int/string entities, got %d", pairs)
	}

	var triples []Entity
	ForEach3(w, ints, strs, floats, func(e Entity, _ *int, _ *string, f *float64) {
		triples = append(triples, e)
		*f *= 2
	})
	if len(triples) != 1 || triples[0] != full {
		t.Fatalf("expected only %v, got %v", full, triples)
	}
	if v, _ := Get(w, full, floats); *v != 3 {
		t.Fatalf("expected ForEach3 to mutate in place, got %v", *v)
	}
}

func TestFirst(t *testing.T) {
	w := NewWorld()
	ints := component.NewComponent[int]().Kind()
	if _, ok := First(w, ints); ok {
		t.Fatalf("expected no entity before any Add")
	}
	e := CreateEntity(w)
	_ = Add(w, e, ints, intPtr(1))
	got, ok := First(w, ints)
	if !ok || got != e {
		t.Fatalf("expected %v, got %v (ok=%v)", e, got, ok)
	}
}

func TestEventQueueAndScheduler(t *testing.T) {
	w := NewWorld()
	var order []string
	s := NewScheduler(
		systemFunc(func(w *World) {
			order = append(order, "a")
			w.Events().Push(Event{Type: "a"})
		}),
		nil,
		systemFunc(func(w *World) {
			order = append(order, "b")
			w.Events().Push(Event{Type: "b", Data: len(order)})
		}),
	)
	if n := len(s.Systems()); n != 2 {
		t.Fatalf("nil systems should be skipped, got %d systems", n)
	}

	s.Update(w)
	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Fatalf("expected systems to run in order, got %v", order)
	}
	if w.Events().Len() != 2 {
		t.Fatalf("expected 2 pending events, got %d", w.Events().Len())
	}
	events := w.Events().Drain()
	if events[0].Type != "a" || events[1].Type != "b" || events[1].Data != 2 {
		t.Fatalf("unexpected events %+v", events)
	}
	if w.Events().Drain() != nil {
		t.Fatalf("queue should be empty after Drain")
	}
}

type systemFunc func(w *World)

func (f systemFunc) Update(w *World) { f(w) }

func toSet(ents []Entity) map[Entity]struct{} {
	m := make(map[Entity]struct{}, len(ents))
	for _, e := range ents {
		m[e] = struct{}{}
	}
	return m
}

func intPtr(i int) *int {
	return &i
}

func stringPtr(s string) *string {
	return &s
}

func float64Ptr(f float64) *float64 {
	return &f
}
