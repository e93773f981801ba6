package nexus

import (
	"fmt"
	"testing"
)

// stubComponent is a leaf component with a controllable activation
// result.
type stubComponent struct {
	name        string
	active      bool
	activations int
	failNext    bool
	updates     int
}

func (s *stubComponent) Children() []Component { return nil }

func (s *stubComponent) OnActivate() error {
	if s.active {
		return nil
	}
	if s.failNext {
		s.failNext = false
		return fmt.Errorf("%s: simulated activation failure", s.name)
	}
	s.active = true
	s.activations++
	return nil
}

func (s *stubComponent) OnDeactivate() { s.active = false }
func (s *stubComponent) IsActive() bool {
	return s.active
}
func (s *stubComponent) ApplyUpdates(deltaTime float32) { s.updates++ }

func TestGroupLifecycleIsIdempotent(t *testing.T) {
	a := &stubComponent{name: "a"}
	b := &stubComponent{name: "b"}
	g := NewGroup(a, b)

	if err := g.OnActivate(); err != nil {
		t.Fatal(err)
	}
	if err := g.OnActivate(); err != nil {
		t.Fatal(err)
	}
	if a.activations != 1 || b.activations != 1 {
		t.Errorf("children activated (%d, %d) times, want once each", a.activations, b.activations)
	}

	g.OnDeactivate()
	g.OnDeactivate()
	if a.active || b.active {
		t.Error("children still active after group deactivation")
	}
}

func TestGroupActivationFailureRollsBack(t *testing.T) {
	a := &stubComponent{name: "a"}
	b := &stubComponent{name: "b", failNext: true}
	g := NewGroup(a, b)

	if err := g.OnActivate(); err == nil {
		t.Fatal("expected activation error")
	}
	if g.IsActive() {
		t.Error("group reports active after failed activation")
	}
	if a.active {
		t.Error("earlier sibling left active after failed activation")
	}
}

func TestGroupAddWhileActive(t *testing.T) {
	g := NewGroup()
	if err := g.OnActivate(); err != nil {
		t.Fatal(err)
	}

	c := &stubComponent{name: "late"}
	if err := g.Add(c); err != nil {
		t.Fatal(err)
	}
	if !c.active {
		t.Error("child added to an active group was not activated")
	}
}

func TestWalkVisitsDepthFirst(t *testing.T) {
	a := &stubComponent{name: "a"}
	b := &stubComponent{name: "b"}
	c := &stubComponent{name: "c"}
	root := NewGroup(NewGroup(a, b), c)

	var order []string
	Walk(root, func(comp Component) {
		if s, ok := comp.(*stubComponent); ok {
			order = append(order, s.name)
		}
	})

	want := []string{"a", "b", "c"}
	if len(order) != len(want) {
		t.Fatalf("visited %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("visited %v, want %v", order, want)
		}
	}
}

func TestGroupApplyUpdatesRecurses(t *testing.T) {
	a := &stubComponent{name: "a"}
	g := NewGroup(NewGroup(a))
	g.ApplyUpdates(0.016)
	if a.updates != 1 {
		t.Errorf("nested child received %d update passes, want 1", a.updates)
	}
}
