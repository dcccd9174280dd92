package telemetry

import (
	"testing"
	"time"

	"github.com/jonwraymond/flightdeck/snapshot"
)

func TestCockpit_DispatchesToAllPanels(t *testing.T) {
	panelA := NewPanel(AcceptLabels("a"))
	counterA := newFakeInstrument("ca")
	panelA.AddCounter(counterA)

	panelB := NewPanel(AcceptLabels("b"))
	counterB := newFakeInstrument("cb")
	panelB.AddCounter(counterB)

	c := NamedCockpit[string]("cockpit")
	c.AddPanel(panelA)
	c.AddPanel(panelB)

	obs := ObservedOne("a", time.Now())
	if got := c.HandleObservation(&obs); got != 1 {
		t.Fatalf("expected 1 update, got %d", got)
	}
	if counterA.updates != 1 || counterB.updates != 0 {
		t.Fatalf("updates: a=%d b=%d", counterA.updates, counterB.updates)
	}
}

func TestCockpit_OwnFilterBoundsDispatch(t *testing.T) {
	panel := NewPanel(AcceptAllLabels[string]())
	counter := newFakeInstrument("count")
	panel.AddCounter(counter)

	c := NewCockpit[string]()
	c.SetLabelFilter(AcceptLabels("mine"))
	c.AddPanel(panel)

	obs := ObservedOne("foreign", time.Now())
	if got := c.HandleObservation(&obs); got != 0 {
		t.Fatalf("expected 0 updates, got %d", got)
	}
	if counter.updates != 0 {
		t.Fatal("foreign observation traversed the cockpit")
	}
}

func TestCockpit_SnapshotNestingAndOrder(t *testing.T) {
	c := NamedCockpit[string]("http")
	c.AddPanel(NamedPanel(AcceptAllLabels[string](), "requests"))
	c.AddSnapshotter(&fakeSnapshotter{name: "polled"})
	c.AddHandler(newFakeHandler("handled", "x"))

	snap := snapshot.New()
	c.PutSnapshot(snap, false)

	level, ok := snap.Find("http")
	if !ok {
		t.Fatal("expected nesting under the cockpit name")
	}
	want := []string{"requests", "polled", "handled"}
	items := level.(*snapshot.Snapshot).Items
	if len(items) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(items))
	}
	for i, name := range want {
		if items[i].Name != name {
			t.Errorf("item %d = %q, want %q", i, items[i].Name, name)
		}
	}
}

func TestCockpit_Inactivity(t *testing.T) {
	c := NamedCockpit[string]("cockpit").WithInactivityLimit(20 * time.Millisecond)
	c.AddPanel(NamedPanel(AcceptAllLabels[string](), "panel"))

	time.Sleep(50 * time.Millisecond)

	snap := snapshot.New()
	c.PutSnapshot(snap, false)
	if v, _ := snap.FindPath("cockpit", "_inactive"); v != snapshot.Bool(true) {
		t.Fatalf("expected inactive cockpit, got %v", v)
	}
	if _, ok := snap.FindPath("cockpit", "panel"); ok {
		t.Fatal("inactive cockpit rendered children")
	}
}
