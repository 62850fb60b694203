package terminal

import "testing"

func TestModifierStringOrder(t *testing.T) {
	checks := []struct {
		mods Modifiers
		want string
	}{
		{0, ""},
		{ModShift, "shift"},
		{ModCtrl | ModShift, "ctrl+shift"},
		{ModCtrl | ModAlt, "ctrl+alt"},
		{ModCtrl | ModAlt | ModShift, "ctrl+alt+shift"},
	}
	for _, c := range checks {
		if got := c.mods.String(); got != c.want {
			t.Fatalf("expected %q, got %q", c.want, got)
		}
	}
}

func TestEventStrings(t *testing.T) {
	checks := []struct {
		ev   Event
		want string
	}{
		{keyEvent(KeyUp, 0), "key up"},
		{keyEvent(KeyPageUp, ModAlt), "key alt+pageup"},
		{charEvent('x', ModCtrl), "key ctrl+char 'x'"},
		{Event{Kind: EventResize}, "resize"},
		{
			Event{Kind: EventMouse, Mouse: MouseEvent{Kind: MouseDown, Button: MouseLeft, X: 12, Y: 3}},
			"mouse down left @ 12,3",
		},
		{
			Event{Kind: EventMouse, Mouse: MouseEvent{Kind: MouseScrollUp, X: 1, Y: 2}},
			"mouse scrollup @ 1,2",
		},
		{
			Event{Kind: EventMouse, Mouse: MouseEvent{Kind: MouseDrag, Button: MouseRight, X: 4, Y: 5, Mods: ModShift}},
			"mouse shift+drag right @ 4,5",
		},
	}
	for _, c := range checks {
		if got := c.ev.String(); got != c.want {
			t.Fatalf("expected %q, got %q", c.want, got)
		}
	}
}

func TestEventsAreComparable(t *testing.T) {
	a := charEvent('q', ModAlt)
	b := charEvent('q', ModAlt)
	if a != b {
		t.Fatalf("expected identical events to compare equal")
	}
	m := map[Event]int{a: 1}
	if m[b] != 1 {
		t.Fatalf("expected events to work as map keys")
	}
}
