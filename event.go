package terminal

import (
	"strconv"
	"strings"
)

// EventKind discriminates the payload of an Event.
type EventKind uint8

const (
	EventKey EventKind = iota
	EventMouse
	EventResize
)

// Event is one unit of terminal input: a keystroke, a mouse action, or a
// window resize. Events are immutable once produced and comparable, so they
// can be used as map values and compared directly in tests.
type Event struct {
	Kind  EventKind
	Key   KeyEvent
	Mouse MouseEvent
}

// KeyEvent carries the logical identity of a pressed key. Char is only
// meaningful when Code is KeyChar.
type KeyEvent struct {
	Code KeyCode
	Char rune
	Mods Modifiers
}

// KeyCode identifies a key independent of the byte sequence that produced it.
type KeyCode uint8

const (
	KeyNull KeyCode = iota
	KeyChar
	KeyBackspace
	KeyEnter
	KeyTab
	KeyBackTab
	KeyEsc
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyInsert
	KeyDelete
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

var keyCodeNames = map[KeyCode]string{
	KeyNull:      "null",
	KeyChar:      "char",
	KeyBackspace: "backspace",
	KeyEnter:     "enter",
	KeyTab:       "tab",
	KeyBackTab:   "backtab",
	KeyEsc:       "esc",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyPageUp:    "pageup",
	KeyPageDown:  "pagedown",
	KeyInsert:    "insert",
	KeyDelete:    "delete",
	KeyF1:        "f1",
	KeyF2:        "f2",
	KeyF3:        "f3",
	KeyF4:        "f4",
	KeyF5:        "f5",
	KeyF6:        "f6",
	KeyF7:        "f7",
	KeyF8:        "f8",
	KeyF9:        "f9",
	KeyF10:       "f10",
	KeyF11:       "f11",
	KeyF12:       "f12",
}

// String returns a lowercase key name like "pageup" or "f5".
func (k KeyCode) String() string {
	if name, ok := keyCodeNames[k]; ok {
		return name
	}
	return "unknown"
}

// Modifiers is a bitset of modifier keys held during a key or mouse event.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModAlt
	ModCtrl
)

// String returns a "+"-joined modifier list like "ctrl+shift", or "" when
// no modifier is set.
func (m Modifiers) String() string {
	var parts []string
	if m&ModCtrl != 0 {
		parts = append(parts, "ctrl")
	}
	if m&ModAlt != 0 {
		parts = append(parts, "alt")
	}
	if m&ModShift != 0 {
		parts = append(parts, "shift")
	}
	return strings.Join(parts, "+")
}

// String renders a key event like "ctrl+alt+left" or "char 'x'".
func (k KeyEvent) String() string {
	var sb strings.Builder
	if mods := k.Mods.String(); mods != "" {
		sb.WriteString(mods)
		sb.WriteByte('+')
	}
	if k.Code == KeyChar {
		sb.WriteString("char '")
		sb.WriteRune(k.Char)
		sb.WriteByte('\'')
	} else {
		sb.WriteString(k.Code.String())
	}
	return sb.String()
}

// MouseEventKind discriminates mouse events.
type MouseEventKind uint8

const (
	MouseDown MouseEventKind = iota
	MouseUp
	MouseDrag
	MouseScrollUp
	MouseScrollDown
)

var mouseKindNames = map[MouseEventKind]string{
	MouseDown:       "down",
	MouseUp:         "up",
	MouseDrag:       "drag",
	MouseScrollUp:   "scrollup",
	MouseScrollDown: "scrolldown",
}

// String returns the lowercase event kind name.
func (k MouseEventKind) String() string {
	if name, ok := mouseKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// MouseButton identifies a physical mouse button.
type MouseButton uint8

const (
	MouseLeft MouseButton = iota
	MouseMiddle
	MouseRight
)

var mouseButtonNames = map[MouseButton]string{
	MouseLeft:   "left",
	MouseMiddle: "middle",
	MouseRight:  "right",
}

// String returns the lowercase button name.
func (b MouseButton) String() string {
	if name, ok := mouseButtonNames[b]; ok {
		return name
	}
	return "unknown"
}

// MouseEvent carries one mouse action at a cell position. Button is only
// meaningful for MouseDown, MouseUp and MouseDrag.
type MouseEvent struct {
	Kind   MouseEventKind
	Button MouseButton
	X, Y   int
	Mods   Modifiers
}

// String renders a mouse event like "down left @ 12,3".
func (m MouseEvent) String() string {
	var sb strings.Builder
	if mods := m.Mods.String(); mods != "" {
		sb.WriteString(mods)
		sb.WriteByte('+')
	}
	sb.WriteString(m.Kind.String())
	switch m.Kind {
	case MouseDown, MouseUp, MouseDrag:
		sb.WriteByte(' ')
		sb.WriteString(m.Button.String())
	}
	sb.WriteString(" @ ")
	sb.WriteString(strconv.Itoa(m.X))
	sb.WriteByte(',')
	sb.WriteString(strconv.Itoa(m.Y))
	return sb.String()
}

// String renders any event for logs and demos.
func (e Event) String() string {
	switch e.Kind {
	case EventKey:
		return "key " + e.Key.String()
	case EventMouse:
		return "mouse " + e.Mouse.String()
	case EventResize:
		return "resize"
	}
	return "unknown"
}

func keyEvent(code KeyCode, mods Modifiers) Event {
	return Event{Kind: EventKey, Key: KeyEvent{Code: code, Mods: mods}}
}

func charEvent(ch rune, mods Modifiers) Event {
	return Event{Kind: EventKey, Key: KeyEvent{Code: KeyChar, Char: ch, Mods: mods}}
}
