package terminal

import (
	"fmt"
	"sync"
	"time"
)

// Mouse capture escape sequences, written verbatim and flushed
// synchronously. The driver's own mouse interface is coarser than these
// mode toggles, so they bypass it on purpose.
const (
	enableMouseSeq  = "\x1b[?1000h\x1b[?1002h\x1b[?1015h\x1b[?1006h"
	disableMouseSeq = "\x1b[?1006l\x1b[?1015l\x1b[?1002l\x1b[?1000l"
)

// Query selects what Get retrieves. The set is closed: SizeQuery,
// PositionQuery or EventQuery.
type Query interface {
	isQuery()
}

// SizeQuery asks for the terminal dimensions.
type SizeQuery struct{}

// PositionQuery asks for the cursor position.
type PositionQuery struct{}

// EventQuery asks for one input event. A negative Timeout blocks until
// input arrives, zero returns immediately, positive waits up to the given
// duration.
type EventQuery struct{ Timeout time.Duration }

func (SizeQuery) isQuery()     {}
func (PositionQuery) isQuery() {}
func (EventQuery) isQuery()    {}

// Retrieved is a Get result: Size, Position or Polled, matching the query.
type Retrieved interface {
	isRetrieved()
}

// Size is the terminal dimensions in cells.
type Size struct{ Cols, Rows int }

// Position is the cursor cell, column-major, zero-based.
type Position struct{ X, Y int }

// Polled carries the outcome of an event query. Event is nil when no input
// arrived within the timeout; that is an expected outcome, not an error.
type Polled struct{ Event *Event }

func (Size) isRetrieved()     {}
func (Position) isRetrieved() {}
func (Polled) isRetrieved()   {}

// Backend is the unified terminal-control interface. It owns one driver
// session plus the translation state around it: the color pair table, the
// extended key-code table, the single staged event, and the last observed
// mouse button. One Backend per terminal session; driver mutation is not
// reentrant and concurrent Act/Batch/Flush calls need external
// serialization. The staged event and mouse button are the exception and
// may be touched from a second goroutine.
type Backend struct {
	drv   Driver
	pairs *pairTable
	keys  map[int]Event

	// current resolved colors, -1 while the terminal default is active
	fg, bg int16

	mu      sync.Mutex
	staged  *Event
	lastBtn MouseButton
	haveBtn bool
	closed  bool
}

// New acquires the controlling terminal and returns a ready Backend.
// Failure to open the terminal is returned as an error; there is no
// degraded mode without a terminal.
func New() (*Backend, error) {
	return NewWithDriver(newTTYDriver())
}

// NewWithDriver wires a Backend over the given driver: the session is
// initialized, the full mouse mask is enabled, and the key table is built
// from the driver's capability answers.
func NewWithDriver(d Driver) (*Backend, error) {
	if err := d.Init(); err != nil {
		return nil, err
	}
	d.SetMouseMask(MouseAllEvents | MousePositionReport)
	return &Backend{
		drv:   d,
		pairs: newPairTable(d),
		keys:  buildKeyTable(d),
		fg:    -1,
		bg:    -1,
	}, nil
}

// Act applies one action and makes it visible immediately. It is exactly
// Batch followed by Flush.
func (b *Backend) Act(a Action) error {
	if err := b.Batch(a); err != nil {
		return err
	}
	return b.Flush()
}

// Batch applies one action to the driver state without forcing the screen
// to reflect it yet. Actions the driver cannot express degrade to no-ops
// and return nil; only an unrepresentable attribute is an error.
func (b *Backend) Batch(a Action) error {
	switch v := a.(type) {
	case MoveCursorTo:
		return b.drv.MoveTo(v.X, v.Y)
	case ShowCursor:
		return b.drv.CursorVisible(true)
	case HideCursor:
		return b.drv.CursorVisible(false)
	case EnableBlinking:
		return b.drv.CursorBlink(true)
	case DisableBlinking:
		return b.drv.CursorBlink(false)
	case ClearTerminal:
		switch v.How {
		case ClearAll, ClearFromCursorDown, ClearUntilNewLine:
			return b.drv.Clear(v.How)
		}
		// ClearFromCursorUp and ClearCurrentLine have no driver
		// equivalent and degrade to no-ops.
		return nil
	case SetTerminalSize:
		return b.drv.Resize(v.Cols, v.Rows)
	case ScrollUp, ScrollDown:
		// No scroll primitive; the degraded fallback is no scroll.
		return nil
	case EnableRawMode:
		return b.drv.RawMode(true)
	case DisableRawMode:
		return b.drv.RawMode(false)
	case EnterAlternateScreen:
		return b.drv.AlternateScreen(true)
	case LeaveAlternateScreen:
		return b.drv.AlternateScreen(false)
	case EnableMouseCapture:
		return b.writeVerbatim(enableMouseSeq)
	case DisableMouseCapture:
		return b.writeVerbatim(disableMouseSeq)
	case SetForegroundColor:
		b.fg = reduce(v.Color, b.drv.MaxColors())
		return b.applyPair()
	case SetBackgroundColor:
		b.bg = reduce(v.Color, b.drv.MaxColors())
		return b.applyPair()
	case SetAttribute:
		return b.setAttribute(v.Attribute)
	case ResetColor:
		b.fg, b.bg = -1, -1
		return b.drv.ResetColors()
	}
	return nil
}

// Flush materializes every batched change on the physical screen. Calling
// it with nothing pending is a harmless no-op.
func (b *Backend) Flush() error {
	return b.drv.Flush()
}

// Get retrieves a value from the terminal. Event queries drain the staged
// event first; see EventQuery for the timeout semantics.
func (b *Backend) Get(q Query) (Retrieved, error) {
	switch v := q.(type) {
	case SizeQuery:
		cols, rows, err := b.drv.Size()
		if err != nil {
			return nil, err
		}
		return Size{Cols: cols, Rows: rows}, nil
	case PositionQuery:
		x, y, err := b.drv.CursorPosition()
		if err != nil {
			return nil, err
		}
		return Position{X: x, Y: y}, nil
	case EventQuery:
		if ev, ok := b.takeStaged(); ok {
			return Polled{Event: &ev}, nil
		}
		code, err := b.drv.ReadCode(v.Timeout)
		if err != nil {
			return nil, err
		}
		if code == CodeNone {
			return Polled{}, nil
		}
		ev := b.translate(code)
		return Polled{Event: &ev}, nil
	}
	return nil, fmt.Errorf("unhandled query type %T", q)
}

// UngetEvent stores an event for re-delivery by the next event query. The
// slot holds one event; a second call before the next query replaces the
// first.
func (b *Backend) UngetEvent(ev Event) {
	b.mu.Lock()
	b.staged = &ev
	b.mu.Unlock()
}

func (b *Backend) takeStaged() (Event, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.staged == nil {
		return Event{}, false
	}
	ev := *b.staged
	b.staged = nil
	return ev, true
}

func (b *Backend) rememberButton(btn MouseButton) {
	b.mu.Lock()
	b.lastBtn = btn
	b.haveBtn = true
	b.mu.Unlock()
}

func (b *Backend) lastButton() (MouseButton, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastBtn, b.haveBtn
}

// PairCount is the number of color pairs registered so far.
func (b *Backend) PairCount() int {
	return b.pairs.size()
}

// Close disables mouse capture and releases the driver session. It runs
// once; later calls return nil without touching the driver. Always call it
// on the way out, deferred, so the terminal is restored on every exit path.
func (b *Backend) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	b.mu.Unlock()

	err := b.writeVerbatim(disableMouseSeq)
	if ferr := b.drv.Fini(); err == nil {
		err = ferr
	}
	return err
}

// applyPair resolves the tracked (fg, bg) combination to a registered pair
// and activates it. Foreground and background are tracked independently so
// that setting one never destroys the other.
func (b *Backend) applyPair() error {
	idx, err := b.pairs.index(b.fg, b.bg)
	if err != nil {
		return err
	}
	return b.drv.UsePair(idx)
}

func (b *Backend) writeVerbatim(seq string) error {
	if err := b.drv.WriteString(seq); err != nil {
		return err
	}
	return b.drv.Flush()
}

// attrOnSet and attrOffSet are the attributes the driver can switch on and
// off. An attribute in neither set has no representation and surfaces as
// an UnsupportedError.
var attrOnSet = map[Attribute]bool{
	AttrReset:      true,
	AttrBold:       true,
	AttrItalic:     true,
	AttrUnderlined: true,
	AttrSlowBlink:  true,
	AttrRapidBlink: true,
	AttrCrossed:    true,
	AttrReversed:   true,
	AttrConceal:    true,
}

var attrOffSet = map[Attribute]bool{
	AttrBoldOff:       true,
	AttrItalicOff:     true,
	AttrUnderlinedOff: true,
	AttrBlinkOff:      true,
	AttrCrossedOff:    true,
	AttrReversedOff:   true,
	AttrConcealOff:    true,
}

func (b *Backend) setAttribute(a Attribute) error {
	switch {
	case attrOnSet[a]:
		return b.drv.AttrOn(a)
	case attrOffSet[a]:
		return b.drv.AttrOff(a)
	}
	return &UnsupportedError{Name: a.String()}
}
