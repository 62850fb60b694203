package terminal

// Action is one imperative terminal operation. The set of variants is
// closed: each is a small struct carrying its parameters, consumed once by
// Act or Batch.
type Action interface {
	isAction()
}

// MoveCursorTo places the cursor at column X, row Y (0,0 is top-left).
type MoveCursorTo struct{ X, Y int }

// ShowCursor makes the cursor visible.
type ShowCursor struct{}

// HideCursor makes the cursor invisible.
type HideCursor struct{}

// EnableBlinking turns cursor blinking on.
type EnableBlinking struct{}

// DisableBlinking turns cursor blinking off.
type DisableBlinking struct{}

// ClearTerminal erases a region of the screen.
type ClearTerminal struct{ How Clear }

// SetTerminalSize asks the terminal to resize itself to Cols x Rows cells.
type SetTerminalSize struct{ Cols, Rows int }

// ScrollUp scrolls the visible contents up by N rows.
type ScrollUp struct{ N int }

// ScrollDown scrolls the visible contents down by N rows.
type ScrollDown struct{ N int }

// EnableRawMode switches the session to raw input: no echo, no line
// buffering, no signal generation from keys.
type EnableRawMode struct{}

// DisableRawMode restores the session's original input modes.
type DisableRawMode struct{}

// EnterAlternateScreen switches to the alternate screen buffer.
type EnterAlternateScreen struct{}

// LeaveAlternateScreen returns to the primary screen buffer.
type LeaveAlternateScreen struct{}

// EnableMouseCapture turns on mouse event and position reporting.
type EnableMouseCapture struct{}

// DisableMouseCapture turns mouse reporting back off.
type DisableMouseCapture struct{}

// SetForegroundColor selects the foreground color for subsequent output.
type SetForegroundColor struct{ Color Color }

// SetBackgroundColor selects the background color for subsequent output.
type SetBackgroundColor struct{ Color Color }

// SetAttribute toggles a text attribute on or off (the Off variants).
type SetAttribute struct{ Attribute Attribute }

// ResetColor reverts foreground and background to the terminal defaults.
type ResetColor struct{}

func (MoveCursorTo) isAction()         {}
func (ShowCursor) isAction()           {}
func (HideCursor) isAction()           {}
func (EnableBlinking) isAction()       {}
func (DisableBlinking) isAction()      {}
func (ClearTerminal) isAction()        {}
func (SetTerminalSize) isAction()      {}
func (ScrollUp) isAction()             {}
func (ScrollDown) isAction()           {}
func (EnableRawMode) isAction()        {}
func (DisableRawMode) isAction()       {}
func (EnterAlternateScreen) isAction() {}
func (LeaveAlternateScreen) isAction() {}
func (EnableMouseCapture) isAction()   {}
func (DisableMouseCapture) isAction()  {}
func (SetForegroundColor) isAction()   {}
func (SetBackgroundColor) isAction()   {}
func (SetAttribute) isAction()         {}
func (ResetColor) isAction()           {}

// Clear selects the screen region a ClearTerminal action erases.
type Clear uint8

const (
	// ClearAll erases the whole screen.
	ClearAll Clear = iota
	// ClearFromCursorDown erases from the cursor to the end of the screen.
	ClearFromCursorDown
	// ClearFromCursorUp erases from the start of the screen to the cursor.
	ClearFromCursorUp
	// ClearCurrentLine erases the line the cursor is on.
	ClearCurrentLine
	// ClearUntilNewLine erases from the cursor to the end of the line.
	ClearUntilNewLine
)

// Attribute is a text styling flag set or cleared with SetAttribute.
type Attribute uint8

const (
	AttrReset Attribute = iota
	AttrBold
	AttrItalic
	AttrUnderlined
	AttrSlowBlink
	AttrRapidBlink
	AttrCrossed
	AttrReversed
	AttrConceal
	AttrBoldOff
	AttrItalicOff
	AttrUnderlinedOff
	AttrBlinkOff
	AttrCrossedOff
	AttrReversedOff
	AttrConcealOff
	AttrFraktur
	AttrFramed
	AttrNormalIntensity
)

var attributeNames = map[Attribute]string{
	AttrReset:           "Reset",
	AttrBold:            "Bold",
	AttrItalic:          "Italic",
	AttrUnderlined:      "Underlined",
	AttrSlowBlink:       "SlowBlink",
	AttrRapidBlink:      "RapidBlink",
	AttrCrossed:         "Crossed",
	AttrReversed:        "Reversed",
	AttrConceal:         "Conceal",
	AttrBoldOff:         "BoldOff",
	AttrItalicOff:       "ItalicOff",
	AttrUnderlinedOff:   "UnderlinedOff",
	AttrBlinkOff:        "BlinkOff",
	AttrCrossedOff:      "CrossedOff",
	AttrReversedOff:     "ReversedOff",
	AttrConcealOff:      "ConcealOff",
	AttrFraktur:         "Fraktur",
	AttrFramed:          "Framed",
	AttrNormalIntensity: "NormalIntensity",
}

// String returns the attribute's name, as used in error messages.
func (a Attribute) String() string {
	if name, ok := attributeNames[a]; ok {
		return name
	}
	return "Unknown"
}
