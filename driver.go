package terminal

import "time"

// Driver is the native terminal-control layer the Backend drives. It owns
// one session on one terminal device and is not safe for concurrent
// mutation; the Backend serializes every call. The default implementation
// talks to the controlling terminal (see newTTYDriver), but any Driver can
// be supplied through NewWithDriver.
type Driver interface {
	// Init acquires the terminal session: opens the device, loads the
	// capability database, and enables keypad (application key) decoding.
	Init() error
	// Fini releases the session and restores the terminal. Called exactly
	// once, by Backend.Close.
	Fini() error
	// Flush forces buffered output out to the terminal.
	Flush() error

	// Size returns the terminal dimensions in cells, column-major.
	Size() (cols, rows int, err error)
	// Resize asks the terminal to change its dimensions.
	Resize(cols, rows int) error
	// CursorPosition reports the cursor cell, column-major, zero-based.
	CursorPosition() (x, y int, err error)

	// MaxColors is the palette depth the session supports (8, 16 or 256).
	MaxColors() int
	// MaxPairs is the size of the indexed color-pair space, including the
	// reserved pair 0.
	MaxPairs() int
	// InitPair registers a (foreground, background) combination under the
	// given index. A color of -1 selects the terminal default.
	InitPair(index, fg, bg int16) error
	// UsePair activates a previously registered pair for subsequent output.
	UsePair(index int16) error
	// ResetColors reverts foreground and background to the defaults.
	ResetColors() error

	// AttrOn enables a text attribute, AttrOff disables one. Only
	// attributes the driver can represent are ever passed through.
	AttrOn(a Attribute) error
	AttrOff(a Attribute) error

	// MoveTo places the cursor at column x, row y.
	MoveTo(x, y int) error
	// CursorVisible shows or hides the cursor.
	CursorVisible(visible bool) error
	// CursorBlink turns cursor blinking on or off.
	CursorBlink(blink bool) error
	// Clear erases a screen region. Only regions the driver can express
	// are ever passed through.
	Clear(how Clear) error
	// RawMode switches raw input handling on or off.
	RawMode(on bool) error
	// AlternateScreen enters or leaves the alternate screen buffer.
	AlternateScreen(on bool) error

	// SetMouseMask selects which mouse events the driver reports.
	SetMouseMask(mask MouseMask)
	// Mouse returns the state behind the most recent CodeMouse.
	Mouse() MouseState
	// KeyName returns the symbolic name of a raw code, or "" when the code
	// has none. Extended modifier combinations answer terminfo-style names
	// like "kUP3".
	KeyName(code int) string
	// ReadCode waits for one raw input code. A negative timeout blocks
	// until input arrives, zero polls without blocking, positive waits up
	// to the given duration. CodeNone means no input arrived in time.
	ReadCode(timeout time.Duration) (int, error)

	// WriteString queues raw bytes for the terminal. Used for the escape
	// sequences the Backend emits verbatim.
	WriteString(s string) error
}

// CodeNone is the ReadCode result when no input arrived within the timeout.
const CodeNone = -1

// CodeRune offsets decoded text runes of 0x100 and above so they stay
// clear of the key-code windows: a driver reports such a rune r as
// CodeRune+r. Runes below 0x100 are reported as their plain value.
const CodeRune = 0x110000

// Named special keys occupy the raw-code range 256..511. Codes below 256
// are ordinary input bytes reported as their value.
const (
	CodeUp = 256 + iota
	CodeDown
	CodeLeft
	CodeRight
	CodeHome
	CodeEnd
	CodePageUp
	CodePageDown
	CodeInsert
	CodeDelete
	CodeBackspace
	CodeEnter
	CodeBackTab
	CodeF1
	CodeF2
	CodeF3
	CodeF4
	CodeF5
	CodeF6
	CodeF7
	CodeF8
	CodeF9
	CodeF10
	CodeF11
	CodeF12
	CodeShiftUp
	CodeShiftDown
	CodeShiftLeft
	CodeShiftRight
	CodeShiftHome
	CodeShiftEnd
	CodeShiftPageUp
	CodeShiftPageDown
	CodeShiftInsert
	CodeShiftDelete
	CodeMouse
	CodeResize
)

// Extended modifier combinations occupy raw codes 512..1023. The key table
// is built by scanning exactly this window against KeyName.
const (
	extWindowLo = 512
	extWindowHi = 1024
)

// MouseMask selects and describes mouse activity. SetMouseMask takes a
// union of the event bits; MouseState.Mask carries the bits describing one
// report.
type MouseMask uint32

const (
	MouseButton1Pressed MouseMask = 1 << iota
	MouseButton1Released
	MouseButton2Pressed
	MouseButton2Released
	MouseButton3Pressed
	MouseButton3Released
	MouseWheelUp
	MouseWheelDown
	// MousePositionReport marks motion reports, which carry no reliable
	// button identity of their own.
	MousePositionReport
)

// MouseAllEvents selects every button press, release and wheel event.
const MouseAllEvents = MouseButton1Pressed | MouseButton1Released |
	MouseButton2Pressed | MouseButton2Released |
	MouseButton3Pressed | MouseButton3Released |
	MouseWheelUp | MouseWheelDown

// MouseState is the decoded payload behind one CodeMouse report.
type MouseState struct {
	X, Y int
	Mask MouseMask
	Mods Modifiers
}
