package terminal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2/terminfo"
	"github.com/pkg/term"
	"github.com/xyproto/env/v2"
	"golang.org/x/sys/unix"
)

const (
	maxPairs = 256

	// pollQuantum bounds one poll wait so resize flags and blocking reads
	// stay responsive to each other.
	pollQuantum = 100 * time.Millisecond

	// cprTimeout is how long a cursor position report may take before the
	// terminal is presumed not to answer.
	cprTimeout = 500 * time.Millisecond
)

// ttyPath locates the controlling terminal device, honoring the paths that
// tmux and sshd publish before falling back to /dev/tty.
func ttyPath() string {
	if tty := env.Str("TMUX_PANE_TTY"); tty != "" {
		return tty
	}
	if tty := env.Str("SSH_TTY"); tty != "" {
		return tty
	}
	if _, err := os.Stat("/dev/tty"); err == nil {
		return "/dev/tty"
	}
	return "/dev/stdin"
}

// ttyDriver drives a Unix terminal directly. pkg/term supplies the termios
// mode switching and the reads, terminfo supplies the output escapes, and
// a second handle on the same device serves the poll waits and ioctls that
// need a file descriptor of their own.
type ttyDriver struct {
	path string
	t    *term.Term
	f    *os.File
	ti   *terminfo.Terminfo
	out  *bufio.Writer
	in   decoder

	colors  int
	pairs   map[int16]pairKey
	curPair int16

	mouse MouseState

	raw       bool
	altScreen bool

	resized atomic.Bool
	winch   chan os.Signal
	rdbuf   [256]byte
}

func newTTYDriver() *ttyDriver {
	return &ttyDriver{path: ttyPath()}
}

func (d *ttyDriver) Init() error {
	ti, err := loadTerminfo()
	if err != nil {
		return fmt.Errorf("terminfo: %w", err)
	}
	t, err := term.Open(d.path, term.RawMode)
	if err != nil {
		return fmt.Errorf("open %s: %w", d.path, err)
	}
	f, err := os.OpenFile(d.path, os.O_RDWR, 0)
	if err != nil {
		t.Restore()
		t.Close()
		return fmt.Errorf("open %s: %w", d.path, err)
	}

	d.ti = ti
	d.t = t
	d.f = f
	d.out = bufio.NewWriterSize(t, 4096)
	d.in = newDecoder(ti)
	d.colors = colorDepth(ti)
	d.pairs = map[int16]pairKey{0: {-1, -1}}
	d.curPair = 0
	d.raw = true

	d.winch = make(chan os.Signal, 1)
	signal.Notify(d.winch, unix.SIGWINCH)
	go d.watchResize()

	d.puts(d.ti.EnterKeypad)
	return d.out.Flush()
}

func (d *ttyDriver) Fini() error {
	signal.Stop(d.winch)
	close(d.winch)

	if d.altScreen {
		d.puts(d.ti.ExitCA)
		d.altScreen = false
	}
	d.puts(capOr(d.ti.AttrOff, "\x1b[0m"))
	d.puts(sgrResetColor)
	d.puts(d.ti.ShowCursor)
	d.puts(d.ti.ExitKeypad)
	d.out.Flush()

	err := d.t.Restore()
	if cerr := d.t.Close(); err == nil {
		err = cerr
	}
	if cerr := d.f.Close(); err == nil {
		err = cerr
	}
	return err
}

func (d *ttyDriver) watchResize() {
	for range d.winch {
		d.resized.Store(true)
	}
}

// puts writes a capability string, expanding any embedded padding.
func (d *ttyDriver) puts(s string) {
	if s != "" {
		d.ti.TPuts(d.out, s)
	}
}

func (d *ttyDriver) Flush() error {
	return d.out.Flush()
}

func (d *ttyDriver) WriteString(s string) error {
	_, err := d.out.WriteString(s)
	return err
}

func (d *ttyDriver) Size() (int, int, error) {
	cols, rows := termSize(d.f)
	return cols, rows, nil
}

func (d *ttyDriver) Resize(cols, rows int) error {
	fmt.Fprintf(d.out, csiResizeTempl, rows, cols)
	return nil
}

// CursorPosition asks the terminal for a position report and waits for the
// answer, preserving any unrelated input that arrives around it.
func (d *ttyDriver) CursorPosition() (int, int, error) {
	if err := d.WriteString(csiReportPos); err != nil {
		return 0, 0, err
	}
	if err := d.out.Flush(); err != nil {
		return 0, 0, err
	}
	deadline := time.Now().Add(cprTimeout)
	for {
		if row, col, ok := d.in.takeReport(); ok {
			return col - 1, row - 1, nil
		}
		left := time.Until(deadline)
		if left <= 0 {
			return 0, 0, errors.New("no cursor position report")
		}
		if left > pollQuantum {
			left = pollQuantum
		}
		if _, err := d.fill(left); err != nil {
			return 0, 0, err
		}
	}
}

func (d *ttyDriver) MaxColors() int {
	return d.colors
}

func (d *ttyDriver) MaxPairs() int {
	return maxPairs
}

func (d *ttyDriver) InitPair(index, fg, bg int16) error {
	if index <= 0 || int(index) >= maxPairs {
		return fmt.Errorf("pair index %d out of range", index)
	}
	d.pairs[index] = pairKey{fg, bg}
	return nil
}

func (d *ttyDriver) UsePair(index int16) error {
	pair, ok := d.pairs[index]
	if !ok {
		return fmt.Errorf("pair %d not registered", index)
	}
	d.curPair = index
	d.puts(fgSeq(d.ti, pair.fg))
	d.puts(bgSeq(d.ti, pair.bg))
	return nil
}

func (d *ttyDriver) ResetColors() error {
	d.curPair = 0
	d.puts(sgrResetColor)
	return nil
}

func (d *ttyDriver) AttrOn(a Attribute) error {
	seq := attrOnSeq(d.ti, a)
	if seq == "" {
		return &UnsupportedError{Name: a.String()}
	}
	d.puts(seq)
	if a == AttrReset && d.curPair != 0 {
		// sgr0 clears colors too; keep the active pair in force.
		return d.UsePair(d.curPair)
	}
	return nil
}

func (d *ttyDriver) AttrOff(a Attribute) error {
	if seq := attrOffSeq(a); seq != "" {
		d.puts(seq)
	}
	return nil
}

func (d *ttyDriver) MoveTo(x, y int) error {
	d.puts(d.ti.TGoto(x, y))
	return nil
}

func (d *ttyDriver) CursorVisible(visible bool) error {
	if visible {
		d.puts(d.ti.ShowCursor)
	} else {
		d.puts(d.ti.HideCursor)
	}
	return nil
}

func (d *ttyDriver) CursorBlink(blink bool) error {
	if blink {
		d.puts(csiBlinkOn)
	} else {
		d.puts(csiBlinkOff)
	}
	return nil
}

func (d *ttyDriver) Clear(how Clear) error {
	switch how {
	case ClearAll:
		d.puts(capOr(d.ti.Clear, "\x1b[H\x1b[2J"))
	case ClearFromCursorDown:
		d.puts(csiEraseDown)
	case ClearUntilNewLine:
		d.puts(csiEraseLine)
	}
	return nil
}

func (d *ttyDriver) RawMode(on bool) error {
	if on == d.raw {
		return nil
	}
	d.raw = on
	if on {
		return term.RawMode(d.t)
	}
	return d.t.Restore()
}

func (d *ttyDriver) AlternateScreen(on bool) error {
	if on == d.altScreen {
		return nil
	}
	d.altScreen = on
	if on {
		d.puts(d.ti.EnterCA)
	} else {
		d.puts(d.ti.ExitCA)
	}
	return nil
}

func (d *ttyDriver) SetMouseMask(mask MouseMask) {
	d.in.mouseMask = mask
}

func (d *ttyDriver) Mouse() MouseState {
	return d.mouse
}

func (d *ttyDriver) KeyName(code int) string {
	return extKeyName(code)
}

func (d *ttyDriver) ReadCode(timeout time.Duration) (int, error) {
	var deadline time.Time
	if timeout > 0 {
		deadline = time.Now().Add(timeout)
	}
	for {
		if d.resized.CompareAndSwap(true, false) {
			return CodeResize, nil
		}
		now := time.Now()
		if code, ok := d.in.next(now); ok {
			return d.deliver(code), nil
		}

		wait := pollQuantum
		switch {
		case timeout == 0:
			wait = 0
		case timeout > 0:
			left := time.Until(deadline)
			if left <= 0 {
				return CodeNone, nil
			}
			if left < wait {
				wait = left
			}
		}
		if w, ok := d.in.escWait(now); ok && w < wait {
			wait = w
		}

		n, err := d.fill(wait)
		if err != nil {
			return CodeNone, err
		}
		if n == 0 && timeout == 0 {
			if code, ok := d.in.next(time.Now()); ok {
				return d.deliver(code), nil
			}
			return CodeNone, nil
		}
	}
}

// deliver publishes the mouse state behind a CodeMouse before the code is
// handed out.
func (d *ttyDriver) deliver(code int) int {
	if code == CodeMouse {
		d.mouse = d.in.mouse
	}
	return code
}

// fill waits up to the given duration for input and feeds whatever arrived
// into the decoder. A poll interrupted by a signal reports zero bytes so
// the caller can notice the resize flag.
func (d *ttyDriver) fill(wait time.Duration) (int, error) {
	fds := []unix.PollFd{{Fd: int32(d.f.Fd()), Events: unix.POLLIN}}
	ready, err := unix.Poll(fds, pollMs(wait))
	if err != nil {
		if err == unix.EINTR {
			return 0, nil
		}
		return 0, err
	}
	if ready == 0 {
		return 0, nil
	}
	n, err := d.t.Read(d.rdbuf[:])
	if n > 0 {
		d.in.feed(d.rdbuf[:n])
	}
	if err != nil && err != io.EOF {
		return n, err
	}
	return n, nil
}

// pollMs converts a wait to poll milliseconds, rounding up so a positive
// wait never degrades to a busy poll.
func pollMs(wait time.Duration) int {
	if wait <= 0 {
		return 0
	}
	ms := int((wait + time.Millisecond - 1) / time.Millisecond)
	if ms < 1 {
		ms = 1
	}
	return ms
}
