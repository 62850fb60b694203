package terminal

import (
	"io"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/creack/pty"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

func TestTTYPathPrefersTmuxPane(t *testing.T) {
	t.Setenv("TMUX_PANE_TTY", "/dev/pts/42")
	t.Setenv("SSH_TTY", "/dev/pts/43")
	if got := ttyPath(); got != "/dev/pts/42" {
		t.Fatalf("expected the tmux pane tty, got %q", got)
	}
}

func TestTTYPathFallsBackToSSH(t *testing.T) {
	t.Setenv("TMUX_PANE_TTY", "")
	t.Setenv("SSH_TTY", "/dev/pts/43")
	if got := ttyPath(); got != "/dev/pts/43" {
		t.Fatalf("expected the ssh tty, got %q", got)
	}
}

func TestPollMsRoundsUp(t *testing.T) {
	if got := pollMs(0); got != 0 {
		t.Fatalf("expected 0 for no wait, got %d", got)
	}
	if got := pollMs(-time.Second); got != 0 {
		t.Fatalf("expected 0 for negative wait, got %d", got)
	}
	if got := pollMs(200 * time.Microsecond); got != 1 {
		t.Fatalf("expected sub-millisecond waits to round up to 1, got %d", got)
	}
	if got := pollMs(2500 * time.Microsecond); got != 3 {
		t.Fatalf("expected 2.5ms to round up to 3, got %d", got)
	}
	if got := pollMs(3 * time.Millisecond); got != 3 {
		t.Fatalf("expected whole milliseconds to pass through, got %d", got)
	}
}

func TestTermSizeEnvFallback(t *testing.T) {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		t.Skip("stdout is a terminal")
	}
	t.Setenv("COLS", "120")
	t.Setenv("LINES", "40")
	cols, rows := termSize(nil)
	if cols != 120 || rows != 40 {
		t.Fatalf("expected 120x40 from the environment, got %dx%d", cols, rows)
	}
}

// ptyOutput accumulates everything the driver writes to the terminal side
// of a pty.
type ptyOutput struct {
	mu  sync.Mutex
	buf []byte
}

func collectOutput(r io.Reader) *ptyOutput {
	po := &ptyOutput{}
	go func() {
		tmp := make([]byte, 512)
		for {
			n, err := r.Read(tmp)
			if n > 0 {
				po.mu.Lock()
				po.buf = append(po.buf, tmp[:n]...)
				po.mu.Unlock()
			}
			if err != nil {
				return
			}
		}
	}()
	return po
}

func (po *ptyOutput) waitFor(t *testing.T, want string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		po.mu.Lock()
		found := strings.Contains(string(po.buf), want)
		po.mu.Unlock()
		if found {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %q in terminal output", want)
}

// openDriverOnPTY builds a ttyDriver session on a fresh pseudo-terminal.
// Environments without pty support skip instead of failing.
func openDriverOnPTY(t *testing.T) (*ttyDriver, *os.File) {
	t.Helper()
	master, slave, err := pty.Open()
	if err != nil {
		t.Skipf("pty unavailable: %v", err)
	}
	t.Cleanup(func() {
		master.Close()
		slave.Close()
	})

	t.Setenv("TERM", "xterm-256color")
	t.Setenv("TMUX_PANE_TTY", slave.Name())

	d := newTTYDriver()
	if d.path != slave.Name() {
		t.Fatalf("expected the driver to pick %q, got %q", slave.Name(), d.path)
	}
	if err := d.Init(); err != nil {
		t.Skipf("cannot initialize a driver on this pty: %v", err)
	}
	t.Cleanup(func() { d.Fini() })
	return d, master
}

func TestTTYDriverSessionOnPTY(t *testing.T) {
	d, master := openDriverOnPTY(t)

	if got := d.MaxColors(); got != 256 {
		t.Fatalf("expected 256 colors for xterm-256color, got %d", got)
	}
	if got := d.MaxPairs(); got != 256 {
		t.Fatalf("expected 256 pairs, got %d", got)
	}
	if got := d.KeyName(extCode(9, 5)); got != "kUP5" {
		t.Fatalf("expected kUP5, got %q", got)
	}

	if err := pty.Setsize(master, &pty.Winsize{Rows: 24, Cols: 80}); err != nil {
		t.Skipf("cannot set pty size: %v", err)
	}
	cols, rows, err := d.Size()
	if err != nil {
		t.Fatalf("size failed: %v", err)
	}
	if cols != 80 || rows != 24 {
		t.Fatalf("expected 80x24, got %dx%d", cols, rows)
	}
}

func TestTTYDriverWritesEscapes(t *testing.T) {
	d, master := openDriverOnPTY(t)
	out := collectOutput(master)

	if err := d.WriteString("hello"); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	if err := d.Flush(); err != nil {
		t.Fatalf("flush failed: %v", err)
	}
	out.waitFor(t, "hello")

	if err := d.MoveTo(4, 2); err != nil {
		t.Fatalf("move failed: %v", err)
	}
	d.Flush()
	out.waitFor(t, "\x1b[3;5H")

	if err := d.InitPair(1, 9, -1); err != nil {
		t.Fatalf("init pair failed: %v", err)
	}
	if err := d.UsePair(1); err != nil {
		t.Fatalf("use pair failed: %v", err)
	}
	d.Flush()
	out.waitFor(t, "38;5;9")
	out.waitFor(t, "\x1b[49m")
}

func TestTTYDriverReadsInput(t *testing.T) {
	d, master := openDriverOnPTY(t)

	if _, err := master.Write([]byte("\x1b[A")); err != nil {
		t.Fatalf("pty write failed: %v", err)
	}
	code, err := d.ReadCode(time.Second)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if code != CodeUp {
		t.Fatalf("expected the up arrow, got %d", code)
	}

	if _, err := master.Write([]byte("é")); err != nil {
		t.Fatalf("pty write failed: %v", err)
	}
	code, err = d.ReadCode(time.Second)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if code != 0xe9 {
		t.Fatalf("expected the decoded rune value, got %d", code)
	}
}

func TestTTYDriverMouseOverPTY(t *testing.T) {
	d, master := openDriverOnPTY(t)
	d.SetMouseMask(MouseAllEvents | MousePositionReport)

	if _, err := master.Write([]byte("\x1b[<0;4;3M")); err != nil {
		t.Fatalf("pty write failed: %v", err)
	}
	code, err := d.ReadCode(time.Second)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if code != CodeMouse {
		t.Fatalf("expected a mouse code, got %d", code)
	}
	want := MouseState{X: 3, Y: 2, Mask: MouseButton1Pressed}
	if d.Mouse() != want {
		t.Fatalf("expected %+v, got %+v", want, d.Mouse())
	}
}

func TestTTYDriverReadTimeout(t *testing.T) {
	d, _ := openDriverOnPTY(t)

	start := time.Now()
	code, err := d.ReadCode(50 * time.Millisecond)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if code != CodeNone {
		t.Fatalf("expected no input, got %d", code)
	}
	elapsed := time.Since(start)
	if elapsed < 30*time.Millisecond || elapsed > time.Second {
		t.Fatalf("expected the timeout to be honored, took %v", elapsed)
	}
}

func TestTTYDriverResizeSignal(t *testing.T) {
	d, _ := openDriverOnPTY(t)

	if err := unix.Kill(os.Getpid(), unix.SIGWINCH); err != nil {
		t.Skipf("cannot signal self: %v", err)
	}
	code, err := d.ReadCode(time.Second)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if code != CodeResize {
		t.Fatalf("expected a resize code, got %d", code)
	}
}

func TestBackendOnPTY(t *testing.T) {
	master, slave, err := pty.Open()
	if err != nil {
		t.Skipf("pty unavailable: %v", err)
	}
	t.Cleanup(func() {
		master.Close()
		slave.Close()
	})
	t.Setenv("TERM", "xterm-256color")
	t.Setenv("TMUX_PANE_TTY", slave.Name())

	b, err := New()
	if err != nil {
		t.Skipf("cannot open a backend on this pty: %v", err)
	}
	defer b.Close()
	out := collectOutput(master)

	if err := b.Act(ClearTerminal{How: ClearAll}); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	out.waitFor(t, "\x1b[2J")

	if _, err := master.Write([]byte("q")); err != nil {
		t.Fatalf("pty write failed: %v", err)
	}
	got, err := b.Get(EventQuery{Timeout: time.Second})
	if err != nil {
		t.Fatalf("event query failed: %v", err)
	}
	ev := got.(Polled).Event
	if ev == nil || *ev != charEvent('q', 0) {
		t.Fatalf("expected the typed character, got %v", ev)
	}

	if err := b.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
}
