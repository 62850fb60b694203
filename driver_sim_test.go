package terminal

import (
	"errors"
	"fmt"
	"time"
)

// simDriver is a scriptable in-memory Driver. It records output-side calls
// in order, serves input codes from a queue, and answers key names the
// same way the tty driver does unless a name is overridden.
type simDriver struct {
	ops []string

	cols, rows int
	curX, curY int

	maxColors int
	maxPairs  int
	pairs     map[int16][2]int16
	curPair   int16

	codes []int
	mouse MouseState
	mask  MouseMask
	names map[int]string

	initErr  error
	failPair bool
}

func newSimDriver() *simDriver {
	return &simDriver{
		cols:      80,
		rows:      24,
		maxColors: 256,
		maxPairs:  256,
		pairs:     make(map[int16][2]int16),
		names:     make(map[int]string),
	}
}

func (s *simDriver) log(format string, args ...any) {
	s.ops = append(s.ops, fmt.Sprintf(format, args...))
}

func (s *simDriver) Init() error {
	if s.initErr != nil {
		return s.initErr
	}
	s.log("init")
	return nil
}

func (s *simDriver) Fini() error {
	s.log("fini")
	return nil
}

func (s *simDriver) Flush() error {
	s.log("flush")
	return nil
}

func (s *simDriver) Size() (int, int, error) {
	return s.cols, s.rows, nil
}

func (s *simDriver) Resize(cols, rows int) error {
	s.cols, s.rows = cols, rows
	s.log("resize %dx%d", cols, rows)
	return nil
}

func (s *simDriver) CursorPosition() (int, int, error) {
	return s.curX, s.curY, nil
}

func (s *simDriver) MaxColors() int {
	return s.maxColors
}

func (s *simDriver) MaxPairs() int {
	return s.maxPairs
}

func (s *simDriver) InitPair(index, fg, bg int16) error {
	if s.failPair {
		return errors.New("pair table full")
	}
	s.pairs[index] = [2]int16{fg, bg}
	s.log("initpair %d=(%d,%d)", index, fg, bg)
	return nil
}

func (s *simDriver) UsePair(index int16) error {
	s.curPair = index
	s.log("usepair %d", index)
	return nil
}

func (s *simDriver) ResetColors() error {
	s.curPair = 0
	s.log("resetcolors")
	return nil
}

func (s *simDriver) AttrOn(a Attribute) error {
	s.log("attron %s", a)
	return nil
}

func (s *simDriver) AttrOff(a Attribute) error {
	s.log("attroff %s", a)
	return nil
}

func (s *simDriver) MoveTo(x, y int) error {
	s.curX, s.curY = x, y
	s.log("moveto %d,%d", x, y)
	return nil
}

func (s *simDriver) CursorVisible(visible bool) error {
	s.log("cursorvisible %t", visible)
	return nil
}

func (s *simDriver) CursorBlink(blink bool) error {
	s.log("cursorblink %t", blink)
	return nil
}

func (s *simDriver) Clear(how Clear) error {
	s.log("clear %d", how)
	return nil
}

func (s *simDriver) RawMode(on bool) error {
	s.log("rawmode %t", on)
	return nil
}

func (s *simDriver) AlternateScreen(on bool) error {
	s.log("altscreen %t", on)
	return nil
}

func (s *simDriver) SetMouseMask(mask MouseMask) {
	s.mask = mask
}

func (s *simDriver) Mouse() MouseState {
	return s.mouse
}

func (s *simDriver) KeyName(code int) string {
	if name, ok := s.names[code]; ok {
		return name
	}
	return extKeyName(code)
}

func (s *simDriver) ReadCode(timeout time.Duration) (int, error) {
	if len(s.codes) == 0 {
		return CodeNone, nil
	}
	code := s.codes[0]
	s.codes = s.codes[1:]
	return code, nil
}

func (s *simDriver) WriteString(str string) error {
	s.log("write %q", str)
	return nil
}

// hasOp reports whether the op log contains the exact entry.
func (s *simDriver) hasOp(op string) bool {
	for _, o := range s.ops {
		if o == op {
			return true
		}
	}
	return false
}
