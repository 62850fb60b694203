package terminal

import (
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2/terminfo"
	"github.com/xyproto/env/v2"
)

const (
	escByte = 0x1b
	// Longest escape sequence worth waiting for before declaring garbage.
	maxSeqLen = 32
)

// extBases are the modified-key base identifiers, in the fixed order that
// anchors their extended-code blocks 16 codes apart from extWindowLo.
var extBases = [...]string{"DC", "DN", "END", "HOM", "IC", "LFT", "NXT", "PRV", "RIT", "UP"}

// Plain and shift-modified codes per base, indexed like extBases.
var (
	baseCodes = [...]int{CodeDelete, CodeDown, CodeEnd, CodeHome, CodeInsert,
		CodeLeft, CodePageDown, CodePageUp, CodeRight, CodeUp}
	shiftCodes = [...]int{CodeShiftDelete, CodeShiftDown, CodeShiftEnd, CodeShiftHome,
		CodeShiftInsert, CodeShiftLeft, CodeShiftPageDown, CodeShiftPageUp,
		CodeShiftRight, CodeShiftUp}
)

// extCode composes the extended raw code for a base index and an xterm
// modifier parameter.
func extCode(base, mod int) int {
	return extWindowLo + base*16 + mod
}

// extKeyName is the terminfo-style name of an extended code, like "kUP5",
// or "" when the code names nothing.
func extKeyName(code int) string {
	if code < extWindowLo || code >= extWindowHi {
		return ""
	}
	rel := code - extWindowLo
	base, mod := rel/16, rel%16
	if base >= len(extBases) || mod < 3 || mod > 8 {
		return ""
	}
	return "k" + extBases[base] + string(rune('0'+mod))
}

// decoder turns the raw byte stream of a terminal into raw input codes:
// bytes and runes as themselves (wide runes offset by CodeRune), named
// keys as their Code constants, modified keys as extended codes, and
// mouse reports as CodeMouse with the decoded state kept alongside.
//
// The decoder never blocks. Callers feed bytes in as they arrive and pull
// codes out with next; next answers false when the buffer is empty or
// holds an incomplete sequence. A lone escape is undecidable until either
// more bytes arrive or the escape delay passes, which is why next takes
// the current time.
type decoder struct {
	seqs     map[string]int
	pending  []byte
	escMark  time.Time
	escDelay time.Duration

	mouseMask MouseMask
	mouse     MouseState
	lastBtn   int
}

func newDecoder(ti *terminfo.Terminfo) decoder {
	d := decoder{
		seqs:     make(map[string]int),
		escDelay: time.Duration(env.Int("ESCDELAY", 25)) * time.Millisecond,
	}

	// Standard CSI and SS3 sequences shared by the xterm family. The
	// terminfo entry refines this set below.
	std := map[string]int{
		"\x1b[A": CodeUp, "\x1b[B": CodeDown, "\x1b[C": CodeRight, "\x1b[D": CodeLeft,
		"\x1b[H": CodeHome, "\x1b[F": CodeEnd, "\x1b[Z": CodeBackTab,
		"\x1bOA": CodeUp, "\x1bOB": CodeDown, "\x1bOC": CodeRight, "\x1bOD": CodeLeft,
		"\x1bOH": CodeHome, "\x1bOF": CodeEnd,
		"\x1bOP": CodeF1, "\x1bOQ": CodeF2, "\x1bOR": CodeF3, "\x1bOS": CodeF4,
	}
	for s, c := range std {
		d.seqs[s] = c
	}

	if ti != nil {
		d.add(ti.KeyUp, CodeUp)
		d.add(ti.KeyDown, CodeDown)
		d.add(ti.KeyLeft, CodeLeft)
		d.add(ti.KeyRight, CodeRight)
		d.add(ti.KeyHome, CodeHome)
		d.add(ti.KeyEnd, CodeEnd)
		d.add(ti.KeyPgUp, CodePageUp)
		d.add(ti.KeyPgDn, CodePageDown)
		d.add(ti.KeyInsert, CodeInsert)
		d.add(ti.KeyDelete, CodeDelete)
		d.add(ti.KeyBackspace, CodeBackspace)
		d.add(ti.KeyBacktab, CodeBackTab)
		for i, s := range []string{
			ti.KeyF1, ti.KeyF2, ti.KeyF3, ti.KeyF4, ti.KeyF5, ti.KeyF6,
			ti.KeyF7, ti.KeyF8, ti.KeyF9, ti.KeyF10, ti.KeyF11, ti.KeyF12,
		} {
			d.add(s, CodeF1+i)
		}
	}
	return d
}

// add registers a capability string. Single-byte capabilities (the common
// kbs=DEL) are left to the plain byte path.
func (d *decoder) add(s string, code int) {
	if len(s) > 1 && s[0] == escByte {
		d.seqs[s] = code
	}
}

func (d *decoder) feed(p []byte) {
	d.pending = append(d.pending, p...)
}

// next decodes one raw code. ok is false when the buffer is empty or its
// head is an incomplete sequence; filtered mouse reports and unknown
// sequences are consumed silently.
func (d *decoder) next(now time.Time) (int, bool) {
	for {
		code, n, emit := d.decodeOne(now)
		if n == 0 {
			return 0, false
		}
		d.pending = d.pending[n:]
		d.escMark = time.Time{}
		if emit {
			return code, true
		}
	}
}

// escWait reports how long the caller may wait for continuation bytes
// before the pending escape should be flushed through as a lone keypress.
func (d *decoder) escWait(now time.Time) (time.Duration, bool) {
	if d.escMark.IsZero() {
		return 0, false
	}
	left := d.escDelay - now.Sub(d.escMark)
	if left < time.Millisecond {
		left = time.Millisecond
	}
	return left, true
}

func (d *decoder) decodeOne(now time.Time) (code, n int, emit bool) {
	if len(d.pending) == 0 {
		return 0, 0, false
	}
	if d.pending[0] != escByte {
		return d.decodeRune()
	}
	if len(d.pending) == 1 {
		return d.escAlone(now)
	}
	switch d.pending[1] {
	case '[':
		return d.decodeCSI(now)
	case 'O':
		return d.decodeSS3(now)
	default:
		// ESC followed by anything else: deliver the escape alone and
		// let the next byte speak for itself.
		return escByte, 1, true
	}
}

func (d *decoder) decodeRune() (int, int, bool) {
	if !utf8.FullRune(d.pending) {
		return 0, 0, false
	}
	r, size := utf8.DecodeRune(d.pending)
	if r == utf8.RuneError && size == 1 {
		return int(d.pending[0]), 1, true
	}
	if r >= 0x100 {
		return CodeRune + int(r), size, true
	}
	return int(r), size, true
}

// escAlone resolves an undecidable escape prefix: keep waiting within the
// escape delay, then hand the escape through as its own keypress.
func (d *decoder) escAlone(now time.Time) (int, int, bool) {
	if d.escMark.IsZero() {
		d.escMark = now
		return 0, 0, false
	}
	if now.Sub(d.escMark) < d.escDelay {
		return 0, 0, false
	}
	d.escMark = time.Time{}
	return escByte, 1, true
}

func (d *decoder) decodeCSI(now time.Time) (int, int, bool) {
	p := d.pending
	i := 2
	for i < len(p) && !isCSIFinal(p[i]) {
		if i > maxSeqLen {
			return escByte, 1, true
		}
		i++
	}
	if i >= len(p) {
		return d.escAlone(now)
	}
	final := p[i]

	// Legacy X10 mouse: ESC [ M followed by three raw bytes.
	if final == 'M' && i == 2 {
		if len(p) < 6 {
			return d.escAlone(now)
		}
		return d.mouseReport(int(p[3])-32, int(p[4])-33, int(p[5])-33, false, 6)
	}

	if code, ok := d.seqs[string(p[:i+1])]; ok {
		return code, i + 1, true
	}

	// SGR mouse: ESC [ < b ; x ; y then M (press) or m (release).
	if p[2] == '<' && (final == 'M' || final == 'm') {
		params := csiParams(p[3:i])
		if len(params) != 3 {
			return 0, i + 1, false
		}
		return d.mouseReport(params[0], params[1]-1, params[2]-1, final == 'm', i+1)
	}

	params := csiParams(p[2:i])

	// urxvt mouse: ESC [ b ; x ; y M with the X10 button offset.
	if final == 'M' && len(params) == 3 {
		return d.mouseReport(params[0]-32, params[1]-1, params[2]-1, false, i+1)
	}

	switch final {
	case 'A', 'B', 'C', 'D', 'F', 'H':
		if base := csiBase(final); base >= 0 {
			if len(params) == 2 {
				return modifiedCode(base, params[1]), i + 1, true
			}
			return baseCodes[base], i + 1, true
		}
	case '~':
		if len(params) > 0 {
			if code, ok := tildeCode(params); ok {
				return code, i + 1, true
			}
		}
	}

	// Recognized shape, unknown meaning; swallow it.
	return 0, i + 1, false
}

func (d *decoder) decodeSS3(now time.Time) (int, int, bool) {
	if len(d.pending) < 3 {
		return d.escAlone(now)
	}
	if code, ok := d.seqs[string(d.pending[:3])]; ok {
		return code, 3, true
	}
	return 0, 3, false
}

// mouseReport folds one mouse report into a code. The button word carries
// flag bits shared by all three wire protocols; coordinates arrive already
// zero-based. Reports outside the configured mask are consumed silently.
func (d *decoder) mouseReport(b, x, y int, release bool, n int) (int, int, bool) {
	var mods Modifiers
	if b&4 != 0 {
		mods |= ModShift
	}
	if b&8 != 0 {
		mods |= ModAlt
	}
	if b&16 != 0 {
		mods |= ModCtrl
	}

	var mask MouseMask
	btn := b & 3
	switch {
	case b&64 != 0:
		if btn == 0 {
			mask = MouseWheelUp
		} else {
			mask = MouseWheelDown
		}
	case b&32 != 0:
		mask = MousePositionReport
	case release || btn == 3:
		// The X10 protocol does not say which button came up.
		rb := btn
		if rb == 3 {
			rb = d.lastBtn
		}
		mask = releasedMask(rb)
	default:
		mask = pressedMask(btn)
		d.lastBtn = btn
	}

	if mask&d.mouseMask == 0 {
		return 0, n, false
	}
	d.mouse = MouseState{X: x, Y: y, Mask: mask, Mods: mods}
	return CodeMouse, n, true
}

func pressedMask(btn int) MouseMask {
	switch btn {
	case 1:
		return MouseButton2Pressed
	case 2:
		return MouseButton3Pressed
	}
	return MouseButton1Pressed
}

func releasedMask(btn int) MouseMask {
	switch btn {
	case 1:
		return MouseButton2Released
	case 2:
		return MouseButton3Released
	}
	return MouseButton1Released
}

// takeReport extracts a cursor position report (ESC [ row ; col R) from
// anywhere in the buffer, leaving surrounding input intact.
func (d *decoder) takeReport() (row, col int, ok bool) {
	p := d.pending
	for i := 0; i+1 < len(p); i++ {
		if p[i] != escByte || p[i+1] != '[' {
			continue
		}
		j := i + 2
		for j < len(p) && (p[j] == ';' || (p[j] >= '0' && p[j] <= '9')) {
			j++
		}
		if j >= len(p) || p[j] != 'R' {
			continue
		}
		params := csiParams(p[i+2 : j])
		if len(params) != 2 {
			continue
		}
		d.pending = append(p[:i], p[j+1:]...)
		return params[0], params[1], true
	}
	return 0, 0, false
}

func isCSIFinal(b byte) bool {
	return b >= 0x40 && b <= 0x7e
}

// csiBase maps a CSI final letter to its extBases index, or -1.
func csiBase(final byte) int {
	switch final {
	case 'A':
		return 9 // UP
	case 'B':
		return 1 // DN
	case 'C':
		return 8 // RIT
	case 'D':
		return 5 // LFT
	case 'F':
		return 2 // END
	case 'H':
		return 3 // HOM
	}
	return -1
}

// tildeBases maps the CSI ~ selector to its extBases index.
var tildeBases = map[int]int{
	1: 3, // HOM
	2: 4, // IC
	3: 0, // DC
	4: 2, // END
	5: 7, // PRV
	6: 6, // NXT
	7: 3, // HOM
	8: 2, // END
}

var tildeFKeys = map[int]int{
	11: CodeF1, 12: CodeF2, 13: CodeF3, 14: CodeF4,
	15: CodeF5, 17: CodeF6, 18: CodeF7, 19: CodeF8,
	20: CodeF9, 21: CodeF10, 23: CodeF11, 24: CodeF12,
}

func tildeCode(params []int) (int, bool) {
	if base, ok := tildeBases[params[0]]; ok {
		if len(params) >= 2 {
			return modifiedCode(base, params[1]), true
		}
		return baseCodes[base], true
	}
	if code, ok := tildeFKeys[params[0]]; ok {
		// Modified function keys degrade to the unmodified key.
		return code, true
	}
	return 0, false
}

// modifiedCode resolves a base key plus an xterm modifier parameter:
// shift alone has a named code, richer combinations land in the extended
// window, and out-of-range parameters fall back to the plain key.
func modifiedCode(base, m int) int {
	switch {
	case m == 2:
		return shiftCodes[base]
	case m >= 3 && m <= 8:
		return extCode(base, m)
	}
	return baseCodes[base]
}

func csiParams(body []byte) []int {
	if len(body) == 0 {
		return nil
	}
	parts := strings.Split(string(body), ";")
	out := make([]int, len(parts))
	for i, s := range parts {
		v, err := strconv.Atoi(s)
		if err != nil {
			v = 0
		}
		out[i] = v
	}
	return out
}
