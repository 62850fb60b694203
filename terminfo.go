package terminal

import (
	"github.com/gdamore/tcell/v2/terminfo"
	"github.com/muesli/termenv"
	"github.com/xyproto/env/v2"

	// Compiled-in entries for the common terminal families, so capability
	// lookup works without a terminfo database on disk.
	_ "github.com/gdamore/tcell/v2/terminfo/base"
)

// Escape sequences with no terminfo capability string. These are fixed by
// ECMA-48 and the xterm control-sequence set, so they are emitted as-is.
const (
	sgrCrossed = "\x1b[9m"
	sgrConceal = "\x1b[8m"

	sgrBoldOff      = "\x1b[22m"
	sgrItalicOff    = "\x1b[23m"
	sgrUnderlineOff = "\x1b[24m"
	sgrBlinkOff     = "\x1b[25m"
	sgrReverseOff   = "\x1b[27m"
	sgrConcealOff   = "\x1b[28m"
	sgrCrossedOff   = "\x1b[29m"

	sgrDefaultFg  = "\x1b[39m"
	sgrDefaultBg  = "\x1b[49m"
	sgrResetColor = "\x1b[39;49m"

	csiEraseDown   = "\x1b[J"
	csiEraseLine   = "\x1b[K"
	csiBlinkOn     = "\x1b[?12h"
	csiBlinkOff    = "\x1b[?12l"
	csiReportPos   = "\x1b[6n"
	csiResizeTempl = "\x1b[8;%d;%dt" // rows first, then columns
)

// loadTerminfo resolves the capability entry for TERM. An unset or unknown
// TERM degrades to the compiled-in xterm-256color entry instead of failing
// the session.
func loadTerminfo() (*terminfo.Terminfo, error) {
	if ti, err := terminfo.LookupTerminfo(env.Str("TERM")); err == nil {
		return ti, nil
	}
	return terminfo.LookupTerminfo("xterm-256color")
}

// colorDepth is the palette depth for a session: the terminfo color count,
// raised when the environment advertises a richer profile than the entry
// records, and never below 8.
func colorDepth(ti *terminfo.Terminfo) int {
	n := ti.Colors
	switch termenv.EnvColorProfile() {
	case termenv.TrueColor, termenv.ANSI256:
		if n < 256 {
			n = 256
		}
	}
	if n < 8 {
		n = 8
	}
	return n
}

// capOr falls back when a terminfo capability is absent.
func capOr(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// attrOnSeq is the escape switching the given attribute on, preferring the
// terminfo capability over the plain SGR code. Attributes outside the
// supported set answer "".
func attrOnSeq(ti *terminfo.Terminfo, a Attribute) string {
	switch a {
	case AttrReset:
		return capOr(ti.AttrOff, "\x1b[0m")
	case AttrBold:
		return capOr(ti.Bold, "\x1b[1m")
	case AttrItalic:
		return capOr(ti.Italic, "\x1b[3m")
	case AttrUnderlined:
		return capOr(ti.Underline, "\x1b[4m")
	case AttrSlowBlink, AttrRapidBlink:
		return capOr(ti.Blink, "\x1b[5m")
	case AttrCrossed:
		return sgrCrossed
	case AttrReversed:
		return capOr(ti.Reverse, "\x1b[7m")
	case AttrConceal:
		return sgrConceal
	}
	return ""
}

// attrOffSeq is the escape switching the given attribute off. Terminfo has
// no per-attribute off capabilities, so these are always plain SGR.
func attrOffSeq(a Attribute) string {
	switch a {
	case AttrBoldOff:
		return sgrBoldOff
	case AttrItalicOff:
		return sgrItalicOff
	case AttrUnderlinedOff:
		return sgrUnderlineOff
	case AttrBlinkOff:
		return sgrBlinkOff
	case AttrCrossedOff:
		return sgrCrossedOff
	case AttrReversedOff:
		return sgrReverseOff
	case AttrConcealOff:
		return sgrConcealOff
	}
	return ""
}

// fgSeq selects foreground color c, with -1 restoring the default.
func fgSeq(ti *terminfo.Terminfo, c int16) string {
	if c < 0 {
		return sgrDefaultFg
	}
	if ti.SetFg == "" {
		return ""
	}
	return ti.TParm(ti.SetFg, int(c))
}

// bgSeq selects background color c, with -1 restoring the default.
func bgSeq(ti *terminfo.Terminfo, c int16) string {
	if c < 0 {
		return sgrDefaultBg
	}
	if ti.SetBg == "" {
		return ""
	}
	return ti.TParm(ti.SetBg, int(c))
}
