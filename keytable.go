package terminal

// The terminfo extended-key naming scheme encodes a base key and a modifier
// digit into names like "kUP3" or "kDC5". These are the ten base
// identifiers that occur with modifier suffixes; anything else reported by
// the driver is already covered by plain input and is skipped.
var keyBaseNames = map[string]KeyCode{
	"DC":  KeyDelete,
	"DN":  KeyDown,
	"END": KeyEnd,
	"HOM": KeyHome,
	"IC":  KeyInsert,
	"LFT": KeyLeft,
	"NXT": KeyPageDown,
	"PRV": KeyPageUp,
	"RIT": KeyRight,
	"UP":  KeyUp,
}

// Modifier suffix digits follow the xterm modifier parameter arithmetic:
// 1 plus a bitmask of shift=1, alt=2, ctrl=4.
var suffixMods = map[byte]Modifiers{
	'3': ModAlt,
	'4': ModAlt | ModShift,
	'5': ModCtrl,
	'6': ModCtrl | ModShift,
	'7': ModCtrl | ModAlt,
}

// buildKeyTable constructs the raw-code translation table by asking the
// driver to name every code in the extended window. Names that do not
// start with the 'k' marker, use an unknown base, or carry an unknown
// suffix are skipped. The result only depends on the driver's answers, so
// construction is deterministic for a given session.
func buildKeyTable(d Driver) map[int]Event {
	table := make(map[int]Event)
	for code := extWindowLo; code < extWindowHi; code++ {
		name := d.KeyName(code)
		if len(name) < 3 || name[0] != 'k' {
			continue
		}
		base, suffix := name[1:len(name)-1], name[len(name)-1]
		key, ok := keyBaseNames[base]
		if !ok {
			continue
		}
		mods, ok := suffixMods[suffix]
		if !ok {
			continue
		}
		table[code] = keyEvent(key, mods)
	}
	return table
}
