package terminal

// specialKeys maps the named raw codes to their key events. Extended
// modifier combinations are handled by the session key table instead and
// never reach this map.
var specialKeys = map[int]KeyEvent{
	CodeUp:            {Code: KeyUp},
	CodeDown:          {Code: KeyDown},
	CodeLeft:          {Code: KeyLeft},
	CodeRight:         {Code: KeyRight},
	CodeHome:          {Code: KeyHome},
	CodeEnd:           {Code: KeyEnd},
	CodePageUp:        {Code: KeyPageUp},
	CodePageDown:      {Code: KeyPageDown},
	CodeInsert:        {Code: KeyInsert},
	CodeDelete:        {Code: KeyDelete},
	CodeBackspace:     {Code: KeyBackspace},
	CodeEnter:         {Code: KeyEnter},
	CodeBackTab:       {Code: KeyBackTab},
	CodeF1:            {Code: KeyF1},
	CodeF2:            {Code: KeyF2},
	CodeF3:            {Code: KeyF3},
	CodeF4:            {Code: KeyF4},
	CodeF5:            {Code: KeyF5},
	CodeF6:            {Code: KeyF6},
	CodeF7:            {Code: KeyF7},
	CodeF8:            {Code: KeyF8},
	CodeF9:            {Code: KeyF9},
	CodeF10:           {Code: KeyF10},
	CodeF11:           {Code: KeyF11},
	CodeF12:           {Code: KeyF12},
	CodeShiftUp:       {Code: KeyUp, Mods: ModShift},
	CodeShiftDown:     {Code: KeyDown, Mods: ModShift},
	CodeShiftLeft:     {Code: KeyLeft, Mods: ModShift},
	CodeShiftRight:    {Code: KeyRight, Mods: ModShift},
	CodeShiftHome:     {Code: KeyHome, Mods: ModShift},
	CodeShiftEnd:      {Code: KeyEnd, Mods: ModShift},
	CodeShiftPageUp:   {Code: KeyPageUp, Mods: ModShift},
	CodeShiftPageDown: {Code: KeyPageDown, Mods: ModShift},
	CodeShiftInsert:   {Code: KeyInsert, Mods: ModShift},
	CodeShiftDelete:   {Code: KeyDelete, Mods: ModShift},
}

// translate converts one raw driver code into a structured event. A code
// with no translation becomes a KeyNull event, never an error.
func (b *Backend) translate(code int) Event {
	if ev, ok := b.keys[code]; ok {
		return ev
	}
	switch code {
	case CodeMouse:
		return b.mouseEvent(b.drv.Mouse())
	case CodeResize:
		return Event{Kind: EventResize}
	}
	if ke, ok := specialKeys[code]; ok {
		return Event{Kind: EventKey, Key: ke}
	}
	return characterEvent(code)
}

// characterEvent interprets a raw code as ordinary character input:
// control bytes map to their key or ctrl-letter meaning, everything
// printable becomes a KeyChar event.
func characterEvent(code int) Event {
	switch {
	case code == 0x00:
		return charEvent(' ', ModCtrl)
	case code == 0x09:
		return keyEvent(KeyTab, 0)
	case code == 0x0a, code == 0x0d:
		return keyEvent(KeyEnter, 0)
	case code == 0x1b:
		return keyEvent(KeyEsc, 0)
	case code == 0x7f:
		return keyEvent(KeyBackspace, 0)
	case code > 0x00 && code <= 0x1a:
		return charEvent(rune('a'+code-1), ModCtrl)
	case code >= 0x1c && code <= 0x1f:
		return charEvent(rune(code+0x40), ModCtrl)
	case code >= 0x20 && code < 0x100:
		return charEvent(rune(code), 0)
	case code >= CodeRune && code <= CodeRune+0x10ffff:
		return charEvent(rune(code-CodeRune), 0)
	}
	return keyEvent(KeyNull, 0)
}

// mouseEvent builds a structured mouse event from the driver's report.
// Motion reports carry no button of their own, so the last observed
// mouse-down is read back to synthesize a drag.
func (b *Backend) mouseEvent(ms MouseState) Event {
	ev := MouseEvent{X: ms.X, Y: ms.Y, Mods: ms.Mods}
	switch {
	case ms.Mask&MouseButton1Pressed != 0:
		ev.Kind, ev.Button = MouseDown, MouseLeft
		b.rememberButton(MouseLeft)
	case ms.Mask&MouseButton2Pressed != 0:
		ev.Kind, ev.Button = MouseDown, MouseMiddle
		b.rememberButton(MouseMiddle)
	case ms.Mask&MouseButton3Pressed != 0:
		ev.Kind, ev.Button = MouseDown, MouseRight
		b.rememberButton(MouseRight)
	case ms.Mask&MouseButton1Released != 0:
		ev.Kind, ev.Button = MouseUp, MouseLeft
	case ms.Mask&MouseButton2Released != 0:
		ev.Kind, ev.Button = MouseUp, MouseMiddle
	case ms.Mask&MouseButton3Released != 0:
		ev.Kind, ev.Button = MouseUp, MouseRight
	case ms.Mask&MouseWheelUp != 0:
		ev.Kind = MouseScrollUp
	case ms.Mask&MouseWheelDown != 0:
		ev.Kind = MouseScrollDown
	case ms.Mask&MousePositionReport != 0:
		btn, ok := b.lastButton()
		if !ok {
			return keyEvent(KeyNull, 0)
		}
		ev.Kind, ev.Button = MouseDrag, btn
	default:
		return keyEvent(KeyNull, 0)
	}
	return Event{Kind: EventMouse, Mouse: ev}
}
