package osbind

import (
	"golang.design/x/hotkey"

	chord "github.com/yllada/chatdock/hotkey"
)

var osModifiers = map[chord.Modifier]hotkey.Modifier{
	chord.ModCtrl:  hotkey.ModCtrl,
	chord.ModAlt:   hotkey.ModOption,
	chord.ModShift: hotkey.ModShift,
	chord.ModSuper: hotkey.ModCmd,
}
