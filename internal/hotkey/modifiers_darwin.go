//go:build darwin && cgo

package hotkey

import "golang.design/x/hotkey"

var modifierNames = map[string]hotkey.Modifier{
	"ctrl":    hotkey.ModCtrl,
	"control": hotkey.ModCtrl,
	"primary": hotkey.ModCmd,
	"shift":   hotkey.ModShift,
	"alt":     hotkey.ModOption,
	"option":  hotkey.ModOption,
	"mod1":    hotkey.ModOption,
	"super":   hotkey.ModCmd,
	"cmd":     hotkey.ModCmd,
	"mod4":    hotkey.ModCmd,
}
