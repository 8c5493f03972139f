//go:build windows

package hotkey

import "golang.design/x/hotkey"

var modifierNames = map[string]hotkey.Modifier{
	"ctrl":    hotkey.ModCtrl,
	"control": hotkey.ModCtrl,
	"primary": hotkey.ModCtrl,
	"shift":   hotkey.ModShift,
	"alt":     hotkey.ModAlt,
	"mod1":    hotkey.ModAlt,
	"super":   hotkey.ModWin,
	"win":     hotkey.ModWin,
	"mod4":    hotkey.ModWin,
}
