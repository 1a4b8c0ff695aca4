package hotkey

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"

	gohook "github.com/robotn/gohook"
)

// Binding fires OnPress when every key of Combo ("Ctrl+Shift+A") is held.
type Binding struct {
	Name    string
	Combo   string
	OnPress func()
}

var ErrNoBindings = errors.New("no valid hotkey bindings")

var (
	listenMu sync.Mutex
	running  bool
)

// Listen registers bindings and processes gohook events on a background
// goroutine. gohook has a single global event stream, so all bindings must
// be passed in one call.
func Listen(bindings ...Binding) error {
	var combos []*combo
	for _, b := range bindings {
		if strings.TrimSpace(b.Combo) == "" {
			continue
		}
		c, err := newCombo(b)
		if err != nil {
			log.Printf("ERROR: hotkey %s: %v", b.Name, err)
			continue
		}
		log.Printf("Hotkey listener configured for %s: %s", b.Name, b.Combo)
		combos = append(combos, c)
	}
	if len(combos) == 0 {
		return ErrNoBindings
	}

	listenMu.Lock()
	defer listenMu.Unlock()
	if running {
		return errors.New("hotkey listener already running")
	}
	running = true

	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("PANIC in hotkey goroutine: %v", r)
			}
			listenMu.Lock()
			running = false
			listenMu.Unlock()
		}()

		evChan := gohook.Start()
		if evChan == nil {
			log.Printf("ERROR: gohook.Start() returned nil channel")
			return
		}
		for ev := range evChan {
			switch ev.Kind {
			case gohook.KeyDown:
				for _, c := range combos {
					if c.keyDown(ev.Rawcode) {
						log.Printf("Hotkey activated: %s", c.name)
						if c.onPress != nil {
							c.onPress()
						}
					}
				}
			case gohook.KeyUp:
				for _, c := range combos {
					c.keyUp(ev.Rawcode)
				}
			}
		}
		log.Printf("Event channel closed")
	}()
	return nil
}

// Stop ends the gohook event stream.
func Stop() {
	gohook.End()
}

type keyState struct {
	name     string
	rawcodes []uint16
	pressed  bool
}

// combo tracks which keys of one binding are currently held. Only the
// listener goroutine touches it.
type combo struct {
	name    string
	keys    []keyState
	onPress func()
}

func newCombo(b Binding) (*combo, error) {
	c := &combo{name: b.Name, onPress: b.OnPress}
	for _, keyName := range parseHotkey(b.Combo) {
		rawcodes := keyNameToRawcodes(keyName)
		if len(rawcodes) == 0 {
			return nil, fmt.Errorf("cannot map key %q in %q", keyName, b.Combo)
		}
		c.keys = append(c.keys, keyState{name: keyName, rawcodes: rawcodes})
	}
	if len(c.keys) == 0 {
		return nil, fmt.Errorf("empty hotkey %q", b.Combo)
	}
	return c, nil
}

// keyDown records a press and reports whether the full combination is now
// held. States reset after firing so holding the keys fires once.
func (c *combo) keyDown(raw uint16) bool {
	c.set(raw, true)
	for _, k := range c.keys {
		if !k.pressed {
			return false
		}
	}
	for i := range c.keys {
		c.keys[i].pressed = false
	}
	return true
}

func (c *combo) keyUp(raw uint16) {
	c.set(raw, false)
}

func (c *combo) set(raw uint16, pressed bool) {
	for i := range c.keys {
		for _, rc := range c.keys[i].rawcodes {
			if rc == raw {
				c.keys[i].pressed = pressed
				break
			}
		}
	}
}

// parseHotkey converts a hotkey string like "Ctrl+Alt+q" to normalized key names
func parseHotkey(hotkeyConfig string) []string {
	var keys []string
	for _, part := range strings.Split(strings.ToLower(hotkeyConfig), "+") {
		part = strings.TrimSpace(part)
		switch part {
		case "":
			continue
		case "control":
			keys = append(keys, "ctrl")
		case "win", "cmd", "super":
			keys = append(keys, "cmd")
		default:
			keys = append(keys, part)
		}
	}
	return keys
}

// Windows virtual key codes for named keys. Modifiers list the left and
// right variants.
var namedRawcodes = map[string][]uint16{
	"ctrl":        {162, 163}, // VK_LCONTROL, VK_RCONTROL
	"alt":         {164, 165}, // VK_LMENU, VK_RMENU
	"shift":       {160, 161}, // VK_LSHIFT, VK_RSHIFT
	"cmd":         {91, 92},   // VK_LWIN, VK_RWIN
	"win":         {91, 92},
	"super":       {91, 92},
	"space":       {32},
	"enter":       {13},
	"return":      {13},
	"esc":         {27},
	"escape":      {27},
	"tab":         {9},
	"backspace":   {8},
	"delete":      {46},
	"del":         {46},
	"insert":      {45},
	"ins":         {45},
	"home":        {36},
	"end":         {35},
	"pageup":      {33},
	"pgup":        {33},
	"pagedown":    {34},
	"pgdn":        {34},
	"left":        {37},
	"up":          {38},
	"right":       {39},
	"down":        {40},
	"printscreen": {44}, // VK_SNAPSHOT
	"prtsc":       {44},
}

// keyNameToRawcodes maps a key name to its Windows virtual key code rawcodes.
func keyNameToRawcodes(keyName string) []uint16 {
	keyName = strings.ToLower(strings.TrimSpace(keyName))
	if codes, ok := namedRawcodes[keyName]; ok {
		return codes
	}
	if len(keyName) == 1 {
		switch ch := keyName[0]; {
		case ch >= 'a' && ch <= 'z':
			return []uint16{uint16('A' + ch - 'a')} // 0x41-0x5A
		case ch >= '0' && ch <= '9':
			return []uint16{uint16(ch)} // 0x30-0x39
		}
	}
	if strings.HasPrefix(keyName, "f") {
		if n, err := strconv.Atoi(keyName[1:]); err == nil && n >= 1 && n <= 24 {
			return []uint16{uint16(111 + n)} // VK_F1 = 112
		}
	}
	log.Printf("WARNING: Unknown key name '%s', cannot map to rawcode", keyName)
	return nil
}
