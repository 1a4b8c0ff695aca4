package hotkey

import (
	"testing"
)

func TestKeyNameToRawcodes(t *testing.T) {
	tests := []struct {
		keyName  string
		expected []uint16
	}{
		// Modifier keys
		{"ctrl", []uint16{162, 163}},
		{"alt", []uint16{164, 165}},
		{"shift", []uint16{160, 161}},
		{"win", []uint16{91, 92}},
		{"cmd", []uint16{91, 92}},
		{"super", []uint16{91, 92}},

		// Letter keys
		{"a", []uint16{65}},
		{"q", []uint16{81}},
		{"z", []uint16{90}},
		{"A", []uint16{65}},

		// Number keys
		{"0", []uint16{48}},
		{"1", []uint16{49}},
		{"9", []uint16{57}},

		// Function keys
		{"f1", []uint16{112}},
		{"f12", []uint16{123}},
		{"f13", []uint16{124}},
		{"f24", []uint16{135}},

		// Special keys
		{"space", []uint16{32}},
		{"enter", []uint16{13}},
		{"esc", []uint16{27}},
		{"printscreen", []uint16{44}},

		// Unknown keys
		{"unknown", nil},
		{"f25", nil},
		{"f0", nil},
	}

	for _, tt := range tests {
		t.Run(tt.keyName, func(t *testing.T) {
			result := keyNameToRawcodes(tt.keyName)
			if len(result) != len(tt.expected) {
				t.Errorf("keyNameToRawcodes(%q) returned %d rawcodes, expected %d",
					tt.keyName, len(result), len(tt.expected))
				return
			}
			for i := range result {
				if result[i] != tt.expected[i] {
					t.Errorf("keyNameToRawcodes(%q)[%d] = %d, expected %d",
						tt.keyName, i, result[i], tt.expected[i])
				}
			}
		})
	}
}

func TestParseHotkey(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"Ctrl+Shift+A", []string{"ctrl", "shift", "a"}},
		{"Ctrl+alt+e", []string{"ctrl", "alt", "e"}},
		{"Alt+F4", []string{"alt", "f4"}},
		{"Control+Shift+F13", []string{"ctrl", "shift", "f13"}},
		{"Ctrl+Win+E", []string{"ctrl", "cmd", "e"}},
		{"Super+Alt+T", []string{"cmd", "alt", "t"}},
		{" Ctrl + PrintScreen ", []string{"ctrl", "printscreen"}},
		{"Ctrl++A", []string{"ctrl", "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := parseHotkey(tt.input)
			if len(result) != len(tt.expected) {
				t.Errorf("parseHotkey(%q) returned %d keys, expected %d",
					tt.input, len(result), len(tt.expected))
				return
			}
			for i := range result {
				if result[i] != tt.expected[i] {
					t.Errorf("parseHotkey(%q)[%d] = %q, expected %q",
						tt.input, i, result[i], tt.expected[i])
				}
			}
		})
	}
}

func TestComboFiresOncePerChord(t *testing.T) {
	c, err := newCombo(Binding{Name: "capture", Combo: "Ctrl+Shift+A"})
	if err != nil {
		t.Fatalf("newCombo: %v", err)
	}

	if c.keyDown(162) || c.keyDown(161) {
		t.Fatal("fired before all keys were held")
	}
	if !c.keyDown(65) {
		t.Fatal("expected chord to fire on the last key")
	}
	// Auto-repeat of the letter alone must not fire again.
	if c.keyDown(65) {
		t.Fatal("fired again without re-pressing modifiers")
	}

	c.keyUp(65)
	c.keyUp(161)
	c.keyUp(162)
	c.keyDown(163) // right ctrl
	c.keyDown(160) // left shift
	if !c.keyDown(65) {
		t.Fatal("expected chord with right/left modifier variants to fire")
	}
}

func TestComboReleaseClearsKey(t *testing.T) {
	c, err := newCombo(Binding{Name: "picker", Combo: "Alt+P"})
	if err != nil {
		t.Fatalf("newCombo: %v", err)
	}
	c.keyDown(164)
	c.keyUp(164)
	if c.keyDown(80) {
		t.Fatal("fired after modifier was released")
	}
}

func TestNewComboRejectsUnknownKey(t *testing.T) {
	if _, err := newCombo(Binding{Name: "bad", Combo: "Ctrl+Nope"}); err == nil {
		t.Fatal("expected error for unknown key")
	}
	if _, err := newCombo(Binding{Name: "empty", Combo: "+"}); err == nil {
		t.Fatal("expected error for empty combo")
	}
}

func TestListenWithoutBindings(t *testing.T) {
	if err := Listen(Binding{Name: "off", Combo: ""}); err != ErrNoBindings {
		t.Fatalf("Listen() = %v, want ErrNoBindings", err)
	}
}
