package device

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDevice_Player(t *testing.T) {
	tests := []struct {
		name     string
		device   Device
		expected int
	}{
		{
			name:     "explicit player number wins over descriptor",
			device:   Device{Descriptor: "Gamepad 3", PlayerNumber: 2, HasPlayerNumber: true},
			expected: 2,
		},
		{
			name:     "numeric descriptor suffix",
			device:   Device{Descriptor: "Gamepad 3"},
			expected: 3,
		},
		{
			name:     "multi-digit suffix",
			device:   Device{Descriptor: "Pad 12"},
			expected: 12,
		},
		{
			name:     "suffix without separating space",
			device:   Device{Descriptor: "Joystick4"},
			expected: 4,
		},
		{
			name:     "trailing whitespace is ignored",
			device:   Device{Descriptor: "Gamepad 2  "},
			expected: 2,
		},
		{
			name:     "no suffix defaults to player one",
			device:   Device{Descriptor: "Arcade Stick"},
			expected: 1,
		},
		{
			name:     "empty descriptor defaults to player one",
			device:   Device{},
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.device.Player())
		})
	}
}

func TestID_KeyboardNeverCollidesWithGamepads(t *testing.T) {
	assert.NotEqual(t, KeyboardID, GamepadID(0))
	assert.NotEqual(t, GamepadID(1), GamepadID(2))
	assert.Equal(t, GamepadID(1), GamepadID(1))
}

func TestKeyboardDevice(t *testing.T) {
	kb := KeyboardDevice()
	assert.Equal(t, KeyboardID, kb.ID)
	assert.True(t, kb.Connected)
	assert.Equal(t, 1, kb.Player())
}
