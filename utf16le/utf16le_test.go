package utf16le_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usbforge/msos/utf16le"
)

func TestLen(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"A", 1},
		{"WINUSB", 6},
		{"DeviceInterfaceGUIDs", 20},
		{"naïve", 5},
		{"日本語", 3},
	}
	for _, tt := range cases {
		got, err := utf16le.Len(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "Len(%q)", tt.in)
	}
}

func TestLenRejectsNonBMP(t *testing.T) {
	_, err := utf16le.Len("emoji \U0001F600")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "surrogate")
}

func TestString(t *testing.T) {
	got, err := utf16le.String("Ab")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x41, 0x00, 0x62, 0x00, 0x00, 0x00}, got)
}

func TestStringsMultiTerminator(t *testing.T) {
	got, err := utf16le.Strings("A", "BC")
	require.NoError(t, err)
	assert.Equal(t, []byte{
		0x41, 0x00, 0x00, 0x00,
		0x42, 0x00, 0x43, 0x00, 0x00, 0x00,
		0x00, 0x00,
	}, got)
}

func TestStringsEmptyList(t *testing.T) {
	got, err := utf16le.Strings()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x00}, got)
}

func TestAppendRejectsSurrogateMidString(t *testing.T) {
	_, err := utf16le.Append([]byte{0xFF}, "ok\U0001F4A9")
	require.Error(t, err)

	_, err = utf16le.Strings("fine", "bad\U0001F4A9")
	require.Error(t, err)
}

func TestAppendNull(t *testing.T) {
	got, err := utf16le.AppendNull([]byte{0x01}, "é")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0xE9, 0x00, 0x00, 0x00}, got)
}

func TestDWord(t *testing.T) {
	assert.Equal(t, []byte{0x78, 0x56, 0x34, 0x12}, utf16le.DWordLE(0x12345678))
	assert.Equal(t, []byte{0x12, 0x34, 0x56, 0x78}, utf16le.DWordBE(0x12345678))
	assert.Equal(t, []byte{0x01, 0x00, 0x00, 0x00}, utf16le.DWordLE(1))
}
