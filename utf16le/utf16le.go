// Package utf16le encodes strings and registry values as the little-endian
// UTF-16 byte sequences required by Microsoft OS 2.0 descriptors.
//
// Only the Basic Multilingual Plane is supported: the descriptor format's
// consumers (property names, interface GUIDs, registry strings) never need
// surrogate pairs, and rejecting them keeps every length computation a pure
// function of the code-unit count.
package utf16le

import (
	"fmt"
	"unicode/utf16"
)

// Len returns the number of UTF-16 code units needed to encode s, excluding
// any terminator. It fails if s contains a code point outside the BMP.
func Len(s string) (int, error) {
	n := 0
	for _, r := range s {
		if utf16.IsSurrogate(r) || r > 0xFFFF {
			return 0, fmt.Errorf("code point %U requires a surrogate pair, not representable", r)
		}
		n++
	}
	return n, nil
}

// Append appends the UTF-16LE encoding of s to dst, without a terminator.
func Append(dst []byte, s string) ([]byte, error) {
	for _, r := range s {
		if utf16.IsSurrogate(r) || r > 0xFFFF {
			return nil, fmt.Errorf("code point %U requires a surrogate pair, not representable", r)
		}
		dst = append(dst, byte(r), byte(r>>8))
	}
	return dst, nil
}

// AppendNull appends the UTF-16LE encoding of s followed by a single 0x0000
// terminator code unit.
func AppendNull(dst []byte, s string) ([]byte, error) {
	dst, err := Append(dst, s)
	if err != nil {
		return nil, err
	}
	return append(dst, 0, 0), nil
}

// String returns the null-terminated UTF-16LE encoding of s, as used for
// REG_SZ, REG_EXPAND_SZ and REG_LINK property values.
func String(s string) ([]byte, error) {
	return AppendNull(nil, s)
}

// Strings returns the REG_MULTI_SZ encoding of values: each string
// null-terminated, with one extra trailing null code unit terminating the
// list. Zero values yields just the list terminator.
func Strings(values ...string) ([]byte, error) {
	var buf []byte
	var err error
	for _, v := range values {
		if buf, err = AppendNull(buf, v); err != nil {
			return nil, err
		}
	}
	return append(buf, 0, 0), nil
}

// DWordLE encodes v as the 4-byte little-endian value used for
// REG_DWORD_LITTLE_ENDIAN properties.
func DWordLE(v uint32) []byte {
	return []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
}

// DWordBE encodes v as the 4-byte big-endian value used for
// REG_DWORD_BIG_ENDIAN properties.
func DWordBE(v uint32) []byte {
	return []byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)}
}
