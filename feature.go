package msos

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/usbforge/msos/utf16le"
)

// Feature is one MS OS 2.0 feature descriptor. It is a closed set: exactly
// CompatibleID, RegistryProperty, ResumeTime, ModelID, CCGPDevice and
// VendorRevision implement it. Each variant knows its own type code, total
// serialized length and payload layout, so container sizes always derive
// from the same functions the serializer writes with.
type Feature interface {
	descriptorType() DescriptorType
	totalLen() int
	validate() error
	appendTo(buf []byte) []byte
}

// mustAppendNull appends a validated UTF-16LE null-terminated string.
// Features are validated before any byte is written, so an encoding error
// here means the tree was serialized without validation.
func mustAppendNull(buf []byte, s string) []byte {
	out, err := utf16le.AppendNull(buf, s)
	if err != nil {
		panic("msos: unvalidated string reached serializer: " + err.Error())
	}
	return out
}

// bmpLen counts UTF-16 code units of a string already known to be BMP-only.
func bmpLen(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}

// CompatibleID declares a compatible device ID, the 8+8 byte string pair
// Windows matches against generic drivers such as WinUSB. IDs shorter than
// 8 bytes are zero-padded on the wire.
type CompatibleID struct {
	ID    string
	SubID string
}

func (CompatibleID) descriptorType() DescriptorType { return TypeFeatureCompatibleID }

func (CompatibleID) totalLen() int { return 2 + 2 + 8 + 8 }

func (c CompatibleID) validate() error {
	if len(c.ID) > 8 {
		return fmt.Errorf("compatible ID %q longer than 8 bytes", c.ID)
	}
	if len(c.SubID) > 8 {
		return fmt.Errorf("sub-compatible ID %q longer than 8 bytes", c.SubID)
	}
	return nil
}

func (c CompatibleID) appendTo(buf []byte) []byte {
	buf = appendHeader(buf, c.totalLen(), c.descriptorType())
	buf = appendPadded(buf, c.ID, 8)
	return appendPadded(buf, c.SubID, 8)
}

func appendPadded(buf []byte, s string, n int) []byte {
	buf = append(buf, s...)
	for i := len(s); i < n; i++ {
		buf = append(buf, 0)
	}
	return buf
}

// RegistryProperty adds a typed registry value installed under the device's
// (or function's) registry key when the driver binds. Name is encoded as a
// null-terminated UTF-16LE string; Data must already be encoded per
// DataType (use the property constructors or package utf16le).
type RegistryProperty struct {
	DataType PropertyDataType
	Name     string
	Data     []byte
}

// SzProperty builds a REG_SZ property from a plain string value.
func SzProperty(name, value string) (RegistryProperty, error) {
	data, err := utf16le.String(value)
	if err != nil {
		return RegistryProperty{}, fmt.Errorf("property %q: %w", name, err)
	}
	return RegistryProperty{DataType: RegSz, Name: name, Data: data}, nil
}

// ExpandSzProperty builds a REG_EXPAND_SZ property from a plain string value.
func ExpandSzProperty(name, value string) (RegistryProperty, error) {
	data, err := utf16le.String(value)
	if err != nil {
		return RegistryProperty{}, fmt.Errorf("property %q: %w", name, err)
	}
	return RegistryProperty{DataType: RegExpandSz, Name: name, Data: data}, nil
}

// LinkProperty builds a REG_LINK property naming a symbolic link target.
func LinkProperty(name, target string) (RegistryProperty, error) {
	data, err := utf16le.String(target)
	if err != nil {
		return RegistryProperty{}, fmt.Errorf("property %q: %w", name, err)
	}
	return RegistryProperty{DataType: RegLink, Name: name, Data: data}, nil
}

// MultiSzProperty builds a REG_MULTI_SZ property from a list of strings.
func MultiSzProperty(name string, values ...string) (RegistryProperty, error) {
	data, err := utf16le.Strings(values...)
	if err != nil {
		return RegistryProperty{}, fmt.Errorf("property %q: %w", name, err)
	}
	return RegistryProperty{DataType: RegMultiSz, Name: name, Data: data}, nil
}

// InterfaceGUIDsProperty builds the conventional DeviceInterfaceGUIDs
// REG_MULTI_SZ property from parsed GUIDs, rendering each in registry
// brace form.
func InterfaceGUIDsProperty(guids ...uuid.UUID) (RegistryProperty, error) {
	values := make([]string, len(guids))
	for i, g := range guids {
		values[i] = "{" + g.String() + "}"
	}
	return MultiSzProperty("DeviceInterfaceGUIDs", values...)
}

// DWordProperty builds a REG_DWORD_LITTLE_ENDIAN property.
func DWordProperty(name string, value uint32) RegistryProperty {
	return RegistryProperty{DataType: RegDwordLittleEndian, Name: name, Data: utf16le.DWordLE(value)}
}

// DWordBEProperty builds a REG_DWORD_BIG_ENDIAN property.
func DWordBEProperty(name string, value uint32) RegistryProperty {
	return RegistryProperty{DataType: RegDwordBigEndian, Name: name, Data: utf16le.DWordBE(value)}
}

// BinaryProperty builds a REG_BINARY property from raw bytes.
func BinaryProperty(name string, data []byte) RegistryProperty {
	return RegistryProperty{DataType: RegBinary, Name: name, Data: data}
}

func (RegistryProperty) descriptorType() DescriptorType { return TypeFeatureRegProperty }

// totalLen is wLength + wDescriptorType + wPropertyDataType +
// wPropertyNameLength + name (null-terminated) + wPropertyDataLength + data.
func (p RegistryProperty) totalLen() int {
	return 2 + 2 + 2 + 2 + p.nameLen() + 2 + len(p.Data)
}

// nameLen is the wPropertyNameLength value: encoded bytes including the
// null terminator.
func (p RegistryProperty) nameLen() int {
	return 2 * (bmpLen(p.Name) + 1)
}

func (p RegistryProperty) validate() error {
	if p.DataType < RegSz || p.DataType > RegMultiSz {
		return fmt.Errorf("property %q: invalid data type %d", p.Name, p.DataType)
	}
	if _, err := utf16le.Len(p.Name); err != nil {
		return fmt.Errorf("property name %q: %w", p.Name, err)
	}
	if n := p.nameLen(); n > 0xFFFF {
		return fmt.Errorf("property %q: name length %d exceeds 16-bit field", p.Name, n)
	}
	if len(p.Data) > 0xFFFF {
		return fmt.Errorf("property %q: data length %d exceeds 16-bit field", p.Name, len(p.Data))
	}
	return nil
}

func (p RegistryProperty) appendTo(buf []byte) []byte {
	buf = appendHeader(buf, p.totalLen(), p.descriptorType())
	buf = append(buf, byte(p.DataType), byte(p.DataType>>8))
	n := p.nameLen()
	buf = append(buf, byte(n), byte(n>>8))
	buf = mustAppendNull(buf, p.Name)
	buf = append(buf, byte(len(p.Data)), byte(len(p.Data)>>8))
	return append(buf, p.Data...)
}

// ResumeTime tells the Windows USB stack the minimum suspend timing the
// device needs: RecoveryMs is the time to recover after port resume (0-10),
// SignalingMs the time resume signaling must be asserted (1-20).
type ResumeTime struct {
	RecoveryMs  uint8
	SignalingMs uint8
}

func (ResumeTime) descriptorType() DescriptorType { return TypeFeatureResumeTime }

func (ResumeTime) totalLen() int { return 2 + 2 + 1 + 1 }

func (r ResumeTime) validate() error {
	if r.RecoveryMs > 10 {
		return fmt.Errorf("resume recovery time %dms out of range 0-10", r.RecoveryMs)
	}
	if r.SignalingMs < 1 || r.SignalingMs > 20 {
		return fmt.Errorf("resume signaling time %dms out of range 1-20", r.SignalingMs)
	}
	return nil
}

func (r ResumeTime) appendTo(buf []byte) []byte {
	buf = appendHeader(buf, r.totalLen(), r.descriptorType())
	return append(buf, r.RecoveryMs, r.SignalingMs)
}

// ModelID uniquely identifies the physical device with a 128-bit UUID
// (RFC 4122). The 16 bytes are written to the wire as given.
type ModelID [16]byte

// NewModelID builds a ModelID from a parsed UUID.
func NewModelID(u uuid.UUID) ModelID { return ModelID(u) }

func (ModelID) descriptorType() DescriptorType { return TypeFeatureModelID }

func (ModelID) totalLen() int { return 2 + 2 + 16 }

func (ModelID) validate() error { return nil }

func (m ModelID) appendTo(buf []byte) []byte {
	buf = appendHeader(buf, m.totalLen(), m.descriptorType())
	return append(buf, m[:]...)
}

// CCGPDevice tells Windows to always treat the device as a composite device
// (bound to Usbccgp.sys). The descriptor carries no payload.
type CCGPDevice struct{}

func (CCGPDevice) descriptorType() DescriptorType { return TypeFeatureCCGPDevice }

func (CCGPDevice) totalLen() int { return 2 + 2 }

func (CCGPDevice) validate() error { return nil }

func (c CCGPDevice) appendTo(buf []byte) []byte {
	return appendHeader(buf, c.totalLen(), c.descriptorType())
}

// VendorRevision is the revision of the descriptor set's registry
// properties. Bump it whenever a property or other MS OS descriptor
// changes; must be at least 1.
type VendorRevision uint16

func (VendorRevision) descriptorType() DescriptorType { return TypeFeatureVendorRev }

func (VendorRevision) totalLen() int { return 2 + 2 + 2 }

func (v VendorRevision) validate() error {
	if v < 1 {
		return fmt.Errorf("vendor revision must be >= 1")
	}
	return nil
}

func (v VendorRevision) appendTo(buf []byte) []byte {
	buf = appendHeader(buf, v.totalLen(), v.descriptorType())
	return append(buf, byte(v), byte(v>>8))
}
