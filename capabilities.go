package msos

import (
	"fmt"

	"github.com/google/uuid"
)

// PlatformCapabilityID is the MS OS 2.0 platform capability UUID that tags
// the BOS device capability.
var PlatformCapabilityID = uuid.MustParse("D8DD60DF-4589-4CC7-9CD2-659D9E648A9F")

// BOS device capability constants for the platform capability wrapper.
const (
	// CapabilityTypePlatform is the bDevCapabilityType for platform capabilities.
	CapabilityTypePlatform uint8 = 0x05
	// DeviceCapabilityDescriptorType is the bDescriptorType of a BOS device capability.
	DeviceCapabilityDescriptorType uint8 = 0x10

	capabilityHeaderLen = 4 + 16 // bLength..bReserved + capability UUID
	capabilityInfoLen   = 4 + 2 + 1 + 1
)

// CapabilityInfo references one descriptor set exposed through the platform
// capability. The set is referenced, not owned: the same serialized bytes
// may back several device configurations.
type CapabilityInfo struct {
	Set *DescriptorSet
	// AltEnumCmd is the bAltEnumCode: a non-zero vendor command code if the
	// device can return alternate USB descriptors, or AltEnumNotSupported.
	AltEnumCmd uint8
}

// Capabilities is the ordered list of descriptor sets advertised in the
// device's BOS platform capability. Entry order fixes each set's
// bMS_VendorCode: the code for entry i is i+1.
type Capabilities struct {
	Infos []CapabilityInfo
}

// VendorCode returns the bMS_VendorCode assigned to the info at index i.
func VendorCode(i int) uint8 { return uint8(i + 1) }

// SetIndex maps a vendor request code from the host back to the descriptor
// set index it addresses, reporting false for unassigned codes.
func (c Capabilities) SetIndex(vendorCode uint8) (int, bool) {
	if vendorCode == 0 || int(vendorCode) > len(c.Infos) {
		return 0, false
	}
	return int(vendorCode) - 1, true
}

// DataLen is the length of the capability data as passed to a BOS writer:
// bReserved, the 16-byte capability UUID and one info block per set.
func (c Capabilities) DataLen() int {
	return 1 + 16 + capabilityInfoLen*len(c.Infos)
}

// Validate checks every referenced descriptor set and that the full BOS
// capability descriptor length fits its 8-bit bLength field.
func (c Capabilities) Validate() error {
	if capabilityHeaderLen+capabilityInfoLen*len(c.Infos) > 0xFF {
		return fmt.Errorf("%d capability entries exceed the 8-bit bLength field", len(c.Infos))
	}
	for i, info := range c.Infos {
		if info.Set == nil {
			return fmt.Errorf("capability entry %d has no descriptor set", i)
		}
		if err := info.Set.Validate(); err != nil {
			return fmt.Errorf("capability entry %d: %w", i, err)
		}
	}
	return nil
}

// Data serializes the capability payload handed to the BOS writer
// (everything after bLength/bDescriptorType/bDevCapabilityType): bReserved,
// the platform capability UUID in GUID byte order, then per entry
// dwWindowsVersion, the set's wTotalLength, bMS_VendorCode and bAltEnumCode.
func (c Capabilities) Data() ([]byte, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	buf := make([]byte, 0, c.DataLen())
	buf = append(buf, 0) // bReserved
	id := guidBytes(PlatformCapabilityID)
	buf = append(buf, id[:]...)
	for i, info := range c.Infos {
		ver := info.Set.Version.Bytes()
		buf = append(buf, ver[:]...)
		n := info.Set.Size()
		buf = append(buf, byte(n), byte(n>>8))
		buf = append(buf, VendorCode(i), info.AltEnumCmd)
	}
	return buf, nil
}

// Descriptor serializes the complete BOS device capability descriptor,
// i.e. Data prefixed with bLength, bDescriptorType and bDevCapabilityType.
func (c Capabilities) Descriptor() ([]byte, error) {
	data, err := c.Data()
	if err != nil {
		return nil, err
	}
	buf := make([]byte, 0, 3+len(data))
	buf = append(buf, byte(3+len(data)), DeviceCapabilityDescriptorType, CapabilityTypePlatform)
	return append(buf, data...), nil
}

// MustData is Data for package-level initialization; it panics on an
// invalid capability list.
func (c Capabilities) MustData() []byte {
	data, err := c.Data()
	if err != nil {
		panic("msos: " + err.Error())
	}
	return data
}

// guidBytes encodes a UUID in Microsoft GUID byte order: the first three
// fields little-endian, the rest as-is (RFC 4122 fields encoding).
func guidBytes(u uuid.UUID) [16]byte {
	return [16]byte{
		u[3], u[2], u[1], u[0],
		u[5], u[4],
		u[7], u[6],
		u[8], u[9],
		u[10], u[11], u[12], u[13], u[14], u[15],
	}
}
