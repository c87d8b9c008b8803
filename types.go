// Package msos builds Microsoft OS 2.0 descriptor sets and the matching BOS
// platform capability payload as exact wire bytes.
//
// The descriptor tree (DescriptorSet, ConfigurationSubset, FunctionSubset and
// the feature descriptors) is authored as plain Go values, validated once,
// and serialized into a fixed-size buffer whose layout Windows parses to
// auto-select drivers and install registry properties without an INF file.
// Everything here is a pure function of the tree: nothing is mutated after
// construction and the produced buffers are safe to share between readers.
package msos

// DescriptorType identifies an MS OS 2.0 descriptor record on the wire
// (the wDescriptorType field).
type DescriptorType uint16

const (
	TypeSetHeader           DescriptorType = 0x00
	TypeSubsetConfiguration DescriptorType = 0x01
	TypeSubsetFunction      DescriptorType = 0x02
	TypeFeatureCompatibleID DescriptorType = 0x03
	TypeFeatureRegProperty  DescriptorType = 0x04
	TypeFeatureResumeTime   DescriptorType = 0x05
	TypeFeatureModelID      DescriptorType = 0x06
	TypeFeatureCCGPDevice   DescriptorType = 0x07
	TypeFeatureVendorRev    DescriptorType = 0x08
)

// PropertyDataType is the registry value type of a RegistryProperty
// (the wPropertyDataType field).
type PropertyDataType uint16

const (
	// RegSz is a null-terminated Unicode string (REG_SZ).
	RegSz PropertyDataType = 1
	// RegExpandSz is a null-terminated Unicode string containing
	// environment variable references (REG_EXPAND_SZ).
	RegExpandSz PropertyDataType = 2
	// RegBinary is free-form binary data (REG_BINARY).
	RegBinary PropertyDataType = 3
	// RegDwordLittleEndian is a little-endian 32-bit integer (REG_DWORD_LITTLE_ENDIAN).
	RegDwordLittleEndian PropertyDataType = 4
	// RegDwordBigEndian is a big-endian 32-bit integer (REG_DWORD_BIG_ENDIAN).
	RegDwordBigEndian PropertyDataType = 5
	// RegLink is a null-terminated Unicode string naming a symbolic link (REG_LINK).
	RegLink PropertyDataType = 6
	// RegMultiSz is a sequence of null-terminated Unicode strings (REG_MULTI_SZ).
	RegMultiSz PropertyDataType = 7
)

// wIndex values of the MS OS 2.0 vendor control requests.
const (
	// RequestIndexDescriptor selects the "retrieve descriptor set" request.
	RequestIndexDescriptor uint16 = 0x07
	// RequestIndexSetAltEnumeration selects the "set alternate enumeration" command.
	RequestIndexSetAltEnumeration uint16 = 0x08
)

// AltEnumNotSupported is the bAltEnumCode value meaning the device does not
// support alternate enumeration. Callers assigning real alternate
// enumeration command codes must keep them distinct from this sentinel; the
// wrapper does not police the vendor command code space.
const AltEnumNotSupported uint8 = 0

// appendHeader appends the common wLength/wDescriptorType prefix every
// MS OS 2.0 record starts with.
func appendHeader(buf []byte, length int, typ DescriptorType) []byte {
	return append(buf,
		byte(length), byte(length>>8),
		byte(typ), byte(typ>>8),
	)
}
