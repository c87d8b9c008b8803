package msos

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usbforge/msos/winver"
)

// The decoder below exists only for tests: it re-parses serialized sets
// independently of the serializer so length fields, type codes and child
// ordering are checked against the wire layout rather than against the code
// that produced them.

type decodedRecord struct {
	typ     DescriptorType
	length  int
	payload []byte
}

type decoder struct {
	t   *testing.T
	buf []byte
	pos int
}

func (d *decoder) u16() uint16 {
	require.LessOrEqual(d.t, d.pos+2, len(d.buf), "truncated field at %d", d.pos)
	v := binary.LittleEndian.Uint16(d.buf[d.pos:])
	d.pos += 2
	return v
}

func (d *decoder) u32() uint32 {
	require.LessOrEqual(d.t, d.pos+4, len(d.buf), "truncated field at %d", d.pos)
	v := binary.LittleEndian.Uint32(d.buf[d.pos:])
	d.pos += 4
	return v
}

// record reads one feature record: wLength, wDescriptorType, payload.
func (d *decoder) record() decodedRecord {
	start := d.pos
	length := int(d.u16())
	typ := DescriptorType(d.u16())
	require.LessOrEqual(d.t, start+length, len(d.buf), "record length overruns buffer")
	payload := d.buf[d.pos : start+length]
	d.pos = start + length
	return decodedRecord{typ: typ, length: length, payload: payload}
}

func TestRoundTripDecode(t *testing.T) {
	guids, err := MultiSzProperty("DeviceInterfaceGUIDs", testGUID)
	require.NoError(t, err)

	set := &DescriptorSet{
		Version:  winver.Win10Rs4,
		Features: []Feature{CCGPDevice{}, VendorRevision(2)},
		Configurations: []ConfigurationSubset{
			{
				Configuration: 1,
				Features:      []Feature{DWordProperty("SelectiveSuspendEnabled", 1)},
				Functions: []FunctionSubset{
					{FirstInterface: 0, Features: []Feature{CompatibleID{ID: "WINUSB"}, guids}},
					{FirstInterface: 3, Features: []Feature{ResumeTime{RecoveryMs: 4, SignalingMs: 8}}},
				},
			},
			{Configuration: 2},
		},
	}

	buf, err := set.Bytes()
	require.NoError(t, err)

	d := &decoder{t: t, buf: buf}

	// Set header
	assert.Equal(t, uint16(setHeaderLen), d.u16())
	assert.Equal(t, uint16(TypeSetHeader), d.u16())
	assert.Equal(t, uint32(winver.Win10Rs4), d.u32())
	assert.Equal(t, len(buf), int(d.u16()))

	// Device-level features in declaration order
	rec := d.record()
	assert.Equal(t, TypeFeatureCCGPDevice, rec.typ)
	assert.Empty(t, rec.payload)

	rec = d.record()
	assert.Equal(t, TypeFeatureVendorRev, rec.typ)
	assert.Equal(t, []byte{2, 0}, rec.payload)

	// Configuration subset 1
	assert.Equal(t, uint16(configSubsetLen), d.u16())
	assert.Equal(t, uint16(TypeSubsetConfiguration), d.u16())
	cfgStart := d.pos - 4
	assert.Equal(t, uint8(1), buf[d.pos])
	assert.Equal(t, uint8(0), buf[d.pos+1])
	d.pos += 2
	cfgLen := int(d.u16())
	assert.Equal(t, set.Configurations[0].totalLen(), cfgLen)

	rec = d.record()
	assert.Equal(t, TypeFeatureRegProperty, rec.typ)
	assert.Equal(t, uint16(RegDwordLittleEndian), binary.LittleEndian.Uint16(rec.payload))
	nameLen := int(binary.LittleEndian.Uint16(rec.payload[2:]))
	name := rec.payload[4 : 4+nameLen]
	assert.Equal(t, utf16Null(t, "SelectiveSuspendEnabled"), name)
	dataLen := int(binary.LittleEndian.Uint16(rec.payload[4+nameLen:]))
	assert.Equal(t, []byte{1, 0, 0, 0}, rec.payload[6+nameLen:6+nameLen+dataLen])

	// Function subset 0
	assert.Equal(t, uint16(functionSubsetLen), d.u16())
	assert.Equal(t, uint16(TypeSubsetFunction), d.u16())
	assert.Equal(t, uint8(0), buf[d.pos])
	d.pos += 2
	fn0Len := int(d.u16())
	assert.Equal(t, set.Configurations[0].Functions[0].totalLen(), fn0Len)

	rec = d.record()
	assert.Equal(t, TypeFeatureCompatibleID, rec.typ)
	assert.Equal(t, []byte("WINUSB\x00\x00"), rec.payload[:8])
	assert.Equal(t, make([]byte, 8), rec.payload[8:])

	rec = d.record()
	assert.Equal(t, TypeFeatureRegProperty, rec.typ)

	// Function subset 1
	assert.Equal(t, uint16(functionSubsetLen), d.u16())
	assert.Equal(t, uint16(TypeSubsetFunction), d.u16())
	assert.Equal(t, uint8(3), buf[d.pos])
	d.pos += 2
	_ = d.u16()

	rec = d.record()
	assert.Equal(t, TypeFeatureResumeTime, rec.typ)
	assert.Equal(t, []byte{4, 8}, rec.payload)

	// Configuration subset 1 length covers exactly its children.
	assert.Equal(t, cfgStart+cfgLen, d.pos)

	// Configuration subset 2 is header-only.
	assert.Equal(t, uint16(configSubsetLen), d.u16())
	assert.Equal(t, uint16(TypeSubsetConfiguration), d.u16())
	assert.Equal(t, uint8(2), buf[d.pos])
	d.pos += 2
	assert.Equal(t, configSubsetLen, int(d.u16()))

	assert.Equal(t, len(buf), d.pos)
}
