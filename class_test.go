package msos

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usbforge/msos/winver"
)

func testClass(t *testing.T) (*Class, Capabilities) {
	t.Helper()
	caps := Capabilities{Infos: []CapabilityInfo{
		{Set: selectiveSuspendSet(winver.WinBlue, 0), AltEnumCmd: AltEnumNotSupported},
		{Set: selectiveSuspendSet(winver.Win10, 1), AltEnumCmd: 0x20},
	}}
	cls, err := NewClass(caps)
	require.NoError(t, err)
	return cls, caps
}

func TestNewClassBuildsAllBuffers(t *testing.T) {
	cls, caps := testClass(t)

	expectedData, err := caps.Data()
	require.NoError(t, err)
	assert.Equal(t, expectedData, cls.CapabilityData)

	require.Len(t, cls.DescriptorSets, 2)
	for i, info := range caps.Infos {
		want, err := info.Set.Bytes()
		require.NoError(t, err)
		assert.Equal(t, want, cls.DescriptorSets[i])
	}
}

func TestNewClassRejectsInvalidSet(t *testing.T) {
	caps := Capabilities{Infos: []CapabilityInfo{
		{Set: &DescriptorSet{Version: winver.Win7}},
	}}
	_, err := NewClass(caps)
	require.Error(t, err)
}

func TestDescriptorSetByVendorCode(t *testing.T) {
	cls, _ := testClass(t)

	got, ok := cls.DescriptorSet(1)
	require.True(t, ok)
	assert.Equal(t, cls.DescriptorSets[0], got)

	got, ok = cls.DescriptorSet(2)
	require.True(t, ok)
	assert.Equal(t, cls.DescriptorSets[1], got)

	_, ok = cls.DescriptorSet(0)
	assert.False(t, ok)
	_, ok = cls.DescriptorSet(3)
	assert.False(t, ok)
}

func TestHandleControlIn(t *testing.T) {
	cls, _ := testClass(t)

	const vendorDeviceIn = 0xC0

	cases := []struct {
		name          string
		bmRequestType uint8
		bRequest      uint8
		wIndex        uint16
		want          []byte
		handled       bool
	}{
		{
			name:          "vendor get descriptor set 1",
			bmRequestType: vendorDeviceIn,
			bRequest:      1,
			wIndex:        RequestIndexDescriptor,
			want:          cls.DescriptorSets[0],
			handled:       true,
		},
		{
			name:          "vendor get descriptor set 2",
			bmRequestType: vendorDeviceIn,
			bRequest:      2,
			wIndex:        RequestIndexDescriptor,
			want:          cls.DescriptorSets[1],
			handled:       true,
		},
		{
			name:          "unknown vendor code",
			bmRequestType: vendorDeviceIn,
			bRequest:      9,
			wIndex:        RequestIndexDescriptor,
			handled:       false,
		},
		{
			name:          "standard request ignored",
			bmRequestType: 0x80,
			bRequest:      1,
			wIndex:        RequestIndexDescriptor,
			handled:       false,
		},
		{
			name:          "interface recipient ignored",
			bmRequestType: 0xC1,
			bRequest:      1,
			wIndex:        RequestIndexDescriptor,
			handled:       false,
		},
		{
			name:          "alt enumeration index not served",
			bmRequestType: vendorDeviceIn,
			bRequest:      1,
			wIndex:        RequestIndexSetAltEnumeration,
			handled:       false,
		},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			got, handled := cls.HandleControlIn(tt.bmRequestType, tt.bRequest, tt.wIndex)
			assert.Equal(t, tt.handled, handled)
			assert.Equal(t, tt.want, got)
		})
	}
}
