package msos

// bmRequestType fields of a USB control request, per USB 2.0 §9.3.
const (
	requestTypeMask   = 0x60
	requestTypeVendor = 0x40
	recipientMask     = 0x1F
	recipientDevice   = 0x00
)

// Class serves MS OS 2.0 vendor requests from buffers built once up front.
// It owns no transfer state: the USB device framework matches and splits
// control transfers, Class only hands out the immutable byte slices, so a
// single instance is safe for concurrent readers.
type Class struct {
	// CapabilityData is the platform capability payload for the BOS
	// descriptor, from Capabilities.Data.
	CapabilityData []byte
	// DescriptorSets holds each serialized descriptor set, indexed in
	// capability entry order (vendor code 1 is index 0).
	DescriptorSets [][]byte
}

// NewClass serializes every descriptor set referenced by c plus the
// capability payload and returns a Class serving them.
func NewClass(c Capabilities) (*Class, error) {
	data, err := c.Data()
	if err != nil {
		return nil, err
	}
	sets := make([][]byte, len(c.Infos))
	for i, info := range c.Infos {
		if sets[i], err = info.Set.Bytes(); err != nil {
			return nil, err
		}
	}
	return &Class{CapabilityData: data, DescriptorSets: sets}, nil
}

// DescriptorSet returns the serialized set addressed by a host vendor
// request code, reporting false for codes outside the assigned range.
func (c *Class) DescriptorSet(vendorCode uint8) ([]byte, bool) {
	if vendorCode == 0 || int(vendorCode) > len(c.DescriptorSets) {
		return nil, false
	}
	return c.DescriptorSets[vendorCode-1], true
}

// HandleControlIn resolves an IN control request against the descriptor
// sets. It answers only vendor requests addressed to the device with
// wIndex selecting the MS OS 2.0 descriptor; for everything else it
// reports false so the caller's framework can dispatch the request
// elsewhere. wValue is ignored, as hosts are not consistent about it.
func (c *Class) HandleControlIn(bmRequestType, bRequest uint8, wIndex uint16) ([]byte, bool) {
	if bmRequestType&requestTypeMask != requestTypeVendor ||
		bmRequestType&recipientMask != recipientDevice ||
		wIndex != RequestIndexDescriptor {
		return nil, false
	}
	return c.DescriptorSet(bRequest)
}
