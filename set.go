package msos

import (
	"fmt"

	"github.com/usbforge/msos/winver"
)

// Header sizes in bytes, fixed by the MS OS 2.0 format.
const (
	setHeaderLen      = 10
	configSubsetLen   = 8
	functionSubsetLen = 8
)

// FunctionSubset scopes features to one USB function (the group of
// interfaces starting at FirstInterface) within a configuration. Only
// meaningful for composite devices or single-function devices driven by
// Usbccgp.sys.
type FunctionSubset struct {
	// FirstInterface is the interface number of the function's first interface.
	FirstInterface uint8
	Features       []Feature
}

// totalLen is the wSubsetLength value: the 8-byte header plus all features.
func (f FunctionSubset) totalLen() int {
	n := functionSubsetLen
	for _, feat := range f.Features {
		n += feat.totalLen()
	}
	return n
}

func (f FunctionSubset) validate() error {
	for _, feat := range f.Features {
		if err := feat.validate(); err != nil {
			return err
		}
	}
	return nil
}

func (f FunctionSubset) appendTo(buf []byte) []byte {
	buf = appendHeader(buf, functionSubsetLen, TypeSubsetFunction)
	n := f.totalLen()
	buf = append(buf, f.FirstInterface, 0, byte(n), byte(n>>8))
	for _, feat := range f.Features {
		buf = feat.appendTo(buf)
	}
	return buf
}

// ConfigurationSubset scopes features to one USB configuration, identified
// by its bConfigurationValue index, with optional per-function subsets.
type ConfigurationSubset struct {
	// Configuration is the bConfigurationValue of the USB configuration
	// this subset applies to.
	Configuration uint8
	Features      []Feature
	Functions     []FunctionSubset
}

// totalLen is the wTotalLength value: the 8-byte header plus all features
// and function subsets.
func (c ConfigurationSubset) totalLen() int {
	n := configSubsetLen
	for _, feat := range c.Features {
		n += feat.totalLen()
	}
	for _, fn := range c.Functions {
		n += fn.totalLen()
	}
	return n
}

func (c ConfigurationSubset) validate() error {
	for _, feat := range c.Features {
		if err := feat.validate(); err != nil {
			return err
		}
	}
	for _, fn := range c.Functions {
		if err := fn.validate(); err != nil {
			return err
		}
	}
	return nil
}

func (c ConfigurationSubset) appendTo(buf []byte) []byte {
	buf = appendHeader(buf, configSubsetLen, TypeSubsetConfiguration)
	n := c.totalLen()
	buf = append(buf, c.Configuration, 0, byte(n), byte(n>>8))
	for _, feat := range c.Features {
		buf = feat.appendTo(buf)
	}
	for _, fn := range c.Functions {
		buf = fn.appendTo(buf)
	}
	return buf
}

// DescriptorSet is the root of one MS OS 2.0 descriptor tree: device-level
// features plus per-configuration subsets, tagged with the minimum Windows
// version it applies to. Children serialize in declaration order; Windows
// parses them strictly in byte order.
type DescriptorSet struct {
	// Version is the minimum Windows version the set applies to.
	Version winver.Version
	// Features apply to the whole device regardless of configuration.
	Features       []Feature
	Configurations []ConfigurationSubset
}

// Size is the total serialized length of the set, the wTotalLength header
// value. Computed bottom-up from the children before any byte is written.
func (s *DescriptorSet) Size() int {
	n := setHeaderLen
	for _, feat := range s.Features {
		n += feat.totalLen()
	}
	for _, c := range s.Configurations {
		n += c.totalLen()
	}
	return n
}

// Validate checks the whole tree: Windows version, every feature's fields
// and encodings, and that the total size fits the 16-bit wTotalLength
// field. A set that validates serializes without error.
func (s *DescriptorSet) Validate() error {
	if err := s.Version.Validate(); err != nil {
		return err
	}
	for _, feat := range s.Features {
		if err := feat.validate(); err != nil {
			return err
		}
	}
	for _, c := range s.Configurations {
		if err := c.validate(); err != nil {
			return err
		}
	}
	if n := s.Size(); n > 0xFFFF {
		return fmt.Errorf("descriptor set size %d exceeds 16-bit wTotalLength field", n)
	}
	return nil
}

// Bytes validates the tree and serializes it into a buffer of exactly
// Size() bytes: set header, then features, then configuration subsets,
// each in declaration order.
func (s *DescriptorSet) Bytes() ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	size := s.Size()
	buf := appendHeader(make([]byte, 0, size), setHeaderLen, TypeSetHeader)
	ver := s.Version.Bytes()
	buf = append(buf, ver[:]...)
	buf = append(buf, byte(size), byte(size>>8))
	for _, feat := range s.Features {
		buf = feat.appendTo(buf)
	}
	for _, c := range s.Configurations {
		buf = c.appendTo(buf)
	}
	if len(buf) != size {
		panic(fmt.Sprintf("msos: serialized %d bytes, size computed %d", len(buf), size))
	}
	return buf, nil
}

// MustBytes is Bytes for package-level initialization of static descriptor
// data; it panics on an invalid tree.
func (s *DescriptorSet) MustBytes() []byte {
	buf, err := s.Bytes()
	if err != nil {
		panic("msos: " + err.Error())
	}
	return buf
}
