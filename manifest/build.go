package manifest

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/usbforge/msos"
)

// Build lowers the manifest to a validated msos.Capabilities value.
func (m *Manifest) Build() (msos.Capabilities, error) {
	if len(m.Sets) == 0 {
		return msos.Capabilities{}, fmt.Errorf("manifest declares no descriptor sets")
	}
	caps := msos.Capabilities{Infos: make([]msos.CapabilityInfo, len(m.Sets))}
	for i, s := range m.Sets {
		set, err := s.build()
		if err != nil {
			return msos.Capabilities{}, fmt.Errorf("set %d: %w", i, err)
		}
		caps.Infos[i] = msos.CapabilityInfo{Set: set, AltEnumCmd: s.AltEnumCode}
	}
	if err := caps.Validate(); err != nil {
		return msos.Capabilities{}, err
	}
	return caps, nil
}

func (s Set) build() (*msos.DescriptorSet, error) {
	version, err := parseVersion(s.WindowsVersion)
	if err != nil {
		return nil, err
	}
	features, err := buildFeatures(s.Features)
	if err != nil {
		return nil, err
	}
	configs := make([]msos.ConfigurationSubset, len(s.Configurations))
	for i, c := range s.Configurations {
		cfgFeatures, err := buildFeatures(c.Features)
		if err != nil {
			return nil, fmt.Errorf("configuration %d: %w", c.Configuration, err)
		}
		functions := make([]msos.FunctionSubset, len(c.Functions))
		for j, fn := range c.Functions {
			fnFeatures, err := buildFeatures(fn.Features)
			if err != nil {
				return nil, fmt.Errorf("configuration %d function %d: %w", c.Configuration, fn.FirstInterface, err)
			}
			functions[j] = msos.FunctionSubset{FirstInterface: fn.FirstInterface, Features: fnFeatures}
		}
		configs[i] = msos.ConfigurationSubset{
			Configuration: c.Configuration,
			Features:      cfgFeatures,
			Functions:     functions,
		}
	}
	return &msos.DescriptorSet{Version: version, Features: features, Configurations: configs}, nil
}

func buildFeatures(specs []Feature) ([]msos.Feature, error) {
	if len(specs) == 0 {
		return nil, nil
	}
	features := make([]msos.Feature, len(specs))
	for i, f := range specs {
		built, err := f.build()
		if err != nil {
			return nil, err
		}
		features[i] = built
	}
	return features, nil
}

func (f Feature) build() (msos.Feature, error) {
	switch strings.ToLower(f.Kind) {
	case "compatible-id":
		return msos.CompatibleID{ID: f.ID, SubID: f.SubID}, nil
	case "registry-property":
		return f.buildProperty()
	case "resume-time":
		return msos.ResumeTime{RecoveryMs: f.RecoveryMs, SignalingMs: f.SignalingMs}, nil
	case "model-id":
		u, err := uuid.Parse(f.ModelID)
		if err != nil {
			return nil, fmt.Errorf("model id: %w", err)
		}
		return msos.NewModelID(u), nil
	case "ccgp":
		return msos.CCGPDevice{}, nil
	case "vendor-revision":
		return msos.VendorRevision(f.Revision), nil
	default:
		return nil, fmt.Errorf("unknown feature kind %q", f.Kind)
	}
}

func (f Feature) buildProperty() (msos.Feature, error) {
	if len(f.GUIDs) > 0 {
		guids := make([]uuid.UUID, len(f.GUIDs))
		for i, g := range f.GUIDs {
			u, err := uuid.Parse(strings.Trim(g, "{}"))
			if err != nil {
				return nil, fmt.Errorf("property %q: guid %q: %w", f.Name, g, err)
			}
			guids[i] = u
		}
		name := f.Name
		if name == "" {
			name = "DeviceInterfaceGUIDs"
		}
		values := make([]string, len(guids))
		for i, u := range guids {
			values[i] = "{" + u.String() + "}"
		}
		return msos.MultiSzProperty(name, values...)
	}

	switch strings.ToLower(f.Type) {
	case "sz":
		return msos.SzProperty(f.Name, f.Value)
	case "expand-sz":
		return msos.ExpandSzProperty(f.Name, f.Value)
	case "link":
		return msos.LinkProperty(f.Name, f.Value)
	case "multi-sz":
		return msos.MultiSzProperty(f.Name, f.Values...)
	case "dword":
		return msos.DWordProperty(f.Name, f.DWord), nil
	case "dword-be":
		return msos.DWordBEProperty(f.Name, f.DWord), nil
	case "binary":
		data, err := hex.DecodeString(strings.ReplaceAll(f.Hex, " ", ""))
		if err != nil {
			return nil, fmt.Errorf("property %q: hex data: %w", f.Name, err)
		}
		return msos.BinaryProperty(f.Name, data), nil
	default:
		return nil, fmt.Errorf("property %q: unknown type %q", f.Name, f.Type)
	}
}
