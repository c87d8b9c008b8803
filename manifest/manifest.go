// Package manifest loads declarative descriptions of MS OS 2.0 descriptor
// sets from JSON, YAML or TOML files and lowers them to msos trees. It is
// the file-format front end for the msosgen tool; library users building
// trees in Go should use package msos directly.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"

	"github.com/usbforge/msos/winver"
)

// Manifest is the root document: one entry per descriptor set, in BOS
// capability order (which fixes each set's vendor code).
type Manifest struct {
	Sets []Set `json:"sets" yaml:"sets" toml:"sets"`
}

// Set describes one MS OS 2.0 descriptor set.
type Set struct {
	// WindowsVersion is a version name ("win8.1", "win10", "win10-1809", ...)
	// or a hex NTDDI constant ("0x06030000").
	WindowsVersion string `json:"windowsVersion" yaml:"windowsVersion" toml:"windowsVersion"`
	// AltEnumCode is the bAltEnumCode for this set's capability entry;
	// zero (the default) means alternate enumeration is not supported.
	AltEnumCode    uint8           `json:"altEnumCode,omitempty" yaml:"altEnumCode,omitempty" toml:"altEnumCode,omitempty"`
	Features       []Feature       `json:"features,omitempty" yaml:"features,omitempty" toml:"features,omitempty"`
	Configurations []Configuration `json:"configurations,omitempty" yaml:"configurations,omitempty" toml:"configurations,omitempty"`
}

// Configuration describes a configuration subset.
type Configuration struct {
	Configuration uint8      `json:"configuration" yaml:"configuration" toml:"configuration"`
	Features      []Feature  `json:"features,omitempty" yaml:"features,omitempty" toml:"features,omitempty"`
	Functions     []Function `json:"functions,omitempty" yaml:"functions,omitempty" toml:"functions,omitempty"`
}

// Function describes a function subset.
type Function struct {
	FirstInterface uint8     `json:"firstInterface" yaml:"firstInterface" toml:"firstInterface"`
	Features       []Feature `json:"features,omitempty" yaml:"features,omitempty" toml:"features,omitempty"`
}

// Feature describes one feature descriptor. Kind selects the variant and
// which of the remaining fields apply.
type Feature struct {
	// Kind is one of: compatible-id, registry-property, resume-time,
	// model-id, ccgp, vendor-revision.
	Kind string `json:"kind" yaml:"kind" toml:"kind"`

	// compatible-id
	ID    string `json:"id,omitempty" yaml:"id,omitempty" toml:"id,omitempty"`
	SubID string `json:"subId,omitempty" yaml:"subId,omitempty" toml:"subId,omitempty"`

	// registry-property: Name plus exactly one value form matching Type
	// (sz, expand-sz, link, multi-sz, dword, dword-be, binary). GUIDs is a
	// shorthand for a DeviceInterfaceGUIDs-style multi-sz of brace-wrapped
	// GUIDs.
	Name   string   `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	Type   string   `json:"type,omitempty" yaml:"type,omitempty" toml:"type,omitempty"`
	Value  string   `json:"value,omitempty" yaml:"value,omitempty" toml:"value,omitempty"`
	Values []string `json:"values,omitempty" yaml:"values,omitempty" toml:"values,omitempty"`
	DWord  uint32   `json:"dword,omitempty" yaml:"dword,omitempty" toml:"dword,omitempty"`
	Hex    string   `json:"hex,omitempty" yaml:"hex,omitempty" toml:"hex,omitempty"`
	GUIDs  []string `json:"guids,omitempty" yaml:"guids,omitempty" toml:"guids,omitempty"`

	// resume-time
	RecoveryMs  uint8 `json:"recoveryMs,omitempty" yaml:"recoveryMs,omitempty" toml:"recoveryMs,omitempty"`
	SignalingMs uint8 `json:"signalingMs,omitempty" yaml:"signalingMs,omitempty" toml:"signalingMs,omitempty"`

	// model-id
	ModelID string `json:"modelId,omitempty" yaml:"modelId,omitempty" toml:"modelId,omitempty"`

	// vendor-revision
	Revision uint16 `json:"revision,omitempty" yaml:"revision,omitempty" toml:"revision,omitempty"`
}

// Load reads a manifest file, choosing the decoder by file extension
// (.json, .yaml/.yml or .toml).
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m Manifest
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(data, &m)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &m)
	case ".toml":
		err = toml.Unmarshal(data, &m)
	default:
		return nil, fmt.Errorf("unsupported manifest extension %q (want .json, .yaml or .toml)", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &m, nil
}

// versionNames maps accepted version spellings to NTDDI constants.
var versionNames = map[string]winver.Version{
	"win8.1":       winver.WinBlue,
	"winblue":      winver.WinBlue,
	"win10":        winver.Win10,
	"win10-1507":   winver.Win10,
	"win10-1511":   winver.Win10Th2,
	"win10-1607":   winver.Win10Rs1,
	"win10-1703":   winver.Win10Rs2,
	"win10-1709":   winver.Win10Rs3,
	"win10-1803":   winver.Win10Rs4,
	"win10-1809":   winver.Win10Rs5,
	"win10-1903":   winver.Win1019h1,
	"win10-2004":   winver.Win10Vb,
	"win10-21h2":   winver.Win10Co,
	"winthreshold": winver.Win10,
}

// parseVersion accepts a named version or a hex/decimal NTDDI constant.
func parseVersion(s string) (winver.Version, error) {
	if v, ok := versionNames[strings.ToLower(strings.TrimSpace(s))]; ok {
		return v, nil
	}
	n, err := strconv.ParseUint(strings.TrimSpace(s), 0, 32)
	if err != nil {
		return 0, fmt.Errorf("unknown windows version %q", s)
	}
	return winver.Version(n), nil
}
