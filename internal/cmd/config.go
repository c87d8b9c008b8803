package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"

	"github.com/usbforge/msos/manifest"
)

// ConfigCommand groups manifest template subcommands.
type ConfigCommand struct {
	Init ConfigInit `cmd:"" help:"Generate a manifest template"`
}

// ConfigInit scaffolds a starter manifest describing a typical WinUSB
// device, in the requested format.
type ConfigInit struct {
	Format string `help:"Output format" enum:"json,yaml,toml" default:"yaml"`
	Output string `help:"Destination file path (defaults to manifest.<format>)"`
	Force  bool   `help:"Overwrite if the file already exists"`
}

// templateManifest is the scaffold content: a single Windows 8.1+ set that
// binds WinUSB to interface 0 and publishes a device interface GUID.
func templateManifest() manifest.Manifest {
	return manifest.Manifest{
		Sets: []manifest.Set{{
			WindowsVersion: "win8.1",
			Configurations: []manifest.Configuration{{
				Configuration: 0,
				Functions: []manifest.Function{{
					FirstInterface: 0,
					Features: []manifest.Feature{
						{Kind: "compatible-id", ID: "WINUSB"},
						{Kind: "registry-property", GUIDs: []string{"{00000000-0000-0000-0000-000000000000}"}},
					},
				}},
			}},
		}},
	}
}

// Run writes the template manifest.
func (c *ConfigInit) Run() error {
	format := strings.ToLower(c.Format)
	dest := c.Output
	if dest == "" {
		dest = "manifest." + format
	}
	if !c.Force {
		if _, err := os.Stat(dest); err == nil {
			return errors.New("destination exists; use --force to overwrite")
		}
	}

	var data []byte
	var err error
	m := templateManifest()
	switch format {
	case "json":
		data, err = json.MarshalIndent(m, "", "  ")
	case "yaml":
		data, err = yaml.Marshal(m)
	case "toml":
		data, err = toml.Marshal(m)
	default:
		return fmt.Errorf("unsupported format: %s", c.Format)
	}
	if err != nil {
		return err
	}
	return os.WriteFile(dest, data, 0o644)
}
