package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/term"

	"github.com/usbforge/msos"
	"github.com/usbforge/msos/internal/cgen"
	"github.com/usbforge/msos/manifest"
)

// Gen builds every descriptor set and the BOS capability payload declared
// in a manifest and emits them as raw .bin files, a hex dump or a C header.
type Gen struct {
	Manifest string `arg:"" help:"Manifest file (.json, .yaml or .toml)" type:"existingfile"`
	Format   string `help:"Output format" enum:"bin,hex,c" default:"bin"`
	Output   string `help:"Output directory" default:"." type:"existingdir"`
	Prefix   string `help:"Base name for generated artifacts" default:"msos"`
}

// Run is called by kong when the gen command is executed.
func (g *Gen) Run(logger *slog.Logger) error {
	m, err := manifest.Load(g.Manifest)
	if err != nil {
		return err
	}
	caps, err := m.Build()
	if err != nil {
		return err
	}
	cls, err := msos.NewClass(caps)
	if err != nil {
		return err
	}
	logger.Info("built descriptor sets",
		"manifest", g.Manifest,
		"sets", len(cls.DescriptorSets),
		"capabilityBytes", len(cls.CapabilityData))

	blobs := []cgen.Blob{{
		Name:    g.Prefix + "_capability",
		Comment: "MS OS 2.0 platform capability payload (BOS)",
		Data:    cls.CapabilityData,
	}}
	for i, set := range cls.DescriptorSets {
		blobs = append(blobs, cgen.Blob{
			Name:    fmt.Sprintf("%s_set%d", g.Prefix, i+1),
			Comment: fmt.Sprintf("MS OS 2.0 descriptor set, bMS_VendorCode %d", msos.VendorCode(i)),
			Data:    set,
		})
	}

	switch g.Format {
	case "bin":
		return g.writeBins(logger, blobs)
	case "hex":
		return g.writeHex(os.Stdout, blobs)
	case "c":
		return g.writeHeader(logger, blobs)
	}
	return fmt.Errorf("unsupported format %q", g.Format)
}

func (g *Gen) writeBins(logger *slog.Logger, blobs []cgen.Blob) error {
	for _, b := range blobs {
		path := filepath.Join(g.Output, b.Name+".bin")
		if err := os.WriteFile(path, b.Data, 0o644); err != nil {
			return err
		}
		logger.Info("wrote blob", "path", path, "bytes", len(b.Data))
	}
	return nil
}

func (g *Gen) writeHeader(logger *slog.Logger, blobs []cgen.Blob) error {
	path := filepath.Join(g.Output, g.Prefix+"_descriptors.h")
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := cgen.Render(f, g.Prefix, blobs); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	logger.Info("wrote C header", "path", path)
	return nil
}

// writeHex dumps each blob to w. On a terminal it prints an annotated
// offset/hex/ASCII view; when piped it emits plain hex so the output can
// feed other tools directly.
func (g *Gen) writeHex(f *os.File, blobs []cgen.Blob) error {
	pretty := term.IsTerminal(int(f.Fd()))
	for _, b := range blobs {
		if pretty {
			fmt.Fprintf(f, "%s (%d bytes)\n", b.Name, len(b.Data))
			for off := 0; off < len(b.Data); off += 16 {
				end := min(off+16, len(b.Data))
				fmt.Fprintf(f, "%08x ", off)
				for i := off; i < end; i++ {
					fmt.Fprintf(f, " %02x", b.Data[i])
				}
				fmt.Fprintf(f, "%*s |%s|\n", 3*(off+16-end), "", printable(b.Data[off:end]))
			}
			fmt.Fprintln(f)
			continue
		}
		fmt.Fprintf(f, "%s %x\n", b.Name, b.Data)
	}
	return nil
}

func printable(data []byte) string {
	out := make([]byte, len(data))
	for i, b := range data {
		if b >= 0x20 && b < 0x7F {
			out[i] = b
		} else {
			out[i] = '.'
		}
	}
	return string(out)
}
