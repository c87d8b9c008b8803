// Package cgen renders generated descriptor blobs as a C header so firmware
// projects can embed the exact bytes without running the generator at build
// time.
package cgen

import (
	"fmt"
	"io"
	"strings"
	"text/template"
)

// Blob is one byte array to emit.
type Blob struct {
	// Name becomes the array identifier; it must already be a valid C
	// identifier fragment (lower snake case).
	Name string
	// Comment is placed above the array declaration.
	Comment string
	Data    []byte
}

const headerTemplate = `/* Generated by msosgen. Do not edit. */
#ifndef {{ .Guard }}
#define {{ .Guard }}

#include <stdint.h>
{{ range .Blobs }}
/* {{ .Comment }} */
#define {{ upper .Name }}_LEN {{ len .Data }}
static const uint8_t {{ .Name }}[{{ len .Data }}] = {
{{ hexlines .Data }}};
{{ end }}
#endif /* {{ .Guard }} */
`

var tpl = template.Must(template.New("header").Funcs(template.FuncMap{
	"upper":    strings.ToUpper,
	"hexlines": hexLines,
}).Parse(headerTemplate))

// Render writes a header containing every blob, with an include guard
// derived from prefix.
func Render(w io.Writer, prefix string, blobs []Blob) error {
	for _, b := range blobs {
		if len(b.Data) == 0 {
			return fmt.Errorf("blob %q is empty", b.Name)
		}
	}
	return tpl.Execute(w, struct {
		Guard string
		Blobs []Blob
	}{
		Guard: strings.ToUpper(prefix) + "_DESCRIPTORS_H",
		Blobs: blobs,
	})
}

// hexLines formats data as indented 0x.. byte literals, 12 per line.
func hexLines(data []byte) string {
	var sb strings.Builder
	for i, b := range data {
		if i%12 == 0 {
			sb.WriteString("    ")
		}
		fmt.Fprintf(&sb, "0x%02x,", b)
		if i%12 == 11 || i == len(data)-1 {
			sb.WriteByte('\n')
		} else {
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}
