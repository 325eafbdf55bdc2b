package main

import (
	"fmt"
	"io"

	"github.com/NickyBoy89/java2cpp/model"
	"github.com/fatih/color"
	"github.com/vmihailenco/msgpack/v5"
)

// Bundle is the structured form of a translation, written by `--format msgpack`
type Bundle struct {
	Includes []string     `msgpack:"includes"`
	Units    []*ClassUnit `msgpack:"units"`
}

// WriteResult writes the translated classes in the given format
func WriteResult(w io.Writer, result *Result, format string) error {
	switch format {
	case FormatText, "":
		_, err := io.WriteString(w, result.Header())
		return err
	case FormatMsgpack:
		enc := msgpack.NewEncoder(w)
		return enc.Encode(Bundle{Includes: result.Includes(), Units: result.Units})
	}
	return fmt.Errorf("unknown format %q", format)
}

// ReadBundle decodes the output of `--format msgpack`
func ReadBundle(r io.Reader) (*Bundle, error) {
	var bundle Bundle
	if err := msgpack.NewDecoder(r).Decode(&bundle); err != nil {
		return nil, err
	}
	return &bundle, nil
}

// DiagnosticPrinter prints class failures, one per line
type DiagnosticPrinter struct {
	location *color.Color
	kind     *color.Color
	member   *color.Color
}

func NewDiagnosticPrinter(useColor bool) *DiagnosticPrinter {
	p := &DiagnosticPrinter{
		location: color.New(color.Bold),
		kind:     color.New(color.FgRed, color.Bold),
		member:   color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{p.location, p.kind, p.member} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p *DiagnosticPrinter) Print(w io.Writer, errs model.ErrorList) {
	for _, err := range errs {
		if err.Pos.IsValid() {
			p.location.Fprintf(w, "%s: ", err.Pos)
		}
		p.kind.Fprint(w, err.Kind)
		name := err.Class
		if err.Member != "" {
			name += "." + err.Member
		}
		if name != "" {
			fmt.Fprint(w, " ")
			p.member.Fprint(w, name)
		}
		if err.Msg != "" {
			fmt.Fprintf(w, ": %s", err.Msg)
		}
		fmt.Fprintln(w)
	}
}
