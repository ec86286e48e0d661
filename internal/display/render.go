package display

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/backmassage/picrename/internal/config"
	"github.com/backmassage/picrename/internal/pipeline"
	"github.com/backmassage/picrename/internal/term"
)

// Color palette.
var (
	headerColor  = lipgloss.Color("#7C3AED") // Purple
	successColor = lipgloss.Color("#10B981") // Green
	errorColor   = lipgloss.Color("#EF4444") // Red
	mutedColor   = lipgloss.Color("#6B7280") // Gray
)

// Renderer writes command results as a table, JSON or YAML.
type Renderer struct {
	format config.OutputFormat
	color  bool
	out    io.Writer

	header  lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
	muted   lipgloss.Style
}

// NewRenderer resolves the output format for out: an explicit cfg.Format
// wins, otherwise a terminal gets a table and anything else gets JSON.
// Table colors follow cfg.ColorMode.
func NewRenderer(cfg *config.Config, out io.Writer) *Renderer {
	format := cfg.Format
	if format == "" {
		format = ResolveFormat(out)
	}
	return NewRendererWithWriter(format, term.Resolve(cfg.ColorMode, out), out)
}

// ResolveFormat picks the default format for out: table on a terminal,
// JSON otherwise.
func ResolveFormat(out io.Writer) config.OutputFormat {
	if f, ok := out.(*os.File); ok && term.IsTerminal(f) {
		return config.FormatTable
	}
	return config.FormatJSON
}

// NewRendererWithWriter creates a renderer with a fixed format (for tests).
func NewRendererWithWriter(format config.OutputFormat, color bool, out io.Writer) *Renderer {
	lr := lipgloss.NewRenderer(out)
	return &Renderer{
		format:  format,
		color:   color,
		out:     out,
		header:  lr.NewStyle().Bold(true).Foreground(headerColor),
		success: lr.NewStyle().Foreground(successColor),
		failure: lr.NewStyle().Foreground(errorColor),
		muted:   lr.NewStyle().Foreground(mutedColor),
	}
}

// Format reports the resolved output format.
func (r *Renderer) Format() config.OutputFormat { return r.format }

// Render outputs data in the configured format. Tables are derived from
// json field names.
func (r *Renderer) Render(data any) error {
	switch r.format {
	case config.FormatJSON:
		return r.renderJSON(data)
	case config.FormatYAML:
		return r.renderYAML(data)
	case config.FormatTable:
		return r.renderStructTable(data)
	default:
		return fmt.Errorf("unknown format: %s", r.format)
	}
}

// RenderFiles prints a scan result. The table form is one path per line.
func (r *Renderer) RenderFiles(files []string) error {
	if r.format != config.FormatTable {
		if files == nil {
			files = []string{}
		}
		return r.Render(files)
	}
	if len(files) == 0 {
		fmt.Fprintln(r.out, r.style(r.muted, "(no images found)"))
		return nil
	}
	for _, f := range files {
		fmt.Fprintln(r.out, f)
	}
	fmt.Fprintln(r.out, r.style(r.muted, Plural(len(files), "image")))
	return nil
}

// RenderOutcome prints a batch result: one row per input file, then the
// summary line.
func (r *Renderer) RenderOutcome(o *pipeline.Outcome) error {
	if r.format != config.FormatTable {
		return r.Render(o)
	}

	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ORIGINAL\tNEW\tSTATUS")
	for _, s := range o.Success {
		fmt.Fprintf(w, "%s\t%s\t%s\n", s.Original, s.New, "renamed")
	}
	for _, e := range o.Errors {
		fmt.Fprintf(w, "%s\t%s\t%s: %s\n", e.File, "-", e.Kind, e.Message)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	// Rows are styled whole, after alignment, so escapes don't skew columns.
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	for i, line := range lines {
		switch {
		case i == 0:
			line = r.style(r.header, line)
		case i <= len(o.Success):
			line = r.style(r.success, line)
		default:
			line = r.style(r.failure, line)
		}
		fmt.Fprintln(r.out, line)
	}
	fmt.Fprintln(r.out, r.style(r.muted, OutcomeSummary(o)))
	return nil
}

func (r *Renderer) style(s lipgloss.Style, text string) string {
	if !r.color {
		return text
	}
	return s.Render(text)
}

func (r *Renderer) renderJSON(data any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(data)
}

func (r *Renderer) renderYAML(data any) error {
	enc := yaml.NewEncoder(r.out)
	enc.SetIndent(2)
	if err := enc.Encode(data); err != nil {
		return err
	}
	return enc.Close()
}

func (r *Renderer) renderStructTable(data any) error {
	w := tabwriter.NewWriter(r.out, 0, 0, 2, ' ', 0)
	defer w.Flush()

	v := reflect.ValueOf(data)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Struct:
		t := v.Type()
		for i := 0; i < v.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}
			fmt.Fprintf(w, "%s:\t%s\n", fieldName(field), formatValue(v.Field(i)))
		}
	case reflect.Slice:
		for i := 0; i < v.Len(); i++ {
			fmt.Fprintln(w, formatValue(v.Index(i)))
		}
	default:
		fmt.Fprintf(w, "%v\n", data)
	}
	return nil
}

func fieldName(f reflect.StructField) string {
	if tag := f.Tag.Get("json"); tag != "" {
		name, _, _ := strings.Cut(tag, ",")
		if name != "" && name != "-" {
			return name
		}
	}
	return strings.ToLower(f.Name)
}

func formatValue(v reflect.Value) string {
	if !v.IsValid() {
		return ""
	}
	if v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return ""
		}
		v = v.Elem()
	}
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		if v.Len() == 0 {
			return "[]"
		}
		return fmt.Sprintf("[%d items]", v.Len())
	case reflect.Struct:
		return "{...}"
	default:
		return fmt.Sprintf("%v", v.Interface())
	}
}
