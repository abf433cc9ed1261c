package formatter

import (
	"io"
	"strconv"
	"strings"

	"github.com/mcncl/jsonpeek/internal/models"
)

// IndentStep is the number of spaces added per nesting level.
const IndentStep = 2

// Formatter renders values as indented text.
//
// Object keys are quoted, string values are written verbatim without
// quotes or escaping, and no trailing newline is added.
type Formatter struct{}

// NewFormatter creates a new Formatter instance
func NewFormatter() *Formatter {
	return &Formatter{}
}

// Format renders v at indent depth 0.
func (f *Formatter) Format(v *models.Value) string {
	return f.FormatIndent(v, 0)
}

// FormatIndent renders v as if it were nested indent spaces deep. The first
// line is not indented; closing brackets are.
func (f *Formatter) FormatIndent(v *models.Value, indent int) string {
	if indent < 0 {
		indent = 0
	}
	var sb strings.Builder
	f.render(&sb, v, indent)
	return sb.String()
}

// Write renders v to w. The only error returned is w's own.
func (f *Formatter) Write(w io.Writer, v *models.Value) error {
	_, err := io.WriteString(w, f.Format(v))
	return err
}

// Render writes v to w at indent depth 0.
func Render(w io.Writer, v *models.Value) error {
	return NewFormatter().Write(w, v)
}

func (f *Formatter) render(sb *strings.Builder, v *models.Value, indent int) {
	pad := strings.Repeat(" ", indent)

	switch v.Kind() {
	case models.Object:
		sb.WriteString("{\n")
		members := v.Members()
		for i, m := range members {
			sb.WriteString(pad)
			sb.WriteString(`  "`)
			sb.WriteString(m.Key)
			sb.WriteString(`": `)
			f.render(sb, m.Value, indent+IndentStep)
			if i < len(members)-1 {
				sb.WriteByte(',')
			}
			sb.WriteByte('\n')
		}
		sb.WriteString(pad)
		sb.WriteByte('}')
	case models.Array:
		sb.WriteString("[\n")
		elems := v.Elements()
		for i, e := range elems {
			sb.WriteString(pad)
			sb.WriteString("  ")
			f.render(sb, e, indent+IndentStep)
			if i < len(elems)-1 {
				sb.WriteByte(',')
			}
			sb.WriteByte('\n')
		}
		sb.WriteString(pad)
		sb.WriteByte(']')
	case models.String:
		sb.WriteString(v.Str())
	case models.Int64:
		sb.WriteString(strconv.FormatInt(v.Int64(), 10))
	case models.Uint64:
		sb.WriteString(strconv.FormatUint(v.Uint64(), 10))
	case models.Double:
		sb.WriteString(strconv.FormatFloat(v.Double(), 'g', -1, 64))
	case models.Bool:
		sb.WriteString(strconv.FormatBool(v.Bool()))
	case models.Null:
		sb.WriteString("null")
	}
}
