package responseformat

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// Format selects the encoding of a written result.
type Format string

const (
	Text    Format = "text"
	JSON    Format = "json"
	MsgPack Format = "msgpack"
)

// ParseFormat converts a -format flag value to a Format. The empty string
// selects Text.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", Text:
		return Text, nil
	case JSON:
		return JSON, nil
	case MsgPack:
		return MsgPack, nil
	}
	return Text, fmt.Errorf("unknown output format %q (want text, json or msgpack)", s)
}

// Formatter handles encoding and writing results as text, JSON or MessagePack
type Formatter struct {
	format Format
}

// NewFormatter creates a new result formatter
func NewFormatter(format Format) *Formatter {
	return &Formatter{format: format}
}

// Format returns the formatter's output format.
func (f *Formatter) Format() Format {
	return f.format
}

// WriteResponse writes data in the formatter's format. Text output uses
// the value's String method when it has one.
func (f *Formatter) WriteResponse(w io.Writer, data any) error {
	switch f.format {
	case JSON:
		return f.writeJSON(w, data)
	case MsgPack:
		return f.writeMsgPack(w, data)
	default:
		return f.writeText(w, data)
	}
}

func (f *Formatter) writeText(w io.Writer, data any) error {
	if s, ok := data.(fmt.Stringer); ok {
		_, err := io.WriteString(w, s.String())
		return err
	}
	_, err := fmt.Fprintf(w, "%+v\n", data)
	return err
}

func (f *Formatter) writeJSON(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func (f *Formatter) writeMsgPack(w io.Writer, data any) error {
	encoder := msgpack.NewEncoder(w)
	encoder.SetCustomStructTag("json") // Use json tags for MessagePack
	return encoder.Encode(data)
}
