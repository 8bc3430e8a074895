package json2hcl

import (
	"io"

	"github.com/pkg/errors"
)

const (
	// DefaultPrefix and DefaultSuffix wrap a converted document.
	DefaultPrefix = "jsonencode("
	DefaultSuffix = ")"
)

// Converter reads a json document and writes it wrapped in Prefix and Suffix, rendered by
// Serializer.
type Converter struct {
	Prefix     string
	Suffix     string
	Serializer Serializer
}

// NewConverter returns a Converter that produces jsonencode( ... ) with tab indentation and " = "
// between keys and values. Keys stay quoted.
func NewConverter() *Converter {
	return &Converter{
		Prefix: DefaultPrefix,
		Suffix: DefaultSuffix,
		Serializer: Serializer{
			Indent:         "\t",
			ItemSeparator:  ",",
			KeySeparator:   " = ",
			EscapeNonASCII: true,
		},
	}
}

// Convert runs the default Converter.
func Convert(r io.Reader, w io.Writer) error {
	return NewConverter().Convert(r, w)
}

// Convert reads all of r, parses it and writes the result to w in a single write. Nothing is
// written when the input does not parse. Errors are either a *ParseError or an *IOError.
func (c *Converter) Convert(r io.Reader, w io.Writer) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return &IOError{Op: "read", Err: errors.WithStack(err)}
	}
	v, err := Deserialize(data)
	if err != nil {
		return err
	}

	out := c.ConvertValue(v)
	n, err := w.Write(out)
	if err == nil && n < len(out) {
		err = io.ErrShortWrite
	}
	if err != nil {
		return &IOError{Op: "write", Err: errors.WithStack(err)}
	}
	if f, ok := w.(interface{ Flush() error }); ok {
		if err := f.Flush(); err != nil {
			return &IOError{Op: "flush", Err: errors.WithStack(err)}
		}
	}
	return nil
}

// ConvertValue renders an already parsed value.
func (c *Converter) ConvertValue(v Value) []byte {
	out := make([]byte, 0, 1024)
	out = append(out, c.Prefix...)
	out = c.Serializer.AppendValue(out, v)
	return append(out, c.Suffix...)
}
