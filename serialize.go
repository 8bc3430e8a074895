package json2hcl

import (
	"sort"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

func (Null) append(s *Serializer, level int, bb []byte) []byte {
	return append(bb, "null"...)
}

func (b Bool) append(s *Serializer, level int, bb []byte) []byte {
	return strconv.AppendBool(bb, bool(b))
}

func (n Number) append(s *Serializer, level int, bb []byte) []byte {
	if n.Literal != "" {
		return append(bb, n.Literal...)
	}
	if n.IsFloat {
		f := strconv.FormatFloat(n.Float, 'g', -1, 64)
		if !strings.ContainsAny(f, ".eEIN") {
			f += ".0"
		}
		return append(bb, f...)
	}
	if n.IsNeg && n.Integer != 0 {
		bb = append(bb, '-')
	}
	return strconv.AppendUint(bb, n.Integer, 10)
}

func (str String) append(s *Serializer, level int, bb []byte) []byte {
	return appendString(s, bb, string(str))
}

const hex = "0123456789abcdef"

func appendString(s *Serializer, bb []byte, str string) []byte {
	bb = append(bb, '"')
	for i := 0; i < len(str); {
		c := str[i]
		if c < utf8.RuneSelf {
			switch {
			case c == '"':
				bb = append(bb, `\"`...)
			case c == '\\':
				bb = append(bb, `\\`...)
			case c == '\n':
				bb = append(bb, `\n`...)
			case c == '\r':
				bb = append(bb, `\r`...)
			case c == '\t':
				bb = append(bb, `\t`...)
			case c == '\b':
				bb = append(bb, `\b`...)
			case c == '\f':
				bb = append(bb, `\f`...)
			case c < 0x20 || (c == 0x7f && s.EscapeNonASCII):
				bb = appendEscapedRune(bb, rune(c))
			default:
				bb = append(bb, c)
			}
			i++
			continue
		}
		r, size := utf8.DecodeRuneInString(str[i:])
		if r == utf8.RuneError && size == 1 {
			bb = append(bb, `\ufffd`...)
		} else if s.EscapeNonASCII {
			if r1, r2 := utf16.EncodeRune(r); r1 != utf8.RuneError {
				bb = appendEscapedRune(bb, r1)
				bb = appendEscapedRune(bb, r2)
			} else {
				bb = appendEscapedRune(bb, r)
			}
		} else {
			bb = append(bb, str[i:i+size]...)
		}
		i += size
	}
	return append(bb, '"')
}

func appendEscapedRune(bb []byte, r rune) []byte {
	return append(bb, '\\', 'u', hex[r>>12&0xf], hex[r>>8&0xf], hex[r>>4&0xf], hex[r&0xf])
}

func (a Array) append(s *Serializer, level int, bb []byte) []byte {
	if len(a) == 0 {
		return append(bb, "[]"...)
	}
	bb = append(bb, "["...)
	for i, v := range a {
		if i > 0 {
			bb = append(bb, s.itemSeparator()...)
		}
		bb = appendIndent(s, level+1, bb)
		bb = appendValue(s, level+1, bb, v)
	}
	bb = appendIndent(s, level, bb)
	return append(bb, "]"...)
}

func (o Object) append(s *Serializer, level int, bb []byte) []byte {
	if o.Len() == 0 {
		return append(bb, "{}"...)
	}
	bb = append(bb, "{"...)
	keys := o.Keys()
	if s.SortKeys {
		sort.Strings(keys)
	}
	for i, k := range keys {
		v, _ := o.Get(k)
		if i > 0 {
			bb = append(bb, s.itemSeparator()...)
		}
		bb = appendIndent(s, level+1, bb)
		bb = appendString(s, bb, k)
		bb = append(bb, s.keySeparator()...)
		bb = appendValue(s, level+1, bb, v)
	}

	bb = appendIndent(s, level, bb)
	return append(bb, "}"...)
}

// appendValue renders a nil Value as null.
func appendValue(s *Serializer, level int, bb []byte, v Value) []byte {
	if v == nil {
		return append(bb, "null"...)
	}
	return v.append(s, level, bb)
}

func appendIndent(s *Serializer, level int, bb []byte) []byte {
	if s.Indent != "" {
		bb = append(bb, "\n"...)
		bb = append(bb, s.Prefix...)
		bb = append(bb, strings.Repeat(s.Indent, level)...)
	}
	return bb
}

// Serializer renders a Value as json text. The zero value renders compact json.
type Serializer struct {
	// Indent is repeated once per nesting level. When empty the output is a single line.
	Indent string
	// Prefix starts every line. This can be useful if the output is being injected into another
	// file at some indentation. AppendValue leaves it off the first line.
	Prefix string
	// ItemSeparator goes between array items and object members. Defaults to ",".
	ItemSeparator string
	// KeySeparator goes between an object key and its value. Defaults to ":".
	KeySeparator string
	SortKeys     bool
	// EscapeNonASCII writes everything outside printable ASCII as \u escapes.
	EscapeNonASCII bool
}

func (s *Serializer) itemSeparator() string {
	if s.ItemSeparator == "" {
		return ","
	}
	return s.ItemSeparator
}

func (s *Serializer) keySeparator() string {
	if s.KeySeparator == "" {
		return ":"
	}
	return s.KeySeparator
}

var defSerializer Serializer

// AppendValue appends the rendering of v to bb.
func (s *Serializer) AppendValue(bb []byte, v Value) []byte {
	return appendValue(s, 0, bb, v)
}

func (s *Serializer) Serialize(v Value) []byte {
	buf := make([]byte, 0, 1024)
	buf = append(buf, s.Prefix...)
	buf = s.AppendValue(buf, v)
	buf = buf[:len(buf):len(buf)]
	return buf
}

func Serialize(v Value) []byte {
	return defSerializer.Serialize(v)
}
