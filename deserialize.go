package json2hcl

import (
	"bytes"
	"math"
	"unicode/utf8"

	"github.com/buger/jsonparser"

	. "github.com/mattpgray/json2hcl/internal/funcparser"
)

// Deserializer reads json text into a Value.
type Deserializer struct {
	// KeySeparator separates object keys from their values. Zero means ':'. Setting it to '='
	// reads back the body of a converted document.
	KeySeparator byte
}

var defDeserializer Deserializer

// Deserialize parses data as a single json value, optionally surrounded by whitespace. Any error
// is a *ParseError.
func Deserialize(b []byte) (Value, error) {
	return defDeserializer.Deserialize(b)
}

func (d *Deserializer) Deserialize(b []byte) (Value, error) {
	sep := d.KeySeparator
	if sep == 0 {
		sep = ':'
	}
	_, v, fail := documentParser(jsonParser(sep))(b)
	if !fail.Valid() {
		return nil, newParseError(b, len(b)-fail.Remaining, fail.Error())
	}
	return v, nil
}

func documentParser(value Parser[[]byte, Value]) Parser[[]byte, Value] {
	return func(bb []byte) ([]byte, Value, *Failure) {
		rest, v, fail := trimSpaceParser(value)(bb)
		if !fail.Valid() {
			return bb, nil, fail
		}
		rest = skipSpace(rest)
		if len(rest) > 0 {
			return bb, nil, Fail(rest, "end of input")
		}
		return rest, v, nil
	}
}

// MaxDepth is the deepest nesting of arrays and objects Deserialize accepts.
const MaxDepth = 10000

// jsonParser builds the grammar once. Nested values refer back to it lazily. The grammar keeps
// the current nesting depth, so it must not be shared between goroutines.
func jsonParser(sep byte) Parser[[]byte, Value] {
	var (
		value Parser[[]byte, Value]
		depth int
	)
	lazy := Lazy(func() Parser[[]byte, Value] { return value })
	value = Expect(
		Try(
			nullParser(),
			boolParser(),
			numberParser(),
			jsonStringParser(),
			arrayParser(&depth, lazy),
			objectParser(&depth, sep, lazy),
		),
		"json value",
	)
	return value
}

func objectParser(depth *int, sep byte, value Parser[[]byte, Value]) Parser[[]byte, Value] {
	type keyValue struct {
		key   string
		value Value
	}

	sepParser := byteParser(sep)
	elemParser := Parser[[]byte, keyValue](func(bb []byte) ([]byte, keyValue, *Failure) {
		rest, key, fail := Expect(stringParser(), "string")(bb)
		if !fail.Valid() {
			return bb, keyValue{}, fail
		}
		rest, _, fail = trimSpaceParser(sepParser)(rest)
		if !fail.Valid() {
			return bb, keyValue{}, fail
		}
		rest, v, fail := trimSpaceParser(value)(rest)
		if !fail.Valid() {
			return bb, keyValue{}, fail
		}
		return rest, keyValue{key: key, value: v}, nil
	})

	return Map(
		compositeParser(depth, '{', '}', elemParser),
		func(kvs []keyValue) Value {
			var o Object
			for _, kv := range kvs {
				o.Set(kv.key, kv.value)
			}
			return o
		},
	)
}

func arrayParser(depth *int, value Parser[[]byte, Value]) Parser[[]byte, Value] {
	return Map(
		compositeParser(depth, '[', ']', value),
		func(val []Value) Value {
			return Array(val)
		},
	)
}

// compositeParser parses a bracketed, comma separated list of elements. depth counts the
// containers currently open.
func compositeParser[V any](depth *int, start, end byte, elem Parser[[]byte, V]) Parser[[]byte, []V] {
	return func(bb []byte) ([]byte, []V, *Failure) {
		rest, _, fail := byteParser(start)(bb)
		if !fail.Valid() {
			return bb, nil, fail
		}
		if *depth >= MaxDepth {
			return bb, nil, Failf(rest, "nesting depth at most %d", MaxDepth)
		}
		*depth++
		defer func() { *depth-- }()
		rest = skipSpace(rest)
		if len(rest) > 0 && rest[0] == end {
			return rest[1:], []V{}, nil
		}

		var vs []V
		for {
			var v V
			rest, v, fail = trimSpaceParser(elem)(rest)
			if !fail.Valid() {
				return bb, nil, fail
			}
			vs = append(vs, v)

			rest = skipSpace(rest)
			switch {
			case len(rest) > 0 && rest[0] == ',':
				rest = rest[1:]
			case len(rest) > 0 && rest[0] == end:
				return rest[1:], vs, nil
			default:
				return bb, nil, Failf(rest, "',' or %q", end)
			}
		}
	}
}

func trimSpaceParser[V any](p Parser[[]byte, V]) Parser[[]byte, V] {
	return func(bb []byte) ([]byte, V, *Failure) {
		return p(skipSpace(bb))
	}
}

// skipSpace drops the whitespace json allows between tokens.
func skipSpace(bb []byte) []byte {
	for i := range bb {
		switch bb[i] {
		case ' ', '\t', '\n', '\r':
		default:
			return bb[i:]
		}
	}
	return bb[len(bb):]
}

func jsonStringParser() Parser[[]byte, Value] {
	return Map(
		stringParser(),
		func(s string) Value {
			return String(s)
		},
	)
}

// stringParser finds the closing quote itself so that control characters can be reported where
// they are. Escapes are decoded by jsonparser. Problems inside the string are reported just after
// the opening quote so that they win over alternatives that failed at the quote.
func stringParser() Parser[[]byte, string] {
	return func(bb []byte) ([]byte, string, *Failure) {
		if len(bb) == 0 || bb[0] != '"' {
			return bb, "", Fail(bb, "string")
		}
		inEscape := false
		for i := 1; i < len(bb); i++ {
			if inEscape {
				inEscape = false
				continue
			}
			switch c := bb[i]; {
			case c == '\\':
				inEscape = true
			case c == '"':
				body := bb[1:i]
				if !utf8.Valid(body) {
					return bb, "", Fail(bb[1:], "valid UTF-8 in string")
				}
				if !pairedSurrogates(body) {
					return bb, "", Fail(bb[1:], "valid escape sequence in string")
				}
				s, err := jsonparser.ParseString(body)
				if err != nil {
					return bb, "", Fail(bb[1:], "valid escape sequence in string")
				}
				return bb[i+1:], s, nil
			case c < 0x20:
				return bb, "", Failf(bb[i:], "closing quote, found control character %q", c)
			}
		}
		return bb, "", Fail(bb[len(bb):], "closing quote")
	}
}

// pairedSurrogates reports whether every \u escape of a UTF-16 surrogate in body is part of a
// high/low pair. jsonparser combines any high surrogate with whatever escape follows it.
func pairedSurrogates(body []byte) bool {
	wantLow := false
	for i := 0; i < len(body); i++ {
		if body[i] != '\\' || i+1 >= len(body) {
			continue
		}
		if body[i+1] != 'u' {
			if wantLow {
				return false
			}
			i++
			continue
		}
		r, ok := hexRune(body[i+2:])
		if !ok {
			// Malformed escapes are left for jsonparser to reject.
			return true
		}
		isHigh := r >= 0xd800 && r < 0xdc00
		isLow := r >= 0xdc00 && r < 0xe000
		if wantLow != isLow {
			return false
		}
		wantLow = isHigh
		i += 5
		if !wantLow {
			continue
		}
		// The low half must come directly after the high half.
		if i+2 >= len(body) || body[i+1] != '\\' || body[i+2] != 'u' {
			return false
		}
	}
	return !wantLow
}

func hexRune(b []byte) (rune, bool) {
	if len(b) < 4 {
		return 0, false
	}
	var r rune
	for _, c := range b[:4] {
		switch {
		case c >= '0' && c <= '9':
			c -= '0'
		case c >= 'a' && c <= 'f':
			c -= 'a' - 10
		case c >= 'A' && c <= 'F':
			c -= 'A' - 10
		default:
			return 0, false
		}
		r = r<<4 | rune(c)
	}
	return r, true
}

func numberParser() Parser[[]byte, Value] {
	digit := byteMatchParser("digit", func(b byte) bool {
		return b >= '0' && b <= '9'
	})
	nonZero := byteMatchParser("digit", func(b byte) bool {
		return b >= '1' && b <= '9'
	})
	digits := Chain(Discard(digit), Discard(Many(digit)))
	integer := Expect(
		Try(
			Discard(byteParser('0')),
			Discard(Chain(Discard(nonZero), Discard(Many(digit)))),
		),
		"digit",
	)
	fraction := Chain(
		Discard(byteParser('.')),
		Discard(digits),
	)
	exponent := Chain(
		Discard(byteInParser("eE")),
		Discard(Optional(byteInParser("+-"))),
		Discard(digits),
	)
	return Validate(
		Recognize(Chain(
			Discard(Optional(byteParser('-'))),
			integer,
			Discard(Optional(fraction)),
			Discard(Optional(exponent)),
		)),
		decodeNumber,
	)
}

// decodeNumber keeps the literal and fills in the numeric fields. Integers that do not fit in an
// int64 are stored as floats.
func decodeNumber(lit []byte) (Value, error) {
	n := Number{Literal: string(lit), IsNeg: lit[0] == '-'}
	if bytes.IndexAny(lit, ".eE") < 0 {
		if i, err := jsonparser.ParseInt(lit); err == nil {
			n.Integer = Int(i).Integer
			return n, nil
		}
	}
	f, err := jsonparser.ParseFloat(lit)
	if err != nil {
		// The literal matched the number grammar so this is an overflow.
		f = math.Inf(1)
		if n.IsNeg {
			f = math.Inf(-1)
		}
	}
	n.Float, n.IsFloat = f, true
	return n, nil
}

func byteMatchParser(what string, predicate func(b byte) bool) Parser[[]byte, byte] {
	return func(bb []byte) ([]byte, byte, *Failure) {
		if len(bb) > 0 && predicate(bb[0]) {
			return bb[1:], bb[0], nil
		}
		return bb, 0, Fail(bb, what)
	}
}

func nullParser() Parser[[]byte, Value] {
	return literalParser("null", Null{})
}

func boolParser() Parser[[]byte, Value] {
	return Try(
		literalParser("true", Bool(true)),
		literalParser("false", Bool(false)),
	)
}

func literalParser(word string, v Value) Parser[[]byte, Value] {
	return func(bb []byte) ([]byte, Value, *Failure) {
		if bytes.HasPrefix(bb, []byte(word)) {
			return bb[len(word):], v, nil
		}
		return bb, nil, Fail(bb, word)
	}
}

func byteParser(b byte) Parser[[]byte, byte] {
	return func(bb []byte) ([]byte, byte, *Failure) {
		if len(bb) > 0 && bb[0] == b {
			return bb[1:], b, nil
		}
		return bb, 0, Failf(bb, "%q", b)
	}
}

func byteInParser(set string) Parser[[]byte, byte] {
	return func(bb []byte) ([]byte, byte, *Failure) {
		if len(bb) > 0 && bytes.IndexByte([]byte(set), bb[0]) >= 0 {
			return bb[1:], bb[0], nil
		}
		return bb, 0, Failf(bb, "one of %q", set)
	}
}
