// Package funcparser provides helper functions for defining functional parsers.
package funcparser

import "fmt"

type Empty struct{}

// Input is the type of data a parser consumes. Its length is used to work out how far a parser
// got before failing.
type Input interface {
	~[]byte | ~string
}

// Parser is an abstract type that defines a function that is able to take some input, return some
// output and the remaining input. When the parser does not match it returns the input it was
// given, the zero output and a non nil *Failure.
type Parser[I Input, O any] func(I) (I, O, *Failure)

// Failure describes why and where a parser stopped matching.
type Failure struct {
	// Remaining is the length of the input that was left when the failure happened. Comparing it
	// with the length of the full input gives the offset of the failure.
	Remaining int
	// Expected describes what the parser was looking for.
	Expected string
}

// Valid reports whether the parse succeeded. It is safe to call on a nil *Failure.
func (f *Failure) Valid() bool {
	return f == nil
}

func (f *Failure) Error() string {
	return "expected " + f.Expected
}

// Fail is a helper for making a failure at the start of in.
func Fail[I Input](in I, expected string) *Failure {
	return &Failure{Remaining: len(in), Expected: expected}
}

// Failf is like Fail but formats the expectation.
func Failf[I Input](in I, format string, args ...any) *Failure {
	return Fail(in, fmt.Sprintf(format, args...))
}

// consumed reports whether a failure happened after the parser had moved past the start of in.
func consumed[I Input](in I, f *Failure) bool {
	return f.Remaining < len(in)
}

// furthest returns the failure that got the furthest into the input.
func furthest(a, b *Failure) *Failure {
	if a == nil {
		return b
	}
	if b == nil || a.Remaining <= b.Remaining {
		return a
	}
	return b
}

// Lazy delays building a parser until it is run. It allows recursive grammars.
func Lazy[I Input, O any](f func() Parser[I, O]) Parser[I, O] {
	return func(i I) (I, O, *Failure) {
		return f()(i)
	}
}

// Map converts the output of a successful parse.
func Map[I Input, A, B any](p Parser[I, A], f func(A) B) Parser[I, B] {
	return func(in I) (I, B, *Failure) {
		rest, a, fail := p(in)
		if !fail.Valid() {
			var b B
			return in, b, fail
		}
		return rest, f(a), nil
	}
}

// Validate converts the output of a successful parse with a function that may reject it. A
// rejection is reported at the start of the input.
func Validate[I Input, A, B any](p Parser[I, A], f func(A) (B, error)) Parser[I, B] {
	return func(in I) (I, B, *Failure) {
		var b B
		rest, a, fail := p(in)
		if !fail.Valid() {
			return in, b, fail
		}
		b, err := f(a)
		if err != nil {
			return in, b, Fail(in, err.Error())
		}
		return rest, b, nil
	}
}

// Chain runs each parser in turn and collects their outputs. It fails if any parser fails.
func Chain[I Input, O any](ps ...Parser[I, O]) Parser[I, []O] {
	return func(in I) (I, []O, *Failure) {
		rest := in
		outs := make([]O, 0, len(ps))
		for _, p := range ps {
			var (
				o    O
				fail *Failure
			)
			rest, o, fail = p(rest)
			if !fail.Valid() {
				return in, nil, fail
			}
			outs = append(outs, o)
		}
		return rest, outs, nil
	}
}

// Try returns the result of the first parser that succeeds. If all fail, the failure that got
// the furthest into the input is returned.
func Try[I Input, O any](ps ...Parser[I, O]) Parser[I, O] {
	return func(in I) (I, O, *Failure) {
		var best *Failure
		for _, p := range ps {
			rest, o, fail := p(in)
			if fail.Valid() {
				return rest, o, nil
			}
			best = furthest(best, fail)
		}
		var o O
		if best == nil {
			best = Fail(in, "nothing")
		}
		return in, o, best
	}
}

// Optional succeeds with the zero output when p does not match at the start of the input. A
// failure that happens after p consumed input is still a failure.
func Optional[I Input, O any](p Parser[I, O]) Parser[I, O] {
	return func(in I) (I, O, *Failure) {
		rest, o, fail := p(in)
		if fail.Valid() {
			return rest, o, nil
		}
		if consumed(in, fail) {
			return in, o, fail
		}
		var zero O
		return in, zero, nil
	}
}

// Many runs p until it stops matching and collects the outputs. Like Optional, a failure after
// p consumed input is propagated.
func Many[I Input, O any](p Parser[I, O]) Parser[I, []O] {
	return func(in I) (I, []O, *Failure) {
		var outs []O
		rest := in
		for {
			next, o, fail := p(rest)
			if !fail.Valid() {
				if consumed(rest, fail) {
					return in, nil, fail
				}
				return rest, outs, nil
			}
			if len(next) == len(rest) {
				// p matched without consuming anything and would loop forever.
				return rest, outs, nil
			}
			outs = append(outs, o)
			rest = next
		}
	}
}

// Expect replaces the expectation of a failure that happened at the start of the input. Failures
// from deeper in the input are more specific and are left alone.
func Expect[I Input, O any](p Parser[I, O], expected string) Parser[I, O] {
	return func(in I) (I, O, *Failure) {
		rest, o, fail := p(in)
		if !fail.Valid() && !consumed(in, fail) {
			return in, o, Fail(in, expected)
		}
		return rest, o, fail
	}
}

// Discard drops the output of p.
func Discard[I Input, O any](p Parser[I, O]) Parser[I, Empty] {
	return Map(p, func(O) Empty { return Empty{} })
}

// Recognize runs p and returns the part of the input it consumed instead of its output.
func Recognize[I Input, O any](p Parser[I, O]) Parser[I, I] {
	return func(in I) (I, I, *Failure) {
		rest, _, fail := p(in)
		if !fail.Valid() {
			var zero I
			return in, zero, fail
		}
		return rest, in[:len(in)-len(rest)], nil
	}
}
