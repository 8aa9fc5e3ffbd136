// Package format implements the `{...}` mini-language format engine of
// §3.11/§4.12/§4.13: a parser for replacement fields, a typed argument
// store, and a dispatcher that picks a renderer by argument kind.
//
// Grounded on light-std's io/fmt.h/fmt.cpp (field grammar, arg_id handling,
// "{!style}" fields, error message phrasing) and io/fmt/format_context.h's
// args/arg/visit split, adapted to Go's lack of operator overloading and
// variadic templates: arguments are captured as `...any` and classified by
// a type switch into a closed Kind enum instead of a templated arg<T>.
package format

import "fmt"

// Kind tags which field of Arg is active, mirroring light-std's type enum.
type Kind int

const (
	KindNone Kind = iota
	KindBool
	KindInt
	KindUint
	KindFloat
	KindCodePoint
	KindString
	KindPointer
	KindCustom
)

// CodePoint marks an argument as a single Unicode code point (the 'c'
// type specifier). Go's rune is just int32, indistinguishable from an
// integer argument at the type-switch level the source language's
// dedicated code_point type gives for free, so callers that want
// code-point formatting wrap the value: format.Sprint(c, "{:c}",
// format.CodePoint('X')).
type CodePoint rune

// Pointer marks an argument as an opaque address to render with the 'p'
// specifier (always hex, "0x" prefix), independent of Go's typed pointers.
type Pointer uintptr

// Formatter is implemented by custom argument types that want to render
// themselves, mirroring light-std's erased {ptr, format_fn} custom
// formatter pair (§4.13, §9).
type Formatter interface {
	FormatTo(d *Dispatcher)
}

// Arg is one classified, type-erased format argument.
type Arg struct {
	Kind   Kind
	I      int64
	U      uint64
	F      float64
	Cp     rune
	S      string
	P      uintptr
	Custom Formatter
}

// MakeArg classifies v into an Arg by concrete Go type.
func MakeArg(v any) Arg {
	switch x := v.(type) {
	case nil:
		return Arg{Kind: KindNone}
	case bool:
		return Arg{Kind: KindBool, I: b2i(x)}
	case int:
		return Arg{Kind: KindInt, I: int64(x)}
	case int8:
		return Arg{Kind: KindInt, I: int64(x)}
	case int16:
		return Arg{Kind: KindInt, I: int64(x)}
	case int32:
		return Arg{Kind: KindInt, I: int64(x)}
	case int64:
		return Arg{Kind: KindInt, I: x}
	case uint:
		return Arg{Kind: KindUint, U: uint64(x)}
	case uint8:
		return Arg{Kind: KindUint, U: uint64(x)}
	case uint16:
		return Arg{Kind: KindUint, U: uint64(x)}
	case uint32:
		return Arg{Kind: KindUint, U: uint64(x)}
	case uint64:
		return Arg{Kind: KindUint, U: x}
	case uintptr:
		return Arg{Kind: KindUint, U: uint64(x)}
	case float32:
		return Arg{Kind: KindFloat, F: float64(x)}
	case float64:
		return Arg{Kind: KindFloat, F: x}
	case CodePoint:
		return Arg{Kind: KindCodePoint, Cp: rune(x)}
	case Pointer:
		return Arg{Kind: KindPointer, P: uintptr(x)}
	case string:
		return Arg{Kind: KindString, S: x}
	case fmt.Stringer:
		return Arg{Kind: KindString, S: x.String()}
	case Formatter:
		return Arg{Kind: KindCustom, Custom: x}
	default:
		return pointerOrCustomArg(v)
	}
}

func b2i(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
