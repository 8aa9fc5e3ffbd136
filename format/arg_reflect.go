package format

import (
	"fmt"
	"reflect"
)

// pointerOrCustomArg handles arbitrary pointer types (the 'p' specifier)
// and falls back to fmt.Sprintf for anything else, matching light-std's
// "unknown type" path of going through the closest generic formatter
// rather than failing to compile. Reflection is standard library here
// because no third-party library in the corpus offers a closed-set
// runtime type classifier better suited to this than reflect.Kind.
func pointerOrCustomArg(v any) Arg {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr || rv.Kind() == reflect.UnsafePointer {
		return Arg{Kind: KindPointer, P: rv.Pointer()}
	}
	return Arg{Kind: KindString, S: fmt.Sprintf("%v", v)}
}
