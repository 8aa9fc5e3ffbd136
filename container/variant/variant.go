// Package variant implements the closed, index-tagged union of §3.8/§4.9.
//
// C++ gives light-std a `variant<T1,...,Tn>` with a compile-time-closed
// alternative set and overload-set dispatch via `visit`. Go has neither
// variadic non-generic type lists nor function overloading, so Variant is
// tagged dynamically with reflect.Type instead of a compile-time index,
// and Visit takes an explicit list of Case entries in place of an overload
// set. The empty tag (nil reflect.Type) is the zero value, matching
// light-std's default-constructed variant.
//
// Grounded on light-std's types/variant.h (is<T>/strict_get<T>/emplace<T>
// naming and empty-by-default semantics) and tinyrange-rtg's use of
// reflect-driven type switches in its AST evaluator for dynamic dispatch
// over a closed set of node kinds.
package variant

import "reflect"

// Variant holds at most one value of any type, or is empty.
type Variant struct {
	tag   reflect.Type
	value any
}

// Empty returns a variant in the empty tag.
func Empty() Variant { return Variant{} }

// New returns a variant holding v with T as its active alternative.
func New[T any](v T) Variant {
	return Variant{tag: reflect.TypeOf((*T)(nil)).Elem(), value: v}
}

// IsEmpty reports whether no alternative is active.
func (v Variant) IsEmpty() bool { return v.tag == nil }

// Is reports whether T is the active alternative.
func Is[T any](v Variant) bool {
	if v.tag == nil {
		return false
	}
	return v.tag == reflect.TypeOf((*T)(nil)).Elem()
}

// StrictGet returns the active value as T, panicking if T is not active.
func StrictGet[T any](v Variant) T {
	if !Is[T](v) {
		panic("variant: strict_get called on an inactive alternative")
	}
	return v.value.(T)
}

// Emplace destroys v's current payload (if any) and constructs T in place.
func Emplace[T any](v *Variant, val T) {
	v.tag = reflect.TypeOf((*T)(nil)).Elem()
	v.value = val
}

// Case binds a handler to one alternative type, for use with Visit.
type Case struct {
	typ reflect.Type
	fn  func(any)
}

// On returns a Case that invokes fn when T is the active alternative.
func On[T any](fn func(T)) Case {
	return Case{
		typ: reflect.TypeOf((*T)(nil)).Elem(),
		fn:  func(a any) { fn(a.(T)) },
	}
}

// Visit dispatches v to whichever case matches its active alternative,
// or to empty if v is empty or no case matches (§4.9's catch-all branch).
func Visit(v Variant, empty func(), cases ...Case) {
	if !v.IsEmpty() {
		for _, c := range cases {
			if c.typ == v.tag {
				c.fn(v.value)
				return
			}
		}
	}
	if empty != nil {
		empty()
	}
}
