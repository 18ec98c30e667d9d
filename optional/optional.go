// Package optional carries values that may be absent. Scan results use it in
// place of (T, bool) pairs so that absence travels through call chains as a
// single value.
package optional

// Optional is a value of type T that may be absent. The zero Optional is
// absent.
type Optional[T any] struct {
	value   T
	present bool
}

// Some wraps a present value.
func Some[T any](value T) Optional[T] {
	return Optional[T]{value: value, present: true}
}

// None returns the absent value of type T.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

func (o Optional[T]) IsPresent() bool {
	return o.present
}

// Value returns the wrapped value, which is the zero value when absent.
func (o Optional[T]) Value() T {
	return o.value
}

// Get unpacks the optional in the comma-ok form.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.present
}
