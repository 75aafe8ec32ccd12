package model

// Field is an explicit optional wrapper for profile values. A zero Field is
// missing; absence is tracked by the type, never by a sentinel value, so a
// missing answer can never be mistaken for a real one.
type Field[T any] struct {
	value   T
	present bool
}

// Present wraps a value that the student actually supplied.
func Present[T any](v T) Field[T] {
	return Field[T]{value: v, present: true}
}

// Missing returns an absent field. Equivalent to the zero value; exists for
// readability at call sites.
func Missing[T any]() Field[T] {
	return Field[T]{}
}

// Get returns the value and whether it is present.
func (f Field[T]) Get() (T, bool) {
	return f.value, f.present
}

// IsPresent reports whether the field holds a value.
func (f Field[T]) IsPresent() bool {
	return f.present
}

// Or returns the value if present, otherwise def.
func (f Field[T]) Or(def T) T {
	if f.present {
		return f.value
	}
	return def
}
