package media

// Optional holds a value together with an explicit presence flag.
// The zero value is absent.
type Optional[T any] struct {
	value   T
	present bool
}

// Some returns a present Optional holding v
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, present: true}
}

// None returns an absent Optional
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it is present
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.present
}

// IsPresent reports whether a value is set
func (o Optional[T]) IsPresent() bool {
	return o.present
}

// OrElse returns the value if present, otherwise d
func (o Optional[T]) OrElse(d T) T {
	if o.present {
		return o.value
	}
	return d
}

// Ptr returns a pointer to a copy of the value, or nil if absent.
// Used by the reflective serializers that model absence as nil.
func (o Optional[T]) Ptr() *T {
	if !o.present {
		return nil
	}
	v := o.value
	return &v
}

// FromPtr is the inverse of Ptr
func FromPtr[T any](p *T) Optional[T] {
	if p == nil {
		return None[T]()
	}
	return Some(*p)
}
