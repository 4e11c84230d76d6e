// Package options provides the functional options used to configure
// codecs.  Options for a value of type T are applied to a T, usually a
// pointer to a private config struct.
package options

import "fmt"

// Option changes one setting of a T.  It may refuse a setting by returning
// an error.
type Option[T any] interface {
	apply(T) error
}

type optionFunc[T any] func(T) error

func (fn optionFunc[T]) apply(target T) error {
	return fn(target)
}

// New returns an Option that calls fn.
func New[T any](fn func(T) error) Option[T] {
	return optionFunc[T](fn)
}

// NoError returns an Option that calls fn and never fails.
func NoError[T any](fn func(T)) Option[T] {
	return optionFunc[T](func(target T) error {
		fn(target)
		return nil
	})
}

// Apply applies opts to target from first to last.  It stops at the first
// option that fails, and reports that option's position.  Nil options are
// skipped.
func Apply[T any](target T, opts ...Option[T]) error {
	for i, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.apply(target); err != nil {
			return fmt.Errorf("option %d: %w", i, err)
		}
	}
	return nil
}
