package configs

import (
	"fmt"
	"iter"
)

// Lookup decodes the first value at path. file names the config file that
// set it and is empty when none did.
func Lookup[T any](loader Loader, path string) (value T, file string, err error) {
	for found, err := range loader.Find(path) {
		if err != nil {
			return value, "", err
		}
		if err := found.Value.Decode(&value); err != nil {
			return value, "", fmt.Errorf("decode config %s in %s: %w", path, found.File, err)
		}
		return value, found.File, nil
	}
	return value, "", nil
}

// First is Lookup for values that have a usable zero. Errors panic.
func First[T any](loader Loader, path string) T {
	value, _, err := Lookup[T](loader, path)
	if err != nil {
		panic(err)
	}
	return value
}

// All yields the value at path from every file that sets it, in precedence
// order. Errors panic.
func All[T any](loader Loader, path string) iter.Seq[T] {
	return func(yield func(T) bool) {
		for found, err := range loader.Find(path) {
			if err != nil {
				panic(err)
			}
			var value T
			if err := found.Value.Decode(&value); err != nil {
				panic(fmt.Errorf("decode config %s in %s: %w", path, found.File, err))
			}
			if !yield(value) {
				return
			}
		}
	}
}
