package util

import (
	"fmt"
	"reflect"
)

type Set[T comparable] map[T]struct{}

func NewSet[T comparable]() Set[T] {
	return make(Set[T])
}

func (s Set[T]) Add(item T) error {
	if IsEmpty(item) {
		return fmt.Errorf("cannot add empty value into set")
	}
	s[item] = struct{}{}
	return nil
}

func (s Set[T]) Contains(item T) bool {
	_, ok := s[item]
	return ok
}

func (s Set[T]) Size() int {
	return len(s)
}

func IsEmpty[T any](val T) bool {
	return reflect.DeepEqual(val, *new(T))
}
