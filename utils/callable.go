package utils

import "reflect"

// IsCallable reports whether x is a non-nil function value.
func IsCallable(x interface{}) bool {
	if x == nil {
		return false
	}
	v := reflect.ValueOf(x)
	return v.Kind() == reflect.Func && !v.IsNil()
}
