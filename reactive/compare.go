package reactive

import (
	"cmp"
	"fmt"
	"reflect"

	gocmp "github.com/google/go-cmp/cmp"
)

// exportAll lets Equal look into unexported fields of any struct.
var exportAll = gocmp.Exporter(func(reflect.Type) bool { return true })

// Equal reports whether a and b are structurally equal, unexported fields
// included. Values exposing an Equal method, such as signals, collections
// and derived companions, are compared through it.
func Equal[T any](a, b T) bool {
	return gocmp.Equal(a, b, exportAll)
}

// Compare orders a and b. A Compare(T) int method takes precedence; otherwise
// numbers, strings and booleans compare naturally and arrays, slices, structs
// and pointers compare element by element. Interface values holding
// different dynamic types order by type name. Any other kind panics.
func Compare[T any](a, b T) int {
	if c, ok := any(a).(interface{ Compare(T) int }); ok {
		return c.Compare(b)
	}

	return compareValues(reflect.ValueOf(&a).Elem(), reflect.ValueOf(&b).Elem())
}

func compareValues(a, b reflect.Value) int {
	if a.Type() != b.Type() {
		return cmp.Compare(a.Type().String(), b.Type().String())
	}

	if a.CanInterface() {
		if m := a.MethodByName("Compare"); m.IsValid() && isCompareMethod(m.Type(), a.Type()) {
			return int(m.Call([]reflect.Value{b})[0].Int())
		}
	}

	switch a.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return cmp.Compare(a.Int(), b.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return cmp.Compare(a.Uint(), b.Uint())
	case reflect.Float32, reflect.Float64:
		return cmp.Compare(a.Float(), b.Float())
	case reflect.String:
		return cmp.Compare(a.String(), b.String())
	case reflect.Bool:
		return compareBool(a.Bool(), b.Bool())
	case reflect.Array, reflect.Slice:
		return compareSequence(a, b)
	case reflect.Struct:
		for i := range a.NumField() {
			if c := compareValues(a.Field(i), b.Field(i)); c != 0 {
				return c
			}
		}

		return 0
	case reflect.Pointer, reflect.Interface:
		switch {
		case a.IsNil() && b.IsNil():
			return 0
		case a.IsNil():
			return -1
		case b.IsNil():
			return 1
		}

		return compareValues(a.Elem(), b.Elem())
	default:
		panic(fmt.Sprintf("reactive: values of kind %s are not ordered", a.Kind()))
	}
}

func compareSequence(a, b reflect.Value) int {
	n := min(a.Len(), b.Len())
	for i := range n {
		if c := compareValues(a.Index(i), b.Index(i)); c != 0 {
			return c
		}
	}

	return cmp.Compare(a.Len(), b.Len())
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}

func isCompareMethod(m, self reflect.Type) bool {
	return m.NumIn() == 1 && m.In(0) == self &&
		m.NumOut() == 1 && m.Out(0).Kind() == reflect.Int
}
