package di

import (
	"fmt"
	"reflect"
	"runtime"

	"github.com/kbukum/injector/errors"
)

var errorType = reflect.TypeFor[error]()

// constructor holds a validated constructor function.
type constructor struct {
	fn         reflect.Value
	name       string
	params     []reflect.Type
	result     reflect.Type
	returnsErr bool
}

// newConstructor checks the shape of fn:
//
//	func(deps...) C
//	func(deps...) (C, error)
//
// where C is a struct or pointer to struct.
func newConstructor(fn any) (*constructor, error) {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func {
		return nil, errors.InvalidBinding(fmt.Sprintf("constructor must be a function, got %T", fn))
	}
	if v.IsNil() {
		return nil, errors.InvalidBinding("constructor cannot be nil")
	}

	t := v.Type()
	name := funcName(v)
	if t.IsVariadic() {
		return nil, errors.InvalidBinding(fmt.Sprintf("constructor %s cannot be variadic", name))
	}

	switch t.NumOut() {
	case 1:
	case 2:
		if t.Out(1) != errorType {
			return nil, errors.InvalidBinding(
				fmt.Sprintf("constructor %s must return (C) or (C, error), second result is %s", name, t.Out(1)))
		}
	default:
		return nil, errors.InvalidBinding(
			fmt.Sprintf("constructor %s must return (C) or (C, error), got %d results", name, t.NumOut()))
	}

	result := t.Out(0)
	if !isConcrete(result) {
		return nil, errors.InvalidBinding(
			fmt.Sprintf("constructor %s must return a struct or pointer to struct, got %s", name, result)).
			WithDetail("type", result.String())
	}

	params := make([]reflect.Type, t.NumIn())
	for i := range params {
		params[i] = t.In(i)
	}

	return &constructor{
		fn:         v,
		name:       name,
		params:     params,
		result:     result,
		returnsErr: t.NumOut() == 2,
	}, nil
}

// call invokes the constructor with already resolved arguments. A returned
// error, a panic and a nil pointer result are all reported as errors.
func (c *constructor) call(args []reflect.Value) (out reflect.Value, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("constructor %s panicked: %v", c.name, rec)
		}
	}()

	results := c.fn.Call(args)
	if c.returnsErr && !results[1].IsNil() {
		return reflect.Value{}, results[1].Interface().(error)
	}

	out = results[0]
	if out.Kind() == reflect.Pointer && out.IsNil() {
		return reflect.Value{}, fmt.Errorf("constructor %s returned nil", c.name)
	}
	return out, nil
}

func funcName(v reflect.Value) string {
	if f := runtime.FuncForPC(v.Pointer()); f != nil {
		return f.Name()
	}
	return v.Type().String()
}
