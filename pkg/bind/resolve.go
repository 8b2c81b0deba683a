package bind

import (
	"errors"
	"fmt"
	"reflect"
	"unicode"
	"unicode/utf8"

	"github.com/vango-dev/compost/pkg/vdom"
)

// Resolution failures. Errors returned by resolvers and by Mixin.Attach wrap
// one of these.
var (
	ErrEmptyHandler       = errors.New("empty handler name")
	ErrHandlerNotFound    = errors.New("handler not found")
	ErrHandlerNotCallable = errors.New("handler not callable")
)

// Resolver turns the value of a marker attribute into a callable.
type Resolver interface {
	Resolve(name string) (func(*vdom.Event), error)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(name string) (func(*vdom.Event), error)

// Resolve implements Resolver.
func (f ResolverFunc) Resolve(name string) (func(*vdom.Event), error) {
	return f(name)
}

// Handlers is an explicit name to handler table.
type Handlers map[string]func(*vdom.Event)

// Resolve implements Resolver.
func (h Handlers) Resolve(name string) (func(*vdom.Event), error) {
	if name == "" {
		return nil, ErrEmptyHandler
	}
	fn, ok := h[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrHandlerNotFound, name)
	}
	if fn == nil {
		return nil, fmt.Errorf("%w: %q is nil", ErrHandlerNotCallable, name)
	}
	return fn, nil
}

var (
	eventFuncType = reflect.TypeOf(func(*vdom.Event) {})
	plainFuncType = reflect.TypeOf(func() {})
)

// Methods resolves handler names against the methods and func-typed fields
// of receiver. The name is tried as written and then with its first letter
// upper-cased, so on-click="save" finds a Save method. Methods are resolved
// as method values, which keeps receiver as the handler's receiver no matter
// how the listener is later invoked.
//
// Accepted shapes are func(*vdom.Event) and func(), or named types
// convertible to them.
func Methods(receiver any) Resolver {
	return methodResolver{v: reflect.ValueOf(receiver)}
}

type methodResolver struct {
	v reflect.Value
}

func (r methodResolver) Resolve(name string) (func(*vdom.Event), error) {
	if name == "" {
		return nil, ErrEmptyHandler
	}
	if !r.v.IsValid() {
		return nil, fmt.Errorf("%w: %q (no receiver)", ErrHandlerNotFound, name)
	}

	for _, candidate := range candidateNames(name) {
		if m := r.v.MethodByName(candidate); m.IsValid() {
			return adaptHandler(name, m)
		}
		if f, ok := funcField(r.v, candidate); ok {
			return adaptHandler(name, f)
		}
	}
	return nil, fmt.Errorf("%w: %q on %s", ErrHandlerNotFound, name, r.v.Type())
}

// candidateNames returns name and, if different, its exported form.
func candidateNames(name string) []string {
	first, size := utf8.DecodeRuneInString(name)
	exported := string(unicode.ToUpper(first)) + name[size:]
	if exported == name {
		return []string{name}
	}
	return []string{name, exported}
}

// funcField looks up an exported struct field, following one pointer.
func funcField(v reflect.Value, name string) (reflect.Value, bool) {
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return reflect.Value{}, false
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return reflect.Value{}, false
	}
	f := v.FieldByName(name)
	if !f.IsValid() || !f.CanInterface() {
		return reflect.Value{}, false
	}
	return f, true
}

func adaptHandler(name string, v reflect.Value) (func(*vdom.Event), error) {
	if v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil, fmt.Errorf("%w: %q is nil", ErrHandlerNotCallable, name)
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Func {
		return nil, fmt.Errorf("%w: %q is %s", ErrHandlerNotCallable, name, v.Type())
	}
	if v.IsNil() {
		return nil, fmt.Errorf("%w: %q is nil", ErrHandlerNotCallable, name)
	}
	switch t := v.Type(); {
	case t.ConvertibleTo(eventFuncType):
		return v.Convert(eventFuncType).Interface().(func(*vdom.Event)), nil
	case t.ConvertibleTo(plainFuncType):
		fn := v.Convert(plainFuncType).Interface().(func())
		return func(*vdom.Event) { fn() }, nil
	default:
		return nil, fmt.Errorf("%w: %q has signature %s", ErrHandlerNotCallable, name, t)
	}
}

// Chain tries each resolver in order. A resolver that does not know the
// name passes to the next one; any other failure stops the chain.
func Chain(resolvers ...Resolver) Resolver {
	return ResolverFunc(func(name string) (func(*vdom.Event), error) {
		if name == "" {
			return nil, ErrEmptyHandler
		}
		err := fmt.Errorf("%w: %q", ErrHandlerNotFound, name)
		for _, r := range resolvers {
			fn, rerr := r.Resolve(name)
			if rerr == nil {
				return fn, nil
			}
			if !errors.Is(rerr, ErrHandlerNotFound) {
				return nil, rerr
			}
			err = rerr
		}
		return nil, err
	})
}
