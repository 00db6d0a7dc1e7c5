package rule

import "reflect"

// Clone creates an independent copy of a rule so settings can be applied
// without mutating the registered instance. Configurable rules get a
// fresh zero value with their defaults re-applied; others get a shallow
// struct copy.
func Clone(r Rule) Rule {
	rv := reflect.ValueOf(r)
	if rv.Kind() != reflect.Ptr {
		return r // value type, already a copy
	}

	fresh := reflect.New(rv.Elem().Type())
	if c, ok := r.(Configurable); ok {
		clone := fresh.Interface().(Rule)
		if cc, ok := clone.(Configurable); ok {
			_ = cc.ApplySettings(c.DefaultSettings())
		}
		return clone
	}

	fresh.Elem().Set(rv.Elem())
	return fresh.Interface().(Rule)
}
