package xmlmap_test

import (
	"github.com/KimNorgaard/go-xmlmap"
)

// mapping builds a *xmlmap.Mapping from alternating key/value pairs.
func mapping(pairs ...any) *xmlmap.Mapping {
	if len(pairs)%2 != 0 {
		panic("mapping: odd number of arguments")
	}
	m := xmlmap.NewMapping()
	for i := 0; i < len(pairs); i += 2 {
		m.Set(pairs[i].(string), val(pairs[i+1]))
	}
	return m
}

func list(items ...any) xmlmap.List {
	l := make(xmlmap.List, len(items))
	for i, item := range items {
		l[i] = val(item)
	}
	return l
}

func val(x any) xmlmap.Value {
	switch v := x.(type) {
	case nil:
		return xmlmap.Null{}
	case string:
		return xmlmap.String(v)
	case bool:
		return xmlmap.Bool(v)
	case xmlmap.Value:
		return v
	default:
		panic("val: unsupported type")
	}
}
