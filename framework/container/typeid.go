package container

import (
	"reflect"
	"strings"
)

// TypeID uniquely identifies a static Go type for the lifetime of the
// process. It is comparable and hashable, so it serves as the primary key
// for every table in the registry.
//
//	id := container.TypeOf[*UserService]()
//	registry.ContainsTypeID(id)
type TypeID struct {
	rt reflect.Type
}

// TypeOf returns the type identity of T.
//
// Two calls with the same type argument always return equal identities;
// identities of distinct types are never equal.
func TypeOf[T any]() TypeID {
	return TypeID{rt: reflect.TypeOf((*T)(nil)).Elem()}
}

// TypeIDOf returns the type identity of v's dynamic type.
func TypeIDOf(v any) TypeID {
	return TypeID{rt: reflect.TypeOf(v)}
}

// IsZero reports whether the identity denotes no type at all.
func (id TypeID) IsZero() bool { return id.rt == nil }

// String returns the package-qualified rendering, e.g. "*app.UserService".
func (id TypeID) String() string {
	if id.rt == nil {
		return "<none>"
	}
	return id.rt.String()
}

// ShortName returns the de-namespaced type name, e.g. "UserService".
// Used as the default component name when registration omits one.
func (id TypeID) ShortName() string {
	s := id.String()
	s = strings.TrimLeft(s, "*")
	if i := strings.LastIndex(s, "."); i >= 0 {
		s = s[i+1:]
	}
	return s
}

// Less imposes a total order on identities (by their string rendering).
func (id TypeID) Less(other TypeID) bool {
	return id.String() < other.String()
}
