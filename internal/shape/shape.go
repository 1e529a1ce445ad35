// Package shape gives a uniform view over the decoded scan tree, where a
// container holding exactly one child element collapses to that child and
// loses its list wrapper.
package shape

// Kind is the observed cardinality of a tree position.
type Kind int

const (
	Absent Kind = iota
	One
	Many
)

func (k Kind) String() string {
	switch k {
	case One:
		return "one"
	case Many:
		return "many"
	default:
		return "absent"
	}
}

// Shape is a tagged union over {Absent, One(map), Many([]value)}.
type Shape struct {
	kind Kind
	one  map[string]interface{}
	many []interface{}
}

// Of classifies a decoded value. Scalars (including the empty string the
// decoder produces for an empty element) count as Absent.
func Of(v interface{}) Shape {
	switch t := v.(type) {
	case map[string]interface{}:
		return Shape{kind: One, one: t}
	case []interface{}:
		return Shape{kind: Many, many: t}
	default:
		return Shape{kind: Absent}
	}
}

func (s Shape) Kind() Kind {
	return s.kind
}

// Slice returns the position as a sequence in all three cases.
func (s Shape) Slice() []interface{} {
	switch s.kind {
	case One:
		return []interface{}{s.one}
	case Many:
		return s.many
	default:
		return []interface{}{}
	}
}

// AsList is shorthand for Of(v).Slice().
func AsList(v interface{}) []interface{} {
	return Of(v).Slice()
}

// AsMap reports whether v is a well-formed mapping.
func AsMap(v interface{}) (map[string]interface{}, bool) {
	m, ok := v.(map[string]interface{})
	return m, ok
}

// Get walks nested mappings along path. It fails on the first missing key or
// non-mapping intermediate.
func Get(v interface{}, path ...string) (interface{}, bool) {
	cur := v
	for _, key := range path {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return nil, false
		}
		cur, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// String returns the string found at path, or def on any shape mismatch.
// A present empty string is returned as is.
func String(v interface{}, def string, path ...string) string {
	found, ok := Get(v, path...)
	if !ok {
		return def
	}
	s, ok := found.(string)
	if !ok {
		return def
	}
	return s
}

// First returns the first element of the sequence view of v.
func First(v interface{}) (interface{}, bool) {
	items := AsList(v)
	if len(items) == 0 {
		return nil, false
	}
	return items[0], true
}
