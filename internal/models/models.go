package models

import "fmt"

// Kind identifies which variant of a Value is active.
type Kind int

const (
	Null Kind = iota
	Bool
	Int64
	Uint64
	Double
	String
	Array
	Object
)

var kindNames = [...]string{
	Null:   "null",
	Bool:   "bool",
	Int64:  "int64",
	Uint64: "uint64",
	Double: "double",
	String: "string",
	Array:  "array",
	Object: "object",
}

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Member is a single key/value entry of an object.
type Member struct {
	Key   string
	Value *Value
}

// Value is one node of a parsed JSON document.
// Exactly one variant is active, selected by Kind. A Value is never
// modified after construction, and a nil *Value reads as null.
type Value struct {
	kind Kind

	b bool
	i int64
	u uint64
	f float64
	s string

	elems   []*Value
	members []Member
	// index maps an object key to its position in members
	index map[string]int
}

// NewNull returns a null value.
func NewNull() *Value { return &Value{kind: Null} }

// NewBool returns a boolean value.
func NewBool(b bool) *Value { return &Value{kind: Bool, b: b} }

// NewInt64 returns a signed integer value.
func NewInt64(i int64) *Value { return &Value{kind: Int64, i: i} }

// NewUint64 returns an unsigned integer value.
func NewUint64(u uint64) *Value { return &Value{kind: Uint64, u: u} }

// NewDouble returns a floating point value.
func NewDouble(f float64) *Value { return &Value{kind: Double, f: f} }

// NewString returns a string value.
func NewString(s string) *Value { return &Value{kind: String, s: s} }

// NewArray returns an array holding elems in order. Nil elements are stored as null.
func NewArray(elems ...*Value) *Value {
	arr := make([]*Value, len(elems))
	for i, e := range elems {
		if e == nil {
			e = NewNull()
		}
		arr[i] = e
	}
	return &Value{kind: Array, elems: arr}
}

// NewObject returns an object holding members in order.
//
// A repeated key keeps the position of its first occurrence and takes the
// value of its last one, so keys stay unique.
func NewObject(members ...Member) *Value {
	v := &Value{
		kind:    Object,
		members: make([]Member, 0, len(members)),
		index:   make(map[string]int, len(members)),
	}
	for _, m := range members {
		if m.Value == nil {
			m.Value = NewNull()
		}
		if pos, ok := v.index[m.Key]; ok {
			v.members[pos].Value = m.Value
			continue
		}
		v.index[m.Key] = len(v.members)
		v.members = append(v.members, m)
	}
	return v
}

// Kind reports the active variant.
func (v *Value) Kind() Kind {
	if v == nil {
		return Null
	}
	return v.kind
}

func (v *Value) IsNull() bool   { return v.Kind() == Null }
func (v *Value) IsObject() bool { return v.Kind() == Object }
func (v *Value) IsArray() bool  { return v.Kind() == Array }

// IsScalar reports whether v is neither an object nor an array.
func (v *Value) IsScalar() bool {
	k := v.Kind()
	return k != Object && k != Array
}

// Bool returns the boolean payload, or false for other kinds.
func (v *Value) Bool() bool {
	if v.Kind() != Bool {
		return false
	}
	return v.b
}

// Int64 returns the signed integer payload, or 0 for other kinds.
func (v *Value) Int64() int64 {
	if v.Kind() != Int64 {
		return 0
	}
	return v.i
}

// Uint64 returns the unsigned integer payload, or 0 for other kinds.
func (v *Value) Uint64() uint64 {
	if v.Kind() != Uint64 {
		return 0
	}
	return v.u
}

// Double returns the floating point payload, or 0 for other kinds.
func (v *Value) Double() float64 {
	if v.Kind() != Double {
		return 0
	}
	return v.f
}

// Str returns the string payload, or "" for other kinds.
func (v *Value) Str() string {
	if v.Kind() != String {
		return ""
	}
	return v.s
}

// Len returns the number of elements of an array or members of an object.
func (v *Value) Len() int {
	switch v.Kind() {
	case Array:
		return len(v.elems)
	case Object:
		return len(v.members)
	default:
		return 0
	}
}

// Index returns the i-th array element, or nil when v is not an array or
// i is out of range.
func (v *Value) Index(i int) *Value {
	if v.Kind() != Array || i < 0 || i >= len(v.elems) {
		return nil
	}
	return v.elems[i]
}

// Get looks up key in an object.
func (v *Value) Get(key string) (*Value, bool) {
	if v.Kind() != Object {
		return nil, false
	}
	pos, ok := v.index[key]
	if !ok {
		return nil, false
	}
	return v.members[pos].Value, true
}

// Members returns the object's entries in insertion order.
func (v *Value) Members() []Member {
	if v.Kind() != Object {
		return nil
	}
	out := make([]Member, len(v.members))
	copy(out, v.members)
	return out
}

// Elements returns the array's elements in order.
func (v *Value) Elements() []*Value {
	if v.Kind() != Array {
		return nil
	}
	out := make([]*Value, len(v.elems))
	copy(out, v.elems)
	return out
}

// Document is the parsed input handed from the parser to the rest of the program.
type Document struct {
	Root        *Value
	Source      string // file path, or "stdin"
	RootIsArray bool
}
