package value

import "strings"

// Object is a mapping from string key to Value. Insertion order is kept
// only so iteration and repr output are deterministic across runs; the
// spec treats key order as insertion-insensitive.
type Object struct {
	keys   []string
	values map[string]Value
}

func NewObject() *Object {
	return &Object{values: make(map[string]Value)}
}

// Get returns the value at key, or (Null{}, false) if the key is absent.
// A missing key yields Null on read per spec §3.
func (o *Object) Get(key string) (Value, bool) {
	v, ok := o.values[key]
	if !ok {
		return Null{}, false
	}
	return v, ok
}

// Set writes key=val, creating the key if it did not already exist.
func (o *Object) Set(key string, val Value) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = val
}

// Delete removes key. Assigning Null to an object member is how scripts
// spell deletion.
func (o *Object) Delete(key string) {
	if _, ok := o.values[key]; !ok {
		return
	}
	delete(o.values, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
}

func (o *Object) Has(key string) bool {
	_, ok := o.values[key]
	return ok
}

// Keys returns keys in insertion order.
func (o *Object) Keys() []string {
	out := make([]string, len(o.keys))
	copy(out, o.keys)
	return out
}

func (o *Object) Len() int { return len(o.keys) }

// Clone returns a shallow copy: a new Object with the same key/value
// pairs (Object/Array values remain shared references).
func (o *Object) Clone() *Object {
	n := NewObject()
	for _, k := range o.keys {
		n.Set(k, o.values[k])
	}
	return n
}

// ObjectValue is the Value wrapper around a shared *Object reference.
type ObjectValue struct {
	Obj *Object
}

func NewObjectValue(o *Object) *ObjectValue { return &ObjectValue{Obj: o} }

func (o *ObjectValue) Kind() Kind   { return KindObject }
func (o *ObjectValue) Truthy() bool { return true }
func (o *ObjectValue) Display() string { return o.Repr() }
func (o *ObjectValue) Repr() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, k := range o.Obj.keys {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(k)
		sb.WriteString(": ")
		sb.WriteString(o.Obj.values[k].Repr())
	}
	sb.WriteByte('}')
	return sb.String()
}
