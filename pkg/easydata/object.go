package easydata

// Object is a string keyed mapping which remembers insertion order. Data sources
// decode documents into Objects so that iteration follows the document.
type Object struct {
	keys   []string
	values map[string]interface{}
}

// NewObject creates an empty object.
func NewObject() *Object {
	return &Object{values: make(map[string]interface{})}
}

// ObjectOf builds an object from alternating keys and values, which is handy for
// literal test data: ObjectOf("name", "Horst", "age", 42).
func ObjectOf(pairs ...interface{}) *Object {
	o := NewObject()
	for i := 0; i+1 < len(pairs); i += 2 {
		key, _ := pairs[i].(string)
		o.Set(key, pairs[i+1])
	}
	return o
}

// Set adds or replaces a value. Replacing keeps the original position.
func (o *Object) Set(key string, value interface{}) {
	if _, exists := o.values[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

// Get returns the value stored for key.
func (o *Object) Get(key string) (interface{}, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (o *Object) Keys() []string {
	return append([]string(nil), o.keys...)
}

// Values returns the values in key order.
func (o *Object) Values() []interface{} {
	result := make([]interface{}, len(o.keys))
	for i, k := range o.keys {
		result[i] = o.values[k]
	}
	return result
}

// Len returns the number of entries.
func (o *Object) Len() int {
	return len(o.keys)
}

// PropertySource is implemented by host objects which expose named properties
// without being a plain mapping.
type PropertySource interface {
	// Property returns the named property and whether it exists.
	Property(name string) (interface{}, bool)
	// PropertyNames lists the supported property names in a stable order.
	PropertyNames() []string
}
