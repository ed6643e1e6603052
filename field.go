package countz

import "fmt"

// Kind identifies the type held by a Value.
type Kind uint8

// The set of value kinds is closed.
const (
	KindInt Kind = iota
	KindUint
	KindBool
	KindString
	KindDebug
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindUint:
		return "uint"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindDebug:
		return "debug"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Value is a typed field value.
type Value struct {
	any  any
	str  string
	num  uint64
	kind Kind
}

// IntValue returns a signed integer Value.
func IntValue(v int64) Value { return Value{kind: KindInt, num: uint64(v)} }

// UintValue returns an unsigned integer Value.
func UintValue(v uint64) Value { return Value{kind: KindUint, num: v} }

// BoolValue returns a boolean Value.
func BoolValue(v bool) Value {
	var n uint64
	if v {
		n = 1
	}
	return Value{kind: KindBool, num: n}
}

// StringValue returns a string Value.
func StringValue(v string) Value { return Value{kind: KindString, str: v} }

// DebugValue returns an opaque Value formatted with %v when rendered.
func DebugValue(v any) Value { return Value{kind: KindDebug, any: v} }

// Kind returns the kind of v.
func (v Value) Kind() Kind { return v.kind }

// Int64 returns the signed integer held by v. Panics if v is not KindInt.
func (v Value) Int64() int64 {
	v.mustBe(KindInt)
	return int64(v.num)
}

// Uint64 returns the unsigned integer held by v. Panics if v is not KindUint.
func (v Value) Uint64() uint64 {
	v.mustBe(KindUint)
	return v.num
}

// Bool returns the boolean held by v. Panics if v is not KindBool.
func (v Value) Bool() bool {
	v.mustBe(KindBool)
	return v.num == 1
}

// Str returns the string held by v. Panics if v is not KindString.
func (v Value) Str() string {
	v.mustBe(KindString)
	return v.str
}

// Any returns v as a Go value of its natural type.
func (v Value) Any() any {
	switch v.kind {
	case KindInt:
		return int64(v.num)
	case KindUint:
		return v.num
	case KindBool:
		return v.num == 1
	case KindString:
		return v.str
	default:
		return v.any
	}
}

// String renders v for display.
func (v Value) String() string {
	if v.kind == KindString {
		return v.str
	}
	return fmt.Sprintf("%v", v.Any())
}

func (v Value) mustBe(k Kind) {
	if v.kind != k {
		panic(fmt.Sprintf("countz: Value kind is %s, not %s", v.kind, k))
	}
}

// Field is a named value attached to a span or event.
type Field struct {
	Value Value
	Name  Name
}

// Int returns a signed integer field.
func Int(name Name, v int64) Field { return Field{Name: name, Value: IntValue(v)} }

// Uint returns an unsigned integer field.
func Uint(name Name, v uint64) Field { return Field{Name: name, Value: UintValue(v)} }

// Bool returns a boolean field.
func Bool(name Name, v bool) Field { return Field{Name: name, Value: BoolValue(v)} }

// String returns a string field.
func String(name Name, v string) Field { return Field{Name: name, Value: StringValue(v)} }

// Any returns an opaque field.
func Any(name Name, v any) Field { return Field{Name: name, Value: DebugValue(v)} }

// Visitor receives field values one typed callback at a time.
type Visitor interface {
	RecordInt(name Name, v int64)
	RecordUint(name Name, v uint64)
	RecordBool(name Name, v bool)
	RecordString(name Name, v string)
	RecordDebug(name Name, v any)
}

// Record hands f to the Visitor callback matching its kind.
func (f Field) Record(vis Visitor) {
	switch f.Value.kind {
	case KindInt:
		vis.RecordInt(f.Name, int64(f.Value.num))
	case KindUint:
		vis.RecordUint(f.Name, f.Value.num)
	case KindBool:
		vis.RecordBool(f.Name, f.Value.num == 1)
	case KindString:
		vis.RecordString(f.Name, f.Value.str)
	case KindDebug:
		vis.RecordDebug(f.Name, f.Value.any)
	}
}

// Fields is an ordered set of field values.
type Fields []Field

// Record visits every field in order.
func (fs Fields) Record(vis Visitor) {
	for _, f := range fs {
		f.Record(vis)
	}
}

// Names returns the field names in order.
func (fs Fields) Names() []Name {
	names := make([]Name, len(fs))
	for i, f := range fs {
		names[i] = f.Name
	}
	return names
}
