package descriptor

import "strings"

// MemberType is the resolved type of a member. It is one of Primitive,
// ComplexRef or ArrayOf.
type MemberType interface {
	// WireName is the type name used on the wire, "[]" suffixed for arrays.
	WireName() string
	isMemberType()
}

// Primitive is a simple schema type such as "string" or "dateTime".
type Primitive struct {
	Name string
}

// ComplexRef refers to another generated class.
type ComplexRef struct {
	Name string
}

// ArrayOf is a repeated member.
type ArrayOf struct {
	Elem MemberType
}

func (p Primitive) WireName() string  { return p.Name }
func (c ComplexRef) WireName() string { return c.Name }
func (a ArrayOf) WireName() string    { return a.Elem.WireName() + arrayMark }

func (Primitive) isMemberType()  {}
func (ComplexRef) isMemberType() {}
func (ArrayOf) isMemberType()    {}

const arrayMark = "[]"

// Conversion selects how a value moves between its host representation in
// the generated class and its wire representation.
type Conversion int

const (
	ConversionNone Conversion = iota
	// ConversionDateTime keeps an ISO-8601 string on the wire and a date/time
	// value on the host side. Absent values pass through in both directions.
	ConversionDateTime
	// ConversionDecimal keeps the decimal as a string on both sides.
	ConversionDecimal
)

func (c Conversion) String() string {
	switch c {
	case ConversionNone:
		return "none"
	case ConversionDateTime:
		return "dateTime"
	case ConversionDecimal:
		return "decimal"
	}
	return "unknown"
}

func conversionFor(memberType MemberType) Conversion {
	if _, isArray := memberType.(ArrayOf); isArray {
		return ConversionNone
	}

	switch strings.ToLower(memberType.WireName()) {
	case "datetime":
		return ConversionDateTime
	case "decimal":
		return ConversionDecimal
	}
	return ConversionNone
}

// TypeRef is a member type together with its conversion. It answers the
// type names used on each side of the conversion.
type TypeRef struct {
	Member     MemberType
	Conversion Conversion
}

func newTypeRef(memberType MemberType) TypeRef {
	return TypeRef{Member: memberType, Conversion: conversionFor(memberType)}
}

// Wire returns the type name of the stored field.
func (ref TypeRef) Wire() string {
	switch ref.Conversion {
	case ConversionDateTime, ConversionDecimal:
		return "string"
	}
	return ref.Member.WireName()
}

// Host returns the type name exposed through the constructor and accessors.
func (ref TypeRef) Host() string {
	switch ref.Conversion {
	case ConversionDateTime:
		return "DateTime"
	case ConversionDecimal:
		return "string"
	}
	return ref.Member.WireName()
}

// Annotation is the documentation note attached to host facing values.
func (ref TypeRef) Annotation() string {
	if ref.Conversion == ConversionDecimal {
		return "Decimal"
	}
	return ""
}

func (ref TypeRef) IsArray() bool {
	_, isArray := ref.Member.(ArrayOf)
	return isArray
}

// XML schema simple types that are never generated as classes.
var builtinPrimitives = map[string]struct{}{
	"anySimpleType": {}, "anyType": {}, "anyURI": {}, "base64Binary": {},
	"boolean": {}, "byte": {}, "date": {}, "dateTime": {}, "decimal": {},
	"double": {}, "duration": {}, "float": {}, "gDay": {}, "gMonth": {},
	"gMonthDay": {}, "gYear": {}, "gYearMonth": {}, "hexBinary": {}, "ID": {},
	"IDREF": {}, "int": {}, "integer": {}, "language": {}, "long": {},
	"Name": {}, "NCName": {}, "negativeInteger": {}, "NMTOKEN": {},
	"nonNegativeInteger": {}, "nonPositiveInteger": {}, "normalizedString": {},
	"positiveInteger": {}, "QName": {}, "short": {}, "string": {}, "time": {},
	"token": {}, "unsignedByte": {}, "unsignedInt": {}, "unsignedLong": {},
	"unsignedShort": {},
}

// IsBuiltinPrimitive reports whether name is an XML schema simple type.
func IsBuiltinPrimitive(name string) bool {
	if _, found := builtinPrimitives[name]; found {
		return true
	}
	return strings.EqualFold(name, "datetime") || strings.EqualFold(name, "decimal")
}
