package descriptor

import "strings"

// Member is one field of a complex type as declared in the schema.
type Member struct {
	Type     string
	Name     string
	Nillable bool
}

type Visibility int

const (
	Public Visibility = iota
	Private
)

// Default is the initial value of a field or constructor parameter.
type Default int

const (
	DefaultNull Default = iota
	DefaultEmptyCollection
)

func (d Default) String() string {
	if d == DefaultEmptyCollection {
		return "[]"
	}
	return "null"
}

type Field struct {
	Name       string
	Type       TypeRef
	Default    Default
	Visibility Visibility
}

type Param struct {
	Name string
	Type TypeRef
	// HasDefault is set when the parameter may be omitted by callers.
	HasDefault bool
	Default    Default
}

// Assignment stores a constructor parameter in a field, converting the host
// value to its wire form.
type Assignment struct {
	Field      string
	Param      string
	Conversion Conversion
}

// Constructor holds one assignment per parameter: Body[i] assigns Params[i].
type Constructor struct {
	Params []Param
	Body   []Assignment
}

// ParamList renders the parameters as a comma separated list, for example
// "title, items = []".
func (c *Constructor) ParamList() string {
	parts := make([]string, 0, len(c.Params))
	for _, param := range c.Params {
		part := param.Name
		if param.HasDefault {
			part += " = " + param.Default.String()
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, ", ")
}

// Getter returns a field converted from wire to host form.
type Getter struct {
	Name  string
	Field string
	Type  TypeRef
}

// Setter stores a host value in a field and returns the class for chaining.
type Setter struct {
	Name    string
	Field   string
	Param   string
	Type    TypeRef
	Returns string
}

type Accessor struct {
	Getter Getter
	Setter Setter
}

// Degraded records a member whose declared type could not be validated and
// was replaced with FallbackTypeName.
type Degraded struct {
	Member       string
	DeclaredType string
	Err          error
}

// ClassDescriptor is the complete, emitter independent description of one
// generated class.
type ClassDescriptor struct {
	Name string
	Doc  string
	// ClassExists asks the emitter to keep an already existing class.
	ClassExists bool
	Fields      []Field
	// Constructor is nil when type constructors are disabled.
	Constructor *Constructor
	Accessors   []Accessor
	Degraded    []Degraded
}

// Field returns the field with the given name.
func (d *ClassDescriptor) Field(name string) (Field, bool) {
	for _, field := range d.Fields {
		if field.Name == name {
			return field, true
		}
	}
	return Field{}, false
}

func (d *ClassDescriptor) UsesConversion(conversion Conversion) bool {
	for _, field := range d.Fields {
		if field.Type.Conversion == conversion {
			return true
		}
	}
	return false
}
