package generation

import (
	"fmt"
	"go/token"
	"strings"

	"github.com/dave/jennifer/jen"

	"soapgen/internal/descriptor"
	"soapgen/internal/naming"
)

const (
	helpersFileName  = "soapgen_helpers.go"
	dateTimeToWire   = "dateTimeToWire"
	dateTimeFromWire = "dateTimeFromWire"
)

// The Go type of each XML schema simple type. Unlisted simple types are strings.
var builtInTypes = map[string]func() *jen.Statement{
	"boolean":            jen.Bool,
	"byte":               jen.Int8,
	"short":              jen.Int16,
	"int":                jen.Int32,
	"long":               jen.Int64,
	"integer":            jen.Int64,
	"negativeInteger":    jen.Int64,
	"nonPositiveInteger": jen.Int64,
	"nonNegativeInteger": jen.Uint64,
	"positiveInteger":    jen.Uint64,
	"unsignedByte":       jen.Uint8,
	"unsignedShort":      jen.Uint16,
	"unsignedInt":        jen.Uint32,
	"unsignedLong":       jen.Uint64,
	"float":              jen.Float32,
	"double":             jen.Float64,
	"base64Binary":       func() *jen.Statement { return jen.Index().Byte() },
	"hexBinary":          func() *jen.Statement { return jen.Index().Byte() },
	"anyType":            func() *jen.Statement { return jen.Interface() },
}

// FileName is the file a class is written to.
func FileName(className string) string {
	return strings.ToLower(className) + ".go"
}

// Emitter renders class descriptors as Go source. References to classes
// outside the rendered set become empty interfaces.
type Emitter struct {
	packageName string
	classes     map[string]bool
	needsTime   bool
}

func NewEmitter(packageName string, classes []*descriptor.ClassDescriptor) *Emitter {
	emitter := &Emitter{packageName: packageName, classes: make(map[string]bool, len(classes))}
	for _, class := range classes {
		emitter.classes[class.Name] = true
		if class.UsesConversion(descriptor.ConversionDateTime) {
			emitter.needsTime = true
		}
	}
	return emitter
}

func (emitter *Emitter) Class(class *descriptor.ClassDescriptor) *jen.File {
	file := jen.NewFile(emitter.packageName)
	file.HeaderComment("Code generated by soapgen. DO NOT EDIT.")

	layout := newClassLayout(class)

	file.Comment(fmt.Sprintf("%s %s", class.Name, lowerFirst(class.Doc)))
	file.Type().Id(class.Name).StructFunc(func(g *jen.Group) {
		for _, field := range class.Fields {
			statement := g.Id(layout.fields[field.Name]).Add(emitter.wireType(field.Type))
			if field.Visibility == descriptor.Public {
				statement.Tag(map[string]string{"xml": field.Name})
			}
		}
	})

	if layout.private {
		emitter.wireStruct(file, class, layout)
	}

	if class.Constructor != nil {
		emitter.constructor(file, class, layout)
	}

	for i, accessor := range class.Accessors {
		emitter.getter(file, class.Name, layout, layout.getters[i], accessor.Getter)
		emitter.setter(file, class.Name, layout, layout.setters[i], accessor.Setter)
	}

	return file
}

// classLayout holds the Go identifiers chosen for one class. Fields and
// methods share a namespace in Go, so names that collide after case
// conversion get a numeric suffix.
type classLayout struct {
	receiver   string
	private    bool
	wireType   string
	fields     map[string]string
	wireFields map[string]string
	getters    []string
	setters    []string
}

func newClassLayout(class *descriptor.ClassDescriptor) *classLayout {
	layout := &classLayout{
		receiver:   strings.ToLower(class.Name[:1]),
		wireType:   lowerFirst(class.Name) + "XML",
		fields:     make(map[string]string, len(class.Fields)),
		wireFields: make(map[string]string, len(class.Fields)),
		getters:    make([]string, len(class.Accessors)),
		setters:    make([]string, len(class.Accessors)),
	}

	members := make(identifiers)
	wire := make(identifiers)
	for _, field := range class.Fields {
		if field.Visibility == descriptor.Private {
			layout.private = true
		}
		layout.fields[field.Name] = members.claim(fieldId(field))
		layout.wireFields[field.Name] = wire.claim(naming.ToCamelCase(field.Name, true))
	}
	if layout.private {
		members.claim("MarshalXML")
		members.claim("UnmarshalXML")
	}
	for i, accessor := range class.Accessors {
		layout.getters[i] = members.claim(naming.ToCamelCase(accessor.Getter.Name, true))
		layout.setters[i] = members.claim(naming.ToCamelCase(accessor.Setter.Name, true))
	}

	return layout
}

func (layout *classLayout) recv(className string) *jen.Statement {
	return jen.Id(layout.receiver).Op("*").Id(className)
}

// params starts the scope of a method's parameters. The receiver and the
// package level helpers are taken.
func (layout *classLayout) params() identifiers {
	return identifiers{layout.receiver: true, dateTimeToWire: true, dateTimeFromWire: true}
}

// identifiers hands out unique Go identifiers within one scope.
type identifiers map[string]bool

func (ids identifiers) claim(name string) string {
	name = safeId(name)
	candidate := name
	for n := 2; ids[candidate]; n++ {
		candidate = fmt.Sprintf("%s%d", name, n)
	}
	ids[candidate] = true
	return candidate
}

// wireStruct makes classes with unexported fields serializable: the fields
// are copied through an exported mirror struct carrying the xml tags.
func (emitter *Emitter) wireStruct(file *jen.File, class *descriptor.ClassDescriptor, layout *classLayout) {
	file.Type().Id(layout.wireType).StructFunc(func(g *jen.Group) {
		for _, field := range class.Fields {
			g.Id(layout.wireFields[field.Name]).Add(emitter.wireType(field.Type)).Tag(map[string]string{"xml": field.Name})
		}
	})

	self := jen.Id(layout.receiver)

	file.Comment("MarshalXML implements xml.Marshaler.")
	file.Func().Params(layout.recv(class.Name)).Id("MarshalXML").
		Params(jen.Id("encoder").Op("*").Qual("encoding/xml", "Encoder"), jen.Id("start").Qual("encoding/xml", "StartElement")).
		Error().
		Block(
			jen.Return(jen.Id("encoder").Dot("EncodeElement").Call(
				jen.Id(layout.wireType).Values(jen.DictFunc(func(d jen.Dict) {
					for _, field := range class.Fields {
						d[jen.Id(layout.wireFields[field.Name])] = self.Clone().Dot(layout.fields[field.Name])
					}
				})),
				jen.Id("start"),
			)),
		)

	file.Comment("UnmarshalXML implements xml.Unmarshaler.")
	file.Func().Params(layout.recv(class.Name)).Id("UnmarshalXML").
		Params(jen.Id("decoder").Op("*").Qual("encoding/xml", "Decoder"), jen.Id("start").Qual("encoding/xml", "StartElement")).
		Error().
		BlockFunc(func(g *jen.Group) {
			g.Var().Id("wire").Id(layout.wireType)
			g.If(jen.Err().Op(":=").Id("decoder").Dot("DecodeElement").Call(jen.Op("&").Id("wire"), jen.Op("&").Id("start")), jen.Err().Op("!=").Nil()).
				Block(jen.Return(jen.Err()))
			for _, field := range class.Fields {
				g.Add(self.Clone().Dot(layout.fields[field.Name])).Op("=").Id("wire").Dot(layout.wireFields[field.Name])
			}
			g.Return(jen.Nil())
		})
}

func (emitter *Emitter) constructor(file *jen.File, class *descriptor.ClassDescriptor, layout *classLayout) {
	params := layout.params()
	paramIds := make([]string, len(class.Constructor.Params))
	for i, param := range class.Constructor.Params {
		paramIds[i] = params.claim(paramId(param.Name, layout.receiver))
	}
	assigned := make(map[string]int, len(class.Constructor.Body))
	for i, assignment := range class.Constructor.Body {
		assigned[assignment.Field] = i
	}

	values := jen.Dict{}
	for _, field := range class.Fields {
		if i, found := assigned[field.Name]; found {
			values[jen.Id(layout.fields[field.Name])] = toWire(jen.Id(paramIds[i]), class.Constructor.Body[i].Conversion)
		} else if field.Default == descriptor.DefaultEmptyCollection {
			values[jen.Id(layout.fields[field.Name])] = emitter.wireType(field.Type).Values()
		}
	}

	constructorName := "New" + class.Name
	file.Comment(fmt.Sprintf("%s creates a %s from its required members.", constructorName, class.Name))
	if params := class.Constructor.ParamList(); params != "" && hasDefaults(class.Constructor) {
		file.Comment(fmt.Sprintf("Zero values are accepted for %s.", params))
	}
	file.Func().Id(constructorName).ParamsFunc(func(g *jen.Group) {
		for i, param := range class.Constructor.Params {
			g.Id(paramIds[i]).Add(emitter.hostType(param.Type))
		}
	}).Op("*").Id(class.Name).Block(
		jen.Return(jen.Op("&").Id(class.Name).Values(values)),
	)
}

func (emitter *Emitter) getter(file *jen.File, className string, layout *classLayout, name string, getter descriptor.Getter) {
	value := jen.Id(layout.receiver).Dot(layout.fields[getter.Field])

	file.Comment(fmt.Sprintf("%s returns %s%s.", name, getter.Field, annotation(getter.Type)))
	method := file.Func().Params(layout.recv(className)).Id(name).Params()
	if getter.Type.Conversion == descriptor.ConversionDateTime {
		method.Params(emitter.hostType(getter.Type), jen.Error()).Block(
			jen.Return(jen.Id(dateTimeFromWire).Call(value)),
		)
		return
	}
	method.Add(emitter.hostType(getter.Type)).Block(jen.Return(value))
}

func (emitter *Emitter) setter(file *jen.File, className string, layout *classLayout, name string, setter descriptor.Setter) {
	param := layout.params().claim(paramId(setter.Param, layout.receiver))

	file.Comment(fmt.Sprintf("%s sets %s%s.", name, setter.Field, annotation(setter.Type)))
	file.Func().Params(layout.recv(className)).Id(name).
		Params(jen.Id(param).Add(emitter.hostType(setter.Type))).
		Op("*").Id(setter.Returns).
		Block(
			jen.Id(layout.receiver).Dot(layout.fields[setter.Field]).Op("=").Add(toWire(jen.Id(param), setter.Type.Conversion)),
			jen.Return(jen.Id(layout.receiver)),
		)
}

// Helpers returns the conversion helpers shared by all classes, or nil when
// no class converts date/time values.
func (emitter *Emitter) Helpers() *jen.File {
	if !emitter.needsTime {
		return nil
	}

	file := jen.NewFile(emitter.packageName)
	file.HeaderComment("Code generated by soapgen. DO NOT EDIT.")

	file.Func().Id(dateTimeToWire).Params(jen.Id("value").Qual("time", "Time")).String().Block(
		jen.If(jen.Id("value").Dot("IsZero").Call()).Block(jen.Return(jen.Lit(""))),
		jen.Return(jen.Id("value").Dot("Format").Call(jen.Qual("time", "RFC3339"))),
	)
	file.Line()
	file.Func().Id(dateTimeFromWire).Params(jen.Id("value").String()).Params(jen.Qual("time", "Time"), jen.Error()).Block(
		jen.If(jen.Id("value").Op("==").Lit("")).Block(jen.Return(jen.Qual("time", "Time").Values(), jen.Nil())),
		jen.Return(jen.Qual("time", "Parse").Call(jen.Qual("time", "RFC3339"), jen.Id("value"))),
	)

	return file
}

func (emitter *Emitter) wireType(ref descriptor.TypeRef) *jen.Statement {
	if ref.Conversion != descriptor.ConversionNone {
		return jen.String()
	}
	return emitter.memberType(ref.Member)
}

func (emitter *Emitter) hostType(ref descriptor.TypeRef) *jen.Statement {
	switch ref.Conversion {
	case descriptor.ConversionDateTime:
		return jen.Qual("time", "Time")
	case descriptor.ConversionDecimal:
		return jen.String()
	}
	return emitter.memberType(ref.Member)
}

func (emitter *Emitter) memberType(memberType descriptor.MemberType) *jen.Statement {
	switch t := memberType.(type) {
	case descriptor.ArrayOf:
		return jen.Index().Add(emitter.memberType(t.Elem))
	case descriptor.Primitive:
		if builtIn, found := builtInTypes[t.Name]; found {
			return builtIn()
		}
		return jen.String()
	case descriptor.ComplexRef:
		className := naming.ToCamelCase(t.Name, true)
		if emitter.classes[className] {
			return jen.Op("*").Id(className)
		}
		return jen.Interface()
	}
	panic(fmt.Sprintf("unhandled member type %T", memberType))
}

func toWire(value *jen.Statement, conversion descriptor.Conversion) *jen.Statement {
	if conversion == descriptor.ConversionDateTime {
		return jen.Id(dateTimeToWire).Call(value)
	}
	return value
}

func hasDefaults(constructor *descriptor.Constructor) bool {
	for _, param := range constructor.Params {
		if param.HasDefault {
			return true
		}
	}
	return false
}

func annotation(ref descriptor.TypeRef) string {
	if note := ref.Annotation(); note != "" {
		return " (" + note + ")"
	}
	return ""
}

func fieldId(field descriptor.Field) string {
	return safeId(naming.ToCamelCase(field.Name, field.Visibility == descriptor.Public))
}

func paramId(name, receiver string) string {
	if name == receiver {
		name += "Value"
	}
	return safeId(name)
}

func safeId(name string) string {
	if token.IsKeyword(name) {
		return name + "_"
	}
	return name
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
