// Package descriptor assembles the class descriptors of generated client
// classes from the members of schema complex types.
package descriptor

import (
	"errors"
	"fmt"
	"strings"

	"soapgen/internal/hierarchy"
	"soapgen/internal/naming"
)

var ErrAlreadyGenerated = errors.New("the class has already been generated")

// FallbackTypeName replaces member types that fail validation.
const FallbackTypeName = "Custom"

const classDoc = "This class was most likely auto-generated and you should not modify it directly."

// Validator normalises raw schema names. ValidateType errors are recovered
// with FallbackTypeName, ValidateNamingConvention errors abort generation.
type Validator interface {
	ValidateType(raw string) (string, error)
	ValidateNamingConvention(raw string) (string, error)
}

type Config struct {
	CreateAccessors                bool
	NoTypeConstructor              bool
	ConstructorParamsDefaultToNull bool
	ClassExists                    bool
}

func DefaultConfig() Config {
	return Config{CreateAccessors: true}
}

// Builder collects the members of one complex type and turns them into a
// ClassDescriptor exactly once.
type Builder struct {
	name       string
	members    []Member
	index      map[string]int
	resolver   *hierarchy.Resolver
	validator  Validator
	config     Config
	descriptor *ClassDescriptor
}

func NewBuilder(name string, resolver *hierarchy.Resolver, validator Validator, config Config) *Builder {
	return &Builder{
		name:      name,
		members:   make([]Member, 0),
		index:     make(map[string]int),
		resolver:  resolver,
		validator: validator,
		config:    config,
	}
}

func (builder *Builder) Name() string {
	return builder.name
}

// AddMember adds a member, overwriting any earlier member with the same name
// in its original position.
func (builder *Builder) AddMember(memberType string, name string, nillable bool) {
	member := Member{Type: memberType, Name: name, Nillable: nillable}
	if i, found := builder.index[name]; found {
		builder.members[i] = member
		return
	}

	builder.index[name] = len(builder.members)
	builder.members = append(builder.members, member)
}

func (builder *Builder) Members() []Member {
	return append([]Member(nil), builder.members...)
}

// Descriptor returns the result of a successful Generate, or nil.
func (builder *Builder) Descriptor() *ClassDescriptor {
	return builder.descriptor
}

// Generate builds the class descriptor. It fails with ErrAlreadyGenerated
// once a descriptor has been produced.
func (builder *Builder) Generate() (*ClassDescriptor, error) {
	if builder.descriptor != nil {
		return nil, fmt.Errorf("generate %s: %w", builder.name, ErrAlreadyGenerated)
	}

	class := &ClassDescriptor{
		Name:        builder.name,
		Doc:         classDoc,
		ClassExists: builder.config.ClassExists,
		Fields:      make([]Field, 0, len(builder.members)),
	}
	constructor := &Constructor{}

	visibility := Public
	if builder.config.CreateAccessors {
		visibility = Private
	}

	for _, member := range builder.members {
		typeRef, degraded, err := builder.resolveType(member)
		if err != nil {
			return nil, fmt.Errorf("generate %s: member %s: %w", builder.name, member.Name, err)
		}
		if degraded != nil {
			class.Degraded = append(class.Degraded, *degraded)
		}

		name, err := builder.validator.ValidateNamingConvention(member.Name)
		if err != nil {
			return nil, fmt.Errorf("generate %s: %w", builder.name, err)
		}

		fieldDefault := DefaultNull
		if typeRef.IsArray() {
			fieldDefault = DefaultEmptyCollection
		}

		class.Fields = append(class.Fields, Field{
			Name:       name,
			Type:       typeRef,
			Default:    fieldDefault,
			Visibility: visibility,
		})

		if member.Nillable {
			continue
		}

		paramName := naming.ToCamelCase(name, false)
		constructor.Params = append(constructor.Params, Param{
			Name:       paramName,
			Type:       typeRef,
			HasDefault: builder.config.ConstructorParamsDefaultToNull,
			Default:    fieldDefault,
		})
		constructor.Body = append(constructor.Body, Assignment{
			Field:      name,
			Param:      paramName,
			Conversion: typeRef.Conversion,
		})

		if builder.config.CreateAccessors {
			class.Accessors = append(class.Accessors, Accessor{
				Getter: Getter{
					Name:  naming.GetterName(name),
					Field: name,
					Type:  typeRef,
				},
				Setter: Setter{
					Name:    naming.SetterName(name),
					Field:   name,
					Param:   paramName,
					Type:    typeRef,
					Returns: builder.name,
				},
			})
		}
	}

	if !builder.config.NoTypeConstructor {
		class.Constructor = constructor
	}

	builder.descriptor = class
	return class, nil
}

func (builder *Builder) resolveType(member Member) (TypeRef, *Degraded, error) {
	var degraded *Degraded
	typeName, err := builder.validator.ValidateType(member.Type)
	if err != nil {
		typeName = FallbackTypeName
		degraded = &Degraded{Member: member.Name, DeclaredType: member.Type, Err: err}
	}

	elemName, isArray := strings.CutSuffix(typeName, arrayMark)

	memberType, err := builder.classify(elemName, isArray)
	if err != nil {
		return TypeRef{}, nil, err
	}
	if isArray {
		memberType = ArrayOf{Elem: memberType}
	}

	return newTypeRef(memberType), degraded, nil
}

// classify picks the variant of an element type. Array elements keep their
// declared name even when they are known complex types.
func (builder *Builder) classify(typeName string, isArray bool) (MemberType, error) {
	primitive, found, err := builder.resolver.ResolveGroundedPrimitive(typeName)
	if err != nil {
		return nil, err
	}

	switch {
	case found:
		return Primitive{Name: primitive}, nil
	case !isArray && builder.resolver.IsKnownComplex(typeName):
		return ComplexRef{Name: naming.ToCamelCase(typeName, true)}, nil
	case IsBuiltinPrimitive(typeName):
		return Primitive{Name: typeName}, nil
	}
	return ComplexRef{Name: typeName}, nil
}
