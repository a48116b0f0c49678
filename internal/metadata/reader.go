// Package metadata reads schema documents describing complex types.
package metadata

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

var ErrEmptyTypeName = errors.New("complex type without a name")

type Reader struct {
	schema Schema
	byName map[string]int
}

// NewReader reads the schema document at path.
func NewReader(path string) (*Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open schema: %w", err)
	}
	defer file.Close()

	return Parse(file)
}

// Parse decodes a YAML schema document.
func Parse(source io.Reader) (*Reader, error) {
	var schema Schema
	if err := yaml.NewDecoder(source).Decode(&schema); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode schema: %w", err)
	}

	reader := &Reader{schema: schema, byName: make(map[string]int, len(schema.Types))}
	for i, complexType := range schema.Types {
		if complexType.Name == "" {
			return nil, fmt.Errorf("type #%d: %w", i, ErrEmptyTypeName)
		}
		reader.byName[complexType.Name] = i
	}

	return reader, nil
}

// Tries to get the complex type with given name
func (reader *Reader) TryGetType(name string) (element ComplexType, found bool) {
	i, found := reader.byName[name]
	if !found {
		return ComplexType{}, false
	}

	return reader.schema.Types[i], true
}

func (reader *Reader) Types() []ComplexType {
	return reader.schema.Types
}

// Members lists every member of every type in document order.
func (reader *Reader) Members() []MemberTuple {
	tuples := make([]MemberTuple, 0)
	for _, complexType := range reader.schema.Types {
		for _, member := range complexType.Members {
			tuples = append(tuples, MemberTuple{
				ComplexType: complexType.Name,
				MemberType:  member.Type,
				MemberName:  member.Name,
				Nillable:    member.Nillable,
			})
		}
	}

	return tuples
}

// Facts lists the alias and inheritance facts in document order. A type with
// both a base and a parent yields the alias fact first.
func (reader *Reader) Facts() []HierarchyFact {
	facts := make([]HierarchyFact, 0)
	for _, complexType := range reader.schema.Types {
		if complexType.Base != "" {
			facts = append(facts, HierarchyFact{
				ComplexType:        complexType.Name,
				ParentOrAlias:      complexType.Base,
				IsAliasToPrimitive: true,
			})
		}
		if complexType.Extends != "" {
			facts = append(facts, HierarchyFact{
				ComplexType:   complexType.Name,
				ParentOrAlias: complexType.Extends,
			})
		}
	}

	return facts
}
