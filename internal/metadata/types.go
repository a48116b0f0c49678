package metadata

// Schema is a parsed schema document.
type Schema struct {
	Types []ComplexType `yaml:"types"`
}

type ComplexType struct {
	Name string `yaml:"name"`
	// Base names the simple type this type restricts.
	Base string `yaml:"base,omitempty"`
	// Extends names the complex type this type derives from.
	Extends string   `yaml:"extends,omitempty"`
	Members []Member `yaml:"members,omitempty"`
}

type Member struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Nillable bool   `yaml:"nillable,omitempty"`
}

// MemberTuple is one member of a complex type as handed to generation.
type MemberTuple struct {
	ComplexType string
	MemberType  string
	MemberName  string
	Nillable    bool
}

// HierarchyFact relates a complex type either to its parent complex type or,
// when IsAliasToPrimitive is set, to the simple type it aliases.
type HierarchyFact struct {
	ComplexType        string
	ParentOrAlias      string
	IsAliasToPrimitive bool
}
