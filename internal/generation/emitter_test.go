package generation

import (
	"context"
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soapgen/internal/descriptor"
	"soapgen/internal/metadata"
)

// typeCheck parses every Go file in dir and checks them as one package.
func typeCheck(t *testing.T, dir string) *types.Package {
	t.Helper()
	fset := token.NewFileSet()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var files []*ast.File
	for _, entry := range entries {
		if filepath.Ext(entry.Name()) != ".go" {
			continue
		}
		file, err := parser.ParseFile(fset, filepath.Join(dir, entry.Name()), nil, parser.SkipObjectResolution)
		require.NoError(t, err, entry.Name())
		files = append(files, file)
	}
	require.NotEmpty(t, files)

	var errs []error
	config := types.Config{
		Importer: importer.ForCompiler(fset, "source", nil),
		Error:    func(err error) { errs = append(errs, err) },
	}
	pkg, _ := config.Check(files[0].Name.Name, fset, files, nil)
	require.Empty(t, errs)
	return pkg
}

// assertWireReady fails for struct fields encoding/xml would skip.
func assertWireReady(t *testing.T, pkg *types.Package) {
	t.Helper()
	scope := pkg.Scope()
	for _, name := range scope.Names() {
		object, ok := scope.Lookup(name).(*types.TypeName)
		if !ok {
			continue
		}
		structType, ok := object.Type().Underlying().(*types.Struct)
		if !ok {
			continue
		}
		for i := 0; i < structType.NumFields(); i++ {
			field := structType.Field(i)
			if !field.Exported() {
				assert.Empty(t, reflect.StructTag(structType.Tag(i)).Get("xml"), "%s.%s", name, field.Name())
			}
		}
	}
}

func hasMethod(pkg *types.Package, typeName, method string) bool {
	object := pkg.Scope().Lookup(typeName)
	if object == nil {
		return false
	}
	selection := types.NewMethodSet(types.NewPointer(object.Type())).Lookup(pkg, method)
	return selection != nil
}

func TestGeneratedPackageTypeChecks(t *testing.T) {
	configs := map[string]descriptor.Config{
		"accessors":       descriptor.DefaultConfig(),
		"public":          {},
		"params-default":  {CreateAccessors: true, ConstructorParamsDefaultToNull: true},
		"no-constructor":  {CreateAccessors: true, NoTypeConstructor: true},
		"public-defaults": {ConstructorParamsDefaultToNull: true},
	}
	for name, config := range configs {
		t.Run(name, func(t *testing.T) {
			generator := newLibraryGenerator(t, config)
			output := t.TempDir()
			require.NoError(t, generator.Generate(context.Background(), output))

			pkg := typeCheck(t, output)
			assert.Equal(t, "library", pkg.Name())
			assertWireReady(t, pkg)

			private := config.CreateAccessors
			assert.Equal(t, private, hasMethod(pkg, "Book", "MarshalXML"))
			assert.Equal(t, private, hasMethod(pkg, "Book", "UnmarshalXML"))
			assert.Equal(t, private, hasMethod(pkg, "Book", "GetTitle"))
		})
	}
}

func TestEmitCaseCollisions(t *testing.T) {
	for name, config := range map[string]descriptor.Config{"accessors": descriptor.DefaultConfig(), "public": {}} {
		t.Run(name, func(t *testing.T) {
			generator := NewGenerator("people", t.TempDir(), config, discardLogger())
			require.NoError(t, generator.RegisterType("Person"))
			for _, member := range []string{"name", "Name", "type", "date_time_to_wire", "p"} {
				require.NoError(t, generator.RegisterMember(metadata.MemberTuple{ComplexType: "Person", MemberType: "dateTime", MemberName: member}))
			}

			output := t.TempDir()
			require.NoError(t, generator.Generate(context.Background(), output))
			pkg := typeCheck(t, output)
			assertWireReady(t, pkg)

			source, err := os.ReadFile(filepath.Join(output, "person.go"))
			require.NoError(t, err)
			if config.CreateAccessors {
				assert.Contains(t, string(source), "func (p *Person) GetName() (time.Time, error)")
				assert.Contains(t, string(source), "func (p *Person) GetName2() (time.Time, error)")
				assert.True(t, hasMethod(pkg, "Person", "SetName2"))
				assert.Regexp(t, "Name2\\s+string\\s+`xml:\"Name\"`", string(source))
			} else {
				assert.Regexp(t, "Name\\s+string\\s+`xml:\"name\"`", string(source))
				assert.Regexp(t, "Name2\\s+string\\s+`xml:\"Name\"`", string(source))
			}
			assert.Contains(t, string(source), "name2 time.Time")
			assert.Contains(t, string(source), "dateTimeToWire2 time.Time")
			assert.Contains(t, string(source), "pValue time.Time")
		})
	}
}

func TestEmitHyphenatedReference(t *testing.T) {
	schema := `
types:
  - name: order-line
    members:
      - {name: sku, type: string}
  - name: Order
    members:
      - {name: line, type: "tns:order-line"}
      - {name: lines, type: "ArrayOforder-line"}
`
	reader, err := metadata.Parse(strings.NewReader(schema))
	require.NoError(t, err)
	generator := NewGenerator("orders", t.TempDir(), descriptor.DefaultConfig(), discardLogger())
	require.NoError(t, generator.Ingest(reader))

	classes, err := generator.Build(context.Background())
	require.NoError(t, err)
	require.Len(t, classes, 2)
	assert.Empty(t, classes[0].Degraded)

	source := renderClassOf(t, classes, "Order")
	assert.Regexp(t, "\\n\\s+line\\s+\\*Orderline\\n", source)
	assert.Regexp(t, "\\n\\s+lines\\s+\\[\\]\\*Orderline\\n", source)
}

func renderClassOf(t *testing.T, classes []*descriptor.ClassDescriptor, name string) string {
	t.Helper()
	emitter := NewEmitter("orders", classes)
	for _, class := range classes {
		if class.Name == name {
			var builder strings.Builder
			require.NoError(t, emitter.Class(class).Render(&builder))
			return builder.String()
		}
	}
	t.Fatalf("class %s not generated", name)
	return ""
}
