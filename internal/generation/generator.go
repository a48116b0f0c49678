// Package generation drives descriptor generation for a whole schema and
// writes the resulting classes as Go source.
package generation

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"soapgen/internal/descriptor"
	"soapgen/internal/hierarchy"
	"soapgen/internal/log"
	"soapgen/internal/metadata"
	"soapgen/internal/validate"
)

var (
	ErrUnknownType    = errors.New("member of unregistered type")
	ErrDuplicateClass = errors.New("duplicate class name")
)

type Generator struct {
	PackageName string
	OutputPath  string
	Config      descriptor.Config

	resolver  *hierarchy.Resolver
	validator *validate.Validator
	builders  map[string]*descriptor.Builder
	classes   map[string]string
	logger    *slog.Logger
}

func NewGenerator(packageName string, outputPath string, config descriptor.Config, logger *slog.Logger) *Generator {
	return &Generator{
		PackageName: packageName,
		OutputPath:  outputPath,
		Config:      config,
		resolver:    hierarchy.NewResolver(),
		validator:   validate.New(),
		builders:    make(map[string]*descriptor.Builder),
		classes:     make(map[string]string),
		logger:      logger,
	}
}

// Ingest registers every type, member and hierarchy fact of a schema. Types
// that only restrict a simple type become aliases, not classes.
func (generator *Generator) Ingest(reader *metadata.Reader) error {
	for _, complexType := range reader.Types() {
		if complexType.Base != "" && len(complexType.Members) == 0 {
			continue
		}
		if err := generator.RegisterType(complexType.Name); err != nil {
			return err
		}
	}

	for _, fact := range reader.Facts() {
		if err := generator.RegisterFact(fact); err != nil {
			return err
		}
	}

	for _, member := range reader.Members() {
		if err := generator.RegisterMember(member); err != nil {
			return err
		}
	}

	aliases, parents := generator.resolver.Len()
	generator.logger.Info("Ingested schema", "classes", len(generator.builders), "aliases", aliases, "parents", parents)
	return nil
}

func (generator *Generator) RegisterType(name string) error {
	if _, found := generator.builders[name]; found {
		return nil
	}

	className, err := generator.validator.ValidateClassName(name)
	if err != nil {
		return fmt.Errorf("register type: %w", err)
	}
	if other, taken := generator.classes[className]; taken {
		return fmt.Errorf("register type %q: %w %s, already used by %q", name, ErrDuplicateClass, className, other)
	}

	generator.classes[className] = name
	generator.builders[name] = descriptor.NewBuilder(className, generator.resolver, generator.validator, generator.Config)
	return nil
}

// RegisterFact records a hierarchy fact under the same normalised names that
// member types resolve to.
func (generator *Generator) RegisterFact(fact metadata.HierarchyFact) error {
	complexType := generator.typeName(fact.ComplexType)
	target := generator.typeName(fact.ParentOrAlias)
	if fact.IsAliasToPrimitive {
		return generator.resolver.RegisterAlias(complexType, target)
	}
	return generator.resolver.RegisterParent(complexType, target)
}

func (generator *Generator) typeName(raw string) string {
	name, err := generator.validator.ValidateType(raw)
	if err != nil {
		return raw
	}
	return name
}

func (generator *Generator) RegisterMember(member metadata.MemberTuple) error {
	builder, found := generator.builders[member.ComplexType]
	if !found {
		return fmt.Errorf("%w: %s", ErrUnknownType, member.ComplexType)
	}

	builder.AddMember(member.MemberType, member.MemberName, member.Nillable)
	return nil
}

// Build freezes the type hierarchy and generates every registered class
// concurrently. Classes that fail are left out and their errors joined.
func (generator *Generator) Build(ctx context.Context) ([]*descriptor.ClassDescriptor, error) {
	generator.resolver.Freeze()

	builders := make([]*descriptor.Builder, 0, len(generator.builders))
	for _, builder := range generator.builders {
		builders = append(builders, builder)
	}
	sort.Slice(builders, func(i, j int) bool { return builders[i].Name() < builders[j].Name() })

	results := make([]*descriptor.ClassDescriptor, len(builders))
	failures := make([]error, len(builders))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(runtime.GOMAXPROCS(0))
	for i, builder := range builders {
		i, builder := i, builder
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			results[i], failures[i] = builder.Generate()
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	classes := make([]*descriptor.ClassDescriptor, 0, len(results))
	for i, class := range results {
		if failures[i] != nil {
			generator.logger.Error("Skipping class", "class", builders[i].Name(), "error", failures[i])
			continue
		}
		for _, degraded := range class.Degraded {
			generator.logger.Warn("Member type replaced",
				"class", class.Name,
				"member", degraded.Member,
				"declared", degraded.DeclaredType,
				"fallback", descriptor.FallbackTypeName,
				"error", degraded.Err)
		}
		for _, field := range class.Fields {
			generator.logger.Log(ctx, log.LevelTrace, "Resolved member",
				"class", class.Name,
				"member", field.Name,
				"wire", field.Type.Wire(),
				"host", field.Type.Host())
		}
		generator.logger.Debug("Generated descriptor", "class", class.Name, "fields", len(class.Fields), "accessors", len(class.Accessors))
		classes = append(classes, class)
	}

	return classes, errors.Join(failures...)
}

// Generate builds all classes and writes one file per class into path.
// Classes that could not be generated are reported in the returned error
// after everything else has been written.
func (generator *Generator) Generate(ctx context.Context, path string) error {
	err := os.MkdirAll(path, os.ModePerm)
	if err != nil && !errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("create output directory: %w", err)
	}

	classes, buildErr := generator.Build(ctx)
	emitter := NewEmitter(generator.PackageName, classes)

	for _, class := range classes {
		target := filepath.Join(path, FileName(class.Name))
		if class.ClassExists {
			if _, err := os.Stat(target); err == nil {
				generator.logger.Info("Keeping existing class", "class", class.Name, "file", target)
				continue
			}
		}

		if err := emitter.Class(class).Save(target); err != nil {
			return fmt.Errorf("write %s: %w", class.Name, err)
		}
	}

	if helpers := emitter.Helpers(); helpers != nil {
		if err := helpers.Save(filepath.Join(path, helpersFileName)); err != nil {
			return fmt.Errorf("write helpers: %w", err)
		}
	}

	generator.logger.Info("Generation complete", "classes", len(classes), "output", path)
	return buildErr
}
