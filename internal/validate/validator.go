// Package validate checks and normalises raw type and member names read from
// a schema before they become part of generated code.
package validate

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"soapgen/internal/naming"
)

var (
	ErrInvalidTypeName   = errors.New("invalid type name")
	ErrInvalidIdentifier = errors.New("invalid identifier")
)

const (
	typeNameTag   = "typename"
	identifierTag = "identifier"

	arrayOfPrefix = "ArrayOf"
	arrayMark     = "[]"
)

var (
	typeNamePattern      = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\[\])?$`)
	identifierPattern    = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	illegalIdentifierRun = regexp.MustCompile(`[^A-Za-z0-9_]+`)
)

type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	validate := validator.New()
	// Registration only fails for empty tags or nil funcs.
	_ = validate.RegisterValidation(typeNameTag, func(fl validator.FieldLevel) bool {
		return typeNamePattern.MatchString(fl.Field().String())
	})
	_ = validate.RegisterValidation(identifierTag, func(fl validator.FieldLevel) bool {
		return identifierPattern.MatchString(fl.Field().String())
	})

	return &Validator{validate: validate}
}

// ValidateType normalises a schema type reference. Namespace prefixes are
// dropped ("xsd:string" becomes "string"), "ArrayOfX" wrappers become "X[]"
// and characters illegal in identifiers are removed, as class names are.
func (v *Validator) ValidateType(raw string) (string, error) {
	typeName := strings.TrimSpace(raw)
	if idx := strings.LastIndexByte(typeName, ':'); idx >= 0 {
		typeName = typeName[idx+1:]
	}
	if len(typeName) > len(arrayOfPrefix) && strings.HasPrefix(typeName, arrayOfPrefix) {
		typeName = typeName[len(arrayOfPrefix):] + arrayMark
	}
	base, isArray := strings.CutSuffix(typeName, arrayMark)
	typeName = illegalIdentifierRun.ReplaceAllString(base, "")
	if isArray {
		typeName += arrayMark
	}

	if err := v.validate.Var(typeName, "required,"+typeNameTag); err != nil {
		return "", fmt.Errorf("%w %q: %w", ErrInvalidTypeName, raw, err)
	}

	return typeName, nil
}

// ValidateNamingConvention removes characters that cannot appear in an
// identifier. What remains must not be empty or start with a digit.
func (v *Validator) ValidateNamingConvention(raw string) (string, error) {
	name := illegalIdentifierRun.ReplaceAllString(raw, "")

	if err := v.validate.Var(name, "required,"+identifierTag); err != nil {
		return "", fmt.Errorf("%w %q: %w", ErrInvalidIdentifier, raw, err)
	}

	return name, nil
}

// ValidateClassName turns a schema type name into a class identifier.
func (v *Validator) ValidateClassName(raw string) (string, error) {
	name, err := v.ValidateNamingConvention(raw)
	if err != nil {
		return "", err
	}

	return naming.ToCamelCase(name, true), nil
}
