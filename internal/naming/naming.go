// Package naming derives identifiers for generated classes from schema names.
package naming

import "strings"

// ToCamelCase joins underscore or space separated words, upper-casing the first
// letter of every word. Letters inside a word are left as they are, so
// already camel-cased input passes through unchanged.
func ToCamelCase(s string, capitalizeFirst bool) string {
	words := []byte(strings.ReplaceAll(s, "_", " "))

	atWordStart := true
	for i, c := range words {
		if atWordStart && 'a' <= c && c <= 'z' {
			words[i] = c - ('a' - 'A')
		}
		atWordStart = isWordDelimiter(c)
	}

	result := strings.ReplaceAll(string(words), " ", "")
	if !capitalizeFirst && result != "" && 'A' <= result[0] && result[0] <= 'Z' {
		result = string(result[0]+('a'-'A')) + result[1:]
	}

	return result
}

// GetterName returns the getter for a field. A leading "get" is stripped
// first, which also applies to names such as "getaway" ("getAway").
func GetterName(fieldName string) string {
	return "get" + ToCamelCase(stripGetPrefix(fieldName), true)
}

// SetterName returns the setter for a field. The stripped prefix is "get",
// same as for GetterName.
func SetterName(fieldName string) string {
	return "set" + ToCamelCase(stripGetPrefix(fieldName), true)
}

func stripGetPrefix(fieldName string) string {
	if len(fieldName) > 3 && strings.HasPrefix(fieldName, "get") {
		return fieldName[3:]
	}
	return fieldName
}

func isWordDelimiter(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '\f', '\v':
		return true
	}
	return false
}
