package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soapgen/internal/naming"
)

func TestValidateType(t *testing.T) {
	v := New()

	valid := map[string]string{
		"string":          "string",
		" xsd:dateTime ":  "dateTime",
		"tns:Address[]":   "Address[]",
		"ArrayOfAddress":  "Address[]",
		"ArrayOf":         "ArrayOf",
		"order_line_item": "order_line_item",
		"order-line":      "orderline",
		"tns:has space[]": "hasspace[]",
		"Thing[][]":       "Thing[]",
	}
	for raw, want := range valid {
		got, err := v.ValidateType(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}

	for _, raw := range []string{"", "   ", "1Type", "xsd:", "---", "[]", "9-lives"} {
		_, err := v.ValidateType(raw)
		assert.ErrorIs(t, err, ErrInvalidTypeName, raw)
	}
}

func TestValidateNamingConvention(t *testing.T) {
	v := New()

	got, err := v.ValidateNamingConvention("order-id")
	require.NoError(t, err)
	assert.Equal(t, "orderid", got)

	got, err = v.ValidateNamingConvention("first_name")
	require.NoError(t, err)
	assert.Equal(t, "first_name", got)

	for _, raw := range []string{"", "---", "2fa"} {
		_, err := v.ValidateNamingConvention(raw)
		assert.ErrorIs(t, err, ErrInvalidIdentifier, raw)
	}
}

func TestValidateClassName(t *testing.T) {
	v := New()

	got, err := v.ValidateClassName("purchase_order")
	require.NoError(t, err)
	assert.Equal(t, "PurchaseOrder", got)

	_, err = v.ValidateClassName("$$")
	assert.ErrorIs(t, err, ErrInvalidIdentifier)
}

func TestValidateTypeMatchesClassName(t *testing.T) {
	v := New()

	for _, raw := range []string{"order-line", "purchase_order", "Bad.Name"} {
		typeName, err := v.ValidateType(raw)
		require.NoError(t, err, raw)
		className, err := v.ValidateClassName(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, className, naming.ToCamelCase(typeName, true), raw)
	}
}
