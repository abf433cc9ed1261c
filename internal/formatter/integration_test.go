package formatter

import (
	"testing"

	"github.com/mcncl/jsonpeek/internal/parser"
	"github.com/mcncl/jsonpeek/internal/resolver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntegration_ParserFormatter(t *testing.T) {
	// Test the full pipeline: Parser -> Formatter
	jsonInput := `{
		"user_id": 123,
		"username": "johndoe",
		"is_active": true,
		"score": 9.5,
		"profile": {
			"full_name": "John Doe",
			"emails": ["john.doe@example.com", "jd@example.org"]
		},
		"tags": []
	}`

	doc, err := parser.ParseString(jsonInput)
	require.NoError(t, err)

	expected := `{
  "user_id": 123,
  "username": johndoe,
  "is_active": true,
  "score": 9.5,
  "profile": {
    "full_name": John Doe,
    "emails": [
      john.doe@example.com,
      jd@example.org
    ]
  },
  "tags": [
  ]
}`
	assert.Equal(t, expected, NewFormatter().Format(doc.Root))
}

func TestIntegration_ParserResolverFormatter(t *testing.T) {
	// Test the full pipeline: Parser -> Resolver -> Formatter
	doc, err := parser.ParseString(`{"a": {"b": [10, {"c": [true, false]}, 30]}}`)
	require.NoError(t, err)

	v, err := resolver.Resolve(doc.Root, "a:b:1")
	require.NoError(t, err)

	assert.Equal(t, "{\n  \"c\": [\n    true,\n    false\n  ]\n}", NewFormatter().Format(v))
}
