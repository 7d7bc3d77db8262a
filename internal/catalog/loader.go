package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// catalogSchema validates the on-disk catalog format before decoding.
// Each top-level key is a course code mapping to its attributes.
const catalogSchema = `{
	"type": "object",
	"additionalProperties": {
		"type": "object",
		"properties": {
			"name": {"type": "string"},
			"credits": {"type": "integer", "minimum": 1},
			"category": {"type": "string"},
			"prerequisites": {"type": "array", "items": {"type": "string"}},
			"corequisites": {"type": "array", "items": {"type": "string"}},
			"terms_offered": {
				"type": "array",
				"items": {"enum": ["Fall", "Spring", "Summer"]}
			}
		},
		"additionalProperties": true
	}
}`

// Parse decodes and validates catalog JSON.
func Parse(data []byte) (*Catalog, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(catalogSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, fmt.Errorf("validating catalog: %w", err)
	}
	if !result.Valid() {
		return nil, fmt.Errorf("invalid catalog: %s", schemaErrors(result))
	}

	var courses map[string]Course
	if err := json.Unmarshal(data, &courses); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	return New(courses), nil
}

// LoadFile reads and parses a catalog JSON file.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// schemaErrors flattens gojsonschema validation errors into one string.
func schemaErrors(result *gojsonschema.Result) string {
	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return strings.Join(msgs, "; ")
}
