package web

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const courseBodySchema = `{
	"type": "object",
	"properties": {
		"title":       {"type": ["string", "null"]},
		"description": {"type": ["string", "null"]},
		"duration":    {"type": ["integer", "null"]}
	}
}`

var courseSchema = mustSchema(courseBodySchema)

func mustSchema(source string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(source))
	if err != nil {
		panic(fmt.Sprintf("invalid course schema: %v", err))
	}

	return schema
}

// validateCourseBody checks the raw request body against the course schema
// so that type mismatches are reported per field instead of as a bind failure.
func validateCourseBody(body []byte) error {
	result, err := courseSchema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("invalid JSON format: %w", err)
	}

	if !result.Valid() {
		var errors []string
		for _, e := range result.Errors() {
			errors = append(errors, e.String())
		}

		return fmt.Errorf("JSON schema validation failed: %s", strings.Join(errors, "; "))
	}

	return nil
}
