package bank

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// bankSchema is the JSON Schema a question bank file must satisfy.
// Free-form questions omit options and answer; multiple-choice
// questions carry both.
const bankSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["topic", "subtopic", "questions"],
    "properties": {
      "topic": {"type": "string", "minLength": 1},
      "subtopic": {"type": "string", "minLength": 1},
      "description": {"type": "string"},
      "questions": {
        "type": "array",
        "items": {
          "type": "object",
          "required": ["id", "question", "explanation"],
          "properties": {
            "id": {"type": "string", "minLength": 1},
            "question": {"type": "string", "minLength": 1},
            "correct": {"type": "string"},
            "options": {
              "type": "array",
              "items": {"type": "string"},
              "minItems": 2,
              "maxItems": 6
            },
            "answer": {"type": "integer", "minimum": 0},
            "explanation": {"type": "string"},
            "learn": {"type": "string"}
          },
          "dependentRequired": {
            "options": ["answer"],
            "answer": ["options"]
          }
        }
      }
    }
  }
}`

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// compiled returns the compiled bank schema, compiling it on first use.
func compiled() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		var parsed any
		if err := json.Unmarshal([]byte(bankSchema), &parsed); err != nil {
			compileErr = fmt.Errorf("parse bank schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		const url = "schema://bank.json"
		if err := c.AddResource(url, parsed); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile(url)
	})
	return compiledSchema, compileErr
}
