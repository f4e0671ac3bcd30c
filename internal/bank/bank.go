// Package bank loads question bank files, validates them against a
// JSON Schema, and imports them into the store.
package bank

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/nicojapas/interview-trainer/internal/quiz"
)

// Importer persists parsed question groups.
type Importer interface {
	Import(ctx context.Context, groups []quiz.SubtopicGroup) error
}

// Parse validates raw JSON against the bank schema and decodes it into
// question groups. Answer indexes are checked against the option count,
// which the schema alone cannot express.
func Parse(data []byte) ([]quiz.SubtopicGroup, error) {
	schema, err := compiled()
	if err != nil {
		return nil, err
	}

	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return nil, fmt.Errorf("bank validation failed: %w", err)
	}

	var groups []quiz.SubtopicGroup
	if err := json.Unmarshal(data, &groups); err != nil {
		return nil, fmt.Errorf("decode bank: %w", err)
	}

	seen := make(map[string]string)
	for _, g := range groups {
		for _, q := range g.Questions {
			if prev, dup := seen[q.ID]; dup {
				return nil, fmt.Errorf("question %q appears in both %s and %s", q.ID, prev, g.Subtopic)
			}
			seen[q.ID] = g.Subtopic

			if q.MultipleChoice() && (q.Answer < 0 || q.Answer >= len(q.Options)) {
				return nil, fmt.Errorf("question %q: answer index %d out of range for %d options",
					q.ID, q.Answer, len(q.Options))
			}
		}
	}

	return groups, nil
}

// LoadFile reads and parses a bank file from disk.
func LoadFile(path string) ([]quiz.SubtopicGroup, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bank file: %w", err)
	}
	groups, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return groups, nil
}

// ImportFile loads a bank file and writes it to the store. Returns the
// number of questions imported.
func ImportFile(ctx context.Context, imp Importer, path string) (int, error) {
	groups, err := LoadFile(path)
	if err != nil {
		return 0, err
	}
	if err := imp.Import(ctx, groups); err != nil {
		return 0, fmt.Errorf("import bank: %w", err)
	}

	n := 0
	for _, g := range groups {
		n += len(g.Questions)
	}
	return n, nil
}
