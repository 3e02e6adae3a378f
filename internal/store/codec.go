package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// ErrMalformedSnapshot is returned when a stored document cannot be parsed
// or does not match the expected shape. There is no repair path.
var ErrMalformedSnapshot = errors.New("malformed progress data")

const snapshotSchemaURL = "schema://tactics-progress.json"

const snapshotSchema = `{
	"type": "object",
	"required": ["themes"],
	"properties": {
		"themes": {
			"type": "object",
			"additionalProperties": {"$ref": "#/$defs/theme"}
		}
	},
	"$defs": {
		"theme": {
			"type": "object",
			"properties": {
				"last_attempted": {
					"type": ["string", "null"],
					"pattern": "^[0-9]{4}-[0-9]{2}-[0-9]{2}$"
				},
				"success_rate": {"type": ["integer", "null"]},
				"difficulty_progress": {
					"type": "object",
					"additionalProperties": {"$ref": "#/$defs/counts"}
				}
			}
		},
		"counts": {
			"type": "object",
			"required": ["puzzles_solved", "correct"],
			"properties": {
				"puzzles_solved": {"type": "integer", "minimum": 0},
				"correct": {"type": "integer", "minimum": 0}
			}
		}
	}
}`

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func progressSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(snapshotSchema))
		if err != nil {
			schemaErr = fmt.Errorf("parse schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(snapshotSchemaURL, doc); err != nil {
			schemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile(snapshotSchemaURL)
	})
	return compiledSchema, schemaErr
}

// DecodeSnapshotData validates raw against the progress schema and decodes it.
// Any parse or validation failure wraps ErrMalformedSnapshot.
func DecodeSnapshotData(raw []byte) (*SnapshotData, error) {
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid JSON: %w", ErrMalformedSnapshot, err)
	}

	sch, err := progressSchema()
	if err != nil {
		return nil, fmt.Errorf("compile progress schema: %w", err)
	}
	if err := sch.Validate(inst); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedSnapshot, err)
	}

	var data SnapshotData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedSnapshot, err)
	}
	if data.Themes == nil {
		data.Themes = make(map[string]*ThemeData)
	}
	return &data, nil
}

// EncodeSnapshotData renders the document with four-space indentation.
func EncodeSnapshotData(data SnapshotData) ([]byte, error) {
	themes := make(map[string]*ThemeData, len(data.Themes))
	for name, td := range data.Themes {
		out := ThemeData{}
		if td != nil {
			out = *td
		}
		if out.DifficultyProgress == nil {
			out.DifficultyProgress = make(map[string]*LevelCountData)
		}
		themes[name] = &out
	}
	data.Themes = themes
	return json.MarshalIndent(data, "", "    ")
}
