package persistence

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schema/record.schema.json
var recordSchema []byte

var (
	schemaOnce     sync.Once
	compiledSchema *gojsonschema.Schema
	schemaErr      error
)

// SchemaJSON returns the JSON schema snapshots are checked against.
func SchemaJSON() []byte {
	return append([]byte(nil), recordSchema...)
}

func snapshotSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiledSchema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(recordSchema))
	})
	return compiledSchema, schemaErr
}

// ValidateSnapshot checks raw snapshot bytes against the record schema. It
// accepts legacy snapshots with missing fields.
func ValidateSnapshot(data []byte) error {
	schema, err := snapshotSchema()
	if err != nil {
		return fmt.Errorf("persistence: compile schema: %w", err)
	}
	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("persistence: validate snapshot: %w", err)
	}
	if result.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("%w: %s", ErrInvalidSnapshot, strings.Join(msgs, "; "))
}
