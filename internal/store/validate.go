package store

import (
	_ "embed"
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cuejson "cuelang.org/go/encoding/json"
)

//go:embed document.cue
var documentSchema string

var (
	schemaOnce sync.Once
	schemaDef  cue.Value
	schemaErr  error
)

// compileSchema builds the #Document definition once; the schema is
// embedded and immutable.
func compileSchema() (cue.Value, error) {
	schemaOnce.Do(func() {
		ctx := cuecontext.New()
		v := ctx.CompileString(documentSchema, cue.Filename("document.cue"))
		if err := v.Err(); err != nil {
			schemaErr = fmt.Errorf("compile document schema: %w", err)
			return
		}
		def := v.LookupPath(cue.ParsePath("#Document"))
		if err := def.Err(); err != nil {
			schemaErr = fmt.Errorf("lookup #Document: %w", err)
			return
		}
		schemaDef = def
	})
	return schemaDef, schemaErr
}

// ValidateDocument checks serialized document bytes against the embedded
// schema. A non-nil error means the stored shape has drifted from what
// this client understands; callers log it and proceed with field-by-field
// defaulting rather than failing the load.
func ValidateDocument(data []byte) error {
	def, err := compileSchema()
	if err != nil {
		return err
	}

	expr, err := cuejson.Extract("document.json", data)
	if err != nil {
		return fmt.Errorf("parse document: %w", err)
	}

	val := def.Context().BuildExpr(expr)
	if err := val.Err(); err != nil {
		return fmt.Errorf("build document value: %w", err)
	}

	unified := def.Unify(val)
	if err := unified.Validate(cue.Concrete(false)); err != nil {
		return fmt.Errorf("document schema violation: %w", err)
	}
	return nil
}
