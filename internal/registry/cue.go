package registry

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/matthewbaird/snippetchooser/internal/types"
)

//go:embed schema.cue
var schemaCUE []byte

//go:embed default.cue
var defaultCUE []byte

// config mirrors #Config in schema.cue.
type config struct {
	ContentTypes []types.ContentType `json:"content_types"`
}

// LoadCUE compiles src, checks it against #Config and decodes the content
// types it declares. name is used in error positions.
func LoadCUE(name string, src []byte) ([]types.ContentType, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileBytes(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compiling content type schema: %w", err)
	}

	data := ctx.CompileBytes(src, cue.Filename(name))
	if err := data.Err(); err != nil {
		return nil, fmt.Errorf("compiling %s: %w", name, err)
	}

	val := schema.LookupPath(cue.ParsePath("#Config")).Unify(data)
	if err := val.Validate(cue.Concrete(true)); err != nil {
		return nil, fmt.Errorf("validating %s: %w", name, err)
	}

	var cfg config
	if err := val.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	return cfg.ContentTypes, nil
}

// LoadFile reads and decodes a CUE content type document from disk.
func LoadFile(path string) ([]types.ContentType, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return LoadCUE(path, src)
}

// Defaults returns the content types of the embedded default document.
func Defaults() ([]types.ContentType, error) {
	return LoadCUE("default.cue", defaultCUE)
}
