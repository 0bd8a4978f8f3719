package configs

import (
	"fmt"
	"iter"
	"os"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// Loader reads cue files once, on first use. Files listed earlier take
// precedence.
type Loader struct {
	load func() ([]File, error)
}

// File is one parsed config file.
type File struct {
	Path  string
	Value cue.Value
}

// Found is a value at a path with the file that set it.
type Found struct {
	File  string
	Value cue.Value
}

// NewLoader validates every file against schema, the body of a closed
// struct. An empty schema accepts anything.
func NewLoader(paths []string, schema string) Loader {
	return Loader{
		load: sync.OnceValues(func() ([]File, error) {
			return loadFiles(paths, schema)
		}),
	}
}

func loadFiles(paths []string, schemaSrc string) ([]File, error) {
	ctx := cuecontext.New()
	schema, err := compileSchema(ctx, schemaSrc)
	if err != nil {
		return nil, err
	}
	files := make([]File, 0, len(paths))
	for _, path := range paths {
		file, err := loadFile(ctx, schema, path)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}
	return files, nil
}

func compileSchema(ctx *cue.Context, src string) (cue.Value, error) {
	if src == "" {
		return cue.Value{}, nil
	}
	schema := ctx.CompileString("close({"+src+"})", cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return cue.Value{}, fmt.Errorf("compile config schema: %w", err)
	}
	return schema, nil
}

func loadFile(ctx *cue.Context, schema cue.Value, path string) (File, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read config: %w", err)
	}
	value := ctx.CompileBytes(content, cue.Filename(path))
	if err := value.Err(); err != nil {
		return File{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if schema.Exists() {
		if err := schema.Unify(value).Validate(); err != nil {
			return File{}, fmt.Errorf("validate config %s: %w", path, err)
		}
	}
	return File{
		Path:  path,
		Value: value,
	}, nil
}

// Files returns the loaded files in precedence order.
func (l Loader) Files() ([]File, error) {
	return l.load()
}

// Find yields the value at path from every file that sets it.
func (l Loader) Find(path string) iter.Seq2[Found, error] {
	return func(yield func(Found, error) bool) {
		files, err := l.load()
		if err != nil {
			yield(Found{}, err)
			return
		}
		selector := cue.ParsePath(path)
		for _, file := range files {
			value := file.Value.LookupPath(selector)
			if !value.Exists() || value.Err() != nil {
				continue
			}
			if !yield(Found{File: file.Path, Value: value}, nil) {
				return
			}
		}
	}
}
