package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"

	"github.com/zoobzio/jsonsql"
)

// LoadError represents a spec or options file that could not be read.
type LoadError struct {
	Code    string
	Message string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// LoadSpec reads a query spec from a .json, .yaml, .yml or .cue file.
// CUE files are evaluated and exported as JSON first.
func LoadSpec(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("reading spec: %v", err)}
	}

	var spec any
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		spec, err = jsonsql.ParseJSON(data)
	case ".yaml", ".yml":
		spec, err = jsonsql.ParseYAML(data)
	case ".cue":
		spec, err = loadCUE(path, data)
	default:
		return nil, &LoadError{Code: ErrCodeParseFailed, Message: fmt.Sprintf("unsupported spec file extension %q", ext)}
	}
	if err != nil {
		return nil, &LoadError{Code: ErrCodeParseFailed, Message: fmt.Sprintf("parsing %s: %v", path, err)}
	}
	return spec, nil
}

func loadCUE(path string, data []byte) (any, error) {
	ctx := cuecontext.New()
	value := ctx.CompileBytes(data, cue.Filename(path))
	if err := value.Err(); err != nil {
		return nil, fmt.Errorf("building CUE value: %w", err)
	}
	if err := value.Validate(cue.Concrete(true)); err != nil {
		return nil, fmt.Errorf("validating CUE value: %w", err)
	}
	out, err := value.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("exporting CUE value: %w", err)
	}
	return jsonsql.ParseJSON(out)
}

// LoadOptions reads builder options from a YAML file over the defaults.
func LoadOptions(path string) (jsonsql.Options, error) {
	opts := jsonsql.DefaultOptions()
	if path == "" {
		return opts, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return opts, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("reading options: %v", err)}
	}
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, &LoadError{Code: ErrCodeConfig, Message: fmt.Sprintf("parsing options: %v", err)}
	}
	return opts, nil
}
