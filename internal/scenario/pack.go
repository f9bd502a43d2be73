package scenario

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/mod/semver"
)

// PackFormatVersion is the content pack format this build writes and the
// newest it reads. Packs with the same major version are accepted.
const PackFormatVersion = "v1.1.0"

// ErrUnsupportedPack is returned for content packs whose version this build
// cannot read.
var ErrUnsupportedPack = errors.New("unsupported content pack version")

// Pack is a versioned bundle of content sets stored as JSON.
type Pack struct {
	Version string                `json:"version"`
	Name    string                `json:"name,omitempty"`
	Sets    map[string][]Scenario `json:"sets"`
}

// packSchema is the JSON Schema every content pack must satisfy.
var packSchema = map[string]any{
	"type":     "object",
	"required": []any{"version", "sets"},
	"properties": map[string]any{
		"version": map[string]any{"type": "string", "pattern": `^v?\d+\.\d+(\.\d+)?$`},
		"name":    map[string]any{"type": "string"},
		"sets": map[string]any{
			"type": "object",
			"additionalProperties": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type":     "object",
					"required": []any{"key", "hand", "position", "correct_action", "explanation"},
					"properties": map[string]any{
						"key":            map[string]any{"type": "string", "minLength": 1},
						"hand":           map[string]any{"type": "string", "minLength": 2},
						"position":       map[string]any{"type": "string", "minLength": 1},
						"situation":      map[string]any{"type": "string"},
						"correct_action": map[string]any{"type": "string", "enum": []any{"fold", "call", "raise"}},
						"explanation":    map[string]any{"type": "string"},
						"category":       map[string]any{"type": "string"},
						"alternates": map[string]any{
							"type": "array",
							"items": map[string]any{
								"type":     "object",
								"required": []any{"action"},
								"properties": map[string]any{
									"action": map[string]any{"type": "string", "enum": []any{"fold", "call", "raise"}},
									"note":   map[string]any{"type": "string"},
								},
							},
						},
					},
				},
			},
		},
	},
}

var (
	packSchemaOnce     sync.Once
	packSchemaCompiled *jsonschema.Schema
	packSchemaErr      error
)

func compiledPackSchema() (*jsonschema.Schema, error) {
	packSchemaOnce.Do(func() {
		// The compiler wants decoded JSON values, not Go literals.
		defBytes, err := json.Marshal(packSchema)
		if err != nil {
			packSchemaErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		var def any
		if err := json.Unmarshal(defBytes, &def); err != nil {
			packSchemaErr = fmt.Errorf("parse schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		const url = "schema://content-pack.json"
		if err := c.AddResource(url, def); err != nil {
			packSchemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		packSchemaCompiled, packSchemaErr = c.Compile(url)
	})
	return packSchemaCompiled, packSchemaErr
}

// canonicalVersion normalizes "1.2" and "v1.2.0" to the "v"-prefixed form
// that semver understands.
func canonicalVersion(v string) string {
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return semver.Canonical(v)
}

// CheckPackVersion reports whether a pack of version v can be read.
func CheckPackVersion(v string) error {
	cv := canonicalVersion(v)
	if cv == "" {
		return fmt.Errorf("%w: %q is not a semantic version", ErrUnsupportedPack, v)
	}
	if semver.Major(cv) != semver.Major(PackFormatVersion) {
		return fmt.Errorf("%w: %s (want %s.x)", ErrUnsupportedPack, cv, semver.Major(PackFormatVersion))
	}
	if semver.Compare(cv, PackFormatVersion) > 0 {
		return fmt.Errorf("%w: %s is newer than %s", ErrUnsupportedPack, cv, PackFormatVersion)
	}
	return nil
}

// ParsePack validates raw JSON against the pack schema and version policy
// and decodes it.
func ParsePack(raw []byte) (*Pack, error) {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse content pack: %w", err)
	}
	schema, err := compiledPackSchema()
	if err != nil {
		return nil, fmt.Errorf("compile content pack schema: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("content pack schema validation failed: %w", err)
	}

	var p Pack
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode content pack: %w", err)
	}
	if err := CheckPackVersion(p.Version); err != nil {
		return nil, err
	}
	return &p, nil
}

// Marshal encodes the pack, stamping the current format version when the
// pack has none.
func (p *Pack) Marshal() ([]byte, error) {
	out := *p
	if out.Version == "" {
		out.Version = PackFormatVersion
	}
	return json.MarshalIndent(out, "", "  ")
}

// PackSource serves content sets from one or more content packs on disk.
type PackSource struct {
	lib *Library
}

// LoadPackSource reads a pack file, or every *.json file in a directory.
// Later files override earlier ones for the same set id.
func LoadPackSource(path string) (*PackSource, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat content pack: %w", err)
	}

	files := []string{path}
	if info.IsDir() {
		files, err = filepath.Glob(filepath.Join(path, "*.json"))
		if err != nil {
			return nil, fmt.Errorf("list content packs: %w", err)
		}
		slices.Sort(files)
	}

	sets := make(map[string][]Scenario)
	for _, f := range files {
		raw, err := os.ReadFile(f)
		if err != nil {
			return nil, fmt.Errorf("read content pack: %w", err)
		}
		p, err := ParsePack(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(f), err)
		}
		for id, scenarios := range p.Sets {
			sets[id] = scenarios
		}
	}
	return &PackSource{lib: NewLibrary(sets)}, nil
}

// Load implements Source.
func (s *PackSource) Load(ctx context.Context, setID string) (*Content, error) {
	return s.lib.Load(ctx, setID)
}

// SetIDs returns the set ids provided by the loaded packs.
func (s *PackSource) SetIDs() []string {
	return s.lib.SetIDs()
}
