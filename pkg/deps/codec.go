package deps

import (
	"maps"
	"strings"

	"github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/errors"
)

// Codec translates one ecosystem's native manifest to and from the CPF.
type Codec interface {
	// Runtime returns the runtime this codec serves.
	Runtime() Runtime
	// ManifestName returns the canonical manifest filename (e.g., "Cargo.toml").
	ManifestName() string
	// Format returns the native format name (e.g., "json", "toml", "gomod").
	Format() string
	// Parse decodes a native manifest and derives its CPF.
	Parse(data []byte) (*Manifest, error)
	// Generate builds a native-shaped structure from a CPF, deep-merging
	// extra on top of it. extra may be nil.
	Generate(pkg *Package, extra map[string]any) (map[string]any, error)
	// Marshal serializes a generated native structure to file contents.
	Marshal(native map[string]any) ([]byte, error)
	// Extra returns the fields of a parsed manifest the CPF does not own.
	Extra(m *Manifest) map[string]any
}

// Manifest is a parsed native manifest.
type Manifest struct {
	Native  any            // Ecosystem-specific parsed struct
	Fields  map[string]any // Generic decode of the whole document, nil when the format has none
	Package *Package       // Derived canonical package file
}

// Extra returns the native fields the CPF does not capture (description,
// scripts, license, ...), suitable as the extra argument of [Codec.Generate].
// keys lists the fields owned by the CPF and is removed from the result. A
// dotted key ("package.name") removes a field of a nested table; tables left
// empty are dropped.
func (m *Manifest) Extra(keys ...string) map[string]any {
	if m.Fields == nil {
		return nil
	}
	out := maps.Clone(m.Fields)
	for _, k := range keys {
		out = without(out, strings.Split(k, "."))
	}
	return out
}

// without returns m minus the value at path, copying every map it touches.
func without(m map[string]any, path []string) map[string]any {
	if len(path) == 1 {
		delete(m, path[0])
		return m
	}
	nested, ok := m[path[0]].(map[string]any)
	if !ok {
		return m
	}
	rest := without(maps.Clone(nested), path[1:])
	if len(rest) == 0 {
		delete(m, path[0])
	} else {
		m[path[0]] = rest
	}
	return m
}

// Merge deep-merges extra on top of base and returns a new map. Nested
// objects are merged recursively, arrays are replaced rather than
// concatenated, and on a key collision the value from extra wins.
// Neither input is modified.
func Merge(base, extra map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(extra))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range extra {
		src, srcIsMap := v.(map[string]any)
		dst, dstIsMap := out[k].(map[string]any)
		if srcIsMap && dstIsMap {
			out[k] = Merge(dst, src)
			continue
		}
		out[k] = v
	}
	return out
}

// RequireFields is the minimal manifest validator shared by every codec: the
// identity field (name or module path) and the version field (package or
// toolchain version) must be present and non-empty.
func RequireFields(manifest, name, version string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New(errors.ErrCodeUnparsableMainFile, "%s: missing name", manifest)
	}
	if strings.TrimSpace(version) == "" {
		return errors.New(errors.ErrCodeUnparsableMainFile, "%s: missing version", manifest)
	}
	return nil
}

// ErrGenerateNotImplemented returns the error for generator paths that are
// explicitly unimplemented.
func ErrGenerateNotImplemented(rt Runtime) error {
	return errors.New(errors.ErrCodeNotImplemented, "generating a %s manifest is not implemented", rt)
}
