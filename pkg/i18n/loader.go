package i18n

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"path"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/magiconair/properties"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// FileExtensions lists the catalog file formats in lookup order.
// For a given locale suffix the first existing file wins.
var FileExtensions = []string{".properties", ".yaml", ".yml", ".json", ".toml"}

type decodeFunc func(data []byte) (map[string]string, error)

var decoders = map[string]decodeFunc{
	".properties": decodeProperties,
	".yaml":       decodeYAML,
	".yml":        decodeYAML,
	".json":       decodeJSON,
	".toml":       decodeTOML,
}

// catalogFile holds the messages of a single locale file.
// Patterns are compiled on first use and memoized.
type catalogFile struct {
	locale   language.Tag
	name     string
	messages map[string]string
	patterns sync.Map
}

func (f *catalogFile) pattern(key, raw string) (*pattern, error) {
	if p, ok := f.patterns.Load(key); ok {
		return p.(*pattern), nil
	}
	p, err := compilePattern(raw)
	if err != nil {
		return nil, err
	}
	actual, _ := f.patterns.LoadOrStore(key, p)
	return actual.(*pattern), nil
}

// resourceName maps a dotted base name to a slash separated path ("app.I18n" -> "app/I18n").
func resourceName(baseName string) string {
	return strings.ReplaceAll(baseName, ".", "/")
}

// readCatalogFile loads baseName+suffix with the first known extension present in fsys.
// Returns (nil, nil) when no such file exists.
func readCatalogFile(fsys fs.FS, baseName, suffix string) (*catalogFile, error) {
	name := resourceName(baseName) + suffix
	for _, ext := range FileExtensions {
		filename := name + ext
		data, err := fs.ReadFile(fsys, filename)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", filename, err)
		}

		messages, err := decoders[ext](data)
		if err != nil {
			return nil, fmt.Errorf("%w: parsing %q: %s", ErrInvalidFile, filename, err)
		}

		tag, _ := localeFromSuffix(suffix)
		return &catalogFile{locale: tag, name: filename, messages: messages}, nil
	}
	return nil, nil
}

// listSuffixes returns the locale suffixes of every catalog file for baseName in fsys.
// The root file is reported as the empty suffix.
func listSuffixes(fsys fs.FS, baseName string) ([]string, error) {
	name := resourceName(baseName)
	dir, stem := path.Dir(name), path.Base(name)

	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing %q: %w", dir, err)
	}

	seen := make(map[string]bool)
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := path.Ext(e.Name())
		if _, ok := decoders[ext]; !ok {
			continue
		}
		base := strings.TrimSuffix(e.Name(), ext)
		var suffix string
		switch {
		case base == stem:
			suffix = ""
		case strings.HasPrefix(base, stem+"_"):
			suffix = base[len(stem):]
		default:
			continue
		}
		if _, ok := localeFromSuffix(suffix); !ok || seen[suffix] {
			continue
		}
		seen[suffix] = true
		out = append(out, suffix)
	}
	return out, nil
}

func decodeProperties(data []byte) (map[string]string, error) {
	l := &properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}
	p, err := l.LoadBytes(data)
	if err != nil {
		return nil, err
	}
	return p.Map(), nil
}

func decodeYAML(data []byte) (map[string]string, error) {
	var v map[string]any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return flattenMessages(v, ""), nil
}

func decodeJSON(data []byte) (map[string]string, error) {
	var v map[string]any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return flattenMessages(v, ""), nil
}

func decodeTOML(data []byte) (map[string]string, error) {
	var v map[string]any
	if err := toml.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return flattenMessages(v, ""), nil
}

// flattenMessages turns nested maps into dotted keys: {"errors": {"required": "..."}} -> "errors.required".
func flattenMessages(data map[string]any, prefix string) map[string]string {
	result := make(map[string]string)

	for key, value := range data {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		switch v := value.(type) {
		case string:
			result[fullKey] = v
		case map[string]any:
			maps.Copy(result, flattenMessages(v, fullKey))
		case map[string]string:
			for subKey, subVal := range v {
				result[fullKey+"."+subKey] = subVal
			}
		case nil:
			result[fullKey] = ""
		default:
			result[fullKey] = fmt.Sprint(v)
		}
	}

	return result
}
