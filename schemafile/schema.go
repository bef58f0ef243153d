package schemafile

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/Azhovan/vetter"
	"github.com/Azhovan/vetter/internal/normalize"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Options configures schema file loading.
type Options struct {
	// Format: "yaml", "json", or "toml". Auto-detected from extension if empty.
	Format string

	// Required: if true, missing files cause an error. Default: false
	// (returns an empty schema).
	Required bool
}

// Load reads and parses a schema file.
func Load(path string, opts Options) (vetter.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if opts.Required {
				return nil, fmt.Errorf("required schema file not found: %s: %w", path, err)
			}
			return vetter.Schema{}, nil
		}
		return nil, fmt.Errorf("read schema file %s: %w", path, err)
	}

	format := opts.Format
	if format == "" {
		format = inferFormat(path)
	}

	schema, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("schema file %s: %w", path, err)
	}
	return schema, nil
}

// Parse parses schema document bytes in the given format.
func Parse(data []byte, format string) (vetter.Schema, error) {
	switch format {
	case "yaml", "yml":
		return parseYAML(data)
	case "json":
		var raw map[string]map[string]any
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse JSON: %w", err)
		}
		return fromUnordered(raw)
	case "toml":
		var raw map[string]map[string]any
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse TOML: %w", err)
		}
		return fromUnordered(raw)
	default:
		return nil, fmt.Errorf("unsupported schema format: %s (supported: yaml, json, toml)", format)
	}
}

// parseYAML walks the document's mapping nodes directly so attribute order
// is preserved.
func parseYAML(data []byte) (vetter.Schema, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}

	if len(doc.Content) == 0 {
		return vetter.Schema{}, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parse YAML: document root must be a mapping of attributes")
	}

	var schema vetter.Schema
	for i := 0; i+1 < len(root.Content); i += 2 {
		attr := root.Content[i].Value

		var raw map[string]any
		if err := root.Content[i+1].Decode(&raw); err != nil {
			return nil, fmt.Errorf("attribute %q: %w", attr, err)
		}

		rules, err := buildRules(attr, raw)
		if err != nil {
			return nil, err
		}
		schema = append(schema, vetter.AttributeRules{Name: attr, Rules: rules})
	}

	return schema, nil
}

// fromUnordered builds a schema from formats whose maps carry no document
// order; attributes are sorted by name.
func fromUnordered(raw map[string]map[string]any) (vetter.Schema, error) {
	attrs := make([]string, 0, len(raw))
	for attr := range raw {
		attrs = append(attrs, attr)
	}
	sort.Strings(attrs)

	var schema vetter.Schema
	for _, attr := range attrs {
		rules, err := buildRules(attr, raw[attr])
		if err != nil {
			return nil, err
		}
		schema = append(schema, vetter.AttributeRules{Name: attr, Rules: rules})
	}
	return schema, nil
}

// buildRules converts one attribute's decoded rule map into vetter.Rules.
func buildRules(attr string, raw map[string]any) (vetter.Rules, error) {
	rules := make(vetter.Rules, len(raw))

	for name, value := range raw {
		canonical, known := normalize.Rule(name)
		if !known {
			return nil, fmt.Errorf("attribute %q: unknown rule %q", attr, name)
		}

		switch rule := vetter.RuleName(canonical); rule {
		case vetter.Presence, vetter.Acceptance, vetter.Confirmation:
			flag, ok := value.(bool)
			if !ok {
				return nil, fmt.Errorf("attribute %q: rule %s takes a boolean, got %T", attr, rule, value)
			}
			rules[rule] = flag

		case vetter.Format:
			pattern, ok := value.(string)
			if !ok {
				return nil, fmt.Errorf("attribute %q: rule format takes a pattern string, got %T", attr, value)
			}
			re, err := regexp.Compile(pattern)
			if err != nil {
				return nil, fmt.Errorf("attribute %q: format pattern %q does not compile: %w", attr, pattern, err)
			}
			rules[vetter.Format] = re

		case vetter.Coerce:
			target, ok := value.(string)
			if !ok {
				return nil, fmt.Errorf("attribute %q: rule coerce takes a type name, got %T", attr, value)
			}
			rules[vetter.Coerce] = target

		case vetter.Inclusion, vetter.Exclusion:
			switch value.(type) {
			case []any, string:
				rules[rule] = value
			default:
				return nil, fmt.Errorf("attribute %q: rule %s takes a list or string, got %T", attr, rule, value)
			}

		case vetter.Size:
			quantity, err := quantityOf(attr, value)
			if err != nil {
				return nil, err
			}
			rules[vetter.Size] = quantity
		}
	}

	return rules, nil
}

// quantityOf interprets a size declaration: an integer count, a two-element
// [min, max] list, a {min, max} mapping, or a "min..max" string.
func quantityOf(attr string, value any) (any, error) {
	if n, ok := intOf(value); ok {
		return n, nil
	}

	switch q := value.(type) {
	case []any:
		if len(q) != 2 {
			return nil, fmt.Errorf("attribute %q: size list needs exactly [min, max]", attr)
		}
		min, okMin := intOf(q[0])
		max, okMax := intOf(q[1])
		if !okMin || !okMax {
			return nil, fmt.Errorf("attribute %q: size bounds must be integers", attr)
		}
		return vetter.Between(min, max), nil

	case map[string]any:
		min, okMin := intOf(q["min"])
		max, okMax := intOf(q["max"])
		if !okMin || !okMax {
			return nil, fmt.Errorf("attribute %q: size mapping needs integer min and max", attr)
		}
		return vetter.Between(min, max), nil

	case string:
		lo, hi, found := strings.Cut(q, "..")
		if !found {
			return nil, fmt.Errorf("attribute %q: size %q is neither a count nor a range", attr, q)
		}
		min, errMin := strconv.Atoi(strings.TrimSpace(lo))
		max, errMax := strconv.Atoi(strings.TrimSpace(hi))
		if errMin != nil || errMax != nil {
			return nil, fmt.Errorf("attribute %q: size range %q has non-integer bounds", attr, q)
		}
		return vetter.Between(min, max), nil

	default:
		return nil, fmt.Errorf("attribute %q: size must be a count or a range, got %T", attr, value)
	}
}

// intOf accepts the integer shapes the three decoders produce: int and
// int64 from YAML/TOML, whole float64 from JSON.
func intOf(value any) (int, bool) {
	switch n := value.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		if n > math.MaxInt {
			return 0, false
		}
		return int(n), true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}

func inferFormat(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return "yaml"
	case ".json":
		return "json"
	case ".toml":
		return "toml"
	default:
		return ""
	}
}
