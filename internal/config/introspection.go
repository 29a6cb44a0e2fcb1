package config

import (
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// GetKnownKeys returns all valid configuration keys based on the schema
func GetKnownKeys() map[string]bool {
	known := make(map[string]bool)
	addKnownKeysByType("", reflect.TypeOf(ConfigSchema{}), known)
	return known
}

// addKnownKeysByType recursively adds keys by examining the struct type
func addKnownKeysByType(prefix string, t reflect.Type, known map[string]bool) {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		// viper lowercases all keys
		key := strings.ToLower(tag)
		if prefix != "" {
			key = prefix + "." + key
		}
		known[key] = true

		switch field.Type.Kind() {
		case reflect.Struct:
			addKnownKeysByType(key, field.Type, known)
		case reflect.Map:
			if field.Type.Elem().Kind() == reflect.Struct {
				addKnownKeysByType(key+".*", field.Type.Elem(), known)
			} else {
				known[key+".*"] = true
			}
		}
	}
}

// matchesWildcard checks if a key matches a wildcard pattern
func matchesWildcard(pattern, key string) bool {
	patternParts := strings.Split(strings.ToLower(pattern), ".")
	keyParts := strings.Split(strings.ToLower(key), ".")

	if len(patternParts) != len(keyParts) {
		return false
	}

	for i := range patternParts {
		if patternParts[i] != "*" && patternParts[i] != keyParts[i] {
			return false
		}
	}
	return true
}

// IsKnownKey checks if a key is known, including wildcard matches
func IsKnownKey(known map[string]bool, key string) bool {
	if known[strings.ToLower(key)] {
		return true
	}

	for pattern := range known {
		if strings.Contains(pattern, "*") && matchesWildcard(pattern, key) {
			return true
		}
	}
	return false
}

// PrintConfig writes the configuration as YAML. A non-empty prefix limits
// output to keys under it (e.g. "agent" or "models.gpt-4o-mini"). Secrets are
// always redacted.
func (s *ConfigSchema) PrintConfig(w io.Writer, includeSources bool, prefix string) error {
	b := &nodeBuilder{schema: s, includeSources: includeSources, prefix: normalizeKey(prefix)}
	root := b.build(reflect.ValueOf(*s), "", "")
	if root == nil || !b.matched {
		if b.prefix != "" {
			return fmt.Errorf("no configuration found under %q", prefix)
		}
		return nil
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return enc.Close()
}

type nodeBuilder struct {
	schema         *ConfigSchema
	includeSources bool
	prefix         string
	matched        bool
}

// visible reports whether path is inside the prefix or is an ancestor of it.
func (b *nodeBuilder) visible(path string) bool {
	if b.prefix == "" || path == "" {
		return true
	}
	return path == b.prefix ||
		strings.HasPrefix(path, b.prefix+".") ||
		strings.HasPrefix(b.prefix, path+".")
}

func (b *nodeBuilder) build(v reflect.Value, key, path string) *yaml.Node {
	if !b.visible(path) {
		return nil
	}

	switch v.Kind() {
	case reflect.Struct:
		node := &yaml.Node{Kind: yaml.MappingNode}
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			tag := field.Tag.Get("mapstructure")
			if !field.IsExported() || tag == "" || v.Field(i).IsZero() {
				continue
			}
			if child := b.build(v.Field(i), tag, joinPath(path, tag)); child != nil {
				node.Content = append(node.Content, keyNode(tag), child)
			}
		}
		if len(node.Content) == 0 {
			return nil
		}
		return node

	case reflect.Map:
		node := &yaml.Node{Kind: yaml.MappingNode}
		keys := v.MapKeys()
		sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
		for _, k := range keys {
			if child := b.build(v.MapIndex(k), k.String(), joinPath(path, k.String())); child != nil {
				node.Content = append(node.Content, keyNode(k.String()), child)
			}
		}
		if len(node.Content) == 0 {
			return nil
		}
		return node
	}

	b.matched = true
	node := &yaml.Node{}
	if isSecretKey(key) {
		node.SetString(redacted)
	} else if err := node.Encode(v.Interface()); err != nil {
		node.SetString(fmt.Sprint(v.Interface()))
	}
	if b.includeSources {
		node.LineComment = "# (" + b.source(path) + ")"
	}
	return node
}

func (b *nodeBuilder) source(path string) string {
	if sources := b.schema.sources[path]; len(sources) > 0 {
		return sources[len(sources)-1].source
	}
	return "default"
}

func keyNode(key string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}
}

func joinPath(path, key string) string {
	key = normalizeKey(key)
	if path == "" {
		return key
	}
	return path + "." + key
}

const redacted = "<redacted>"

func isSecretKey(key string) bool {
	key = strings.ToLower(key)
	return strings.Contains(key, "key") ||
		strings.Contains(key, "secret") ||
		strings.Contains(key, "password")
}
