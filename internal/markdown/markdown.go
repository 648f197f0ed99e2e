// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package markdown

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"text/template"

	"gopkg.in/yaml.v2"
)

const defaultFileName = "{created_at}.md"

// defaultTemplate renders an optional front matter block followed by the
// content of each text fragment.
const defaultTemplate = `{{- if .front_matter -}}
---
{{ yaml .front_matter }}---

{{ end -}}
{{- range .fragments }}{{ with .text }}{{ .content }}
{{ end }}{{ end -}}
`

// tagPattern matches inline annotations: a sigil (#, +, -, ~, ?, !, @)
// followed by a name and an optional =value part.
var tagPattern = regexp.MustCompile(`((#|\+{1,5}|-{1,5}|~|\?|!|@)([:A-zÀ-ÿ\d][:A-zÀ-ÿ\d-]*(=(true|false|[:A-zÀ-ÿ\d-]+|"[^"]*")?(-?\d*(\.(\d+))?)?)?))`)

var placeholderPattern = regexp.MustCompile(`\{([^{}]+)\}`)

// Options controls how documents are rendered to files.
type Options struct {
	// OutputDir receives the rendered files. It must already exist.
	OutputDir string

	// FileName is the file name pattern. {key} placeholders are replaced
	// with context values. Empty means "{created_at}.md".
	FileName string

	// Template is the template text. Empty means the built-in default.
	Template string

	// Aliases are key=other specs copying an existing context value under
	// a new key.
	Aliases []string

	// Defaults are key=value specs applied only when the key is absent.
	Defaults []string

	// Overrides are key=value specs applied unconditionally.
	Overrides []string

	// FrontMatter assembles the FrontMatterFields keys into a
	// front_matter sub-map for the template.
	FrontMatter       bool
	FrontMatterFields string

	// Annotations keeps @-sigil annotations in the rendered body.
	Annotations bool

	// DryRun reports what would be written without writing.
	DryRun bool

	// Force overwrites existing files.
	Force bool
}

type assignment struct {
	key   string
	value string
}

var templateFuncs = template.FuncMap{
	"yaml": yamlify,
}

// Build renders every document through the template and writes one file per
// document into opts.OutputDir. Progress is reported on the progress writer,
// which defaults to stderr.
func Build(docs []map[string]interface{}, opts Options, progress io.Writer) error {
	if progress == nil {
		progress = os.Stderr
	}

	text := opts.Template
	if text == "" {
		text = defaultTemplate
	}
	tmpl, err := template.New("markdown").Funcs(templateFuncs).Parse(text)
	if err != nil {
		return fmt.Errorf("failed to parse markdown template: %w", err)
	}

	aliases, err := parseAssignments(opts.Aliases, "alias")
	if err != nil {
		return err
	}
	defaults, err := parseAssignments(opts.Defaults, "default")
	if err != nil {
		return err
	}
	overrides, err := parseAssignments(opts.Overrides, "override")
	if err != nil {
		return err
	}

	pattern := opts.FileName
	if pattern == "" {
		pattern = defaultFileName
	}

	fmt.Fprintf(progress, "Building %d documents\n", len(docs))
	for _, doc := range docs {
		context := buildContext(doc, aliases, defaults, overrides, opts)

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, context); err != nil {
			return fmt.Errorf("failed to render document: %w", err)
		}
		body := buf.String()
		if !opts.Annotations {
			body = RemoveAnnotations(body)
		}

		name, err := formatFileName(pattern, context)
		if err != nil {
			return err
		}
		fmt.Fprintf(progress, "Writing %s…\n", name)
		if opts.DryRun {
			continue
		}
		if err := writeFile(opts.OutputDir, name, []byte(body), opts.Force); err != nil {
			return err
		}
	}

	return nil
}

// buildContext flattens the document and layers aliases, defaults and
// overrides on top. The front matter map is assembled last so aliased and
// overridden values land in it.
func buildContext(doc map[string]interface{}, aliases, defaults, overrides []assignment, opts Options) map[string]interface{} {
	context := make(map[string]interface{})
	for key, value := range Flatten(doc) {
		if value == nil {
			value = ""
		}
		context[key] = value
	}

	for _, alias := range aliases {
		if existing, ok := context[alias.value]; ok {
			context[alias.key] = existing
		}
	}
	for _, def := range defaults {
		if _, ok := context[def.key]; !ok {
			context[def.key] = decodeValue(def.value)
		}
	}
	for _, override := range overrides {
		context[override.key] = decodeValue(override.value)
	}

	if opts.FrontMatter && opts.FrontMatterFields != "" {
		front := make(map[string]interface{})
		for field := range strings.SplitSeq(opts.FrontMatterFields, ",") {
			field = strings.TrimSpace(field)
			if value, ok := context[field]; ok {
				front[field] = value
			}
		}
		context["front_matter"] = front
	}

	return context
}

func parseAssignments(specs []string, kind string) ([]assignment, error) {
	out := make([]assignment, 0, len(specs))
	for _, spec := range specs {
		key, value, found := strings.Cut(spec, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("invalid %s %q: expected key=value", kind, spec)
		}
		out = append(out, assignment{key: key, value: value})
	}

	return out, nil
}

// decodeValue interprets a flag value as JSON when the whole string parses,
// so true, 12 and ["a"] arrive typed. Anything else stays a string.
func decodeValue(raw string) interface{} {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	var value interface{}
	if err := dec.Decode(&value); err != nil || dec.More() {
		return raw
	}

	return value
}

const (
	keySeparator = "_"
	keyReplace   = ":.- "
)

// Flatten collapses nested mappings into a single-level map. Nested keys are
// joined with underscores, and characters unusable in template field names
// (':', '.', '-' and space) are replaced the same way. Sequences stay leaf
// values.
func Flatten(doc map[string]interface{}) map[string]interface{} {
	flat := make(map[string]interface{})
	flattenInto(flat, "", doc)

	return flat
}

func flattenInto(flat map[string]interface{}, parent string, m map[string]interface{}) {
	for key, value := range m {
		joined := key
		if parent != "" {
			joined = parent + keySeparator + key
		}
		if child, ok := value.(map[string]interface{}); ok {
			flattenInto(flat, joined, child)
			continue
		}
		for _, ch := range keyReplace {
			joined = strings.ReplaceAll(joined, string(ch), keySeparator)
		}
		flat[joined] = value
	}
}

// RemoveAnnotations strips @-sigil annotations (@mood, @weight=72.5) from
// rendered text. Annotations carrying any other sigil (#tag, +habit) are
// left alone.
func RemoveAnnotations(text string) string {
	for _, match := range tagPattern.FindAllString(text, -1) {
		if strings.HasPrefix(match, "@") {
			text = strings.ReplaceAll(text, match, "")
		}
	}

	return text
}

func formatFileName(pattern string, context map[string]interface{}) (string, error) {
	var missing []string
	name := placeholderPattern.ReplaceAllStringFunc(pattern, func(token string) string {
		key := token[1 : len(token)-1]
		value, ok := context[key]
		if !ok {
			missing = append(missing, key)
			return token
		}
		return stringify(value)
	})
	if len(missing) > 0 {
		return "", fmt.Errorf("file name %q references unknown keys: %s", pattern, strings.Join(missing, ", "))
	}

	return name, nil
}

func stringify(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

func writeFile(dir, name string, body []byte, force bool) error {
	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists", path)
	}

	return os.WriteFile(path, body, os.FileMode(0o644)) //nolint:mnd
}

func yamlify(value interface{}) (string, error) {
	out, err := yaml.Marshal(normalize(value))
	if err != nil {
		return "", err
	}

	return string(out), nil
}

// normalize converts json.Number values to native numbers, recursively, so
// the yaml encoder emits them unquoted.
func normalize(value interface{}) interface{} {
	switch v := value.(type) {
	case json.Number:
		if n, err := strconv.ParseInt(v.String(), 10, 64); err == nil {
			return n
		}
		if f, err := v.Float64(); err == nil {
			return f
		}
		return v.String()
	case map[string]interface{}:
		out := make(map[string]interface{}, len(v))
		for key, member := range v {
			out[key] = normalize(member)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(v))
		for i, member := range v {
			out[i] = normalize(member)
		}
		return out
	default:
		return value
	}
}
