package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"text/template"

	"gopkg.in/yaml.v3"
)

// Formatter transforms output into a specific format.
type Formatter interface {
	// Format transforms the result into the desired output format
	Format(result any) ([]byte, error)

	// Name returns the formatter name (e.g., "json", "yaml")
	Name() string

	// Description returns help text for --help
	Description() string
}

// Registry manages available formatters.
type Registry struct {
	mu         sync.RWMutex
	formatters map[string]Formatter
}

// NewRegistry creates a new formatter registry with built-in formatters.
func NewRegistry() *Registry {
	r := &Registry{
		formatters: make(map[string]Formatter),
	}
	r.Register(&TextFormatter{Styles: DefaultStyles()})
	r.Register(&JSONFormatter{Pretty: true})
	r.Register(&YAMLFormatter{})
	return r
}

// Register adds a formatter to the registry.
func (r *Registry) Register(f Formatter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.formatters[f.Name()] = f
}

// Get returns a formatter by name.
func (r *Registry) Get(name string) (Formatter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if f, ok := r.formatters[name]; ok {
		return f, nil
	}

	if tmplPath, ok := strings.CutPrefix(name, "template:"); ok {
		return NewTemplateFormatter(tmplPath)
	}

	return nil, fmt.Errorf("formatter %q not found", name)
}

// List returns all registered formatter names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.formatters))
	for name := range r.formatters {
		names = append(names, name)
	}
	return names
}

// All returns all formatters with descriptions.
func (r *Registry) All() []Formatter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	formatters := make([]Formatter, 0, len(r.formatters))
	for _, f := range r.formatters {
		formatters = append(formatters, f)
	}
	return formatters
}

// TextFormatter renders responses for people, styled with lipgloss.
// Values without a text form fall back to YAML.
type TextFormatter struct {
	Styles Styles
}

func (f *TextFormatter) Name() string        { return "text" }
func (f *TextFormatter) Description() string { return "Human readable text (default)" }

func (f *TextFormatter) Format(result any) ([]byte, error) {
	if t, ok := result.(Texter); ok {
		return []byte(t.Text(f.Styles)), nil
	}
	return (&YAMLFormatter{}).Format(result)
}

// JSONFormatter outputs JSON.
type JSONFormatter struct {
	Pretty bool
}

func (f *JSONFormatter) Name() string        { return "json" }
func (f *JSONFormatter) Description() string { return "JSON output" }

func (f *JSONFormatter) Format(result any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if f.Pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(result); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// YAMLFormatter outputs YAML.
type YAMLFormatter struct{}

func (f *YAMLFormatter) Name() string        { return "yaml" }
func (f *YAMLFormatter) Description() string { return "YAML output" }

func (f *YAMLFormatter) Format(result any) ([]byte, error) {
	// Go through JSON so field names follow the json tags.
	jsonBytes, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}
	var data any
	if err := json.Unmarshal(jsonBytes, &data); err != nil {
		return nil, err
	}
	return yaml.Marshal(data)
}

// TemplateFormatter uses Go templates.
type TemplateFormatter struct {
	path string
	tmpl *template.Template
}

func NewTemplateFormatter(path string) (*TemplateFormatter, error) {
	tmpl, err := template.ParseFiles(path)
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", path, err)
	}
	return &TemplateFormatter{path: path, tmpl: tmpl}, nil
}

func (f *TemplateFormatter) Name() string        { return "template:" + f.path }
func (f *TemplateFormatter) Description() string { return "Custom Go template" }

func (f *TemplateFormatter) Format(result any) ([]byte, error) {
	// Convert to map for template access
	var data map[string]any
	jsonBytes, err := json.Marshal(result)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(jsonBytes, &data); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}
	return buf.Bytes(), nil
}

// DefaultRegistry is the global formatter registry.
var DefaultRegistry = NewRegistry()
