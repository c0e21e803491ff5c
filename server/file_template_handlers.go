package server

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"strings"
)

//go:embed templates/*
var templateFiles embed.FS

func TemplateFilesFS() fs.FS {
	// Create the sub filesystem once
	subFS, err := fs.Sub(templateFiles, "templates")
	if err != nil {
		panic("Failed to create templates sub filesystem: " + err.Error())
	}
	return subFS
}

var templateFuncs = template.FuncMap{
	"add":  func(a, b int) int { return a + b },
	"cell": formatCell,
}

// ParseTemplate parses a template from the embedded filesystem
func ParseTemplate(name string) (*template.Template, error) {
	content, err := fs.ReadFile(TemplateFilesFS(), name)
	if err != nil {
		return nil, err
	}
	return template.New(name).Funcs(templateFuncs).Parse(string(content))
}

// templates holds every page template, parsed once at start up.
type templates struct {
	byName map[string]*template.Template
}

func loadTemplates() (*templates, error) {
	names, err := fs.Glob(TemplateFilesFS(), "*.html")
	if err != nil {
		return nil, err
	}
	t := &templates{byName: make(map[string]*template.Template, len(names))}
	for _, name := range names {
		tmpl, err := ParseTemplate(name)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		t.byName[name] = tmpl
	}
	return t, nil
}

// renderHTML executes into a buffer so a failing template never leaves a
// half written page behind.
func (t *templates) renderHTML(name string, data any) (template.HTML, error) {
	tmpl, ok := t.byName[name]
	if !ok {
		return "", fmt.Errorf("template %s not found", name)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute %s: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}

// formatCell renders one JSON value of a backend row as text.
func formatCell(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		if val {
			return "✓"
		}
		return "✗"
	case float64:
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%.2f", val)
	case map[string]any:
		for _, key := range []string{"name", "title", "email", "_id"} {
			if s, ok := val[key].(string); ok && s != "" {
				return s
			}
		}
		return fmt.Sprintf("{%d}", len(val))
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			parts = append(parts, formatCell(item))
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprint(val)
	}
}
