// Package career holds the question sets, answer collection, prompt assembly
// and submission flow for career path advice.
package career

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed forms.yaml
var formsYAML []byte

// Category selects which question set applies.
type Category string

const (
	JobSeeker Category = "JobSeeker"
	Student   Category = "Student"
)

// WidgetKind is the input widget used to collect a field.
type WidgetKind string

const (
	FreeText     WidgetKind = "text"
	SingleChoice WidgetKind = "choice"
)

type Widget struct {
	Kind      WidgetKind `yaml:"kind"`
	Multiline bool       `yaml:"multiline"`
	Options   []string   `yaml:"options"`
}

// Field is one question of a category's form.
type Field struct {
	Label    string `yaml:"label"`
	Question string `yaml:"question"`
	Required bool   `yaml:"required"`
	Widget   Widget `yaml:"widget"`
}

// Default returns the value a fresh form shows for the field. Choice
// widgets start on their first option.
func (f Field) Default() string {
	if f.Widget.Kind == SingleChoice && len(f.Widget.Options) > 0 {
		return f.Widget.Options[0]
	}
	return ""
}

type CategoryForm struct {
	Category Category `yaml:"category"`
	Label    string   `yaml:"label"`
	Fields   []Field  `yaml:"fields"`
}

// Required returns the mandatory fields in display order.
func (f *CategoryForm) Required() []Field {
	return f.filter(true)
}

// Optional returns the optional fields in display order.
func (f *CategoryForm) Optional() []Field {
	return f.filter(false)
}

func (f *CategoryForm) filter(required bool) []Field {
	var out []Field
	for _, field := range f.Fields {
		if field.Required == required {
			out = append(out, field)
		}
	}
	return out
}

// FormTable maps each category to its ordered list of fields.
type FormTable struct {
	Categories []CategoryForm `yaml:"categories"`
}

// LoadForms decodes and validates a form table.
func LoadForms(data []byte) (*FormTable, error) {
	var table FormTable
	if err := yaml.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse form table: %w", err)
	}
	for i := range table.Categories {
		form := &table.Categories[i]
		for j := range form.Fields {
			if form.Fields[j].Widget.Kind == "" {
				form.Fields[j].Widget.Kind = FreeText
			}
		}
	}
	if err := table.validate(); err != nil {
		return nil, fmt.Errorf("invalid form table: %w", err)
	}
	return &table, nil
}

func (t *FormTable) validate() error {
	if len(t.Categories) == 0 {
		return fmt.Errorf("no categories defined")
	}
	seenCategories := make(map[string]bool)
	for _, form := range t.Categories {
		if form.Category == "" {
			return fmt.Errorf("category without identifier")
		}
		key := strings.ToLower(string(form.Category))
		if seenCategories[key] {
			return fmt.Errorf("duplicate category %q", form.Category)
		}
		seenCategories[key] = true
		if form.Label == "" {
			return fmt.Errorf("category %q has no label", form.Category)
		}

		seen := make(map[string]bool)
		for _, field := range form.Fields {
			if field.Label == "" {
				return fmt.Errorf("category %q has a field without label", form.Category)
			}
			if seen[field.Label] {
				return fmt.Errorf("category %q repeats field %q", form.Category, field.Label)
			}
			seen[field.Label] = true

			switch field.Widget.Kind {
			case FreeText:
			case SingleChoice:
				if len(field.Widget.Options) == 0 {
					return fmt.Errorf("choice field %q in %q has no options", field.Label, form.Category)
				}
			default:
				return fmt.Errorf("field %q in %q has unknown widget %q", field.Label, form.Category, field.Widget.Kind)
			}
		}
	}
	return nil
}

// Lookup finds the form for a category, matching the identifier or the
// display label case-insensitively.
func (t *FormTable) Lookup(c Category) (*CategoryForm, bool) {
	raw := strings.TrimSpace(string(c))
	for i := range t.Categories {
		form := &t.Categories[i]
		if strings.EqualFold(raw, string(form.Category)) || strings.EqualFold(raw, form.Label) {
			return form, true
		}
	}
	return nil, false
}

// Resolve maps user input onto a known category. Unknown input is passed
// through trimmed but otherwise untouched.
func (t *FormTable) Resolve(raw string) Category {
	if form, ok := t.Lookup(Category(raw)); ok {
		return form.Category
	}
	return Category(strings.TrimSpace(raw))
}

var defaultForms = mustLoadForms()

func mustLoadForms() *FormTable {
	table, err := LoadForms(formsYAML)
	if err != nil {
		panic(fmt.Sprintf("career: %v", err))
	}
	return table
}

// DefaultForms returns the built-in form table.
func DefaultForms() *FormTable {
	return defaultForms
}

// ParseCategory resolves raw input against the built-in form table.
func ParseCategory(raw string) Category {
	return defaultForms.Resolve(raw)
}

// Label returns the display label of a known category, or the raw value.
func (c Category) Label() string {
	if form, ok := defaultForms.Lookup(c); ok {
		return form.Label
	}
	return string(c)
}

// Known reports whether the category has a form in the built-in table.
func (c Category) Known() bool {
	_, ok := defaultForms.Lookup(c)
	return ok
}
