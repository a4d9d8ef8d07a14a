package career

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func labels(fields []Field) []string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		out = append(out, f.Label)
	}
	return out
}

func TestDefaultForms_JobSeeker(t *testing.T) {
	form, ok := DefaultForms().Lookup(JobSeeker)
	require.True(t, ok)

	assert.Equal(t, "Current Job Seeker", form.Label)
	assert.Equal(t, []string{"Highest Education Level", "Education Place", "Major", "Previous Jobs"}, labels(form.Required()))
	assert.Equal(t, []string{"Age", "Test Scores", "Technical Skills", "Interests", "Values", "Legal Status", "Willing to Relocate"}, labels(form.Optional()))

	for _, f := range form.Fields {
		switch f.Label {
		case "Previous Jobs":
			assert.Equal(t, FreeText, f.Widget.Kind)
			assert.True(t, f.Widget.Multiline)
		case "Willing to Relocate":
			assert.Equal(t, SingleChoice, f.Widget.Kind)
			assert.Equal(t, []string{"Yes", "No"}, f.Widget.Options)
			assert.Equal(t, "Yes", f.Default())
		default:
			assert.Equal(t, FreeText, f.Widget.Kind, f.Label)
			assert.Empty(t, f.Default())
		}
	}
}

func TestDefaultForms_Student(t *testing.T) {
	form, ok := DefaultForms().Lookup(Student)
	require.True(t, ok)

	assert.Equal(t, "High School Student", form.Label)
	assert.Equal(t, []string{"Age", "Planned Education Level", "Planned Study Location", "Planned Major"}, labels(form.Required()))
	assert.Equal(t, []string{"Extracurriculars", "Volunteering", "Awards"}, labels(form.Optional()))
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in   string
		want Category
	}{
		{"JobSeeker", JobSeeker},
		{"jobseeker", JobSeeker},
		{"Current Job Seeker", JobSeeker},
		{" STUDENT ", Student},
		{"High School Student", Student},
		{"Retiree", Category("Retiree")},
		{"", Category("")},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCategory(tt.in))
		})
	}
}

func TestCategoryLabel(t *testing.T) {
	assert.Equal(t, "Current Job Seeker", JobSeeker.Label())
	assert.Equal(t, "High School Student", Category("student").Label())
	assert.Equal(t, "Retiree", Category("Retiree").Label())
	assert.True(t, Student.Known())
	assert.False(t, Category("Retiree").Known())
}

func TestLoadForms_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		msg  string
	}{
		{
			name: "not yaml",
			yaml: "categories: [",
			msg:  "failed to parse",
		},
		{
			name: "empty",
			yaml: "categories: []",
			msg:  "no categories",
		},
		{
			name: "choice without options",
			yaml: `
categories:
  - category: A
    label: A
    fields:
      - label: Pick
        widget:
          kind: choice
`,
			msg: "has no options",
		},
		{
			name: "unknown widget",
			yaml: `
categories:
  - category: A
    label: A
    fields:
      - label: Pick
        widget:
          kind: slider
`,
			msg: "unknown widget",
		},
		{
			name: "duplicate field",
			yaml: `
categories:
  - category: A
    label: A
    fields:
      - label: Age
      - label: Age
`,
			msg: "repeats field",
		},
		{
			name: "duplicate category",
			yaml: `
categories:
  - category: A
    label: A
  - category: a
    label: Other
`,
			msg: "duplicate category",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadForms([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestLoadForms_DefaultsWidgetToFreeText(t *testing.T) {
	table, err := LoadForms([]byte(`
categories:
  - category: A
    label: Alpha
    fields:
      - label: Name
        required: true
`))
	require.NoError(t, err)

	form, ok := table.Lookup(Category("alpha"))
	require.True(t, ok)
	assert.Equal(t, FreeText, form.Fields[0].Widget.Kind)
	assert.Equal(t, Category("A"), table.Resolve("ALPHA"))
}
