package web

import (
	"html/template"
	"strings"
	"unicode"

	"github.com/muhammadolammi/careerpath/internal/career"
	"github.com/muhammadolammi/careerpath/internal/state"
)

type categoryOption struct {
	Value    string
	Label    string
	Selected bool
}

type fieldView struct {
	ID        string
	Label     string
	Question  string
	Required  bool
	Multiline bool
	Choice    bool
	Options   []string
	Value     string
}

type pageView struct {
	Categories  []categoryOption
	Category    string
	HasCategory bool
	Required    []fieldView
	Optional    []fieldView
	ResumeName  string
	HasResume   bool
	MaxUploadMB int64
	Notices     []state.Notice
	Report      template.HTML
	HasReport   bool
	NoReport    string
}

// buildView turns a session into what the page shows. Notices are passed
// in because reading them consumes them.
func (h *Handler) buildView(s *state.Session, notices []state.Notice) pageView {
	view := pageView{
		MaxUploadMB: h.maxUploadBytes >> 20,
		Notices:     notices,
		ResumeName:  s.ResumeName,
		HasResume:   s.Resume != nil && strings.TrimSpace(*s.Resume) != "",
	}

	for _, form := range h.forms.Categories {
		view.Categories = append(view.Categories, categoryOption{
			Value:    string(form.Category),
			Label:    form.Label,
			Selected: form.Category == s.Category,
		})
	}

	if form, ok := h.forms.Lookup(s.Category); ok {
		view.HasCategory = true
		view.Category = form.Label
		view.Required = fieldViews(form.Required(), s.Answers)
		view.Optional = fieldViews(form.Optional(), s.Answers)
	}

	if s.Report != nil {
		html, err := h.renderMarkdown(*s.Report)
		if err != nil {
			html = template.HTML("<pre>" + template.HTMLEscapeString(*s.Report) + "</pre>") //nolint:gosec
		}
		view.Report = html
		view.HasReport = true
	} else if s.Submitted {
		view.NoReport = career.MsgNoReport
	}

	return view
}

func fieldViews(fields []career.Field, answers career.AnswerSet) []fieldView {
	views := make([]fieldView, 0, len(fields))
	for _, f := range fields {
		value, ok := answers.Get(f.Label)
		if !ok {
			value = f.Default()
		}
		views = append(views, fieldView{
			ID:        fieldID(f.Label),
			Label:     f.Label,
			Question:  f.Question,
			Required:  f.Required,
			Multiline: f.Widget.Multiline,
			Choice:    f.Widget.Kind == career.SingleChoice,
			Options:   f.Widget.Options,
			Value:     value,
		})
	}
	return views
}

// fieldID turns a label such as "Previous Jobs" into "field-previous-jobs".
// Labels keep their spaces as form names; element ids may not.
func fieldID(label string) string {
	var b strings.Builder
	b.WriteString("field")
	dash := true
	for _, r := range strings.ToLower(label) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash {
				b.WriteByte('-')
				dash = false
			}
			b.WriteRune(r)
			continue
		}
		dash = true
	}
	return b.String()
}
