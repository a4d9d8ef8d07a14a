package career

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func answersOf(pairs ...string) AnswerSet {
	var set AnswerSet
	for i := 0; i+1 < len(pairs); i += 2 {
		set.Set(pairs[i], pairs[i+1])
	}
	return set
}

func strPtr(s string) *string { return &s }

// manualInputBullets returns the bullet lines of the "Manual Inputs" section.
func manualInputBullets(t *testing.T, prompt string) []string {
	t.Helper()
	start := strings.Index(prompt, "Manual Inputs:\n")
	end := strings.Index(prompt, "Generate the following:")
	require.True(t, start >= 0 && end > start, "prompt sections missing:\n%s", prompt)

	var bullets []string
	for _, line := range strings.Split(prompt[start:end], "\n") {
		if strings.HasPrefix(line, "- ") {
			bullets = append(bullets, line)
		}
	}
	return bullets
}

func TestBuildPrompt_JobSeekerWithoutResume(t *testing.T) {
	prompt := BuildPrompt(JobSeeker, answersOf("Major", "Biology", "Previous Jobs", ""), nil)

	assert.Contains(t, prompt, "- Major: Biology")
	assert.NotContains(t, prompt, "Previous Jobs")
	assert.Contains(t, prompt, NoResumePlaceholder)
	assert.Contains(t, prompt, "--- USER TYPE: CURRENT JOB SEEKER ---")
	assert.Equal(t, []string{"- Major: Biology"}, manualInputBullets(t, prompt))
}

func TestBuildPrompt_StudentWithResume(t *testing.T) {
	resume := "Graduated top of class."
	prompt := BuildPrompt(Student, answersOf("Age", "17", "Planned Major", "Engineering"), &resume)

	assert.Contains(t, prompt, "Resume Content:\nGraduated top of class.\n")
	assert.NotContains(t, prompt, NoResumePlaceholder)
	assert.Equal(t, []string{"- Age: 17", "- Planned Major: Engineering"}, manualInputBullets(t, prompt))
	assert.Contains(t, prompt, "--- USER TYPE: HIGH SCHOOL STUDENT ---")
}

func TestBuildPrompt_EmptyResumeUsesPlaceholder(t *testing.T) {
	for _, resume := range []*string{nil, strPtr(""), strPtr("  \n\t")} {
		prompt := BuildPrompt(Student, answersOf("Age", "17"), resume)
		assert.Contains(t, prompt, "Resume Content:\n"+NoResumePlaceholder+"\n")
		assert.NotContains(t, prompt, "Resume Content:\n\n")
	}
}

func TestBuildPrompt_ResumeVerbatim(t *testing.T) {
	resume := "Jane Doe\n  Senior Engineer — Acme\r\n• Built things\n\nSkills: Go, SQL\n"
	prompt := BuildPrompt(JobSeeker, AnswerSet{}, &resume)
	assert.Contains(t, prompt, resume)
}

func TestBuildPrompt_BulletPerNonEmptyAnswer(t *testing.T) {
	tests := []struct {
		name    string
		answers AnswerSet
		want    []string
	}{
		{
			name:    "no answers",
			answers: AnswerSet{},
			want:    nil,
		},
		{
			name:    "all blank",
			answers: answersOf("Age", "", "Awards", "   ", "Volunteering", "\n"),
			want:    nil,
		},
		{
			name:    "mixed keeps order",
			answers: answersOf("Awards", "Science fair", "Age", "", "Extracurriculars", " chess "),
			want:    []string{"- Awards: Science fair", "- Extracurriculars: chess"},
		},
		{
			name:    "multi-line value stays one bullet",
			answers: answersOf("Previous Jobs", "Barista\r\n- Tutor\nIntern"),
			want:    []string{"- Previous Jobs: Barista"},
		},
		{
			name:    "unexpected labels accepted",
			answers: answersOf("Favourite Colour", "green"),
			want:    []string{"- Favourite Colour: green"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompt := BuildPrompt(JobSeeker, tt.answers, nil)
			assert.Equal(t, tt.want, manualInputBullets(t, prompt))
		})
	}
}

func TestBuildPrompt_MultiLineContinuationIndented(t *testing.T) {
	prompt := BuildPrompt(JobSeeker, answersOf("Previous Jobs", "Barista\n- Tutor"), nil)
	assert.Contains(t, prompt, "- Previous Jobs: Barista\n  - Tutor\n")
}

func TestBuildPrompt_Deterministic(t *testing.T) {
	resume := "Some resume"
	answers := answersOf("Major", "Biology", "Age", "30")
	first := BuildPrompt(JobSeeker, answers, &resume)
	second := BuildPrompt(JobSeeker, answers, &resume)
	assert.Equal(t, first, second)
}

func TestBuildPrompt_CategoryCaseNormalized(t *testing.T) {
	upper := BuildPrompt(Category("JOBSEEKER"), AnswerSet{}, nil)
	lower := BuildPrompt(Category("jobseeker"), AnswerSet{}, nil)
	label := BuildPrompt(Category("current job seeker"), AnswerSet{}, nil)

	assert.Equal(t, upper, lower)
	assert.Equal(t, upper, label)
	assert.Contains(t, upper, "--- USER TYPE: CURRENT JOB SEEKER ---")
}

func TestBuildPrompt_UnknownCategoryPassesThrough(t *testing.T) {
	prompt := BuildPrompt(Category("Career Changer"), answersOf("Major", "History"), nil)
	assert.Contains(t, prompt, "--- USER TYPE: CAREER CHANGER ---")
	assert.Contains(t, prompt, "- Major: History")
}

func TestBuildPrompt_SectionOrder(t *testing.T) {
	resume := "resume body"
	prompt := BuildPrompt(Student, answersOf("Age", "16"), &resume)

	order := []string{
		"You are a Career and Salary Forecasting AI.",
		"--- USER TYPE: HIGH SCHOOL STUDENT ---",
		"Resume Content:\nresume body",
		"Manual Inputs:\n- Age: 16",
		"3–5 personalized career paths",
		"(entry, mid, senior level)",
		"Use bullet points and clear formatting.",
	}
	last := -1
	for _, part := range order {
		idx := strings.Index(prompt, part)
		require.Greater(t, idx, last, "%q out of order", part)
		last = idx
	}
}
