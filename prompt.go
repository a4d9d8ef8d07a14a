package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/muhammadolammi/careerpath/internal/career"
	"github.com/muhammadolammi/careerpath/internal/extract"
	"github.com/spf13/cobra"
)

func newPromptCmd() *cobra.Command {
	var (
		category   string
		answers    []string
		resumePath string
	)
	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Print the prompt a submission would send",
		Long: `Build the career prompt for a category, manual answers and an optional résumé
file, and print it. Nothing is sent to Gemini.`,
		Example: `  careerpath prompt --category Student --answer "Age=17" --answer "Planned Major=Engineering"
  careerpath prompt --category JobSeeker --resume cv.pdf`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := career.ParseCategory(category)
			set, err := parseAnswers(c, answers)
			if err != nil {
				return err
			}

			var resume *string
			if resumePath != "" {
				text, err := readResume(resumePath)
				if err != nil {
					return err
				}
				resume = &text
			}

			_, err = fmt.Fprint(cmd.OutOrStdout(), career.BuildPrompt(c, set, resume))
			return err
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "User category (JobSeeker, Student or their display labels)")
	cmd.Flags().StringArrayVar(&answers, "answer", nil, `Manual answer as "Label=value" (repeatable)`)
	cmd.Flags().StringVar(&resumePath, "resume", "", "Path to a PDF, DOCX or text résumé")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}

// parseAnswers starts from the category's form so answers keep form order,
// then applies each Label=value pair.
func parseAnswers(c career.Category, raw []string) (career.AnswerSet, error) {
	set := career.NewAnswerSet(c)
	for _, pair := range raw {
		label, value, ok := strings.Cut(pair, "=")
		label = strings.TrimSpace(label)
		if !ok || label == "" {
			return career.AnswerSet{}, fmt.Errorf("invalid --answer %q, want Label=value", pair)
		}
		set.Set(label, value)
	}
	return set, nil
}

func readResume(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read resume: %w", err)
	}
	return extract.New().Extract(extract.Document{
		Name: filepath.Base(path),
		Data: data,
	})
}
