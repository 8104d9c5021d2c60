package usecase

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/campus-lab/coursepath/pkg/domain/model"
	"github.com/campus-lab/coursepath/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

//go:embed prompt/assistant_system.md
var assistantSystemTmplSrc string

//go:embed prompt/followup_questions.md
var followUpTmplSrc string

//go:embed prompt/learning_path.md
var learningPathTmplSrc string

var (
	assistantSystemTmpl = template.Must(template.New("assistant_system").Parse(assistantSystemTmplSrc))
	followUpTmpl        = template.Must(template.New("followup_questions").Parse(followUpTmplSrc))
	learningPathTmpl    = template.Must(template.New("learning_path").Parse(learningPathTmplSrc))
)

// renderHistory formats submitted responses as a Q/A transcript for prompts
func renderHistory(responses []model.SurveyResponse) string {
	lines := make([]string, 0, len(responses))
	for _, r := range responses {
		lines = append(lines, fmt.Sprintf("Q: %s\nA: %s", r.Question, r.Answer))
	}
	return strings.Join(lines, "\n")
}

// buildAssistantInstructions renders the system instruction a new assistant
// is provisioned with
func buildAssistantInstructions(universityName, majorName string) (string, error) {
	var buf bytes.Buffer
	err := assistantSystemTmpl.Execute(&buf, map[string]string{
		"University": universityName,
		"Major":      majorName,
	})
	if err != nil {
		return "", goerr.Wrap(err, "failed to render assistant instructions")
	}
	return buf.String(), nil
}

// buildFollowUpPrompt renders the follow-up questionnaire request
func buildFollowUpPrompt(responses []model.SurveyResponse, studentType types.StudentType, majorName string) (string, error) {
	var buf bytes.Buffer
	err := followUpTmpl.Execute(&buf, map[string]string{
		"History":     renderHistory(responses),
		"StudentType": studentType.String(),
		"Major":       majorName,
	})
	if err != nil {
		return "", goerr.Wrap(err, "failed to render follow-up prompt")
	}
	return buf.String(), nil
}

// buildLearningPathPrompt renders the learning path request. The focus clause
// is omitted entirely when searchQuery is empty.
func buildLearningPathPrompt(responses []model.SurveyResponse, searchQuery string) (string, error) {
	var buf bytes.Buffer
	err := learningPathTmpl.Execute(&buf, map[string]string{
		"History":     renderHistory(responses),
		"SearchQuery": searchQuery,
	})
	if err != nil {
		return "", goerr.Wrap(err, "failed to render learning path prompt")
	}
	return buf.String(), nil
}
