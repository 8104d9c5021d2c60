package extract_test

import (
	"errors"
	"testing"

	"github.com/campus-lab/coursepath/pkg/service/extract"
	"github.com/campus-lab/coursepath/pkg/utils/errutil"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
)

func TestQuestions(t *testing.T) {
	t.Run("extracts payload surrounded by prose", func(t *testing.T) {
		reply := "Here you go:\n{\"questions\":[{\"id\":1,\"question\":\"Q\",\"options\":[],\"freeText\":true}]}\nThanks!"

		questions, err := extract.Questions(reply)
		gt.NoError(t, err).Required()
		gt.Array(t, questions).Length(1)
		gt.Value(t, questions[0].ID).Equal(1)
		gt.Value(t, questions[0].Question).Equal("Q")
		gt.Array(t, questions[0].Options).Length(0)
		gt.Value(t, questions[0].FreeText).Equal(true)
	})

	t.Run("extracts a full question set", func(t *testing.T) {
		reply := `Based on your answers, here are the follow-up questions:
{
  "questions": [
    {"id": 1, "question": "Which CS area interests you most?", "options": ["Systems", "AI", "Theory"], "freeText": false},
    {"id": 2, "question": "Describe your ideal project.", "options": [], "freeText": true}
  ]
}
Let me know if you need more.`

		questions, err := extract.Questions(reply)
		gt.NoError(t, err).Required()
		gt.Array(t, questions).Length(2)
		gt.Value(t, questions[0].Options).Equal([]string{"Systems", "AI", "Theory"})
		gt.Value(t, questions[1].FreeText).Equal(true)
	})

	t.Run("no brace characters fails as no JSON found", func(t *testing.T) {
		_, err := extract.Questions("I could not produce any questions, sorry.")
		gt.Error(t, err)
		gt.Value(t, goerr.HasTag(err, errutil.TagParse)).Equal(true)
		gt.String(t, err.Error()).Contains("no JSON object found")
	})

	t.Run("malformed JSON fails with parser diagnostic", func(t *testing.T) {
		_, err := extract.Questions("{not json}")
		gt.Error(t, err)
		gt.String(t, err.Error()).Contains("malformed JSON")
	})

	t.Run("missing questions key fails", func(t *testing.T) {
		_, err := extract.Questions(`{"items": []}`)
		gt.Error(t, err)
		gt.String(t, err.Error()).Contains("questions")
	})

	t.Run("question missing freeText fails naming the field", func(t *testing.T) {
		_, err := extract.Questions(`{"questions":[{"id":1,"question":"Q","options":[]}]}`)
		gt.Error(t, err)
		gt.String(t, err.Error()).Contains("missing required field")

		gt.Value(t, goerr.HasTag(err, errutil.TagParse)).Equal(true)

		var ge *goerr.Error
		gt.Bool(t, errors.As(err, &ge)).True()
		gt.Value(t, ge.Values()["field"]).Equal("freeText")
	})
}

func TestSteps(t *testing.T) {
	t.Run("extracts steps surrounded by prose", func(t *testing.T) {
		reply := `Here is your learning path:
[
  {"title": "CS 101 Intro to Programming", "description": "Start here.", "estimated_time": "1 semester", "match_percentage": 92, "public_reviews": ["Great course"], "professor_reviews": ["Clear lectures"]},
  {"title": "CS 230 Data Structures", "description": "Builds on CS 101."}
]
Good luck!`

		steps, err := extract.Steps(reply)
		gt.NoError(t, err).Required()
		gt.Array(t, steps).Length(2)
		gt.Value(t, steps[0].Title).Equal("CS 101 Intro to Programming")
		gt.Value(t, steps[0].MatchPercentage).Equal(92)
		gt.Array(t, steps[0].PublicReviews).Length(1)
		gt.Value(t, steps[1].Description).Equal("Builds on CS 101.")
	})

	t.Run("scalar resources is coerced to a list", func(t *testing.T) {
		reply := `[{"title": "T", "description": "D", "resources": "https://example.com/syllabus"}]`

		steps, err := extract.Steps(reply)
		gt.NoError(t, err).Required()
		gt.Array(t, steps).Length(1)
		gt.Value(t, steps[0].Resources).Equal([]string{"https://example.com/syllabus"})
	})

	t.Run("no bracket characters fails as no JSON found", func(t *testing.T) {
		_, err := extract.Steps("no array here")
		gt.Error(t, err)
		gt.String(t, err.Error()).Contains("no JSON array found")
	})

	t.Run("step missing description fails", func(t *testing.T) {
		_, err := extract.Steps(`[{"title": "T"}]`)
		gt.Error(t, err)
		gt.String(t, err.Error()).Contains("missing required field")
	})

	t.Run("malformed array payload fails", func(t *testing.T) {
		_, err := extract.Steps("[{broken]")
		gt.Error(t, err)
		gt.String(t, err.Error()).Contains("malformed JSON")
	})
}
