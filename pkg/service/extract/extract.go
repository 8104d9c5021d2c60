// Package extract turns free-form assistant replies into validated
// structures. Hosted-model output is untrusted text that often wraps the JSON
// payload in explanatory prose, so extraction is permissive about the
// surroundings and strict about the payload itself: downstream consumers
// assume the shape unconditionally.
package extract

import (
	"encoding/json"
	"strings"

	"github.com/campus-lab/coursepath/pkg/domain/model"
	"github.com/campus-lab/coursepath/pkg/utils/errutil"
	"github.com/m-mizutani/goerr/v2"
)

// bound returns the substring between the first open delimiter and the last
// close delimiter of the reply
func bound(reply string, open, close byte) (string, bool) {
	start := strings.IndexByte(reply, open)
	end := strings.LastIndexByte(reply, close)
	if start < 0 || end < start {
		return "", false
	}
	return reply[start : end+1], true
}

// requiredQuestionFields are the fields every generated question must carry
var requiredQuestionFields = []string{"id", "question", "options", "freeText"}

// Questions extracts the follow-up question list from an assistant reply.
// The payload must be a JSON object with a "questions" array, and every
// element must carry all required fields.
func Questions(reply string) ([]model.Question, error) {
	payload, ok := bound(reply, '{', '}')
	if !ok {
		return nil, goerr.New("no JSON object found in assistant reply",
			goerr.T(errutil.TagParse))
	}

	var raw struct {
		Questions []map[string]json.RawMessage `json:"questions"`
	}
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return nil, goerr.Wrap(err, "malformed JSON in assistant reply",
			goerr.T(errutil.TagParse))
	}
	if raw.Questions == nil {
		return nil, goerr.New("assistant reply missing 'questions' field",
			goerr.T(errutil.TagParse))
	}

	for i, q := range raw.Questions {
		for _, field := range requiredQuestionFields {
			if _, ok := q[field]; !ok {
				return nil, goerr.New("generated question missing required field",
					goerr.T(errutil.TagParse),
					goerr.V("field", field),
					goerr.V("question", i),
				)
			}
		}
	}

	var typed struct {
		Questions []model.Question `json:"questions"`
	}
	if err := json.Unmarshal([]byte(payload), &typed); err != nil {
		return nil, goerr.Wrap(err, "generated question has unexpected field type",
			goerr.T(errutil.TagParse))
	}

	return typed.Questions, nil
}

// Steps extracts the learning path step list from an assistant reply. The
// payload must be a JSON array; every element needs at least a title and a
// description. A scalar "resources" field is coerced into a single-element
// list before decoding.
func Steps(reply string) ([]model.PathStep, error) {
	payload, ok := bound(reply, '[', ']')
	if !ok {
		return nil, goerr.New("no JSON array found in assistant reply",
			goerr.T(errutil.TagParse))
	}

	var raw []map[string]any
	if err := json.Unmarshal([]byte(payload), &raw); err != nil {
		return nil, goerr.Wrap(err, "malformed JSON in assistant reply",
			goerr.T(errutil.TagParse))
	}

	for i, step := range raw {
		for _, field := range []string{"title", "description"} {
			if _, ok := step[field]; !ok {
				return nil, goerr.New("learning path step missing required field",
					goerr.T(errutil.TagParse),
					goerr.V("field", field),
					goerr.V("step", i),
				)
			}
		}
		if res, ok := step["resources"]; ok {
			if _, isList := res.([]any); !isList {
				step["resources"] = []any{res}
			}
		}
	}

	normalized, err := json.Marshal(raw)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to normalize learning path",
			goerr.T(errutil.TagParse))
	}

	var steps []model.PathStep
	if err := json.Unmarshal(normalized, &steps); err != nil {
		return nil, goerr.Wrap(err, "learning path step has unexpected field type",
			goerr.T(errutil.TagParse))
	}

	return steps, nil
}
