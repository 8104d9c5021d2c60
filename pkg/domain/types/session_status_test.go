package types_test

import (
	"testing"

	"github.com/campus-lab/coursepath/pkg/domain/types"
	"github.com/m-mizutani/gt"
)

func TestSessionStatusTransitions(t *testing.T) {
	cases := []struct {
		name string
		from types.SessionStatus
		to   types.SessionStatus
		want bool
	}{
		{"initialized to in progress", types.SessionStatusInitialized, types.SessionStatusSurveyInProgress, true},
		{"initialized straight to completed", types.SessionStatusInitialized, types.SessionStatusSurveyCompleted, true},
		{"in progress to completed", types.SessionStatusSurveyInProgress, types.SessionStatusSurveyCompleted, true},
		{"completed to path generated", types.SessionStatusSurveyCompleted, types.SessionStatusPathGenerated, true},
		{"same state", types.SessionStatusSurveyCompleted, types.SessionStatusSurveyCompleted, true},
		{"completed back to in progress", types.SessionStatusSurveyCompleted, types.SessionStatusSurveyInProgress, false},
		{"path generated back to initialized", types.SessionStatusPathGenerated, types.SessionStatusInitialized, false},
		{"invalid target", types.SessionStatusInitialized, types.SessionStatus("archived"), false},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			gt.Value(t, tt.from.CanTransitionTo(tt.to)).Equal(tt.want)
		})
	}
}

func TestParseSessionStatus(t *testing.T) {
	status, err := types.ParseSessionStatus("survey_in_progress")
	gt.NoError(t, err).Required()
	gt.Value(t, status).Equal(types.SessionStatusSurveyInProgress)

	_, err = types.ParseSessionStatus("paused")
	gt.Error(t, err)
}

func TestParseStudentType(t *testing.T) {
	st, err := types.ParseStudentType("junior_transfer")
	gt.NoError(t, err).Required()
	gt.Value(t, st).Equal(types.StudentTypeJuniorTransfer)

	_, err = types.ParseStudentType("senior")
	gt.Error(t, err)

	gt.Array(t, types.AllStudentTypes()).Length(3)
}
