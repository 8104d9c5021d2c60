// Package catalog holds the static initial survey question sets. Each
// student type gets a fixed five-question survey with ids 1-5; follow-up
// questions beyond these are generated by the assistant.
package catalog

import (
	"github.com/campus-lab/coursepath/pkg/domain/model"
	"github.com/campus-lab/coursepath/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

var firstYearSurvey = []model.Question{
	{
		ID:       1,
		Question: "Which learning style helps you absorb information best?",
		Options:  []string{"Visual", "Auditory", "Reading/Writing", "Kinesthetic"},
	},
	{
		ID:       2,
		Question: "Do you usually prefer working alone or with others?",
		Options:  []string{"In groups", "Individually", "No preference"},
	},
	{
		ID:       3,
		Question: "What kind of assignments help you learn most effectively?",
		Options:  []string{"Quizzes", "Exams", "Projects", "Presentations"},
	},
	{
		ID:       4,
		Question: "What are one or two personal goals you have for your first year?",
		Options:  []string{},
		FreeText: true,
	},
	{
		ID:       5,
		Question: "What kind of professor helps you learn best?",
		Options: []string{
			"Supportive and approachable",
			"Clear, structured, and organized",
			"Flexible and laid-back",
			"Challenging but fair",
			"Funny or entertaining",
			"Other",
		},
	},
}

var juniorTransferSurvey = []model.Question{
	{
		ID:       1,
		Question: "What do you hope to get out of your university experience now?",
		Options:  []string{},
		FreeText: true,
	},
	{
		ID:       2,
		Question: "Which type of learning environment do you find most engaging?",
		Options:  []string{"Lecture-based", "Discussion-based", "Hands-on", "Online/Asynchronous"},
	},
	{
		ID:       3,
		Question: "Do you prefer working on projects with a team or individually?",
		Options:  []string{"Team projects", "Individual work", "No preference"},
	},
	{
		ID:       4,
		Question: "What motivates you most to succeed in your studies?",
		Options:  []string{"Grades", "Personal growth", "Career goals", "Support from others", "Passion for the subject"},
	},
	{
		ID:       5,
		Question: "What kind of assessments do you find most helpful?",
		Options:  []string{"Quizzes", "Exams", "Research papers", "Major projects", "Presentations"},
	},
}

var typicalStudentSurvey = []model.Question{
	{
		ID:       1,
		Question: "What drives you the most when it comes to your academic work?",
		Options:  []string{"Getting good grades", "Genuine interest in the subject", "Career goals", "Peers and social motivation"},
	},
	{
		ID:       2,
		Question: "What's one challenge you've faced in your college experience so far, and how did you handle it?",
		Options:  []string{},
		FreeText: true,
	},
	{
		ID:       3,
		Question: "Which type of assessment do you find most effective?",
		Options: []string{
			"Frequent low-stakes quizzes",
			"A few big exams",
			"Major projects",
			"Research papers or essays",
			"No preference",
		},
	},
	{
		ID:       4,
		Question: "What class size do you learn best in?",
		Options: []string{
			"Small (fewer than 25 students)",
			"Medium (25–75 students)",
			"Large (75+ students)",
			"No preference",
		},
	},
	{
		ID:       5,
		Question: "How often do you study with others?",
		Options:  []string{"Regularly", "Sometimes", "Rarely or never"},
	},
}

var surveysByType = map[types.StudentType][]model.Question{
	types.StudentTypeFirstYear:      firstYearSurvey,
	types.StudentTypeJuniorTransfer: juniorTransferSurvey,
	types.StudentTypeTypical:        typicalStudentSurvey,
}

// Questions returns the initial survey question set for the given student
// type as a defensive copy.
func Questions(studentType types.StudentType) ([]model.Question, error) {
	questions, ok := surveysByType[studentType]
	if !ok {
		return nil, goerr.New("unknown student type", goerr.V("studentType", studentType))
	}

	copied := make([]model.Question, len(questions))
	for i := range questions {
		copied[i] = *questions[i].Clone()
	}
	return copied, nil
}
