package model

// PathStep is one recommended course or action in a generated learning path.
// Title and Description are mandatory; the remaining fields are filled in as
// far as the assistant provides them.
type PathStep struct {
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	EstimatedTime    string   `json:"estimated_time,omitempty"`
	MatchPercentage  int      `json:"match_percentage,omitempty"`
	PublicReviews    []string `json:"public_reviews,omitempty"`
	ProfessorReviews []string `json:"professor_reviews,omitempty"`
	Resources        []string `json:"resources,omitempty"`
}

// Clone returns a deep copy of the path step
func (p *PathStep) Clone() *PathStep {
	c := *p
	c.PublicReviews = cloneStrings(p.PublicReviews)
	c.ProfessorReviews = cloneStrings(p.ProfessorReviews)
	c.Resources = cloneStrings(p.Resources)
	return &c
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	c := make([]string, len(s))
	copy(c, s)
	return c
}
