package job

// Posting is a job posting as handed to the engine by a corpus source.
// RequiredSkills holds raw mentions; they are canonicalized by the consumers.
type Posting struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Company        string   `json:"company"`
	Location       string   `json:"location"`
	Description    string   `json:"description"`
	RequiredSkills []string `json:"required_skills"`
	Salary         *float64 `json:"salary,omitempty"`
	EmployerTier   *int     `json:"employer_tier,omitempty"`
	Source         string   `json:"source"`
}

func (p Posting) HasSalary() bool {
	return p.Salary != nil && *p.Salary > 0
}
