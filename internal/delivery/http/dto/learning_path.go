package dto

type LearningPathRequest struct {
	TargetSkill   string   `json:"target_skill" validate:"required,max=200"`
	CurrentSkills []string `json:"current_skills" validate:"max=200,dive,max=200"`
	Weeks         int      `json:"weeks" validate:"gte=0,lte=104"`
	HoursPerWeek  float64  `json:"hours_per_week" validate:"gte=0,lte=80"`
	StartDate     string   `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
}

type LearningPathBatchRequest struct {
	Skills        []string `json:"skills" validate:"required,min=1,max=25,dive,required,max=200"`
	CurrentSkills []string `json:"current_skills" validate:"max=200,dive,max=200"`
	Weeks         int      `json:"weeks" validate:"gte=0,lte=104"`
	HoursPerWeek  float64  `json:"hours_per_week" validate:"gte=0,lte=80"`
}
