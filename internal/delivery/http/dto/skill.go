package dto

type NormalizeRequest struct {
	Skills []string `json:"skills" validate:"required,min=1,max=500,dive,max=200"`
}

type NormalizeResponse struct {
	Skills []string `json:"skills"`
}

type MatchRequest struct {
	Skill string `json:"skill" validate:"required,max=200"`
}

type SimilarityRequest struct {
	A []string `json:"a" validate:"max=500,dive,max=200"`
	B []string `json:"b" validate:"max=500,dive,max=200"`
}

type SimilarityResponse struct {
	Similarity float64 `json:"similarity"`
}
