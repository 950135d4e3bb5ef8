package dto

import "github.com/spec-kit/gripe-service/internal/domain"

// AddStressRequest payload for creating a stress.
type AddStressRequest struct {
	Name string `json:"name"`
}

// AddGripeRequest payload for venting about a stress.
type AddGripeRequest struct {
	Text string `json:"text"`
}

// GripeResponse is a single gripe as rendered to the user.
type GripeResponse struct {
	Number int    `json:"number"`
	Text   string `json:"text"`
}

// StressResponse is a stress with its embedded gripes.
type StressResponse struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	GripeCount int             `json:"gripe_count"`
	Gripes     []GripeResponse `json:"gripes"`
}

// StressListResponse is the plain data the rendering layer turns into the
// selector page; Message carries flash-style hints.
type StressListResponse struct {
	Stresses []StressResponse `json:"stresses"`
	Message  string           `json:"message,omitempty"`
}

// HappyResponse carries the reward page data. ImageURL is empty when the
// external fetch failed; the page renders without it.
type HappyResponse struct {
	Stresses []StressResponse `json:"stresses"`
	ImageURL string           `json:"image_url,omitempty"`
}

// FromStress maps a domain stress to its response shape.
func FromStress(stress domain.Stress) StressResponse {
	gripes := make([]GripeResponse, 0, len(stress.Gripes))
	for _, g := range stress.Gripes {
		gripes = append(gripes, GripeResponse{Number: g.Number, Text: g.Text})
	}
	return StressResponse{
		ID:         stress.ID,
		Name:       stress.Name,
		GripeCount: stress.GripeCount,
		Gripes:     gripes,
	}
}

// FromStresses maps a list of domain stresses.
func FromStresses(stresses []domain.Stress) []StressResponse {
	out := make([]StressResponse, 0, len(stresses))
	for _, s := range stresses {
		out = append(out, FromStress(s))
	}
	return out
}
