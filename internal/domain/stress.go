package domain

import "time"

// Gripe is a single venting entry. Gripes live embedded inside their
// Stress and are never stored or addressed standalone.
type Gripe struct {
	Number int    `json:"number"`
	Text   string `json:"text"`
}

// Stress groups gripes under a user-chosen name. GripeCount is a
// monotonically increasing counter used to number gripes; it is never
// decremented, so it reflects every gripe ever added, not the live length.
type Stress struct {
	ID         string
	Name       string
	GripeCount int
	Gripes     []Gripe
	Owners     []string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// HasGripe reports whether a gripe with identical text already exists.
func (s *Stress) HasGripe(text string) bool {
	for _, g := range s.Gripes {
		if g.Text == text {
			return true
		}
	}
	return false
}

// OwnedBy reports whether the given user may view or mutate this stress.
func (s *Stress) OwnedBy(userID string) bool {
	for _, owner := range s.Owners {
		if owner == userID {
			return true
		}
	}
	return false
}
