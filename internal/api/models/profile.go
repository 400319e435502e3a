package models

import "ctchen222/Tic-Tac-Toe-N/internal/store"

// ProfileResponse is the saved state of the caller's profile.
type ProfileResponse struct {
	ProfileID string            `json:"profile_id"`
	Score     store.ScoreRecord `json:"score"`
	Names     store.PlayerNames `json:"names"`
	Solo      bool              `json:"solo"`
}

// NewProfileResponse builds the response for a loaded profile.
func NewProfileResponse(profileID string, p store.Profile) ProfileResponse {
	return ProfileResponse{
		ProfileID: profileID,
		Score:     p.Score,
		Names:     p.Names,
		Solo:      p.Solo,
	}
}
