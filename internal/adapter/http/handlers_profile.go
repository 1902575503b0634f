package adapthttp

import (
	"net/http"

	"scaleshift/internal/domain"
)

type profileRequest struct {
	HeightCm     *float64           `json:"heightCm"`
	HeightMeters *float64           `json:"heightMeters"`
	UnitSystem   *domain.UnitSystem `json:"unitSystem"`
	Age          *int               `json:"age"`
	Gender       *domain.Gender     `json:"gender"`
}

func (req profileRequest) merge(cur *domain.UserProfile) domain.UserProfile {
	p := domain.UserProfile{UnitSystem: domain.Metric}
	if cur != nil {
		p = *cur
	}
	switch {
	case req.HeightMeters != nil:
		p.HeightMeters = *req.HeightMeters
	case req.HeightCm != nil:
		p.HeightMeters = domain.ProfileFromCentimeters(*req.HeightCm, p.UnitSystem).HeightMeters
	}
	if req.UnitSystem != nil {
		p.UnitSystem = *req.UnitSystem
	}
	if req.Age != nil {
		p.Age = req.Age
	}
	if req.Gender != nil {
		p.Gender = req.Gender
	}
	return p
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]any{"profile": s.tracker.Profile()})
	case http.MethodPut:
		var req profileRequest
		if err := parseJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}

		// Fields left out of the request keep their current value.
		if err := s.tracker.UpdateProfileFunc(r.Context(), req.merge); err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"profile": s.tracker.Profile()})
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}
