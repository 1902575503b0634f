package adapthttp

import (
	"errors"
	"net/http"

	"scaleshift/internal/domain"
)

type entryRequest struct {
	Weight float64     `json:"weight"`
	Unit   domain.Unit `json:"unit"`
	Date   string      `json:"date"`
}

func (s *Server) handleEntries(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		entries := s.tracker.Entries()
		if limit := intQuery(r, "limit", 0); limit > 0 && limit < len(entries) {
			entries = entries[:limit]
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": entries})
	case http.MethodPost:
		var req entryRequest
		if err := parseJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}

		unit := req.Unit
		if unit == "" {
			unit = domain.Kilograms
			if p := s.tracker.Profile(); p != nil {
				unit = p.UnitSystem.WeightUnit()
			}
		}
		if unit != domain.Kilograms && unit != domain.Pounds {
			writeError(w, http.StatusBadRequest, errors.New("unit must be kg or lb"))
			return
		}

		date, err := parseDate(req.Date)
		if err != nil {
			writeStoreError(w, err)
			return
		}

		entry, err := s.tracker.AddEntry(r.Context(), domain.ConvertWeight(req.Weight, unit, domain.Kilograms), date)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]any{"entry": entry})
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleEntry(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	switch r.Method {
	case http.MethodGet:
		entry, ok := s.tracker.Entry(id)
		if !ok {
			writeError(w, http.StatusNotFound, errors.New("entry not found"))
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"entry": entry})
	case http.MethodDelete:
		deleted, err := s.tracker.DeleteEntry(r.Context(), id)
		if err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "deleted": deleted})
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}
