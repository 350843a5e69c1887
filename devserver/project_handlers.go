package devserver

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/onepay-ir/onepay-client/catalog"
)

func (s *Server) handleProjects(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	summaries := make([]catalog.ProjectSummary, 0, len(s.projects))
	for _, p := range s.projects {
		summary := catalog.ProjectSummary{
			ID:          p.ID,
			Title:       p.Title,
			Slug:        p.Slug,
			Description: p.Description,
			Address:     p.Address,
			Status:      p.Status,
			CoverImage:  p.CoverImage,
		}
		for _, u := range p.Units {
			if u.Status != catalog.UnitAvailable {
				continue
			}
			summary.AvailableUnits++
			if summary.MinPrice == nil || u.Price < *summary.MinPrice {
				price := u.Price
				summary.MinPrice = &price
			}
		}
		summaries = append(summaries, summary)
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (s *Server) handleProject(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "projectID"), 10, 64)
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "Invalid project id")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.projects {
		if p.ID == id {
			writeJSON(w, http.StatusOK, p)
			return
		}
	}
	writeDetail(w, http.StatusNotFound, "Project not found")
}

// findUnit returns a pointer into the seeded project data so status changes
// stick. Callers must hold the mutex.
func (s *Server) findUnit(unitID int64) *catalog.Unit {
	for pi := range s.projects {
		units := s.projects[pi].Units
		for ui := range units {
			if units[ui].ID == unitID {
				return &units[ui]
			}
		}
	}
	return nil
}
