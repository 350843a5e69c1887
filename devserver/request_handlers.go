package devserver

import (
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/onepay-ir/onepay-client/booking"
	"github.com/onepay-ir/onepay-client/catalog"
)

type createRequestPayload struct {
	UnitID int64  `json:"unit_id"`
	Note   string `json:"note"`
}

func trackingCode() string {
	return "REQ-" + strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:10])
}

func activeStatus(status booking.RequestStatus) bool {
	switch status {
	case booking.StatusSubmitted, booking.StatusPendingPayment, booking.StatusPaid:
		return true
	}
	return false
}

func (s *Server) handleCreateRequest(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)

	var payload createRequestPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "Invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	unit := s.findUnit(payload.UnitID)
	if unit == nil {
		writeDetail(w, http.StatusNotFound, "Unit not found")
		return
	}
	if unit.Status == catalog.UnitSold {
		writeDetail(w, http.StatusConflict, "Unit already sold")
		return
	}
	for _, req := range s.requests {
		if req.UnitID == unit.ID && activeStatus(req.Status) && req.UserID != u.ID {
			writeDetail(w, http.StatusConflict, "Unit already in another active request")
			return
		}
	}

	// Create is idempotent per user+unit: an existing non-terminal request is
	// returned as-is instead of opening a duplicate.
	for _, req := range s.requests {
		if req.UserID == u.ID && req.UnitID == unit.ID && req.Status != booking.StatusRejected && req.Status != booking.StatusCancelled {
			writeJSON(w, http.StatusCreated, req)
			return
		}
	}

	now := s.now().UTC()
	req := &booking.PurchaseRequest{
		ID:           s.nextReqID,
		UnitID:       unit.ID,
		UserID:       u.ID,
		Status:       booking.StatusDraft,
		TrackingCode: trackingCode(),
		Note:         payload.Note,
		CreatedAt:    now,
		UpdatedAt:    now,
		Unit:         *unit,
	}
	s.nextReqID++
	s.requests[req.ID] = req
	writeJSON(w, http.StatusCreated, req)
}

func (s *Server) handleSubmitRequest(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)

	id, err := strconv.ParseInt(chi.URLParam(r, "requestID"), 10, 64)
	if err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, "Invalid request id")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	req, exists := s.requests[id]
	if !exists || req.UserID != u.ID {
		writeDetail(w, http.StatusNotFound, "Request not found")
		return
	}
	if req.Status.Terminal() {
		writeDetail(w, http.StatusConflict, "Request can not be submitted")
		return
	}

	req.Status = booking.StatusSubmitted
	req.UpdatedAt = s.now().UTC()
	writeJSON(w, http.StatusOK, req)
}

func (s *Server) handleMyRequests(w http.ResponseWriter, r *http.Request) {
	u := currentUser(r)

	s.mu.Lock()
	defer s.mu.Unlock()

	mine := make([]*booking.PurchaseRequest, 0)
	for _, req := range s.requests {
		if req.UserID != u.ID {
			continue
		}
		// Refresh the embedded unit snapshot; its status may have moved.
		if unit := s.findUnit(req.UnitID); unit != nil {
			req.Unit = *unit
		}
		mine = append(mine, req)
	}
	sort.Slice(mine, func(i, j int) bool {
		if mine[i].CreatedAt.Equal(mine[j].CreatedAt) {
			return mine[i].ID > mine[j].ID
		}
		return mine[i].CreatedAt.After(mine[j].CreatedAt)
	})
	writeJSON(w, http.StatusOK, mine)
}
