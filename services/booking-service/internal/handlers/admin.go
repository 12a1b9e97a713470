package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gymslot/gymslot/services/booking-service/internal/booking"
)

type adminCreateRequest struct {
	UserID         string  `json:"user_id"`
	TrainerID      *string `json:"trainer_id,omitempty"`
	NutritionistID *string `json:"nutritionist_id,omitempty"`
	StartTime      string  `json:"start_time"`
}

type adminUpdateRequest struct {
	AppointmentID  string  `json:"appointment_id"`
	TrainerID      *string `json:"trainer_id,omitempty"`
	NutritionistID *string `json:"nutritionist_id,omitempty"`
	StartTime      string  `json:"start_time"`
}

type adminDeleteRequest struct {
	AppointmentID string `json:"appointment_id"`
}

// AdminCreate handles POST /api/v1/admin/appointments.
func (h *BookingHandler) AdminCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req adminCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	req.UserID = strings.TrimSpace(req.UserID)
	if req.UserID == "" {
		http.Error(w, "user_id required", http.StatusBadRequest)
		return
	}
	startTime, err := time.Parse(time.RFC3339, strings.TrimSpace(req.StartTime))
	if err != nil {
		http.Error(w, "invalid start_time", http.StatusBadRequest)
		return
	}

	sel := booking.StaffSelection{TrainerID: req.TrainerID, NutritionistID: req.NutritionistID}
	id, err := h.svc.AdminCreate(r.Context(), caller, req.UserID, sel, startTime)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"appointment_id": id})
}

// AdminUpdate handles POST /api/v1/admin/appointments/update.
func (h *BookingHandler) AdminUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req adminUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	req.AppointmentID = strings.TrimSpace(req.AppointmentID)
	if req.AppointmentID == "" {
		http.Error(w, "appointment_id required", http.StatusBadRequest)
		return
	}
	startTime, err := time.Parse(time.RFC3339, strings.TrimSpace(req.StartTime))
	if err != nil {
		http.Error(w, "invalid start_time", http.StatusBadRequest)
		return
	}

	sel := booking.StaffSelection{TrainerID: req.TrainerID, NutritionistID: req.NutritionistID}
	if err := h.svc.AdminUpdate(r.Context(), caller, req.AppointmentID, sel, startTime); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// AdminDelete handles POST /api/v1/admin/appointments/delete.
func (h *BookingHandler) AdminDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req adminDeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	req.AppointmentID = strings.TrimSpace(req.AppointmentID)
	if req.AppointmentID == "" {
		http.Error(w, "appointment_id required", http.StatusBadRequest)
		return
	}

	if err := h.svc.AdminDelete(r.Context(), caller, req.AppointmentID); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// AdminListByDay handles GET /api/v1/admin/appointments?date=YYYY-MM-DD.
func (h *BookingHandler) AdminListByDay(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	dateStr := strings.TrimSpace(r.URL.Query().Get("date"))
	day, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		http.Error(w, "date required (YYYY-MM-DD)", http.StatusBadRequest)
		return
	}

	appts, err := h.svc.AdminListByDay(r.Context(), caller, day)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toItems(appts))
}
