package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gymslot/gymslot/services/booking-service/internal/booking"
	"github.com/gymslot/gymslot/services/booking-service/internal/model"
)

// BookingHandler is the thin HTTP layer over the booking operations. All
// business outcomes come back as booking.Error kinds and are mapped to status
// codes here; anything unclassified is a 500.
type BookingHandler struct {
	svc    *booking.Service
	authn  *Authenticator
	logger *slog.Logger
}

func NewBookingHandler(svc *booking.Service, authn *Authenticator, logger *slog.Logger) *BookingHandler {
	return &BookingHandler{svc: svc, authn: authn, logger: logger}
}

type bookRequest struct {
	StaffID   string `json:"staff_id"`
	StartTime string `json:"start_time"`
}

type bookResponse struct {
	AppointmentID string `json:"appointment_id"`
	StaffName     string `json:"staff_name"`
	SlotStart     string `json:"slot_start"`
}

type cancelRequest struct {
	AppointmentID string `json:"appointment_id"`
}

type appointmentItem struct {
	AppointmentID string `json:"appointment_id"`
	StaffRole     string `json:"staff_role"`
	StaffID       string `json:"staff_id"`
	SlotStart     string `json:"slot_start"`
	CreatedAt     string `json:"created_at"`
}

// BookTrainer handles POST /api/v1/appointments/trainer.
func (h *BookingHandler) BookTrainer(w http.ResponseWriter, r *http.Request) {
	h.book(w, r, model.RoleTrainer)
}

// BookNutritionist handles POST /api/v1/appointments/nutritionist.
func (h *BookingHandler) BookNutritionist(w http.ResponseWriter, r *http.Request) {
	h.book(w, r, model.RoleNutritionist)
}

func (h *BookingHandler) book(w http.ResponseWriter, r *http.Request, role model.StaffRole) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req bookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	req.StaffID = strings.TrimSpace(req.StaffID)
	if req.StaffID == "" {
		http.Error(w, "staff_id required", http.StatusBadRequest)
		return
	}
	startTime, err := time.Parse(time.RFC3339, strings.TrimSpace(req.StartTime))
	if err != nil {
		http.Error(w, "invalid start_time", http.StatusBadRequest)
		return
	}

	var conf booking.Confirmation
	if role == model.RoleTrainer {
		conf, err = h.svc.BookTrainer(r.Context(), caller, req.StaffID, startTime)
	} else {
		conf, err = h.svc.BookNutritionist(r.Context(), caller, req.StaffID, startTime)
	}
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, bookResponse{
		AppointmentID: conf.AppointmentID,
		StaffName:     conf.StaffName,
		SlotStart:     conf.SlotStart.Format(time.RFC3339),
	})
}

// Cancel handles POST /api/v1/appointments/cancel.
func (h *BookingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	var req cancelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json body", http.StatusBadRequest)
		return
	}
	req.AppointmentID = strings.TrimSpace(req.AppointmentID)
	if req.AppointmentID == "" {
		http.Error(w, "appointment_id required", http.StatusBadRequest)
		return
	}

	if err := h.svc.CancelMine(r.Context(), caller, req.AppointmentID); err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
}

// ListMine handles GET /api/v1/appointments.
func (h *BookingHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	appts, err := h.svc.ListMine(r.Context(), caller)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toItems(appts))
}

// Slots handles GET /api/v1/appointments/slots?role=trainer&staff_id=...&date=YYYY-MM-DD.
func (h *BookingHandler) Slots(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}

	role := model.StaffRole(strings.TrimSpace(r.URL.Query().Get("role")))
	if role != model.RoleTrainer && role != model.RoleNutritionist {
		http.Error(w, "role must be trainer or nutritionist", http.StatusBadRequest)
		return
	}
	staffID := strings.TrimSpace(r.URL.Query().Get("staff_id"))
	if staffID == "" {
		http.Error(w, "staff_id required", http.StatusBadRequest)
		return
	}
	day, err := time.Parse("2006-01-02", strings.TrimSpace(r.URL.Query().Get("date")))
	if err != nil {
		http.Error(w, "date required (YYYY-MM-DD)", http.StatusBadRequest)
		return
	}

	free, err := h.svc.FreeSlots(r.Context(), caller, role, staffID, day)
	if err != nil {
		h.writeError(w, err)
		return
	}
	out := make([]string, 0, len(free))
	for _, t := range free {
		out = append(out, t.Format(time.RFC3339))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *BookingHandler) caller(w http.ResponseWriter, r *http.Request) (booking.Caller, bool) {
	caller, err := h.authn.Caller(r)
	if err != nil {
		http.Error(w, "missing or invalid token", http.StatusUnauthorized)
		return booking.Caller{}, false
	}
	return caller, true
}

func (h *BookingHandler) writeError(w http.ResponseWriter, err error) {
	switch booking.KindOf(err) {
	case booking.KindUnauthorized:
		http.Error(w, err.Error(), http.StatusForbidden)
	case booking.KindInvalidArgument:
		http.Error(w, err.Error(), http.StatusBadRequest)
	case booking.KindPastDate, booking.KindSameDay, booking.KindOutsideBusinessHours, booking.KindNotOnTheHour, booking.KindInvalidState:
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case booking.KindNotFound:
		http.Error(w, err.Error(), http.StatusNotFound)
	case booking.KindConflict:
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		h.logger.Error("booking operation failed", "err", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toItems(appts []model.Appointment) []appointmentItem {
	items := make([]appointmentItem, 0, len(appts))
	for _, appt := range appts {
		role, staffID := appt.Staff()
		items = append(items, appointmentItem{
			AppointmentID: appt.ID,
			StaffRole:     string(role),
			StaffID:       staffID,
			SlotStart:     appt.SlotStart.Format(time.RFC3339),
			CreatedAt:     appt.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return items
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "failed to build response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
