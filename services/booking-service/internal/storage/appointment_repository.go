package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/gymslot/gymslot/libs/db"
	"github.com/gymslot/gymslot/services/booking-service/internal/model"
	"github.com/gymslot/gymslot/services/booking-service/internal/outbox"
	"github.com/gymslot/gymslot/services/booking-service/internal/reminders"
)

// AppointmentRepository persists appointments and, in the same transaction,
// the outbox events and reminder jobs that follow from each write. The partial
// unique indexes on the appointments table are the actual mutual-exclusion
// primitive; every insert/update translates their violations into the conflict
// sentinels in errors.go.
type AppointmentRepository struct {
	pool         *db.Pool
	outbox       *outbox.Repository
	reminders    *reminders.Repository
	reminderLead time.Duration
	now          func() time.Time
}

func NewAppointmentRepository(pool *db.Pool, outboxRepo *outbox.Repository, remindersRepo *reminders.Repository, reminderLead time.Duration, now func() time.Time) *AppointmentRepository {
	if now == nil {
		now = time.Now
	}
	return &AppointmentRepository{
		pool:         pool,
		outbox:       outboxRepo,
		reminders:    remindersRepo,
		reminderLead: reminderLead,
		now:          now,
	}
}

const appointmentColumns = `id, user_id, trainer_id, nutritionist_id, slot_start, slot_day, created_at, is_deleted`

func scanAppointment(row pgx.Row) (model.Appointment, error) {
	var appt model.Appointment
	err := row.Scan(
		&appt.ID,
		&appt.UserID,
		&appt.TrainerID,
		&appt.NutritionistID,
		&appt.SlotStart,
		&appt.SlotDay,
		&appt.CreatedAt,
		&appt.IsDeleted,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Appointment{}, ErrNotFound
		}
		return model.Appointment{}, err
	}
	return appt, nil
}

// Create inserts the appointment and enqueues the booked event plus a session
// reminder. A uniqueness violation from a lost race comes back as
// ErrUserDayTaken or ErrStaffSlotTaken.
func (r *AppointmentRepository) Create(ctx context.Context, appt *model.Appointment) error {
	if appt.ID == "" {
		appt.ID = uuid.NewString()
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	err = tx.QueryRow(ctx, `
		INSERT INTO appointments (id, user_id, trainer_id, nutritionist_id, slot_start, slot_day)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`, appt.ID, appt.UserID, appt.TrainerID, appt.NutritionistID, appt.SlotStart, appt.SlotDay).Scan(&appt.CreatedAt)
	if err != nil {
		return translateConstraint(err)
	}

	payload, err := r.eventPayload(ctx, tx, appt, nil)
	if err != nil {
		return err
	}
	if err := r.outbox.Insert(ctx, tx, outbox.Event{
		AggregateType: "appointment",
		AggregateID:   appt.ID,
		EventType:     outbox.TopicBooked,
		Payload:       payload,
	}); err != nil {
		return err
	}
	if err := r.enqueueReminder(ctx, tx, appt, payload); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// Update rewrites staff/slot of an existing non-deleted appointment, voids its
// pending reminders and enqueues a rescheduled event.
func (r *AppointmentRepository) Update(ctx context.Context, appt *model.Appointment) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var previousStart time.Time
	err = tx.QueryRow(ctx, `
		SELECT slot_start FROM appointments
		WHERE id = $1 AND NOT is_deleted
		FOR UPDATE
	`, appt.ID).Scan(&previousStart)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	_, err = tx.Exec(ctx, `
		UPDATE appointments
		SET trainer_id = $2, nutritionist_id = $3, slot_start = $4, slot_day = $5
		WHERE id = $1 AND NOT is_deleted
	`, appt.ID, appt.TrainerID, appt.NutritionistID, appt.SlotStart, appt.SlotDay)
	if err != nil {
		return translateConstraint(err)
	}

	extra := map[string]any{"previous_slot_start": previousStart.UTC().Format(time.RFC3339)}
	payload, err := r.eventPayload(ctx, tx, appt, extra)
	if err != nil {
		return err
	}
	if err := r.outbox.Insert(ctx, tx, outbox.Event{
		AggregateType: "appointment",
		AggregateID:   appt.ID,
		EventType:     outbox.TopicRescheduled,
		Payload:       payload,
	}); err != nil {
		return err
	}
	if err := r.reminders.CancelPending(ctx, tx, appt.ID); err != nil {
		return err
	}
	if err := r.enqueueReminder(ctx, tx, appt, payload); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// SoftDelete marks the appointment deleted, voids its reminders and enqueues a
// cancelled event. ErrNotFound when no visible row matches.
func (r *AppointmentRepository) SoftDelete(ctx context.Context, id string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	appt, err := scanAppointment(tx.QueryRow(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments
		WHERE id = $1 AND NOT is_deleted
		FOR UPDATE
	`, id))
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `
		UPDATE appointments SET is_deleted = TRUE WHERE id = $1
	`, id); err != nil {
		return err
	}

	extra := map[string]any{"cancelled_at": r.now().UTC().Format(time.RFC3339)}
	payload, err := r.eventPayload(ctx, tx, &appt, extra)
	if err != nil {
		return err
	}
	if err := r.outbox.Insert(ctx, tx, outbox.Event{
		AggregateType: "appointment",
		AggregateID:   appt.ID,
		EventType:     outbox.TopicCancelled,
		Payload:       payload,
	}); err != nil {
		return err
	}
	if err := r.reminders.CancelPending(ctx, tx, appt.ID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id string) (model.Appointment, error) {
	return scanAppointment(r.pool.QueryRow(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments
		WHERE id = $1 AND NOT is_deleted
	`, id))
}

// GetByUserAndID scopes the lookup to the owner, so a member can never see or
// cancel someone else's appointment.
func (r *AppointmentRepository) GetByUserAndID(ctx context.Context, userID, id string) (model.Appointment, error) {
	return scanAppointment(r.pool.QueryRow(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments
		WHERE id = $1 AND user_id = $2 AND NOT is_deleted
	`, id, userID))
}

// excludeParam turns the optional exclude id into a nullable uuid parameter.
// No exclusion must reach the server as NULL; uuid_in rejects ''.
func excludeParam(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}

// UserHasAppointmentOnDay is the advisory member/day availability check.
func (r *AppointmentRepository) UserHasAppointmentOnDay(ctx context.Context, userID string, day time.Time, excludeID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM appointments
			WHERE user_id = $1 AND slot_day = $2 AND NOT is_deleted
			  AND ($3::uuid IS NULL OR id <> $3)
		)
	`, userID, day, excludeParam(excludeID)).Scan(&exists)
	return exists, err
}

// StaffBusyInSlot is the advisory staff/slot availability check.
func (r *AppointmentRepository) StaffBusyInSlot(ctx context.Context, role model.StaffRole, staffID string, slotStart time.Time, excludeID string) (bool, error) {
	column := "trainer_id"
	if role == model.RoleNutritionist {
		column = "nutritionist_id"
	}
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM appointments
			WHERE `+column+` = $1 AND slot_start = $2 AND NOT is_deleted
			  AND ($3::uuid IS NULL OR id <> $3)
		)
	`, staffID, slotStart, excludeParam(excludeID)).Scan(&exists)
	return exists, err
}

func (r *AppointmentRepository) ListUpcomingByUser(ctx context.Context, userID string, from time.Time) ([]model.Appointment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments
		WHERE user_id = $1 AND slot_start >= $2 AND NOT is_deleted
		ORDER BY slot_start
	`, userID, from)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAppointments(rows)
}

func (r *AppointmentRepository) ListByDay(ctx context.Context, day time.Time) ([]model.Appointment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+appointmentColumns+`
		FROM appointments
		WHERE slot_day = $1 AND NOT is_deleted
		ORDER BY slot_start
	`, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAppointments(rows)
}

// ListStaffSlotStarts returns the occupied slot starts for a staff member on
// a facility-local day, for the free-hours computation.
func (r *AppointmentRepository) ListStaffSlotStarts(ctx context.Context, role model.StaffRole, staffID string, day time.Time) ([]time.Time, error) {
	column := "trainer_id"
	if role == model.RoleNutritionist {
		column = "nutritionist_id"
	}
	rows, err := r.pool.Query(ctx, `
		SELECT slot_start FROM appointments
		WHERE `+column+` = $1 AND slot_day = $2 AND NOT is_deleted
		ORDER BY slot_start
	`, staffID, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var starts []time.Time
	for rows.Next() {
		var t time.Time
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		starts = append(starts, t)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return starts, nil
}

func collectAppointments(rows pgx.Rows) ([]model.Appointment, error) {
	var appts []model.Appointment
	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		appts = append(appts, appt)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return appts, nil
}

// eventPayload assembles the notification body for an appointment, joining the
// member and staff directories for display names and contact details.
func (r *AppointmentRepository) eventPayload(ctx context.Context, tx pgx.Tx, appt *model.Appointment, extra map[string]any) ([]byte, error) {
	role, staffID := appt.Staff()

	var userName, userEmail, userPhone, staffName string
	err := tx.QueryRow(ctx, `
		SELECT
			COALESCE((SELECT full_name FROM users WHERE id = $1), ''),
			COALESCE((SELECT email FROM users WHERE id = $1), ''),
			COALESCE((SELECT phone FROM users WHERE id = $1), ''),
			COALESCE((SELECT full_name FROM staff WHERE id = $2), '')
	`, appt.UserID, staffID).Scan(&userName, &userEmail, &userPhone, &staffName)
	if err != nil {
		return nil, err
	}

	body := map[string]any{
		"appointment_id": appt.ID,
		"user_id":        appt.UserID,
		"user_name":      userName,
		"user_email":     userEmail,
		"user_phone":     userPhone,
		"staff_role":     string(role),
		"staff_id":       staffID,
		"staff_name":     staffName,
		"slot_start":     appt.SlotStart.UTC().Format(time.RFC3339),
	}
	for k, v := range extra {
		body[k] = v
	}
	return json.Marshal(body)
}

// reminderAt computes the reminder time for a slot, or false when the lead is
// disabled or the reminder would already be in the past.
func (r *AppointmentRepository) reminderAt(slotStart time.Time) (time.Time, bool) {
	if r.reminderLead <= 0 {
		return time.Time{}, false
	}
	remindAt := slotStart.Add(-r.reminderLead)
	if remindAt.Before(r.now().UTC()) {
		return time.Time{}, false
	}
	return remindAt, true
}

func (r *AppointmentRepository) enqueueReminder(ctx context.Context, tx pgx.Tx, appt *model.Appointment, payload []byte) error {
	remindAt, ok := r.reminderAt(appt.SlotStart)
	if !ok {
		return nil
	}
	return r.reminders.Insert(ctx, tx, reminders.Job{
		AppointmentID: appt.ID,
		RemindAt:      remindAt,
		Payload:       payload,
	})
}
