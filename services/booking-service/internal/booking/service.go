package booking

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gymslot/gymslot/services/booking-service/internal/availability"
	"github.com/gymslot/gymslot/services/booking-service/internal/directory"
	"github.com/gymslot/gymslot/services/booking-service/internal/model"
	"github.com/gymslot/gymslot/services/booking-service/internal/storage"
)

// Store is the persistence boundary for appointments. Implementations own the
// uniqueness invariants (one appointment per staff member per slot, one per
// member per facility-local day) via storage-level constraints and report lost
// races as the conflict sentinels in the storage package.
type Store interface {
	Create(ctx context.Context, appt *model.Appointment) error
	Update(ctx context.Context, appt *model.Appointment) error
	SoftDelete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (model.Appointment, error)
	GetByUserAndID(ctx context.Context, userID, id string) (model.Appointment, error)
	UserHasAppointmentOnDay(ctx context.Context, userID string, day time.Time, excludeID string) (bool, error)
	StaffBusyInSlot(ctx context.Context, role model.StaffRole, staffID string, slotStart time.Time, excludeID string) (bool, error)
	ListUpcomingByUser(ctx context.Context, userID string, from time.Time) ([]model.Appointment, error)
	ListByDay(ctx context.Context, day time.Time) ([]model.Appointment, error)
	ListStaffSlotStarts(ctx context.Context, role model.StaffRole, staffID string, day time.Time) ([]time.Time, error)
}

// Service implements the booking operations. The availability checks it runs
// before each write are advisory only; the store's constraints decide races.
type Service struct {
	store  Store
	dir    directory.Provider
	norm   *Normalizer
	now    func() time.Time
	logger *slog.Logger
}

func NewService(store Store, dir directory.Provider, norm *Normalizer, logger *slog.Logger, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{store: store, dir: dir, norm: norm, now: now, logger: logger}
}

// Confirmation is returned to a member after a successful self-service booking.
type Confirmation struct {
	AppointmentID string
	StaffName     string
	SlotStart     time.Time
}

// StaffSelection carries the admin-path tagged staff reference; exactly one
// field must be set.
type StaffSelection struct {
	TrainerID      *string
	NutritionistID *string
}

func (s StaffSelection) resolve() (model.StaffRole, string, error) {
	switch {
	case s.TrainerID == nil && s.NutritionistID == nil:
		return "", "", newError(KindInvalidArgument, msgNeitherStaff)
	case s.TrainerID != nil && s.NutritionistID != nil:
		return "", "", newError(KindInvalidArgument, msgBothStaff)
	case s.TrainerID != nil:
		return model.RoleTrainer, *s.TrainerID, nil
	default:
		return model.RoleNutritionist, *s.NutritionistID, nil
	}
}

// BookTrainer books a one-hour session with a trainer for the calling member.
func (s *Service) BookTrainer(ctx context.Context, caller Caller, trainerID string, raw time.Time) (Confirmation, error) {
	return s.bookSelf(ctx, caller, model.RoleTrainer, trainerID, raw)
}

// BookNutritionist books a one-hour session with a nutritionist for the
// calling member.
func (s *Service) BookNutritionist(ctx context.Context, caller Caller, nutritionistID string, raw time.Time) (Confirmation, error) {
	return s.bookSelf(ctx, caller, model.RoleNutritionist, nutritionistID, raw)
}

func (s *Service) bookSelf(ctx context.Context, caller Caller, role model.StaffRole, staffID string, raw time.Time) (Confirmation, error) {
	if err := requireRole(caller, RoleMember); err != nil {
		return Confirmation{}, err
	}

	slotStart, err := s.norm.Normalize(raw)
	if err != nil {
		return Confirmation{}, err
	}

	exists, err := s.dir.StaffExists(ctx, role, staffID)
	if err != nil {
		return Confirmation{}, err
	}
	if !exists {
		return Confirmation{}, newError(KindNotFound, string(role)+" not found")
	}

	if err := s.checkAvailability(ctx, caller.UserID, role, staffID, slotStart, ""); err != nil {
		return Confirmation{}, err
	}

	appt := &model.Appointment{
		UserID:    caller.UserID,
		SlotStart: slotStart,
		SlotDay:   s.norm.DayOf(slotStart),
	}
	appt.SetStaff(role, staffID)

	if err := s.store.Create(ctx, appt); err != nil {
		return Confirmation{}, conflictOrFault(err)
	}

	name, err := s.dir.StaffName(ctx, role, staffID)
	if err != nil {
		// The booking is already committed; a failed name lookup only degrades
		// the confirmation text.
		s.logger.Warn("staff name lookup failed", "staff_id", staffID, "err", err)
		name = ""
	}

	return Confirmation{AppointmentID: appt.ID, StaffName: name, SlotStart: slotStart}, nil
}

// CancelMine soft-deletes one of the caller's own upcoming appointments.
func (s *Service) CancelMine(ctx context.Context, caller Caller, appointmentID string) error {
	if err := requireRole(caller, RoleMember); err != nil {
		return err
	}

	appt, err := s.store.GetByUserAndID(ctx, caller.UserID, appointmentID)
	if err != nil {
		if storage.IsNotFound(err) {
			return newError(KindNotFound, "appointment not found")
		}
		return err
	}
	if !appt.SlotStart.After(s.now()) {
		return newError(KindInvalidState, msgCancelCompleted)
	}

	if err := s.store.SoftDelete(ctx, appt.ID); err != nil {
		if storage.IsNotFound(err) {
			return newError(KindNotFound, "appointment not found")
		}
		return err
	}
	return nil
}

// AdminCreate books an appointment on behalf of any member.
func (s *Service) AdminCreate(ctx context.Context, caller Caller, userID string, sel StaffSelection, raw time.Time) (string, error) {
	if err := requireRole(caller, RoleAdmin); err != nil {
		return "", err
	}

	role, staffID, err := sel.resolve()
	if err != nil {
		return "", err
	}
	slotStart, err := s.norm.Normalize(raw)
	if err != nil {
		return "", err
	}

	if err := s.checkSubjects(ctx, userID, role, staffID); err != nil {
		return "", err
	}
	if err := s.checkAvailability(ctx, userID, role, staffID, slotStart, ""); err != nil {
		return "", err
	}

	appt := &model.Appointment{
		UserID:    userID,
		SlotStart: slotStart,
		SlotDay:   s.norm.DayOf(slotStart),
	}
	appt.SetStaff(role, staffID)

	if err := s.store.Create(ctx, appt); err != nil {
		return "", conflictOrFault(err)
	}
	return appt.ID, nil
}

// AdminUpdate reschedules and/or reassigns an existing appointment. The
// availability checks exclude the appointment itself so it never conflicts
// with its own slot.
func (s *Service) AdminUpdate(ctx context.Context, caller Caller, appointmentID string, sel StaffSelection, raw time.Time) error {
	if err := requireRole(caller, RoleAdmin); err != nil {
		return err
	}

	appt, err := s.store.GetByID(ctx, appointmentID)
	if err != nil {
		if storage.IsNotFound(err) {
			return newError(KindNotFound, "appointment not found")
		}
		return err
	}

	role, staffID, err := sel.resolve()
	if err != nil {
		return err
	}
	slotStart, err := s.norm.Normalize(raw)
	if err != nil {
		return err
	}

	exists, err := s.dir.StaffExists(ctx, role, staffID)
	if err != nil {
		return err
	}
	if !exists {
		return newError(KindNotFound, string(role)+" not found")
	}
	if err := s.checkAvailability(ctx, appt.UserID, role, staffID, slotStart, appt.ID); err != nil {
		return err
	}

	appt.SlotStart = slotStart
	appt.SlotDay = s.norm.DayOf(slotStart)
	appt.SetStaff(role, staffID)

	if err := s.store.Update(ctx, &appt); err != nil {
		if storage.IsNotFound(err) {
			return newError(KindNotFound, "appointment not found")
		}
		return conflictOrFault(err)
	}
	return nil
}

// AdminDelete soft-deletes any appointment by id.
func (s *Service) AdminDelete(ctx context.Context, caller Caller, appointmentID string) error {
	if err := requireRole(caller, RoleAdmin); err != nil {
		return err
	}
	if err := s.store.SoftDelete(ctx, appointmentID); err != nil {
		if storage.IsNotFound(err) {
			return newError(KindNotFound, "appointment not found")
		}
		return err
	}
	return nil
}

// ListMine returns the caller's upcoming appointments.
func (s *Service) ListMine(ctx context.Context, caller Caller) ([]model.Appointment, error) {
	if err := requireRole(caller, RoleMember); err != nil {
		return nil, err
	}
	return s.store.ListUpcomingByUser(ctx, caller.UserID, s.now())
}

// AdminListByDay returns every visible appointment on a facility-local day.
func (s *Service) AdminListByDay(ctx context.Context, caller Caller, day time.Time) ([]model.Appointment, error) {
	if err := requireRole(caller, RoleAdmin); err != nil {
		return nil, err
	}
	// The day is a civil date; interpret it in the facility time zone.
	y, m, d := day.Date()
	return s.store.ListByDay(ctx, time.Date(y, m, d, 0, 0, 0, 0, s.norm.Location()))
}

// FreeSlots returns the bookable hours a staff member still has on a
// facility-local day. Any authenticated caller may ask.
func (s *Service) FreeSlots(ctx context.Context, caller Caller, role model.StaffRole, staffID string, day time.Time) ([]time.Time, error) {
	if !caller.Authenticated {
		return nil, newError(KindUnauthorized, msgNotYourRole)
	}
	exists, err := s.dir.StaffExists(ctx, role, staffID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, newError(KindNotFound, string(role)+" not found")
	}

	y, m, d := day.Date()
	localDay := time.Date(y, m, d, 0, 0, 0, 0, s.norm.Location())
	busy, err := s.store.ListStaffSlotStarts(ctx, role, staffID, localDay)
	if err != nil {
		return nil, err
	}
	return availability.FreeHours(localDay, openingHour, closingHour, busy, s.now().In(s.norm.Location())), nil
}

// checkSubjects verifies the admin-path member and staff references resolve.
func (s *Service) checkSubjects(ctx context.Context, userID string, role model.StaffRole, staffID string) error {
	userOK, err := s.dir.UserExists(ctx, userID)
	if err != nil {
		return err
	}
	if !userOK {
		return newError(KindNotFound, "member not found")
	}
	staffOK, err := s.dir.StaffExists(ctx, role, staffID)
	if err != nil {
		return err
	}
	if !staffOK {
		return newError(KindNotFound, string(role)+" not found")
	}
	return nil
}

// checkAvailability runs the advisory pre-checks: member/day first, staff/slot
// second. The order is load-bearing — a request that trips both must report
// the day conflict.
func (s *Service) checkAvailability(ctx context.Context, userID string, role model.StaffRole, staffID string, slotStart time.Time, excludeID string) error {
	dayBusy, err := s.store.UserHasAppointmentOnDay(ctx, userID, s.norm.DayOf(slotStart), excludeID)
	if err != nil {
		return err
	}
	if dayBusy {
		return newError(KindConflict, msgUserDayTaken)
	}
	slotBusy, err := s.store.StaffBusyInSlot(ctx, role, staffID, slotStart, excludeID)
	if err != nil {
		return err
	}
	if slotBusy {
		return newError(KindConflict, msgStaffSlotTaken)
	}
	return nil
}

// conflictOrFault translates a storage-level uniqueness rejection into the
// same Conflict the advisory check would have produced. Anything else is a
// real fault and passes through untouched.
func conflictOrFault(err error) error {
	switch {
	case errors.Is(err, storage.ErrUserDayTaken):
		return newError(KindConflict, msgUserDayTaken)
	case errors.Is(err, storage.ErrStaffSlotTaken):
		return newError(KindConflict, msgStaffSlotTaken)
	default:
		return err
	}
}
