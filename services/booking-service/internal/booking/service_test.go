package booking

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/gymslot/gymslot/services/booking-service/internal/model"
	"github.com/gymslot/gymslot/services/booking-service/internal/storage"
)

// fakeStore keeps appointments in memory and enforces the same uniqueness
// rules the partial indexes do, atomically under a mutex, so the concurrency
// tests exercise real lost-race behavior.
type fakeStore struct {
	mu        sync.Mutex
	appts     map[string]model.Appointment
	createErr error // when set, Create fails with this before any check
}

func newFakeStore() *fakeStore {
	return &fakeStore{appts: make(map[string]model.Appointment)}
}

func (f *fakeStore) conflictLocked(appt *model.Appointment, excludeID string) error {
	role, staffID := appt.Staff()
	for _, other := range f.appts {
		if other.IsDeleted || other.ID == excludeID {
			continue
		}
		if other.UserID == appt.UserID && other.SlotDay.Equal(appt.SlotDay) {
			return storage.ErrUserDayTaken
		}
		oRole, oStaff := other.Staff()
		if oRole == role && oStaff == staffID && other.SlotStart.Equal(appt.SlotStart) {
			return storage.ErrStaffSlotTaken
		}
	}
	return nil
}

func (f *fakeStore) Create(ctx context.Context, appt *model.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	if err := f.conflictLocked(appt, ""); err != nil {
		return err
	}
	if appt.ID == "" {
		appt.ID = uuid.NewString()
	}
	appt.CreatedAt = time.Now()
	f.appts[appt.ID] = *appt
	return nil
}

func (f *fakeStore) Update(ctx context.Context, appt *model.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cur, ok := f.appts[appt.ID]
	if !ok || cur.IsDeleted {
		return storage.ErrNotFound
	}
	if err := f.conflictLocked(appt, appt.ID); err != nil {
		return err
	}
	f.appts[appt.ID] = *appt
	return nil
}

func (f *fakeStore) SoftDelete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	appt, ok := f.appts[id]
	if !ok || appt.IsDeleted {
		return storage.ErrNotFound
	}
	appt.IsDeleted = true
	f.appts[id] = appt
	return nil
}

func (f *fakeStore) GetByID(ctx context.Context, id string) (model.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	appt, ok := f.appts[id]
	if !ok || appt.IsDeleted {
		return model.Appointment{}, storage.ErrNotFound
	}
	return appt, nil
}

func (f *fakeStore) GetByUserAndID(ctx context.Context, userID, id string) (model.Appointment, error) {
	appt, err := f.GetByID(ctx, id)
	if err != nil || appt.UserID != userID {
		return model.Appointment{}, storage.ErrNotFound
	}
	return appt, nil
}

func (f *fakeStore) UserHasAppointmentOnDay(ctx context.Context, userID string, day time.Time, excludeID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.appts {
		if !a.IsDeleted && a.ID != excludeID && a.UserID == userID && a.SlotDay.Equal(day) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) StaffBusyInSlot(ctx context.Context, role model.StaffRole, staffID string, slotStart time.Time, excludeID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.appts {
		aRole, aStaff := a.Staff()
		if !a.IsDeleted && a.ID != excludeID && aRole == role && aStaff == staffID && a.SlotStart.Equal(slotStart) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) ListUpcomingByUser(ctx context.Context, userID string, from time.Time) ([]model.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Appointment
	for _, a := range f.appts {
		if !a.IsDeleted && a.UserID == userID && a.SlotStart.After(from) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeStore) ListByDay(ctx context.Context, day time.Time) ([]model.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Appointment
	for _, a := range f.appts {
		if !a.IsDeleted && a.SlotDay.Equal(day) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeStore) ListStaffSlotStarts(ctx context.Context, role model.StaffRole, staffID string, day time.Time) ([]time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []time.Time
	for _, a := range f.appts {
		aRole, aStaff := a.Staff()
		if !a.IsDeleted && aRole == role && aStaff == staffID && a.SlotDay.Equal(day) {
			out = append(out, a.SlotStart)
		}
	}
	return out, nil
}

type fakeDirectory struct {
	staff map[model.StaffRole]map[string]string // role -> id -> name
	users map[string]bool
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{
		staff: map[model.StaffRole]map[string]string{
			model.RoleTrainer:      {"t1": "Taylor Reed", "t2": "Sam Okafor"},
			model.RoleNutritionist: {"n1": "Dana Ruiz"},
		},
		users: map[string]bool{"u1": true, "u2": true, "u3": true},
	}
}

func (d *fakeDirectory) StaffExists(ctx context.Context, role model.StaffRole, id string) (bool, error) {
	_, ok := d.staff[role][id]
	return ok, nil
}

func (d *fakeDirectory) StaffName(ctx context.Context, role model.StaffRole, id string) (string, error) {
	return d.staff[role][id], nil
}

func (d *fakeDirectory) UserExists(ctx context.Context, id string) (bool, error) {
	return d.users[id], nil
}

func newTestService(t *testing.T) (*Service, *fakeStore) {
	t.Helper()
	store := newFakeStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	now := func() time.Time { return testNow }
	svc := NewService(store, newFakeDirectory(), NewNormalizer(time.UTC, now), logger, now)
	return svc, store
}

func slot(day, hour int) time.Time {
	return time.Date(2026, 9, day, hour, 0, 0, 0, time.UTC)
}

var (
	member  = Caller{UserID: "u1", Role: RoleMember, Authenticated: true}
	member2 = Caller{UserID: "u2", Role: RoleMember, Authenticated: true}
	admin   = Caller{UserID: "staff-admin", Role: RoleAdmin, Authenticated: true}
)

func TestBookTrainer_Success(t *testing.T) {
	svc, store := newTestService(t)

	conf, err := svc.BookTrainer(context.Background(), member, "t1", slot(15, 10))
	if err != nil {
		t.Fatalf("BookTrainer failed: %v", err)
	}
	if conf.AppointmentID == "" {
		t.Fatal("confirmation missing appointment id")
	}
	if conf.StaffName != "Taylor Reed" {
		t.Fatalf("unexpected staff name %q", conf.StaffName)
	}
	if !conf.SlotStart.Equal(slot(15, 10)) {
		t.Fatalf("unexpected slot start %s", conf.SlotStart)
	}

	appt, err := store.GetByID(context.Background(), conf.AppointmentID)
	if err != nil {
		t.Fatalf("stored appointment missing: %v", err)
	}
	if role, id := appt.Staff(); role != model.RoleTrainer || id != "t1" {
		t.Fatalf("stored wrong staff: %s %s", role, id)
	}
	if !appt.SlotDay.Equal(slot(15, 0)) {
		t.Fatalf("stored wrong slot day %s", appt.SlotDay)
	}
}

func TestBookTrainer_StaffSlotConflict(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.BookTrainer(ctx, member, "t1", slot(15, 10)); err != nil {
		t.Fatalf("seed booking failed: %v", err)
	}
	_, err := svc.BookTrainer(ctx, member2, "t1", slot(15, 10))
	if KindOf(err) != KindConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
	if err.Error() != msgStaffSlotTaken {
		t.Fatalf("expected staff slot message, got %q", err.Error())
	}
}

func TestBook_UserDayConflict(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.BookTrainer(ctx, member, "t1", slot(15, 10)); err != nil {
		t.Fatalf("seed booking failed: %v", err)
	}
	// Different staff kind, different hour, same facility-local day.
	_, err := svc.BookNutritionist(ctx, member, "n1", slot(15, 14))
	if KindOf(err) != KindConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
	if err.Error() != msgUserDayTaken {
		t.Fatalf("expected user day message, got %q", err.Error())
	}
}

func TestBook_DayConflictReportedBeforeSlotConflict(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.BookTrainer(ctx, member, "t1", slot(15, 10)); err != nil {
		t.Fatalf("seed booking failed: %v", err)
	}
	// Rebooking the identical slot trips both rules; the day conflict wins.
	_, err := svc.BookTrainer(ctx, member, "t1", slot(15, 10))
	if KindOf(err) != KindConflict || err.Error() != msgUserDayTaken {
		t.Fatalf("expected user day conflict, got %v", err)
	}
}

func TestBook_StaffNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.BookTrainer(context.Background(), member, "ghost", slot(15, 10))
	if KindOf(err) != KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestBook_RequiresMemberRole(t *testing.T) {
	svc, _ := newTestService(t)

	for _, c := range []Caller{admin, {UserID: "u1", Role: RoleMember}} {
		if _, err := svc.BookTrainer(context.Background(), c, "t1", slot(15, 10)); KindOf(err) != KindUnauthorized {
			t.Fatalf("caller %+v: expected unauthorized, got %v", c, err)
		}
	}
}

func TestBook_RejectsOffGridTime(t *testing.T) {
	svc, store := newTestService(t)

	_, err := svc.BookTrainer(context.Background(), member, "t1", time.Date(2026, 9, 15, 10, 30, 0, 0, time.UTC))
	if KindOf(err) != KindNotOnTheHour {
		t.Fatalf("expected not-on-the-hour, got %v", err)
	}
	if len(store.appts) != 0 {
		t.Fatal("rejected booking must not be stored")
	}
}

func TestBook_StoreConflictTranslated(t *testing.T) {
	svc, store := newTestService(t)
	store.createErr = storage.ErrStaffSlotTaken

	_, err := svc.BookTrainer(context.Background(), member, "t1", slot(15, 10))
	if KindOf(err) != KindConflict || err.Error() != msgStaffSlotTaken {
		t.Fatalf("expected translated slot conflict, got %v", err)
	}
}

func TestBook_ConcurrentSameSlot(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for _, c := range []Caller{member, member2} {
		wg.Add(1)
		go func(c Caller) {
			defer wg.Done()
			_, err := svc.BookTrainer(ctx, c, "t1", slot(15, 10))
			errs <- err
		}(c)
	}
	wg.Wait()
	close(errs)

	var ok, conflicts int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case KindOf(err) == KindConflict:
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if ok != 1 || conflicts != 1 {
		t.Fatalf("expected exactly one winner, got %d successes and %d conflicts", ok, conflicts)
	}
}

func TestCancelMine(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	conf, err := svc.BookTrainer(ctx, member, "t1", slot(15, 10))
	if err != nil {
		t.Fatalf("seed booking failed: %v", err)
	}

	// Someone else's appointment looks like it does not exist.
	if err := svc.CancelMine(ctx, member2, conf.AppointmentID); KindOf(err) != KindNotFound {
		t.Fatalf("expected not found for foreign appointment, got %v", err)
	}

	if err := svc.CancelMine(ctx, member, conf.AppointmentID); err != nil {
		t.Fatalf("CancelMine failed: %v", err)
	}
	if _, err := store.GetByID(ctx, conf.AppointmentID); !storage.IsNotFound(err) {
		t.Fatal("cancelled appointment still visible")
	}

	// The slot is free again for everyone.
	if _, err := svc.BookTrainer(ctx, member2, "t1", slot(15, 10)); err != nil {
		t.Fatalf("rebooking freed slot failed: %v", err)
	}
}

func TestCancelMine_CompletedAppointment(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	past := model.Appointment{ID: "a-past", UserID: "u1", SlotStart: slot(10, 10), SlotDay: slot(10, 0)}
	past.SetStaff(model.RoleTrainer, "t1")
	store.appts[past.ID] = past

	if err := svc.CancelMine(ctx, member, "a-past"); KindOf(err) != KindInvalidState {
		t.Fatalf("expected invalid state, got %v", err)
	}
	if _, err := store.GetByID(ctx, "a-past"); err != nil {
		t.Fatal("completed appointment must remain on record")
	}
}

func TestAdminCreate_StaffSelection(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	t1, n1 := "t1", "n1"

	tests := []struct {
		name string
		sel  StaffSelection
		want string
	}{
		{"neither", StaffSelection{}, msgNeitherStaff},
		{"both", StaffSelection{TrainerID: &t1, NutritionistID: &n1}, msgBothStaff},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.AdminCreate(ctx, admin, "u1", tc.sel, slot(15, 10))
			if KindOf(err) != KindInvalidArgument || err.Error() != tc.want {
				t.Fatalf("expected %q, got %v", tc.want, err)
			}
		})
	}
}

func TestAdminCreate_Success(t *testing.T) {
	svc, store := newTestService(t)
	n1 := "n1"

	id, err := svc.AdminCreate(context.Background(), admin, "u2", StaffSelection{NutritionistID: &n1}, slot(16, 9))
	if err != nil {
		t.Fatalf("AdminCreate failed: %v", err)
	}
	appt, err := store.GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("stored appointment missing: %v", err)
	}
	if appt.UserID != "u2" {
		t.Fatalf("stored wrong user %q", appt.UserID)
	}
}

func TestAdminCreate_UnknownMember(t *testing.T) {
	svc, _ := newTestService(t)
	t1 := "t1"

	_, err := svc.AdminCreate(context.Background(), admin, "ghost", StaffSelection{TrainerID: &t1}, slot(15, 10))
	if KindOf(err) != KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAdminCreate_RequiresAdminRole(t *testing.T) {
	svc, _ := newTestService(t)
	t1 := "t1"

	_, err := svc.AdminCreate(context.Background(), member, "u2", StaffSelection{TrainerID: &t1}, slot(15, 10))
	if KindOf(err) != KindUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestAdminUpdate_ExcludesOwnSlot(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	t1 := "t1"

	conf, err := svc.BookTrainer(ctx, member, "t1", slot(15, 10))
	if err != nil {
		t.Fatalf("seed booking failed: %v", err)
	}
	// Re-confirming the identical slot must not conflict with itself.
	if err := svc.AdminUpdate(ctx, admin, conf.AppointmentID, StaffSelection{TrainerID: &t1}, slot(15, 10)); err != nil {
		t.Fatalf("no-op update failed: %v", err)
	}
}

func TestAdminUpdate_SwitchStaffKind(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	n1 := "n1"

	conf, err := svc.BookTrainer(ctx, member, "t1", slot(15, 10))
	if err != nil {
		t.Fatalf("seed booking failed: %v", err)
	}
	if err := svc.AdminUpdate(ctx, admin, conf.AppointmentID, StaffSelection{NutritionistID: &n1}, slot(15, 10)); err != nil {
		t.Fatalf("AdminUpdate failed: %v", err)
	}
	appt, _ := store.GetByID(ctx, conf.AppointmentID)
	if role, id := appt.Staff(); role != model.RoleNutritionist || id != "n1" {
		t.Fatalf("staff not switched: %s %s", role, id)
	}
	if appt.TrainerID != nil {
		t.Fatal("trainer reference not cleared")
	}

	// The trainer's old slot is free again.
	if _, err := svc.BookTrainer(ctx, member2, "t1", slot(15, 10)); err != nil {
		t.Fatalf("rebooking vacated slot failed: %v", err)
	}
}

func TestAdminUpdate_MissingAppointmentBeatsBadSelection(t *testing.T) {
	svc, _ := newTestService(t)
	t1, n1 := "t1", "n1"

	// Both staff ids set is invalid, but the missing appointment is
	// reported first.
	err := svc.AdminUpdate(context.Background(), admin, "ghost", StaffSelection{TrainerID: &t1, NutritionistID: &n1}, slot(15, 10))
	if KindOf(err) != KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAdminUpdate_TargetSlotConflict(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	t1 := "t1"

	if _, err := svc.BookTrainer(ctx, member, "t1", slot(15, 10)); err != nil {
		t.Fatalf("seed booking failed: %v", err)
	}
	conf, err := svc.BookTrainer(ctx, member2, "t1", slot(16, 10))
	if err != nil {
		t.Fatalf("seed booking failed: %v", err)
	}
	err = svc.AdminUpdate(ctx, admin, conf.AppointmentID, StaffSelection{TrainerID: &t1}, slot(15, 10))
	if KindOf(err) != KindConflict || err.Error() != msgStaffSlotTaken {
		t.Fatalf("expected slot conflict, got %v", err)
	}
}

func TestAdminDelete(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()

	conf, err := svc.BookTrainer(ctx, member, "t1", slot(15, 10))
	if err != nil {
		t.Fatalf("seed booking failed: %v", err)
	}
	if err := svc.AdminDelete(ctx, admin, conf.AppointmentID); err != nil {
		t.Fatalf("AdminDelete failed: %v", err)
	}
	if _, err := store.GetByID(ctx, conf.AppointmentID); !storage.IsNotFound(err) {
		t.Fatal("deleted appointment still visible")
	}
	if err := svc.AdminDelete(ctx, admin, "ghost"); KindOf(err) != KindNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListMine(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.BookTrainer(ctx, member, "t1", slot(15, 10)); err != nil {
		t.Fatalf("seed booking failed: %v", err)
	}
	if _, err := svc.BookTrainer(ctx, member2, "t2", slot(15, 11)); err != nil {
		t.Fatalf("seed booking failed: %v", err)
	}

	mine, err := svc.ListMine(ctx, member)
	if err != nil {
		t.Fatalf("ListMine failed: %v", err)
	}
	if len(mine) != 1 || mine[0].UserID != "u1" {
		t.Fatalf("expected only the caller's appointment, got %+v", mine)
	}
}

func TestFreeSlots(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.BookTrainer(ctx, member, "t1", slot(15, 10)); err != nil {
		t.Fatalf("seed booking failed: %v", err)
	}

	free, err := svc.FreeSlots(ctx, member2, model.RoleTrainer, "t1", slot(15, 0))
	if err != nil {
		t.Fatalf("FreeSlots failed: %v", err)
	}
	if len(free) != 7 {
		t.Fatalf("expected 7 free hours, got %d", len(free))
	}
	for _, h := range free {
		if h.Equal(slot(15, 10)) {
			t.Fatal("booked hour offered as free")
		}
	}

	if _, err := svc.FreeSlots(ctx, Caller{}, model.RoleTrainer, "t1", slot(15, 0)); KindOf(err) != KindUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}
