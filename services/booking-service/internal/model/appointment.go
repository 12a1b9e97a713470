package model

import "time"

// StaffRole distinguishes the two kinds of bookable staff.
type StaffRole string

const (
	RoleTrainer      StaffRole = "trainer"
	RoleNutritionist StaffRole = "nutritionist"
)

// Appointment is a one-hour session [SlotStart, SlotStart+1h) between a gym
// member and exactly one staff member. Exactly one of TrainerID/NutritionistID
// is non-nil; the database enforces this with a CHECK constraint.
type Appointment struct {
	ID             string
	UserID         string
	TrainerID      *string
	NutritionistID *string
	SlotStart      time.Time
	// SlotDay is the facility-local calendar date of SlotStart, materialized
	// so the member/day uniqueness index stays expression-free.
	SlotDay   time.Time
	CreatedAt time.Time
	IsDeleted bool
}

// Staff returns the staff kind and id of the appointment's single staff member.
func (a *Appointment) Staff() (StaffRole, string) {
	if a.TrainerID != nil {
		return RoleTrainer, *a.TrainerID
	}
	if a.NutritionistID != nil {
		return RoleNutritionist, *a.NutritionistID
	}
	return "", ""
}

// SetStaff assigns the staff reference, clearing the other kind.
func (a *Appointment) SetStaff(role StaffRole, id string) {
	switch role {
	case RoleTrainer:
		a.TrainerID = &id
		a.NutritionistID = nil
	case RoleNutritionist:
		a.NutritionistID = &id
		a.TrainerID = nil
	}
}
