// ABOUTME: Workout model for a member's session on one piece of equipment.
// ABOUTME: Workouts are cascade-deleted with their member.
package models

// Workout is one logged exercise session.
type Workout struct {
	ID          string  `json:"id" yaml:"id"`
	MemberID    string  `json:"member_id" yaml:"member_id" validate:"required"`
	EquipmentID string  `json:"equipment_id" yaml:"equipment_id" validate:"required"`
	Date        Date    `json:"date" yaml:"date"`
	Sets        int     `json:"sets" yaml:"sets" validate:"gte=1"`
	Reps        int     `json:"reps" yaml:"reps" validate:"gte=1"`
	Weight      float64 `json:"weight" yaml:"weight" validate:"gte=0"`
	Duration    int     `json:"duration" yaml:"duration" validate:"gte=1"` // minutes
}

// WorkoutInput is the submitted form for a new workout.
type WorkoutInput struct {
	MemberID    string  `json:"member_id,omitempty" validate:"required"`
	EquipmentID string  `json:"equipment_id" validate:"required"`
	Date        string  `json:"date" validate:"required,datetime=2006-01-02"`
	Sets        int     `json:"sets" validate:"gte=1"`
	Reps        int     `json:"reps" validate:"gte=1"`
	Weight      float64 `json:"weight" validate:"gte=0"`
	Duration    int     `json:"duration" validate:"gte=1"`
}

// Workout builds a record from a validated form.
func (in WorkoutInput) Workout() (*Workout, error) {
	day, err := ParseDate(in.Date)
	if err != nil {
		return nil, err
	}
	return &Workout{
		MemberID:    in.MemberID,
		EquipmentID: in.EquipmentID,
		Date:        day,
		Sets:        in.Sets,
		Reps:        in.Reps,
		Weight:      in.Weight,
		Duration:    in.Duration,
	}, nil
}

// GetID returns the record id, or "" for a nil Workout.
func (w *Workout) GetID() string {
	if w == nil {
		return ""
	}
	return w.ID
}
