// ABOUTME: Equipment model and its condition enum.
// ABOUTME: Equipment is referenced by workouts and cannot be deleted while in use.
package models

// Condition is the state of a piece of equipment.
type Condition string

const (
	ConditionGood Condition = "Good"
	ConditionFair Condition = "Fair"
	ConditionPoor Condition = "Poor"
)

// AllConditions lists the conditions in display order.
var AllConditions = []Condition{ConditionGood, ConditionFair, ConditionPoor}

// Equipment is a stock item in the gym.
type Equipment struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name" yaml:"name" validate:"required"`
	Type      string    `json:"type" yaml:"type"`
	Condition Condition `json:"condition" yaml:"condition" validate:"oneof=Good Fair Poor"`
	Quantity  int       `json:"quantity" yaml:"quantity" validate:"gte=0"`
}

// EquipmentInput is the submitted form for new equipment.
type EquipmentInput struct {
	Name      string `json:"name" validate:"required"`
	Type      string `json:"type" validate:"required"`
	Condition string `json:"condition" validate:"required,oneof=Good Fair Poor"`
	Quantity  int    `json:"quantity" validate:"gte=1"`
}

// Equipment builds a record from a validated form.
func (in EquipmentInput) Equipment() *Equipment {
	return &Equipment{
		Name:      in.Name,
		Type:      in.Type,
		Condition: Condition(in.Condition),
		Quantity:  in.Quantity,
	}
}

// GetID returns the record id, or "" for a nil Equipment.
func (e *Equipment) GetID() string {
	if e == nil {
		return ""
	}
	return e.ID
}
