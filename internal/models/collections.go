// ABOUTME: Collections groups the five record sets held by the dashboard.
// ABOUTME: Used for store snapshots, visible views, seed files and exports.
package models

// Collections is a point-in-time copy of every record set.
type Collections struct {
	Captains  []Captain   `json:"captains" yaml:"captains"`
	Members   []Member    `json:"members" yaml:"members"`
	Equipment []Equipment `json:"equipment" yaml:"equipment"`
	Workouts  []Workout   `json:"workouts" yaml:"workouts"`
	Payments  []Payment   `json:"payments" yaml:"payments"`
}

// FindCaptain returns the captain with the given id.
func (c *Collections) FindCaptain(id string) (Captain, bool) {
	for _, x := range c.Captains {
		if x.ID == id {
			return x, true
		}
	}
	return Captain{}, false
}

// FindMember returns the member with the given id.
func (c *Collections) FindMember(id string) (Member, bool) {
	for _, x := range c.Members {
		if x.ID == id {
			return x, true
		}
	}
	return Member{}, false
}

// FindEquipment returns the equipment with the given id.
func (c *Collections) FindEquipment(id string) (Equipment, bool) {
	for _, x := range c.Equipment {
		if x.ID == id {
			return x, true
		}
	}
	return Equipment{}, false
}

// FindWorkout returns the workout with the given id.
func (c *Collections) FindWorkout(id string) (Workout, bool) {
	for _, x := range c.Workouts {
		if x.ID == id {
			return x, true
		}
	}
	return Workout{}, false
}
