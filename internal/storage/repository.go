// ABOUTME: Repository interface for the dashboard entity store.
// ABOUTME: Defines insert, lookup, delete and snapshot operations per collection.
package storage

import (
	"github.com/harperreed/bbg/internal/models"
)

// Repository defines the storage interface for dashboard records.
// Records are inserted and deleted, never updated in place.
type Repository interface {
	// Snapshot returns a consistent copy of all five collections.
	Snapshot() (*models.Collections, error)

	// Captain operations
	AddCaptain(c *models.Captain) error
	GetCaptain(idOrPrefix string) (*models.Captain, error)
	DeleteCaptain(idOrPrefix string) (*models.Captain, error)

	// Member operations; DeleteMember cascades to the member's workouts.
	AddMember(m *models.Member) error
	GetMember(idOrPrefix string) (*models.Member, error)
	DeleteMember(idOrPrefix string) (*models.Member, []models.Workout, error)

	// Equipment operations
	AddEquipment(e *models.Equipment) error
	GetEquipment(idOrPrefix string) (*models.Equipment, error)
	DeleteEquipment(idOrPrefix string) (*models.Equipment, error)

	// Workout operations
	AddWorkout(w *models.Workout) error
	GetWorkout(idOrPrefix string) (*models.Workout, error)
	DeleteWorkout(idOrPrefix string) (*models.Workout, error)

	// Payment operations; payments are append-only.
	AddPayment(p *models.Payment) error
	GetPayment(idOrPrefix string) (*models.Payment, error)

	// Load inserts a whole dataset in one transaction, keeping its ids.
	Load(data *models.Collections) error

	// Lifecycle
	Close() error
}
