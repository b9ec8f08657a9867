// ABOUTME: Demo dataset and seed-file loading for a fresh in-memory store.
// ABOUTME: Seed files are YAML or JSON in the export layout.
package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/harperreed/bbg/internal/models"
	"gopkg.in/yaml.v3"
)

// DemoData returns the built-in sample gym: three captains, two members,
// three pieces of equipment, four workouts and two payments.
func DemoData() *models.Collections {
	return &models.Collections{
		Captains: []models.Captain{
			{ID: "c1", Name: "John Doe", Specialization: "Strength Training", Experience: "5 years"},
			{ID: "c2", Name: "Sarah Smith", Specialization: "Cardio & HIIT", Experience: "3 years"},
			{ID: "c3", Name: "Mike Johnson", Specialization: "Rehabilitation", Experience: "8 years"},
		},
		Members: []models.Member{
			{ID: "m1", Name: "Alice Brown", Email: "alice@example.com", JoinDate: models.MustDate("2024-01-15"), CaptainID: "c1"},
			{ID: "m2", Name: "Bob Wilson", Email: "bob@example.com", JoinDate: models.MustDate("2024-02-01"), CaptainID: "c2"},
		},
		Equipment: []models.Equipment{
			{ID: "e1", Name: "Treadmill 3000", Type: "Cardio", Condition: models.ConditionGood, Quantity: 5},
			{ID: "e2", Name: "Dumbbell Set", Type: "Weights", Condition: models.ConditionGood, Quantity: 10},
			{ID: "e3", Name: "Leg Press Machine", Type: "Machine", Condition: models.ConditionFair, Quantity: 2},
		},
		Workouts: []models.Workout{
			{ID: "w1", MemberID: "m1", EquipmentID: "e2", Date: models.MustDate("2024-03-10"), Sets: 3, Reps: 12, Weight: 15, Duration: 45},
			{ID: "w2", MemberID: "m2", EquipmentID: "e1", Date: models.MustDate("2024-03-11"), Sets: 1, Reps: 1, Weight: 0, Duration: 30},
			{ID: "w3", MemberID: "m1", EquipmentID: "e1", Date: models.MustDate("2024-03-12"), Sets: 1, Reps: 20, Weight: 0, Duration: 20},
			{ID: "w4", MemberID: "m2", EquipmentID: "e3", Date: models.MustDate("2024-03-12"), Sets: 4, Reps: 10, Weight: 120, Duration: 50},
		},
		Payments: []models.Payment{
			{ID: "p1", MemberID: "m1", Amount: 50, StartDate: models.MustDate("2024-03-01"), EndDate: models.MustDate("2024-04-01"), PlanType: models.PlanMonthly, Status: models.StatusActive},
			{ID: "p2", MemberID: "m2", Amount: 500, StartDate: models.MustDate("2024-01-01"), EndDate: models.MustDate("2025-01-01"), PlanType: models.PlanYearly, Status: models.StatusActive},
		},
	}
}

// ReadSeedFile decodes a dataset from a YAML or JSON file.
// A file with an export header is accepted as well as a bare dataset.
func ReadSeedFile(path string) (*models.Collections, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return DecodeSeed(data)
}

// DecodeSeed decodes a dataset from YAML or JSON bytes.
func DecodeSeed(data []byte) (*models.Collections, error) {
	var export ExportData
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '{' {
		dec := json.NewDecoder(bytes.NewReader(trimmed))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&export); err != nil {
			return nil, fmt.Errorf("decode seed: %w", err)
		}
		return &export.Collections, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&export); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}
	return &export.Collections, nil
}
