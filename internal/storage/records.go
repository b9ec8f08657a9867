// ABOUTME: Insert, lookup and delete operations for the five collections.
// ABOUTME: Integrity rules and the member cascade run in the mutation's transaction.
package storage

import (
	"fmt"

	"github.com/dgraph-io/badger/v3"
	"github.com/harperreed/bbg/internal/models"
	"github.com/sirupsen/logrus"
)

// Snapshot returns every collection read in one transaction.
func (s *Store) Snapshot() (*models.Collections, error) {
	var c models.Collections
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		if c.Captains, err = listKind[models.Captain](txn, models.KindCaptain); err != nil {
			return err
		}
		if c.Members, err = listKind[models.Member](txn, models.KindMember); err != nil {
			return err
		}
		if c.Equipment, err = listKind[models.Equipment](txn, models.KindEquipment); err != nil {
			return err
		}
		if c.Workouts, err = listKind[models.Workout](txn, models.KindWorkout); err != nil {
			return err
		}
		c.Payments, err = listKind[models.Payment](txn, models.KindPayment)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	return &c, nil
}

// AddCaptain stores a new captain, assigning an id if it has none.
func (s *Store) AddCaptain(c *models.Captain) error {
	return s.update(func(txn *badger.Txn) error {
		return s.insertCaptain(txn, c)
	})
}

func (s *Store) insertCaptain(txn *badger.Txn, c *models.Captain) error {
	if c.ID == "" {
		c.ID = newID(models.KindCaptain)
	}
	return s.put(txn, models.KindCaptain, c.ID, c)
}

// GetCaptain retrieves a captain by id or id prefix.
func (s *Store) GetCaptain(idOrPrefix string) (*models.Captain, error) {
	var c *models.Captain
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		c, _, err = lookup[models.Captain](txn, models.KindCaptain, idOrPrefix)
		return err
	})
	return c, err
}

// DeleteCaptain removes a captain unless a member is still assigned to it.
func (s *Store) DeleteCaptain(idOrPrefix string) (*models.Captain, error) {
	var c *models.Captain
	err := s.update(func(txn *badger.Txn) error {
		var key []byte
		var err error
		c, key, err = lookup[models.Captain](txn, models.KindCaptain, idOrPrefix)
		if err != nil {
			return err
		}
		members, err := listKind[models.Member](txn, models.KindMember)
		if err != nil {
			return err
		}
		if n := BlockingMembers(members, c.ID); n > 0 {
			return &ReferenceError{Kind: models.KindCaptain, ID: c.ID, Dependent: models.KindMember, Count: n}
		}
		return txn.Delete(key)
	})
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"kind": models.KindCaptain, "id": c.ID}).Info("deleted")
	return c, nil
}

// AddMember stores a new member. Its captain must exist.
func (s *Store) AddMember(m *models.Member) error {
	return s.update(func(txn *badger.Txn) error {
		return s.insertMember(txn, m)
	})
}

func (s *Store) insertMember(txn *badger.Txn, m *models.Member) error {
	ok, err := exists(txn, models.KindCaptain, m.CaptainID)
	if err != nil {
		return err
	}
	if !ok {
		return &MissingRefError{Kind: models.KindMember, Field: "captain", RefID: m.CaptainID}
	}
	if m.ID == "" {
		m.ID = newID(models.KindMember)
	}
	return s.put(txn, models.KindMember, m.ID, m)
}

// GetMember retrieves a member by id or id prefix.
func (s *Store) GetMember(idOrPrefix string) (*models.Member, error) {
	var m *models.Member
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		m, _, err = lookup[models.Member](txn, models.KindMember, idOrPrefix)
		return err
	})
	return m, err
}

// DeleteMember removes a member and, in the same transaction, every workout
// that references it. It returns the removed workouts. Payments are kept.
func (s *Store) DeleteMember(idOrPrefix string) (*models.Member, []models.Workout, error) {
	var (
		m       *models.Member
		removed []models.Workout
	)
	err := s.update(func(txn *badger.Txn) error {
		var key []byte
		var err error
		m, key, err = lookup[models.Member](txn, models.KindMember, idOrPrefix)
		if err != nil {
			return err
		}
		workouts, err := listKind[models.Workout](txn, models.KindWorkout)
		if err != nil {
			return err
		}
		removed = CascadeWorkouts(workouts, m.ID)
		for _, w := range removed {
			if err := txn.Delete(recordKey(models.KindWorkout, w.ID)); err != nil {
				return fmt.Errorf("cascade workout %s: %w", w.ID, err)
			}
		}
		return txn.Delete(key)
	})
	if err != nil {
		return nil, nil, err
	}
	s.log.WithFields(logrus.Fields{
		"kind":     models.KindMember,
		"id":       m.ID,
		"workouts": len(removed),
	}).Info("deleted with cascade")
	return m, removed, nil
}

// AddEquipment stores new equipment.
func (s *Store) AddEquipment(e *models.Equipment) error {
	return s.update(func(txn *badger.Txn) error {
		return s.insertEquipment(txn, e)
	})
}

func (s *Store) insertEquipment(txn *badger.Txn, e *models.Equipment) error {
	if e.Quantity < 0 {
		return fmt.Errorf("equipment quantity %d is negative", e.Quantity)
	}
	if e.ID == "" {
		e.ID = newID(models.KindEquipment)
	}
	return s.put(txn, models.KindEquipment, e.ID, e)
}

// GetEquipment retrieves equipment by id or id prefix.
func (s *Store) GetEquipment(idOrPrefix string) (*models.Equipment, error) {
	var e *models.Equipment
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		e, _, err = lookup[models.Equipment](txn, models.KindEquipment, idOrPrefix)
		return err
	})
	return e, err
}

// DeleteEquipment removes equipment unless a workout references it.
func (s *Store) DeleteEquipment(idOrPrefix string) (*models.Equipment, error) {
	var e *models.Equipment
	err := s.update(func(txn *badger.Txn) error {
		var key []byte
		var err error
		e, key, err = lookup[models.Equipment](txn, models.KindEquipment, idOrPrefix)
		if err != nil {
			return err
		}
		workouts, err := listKind[models.Workout](txn, models.KindWorkout)
		if err != nil {
			return err
		}
		if n := ReferencingWorkouts(workouts, e.ID); n > 0 {
			return &ReferenceError{Kind: models.KindEquipment, ID: e.ID, Dependent: models.KindWorkout, Count: n}
		}
		return txn.Delete(key)
	})
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"kind": models.KindEquipment, "id": e.ID}).Info("deleted")
	return e, nil
}

// AddWorkout stores a new workout. Its member and equipment must exist.
func (s *Store) AddWorkout(w *models.Workout) error {
	return s.update(func(txn *badger.Txn) error {
		return s.insertWorkout(txn, w)
	})
}

func (s *Store) insertWorkout(txn *badger.Txn, w *models.Workout) error {
	ok, err := exists(txn, models.KindMember, w.MemberID)
	if err != nil {
		return err
	}
	if !ok {
		return &MissingRefError{Kind: models.KindWorkout, Field: "member", RefID: w.MemberID}
	}
	ok, err = exists(txn, models.KindEquipment, w.EquipmentID)
	if err != nil {
		return err
	}
	if !ok {
		return &MissingRefError{Kind: models.KindWorkout, Field: "equipment", RefID: w.EquipmentID}
	}
	if w.ID == "" {
		w.ID = newID(models.KindWorkout)
	}
	return s.put(txn, models.KindWorkout, w.ID, w)
}

// GetWorkout retrieves a workout by id or id prefix.
func (s *Store) GetWorkout(idOrPrefix string) (*models.Workout, error) {
	var w *models.Workout
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		w, _, err = lookup[models.Workout](txn, models.KindWorkout, idOrPrefix)
		return err
	})
	return w, err
}

// DeleteWorkout removes a single workout.
func (s *Store) DeleteWorkout(idOrPrefix string) (*models.Workout, error) {
	var w *models.Workout
	err := s.update(func(txn *badger.Txn) error {
		var key []byte
		var err error
		w, key, err = lookup[models.Workout](txn, models.KindWorkout, idOrPrefix)
		if err != nil {
			return err
		}
		return txn.Delete(key)
	})
	if err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"kind": models.KindWorkout, "id": w.ID}).Info("deleted")
	return w, nil
}

// AddPayment stores a new payment. Its member must exist.
func (s *Store) AddPayment(p *models.Payment) error {
	return s.update(func(txn *badger.Txn) error {
		return s.insertPayment(txn, p)
	})
}

func (s *Store) insertPayment(txn *badger.Txn, p *models.Payment) error {
	ok, err := exists(txn, models.KindMember, p.MemberID)
	if err != nil {
		return err
	}
	if !ok {
		return &MissingRefError{Kind: models.KindPayment, Field: "member", RefID: p.MemberID}
	}
	if p.ID == "" {
		p.ID = newID(models.KindPayment)
	}
	return s.put(txn, models.KindPayment, p.ID, p)
}

// GetPayment retrieves a payment by id or id prefix.
func (s *Store) GetPayment(idOrPrefix string) (*models.Payment, error) {
	var p *models.Payment
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		p, _, err = lookup[models.Payment](txn, models.KindPayment, idOrPrefix)
		return err
	})
	return p, err
}

// Load checks a dataset, then inserts it in dependency order within one
// transaction. Either every record is stored or none is.
func (s *Store) Load(data *models.Collections) error {
	if err := CheckRecords(data); err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}
	err := s.update(func(txn *badger.Txn) error {
		for i := range data.Captains {
			if err := s.insertCaptain(txn, &data.Captains[i]); err != nil {
				return err
			}
		}
		for i := range data.Members {
			if err := s.insertMember(txn, &data.Members[i]); err != nil {
				return err
			}
		}
		for i := range data.Equipment {
			if err := s.insertEquipment(txn, &data.Equipment[i]); err != nil {
				return err
			}
		}
		for i := range data.Workouts {
			if err := s.insertWorkout(txn, &data.Workouts[i]); err != nil {
				return err
			}
		}
		for i := range data.Payments {
			if err := s.insertPayment(txn, &data.Payments[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}
	return nil
}
