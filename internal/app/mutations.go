// ABOUTME: Insert and delete operations gated by role permissions and form validation.
// ABOUTME: Order: role table, form validation, record scope, store transaction.
package app

import (
	"github.com/harperreed/bbg/internal/access"
	"github.com/harperreed/bbg/internal/models"
	"github.com/sirupsen/logrus"
)

// prepare checks that the current identity may perform action on kind and
// returns it with its visible view for the record-scoped check.
func (a *App) prepare(action access.Action, kind models.Kind) (*models.Identity, *models.Collections, error) {
	ident, view, err := a.View()
	if err != nil {
		return nil, nil, err
	}
	if !access.Allowed(ident, action, kind) {
		return nil, nil, access.Authorize(ident, view, action, access.Target{Kind: kind})
	}
	return ident, view, nil
}

// done records the outcome of a mutation and logs successes.
func (a *App) done(ident *models.Identity, action access.Action, kind models.Kind, id string, err error) {
	a.metrics.Mutation(string(kind), string(action), outcome(err))
	fields := logrus.Fields{"kind": kind, "action": action}
	if ident != nil {
		fields["role"] = ident.Role
	}
	if err != nil {
		a.log.WithFields(fields).WithError(err).Debug("mutation rejected")
		return
	}
	fields["id"] = id
	a.log.WithFields(fields).Info("mutation applied")
}

// AddCaptain creates a captain. Administrator only.
func (a *App) AddCaptain(in models.CaptainInput) (c *models.Captain, err error) {
	ident, view, err := a.prepare(access.ActionAdd, models.KindCaptain)
	defer func() { a.done(ident, access.ActionAdd, models.KindCaptain, c.GetID(), err) }()
	if err != nil {
		return nil, err
	}
	if err = models.Validate(in); err != nil {
		return nil, err
	}
	if err = access.Authorize(ident, view, access.ActionAdd, access.Target{Kind: models.KindCaptain}); err != nil {
		return nil, err
	}
	c = in.Captain()
	if err = a.store.AddCaptain(c); err != nil {
		return nil, err
	}
	return c, nil
}

// AddMember creates a member. A captain's form defaults to itself as captain.
func (a *App) AddMember(in models.MemberInput) (m *models.Member, err error) {
	ident, view, err := a.prepare(access.ActionAdd, models.KindMember)
	defer func() { a.done(ident, access.ActionAdd, models.KindMember, m.GetID(), err) }()
	if err != nil {
		return nil, err
	}
	if ident.Role == models.RoleCaptain && in.CaptainID == "" {
		in.CaptainID = ident.ID
	}
	if err = models.Validate(in); err != nil {
		return nil, err
	}
	if err = access.Authorize(ident, view, access.ActionAdd, access.Target{Kind: models.KindMember, CaptainID: in.CaptainID}); err != nil {
		return nil, err
	}
	if m, err = in.Member(); err != nil {
		return nil, err
	}
	if err = a.store.AddMember(m); err != nil {
		return nil, err
	}
	return m, nil
}

// AddEquipment creates equipment. Any logged-in role may do this.
func (a *App) AddEquipment(in models.EquipmentInput) (e *models.Equipment, err error) {
	ident, view, err := a.prepare(access.ActionAdd, models.KindEquipment)
	defer func() { a.done(ident, access.ActionAdd, models.KindEquipment, e.GetID(), err) }()
	if err != nil {
		return nil, err
	}
	if err = models.Validate(in); err != nil {
		return nil, err
	}
	if err = access.Authorize(ident, view, access.ActionAdd, access.Target{Kind: models.KindEquipment}); err != nil {
		return nil, err
	}
	e = in.Equipment()
	if err = a.store.AddEquipment(e); err != nil {
		return nil, err
	}
	return e, nil
}

// AddWorkout logs a workout. A member's form defaults to itself as member.
func (a *App) AddWorkout(in models.WorkoutInput) (w *models.Workout, err error) {
	ident, view, err := a.prepare(access.ActionAdd, models.KindWorkout)
	defer func() { a.done(ident, access.ActionAdd, models.KindWorkout, w.GetID(), err) }()
	if err != nil {
		return nil, err
	}
	if ident.Role == models.RoleMember && in.MemberID == "" {
		in.MemberID = ident.ID
	}
	if err = models.Validate(in); err != nil {
		return nil, err
	}
	if err = access.Authorize(ident, view, access.ActionAdd, access.Target{Kind: models.KindWorkout, MemberID: in.MemberID}); err != nil {
		return nil, err
	}
	if w, err = in.Workout(); err != nil {
		return nil, err
	}
	if err = a.store.AddWorkout(w); err != nil {
		return nil, err
	}
	return w, nil
}

// AddPayment records a subscription payment, deriving its end date.
// Administrator only.
func (a *App) AddPayment(in models.PaymentInput) (p *models.Payment, err error) {
	ident, view, err := a.prepare(access.ActionAdd, models.KindPayment)
	defer func() { a.done(ident, access.ActionAdd, models.KindPayment, p.GetID(), err) }()
	if err != nil {
		return nil, err
	}
	if err = models.Validate(in); err != nil {
		return nil, err
	}
	if err = access.Authorize(ident, view, access.ActionAdd, access.Target{Kind: models.KindPayment, MemberID: in.MemberID}); err != nil {
		return nil, err
	}
	if p, err = in.Payment(); err != nil {
		return nil, err
	}
	if err = a.store.AddPayment(p); err != nil {
		return nil, err
	}
	return p, nil
}

// DeleteCaptain removes a captain with no assigned members.
func (a *App) DeleteCaptain(idOrPrefix string) (c *models.Captain, err error) {
	ident, view, err := a.prepare(access.ActionDelete, models.KindCaptain)
	defer func() { a.done(ident, access.ActionDelete, models.KindCaptain, c.GetID(), err) }()
	if err != nil {
		return nil, err
	}
	found, err := a.store.GetCaptain(idOrPrefix)
	if err != nil {
		return nil, err
	}
	if err = access.Authorize(ident, view, access.ActionDelete, access.Target{Kind: models.KindCaptain, ID: found.ID}); err != nil {
		return nil, err
	}
	return a.store.DeleteCaptain(found.ID)
}

// DeleteMember removes a member and its workouts. Returns the removed workouts.
func (a *App) DeleteMember(idOrPrefix string) (m *models.Member, removed []models.Workout, err error) {
	ident, view, err := a.prepare(access.ActionDelete, models.KindMember)
	defer func() { a.done(ident, access.ActionDelete, models.KindMember, m.GetID(), err) }()
	if err != nil {
		return nil, nil, err
	}
	found, err := a.store.GetMember(idOrPrefix)
	if err != nil {
		return nil, nil, err
	}
	if err = access.Authorize(ident, view, access.ActionDelete, access.Target{Kind: models.KindMember, ID: found.ID}); err != nil {
		return nil, nil, err
	}
	m, removed, err = a.store.DeleteMember(found.ID)
	if err != nil {
		return nil, nil, err
	}
	a.metrics.Cascaded(len(removed))
	return m, removed, nil
}

// DeleteEquipment removes equipment no workout references.
func (a *App) DeleteEquipment(idOrPrefix string) (e *models.Equipment, err error) {
	ident, view, err := a.prepare(access.ActionDelete, models.KindEquipment)
	defer func() { a.done(ident, access.ActionDelete, models.KindEquipment, e.GetID(), err) }()
	if err != nil {
		return nil, err
	}
	found, err := a.store.GetEquipment(idOrPrefix)
	if err != nil {
		return nil, err
	}
	if err = access.Authorize(ident, view, access.ActionDelete, access.Target{Kind: models.KindEquipment, ID: found.ID}); err != nil {
		return nil, err
	}
	return a.store.DeleteEquipment(found.ID)
}

// DeleteWorkout removes a workout the identity can see.
func (a *App) DeleteWorkout(idOrPrefix string) (w *models.Workout, err error) {
	ident, view, err := a.prepare(access.ActionDelete, models.KindWorkout)
	defer func() { a.done(ident, access.ActionDelete, models.KindWorkout, w.GetID(), err) }()
	if err != nil {
		return nil, err
	}
	found, err := a.store.GetWorkout(idOrPrefix)
	if err != nil {
		return nil, err
	}
	if err = access.Authorize(ident, view, access.ActionDelete, access.Target{Kind: models.KindWorkout, ID: found.ID, MemberID: found.MemberID}); err != nil {
		return nil, err
	}
	return a.store.DeleteWorkout(found.ID)
}
