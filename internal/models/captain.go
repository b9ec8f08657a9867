// ABOUTME: Captain and Member models for gym staff and clients.
// ABOUTME: Members belong to exactly one captain.
package models

// Captain is a staff member who supervises a subset of members.
type Captain struct {
	ID             string `json:"id" yaml:"id"`
	Name           string `json:"name" yaml:"name" validate:"required"`
	Specialization string `json:"specialization" yaml:"specialization"`
	Experience     string `json:"experience" yaml:"experience"`
}

// CaptainInput is the submitted form for a new captain.
type CaptainInput struct {
	Name           string `json:"name" validate:"required"`
	Specialization string `json:"specialization" validate:"required"`
	Experience     string `json:"experience" validate:"required"`
}

// Captain builds a record from a validated form. The id is assigned by the store.
func (in CaptainInput) Captain() *Captain {
	return &Captain{
		Name:           in.Name,
		Specialization: in.Specialization,
		Experience:     in.Experience,
	}
}

// Member is a gym client.
type Member struct {
	ID        string `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name" validate:"required"`
	Email     string `json:"email" yaml:"email" validate:"required,email,mailformat"`
	JoinDate  Date   `json:"join_date" yaml:"join_date"`
	CaptainID string `json:"captain_id" yaml:"captain_id" validate:"required"`
}

// MemberInput is the submitted form for a new member.
type MemberInput struct {
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required,email,mailformat"`
	JoinDate  string `json:"join_date" validate:"required,datetime=2006-01-02"`
	CaptainID string `json:"captain_id,omitempty" validate:"required"`
}

// Member builds a record from a validated form.
func (in MemberInput) Member() (*Member, error) {
	joined, err := ParseDate(in.JoinDate)
	if err != nil {
		return nil, err
	}
	return &Member{
		Name:      in.Name,
		Email:     in.Email,
		JoinDate:  joined,
		CaptainID: in.CaptainID,
	}, nil
}

// GetID returns the record id, or "" for a nil Captain.
func (c *Captain) GetID() string {
	if c == nil {
		return ""
	}
	return c.ID
}

// GetID returns the record id, or "" for a nil Member.
func (m *Member) GetID() string {
	if m == nil {
		return ""
	}
	return m.ID
}
