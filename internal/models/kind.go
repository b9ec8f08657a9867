// ABOUTME: Kind enumerates the five record collections held by the dashboard.
// ABOUTME: Each kind has a key prefix and an id prefix used at the store boundary.
package models

import (
	"fmt"
	"strings"
)

// Kind names a record collection.
type Kind string

const (
	KindCaptain   Kind = "captain"
	KindMember    Kind = "member"
	KindEquipment Kind = "equipment"
	KindWorkout   Kind = "workout"
	KindPayment   Kind = "payment"
)

// AllKinds lists every collection kind.
var AllKinds = []Kind{KindCaptain, KindMember, KindEquipment, KindWorkout, KindPayment}

// ParseKind converts a collection name to a Kind, accepting plurals.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, k := range AllKinds {
		if s == string(k) || s == k.Plural() {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown record kind: %q", s)
}

// Plural returns the collection name.
func (k Kind) Plural() string {
	if k == KindEquipment {
		return "equipment"
	}
	return string(k) + "s"
}

// IDPrefix is the letter that starts every generated id of this kind.
func (k Kind) IDPrefix() string {
	switch k {
	case KindCaptain:
		return "c"
	case KindMember:
		return "m"
	case KindEquipment:
		return "e"
	case KindWorkout:
		return "w"
	case KindPayment:
		return "p"
	}
	return "x"
}
