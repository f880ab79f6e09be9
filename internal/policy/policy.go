// Package policy holds access rules that depend on a user's profile rather
// than on row ownership.
package policy

import (
	"strings"

	"github.com/sakif/healthtrack/internal/model"
)

// CanAccessPregnancySection reports whether u may view or edit pregnancy
// tracking data: female users, and anyone who has marked themselves as
// pregnant. A nil user has no access.
func CanAccessPregnancySection(u *model.User) bool {
	if u == nil {
		return false
	}
	return strings.EqualFold(u.Gender, model.GenderFemale) || u.PregnancyStatus
}
