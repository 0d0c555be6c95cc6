package visibility

import (
	"clientportal/internal/model"

	"clientportal/pkg/rbac"
)

// Visible returns the subset of projects the user may see, preserving
// input order. Admin and staff roles see everything. Clients see only
// projects whose assigned-users list contains them, matched by
// string-coerced id first and case-sensitive email as a fallback.
// Pure function: no I/O, idempotent.
func Visible(projects []model.Project, user *model.User) []model.Project {
	if user == nil {
		return nil
	}
	if user.Role != rbac.RoleClient {
		return projects
	}

	out := make([]model.Project, 0, len(projects))
	for _, p := range projects {
		// No assignment list means no client may claim the project.
		if len(p.Users) == 0 {
			continue
		}
		if IsAssigned(&p, user) {
			out = append(out, p)
		}
	}
	return out
}

// IsAssigned reports whether the user appears in the project's
// assigned-users list. Ids arrive from heterogeneous sources as strings in
// one payload and numbers in another, so both sides are coerced through
// model.FlexID before comparing; email equality covers records where the
// id is absent or mismatched.
func IsAssigned(p *model.Project, user *model.User) bool {
	for i := range p.Users {
		assigned := &p.Users[i]
		if user.ID.Equal(assigned.ID) {
			return true
		}
		if user.Email != "" && assigned.Email != "" && user.Email == assigned.Email {
			return true
		}
	}
	return false
}
