package auth

import "github.com/fullstack-education/academico/core"

// Permission is the set of roles allowed to perform one operation.
// Each service declares one per operation so the allowed sets live in a
// single place instead of ad-hoc string comparisons.
type Permission struct {
	allowed map[string]struct{}
}

func Allow(roles ...string) Permission {
	set := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		set[role] = struct{}{}
	}
	return Permission{allowed: set}
}

func (p Permission) Allows(role string) bool {
	_, ok := p.allowed[role]
	return ok
}

// Check returns an AuthorizationError when the role is not in the allowed set.
func (p Permission) Check(role string) error {
	if !p.Allows(role) {
		return core.NewAuthorizationError("user not authorized")
	}
	return nil
}
