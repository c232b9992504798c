// Package access is the policy core: it decides, for a resolved principal
// and an operation's declared requirement set, whether the request may
// proceed. It holds no state and performs no writes; controllers hand it
// ownership predicates for row-level checks after loading the target entity.
package access

import (
	"net/http"

	"github.com/google/uuid"
)

// Principal is the authenticated identity and claims attached to one
// request. It is resolved by the auth middleware from the User, Role and
// Permission records and never persisted as such.
type Principal struct {
	UserID         uuid.UUID
	Email          string
	RoleID         uuid.UUID
	RoleName       string
	IsSuperAdmin   bool
	PermissionKeys []string
}

// Requirement is the static set of roles and permission keys an operation
// declares as necessary. Permission keys use AND semantics: every listed key
// must be granted.
type Requirement struct {
	Roles       []string
	Permissions []string
	// SuperAdminOnly marks operations that only the super-admin short
	// circuit may satisfy (user/role/permission administration).
	SuperAdminOnly bool
}

// OwnershipCheck reports whether the principal is entitled to the specific
// resource instance a controller has loaded.
type OwnershipCheck func(p Principal) bool

// Deny reasons. Distinct strings so callers can log the precise cause while
// returning a uniform access-denied response to end users.
const (
	ReasonUnauthenticated  = "user not found"
	ReasonRoleDenied       = "insufficient role"
	ReasonPermissionDenied = "insufficient permissions"
	ReasonOwnershipDenied  = "not entitled to this resource"
)

// Decision is the outcome of a policy evaluation.
type Decision struct {
	Allowed bool
	Reason  string
}

// Status maps a denial to the HTTP status controllers should answer with.
func (d Decision) Status() int {
	if d.Allowed {
		return http.StatusOK
	}
	if d.Reason == ReasonUnauthenticated {
		return http.StatusUnauthorized
	}
	return http.StatusForbidden
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(reason string) Decision {
	return Decision{Reason: reason}
}

// Decide evaluates the requirement against the principal and, when supplied,
// the ownership predicates. Evaluation order is fixed: an unresolved
// principal is rejected first, a super-admin principal is allowed before any
// requirement or ownership predicate is looked at, then roles, then
// permissions, then ownership. The decision depends only on the inputs, so
// identical calls yield identical results.
func Decide(p Principal, req Requirement, owns ...OwnershipCheck) Decision {
	if p.UserID == uuid.Nil {
		return deny(ReasonUnauthenticated)
	}

	if p.IsSuperAdmin {
		return allow()
	}

	if req.SuperAdminOnly {
		return deny(ReasonRoleDenied)
	}

	if len(req.Roles) > 0 && !containsString(req.Roles, p.RoleName) {
		return deny(ReasonRoleDenied)
	}

	for _, key := range req.Permissions {
		if !containsString(p.PermissionKeys, key) {
			return deny(ReasonPermissionDenied)
		}
	}

	for _, owned := range owns {
		if !owned(p) {
			return deny(ReasonOwnershipDenied)
		}
	}

	return allow()
}

func containsString(slice []string, s string) bool {
	for _, v := range slice {
		if v == s {
			return true
		}
	}
	return false
}
