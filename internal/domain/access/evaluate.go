package access

import "github.com/pro-master/backend/internal/httperr"

// Check runs the coarse policy check and returns the error to surface.
// Anonymous callers get not_authenticated, everyone else permission_denied.
func Check(policy Policy, p Principal, method string) error {
	if policy.HasPermission(p, method) {
		return nil
	}
	return deny(p)
}

// CheckObject runs the per-object check.
func CheckObject(policy Policy, p Principal, method string, obj any) error {
	if policy.HasObjectPermission(p, method, obj) {
		return nil
	}
	return deny(p)
}

func deny(p Principal) error {
	if !p.Authenticated() {
		return httperr.ErrNotAuthenticated
	}
	return httperr.ErrForbidden
}
