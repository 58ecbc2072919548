package access

import "net/http"

// Objects expose the user that a policy compares the principal against.
type (
	Owned interface {
		OwnerUserID() uint
	}

	Authored interface {
		AuthorUserID() uint
	}

	ClientOwned interface {
		ClientUserID() uint
	}
)

// Policy is evaluated twice for mutating requests: HasPermission before the
// target is loaded, HasObjectPermission once it is.
type Policy interface {
	HasPermission(p Principal, method string) bool
	HasObjectPermission(p Principal, method string, obj any) bool
}

func IsSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// AdminOrMaster: writes by staff or masters; objects by staff or the owner
// of the object (or of its service profile).
type AdminOrMaster struct{}

func (AdminOrMaster) HasPermission(p Principal, method string) bool {
	if IsSafeMethod(method) {
		return true
	}
	return p.Authenticated() && (p.Staff || p.IsMaster())
}

func (AdminOrMaster) HasObjectPermission(p Principal, method string, obj any) bool {
	if IsSafeMethod(method) {
		return true
	}
	if !p.Authenticated() {
		return false
	}
	if p.Staff {
		return true
	}
	o, ok := obj.(Owned)
	return ok && o.OwnerUserID() != 0 && o.OwnerUserID() == p.UserID
}

// AdminOrAuthor: any authenticated user may write; objects by staff or author.
type AdminOrAuthor struct{}

func (AdminOrAuthor) HasPermission(p Principal, method string) bool {
	return IsSafeMethod(method) || p.Authenticated()
}

func (AdminOrAuthor) HasObjectPermission(p Principal, method string, obj any) bool {
	if IsSafeMethod(method) {
		return true
	}
	if !p.Authenticated() {
		return false
	}
	if p.Staff {
		return true
	}
	a, ok := obj.(Authored)
	return ok && a.AuthorUserID() == p.UserID
}

// AdminOrClient: writes by staff or non-master users; objects by staff or
// the client they belong to.
type AdminOrClient struct{}

func (AdminOrClient) HasPermission(p Principal, method string) bool {
	if IsSafeMethod(method) {
		return true
	}
	return p.Authenticated() && (p.Staff || !p.IsMaster())
}

func (AdminOrClient) HasObjectPermission(p Principal, method string, obj any) bool {
	if IsSafeMethod(method) {
		return true
	}
	if !p.Authenticated() {
		return false
	}
	if p.Staff {
		return true
	}
	c, ok := obj.(ClientOwned)
	return ok && c.ClientUserID() != 0 && c.ClientUserID() == p.UserID
}

// Authenticated only requires a known principal, for any method.
type Authenticated struct{}

func (Authenticated) HasPermission(p Principal, _ string) bool {
	return p.Authenticated()
}

func (Authenticated) HasObjectPermission(p Principal, _ string, _ any) bool {
	return p.Authenticated()
}

// StaffOrReadOnly guards catalog writes.
type StaffOrReadOnly struct{}

func (StaffOrReadOnly) HasPermission(p Principal, method string) bool {
	return IsSafeMethod(method) || (p.Authenticated() && p.Staff)
}

func (s StaffOrReadOnly) HasObjectPermission(p Principal, method string, _ any) bool {
	return s.HasPermission(p, method)
}
