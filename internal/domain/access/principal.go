package access

import "github.com/pro-master/backend/internal/models"

type Role string

const (
	RoleAnonymous Role = "anonymous"
	RoleClient    Role = "client"
	RoleMaster    Role = "master"
)

// Principal is the acting identity of a request. Role is the profile
// discriminator: a client principal carries its ClientProfileID (zero until
// the profile exists), a master principal never does.
type Principal struct {
	UserID          uint
	Email           string
	Staff           bool
	Role            Role
	ClientProfileID uint
	TokenID         string
}

func Anonymous() Principal {
	return Principal{Role: RoleAnonymous}
}

// FromUser builds the principal for an authenticated user. profile may be
// nil for masters or clients that have not created a profile yet.
func FromUser(u *models.User, profile *models.ClientProfile) Principal {
	p := Principal{
		UserID: u.ID,
		Email:  u.Email,
		Staff:  u.IsStaff,
		Role:   RoleClient,
	}
	if u.IsMaster {
		p.Role = RoleMaster
		return p
	}
	if profile != nil {
		p.ClientProfileID = profile.ID
	}
	return p
}

func (p Principal) Authenticated() bool {
	return p.Role != RoleAnonymous && p.UserID != 0
}

func (p Principal) IsMaster() bool {
	return p.Role == RoleMaster
}

func (p Principal) IsClient() bool {
	return p.Role == RoleClient
}

func (p Principal) HasClientProfile() bool {
	return p.IsClient() && p.ClientProfileID != 0
}
