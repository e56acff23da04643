package domain

// Role identifies which screen set a session can reach.
type Role string

const (
	RoleCustomer Role = "customer"
	RolePusher   Role = "pusher"
	RoleAdmin    Role = "admin"
	RoleGuest    Role = "guest"
)

// marketplaceRoles is the role set every non-admin identity is provisioned with.
var marketplaceRoles = []Role{RoleCustomer, RolePusher}

// ParseRole converts a raw string to a Role. ok is false for unknown values.
func ParseRole(s string) (Role, bool) {
	switch r := Role(s); r {
	case RoleCustomer, RolePusher, RoleAdmin, RoleGuest:
		return r, true
	}
	return "", false
}

// Switchable reports whether a role switch may add r to a user's available roles.
// Admin and guest are single-purpose identities and are never acquired by switching.
func (r Role) Switchable() bool {
	return r != RoleAdmin && r != RoleGuest
}

// DefaultTab returns the canonical landing tab for r. ok is false when the role
// has no tab of its own (admin, guest), in which case the current tab is kept.
func (r Role) DefaultTab() (Tab, bool) {
	switch r {
	case RoleCustomer:
		return TabHome, true
	case RolePusher:
		return TabJobs, true
	}
	return "", false
}

// User is the identity a session acts as.
type User struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email,omitempty"`
	Avatar         string `json:"avatar"`
	Role           Role   `json:"role"`
	AvailableRoles []Role `json:"available_roles"`

	// Customer attributes.
	WalletBalance *float64 `json:"wallet_balance,omitempty"`
	// Pusher attributes.
	FloatJobsRemaining *int     `json:"float_jobs_remaining,omitempty"`
	Rating             *float64 `json:"rating,omitempty"`
}

// HasRole reports whether r is one of the user's available roles.
func (u *User) HasRole(r Role) bool {
	for _, have := range u.AvailableRoles {
		if have == r {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so snapshots never share backing arrays.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	c := *u
	c.AvailableRoles = append([]Role(nil), u.AvailableRoles...)
	if u.WalletBalance != nil {
		v := *u.WalletBalance
		c.WalletBalance = &v
	}
	if u.FloatJobsRemaining != nil {
		v := *u.FloatJobsRemaining
		c.FloatJobsRemaining = &v
	}
	if u.Rating != nil {
		v := *u.Rating
		c.Rating = &v
	}
	return &c
}

// Identity carries the fields the auth flow knows before roles are decided.
type Identity struct {
	ID     string
	Name   string
	Email  string
	Avatar string
}

// NewAdminUser builds a single-purpose admin identity.
func NewAdminUser(id Identity) *User {
	return &User{
		ID:             id.ID,
		Name:           id.Name,
		Email:          id.Email,
		Avatar:         id.Avatar,
		Role:           RoleAdmin,
		AvailableRoles: []Role{RoleAdmin},
	}
}

// NewMarketplaceUser builds a user provisioned with both marketplace roles.
// requested becomes the active role when it is one of them, otherwise the
// user starts as a customer.
func NewMarketplaceUser(id Identity, requested Role) *User {
	u := &User{
		ID:             id.ID,
		Name:           id.Name,
		Email:          id.Email,
		Avatar:         id.Avatar,
		Role:           RoleCustomer,
		AvailableRoles: append([]Role(nil), marketplaceRoles...),
	}
	if u.HasRole(requested) {
		u.Role = requested
	}
	return u
}
