package domain

import "encoding/json"

// Role is the privilege level persisted on a user record.
// A record without a role field decodes to RoleNone.
type Role string

const (
	RoleNone  Role = ""
	RoleAdmin Role = "admin"
)

// ParseRole maps a stored role string onto the closed Role set.
// Anything other than exactly "admin" is RoleNone.
func ParseRole(s string) Role {
	if s == string(RoleAdmin) {
		return RoleAdmin
	}
	return RoleNone
}

// IsAdmin reports whether r grants admin privileges.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// String returns "none" for the zero role so logs stay readable.
func (r Role) String() string {
	if r == RoleNone {
		return "none"
	}
	return string(r)
}

// User is an account keyed by its email.
type User struct {
	ID       string `json:"_id,omitempty"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	PhotoURL string `json:"photoURL,omitempty"`
	Role     Role   `json:"role,omitempty"`

	// Profile holds stored fields the API does not model. They are written
	// next to the modelled fields, which win on a name clash.
	Profile map[string]any `json:"-"`
}

// MarshalJSON flattens Profile into the user document.
func (u User) MarshalJSON() ([]byte, error) {
	type plain User
	base, err := json.Marshal(plain(u))
	if err != nil || len(u.Profile) == 0 {
		return base, err
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(base, &fields); err != nil {
		return nil, err
	}
	out := make(map[string]any, len(u.Profile)+len(fields))
	for k, v := range u.Profile {
		out[k] = v
	}
	for k, v := range fields {
		out[k] = v
	}
	return json.Marshal(out)
}
