package domain

import "time"

type Team struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TeamMember links a user to a team. (TeamID, UserID) is unique; a user may
// belong to several teams at once.
type TeamMember struct {
	TeamID   string
	UserID   string
	Role     Role
	JoinedAt time.Time
}

// Invite is a join code that resolves to a team. Joining through an invite
// always grants the member role.
type Invite struct {
	Code      string
	TeamID    string
	CreatedBy string
	CreatedAt time.Time
	ExpiresAt *time.Time
}

// Expired reports whether the invite is past its expiry, if it has one.
func (i *Invite) Expired(now time.Time) bool {
	return i.ExpiresAt != nil && now.After(*i.ExpiresAt)
}

// Session is an opaque guest token exchanged for the HTTP-only session cookie.
type Session struct {
	Token     string
	UserID    string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session token is no longer usable.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
