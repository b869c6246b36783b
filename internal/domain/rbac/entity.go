package rbac

import "time"

// Permission - A module.action capability, e.g. "payroll.approve".
type Permission struct {
	ID          string
	Name        string
	Codename    string
	Description string
	Module      string
	Action      string
	IsActive    bool
	CreatedAt   time.Time
}

// Role levels used by the default fixture set.
const (
	LevelViewer  = 10
	LevelStaff   = 40
	LevelManager = 70
	LevelAdmin   = 100
)

type Role struct {
	ID          string
	Name        string
	Slug        string
	Description string
	Level       int
	IsSystem    bool
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// UserRole - Role membership. One active primary role per user is assumed by
// payroll config resolution; the highest-level active role wins.
type UserRole struct {
	ID        string
	UserID    string
	RoleID    string
	IsActive  bool
	CreatedAt time.Time

	// Joined fields
	RoleName *string
	RoleSlug *string
}
