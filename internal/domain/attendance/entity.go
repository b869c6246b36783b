package attendance

import "time"

// Type enum - how a calendar day counts toward working days.
type Type string

const (
	TypeFull Type = "full" // counts as 1.0
	TypeHalf Type = "half" // counts as 0.5
	TypeOff  Type = "off"  // counts as 0
)

func IsValidType(s string) bool {
	switch Type(s) {
	case TypeFull, TypeHalf, TypeOff:
		return true
	}
	return false
}

// Record - One attendance entry per user per calendar day.
type Record struct {
	ID        string
	UserID    string
	Date      time.Time
	Type      Type
	Notes     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
