package model

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Profile is the role record keyed by the auth subject id. The role column is
// the sole authorization signal consulted by the admin access gate.
type Profile struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex"`
	Role         string    `json:"role"` // "admin" or "user"
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Profile) TableName() string {
	return "profiles"
}

func (p Profile) IsAdmin() bool {
	return p.Role == RoleAdmin
}
