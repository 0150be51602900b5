package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is an authenticated account. The catalog only consumes its id and role.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	RoleID    int       `gorm:"not null;index" json:"role_id"`
	Username  string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"type:text;not null" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Role Role `gorm:"foreignKey:RoleID" json:"role,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// RoleName returns the preloaded role name, falling back to the well-known ids.
func (u *User) RoleName() string {
	if u.Role.RoleName != "" {
		return u.Role.RoleName
	}
	switch u.RoleID {
	case RoleIDAdmin:
		return RoleAdmin
	case RoleIDUser:
		return RoleUser
	}
	return ""
}
