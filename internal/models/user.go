package models

import (
	"time"

	"gorm.io/gorm"
)

// User roles
const (
	RoleUser       = "user"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "superadmin"
)

type User struct {
	gorm.Model
	Email        string  `gorm:"uniqueIndex;not null"`
	Password     string  `gorm:"not null"`
	Name         string  `gorm:"not null"`
	Role         string  `gorm:"default:'user'"`
	Status       string  `gorm:"default:'active'"`
	WalletID     *uint   `gorm:"unique;default:null"`
	Wallet       *Wallet `gorm:"foreignKey:WalletID"`
	LastLoginAt  time.Time
	TokenVersion int `gorm:"default:1"`
}

// IsAdmin reports whether the user may act as a settlement actor.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.Role == RoleSuperAdmin
}
