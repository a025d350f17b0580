package model

import (
	"time"

	"github.com/avesta-dev/backend-template/internal/domain/entity"
)

// User represents the database model for users
type User struct {
	ID           string    `gorm:"primaryKey;size:36"`
	Email        string    `gorm:"size:255;not null;uniqueIndex"`
	Name         string    `gorm:"size:255;not null"`
	PasswordHash string    `gorm:"size:255;not null"`
	Avatar       string    `gorm:"size:255"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
	LastLogin    *time.Time
	IsActive     bool `gorm:"not null;default:false"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}

// FromEntity maps a domain user onto the database model
func FromEntity(u *entity.User) *User {
	return &User{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		Avatar:       u.Avatar,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
		LastLogin:    u.LastLogin,
		IsActive:     u.IsActive,
	}
}

// ToEntity maps the database model back to a domain user
func (u *User) ToEntity() *entity.User {
	return &entity.User{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		PasswordHash: u.PasswordHash,
		Avatar:       u.Avatar,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
		LastLogin:    u.LastLogin,
		IsActive:     u.IsActive,
	}
}
