package model

import (
	"time"

	"gorm.io/gorm"
)

// UserModel merepresentasikan tabel `users` (akun admin panel).
type UserModel struct {
	UserID       uint   `json:"user_id" gorm:"column:user_id;primaryKey;autoIncrement"`
	UserName     string `json:"user_name" gorm:"column:user_name;type:varchar(80);not null"`
	UserEmail    string `json:"user_email" gorm:"column:user_email;type:varchar(160);not null;uniqueIndex"`
	// bcrypt hash, tidak pernah ikut ke response/view
	UserPassword string `json:"-" gorm:"column:user_password;type:varchar(100);not null"`
	UserRole     string `json:"user_role" gorm:"column:user_role;type:varchar(20);not null;default:admin"`

	UserCreatedAt time.Time      `json:"user_created_at" gorm:"column:user_created_at;not null;autoCreateTime"`
	UserUpdatedAt time.Time      `json:"user_updated_at" gorm:"column:user_updated_at;not null;autoUpdateTime"`
	UserDeletedAt gorm.DeletedAt `json:"user_deleted_at,omitempty" gorm:"column:user_deleted_at;index"`
}

func (UserModel) TableName() string { return "users" }
