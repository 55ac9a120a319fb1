package domain

import (
	"context"
	"time"
)

type User struct {
	UserID    int       `gorm:"primaryKey;autoIncrement" json:"user_id"`
	Username  string    `gorm:"type:varchar(50);not null;unique" json:"username" valid:"required~Username is required"`
	Password  string    `gorm:"type:varchar(255);not null" json:"password,omitempty" valid:"required~Password is required"`
	Role      string    `gorm:"type:varchar(20);not null" json:"role" valid:"required~Role is required,in(admin|puskesmas)~Invalid role"`
	District  *string   `gorm:"type:varchar(100)" json:"district"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type SafeUserData struct {
	UserID    int       `json:"user_id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	District  *string   `json:"district"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u User) Safe() SafeUserData {
	return SafeUserData{
		UserID:    u.UserID,
		Username:  u.Username,
		Role:      u.Role,
		District:  u.District,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type UserRepo interface {
	FindUserByUsername(ctx context.Context, username string) (*User, error)
	CreateUser(ctx context.Context, user *User) error
	GetAllUser(ctx context.Context) (*[]User, error)
}

type UserUseCase interface {
	CreateUser(ctx context.Context, user *User) (*SafeUserData, error)
	GetAllUser(ctx context.Context) (*[]SafeUserData, error)
}
