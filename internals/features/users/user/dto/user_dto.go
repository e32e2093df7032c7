package dto

import (
	"time"

	"github.com/google/uuid"

	userModel "kelasku_backend/internals/features/users/user/model"
)

// UserLite dipakai di response auth (tanpa field sensitif).
type UserLite struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
}

// UserProfile adalah profil lengkap (tetap tanpa password).
type UserProfile struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewUserLite(u *userModel.UserModel) UserLite {
	return UserLite{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

func NewUserProfile(u *userModel.UserModel) UserProfile {
	return UserProfile{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
