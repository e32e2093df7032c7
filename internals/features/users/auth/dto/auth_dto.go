package dto

// CreateUserRequest: payload register.
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,min=3,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,oneof=student teacher"`
}

// LoginRequest: login pakai email + role (satu email bisa terdaftar
// sebagai student dan teacher sekaligus di frontend lama).
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=student teacher"`
}

// UpdateProfileRequest: semua field opsional; ganti password wajib
// menyertakan oldPassword yang benar.
type UpdateProfileRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email" validate:"omitempty,email"`
	Password    string `json:"password" validate:"omitempty,min=6"`
	OldPassword string `json:"oldPassword"`
}
