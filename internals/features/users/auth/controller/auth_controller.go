package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kelasku_backend/internals/configs"
	authDTO "kelasku_backend/internals/features/users/auth/dto"
	authService "kelasku_backend/internals/features/users/auth/service"
	userDTO "kelasku_backend/internals/features/users/user/dto"
	userModel "kelasku_backend/internals/features/users/user/model"
	helper "kelasku_backend/internals/helpers"
)

type AuthController struct {
	DB  *gorm.DB
	Cfg *configs.Config
}

func NewAuthController(db *gorm.DB, cfg *configs.Config) *AuthController {
	return &AuthController{DB: db, Cfg: cfg}
}

var validateAuth = validator.New()

// ===================== REGISTER =====================
// POST /api/auth/register
func (h *AuthController) Register(c *fiber.Ctx) error {
	var req authDTO.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Name = strings.TrimSpace(req.Name)

	if err := validateAuth.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var existing userModel.UserModel
	if err := h.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "User already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}

	user := userModel.UserModel{
		Name:  req.Name,
		Email: req.Email,
		Role:  req.Role,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal hash password")
	}
	if err := h.DB.Create(&user).Error; err != nil {
		// belt kedua: unique index email menutup race register ganda
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusBadRequest, "User already exists")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat user")
	}

	token, err := helper.SignUserToken(h.Cfg.JWTSecret, h.Cfg.TokenTTL, user.ID, user.Role)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat token")
	}
	return helper.JsonCreated(c, "User registered successfully", fiber.Map{
		"token": token,
		"user":  userDTO.NewUserLite(&user),
	})
}

// ===================== LOGIN =====================
// POST /api/auth/login
func (h *AuthController) Login(c *fiber.Ctx) error {
	var req authDTO.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if err := validateAuth.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var user userModel.UserModel
	if err := h.DB.Where("email = ? AND role = ?", req.Email, req.Role).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid credentials")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
	}
	if !user.CheckPassword(req.Password) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid credentials")
	}

	token, err := helper.SignUserToken(h.Cfg.JWTSecret, h.Cfg.TokenTTL, user.ID, user.Role)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat token")
	}
	return helper.JsonOK(c, "Login successful", fiber.Map{
		"token": token,
		"user":  userDTO.NewUserLite(&user),
	})
}

// ===================== VERIFY =====================
// GET /api/auth/verify
func (h *AuthController) Verify(c *fiber.Ctx) error {
	user, err := h.currentUser(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "", fiber.Map{"user": userDTO.NewUserLite(user)})
}

// ===================== PROFILE =====================
// GET /api/auth/profile
func (h *AuthController) GetProfile(c *fiber.Ctx) error {
	user, err := h.currentUser(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	return helper.JsonOK(c, "", fiber.Map{"user": userDTO.NewUserProfile(user)})
}

// PATCH /api/auth/profile
func (h *AuthController) UpdateProfile(c *fiber.Ctx) error {
	user, err := h.currentUser(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}

	var req authDTO.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if req.Name == "" && req.Email == "" && req.Password == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "No valid fields to update.")
	}
	if err := validateAuth.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Password != "" {
		if req.OldPassword == "" {
			return helper.JsonError(c, fiber.StatusBadRequest, "oldPassword is required to change password.")
		}
		if !user.CheckPassword(req.OldPassword) {
			return helper.JsonError(c, fiber.StatusBadRequest, "Old password is incorrect.")
		}
		if err := user.SetPassword(req.Password); err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal hash password")
		}
	}

	if err := h.DB.Save(user).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusBadRequest, "Email already in use")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui profil")
	}
	return helper.JsonUpdated(c, "Profile updated successfully", fiber.Map{
		"user": userDTO.NewUserProfile(user),
	})
}

// ===================== DELETE ACCOUNT =====================
// DELETE /api/auth/delete-user
// Student: keluar dari semua kelas + progress dihapus.
// Teacher: seluruh classroom/subject/material/assignment miliknya dihapus.
func (h *AuthController) DeleteUser(c *fiber.Ctx) error {
	user, err := h.currentUser(c)
	if err != nil {
		return helper.FromFiberError(c, err)
	}
	if err := authService.DeleteUserCascade(h.DB, user); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonDeleted(c, "Account deleted successfully", fiber.Map{
		"user_id": user.ID,
	})
}

// currentUser me-load ulang user dari Locals. Error berupa *fiber.Error;
// caller menulis response lewat helper.FromFiberError.
func (h *AuthController) currentUser(c *fiber.Ctx) (*userModel.UserModel, error) {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, err.Error())
	}
	var user userModel.UserModel
	if err := h.DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
	}
	return &user, nil
}
