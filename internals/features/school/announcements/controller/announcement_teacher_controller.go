package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	announcementDTO "kelasku_backend/internals/features/school/announcements/dto"
	announcementModel "kelasku_backend/internals/features/school/announcements/model"
	helper "kelasku_backend/internals/helpers"
	"kelasku_backend/internals/helpers/scope"
)

// AnnouncementTeacherController: pengumuman per classroom, sisi teacher.
type AnnouncementTeacherController struct{ DB *gorm.DB }

func NewAnnouncementTeacherController(db *gorm.DB) *AnnouncementTeacherController {
	return &AnnouncementTeacherController{DB: db}
}

var validateAnnouncement = validator.New()

// ===================== CREATE =====================
// POST /api/teacher/announcements/:classroomId
func (h *AnnouncementTeacherController) Create(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	roomID, err := uuid.Parse(c.Params("classroomId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var req announcementDTO.CreateAnnouncementRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Text = strings.TrimSpace(req.Text)
	if err := validateAnnouncement.Struct(req); err != nil || req.Text == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Announcement text is required")
	}

	if _, err := scope.ClassroomOwned(h.DB, teacherID, roomID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Classroom not found or access denied")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil classroom")
	}

	announcement := announcementModel.AnnouncementModel{
		ClassroomID: roomID,
		TeacherID:   teacherID,
		Title:       strings.TrimSpace(req.Title),
		Content:     req.Text,
	}
	if err := h.DB.Create(&announcement).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat announcement")
	}
	return helper.JsonCreated(c, "Announcement created successfully", announcementDTO.NewAnnouncementResponse(&announcement))
}

// ===================== LIST =====================
// GET /api/teacher/announcements/:classroomId
func (h *AnnouncementTeacherController) ListByClassroom(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	roomID, err := uuid.Parse(c.Params("classroomId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	if _, err := scope.ClassroomOwned(h.DB, teacherID, roomID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Classroom not found or access denied")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil classroom")
	}

	var rows []announcementModel.AnnouncementModel
	if err := h.DB.Where("classroom_id = ?", roomID).
		Order("created_at DESC").Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil announcements")
	}
	return helper.JsonOK(c, "", toAnnouncementResponses(rows))
}

func toAnnouncementResponses(rows []announcementModel.AnnouncementModel) []announcementDTO.AnnouncementResponse {
	out := make([]announcementDTO.AnnouncementResponse, 0, len(rows))
	for i := range rows {
		out = append(out, announcementDTO.NewAnnouncementResponse(&rows[i]))
	}
	return out
}
