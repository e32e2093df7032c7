package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	announcementModel "kelasku_backend/internals/features/school/announcements/model"
	helper "kelasku_backend/internals/helpers"
	"kelasku_backend/internals/helpers/scope"
)

// AnnouncementStudentController: pengumuman di sisi murid.
type AnnouncementStudentController struct{ DB *gorm.DB }

func NewAnnouncementStudentController(db *gorm.DB) *AnnouncementStudentController {
	return &AnnouncementStudentController{DB: db}
}

// GET /api/student/announcements
// Seluruh pengumuman dari kelas yang diikuti, terbaru dulu.
func (h *AnnouncementStudentController) List(c *fiber.Ctx) error {
	studentID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	roomIDs, err := scope.EnrolledClassroomIDs(h.DB, studentID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil classrooms")
	}
	if len(roomIDs) == 0 {
		return helper.JsonOK(c, "", []announcementModel.AnnouncementModel{})
	}

	var rows []announcementModel.AnnouncementModel
	if err := h.DB.Where("classroom_id IN ?", roomIDs).
		Order("created_at DESC").Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil announcements")
	}
	return helper.JsonOK(c, "", toAnnouncementResponses(rows))
}

// GET /api/student/announcements/:classroomId
func (h *AnnouncementStudentController) ListByClassroom(c *fiber.Ctx) error {
	studentID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	roomID, err := uuid.Parse(c.Params("classroomId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	enrolled, err := scope.IsEnrolled(h.DB, studentID, roomID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memeriksa keanggotaan")
	}
	if !enrolled {
		return helper.JsonError(c, fiber.StatusNotFound, "Classroom not found or access denied")
	}

	var rows []announcementModel.AnnouncementModel
	if err := h.DB.Where("classroom_id = ?", roomID).
		Order("created_at DESC").Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil announcements")
	}
	return helper.JsonOK(c, "", toAnnouncementResponses(rows))
}
