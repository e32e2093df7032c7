package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	assignmentModel "kelasku_backend/internals/features/school/assignments/model"
	helper "kelasku_backend/internals/helpers"
	"kelasku_backend/internals/helpers/scope"
)

// AssignmentStudentController: read-only assignment di sisi murid.
type AssignmentStudentController struct{ DB *gorm.DB }

func NewAssignmentStudentController(db *gorm.DB) *AssignmentStudentController {
	return &AssignmentStudentController{DB: db}
}

// GET /api/student/assignments/:subjectId
func (h *AssignmentStudentController) ListBySubject(c *fiber.Ctx) error {
	studentID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	subjectID, err := uuid.Parse(c.Params("subjectId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	if _, err := scope.SubjectForStudent(h.DB, studentID, subjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Subject not found or access denied")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil subject")
	}

	var assignments []assignmentModel.AssignmentModel
	if err := h.DB.Where("subject_id = ?", subjectID).
		Order("due_date ASC").Find(&assignments).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil assignments")
	}
	return helper.JsonOK(c, "", toAssignmentResponses(assignments))
}
