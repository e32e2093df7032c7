package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	assignmentModel "kelasku_backend/internals/features/school/assignments/model"
	materialModel "kelasku_backend/internals/features/school/materials/model"
	subjectDTO "kelasku_backend/internals/features/school/subjects/dto"
	subjectModel "kelasku_backend/internals/features/school/subjects/model"
	helper "kelasku_backend/internals/helpers"
	"kelasku_backend/internals/helpers/scope"
)

// SubjectStudentController: read-only subject di sisi murid.
// Lookup anak selalu lewat keanggotaan classroom induk.
type SubjectStudentController struct{ DB *gorm.DB }

func NewSubjectStudentController(db *gorm.DB) *SubjectStudentController {
	return &SubjectStudentController{DB: db}
}

// ===================== LIST =====================
// GET /api/student/subjects/:classroomId
func (h *SubjectStudentController) ListByClassroom(c *fiber.Ctx) error {
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

	var subjects []subjectModel.SubjectModel
	if err := h.DB.Where("classroom_id = ?", roomID).
		Order("created_at DESC").Find(&subjects).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil subjects")
	}

	out := make([]subjectDTO.SubjectResponse, 0, len(subjects))
	for i := range subjects {
		out = append(out, subjectDTO.NewSubjectResponse(&subjects[i]))
	}
	return helper.JsonOK(c, "", out)
}

// ===================== DETAIL =====================
// GET /api/student/subject/:subjectId
func (h *SubjectStudentController) GetByID(c *fiber.Ctx) error {
	studentID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	subjectID, err := uuid.Parse(c.Params("subjectId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	subject, err := scope.SubjectForStudent(h.DB, studentID, subjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Subject not found or access denied")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil subject")
	}

	var materials []materialModel.MaterialModel
	if err := h.DB.Where("subject_id = ?", subject.ID).
		Order("created_at DESC").Find(&materials).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil materials")
	}
	var assignments []assignmentModel.AssignmentModel
	if err := h.DB.Where("subject_id = ?", subject.ID).
		Order("due_date ASC").Find(&assignments).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil assignments")
	}

	resp := subjectDTO.NewSubjectResponse(subject)
	resp.Materials = materials
	resp.Assignments = assignments
	return helper.JsonOK(c, "", resp)
}
