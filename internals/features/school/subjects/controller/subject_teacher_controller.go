package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	progressModel "kelasku_backend/internals/features/progress/progress/model"
	assignmentModel "kelasku_backend/internals/features/school/assignments/model"
	materialModel "kelasku_backend/internals/features/school/materials/model"
	subjectDTO "kelasku_backend/internals/features/school/subjects/dto"
	subjectModel "kelasku_backend/internals/features/school/subjects/model"
	helper "kelasku_backend/internals/helpers"
	"kelasku_backend/internals/helpers/scope"
)

// SubjectTeacherController: operasi subject di sisi teacher.
// Subject selalu dibuat atas classroom milik caller, jadi invariannya
// subject.teacher_id == classroom.teacher_id.
type SubjectTeacherController struct{ DB *gorm.DB }

func NewSubjectTeacherController(db *gorm.DB) *SubjectTeacherController {
	return &SubjectTeacherController{DB: db}
}

var validateSubject = validator.New()

// ===================== CREATE =====================
// POST /api/teacher/subject
func (h *SubjectTeacherController) Create(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req subjectDTO.CreateSubjectRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := validateSubject.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	// Guard induk dulu: classroom harus milik caller.
	if _, err := scope.ClassroomOwned(h.DB, teacherID, req.ClassroomID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Classroom not found or access denied")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil classroom")
	}

	subject := subjectModel.SubjectModel{
		Name:        req.Name,
		Description: req.Description,
		ClassroomID: req.ClassroomID,
		TeacherID:   teacherID,
	}
	if err := h.DB.Create(&subject).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat subject")
	}
	return helper.JsonCreated(c, "Subject created successfully", subjectDTO.NewSubjectResponse(&subject))
}

// ===================== LIST =====================
// GET /api/teacher/subjects
func (h *SubjectTeacherController) List(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var subjects []subjectModel.SubjectModel
	if err := h.DB.Where("teacher_id = ?", teacherID).
		Order("created_at DESC").Find(&subjects).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil subjects")
	}

	out := make([]subjectDTO.SubjectResponse, 0, len(subjects))
	for i := range subjects {
		out = append(out, subjectDTO.NewSubjectResponse(&subjects[i]))
	}
	return helper.JsonOK(c, "", out)
}

// GET /api/teacher/classrooms/:classroomId/subjects
func (h *SubjectTeacherController) ListByClassroom(c *fiber.Ctx) error {
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
// GET /api/teacher/subject/:subjectId
// Detail menyertakan materials dan assignments di bawahnya.
func (h *SubjectTeacherController) GetByID(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	subjectID, err := uuid.Parse(c.Params("subjectId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	subject, err := scope.SubjectOwned(h.DB, teacherID, subjectID)
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

// ===================== DELETE =====================
// DELETE /api/teacher/subjects/:subjectId
// Cascade: progress untuk materials di bawahnya, lalu materials dan
// assignments, baru subject-nya.
func (h *SubjectTeacherController) Delete(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	subjectID, err := uuid.Parse(c.Params("subjectId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	subject, err := scope.SubjectOwned(h.DB, teacherID, subjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Subject not found or access denied")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil subject")
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		var materialIDs []string
		if err := tx.Model(&materialModel.MaterialModel{}).
			Where("subject_id = ?", subject.ID).Pluck("id", &materialIDs).Error; err != nil {
			return err
		}
		if len(materialIDs) > 0 {
			if err := tx.Delete(&progressModel.ProgressModel{}, "material_id IN ?", materialIDs).Error; err != nil {
				return err
			}
		}
		if err := tx.Delete(&materialModel.MaterialModel{}, "subject_id = ?", subject.ID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&assignmentModel.AssignmentModel{}, "subject_id = ?", subject.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&subjectModel.SubjectModel{}, "id = ?", subject.ID).Error
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus subject")
	}
	return helper.JsonDeleted(c, "Subject deleted successfully", fiber.Map{"subject_id": subject.ID})
}
