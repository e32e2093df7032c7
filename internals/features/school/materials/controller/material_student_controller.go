package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	progressModel "kelasku_backend/internals/features/progress/progress/model"
	materialDTO "kelasku_backend/internals/features/school/materials/dto"
	materialModel "kelasku_backend/internals/features/school/materials/model"
	helper "kelasku_backend/internals/helpers"
	"kelasku_backend/internals/helpers/scope"
)

// MaterialStudentController: read-only material di sisi murid,
// tiap material dianotasi status progress caller.
type MaterialStudentController struct{ DB *gorm.DB }

func NewMaterialStudentController(db *gorm.DB) *MaterialStudentController {
	return &MaterialStudentController{DB: db}
}

// ===================== LIST =====================
// GET /api/student/materials/:subjectId
func (h *MaterialStudentController) ListBySubject(c *fiber.Ctx) error {
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

	var materials []materialModel.MaterialModel
	if err := h.DB.Where("subject_id = ?", subjectID).
		Order("created_at DESC").Find(&materials).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil materials")
	}

	// Progress caller untuk subject ini, diindeks per material.
	var rows []progressModel.ProgressModel
	if err := h.DB.Where("student_id = ? AND subject_id = ?", studentID, subjectID).
		Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil progress")
	}
	byMaterial := make(map[uuid.UUID]*progressModel.ProgressModel, len(rows))
	for i := range rows {
		byMaterial[rows[i].MaterialID] = &rows[i]
	}

	out := make([]materialDTO.MaterialResponse, 0, len(materials))
	for i := range materials {
		resp := materialDTO.NewMaterialResponse(&materials[i])
		if p, ok := byMaterial[materials[i].ID]; ok {
			resp.Progress = &p.Progress
			resp.Completed = &p.Completed
			resp.CompletedAt = p.CompletedAt
		} else {
			zero, done := 0, false
			resp.Progress = &zero
			resp.Completed = &done
		}
		out = append(out, resp)
	}
	return helper.JsonOK(c, "", out)
}

// ===================== COMPLETED =====================
// GET /api/student/completed-materials
func (h *MaterialStudentController) ListCompleted(c *fiber.Ctx) error {
	studentID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var rows []progressModel.ProgressModel
	if err := h.DB.Where("student_id = ? AND completed = ?", studentID, true).
		Order("completed_at DESC").Find(&rows).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil progress")
	}
	if len(rows) == 0 {
		return helper.JsonOK(c, "", []materialDTO.MaterialResponse{})
	}

	materialIDs := make([]uuid.UUID, 0, len(rows))
	byMaterial := make(map[uuid.UUID]*progressModel.ProgressModel, len(rows))
	for i := range rows {
		materialIDs = append(materialIDs, rows[i].MaterialID)
		byMaterial[rows[i].MaterialID] = &rows[i]
	}

	var materials []materialModel.MaterialModel
	if err := h.DB.Where("id IN ?", materialIDs).Find(&materials).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil materials")
	}

	out := make([]materialDTO.MaterialResponse, 0, len(materials))
	for i := range materials {
		resp := materialDTO.NewMaterialResponse(&materials[i])
		if p, ok := byMaterial[materials[i].ID]; ok {
			resp.Progress = &p.Progress
			resp.Completed = &p.Completed
			resp.CompletedAt = p.CompletedAt
		}
		out = append(out, resp)
	}
	return helper.JsonOK(c, "", out)
}
