package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	progressModel "kelasku_backend/internals/features/progress/progress/model"
	materialDTO "kelasku_backend/internals/features/school/materials/dto"
	materialModel "kelasku_backend/internals/features/school/materials/model"
	helper "kelasku_backend/internals/helpers"
	"kelasku_backend/internals/helpers/media"
	"kelasku_backend/internals/helpers/scope"
)

// MaterialTeacherController: operasi material di sisi teacher.
// File diunggah ke OSS lewat media.Uploader, baru baris DB dibuat.
type MaterialTeacherController struct {
	DB       *gorm.DB
	Uploader media.Uploader
}

func NewMaterialTeacherController(db *gorm.DB, up media.Uploader) *MaterialTeacherController {
	return &MaterialTeacherController{DB: db, Uploader: up}
}

var validateMaterial = validator.New()

// ===================== CREATE =====================
// POST /api/teacher/material (multipart, field "file")
func (h *MaterialTeacherController) Create(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req materialDTO.CreateMaterialRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Title = strings.TrimSpace(req.Title)
	if err := validateMaterial.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if !materialModel.ValidType(req.Type) {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid material type")
	}

	// Guard induk dulu: subject harus milik caller.
	if _, err := scope.SubjectOwned(h.DB, teacherID, req.SubjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Subject not found or access denied")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil subject")
	}

	fh, err := c.FormFile("file")
	if err != nil || fh == nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "File is required")
	}
	fileURL, err := h.Uploader.UploadAny(c.Context(), "materials", fh)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengunggah file")
	}

	material := materialModel.MaterialModel{
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		FileURL:     fileURL,
		SubjectID:   req.SubjectID,
		TeacherID:   teacherID,
	}
	if err := h.DB.Create(&material).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat material")
	}
	return helper.JsonCreated(c, "Material created successfully", materialDTO.NewMaterialResponse(&material))
}

// ===================== LIST =====================
// GET /api/teacher/materials
func (h *MaterialTeacherController) List(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var materials []materialModel.MaterialModel
	if err := h.DB.Where("teacher_id = ?", teacherID).
		Order("created_at DESC").Find(&materials).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil materials")
	}
	return helper.JsonOK(c, "", toMaterialResponses(materials))
}

// GET /api/teacher/subjects/:subjectId/materials
func (h *MaterialTeacherController) ListBySubject(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	subjectID, err := uuid.Parse(c.Params("subjectId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	if _, err := scope.SubjectOwned(h.DB, teacherID, subjectID); err != nil {
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
	return helper.JsonOK(c, "", toMaterialResponses(materials))
}

// GET /api/teacher/classrooms/:classroomId/materials
func (h *MaterialTeacherController) ListByClassroom(c *fiber.Ctx) error {
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

	var materials []materialModel.MaterialModel
	if err := h.DB.
		Joins("JOIN subjects ON subjects.id = materials.subject_id").
		Where("subjects.classroom_id = ?", roomID).
		Order("materials.created_at DESC").
		Find(&materials).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil materials")
	}
	return helper.JsonOK(c, "", toMaterialResponses(materials))
}

// ===================== DELETE =====================
// DELETE /api/teacher/materials/:materialId
// Progress murid atas material ini ikut dihapus.
func (h *MaterialTeacherController) Delete(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	materialID, err := uuid.Parse(c.Params("materialId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var material materialModel.MaterialModel
	if err := h.DB.Where("id = ? AND teacher_id = ?", materialID, teacherID).
		First(&material).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Material not found or access denied")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil material")
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&progressModel.ProgressModel{}, "material_id = ?", material.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&materialModel.MaterialModel{}, "id = ?", material.ID).Error
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus material")
	}
	return helper.JsonDeleted(c, "Material deleted successfully", fiber.Map{"material_id": material.ID})
}

/* ===============================
   Internal
=================================*/

func toMaterialResponses(materials []materialModel.MaterialModel) []materialDTO.MaterialResponse {
	out := make([]materialDTO.MaterialResponse, 0, len(materials))
	for i := range materials {
		out = append(out, materialDTO.NewMaterialResponse(&materials[i]))
	}
	return out
}
