package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	progressDTO "kelasku_backend/internals/features/progress/progress/dto"
	progressModel "kelasku_backend/internals/features/progress/progress/model"
	materialModel "kelasku_backend/internals/features/school/materials/model"
	helper "kelasku_backend/internals/helpers"
	"kelasku_backend/internals/helpers/scope"
)

// ProgressController: upsert penyelesaian material per murid.
// Kunci upsert = unique index (student_id, material_id); dua request
// bersamaan untuk pasangan yang sama tetap menghasilkan satu baris.
type ProgressController struct{ DB *gorm.DB }

func NewProgressController(db *gorm.DB) *ProgressController {
	return &ProgressController{DB: db}
}

var validateProgress = validator.New()

// ===================== UPSERT =====================
// PATCH /api/student/progress/:materialId
func (h *ProgressController) Update(c *fiber.Ctx) error {
	studentID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	materialID, err := uuid.Parse(c.Params("materialId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var req progressDTO.UpdateProgressRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validateProgress.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	material, ferr := h.visibleMaterial(studentID, materialID)
	if ferr != nil {
		return helper.FromFiberError(c, ferr)
	}

	now := time.Now()
	row := progressModel.ProgressModel{
		StudentID:  studentID,
		MaterialID: material.ID,
		SubjectID:  material.SubjectID,
	}
	if req.Progress != nil {
		row.Progress = *req.Progress
	}
	if req.Completed != nil {
		row.Completed = *req.Completed
	}
	if row.Completed {
		if req.Progress == nil {
			row.Progress = 100
		}
		row.CompletedAt = &now
	}

	// Saat konflik hanya kolom yang dikirim yang diperbarui;
	// completed_at set sekali dan tidak pernah dikosongkan lagi.
	assignments := map[string]interface{}{
		"updated_at":   now,
		"completed_at": gorm.Expr("COALESCE(progress.completed_at, excluded.completed_at)"),
	}
	if req.Progress != nil {
		assignments["progress"] = row.Progress
	}
	if req.Completed != nil {
		assignments["completed"] = row.Completed
		if row.Completed && req.Progress == nil {
			assignments["progress"] = 100
		}
	}

	if err := h.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "student_id"}, {Name: "material_id"}},
		DoUpdates: clause.Assignments(assignments),
	}).Create(&row).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan progress")
	}

	// Baca ulang: saat konflik, row di memori bukan baris final.
	var saved progressModel.ProgressModel
	if err := h.DB.Where("student_id = ? AND material_id = ?", studentID, material.ID).
		First(&saved).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membaca progress")
	}
	return helper.JsonUpdated(c, "Progress updated successfully", progressDTO.NewProgressResponse(&saved))
}

// ===================== DELETE =====================
// DELETE /api/student/progress/:materialId
func (h *ProgressController) Delete(c *fiber.Ctx) error {
	studentID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	materialID, err := uuid.Parse(c.Params("materialId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	res := h.DB.Delete(&progressModel.ProgressModel{},
		"student_id = ? AND material_id = ?", studentID, materialID)
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus progress")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Progress not found")
	}
	return helper.JsonDeleted(c, "Progress deleted successfully", fiber.Map{"material_id": materialID})
}

/* ===============================
   Internal
=================================*/

// visibleMaterial me-load material dan memastikan murid terdaftar
// di classroom induk subject-nya. Di luar scope = 404. Error berupa
// *fiber.Error; caller yang menulis response lewat helper.FromFiberError.
func (h *ProgressController) visibleMaterial(studentID, materialID uuid.UUID) (*materialModel.MaterialModel, error) {
	var material materialModel.MaterialModel
	if err := h.DB.Where("id = ?", materialID).First(&material).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Material not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil material")
	}
	if _, err := scope.SubjectForStudent(h.DB, studentID, material.SubjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Material not found")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal memeriksa keanggotaan")
	}
	return &material, nil
}
