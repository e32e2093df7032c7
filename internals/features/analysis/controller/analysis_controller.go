package controller

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	analysisDTO "kelasku_backend/internals/features/analysis/dto"
	analysisModel "kelasku_backend/internals/features/analysis/model"
	materialModel "kelasku_backend/internals/features/school/materials/model"
	helper "kelasku_backend/internals/helpers"
)

// Analyzer: kontrak ke layanan analisis dokumen eksternal.
type Analyzer interface {
	Analyze(ctx context.Context, endpoint, fileURL string) (json.RawMessage, error)
}

// AnalysisController: proxy analisis dokumen + cache hasil per
// (file_id, endpoint). File yang sudah diproses ditolak 400.
type AnalysisController struct {
	DB       *gorm.DB
	Analyzer Analyzer
}

func NewAnalysisController(db *gorm.DB, an Analyzer) *AnalysisController {
	return &AnalysisController{DB: db, Analyzer: an}
}

var validateAnalysis = validator.New()

// POST /api/teacher/file/:endpoint
// endpoint ∈ {brief-overview, assesment, podcast}
func (h *AnalysisController) Process(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	endpoint := c.Params("endpoint")
	if !analysisModel.ValidEndpoint(endpoint) {
		return helper.JsonError(c, fiber.StatusNotFound, "Unknown analysis endpoint")
	}

	var req analysisDTO.AnalyzeFileRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	if err := validateAnalysis.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	// Cek cache dulu: pasangan (file, endpoint) hanya diproses sekali.
	var existing analysisModel.AnalysisResultModel
	err = h.DB.Where("file_id = ? AND endpoint = ?", req.FileID, endpoint).First(&existing).Error
	if err == nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "File already processed")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memeriksa cache analisis")
	}

	fileURL := req.FileURL
	if fileURL == "" {
		var material materialModel.MaterialModel
		if err := h.DB.Where("id = ? AND teacher_id = ?", req.FileID, teacherID).
			First(&material).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return helper.JsonError(c, fiber.StatusNotFound, "Material not found or access denied")
			}
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil material")
		}
		if material.FileURL == "" {
			return helper.JsonError(c, fiber.StatusNotFound, "Material has no file")
		}
		fileURL = material.FileURL
	}

	output, err := h.Analyzer.Analyze(c.Context(), endpoint, fileURL)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadGateway, err.Error())
	}

	result := analysisModel.AnalysisResultModel{
		FileID:   req.FileID,
		FileURL:  fileURL,
		Endpoint: endpoint,
		Output:   datatypes.JSON(output),
	}
	if err := h.DB.Create(&result).Error; err != nil {
		// Request kembar lolos dari cek cache; unique index yang menutup.
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusBadRequest, "File already processed")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan hasil analisis")
	}
	return helper.JsonOK(c, "File processed successfully", analysisDTO.NewAnalysisResultResponse(&result))
}
