package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	analysisModel "kelasku_backend/internals/features/analysis/model"
)

type AnalyzeFileRequest struct {
	FileID  uuid.UUID `json:"fileId" validate:"required"`
	FileURL string    `json:"fileUrl" validate:"omitempty,url"`
}

type AnalysisResultResponse struct {
	ID        uuid.UUID       `json:"id"`
	FileID    uuid.UUID       `json:"file_id"`
	FileURL   string          `json:"file_url"`
	Endpoint  string          `json:"endpoint"`
	Output    json.RawMessage `json:"output"`
	CreatedAt time.Time       `json:"created_at"`
}

func NewAnalysisResultResponse(m *analysisModel.AnalysisResultModel) AnalysisResultResponse {
	return AnalysisResultResponse{
		ID:        m.ID,
		FileID:    m.FileID,
		FileURL:   m.FileURL,
		Endpoint:  m.Endpoint,
		Output:    json.RawMessage(m.Output),
		CreatedAt: m.CreatedAt,
	}
}
