package dto

import (
	"time"

	"github.com/google/uuid"

	progressModel "kelasku_backend/internals/features/progress/progress/model"
)

type UpdateProgressRequest struct {
	Progress  *int  `json:"progress" validate:"omitempty,min=0,max=100"`
	Completed *bool `json:"completed"`
}

type ProgressResponse struct {
	ID          uuid.UUID  `json:"id"`
	StudentID   uuid.UUID  `json:"student_id"`
	MaterialID  uuid.UUID  `json:"material_id"`
	SubjectID   uuid.UUID  `json:"subject_id"`
	Completed   bool       `json:"completed"`
	Progress    int        `json:"progress"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func NewProgressResponse(m *progressModel.ProgressModel) ProgressResponse {
	return ProgressResponse{
		ID:          m.ID,
		StudentID:   m.StudentID,
		MaterialID:  m.MaterialID,
		SubjectID:   m.SubjectID,
		Completed:   m.Completed,
		Progress:    m.Progress,
		CompletedAt: m.CompletedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
