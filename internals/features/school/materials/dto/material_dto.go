package dto

import (
	"time"

	"github.com/google/uuid"

	materialModel "kelasku_backend/internals/features/school/materials/model"
)

type CreateMaterialRequest struct {
	Title       string    `form:"title" validate:"required,min=1,max=150"`
	Description string    `form:"description" validate:"max=2000"`
	Type        string    `form:"type" validate:"required"`
	SubjectID   uuid.UUID `form:"subjectId" validate:"required"`
}

type MaterialResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Type        string    `json:"type"`
	FileURL     string    `json:"file_url"`
	SubjectID   uuid.UUID `json:"subject_id"`
	TeacherID   uuid.UUID `json:"teacher_id"`
	CreatedAt   time.Time `json:"created_at"`

	// Sisi murid: status progress caller untuk material ini.
	Progress    *int       `json:"progress,omitempty"`
	Completed   *bool      `json:"completed,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

func NewMaterialResponse(m *materialModel.MaterialModel) MaterialResponse {
	return MaterialResponse{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Type:        m.Type,
		FileURL:     m.FileURL,
		SubjectID:   m.SubjectID,
		TeacherID:   m.TeacherID,
		CreatedAt:   m.CreatedAt,
	}
}
