package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	assignmentModel "kelasku_backend/internals/features/school/assignments/model"
)

type CreateAssignmentRequest struct {
	Title        string    `form:"title" validate:"required,min=1,max=150"`
	Description  string    `form:"description" validate:"max=2000"`
	Instructions string    `form:"instructions" validate:"max=5000"`
	DueDate      string    `form:"dueDate" validate:"required"`
	TotalPoints  int       `form:"totalPoints" validate:"omitempty,min=0,max=1000"`
	SubjectID    uuid.UUID `form:"subjectId" validate:"required"`

	// Fallback tanpa file: daftar URL lampiran di body.
	Attachments []string `form:"attachments"`
}

type AssignmentResponse struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Instructions string    `json:"instructions"`
	DueDate      time.Time `json:"due_date"`
	TotalPoints  int       `json:"total_points"`
	Attachments  []string  `json:"attachments"`
	SubjectID    uuid.UUID `json:"subject_id"`
	TeacherID    uuid.UUID `json:"teacher_id"`
	CreatedAt    time.Time `json:"created_at"`
}

func NewAssignmentResponse(m *assignmentModel.AssignmentModel) AssignmentResponse {
	attachments := []string{}
	if len(m.Attachments) > 0 {
		_ = json.Unmarshal(m.Attachments, &attachments)
	}
	return AssignmentResponse{
		ID:           m.ID,
		Title:        m.Title,
		Description:  m.Description,
		Instructions: m.Instructions,
		DueDate:      m.DueDate,
		TotalPoints:  m.TotalPoints,
		Attachments:  attachments,
		SubjectID:    m.SubjectID,
		TeacherID:    m.TeacherID,
		CreatedAt:    m.CreatedAt,
	}
}
