package dto

import (
	"time"

	"github.com/google/uuid"

	subjectModel "kelasku_backend/internals/features/school/subjects/model"
)

type CreateSubjectRequest struct {
	Name        string    `json:"name" validate:"required,min=1,max=120"`
	Description string    `json:"description" validate:"max=2000"`
	ClassroomID uuid.UUID `json:"classroomId" validate:"required"`
}

type SubjectResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ClassroomID uuid.UUID `json:"classroom_id"`
	TeacherID   uuid.UUID `json:"teacher_id"`
	CreatedAt   time.Time `json:"created_at"`

	// Diisi endpoint detail.
	Materials   any `json:"materials,omitempty"`
	Assignments any `json:"assignments,omitempty"`
}

func NewSubjectResponse(m *subjectModel.SubjectModel) SubjectResponse {
	return SubjectResponse{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		ClassroomID: m.ClassroomID,
		TeacherID:   m.TeacherID,
		CreatedAt:   m.CreatedAt,
	}
}
