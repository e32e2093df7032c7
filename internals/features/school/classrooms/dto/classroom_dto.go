package dto

import (
	"time"

	"github.com/google/uuid"

	classroomModel "kelasku_backend/internals/features/school/classrooms/model"
)

type CreateClassroomRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=120"`
	Description string `json:"description" validate:"max=2000"`
}

type JoinClassRequest struct {
	ClassCode string `json:"classCode" validate:"required,len=6"`
}

// StudentLite: data murid yang aman ditampilkan ke teacher sekelas.
type StudentLite struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// TeacherLite: data teacher yang tampil di sisi murid.
type TeacherLite struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

type ClassroomResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ClassCode   string    `json:"class_code"`
	TeacherID   uuid.UUID `json:"teacher_id"`
	CreatedAt   time.Time `json:"created_at"`

	// Opsional, diisi sesuai endpoint.
	Teacher  *TeacherLite  `json:"teacher,omitempty"`
	Students []StudentLite `json:"students,omitempty"`
	Subjects any           `json:"subjects,omitempty"`
}

func NewClassroomResponse(m *classroomModel.ClassroomModel) ClassroomResponse {
	return ClassroomResponse{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		ClassCode:   m.ClassCode,
		TeacherID:   m.TeacherID,
		CreatedAt:   m.CreatedAt,
	}
}
