package dto

import (
	"time"

	"github.com/google/uuid"

	announcementModel "kelasku_backend/internals/features/school/announcements/model"
)

type CreateAnnouncementRequest struct {
	Title string `json:"title" validate:"max=150"`
	Text  string `json:"text" validate:"required"`
}

type AnnouncementResponse struct {
	ID          uuid.UUID `json:"id"`
	ClassroomID uuid.UUID `json:"classroom_id"`
	TeacherID   uuid.UUID `json:"teacher_id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewAnnouncementResponse(m *announcementModel.AnnouncementModel) AnnouncementResponse {
	return AnnouncementResponse{
		ID:          m.ID,
		ClassroomID: m.ClassroomID,
		TeacherID:   m.TeacherID,
		Title:       m.Title,
		Content:     m.Content,
		CreatedAt:   m.CreatedAt,
	}
}
