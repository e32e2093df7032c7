package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AssignmentModel merepresentasikan tabel assignments.
// Attachments = daftar URL lampiran, disimpan sebagai kolom JSON.
type AssignmentModel struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Title        string         `gorm:"size:150;not null" json:"title"`
	Description  string         `gorm:"type:text" json:"description"`
	Instructions string         `gorm:"type:text" json:"instructions"`
	DueDate      time.Time      `gorm:"not null" json:"due_date"`
	TotalPoints  int            `gorm:"not null;default:100" json:"total_points"`
	Attachments  datatypes.JSON `json:"attachments"`
	SubjectID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"subject_id"`
	TeacherID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"teacher_id"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (AssignmentModel) TableName() string { return "assignments" }

func (m *AssignmentModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
