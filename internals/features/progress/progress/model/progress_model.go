package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProgressModel mencatat penyelesaian material per murid.
// Unique index (student_id, material_id) menjamin satu baris per pasangan,
// termasuk saat dua request menandai material yang sama bersamaan.
type ProgressModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	StudentID   uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_student_material" json:"student_id"`
	MaterialID  uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_student_material" json:"material_id"`
	SubjectID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"subject_id"`
	Completed   bool       `gorm:"not null;default:false" json:"completed"`
	Progress    int        `gorm:"not null;default:0" json:"progress"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (ProgressModel) TableName() string { return "progress" }

func (m *ProgressModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
