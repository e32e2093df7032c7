package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClassroomStudentModel adalah baris keanggotaan murid di sebuah kelas.
// Unique index (classroom_id, student_id) = guard duplikat di level store.
type ClassroomStudentModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ClassroomID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_classroom_student" json:"classroom_id"`
	StudentID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_classroom_student" json:"student_id"`
	JoinedAt    time.Time `gorm:"autoCreateTime" json:"joined_at"`
}

func (ClassroomStudentModel) TableName() string { return "classroom_students" }

func (m *ClassroomStudentModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
