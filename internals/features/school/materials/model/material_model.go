package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Jenis material yang didukung.
const (
	TypePodcast  = "podcast"
	TypePPT      = "ppt"
	TypeSummary  = "summary"
	TypeVideo    = "video"
	TypeDocument = "document"
)

func ValidType(t string) bool {
	switch t {
	case TypePodcast, TypePPT, TypeSummary, TypeVideo, TypeDocument:
		return true
	}
	return false
}

// MaterialModel merepresentasikan tabel materials.
type MaterialModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"size:150;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Type        string    `gorm:"type:varchar(20);not null" json:"type"`
	FileURL     string    `gorm:"not null" json:"file_url"`
	SubjectID   uuid.UUID `gorm:"type:uuid;not null;index" json:"subject_id"`
	TeacherID   uuid.UUID `gorm:"type:uuid;not null;index" json:"teacher_id"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (MaterialModel) TableName() string { return "materials" }

func (m *MaterialModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
