package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Endpoint analisis yang tersedia di layanan eksternal.
const (
	EndpointBriefOverview = "brief-overview"
	EndpointAssesment     = "assesment"
	EndpointPodcast       = "podcast"
)

func ValidEndpoint(e string) bool {
	switch e {
	case EndpointBriefOverview, EndpointAssesment, EndpointPodcast:
		return true
	}
	return false
}

// AnalysisResultModel menyimpan output layanan analisis dokumen.
// Unique index (file_id, endpoint): file yang sama tidak diproses dua kali
// untuk endpoint yang sama.
type AnalysisResultModel struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	FileID    uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_file_endpoint" json:"file_id"`
	FileURL   string         `gorm:"not null" json:"file_url"`
	Endpoint  string         `gorm:"type:varchar(30);not null;uniqueIndex:idx_file_endpoint" json:"endpoint"`
	Output    datatypes.JSON `gorm:"not null" json:"output"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

func (AnalysisResultModel) TableName() string { return "analysis_results" }

func (m *AnalysisResultModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
