package database

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"kelasku_backend/internals/configs"
	analysisModel "kelasku_backend/internals/features/analysis/model"
	progressModel "kelasku_backend/internals/features/progress/progress/model"
	announcementModel "kelasku_backend/internals/features/school/announcements/model"
	assignmentModel "kelasku_backend/internals/features/school/assignments/model"
	classroomModel "kelasku_backend/internals/features/school/classrooms/model"
	materialModel "kelasku_backend/internals/features/school/materials/model"
	subjectModel "kelasku_backend/internals/features/school/subjects/model"
	userModel "kelasku_backend/internals/features/users/user/model"
)

// Connect membuka koneksi PostgreSQL sesuai Config.
func Connect(cfg *configs.Config) (*gorm.DB, error) {
	log.Println("🔌 Koneksi ke PostgreSQL...")

	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=kelasku&options=-c statement_timeout=3000",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBSSLMode,
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // cocok untuk PgBouncer (transaction pooling)
	}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("gagal konek DB: %w", err)
	}
	log.Println("✅ DB connected.")
	return db, nil
}

// TunePool menyesuaikan pool dengan limit dari provider.
func TunePool(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

// Migrate menjalankan AutoMigrate seluruh model. Unique index komposit
// (classroom_students, progress, analysis_results) harus terpasang di store,
// bukan sekadar dicek di aplikasi.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userModel.UserModel{},
		&classroomModel.ClassroomModel{},
		&classroomModel.ClassroomStudentModel{},
		&subjectModel.SubjectModel{},
		&materialModel.MaterialModel{},
		&assignmentModel.AssignmentModel{},
		&announcementModel.AnnouncementModel{},
		&progressModel.ProgressModel{},
		&analysisModel.AnalysisResultModel{},
	)
}
