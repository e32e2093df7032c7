// Package scope berisi guard kepemilikan/keanggotaan yang dipakai lintas
// controller. Aturannya satu: scope diturunkan ulang dari identitas caller
// pada setiap request, dan lookup anak wajib memverifikasi induknya dulu.
package scope

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	classroomModel "kelasku_backend/internals/features/school/classrooms/model"
	subjectModel "kelasku_backend/internals/features/school/subjects/model"
)

// IsEnrolled: apakah murid terdaftar di kelas ini.
func IsEnrolled(db *gorm.DB, studentID, classroomID uuid.UUID) (bool, error) {
	var n int64
	err := db.Model(&classroomModel.ClassroomStudentModel{}).
		Where("classroom_id = ? AND student_id = ?", classroomID, studentID).
		Count(&n).Error
	return n > 0, err
}

// EnrolledClassroomIDs: seluruh kelas yang diikuti murid.
func EnrolledClassroomIDs(db *gorm.DB, studentID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := db.Model(&classroomModel.ClassroomStudentModel{}).
		Where("student_id = ?", studentID).
		Pluck("classroom_id", &ids).Error
	return ids, err
}

// SubjectForStudent me-load subject hanya bila murid terdaftar di classroom
// induknya. Di luar scope = gorm.ErrRecordNotFound (tidak bocor keberadaan).
func SubjectForStudent(db *gorm.DB, studentID, subjectID uuid.UUID) (*subjectModel.SubjectModel, error) {
	var subject subjectModel.SubjectModel
	err := db.
		Joins("JOIN classroom_students cs ON cs.classroom_id = subjects.classroom_id AND cs.student_id = ?", studentID).
		Where("subjects.id = ?", subjectID).
		First(&subject).Error
	if err != nil {
		return nil, err
	}
	return &subject, nil
}

// SubjectOwned me-load subject milik teacher; di luar scope = not found.
func SubjectOwned(db *gorm.DB, teacherID, subjectID uuid.UUID) (*subjectModel.SubjectModel, error) {
	var subject subjectModel.SubjectModel
	err := db.Where("id = ? AND teacher_id = ?", subjectID, teacherID).First(&subject).Error
	if err != nil {
		return nil, err
	}
	return &subject, nil
}

// ClassroomOwned me-load classroom milik teacher; di luar scope = not found.
func ClassroomOwned(db *gorm.DB, teacherID, classroomID uuid.UUID) (*classroomModel.ClassroomModel, error) {
	var room classroomModel.ClassroomModel
	err := db.Where("id = ? AND teacher_id = ?", classroomID, teacherID).First(&room).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}
