package service

import (
	"fmt"

	"gorm.io/gorm"

	progressModel "kelasku_backend/internals/features/progress/progress/model"
	announcementModel "kelasku_backend/internals/features/school/announcements/model"
	assignmentModel "kelasku_backend/internals/features/school/assignments/model"
	classroomModel "kelasku_backend/internals/features/school/classrooms/model"
	materialModel "kelasku_backend/internals/features/school/materials/model"
	subjectModel "kelasku_backend/internals/features/school/subjects/model"
	userModel "kelasku_backend/internals/features/users/user/model"
)

// DeleteUserCascade menghapus akun beserta seluruh data turunannya dalam
// satu transaksi, urut dari anak ke induk supaya tidak ada baris yatim.
func DeleteUserCascade(db *gorm.DB, user *userModel.UserModel) error {
	return db.Transaction(func(tx *gorm.DB) error {
		switch user.Role {
		case userModel.RoleStudent:
			if err := deleteStudentData(tx, user); err != nil {
				return err
			}
		case userModel.RoleTeacher:
			if err := deleteTeacherData(tx, user); err != nil {
				return err
			}
		}
		if err := tx.Delete(&userModel.UserModel{}, "id = ?", user.ID).Error; err != nil {
			return fmt.Errorf("hapus user: %w", err)
		}
		return nil
	})
}

// Student: keluar dari semua kelas + hapus progress miliknya.
func deleteStudentData(tx *gorm.DB, user *userModel.UserModel) error {
	if err := tx.Delete(&classroomModel.ClassroomStudentModel{}, "student_id = ?", user.ID).Error; err != nil {
		return fmt.Errorf("hapus keanggotaan kelas: %w", err)
	}
	if err := tx.Delete(&progressModel.ProgressModel{}, "student_id = ?", user.ID).Error; err != nil {
		return fmt.Errorf("hapus progress: %w", err)
	}
	return nil
}

// Teacher: hapus semua entitas miliknya, urut dependensi
// (assignments/materials → subjects → announcements/enrollment → classrooms).
func deleteTeacherData(tx *gorm.DB, user *userModel.UserModel) error {
	var materialIDs []string
	if err := tx.Model(&materialModel.MaterialModel{}).
		Where("teacher_id = ?", user.ID).
		Pluck("id", &materialIDs).Error; err != nil {
		return fmt.Errorf("ambil materials: %w", err)
	}
	if len(materialIDs) > 0 {
		// progress murid yang menunjuk material milik teacher ini ikut hilang
		if err := tx.Delete(&progressModel.ProgressModel{}, "material_id IN ?", materialIDs).Error; err != nil {
			return fmt.Errorf("hapus progress materi: %w", err)
		}
	}

	if err := tx.Delete(&assignmentModel.AssignmentModel{}, "teacher_id = ?", user.ID).Error; err != nil {
		return fmt.Errorf("hapus assignments: %w", err)
	}
	if err := tx.Delete(&materialModel.MaterialModel{}, "teacher_id = ?", user.ID).Error; err != nil {
		return fmt.Errorf("hapus materials: %w", err)
	}
	if err := tx.Delete(&subjectModel.SubjectModel{}, "teacher_id = ?", user.ID).Error; err != nil {
		return fmt.Errorf("hapus subjects: %w", err)
	}
	if err := tx.Delete(&announcementModel.AnnouncementModel{}, "teacher_id = ?", user.ID).Error; err != nil {
		return fmt.Errorf("hapus announcements: %w", err)
	}

	var classroomIDs []string
	if err := tx.Model(&classroomModel.ClassroomModel{}).
		Where("teacher_id = ?", user.ID).
		Pluck("id", &classroomIDs).Error; err != nil {
		return fmt.Errorf("ambil classrooms: %w", err)
	}
	if len(classroomIDs) > 0 {
		if err := tx.Delete(&classroomModel.ClassroomStudentModel{}, "classroom_id IN ?", classroomIDs).Error; err != nil {
			return fmt.Errorf("hapus keanggotaan kelas: %w", err)
		}
	}
	if err := tx.Delete(&classroomModel.ClassroomModel{}, "teacher_id = ?", user.ID).Error; err != nil {
		return fmt.Errorf("hapus classrooms: %w", err)
	}
	return nil
}
