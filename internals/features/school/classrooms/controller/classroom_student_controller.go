package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	progressModel "kelasku_backend/internals/features/progress/progress/model"
	classDTO "kelasku_backend/internals/features/school/classrooms/dto"
	classModel "kelasku_backend/internals/features/school/classrooms/model"
	materialModel "kelasku_backend/internals/features/school/materials/model"
	subjectModel "kelasku_backend/internals/features/school/subjects/model"
	helper "kelasku_backend/internals/helpers"
	"kelasku_backend/internals/helpers/scope"
)

// ClassroomStudentController: operasi classroom di sisi murid.
// Scope = enrollment: kelas hanya kelihatan bila murid ada di
// classroom_students; kelas lain dijawab 404.
type ClassroomStudentController struct{ DB *gorm.DB }

func NewClassroomStudentController(db *gorm.DB) *ClassroomStudentController {
	return &ClassroomStudentController{DB: db}
}

// ===================== JOIN =====================
// POST /api/student/join-class
func (h *ClassroomStudentController) Join(c *fiber.Ctx) error {
	studentID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req classDTO.JoinClassRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.ClassCode = strings.ToUpper(strings.TrimSpace(req.ClassCode))
	if err := validateClassroom.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var room classModel.ClassroomModel
	if err := h.DB.Where("class_code = ?", req.ClassCode).First(&room).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Invalid class code")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil classroom")
	}

	enrolled, err := scope.IsEnrolled(h.DB, studentID, room.ID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal cek keanggotaan")
	}
	if enrolled {
		return helper.JsonError(c, fiber.StatusBadRequest, "Already enrolled in this classroom")
	}

	member := classModel.ClassroomStudentModel{ClassroomID: room.ID, StudentID: studentID}
	if err := h.DB.Create(&member).Error; err != nil {
		// unique index (classroom_id, student_id) menutup race join ganda
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusBadRequest, "Already enrolled in this classroom")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal join classroom")
	}

	resp := classDTO.NewClassroomResponse(&room)
	resp.Teacher, _ = h.teacherLite(room.TeacherID)
	return helper.JsonOK(c, "Successfully joined classroom", resp)
}

// ===================== LIST =====================
// GET /api/student/classrooms
func (h *ClassroomStudentController) List(c *fiber.Ctx) error {
	studentID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	rooms, err := h.enrolledClassrooms(studentID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil classrooms")
	}
	out := make([]classDTO.ClassroomResponse, 0, len(rooms))
	for i := range rooms {
		resp := classDTO.NewClassroomResponse(&rooms[i])
		resp.Teacher, _ = h.teacherLite(rooms[i].TeacherID)
		out = append(out, resp)
	}
	return helper.JsonOK(c, "", out)
}

// GET /api/student/classroom/:classroomId
func (h *ClassroomStudentController) GetByID(c *fiber.Ctx) error {
	studentID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	roomID, err := uuid.Parse(c.Params("classroomId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	enrolled, err := scope.IsEnrolled(h.DB, studentID, roomID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal cek keanggotaan")
	}
	if !enrolled {
		return helper.JsonError(c, fiber.StatusNotFound, "Classroom not found or access denied")
	}

	var room classModel.ClassroomModel
	if err := h.DB.First(&room, "id = ?", roomID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil classroom")
	}

	resp := classDTO.NewClassroomResponse(&room)
	resp.Teacher, _ = h.teacherLite(room.TeacherID)
	var subjects []subjectModel.SubjectModel
	if err := h.DB.Where("classroom_id = ?", room.ID).Find(&subjects).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil subjects")
	}
	resp.Subjects = subjects
	return helper.JsonOK(c, "", resp)
}

// ===================== DASHBOARD =====================
// GET /api/student/dashboard
func (h *ClassroomStudentController) Dashboard(c *fiber.Ctx) error {
	studentID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	rooms, err := h.enrolledClassrooms(studentID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil classrooms")
	}
	roomIDs := make([]uuid.UUID, 0, len(rooms))
	out := make([]classDTO.ClassroomResponse, 0, len(rooms))
	for i := range rooms {
		roomIDs = append(roomIDs, rooms[i].ID)
		resp := classDTO.NewClassroomResponse(&rooms[i])
		resp.Teacher, _ = h.teacherLite(rooms[i].TeacherID)
		out = append(out, resp)
	}

	var totalSubjects, totalMaterials, completed int64
	if len(roomIDs) > 0 {
		if err := h.DB.Model(&subjectModel.SubjectModel{}).
			Where("classroom_id IN ?", roomIDs).Count(&totalSubjects).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung subjects")
		}
		if err := h.DB.Model(&materialModel.MaterialModel{}).
			Joins("JOIN subjects ON subjects.id = materials.subject_id").
			Where("subjects.classroom_id IN ?", roomIDs).
			Count(&totalMaterials).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung materials")
		}
	}
	if err := h.DB.Model(&progressModel.ProgressModel{}).
		Where("student_id = ? AND completed = ?", studentID, true).
		Count(&completed).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung progress")
	}

	pct := 0
	if totalMaterials > 0 {
		pct = int(completed * 100 / totalMaterials)
	}
	return helper.JsonOK(c, "", fiber.Map{
		"classrooms": out,
		"stats": fiber.Map{
			"totalClassrooms":    len(rooms),
			"totalSubjects":      totalSubjects,
			"totalMaterials":     totalMaterials,
			"completedMaterials": completed,
			"progressPercentage": pct,
		},
	})
}

// ===================== LEAVE =====================
// DELETE /api/student/classrooms/:classroomId
// Keluar kelas: baris keanggotaan + progress materi kelas itu ikut dihapus.
func (h *ClassroomStudentController) Leave(c *fiber.Ctx) error {
	studentID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	roomID, err := uuid.Parse(c.Params("classroomId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	enrolled, err := scope.IsEnrolled(h.DB, studentID, roomID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal cek keanggotaan")
	}
	if !enrolled {
		return helper.JsonError(c, fiber.StatusNotFound, "Classroom not found or access denied")
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		var materialIDs []string
		if err := tx.Model(&materialModel.MaterialModel{}).
			Joins("JOIN subjects ON subjects.id = materials.subject_id").
			Where("subjects.classroom_id = ?", roomID).
			Pluck("materials.id", &materialIDs).Error; err != nil {
			return err
		}
		if len(materialIDs) > 0 {
			if err := tx.Delete(&progressModel.ProgressModel{},
				"student_id = ? AND material_id IN ?", studentID, materialIDs).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&classModel.ClassroomStudentModel{},
			"classroom_id = ? AND student_id = ?", roomID, studentID).Error
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal keluar classroom")
	}
	return helper.JsonDeleted(c, "Removed from classroom successfully", fiber.Map{"classroom_id": roomID})
}

/* ===============================
   Internal
=================================*/

func (h *ClassroomStudentController) enrolledClassrooms(studentID uuid.UUID) ([]classModel.ClassroomModel, error) {
	var rooms []classModel.ClassroomModel
	err := h.DB.
		Joins("JOIN classroom_students cs ON cs.classroom_id = classrooms.id").
		Where("cs.student_id = ?", studentID).
		Order("classrooms.created_at DESC").
		Find(&rooms).Error
	return rooms, err
}

func (h *ClassroomStudentController) teacherLite(teacherID uuid.UUID) (*classDTO.TeacherLite, error) {
	var t classDTO.TeacherLite
	err := h.DB.Table("users").
		Select("id, name, email").
		Where("id = ?", teacherID).
		Scan(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}
