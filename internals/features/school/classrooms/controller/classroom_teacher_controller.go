package controller

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	progressModel "kelasku_backend/internals/features/progress/progress/model"
	announcementModel "kelasku_backend/internals/features/school/announcements/model"
	assignmentModel "kelasku_backend/internals/features/school/assignments/model"
	classDTO "kelasku_backend/internals/features/school/classrooms/dto"
	classModel "kelasku_backend/internals/features/school/classrooms/model"
	materialModel "kelasku_backend/internals/features/school/materials/model"
	subjectModel "kelasku_backend/internals/features/school/subjects/model"
	helper "kelasku_backend/internals/helpers"
)

// ClassroomTeacherController: operasi classroom di sisi teacher.
// Semua query wajib membawa filter teacher_id = caller (ownership scope);
// baris di luar scope dijawab 404, tanpa membocorkan keberadaannya.
type ClassroomTeacherController struct{ DB *gorm.DB }

func NewClassroomTeacherController(db *gorm.DB) *ClassroomTeacherController {
	return &ClassroomTeacherController{DB: db}
}

var validateClassroom = validator.New()

// ===================== CREATE =====================
// POST /api/teacher/classroom
func (h *ClassroomTeacherController) Create(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req classDTO.CreateClassroomRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := validateClassroom.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	// Generate kode unik: probe ke DB, ulang saat tabrakan. Probe dan insert
	// bisa balapan antar request, jadi unique violation saat insert juga
	// diulang dengan kode baru (sabuk terakhirnya index unik class_code).
	var room classModel.ClassroomModel
	for attempt := 0; ; attempt++ {
		code, err := helper.GenerateUniqueClassCode(func(code string) (bool, error) {
			var n int64
			if err := h.DB.Model(&classModel.ClassroomModel{}).
				Where("class_code = ?", code).Count(&n).Error; err != nil {
				return false, err
			}
			return n > 0, nil
		})
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal generate class code")
		}

		room = classModel.ClassroomModel{
			Name:        req.Name,
			Description: req.Description,
			ClassCode:   code,
			TeacherID:   teacherID,
		}
		err = h.DB.Create(&room).Error
		if err == nil {
			break
		}
		if helper.IsUniqueViolation(err) && attempt < 3 {
			continue
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat classroom")
	}
	return helper.JsonCreated(c, "Classroom created successfully", classDTO.NewClassroomResponse(&room))
}

// ===================== LIST =====================
// GET /api/teacher/classrooms
func (h *ClassroomTeacherController) List(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var rooms []classModel.ClassroomModel
	if err := h.DB.Where("teacher_id = ?", teacherID).
		Order("created_at DESC").Find(&rooms).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil classrooms")
	}

	out := make([]classDTO.ClassroomResponse, 0, len(rooms))
	for i := range rooms {
		resp := classDTO.NewClassroomResponse(&rooms[i])
		students, err := h.listStudents(rooms[i].ID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil murid")
		}
		resp.Students = students
		out = append(out, resp)
	}
	return helper.JsonOK(c, "", out)
}

// GET /api/teacher/classroom/:classroomId
func (h *ClassroomTeacherController) GetByID(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	roomID, err := uuid.Parse(c.Params("classroomId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	room, ferr := h.findOwned(roomID, teacherID)
	if ferr != nil {
		return helper.FromFiberError(c, ferr)
	}

	resp := classDTO.NewClassroomResponse(room)
	if resp.Students, err = h.listStudents(room.ID); err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil murid")
	}
	var subjects []subjectModel.SubjectModel
	if err := h.DB.Where("classroom_id = ?", room.ID).Find(&subjects).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil subjects")
	}
	resp.Subjects = subjects
	return helper.JsonOK(c, "", resp)
}

// ===================== SEARCH =====================
// GET /api/teacher/search-classrooms?query=
func (h *ClassroomTeacherController) Search(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	query := strings.TrimSpace(c.Query("query"))
	if query == "" {
		return helper.JsonError(c, fiber.StatusBadRequest, "Query parameter is required")
	}

	pattern := "%" + strings.ToLower(query) + "%"
	var rooms []classModel.ClassroomModel
	if err := h.DB.
		Where("teacher_id = ?", teacherID).
		Where("LOWER(name) LIKE ? OR LOWER(class_code) LIKE ?", pattern, pattern).
		Find(&rooms).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mencari classrooms")
	}

	out := make([]classDTO.ClassroomResponse, 0, len(rooms))
	for i := range rooms {
		out = append(out, classDTO.NewClassroomResponse(&rooms[i]))
	}
	return helper.JsonOK(c, "", out)
}

// ===================== DASHBOARD =====================
// GET /api/teacher/dashboard
func (h *ClassroomTeacherController) Dashboard(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var rooms []classModel.ClassroomModel
	if err := h.DB.Where("teacher_id = ?", teacherID).Find(&rooms).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil classrooms")
	}

	var totalStudents int64
	roomIDs := make([]uuid.UUID, 0, len(rooms))
	for i := range rooms {
		roomIDs = append(roomIDs, rooms[i].ID)
	}
	if len(roomIDs) > 0 {
		if err := h.DB.Model(&classModel.ClassroomStudentModel{}).
			Where("classroom_id IN ?", roomIDs).Count(&totalStudents).Error; err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghitung murid")
		}
	}

	var totalSubjects, totalMaterials, totalAssignments int64
	h.DB.Model(&subjectModel.SubjectModel{}).Where("teacher_id = ?", teacherID).Count(&totalSubjects)
	h.DB.Model(&materialModel.MaterialModel{}).Where("teacher_id = ?", teacherID).Count(&totalMaterials)
	h.DB.Model(&assignmentModel.AssignmentModel{}).Where("teacher_id = ?", teacherID).Count(&totalAssignments)

	out := make([]classDTO.ClassroomResponse, 0, len(rooms))
	for i := range rooms {
		resp := classDTO.NewClassroomResponse(&rooms[i])
		if resp.Students, err = h.listStudents(rooms[i].ID); err != nil {
			return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil murid")
		}
		out = append(out, resp)
	}

	return helper.JsonOK(c, "", fiber.Map{
		"classrooms": out,
		"stats": fiber.Map{
			"totalClassrooms":  len(rooms),
			"totalStudents":    totalStudents,
			"totalSubjects":    totalSubjects,
			"totalMaterials":   totalMaterials,
			"totalAssignments": totalAssignments,
		},
	})
}

// ===================== DELETE =====================
// DELETE /api/teacher/classrooms/:classroomId
// Turut menghapus subjects/materials/assignments/announcements/enrollment
// di bawahnya (lihat DESIGN.md soal hardening referensi yatim).
func (h *ClassroomTeacherController) Delete(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	roomID, err := uuid.Parse(c.Params("classroomId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	room, ferr := h.findOwned(roomID, teacherID)
	if ferr != nil {
		return helper.FromFiberError(c, ferr)
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		var subjectIDs []string
		if err := tx.Model(&subjectModel.SubjectModel{}).
			Where("classroom_id = ?", room.ID).Pluck("id", &subjectIDs).Error; err != nil {
			return err
		}
		if len(subjectIDs) > 0 {
			var materialIDs []string
			if err := tx.Model(&materialModel.MaterialModel{}).
				Where("subject_id IN ?", subjectIDs).Pluck("id", &materialIDs).Error; err != nil {
				return err
			}
			if len(materialIDs) > 0 {
				if err := tx.Delete(&progressModel.ProgressModel{}, "material_id IN ?", materialIDs).Error; err != nil {
					return err
				}
			}
			if err := tx.Delete(&materialModel.MaterialModel{}, "subject_id IN ?", subjectIDs).Error; err != nil {
				return err
			}
			if err := tx.Delete(&assignmentModel.AssignmentModel{}, "subject_id IN ?", subjectIDs).Error; err != nil {
				return err
			}
			if err := tx.Delete(&subjectModel.SubjectModel{}, "id IN ?", subjectIDs).Error; err != nil {
				return err
			}
		}
		if err := tx.Delete(&announcementModel.AnnouncementModel{}, "classroom_id = ?", room.ID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&classModel.ClassroomStudentModel{}, "classroom_id = ?", room.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&classModel.ClassroomModel{}, "id = ?", room.ID).Error
	})
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus classroom")
	}
	return helper.JsonDeleted(c, "Classroom deleted successfully", fiber.Map{"classroom_id": room.ID})
}

/* ===============================
   Internal
=================================*/

// findOwned: tenant guard, di luar scope dijawab 404.
// Error dikembalikan sebagai *fiber.Error; caller yang menulis response
// (lewat helper.FromFiberError) supaya nil-model tidak pernah dipakai.
func (h *ClassroomTeacherController) findOwned(roomID, teacherID uuid.UUID) (*classModel.ClassroomModel, error) {
	var room classModel.ClassroomModel
	if err := h.DB.Where("id = ? AND teacher_id = ?", roomID, teacherID).First(&room).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Classroom not found or access denied")
		}
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Gagal mengambil classroom")
	}
	return &room, nil
}

func (h *ClassroomTeacherController) listStudents(roomID uuid.UUID) ([]classDTO.StudentLite, error) {
	var students []classDTO.StudentLite
	err := h.DB.Table("classroom_students").
		Select("users.id, users.name, users.email").
		Joins("JOIN users ON users.id = classroom_students.student_id").
		Where("classroom_students.classroom_id = ?", roomID).
		Scan(&students).Error
	return students, err
}
