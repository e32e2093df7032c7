package controller

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	assignmentDTO "kelasku_backend/internals/features/school/assignments/dto"
	assignmentModel "kelasku_backend/internals/features/school/assignments/model"
	helper "kelasku_backend/internals/helpers"
	"kelasku_backend/internals/helpers/media"
	"kelasku_backend/internals/helpers/scope"
)

// AssignmentTeacherController: operasi assignment di sisi teacher.
// Lampiran multipart diunggah satu per satu ke OSS; tanpa file,
// daftar URL di body dipakai apa adanya.
type AssignmentTeacherController struct {
	DB       *gorm.DB
	Uploader media.Uploader
}

func NewAssignmentTeacherController(db *gorm.DB, up media.Uploader) *AssignmentTeacherController {
	return &AssignmentTeacherController{DB: db, Uploader: up}
}

var validateAssignment = validator.New()

// ===================== CREATE =====================
// POST /api/teacher/assignment (multipart, field "attachments")
func (h *AssignmentTeacherController) Create(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var req assignmentDTO.CreateAssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Payload tidak valid")
	}
	req.Title = strings.TrimSpace(req.Title)
	if err := validateAssignment.Struct(req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid due date")
	}

	// Guard induk dulu: subject harus milik caller.
	if _, err := scope.SubjectOwned(h.DB, teacherID, req.SubjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Subject not found or access denied")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil subject")
	}

	attachments := req.Attachments
	if form, err := c.MultipartForm(); err == nil && form != nil {
		if files := form.File["attachments"]; len(files) > 0 {
			attachments = make([]string, 0, len(files))
			for _, fh := range files {
				url, err := h.Uploader.UploadAny(c.Context(), "assignments", fh)
				if err != nil {
					return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengunggah lampiran")
				}
				attachments = append(attachments, url)
			}
		}
	}
	if attachments == nil {
		attachments = []string{}
	}
	rawAttachments, err := json.Marshal(attachments)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyiapkan lampiran")
	}

	totalPoints := req.TotalPoints
	if totalPoints == 0 {
		totalPoints = 100
	}

	assignment := assignmentModel.AssignmentModel{
		Title:        req.Title,
		Description:  req.Description,
		Instructions: req.Instructions,
		DueDate:      dueDate,
		TotalPoints:  totalPoints,
		Attachments:  datatypes.JSON(rawAttachments),
		SubjectID:    req.SubjectID,
		TeacherID:    teacherID,
	}
	if err := h.DB.Create(&assignment).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat assignment")
	}
	return helper.JsonCreated(c, "Assignment created successfully", assignmentDTO.NewAssignmentResponse(&assignment))
}

// ===================== LIST =====================
// GET /api/teacher/assignments
func (h *AssignmentTeacherController) List(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}

	var assignments []assignmentModel.AssignmentModel
	if err := h.DB.Where("teacher_id = ?", teacherID).
		Order("due_date ASC").Find(&assignments).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil assignments")
	}
	return helper.JsonOK(c, "", toAssignmentResponses(assignments))
}

// GET /api/teacher/subjects/:subjectId/assignments
func (h *AssignmentTeacherController) ListBySubject(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	subjectID, err := uuid.Parse(c.Params("subjectId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	if _, err := scope.SubjectOwned(h.DB, teacherID, subjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Subject not found or access denied")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil subject")
	}

	var assignments []assignmentModel.AssignmentModel
	if err := h.DB.Where("subject_id = ?", subjectID).
		Order("due_date ASC").Find(&assignments).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil assignments")
	}
	return helper.JsonOK(c, "", toAssignmentResponses(assignments))
}

// GET /api/teacher/classrooms/:classroomId/assignments
func (h *AssignmentTeacherController) ListByClassroom(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	roomID, err := uuid.Parse(c.Params("classroomId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	if _, err := scope.ClassroomOwned(h.DB, teacherID, roomID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Classroom not found or access denied")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil classroom")
	}

	var assignments []assignmentModel.AssignmentModel
	if err := h.DB.
		Joins("JOIN subjects ON subjects.id = assignments.subject_id").
		Where("subjects.classroom_id = ?", roomID).
		Order("assignments.due_date ASC").
		Find(&assignments).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil assignments")
	}
	return helper.JsonOK(c, "", toAssignmentResponses(assignments))
}

// ===================== DELETE =====================
// DELETE /api/teacher/assignments/:assignmentId
func (h *AssignmentTeacherController) Delete(c *fiber.Ctx) error {
	teacherID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, err.Error())
	}
	assignmentID, err := uuid.Parse(c.Params("assignmentId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
	}

	var assignment assignmentModel.AssignmentModel
	if err := h.DB.Where("id = ? AND teacher_id = ?", assignmentID, teacherID).
		First(&assignment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Assignment not found or access denied")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil assignment")
	}

	if err := h.DB.Delete(&assignmentModel.AssignmentModel{}, "id = ?", assignment.ID).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menghapus assignment")
	}
	return helper.JsonDeleted(c, "Assignment deleted successfully", fiber.Map{"assignment_id": assignment.ID})
}

/* ===============================
   Internal
=================================*/

// parseDueDate menerima RFC3339 atau tanggal polos YYYY-MM-DD.
func parseDueDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

func toAssignmentResponses(assignments []assignmentModel.AssignmentModel) []assignmentDTO.AssignmentResponse {
	out := make([]assignmentDTO.AssignmentResponse, 0, len(assignments))
	for i := range assignments {
		out = append(out, assignmentDTO.NewAssignmentResponse(&assignments[i]))
	}
	return out
}
