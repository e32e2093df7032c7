package controller_test

import (
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	classModel "kelasku_backend/internals/features/school/classrooms/model"
	subjectModel "kelasku_backend/internals/features/school/subjects/model"
	userModel "kelasku_backend/internals/features/users/user/model"
	"kelasku_backend/internals/testutil"
)

func TestCreateAssignmentWithUploads(t *testing.T) {
	db := testutil.OpenTestDB(t)
	app, cfg, uploader, _ := testutil.NewTestApp(t, db)
	teacher, token := testutil.SeedUser(t, db, cfg, "Bu Sari", "sari@sekolah.id", userModel.RoleTeacher)

	room := classModel.ClassroomModel{Name: "Kelas 7A", ClassCode: "ASG001", TeacherID: teacher.ID}
	require.NoError(t, db.Create(&room).Error)
	subject := subjectModel.SubjectModel{Name: "IPA", ClassroomID: room.ID, TeacherID: teacher.ID}
	require.NoError(t, db.Create(&subject).Error)

	resp, body := testutil.DoMultipart(t, app, fiber.MethodPost, "/api/teacher/assignment", token,
		map[string]string{
			"title":        "PR Bab 1",
			"instructions": "Kerjakan soal 1-10",
			"dueDate":      time.Now().Add(7 * 24 * time.Hour).Format(time.RFC3339),
			"subjectId":    subject.ID.String(),
		},
		map[string][]byte{"attachments": []byte("soal-soal")},
	)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	data := testutil.Data(t, body)
	assert.Equal(t, "PR Bab 1", data["title"])
	assert.EqualValues(t, 100, data["total_points"])
	attachments, ok := data["attachments"].([]any)
	require.True(t, ok)
	require.Len(t, attachments, 1)
	assert.Len(t, uploader.Uploads, 1)
}

func TestCreateAssignmentWithBodyURLs(t *testing.T) {
	db := testutil.OpenTestDB(t)
	app, cfg, uploader, _ := testutil.NewTestApp(t, db)
	teacher, token := testutil.SeedUser(t, db, cfg, "Bu Sari", "sari@sekolah.id", userModel.RoleTeacher)

	room := classModel.ClassroomModel{Name: "Kelas 7A", ClassCode: "ASG002", TeacherID: teacher.ID}
	require.NoError(t, db.Create(&room).Error)
	subject := subjectModel.SubjectModel{Name: "IPA", ClassroomID: room.ID, TeacherID: teacher.ID}
	require.NoError(t, db.Create(&subject).Error)

	resp, body := testutil.DoMultipart(t, app, fiber.MethodPost, "/api/teacher/assignment", token,
		map[string]string{
			"title":       "PR Bab 2",
			"dueDate":     "2026-09-15",
			"totalPoints": "50",
			"subjectId":   subject.ID.String(),
			"attachments": "https://cdn.test/soal.pdf",
		}, nil)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	data := testutil.Data(t, body)
	assert.EqualValues(t, 50, data["total_points"])
	attachments, ok := data["attachments"].([]any)
	require.True(t, ok)
	require.Len(t, attachments, 1)
	assert.Equal(t, "https://cdn.test/soal.pdf", attachments[0])
	// Tidak ada file → OSS tidak disentuh.
	assert.Empty(t, uploader.Uploads)
}

func TestCreateAssignmentInvalidDueDate(t *testing.T) {
	db := testutil.OpenTestDB(t)
	app, cfg, _, _ := testutil.NewTestApp(t, db)
	teacher, token := testutil.SeedUser(t, db, cfg, "Bu Sari", "sari@sekolah.id", userModel.RoleTeacher)

	room := classModel.ClassroomModel{Name: "Kelas 7A", ClassCode: "ASG003", TeacherID: teacher.ID}
	require.NoError(t, db.Create(&room).Error)
	subject := subjectModel.SubjectModel{Name: "IPA", ClassroomID: room.ID, TeacherID: teacher.ID}
	require.NoError(t, db.Create(&subject).Error)

	resp, body := testutil.DoMultipart(t, app, fiber.MethodPost, "/api/teacher/assignment", token,
		map[string]string{
			"title":     "PR Aneh",
			"dueDate":   "besok sore",
			"subjectId": subject.ID.String(),
		}, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid due date", body["message"])
}

func TestStudentAssignmentsOrderedByDueDate(t *testing.T) {
	db := testutil.OpenTestDB(t)
	app, cfg, _, _ := testutil.NewTestApp(t, db)
	teacher, teacherToken := testutil.SeedUser(t, db, cfg, "Bu Sari", "sari@sekolah.id", userModel.RoleTeacher)
	student, token := testutil.SeedUser(t, db, cfg, "Budi", "budi@sekolah.id", userModel.RoleStudent)

	room := classModel.ClassroomModel{Name: "Kelas 7A", ClassCode: "ASG004", TeacherID: teacher.ID}
	require.NoError(t, db.Create(&room).Error)
	subject := subjectModel.SubjectModel{Name: "IPA", ClassroomID: room.ID, TeacherID: teacher.ID}
	require.NoError(t, db.Create(&subject).Error)
	require.NoError(t, db.Create(&classModel.ClassroomStudentModel{
		ClassroomID: room.ID, StudentID: student.ID,
	}).Error)

	for _, a := range []struct {
		title string
		due   string
	}{
		{"PR Kedua", "2026-10-01"},
		{"PR Pertama", "2026-09-01"},
	} {
		resp, _ := testutil.DoMultipart(t, app, fiber.MethodPost, "/api/teacher/assignment", teacherToken,
			map[string]string{
				"title":     a.title,
				"dueDate":   a.due,
				"subjectId": subject.ID.String(),
			}, nil)
		require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	}

	resp, body := testutil.DoJSON(t, app, fiber.MethodGet,
		"/api/student/assignments/"+subject.ID.String(), token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	items, ok := body["data"].([]any)
	require.True(t, ok)
	require.Len(t, items, 2)
	assert.Equal(t, "PR Pertama", items[0].(map[string]any)["title"])
	assert.Equal(t, "PR Kedua", items[1].(map[string]any)["title"])
}
