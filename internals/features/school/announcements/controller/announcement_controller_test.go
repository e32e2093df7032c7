package controller_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	announcementModel "kelasku_backend/internals/features/school/announcements/model"
	classModel "kelasku_backend/internals/features/school/classrooms/model"
	userModel "kelasku_backend/internals/features/users/user/model"
	"kelasku_backend/internals/testutil"
)

func TestCreateAnnouncement(t *testing.T) {
	db := testutil.OpenTestDB(t)
	app, cfg, _, _ := testutil.NewTestApp(t, db)
	teacher, token := testutil.SeedUser(t, db, cfg, "Bu Sari", "sari@sekolah.id", userModel.RoleTeacher)

	room := classModel.ClassroomModel{Name: "Kelas 7A", ClassCode: "ANN001", TeacherID: teacher.ID}
	require.NoError(t, db.Create(&room).Error)
	path := "/api/teacher/announcements/" + room.ID.String()

	// Teks kosong ditolak.
	resp, _ := testutil.DoJSON(t, app, fiber.MethodPost, path, token, map[string]any{"text": "   "})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, body := testutil.DoJSON(t, app, fiber.MethodPost, path, token, map[string]any{
		"title": "Ujian",
		"text":  "Ujian IPA hari Senin",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	data := testutil.Data(t, body)
	assert.Equal(t, "Ujian IPA hari Senin", data["content"])
}

func TestAnnouncementOwnershipGuard(t *testing.T) {
	db := testutil.OpenTestDB(t)
	app, cfg, _, _ := testutil.NewTestApp(t, db)
	owner, _ := testutil.SeedUser(t, db, cfg, "Bu Sari", "sari@sekolah.id", userModel.RoleTeacher)
	_, otherToken := testutil.SeedUser(t, db, cfg, "Pak Joko", "joko@sekolah.id", userModel.RoleTeacher)

	room := classModel.ClassroomModel{Name: "Kelas 7A", ClassCode: "ANN002", TeacherID: owner.ID}
	require.NoError(t, db.Create(&room).Error)

	resp, _ := testutil.DoJSON(t, app, fiber.MethodPost,
		"/api/teacher/announcements/"+room.ID.String(), otherToken,
		map[string]any{"text": "Numpang lewat"})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestStudentAnnouncementFeed(t *testing.T) {
	db := testutil.OpenTestDB(t)
	app, cfg, _, _ := testutil.NewTestApp(t, db)
	teacher, _ := testutil.SeedUser(t, db, cfg, "Bu Sari", "sari@sekolah.id", userModel.RoleTeacher)
	student, token := testutil.SeedUser(t, db, cfg, "Budi", "budi@sekolah.id", userModel.RoleStudent)

	joined := classModel.ClassroomModel{Name: "Kelas 7A", ClassCode: "ANN003", TeacherID: teacher.ID}
	require.NoError(t, db.Create(&joined).Error)
	other := classModel.ClassroomModel{Name: "Kelas 7B", ClassCode: "ANN004", TeacherID: teacher.ID}
	require.NoError(t, db.Create(&other).Error)
	require.NoError(t, db.Create(&classModel.ClassroomStudentModel{
		ClassroomID: joined.ID, StudentID: student.ID,
	}).Error)

	require.NoError(t, db.Create(&announcementModel.AnnouncementModel{
		ClassroomID: joined.ID, TeacherID: teacher.ID, Title: "A", Content: "Untuk 7A",
	}).Error)
	require.NoError(t, db.Create(&announcementModel.AnnouncementModel{
		ClassroomID: other.ID, TeacherID: teacher.ID, Title: "B", Content: "Untuk 7B",
	}).Error)

	// Feed hanya berisi kelas yang diikuti.
	resp, body := testutil.DoJSON(t, app, fiber.MethodGet, "/api/student/announcements", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	items, ok := body["data"].([]any)
	require.True(t, ok)
	require.Len(t, items, 1)
	first := items[0].(map[string]any)
	assert.Equal(t, "Untuk 7A", first["content"])

	// Kelas yang tidak diikuti → 404.
	resp, _ = testutil.DoJSON(t, app, fiber.MethodGet,
		"/api/student/announcements/"+other.ID.String(), token, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
