package controller_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	assignmentModel "kelasku_backend/internals/features/school/assignments/model"
	classModel "kelasku_backend/internals/features/school/classrooms/model"
	materialModel "kelasku_backend/internals/features/school/materials/model"
	subjectModel "kelasku_backend/internals/features/school/subjects/model"
	userModel "kelasku_backend/internals/features/users/user/model"
	"kelasku_backend/internals/testutil"
)

func TestCreateSubjectChecksClassroomOwnership(t *testing.T) {
	db := testutil.OpenTestDB(t)
	app, cfg, _, _ := testutil.NewTestApp(t, db)
	owner, ownerToken := testutil.SeedUser(t, db, cfg, "Bu Sari", "sari@sekolah.id", userModel.RoleTeacher)
	_, otherToken := testutil.SeedUser(t, db, cfg, "Pak Joko", "joko@sekolah.id", userModel.RoleTeacher)

	room := classModel.ClassroomModel{Name: "Kelas 7A", ClassCode: "SBJ001", TeacherID: owner.ID}
	require.NoError(t, db.Create(&room).Error)

	// Teacher lain tidak bisa menitip subject di kelas orang.
	resp, _ := testutil.DoJSON(t, app, fiber.MethodPost, "/api/teacher/subject", otherToken, map[string]any{
		"name":        "IPA Curian",
		"classroomId": room.ID,
	})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, body := testutil.DoJSON(t, app, fiber.MethodPost, "/api/teacher/subject", ownerToken, map[string]any{
		"name":        "IPA",
		"description": "Ilmu pengetahuan alam",
		"classroomId": room.ID,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	data := testutil.Data(t, body)
	assert.Equal(t, "IPA", data["name"])
	assert.Equal(t, room.ID.String(), data["classroom_id"])
}

func TestSubjectDetailIncludesChildren(t *testing.T) {
	db := testutil.OpenTestDB(t)
	app, cfg, _, _ := testutil.NewTestApp(t, db)
	teacher, token := testutil.SeedUser(t, db, cfg, "Bu Sari", "sari@sekolah.id", userModel.RoleTeacher)

	room := classModel.ClassroomModel{Name: "Kelas 7A", ClassCode: "SBJ002", TeacherID: teacher.ID}
	require.NoError(t, db.Create(&room).Error)
	subject := subjectModel.SubjectModel{Name: "IPA", ClassroomID: room.ID, TeacherID: teacher.ID}
	require.NoError(t, db.Create(&subject).Error)
	require.NoError(t, db.Create(&materialModel.MaterialModel{
		Title: "Bab 1", Type: materialModel.TypeDocument,
		FileURL: "https://cdn.test/bab1.pdf", SubjectID: subject.ID, TeacherID: teacher.ID,
	}).Error)

	resp, body := testutil.DoJSON(t, app, fiber.MethodGet,
		"/api/teacher/subject/"+subject.ID.String(), token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := testutil.Data(t, body)
	materials, ok := data["materials"].([]any)
	require.True(t, ok)
	assert.Len(t, materials, 1)
	assert.NotNil(t, data["assignments"])
}

func TestDeleteSubjectCascadesChildren(t *testing.T) {
	db := testutil.OpenTestDB(t)
	app, cfg, _, _ := testutil.NewTestApp(t, db)
	teacher, token := testutil.SeedUser(t, db, cfg, "Bu Sari", "sari@sekolah.id", userModel.RoleTeacher)

	room := classModel.ClassroomModel{Name: "Kelas 7A", ClassCode: "SBJ003", TeacherID: teacher.ID}
	require.NoError(t, db.Create(&room).Error)
	subject := subjectModel.SubjectModel{Name: "IPA", ClassroomID: room.ID, TeacherID: teacher.ID}
	require.NoError(t, db.Create(&subject).Error)
	require.NoError(t, db.Create(&materialModel.MaterialModel{
		Title: "Bab 1", Type: materialModel.TypeDocument,
		FileURL: "https://cdn.test/bab1.pdf", SubjectID: subject.ID, TeacherID: teacher.ID,
	}).Error)

	resp, _ := testutil.DoJSON(t, app, fiber.MethodDelete,
		"/api/teacher/subjects/"+subject.ID.String(), token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var n int64
	db.Model(&subjectModel.SubjectModel{}).Where("id = ?", subject.ID).Count(&n)
	assert.Zero(t, n)
	db.Model(&materialModel.MaterialModel{}).Where("subject_id = ?", subject.ID).Count(&n)
	assert.Zero(t, n)
	db.Model(&assignmentModel.AssignmentModel{}).Where("subject_id = ?", subject.ID).Count(&n)
	assert.Zero(t, n)
}

func TestStudentSubjectRequiresEnrollment(t *testing.T) {
	db := testutil.OpenTestDB(t)
	app, cfg, _, _ := testutil.NewTestApp(t, db)
	teacher, _ := testutil.SeedUser(t, db, cfg, "Bu Sari", "sari@sekolah.id", userModel.RoleTeacher)
	student, token := testutil.SeedUser(t, db, cfg, "Budi", "budi@sekolah.id", userModel.RoleStudent)

	room := classModel.ClassroomModel{Name: "Kelas 7A", ClassCode: "SBJ004", TeacherID: teacher.ID}
	require.NoError(t, db.Create(&room).Error)
	subject := subjectModel.SubjectModel{Name: "IPA", ClassroomID: room.ID, TeacherID: teacher.ID}
	require.NoError(t, db.Create(&subject).Error)

	// Belum terdaftar → 404, keberadaan subject tidak bocor.
	resp, _ := testutil.DoJSON(t, app, fiber.MethodGet,
		"/api/student/subject/"+subject.ID.String(), token, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	resp, _ = testutil.DoJSON(t, app, fiber.MethodGet,
		"/api/student/subjects/"+room.ID.String(), token, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	require.NoError(t, db.Create(&classModel.ClassroomStudentModel{
		ClassroomID: room.ID, StudentID: student.ID,
	}).Error)

	resp, body := testutil.DoJSON(t, app, fiber.MethodGet,
		"/api/student/subject/"+subject.ID.String(), token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := testutil.Data(t, body)
	assert.Equal(t, "IPA", data["name"])
}
