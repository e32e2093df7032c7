package controller_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	progressModel "kelasku_backend/internals/features/progress/progress/model"
	classModel "kelasku_backend/internals/features/school/classrooms/model"
	materialModel "kelasku_backend/internals/features/school/materials/model"
	subjectModel "kelasku_backend/internals/features/school/subjects/model"
	userModel "kelasku_backend/internals/features/users/user/model"
	"kelasku_backend/internals/testutil"
)

func TestCreateMaterialUploadsFile(t *testing.T) {
	db := testutil.OpenTestDB(t)
	app, cfg, uploader, _ := testutil.NewTestApp(t, db)
	teacher, token := testutil.SeedUser(t, db, cfg, "Bu Sari", "sari@sekolah.id", userModel.RoleTeacher)

	room := classModel.ClassroomModel{Name: "Kelas 7A", ClassCode: "MAT001", TeacherID: teacher.ID}
	require.NoError(t, db.Create(&room).Error)
	subject := subjectModel.SubjectModel{Name: "IPA", ClassroomID: room.ID, TeacherID: teacher.ID}
	require.NoError(t, db.Create(&subject).Error)

	resp, body := testutil.DoMultipart(t, app, fiber.MethodPost, "/api/teacher/material", token,
		map[string]string{
			"title":     "Bab 1 Fotosintesis",
			"type":      "document",
			"subjectId": subject.ID.String(),
		},
		map[string][]byte{"file": []byte("%PDF-1.4 isi dokumen")},
	)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	data := testutil.Data(t, body)
	assert.Equal(t, "Bab 1 Fotosintesis", data["title"])
	assert.NotEmpty(t, data["file_url"])
	require.Len(t, uploader.Uploads, 1)
	assert.Contains(t, uploader.Uploads[0], "materials/")
}

func TestCreateMaterialRequiresFile(t *testing.T) {
	db := testutil.OpenTestDB(t)
	app, cfg, _, _ := testutil.NewTestApp(t, db)
	teacher, token := testutil.SeedUser(t, db, cfg, "Bu Sari", "sari@sekolah.id", userModel.RoleTeacher)

	room := classModel.ClassroomModel{Name: "Kelas 7A", ClassCode: "MAT002", TeacherID: teacher.ID}
	require.NoError(t, db.Create(&room).Error)
	subject := subjectModel.SubjectModel{Name: "IPA", ClassroomID: room.ID, TeacherID: teacher.ID}
	require.NoError(t, db.Create(&subject).Error)

	resp, body := testutil.DoMultipart(t, app, fiber.MethodPost, "/api/teacher/material", token,
		map[string]string{
			"title":     "Tanpa File",
			"type":      "summary",
			"subjectId": subject.ID.String(),
		}, nil)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "File is required", body["message"])
}

func TestCreateMaterialRejectsUnknownType(t *testing.T) {
	db := testutil.OpenTestDB(t)
	app, cfg, _, _ := testutil.NewTestApp(t, db)
	teacher, token := testutil.SeedUser(t, db, cfg, "Bu Sari", "sari@sekolah.id", userModel.RoleTeacher)

	room := classModel.ClassroomModel{Name: "Kelas 7A", ClassCode: "MAT003", TeacherID: teacher.ID}
	require.NoError(t, db.Create(&room).Error)
	subject := subjectModel.SubjectModel{Name: "IPA", ClassroomID: room.ID, TeacherID: teacher.ID}
	require.NoError(t, db.Create(&subject).Error)

	resp, _ := testutil.DoMultipart(t, app, fiber.MethodPost, "/api/teacher/material", token,
		map[string]string{
			"title":     "Bab 1",
			"type":      "hologram",
			"subjectId": subject.ID.String(),
		},
		map[string][]byte{"file": []byte("isi")},
	)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestStudentMaterialListAnnotatesProgress(t *testing.T) {
	db := testutil.OpenTestDB(t)
	app, cfg, _, _ := testutil.NewTestApp(t, db)
	teacher, _ := testutil.SeedUser(t, db, cfg, "Bu Sari", "sari@sekolah.id", userModel.RoleTeacher)
	student, token := testutil.SeedUser(t, db, cfg, "Budi", "budi@sekolah.id", userModel.RoleStudent)

	room := classModel.ClassroomModel{Name: "Kelas 7A", ClassCode: "MAT004", TeacherID: teacher.ID}
	require.NoError(t, db.Create(&room).Error)
	subject := subjectModel.SubjectModel{Name: "IPA", ClassroomID: room.ID, TeacherID: teacher.ID}
	require.NoError(t, db.Create(&subject).Error)
	done := materialModel.MaterialModel{
		Title: "Bab 1", Type: materialModel.TypeDocument,
		FileURL: "https://cdn.test/bab1.pdf", SubjectID: subject.ID, TeacherID: teacher.ID,
	}
	require.NoError(t, db.Create(&done).Error)
	todo := materialModel.MaterialModel{
		Title: "Bab 2", Type: materialModel.TypeVideo,
		FileURL: "https://cdn.test/bab2.mp4", SubjectID: subject.ID, TeacherID: teacher.ID,
	}
	require.NoError(t, db.Create(&todo).Error)
	require.NoError(t, db.Create(&classModel.ClassroomStudentModel{
		ClassroomID: room.ID, StudentID: student.ID,
	}).Error)
	require.NoError(t, db.Create(&progressModel.ProgressModel{
		StudentID: student.ID, MaterialID: done.ID, SubjectID: subject.ID,
		Completed: true, Progress: 100,
	}).Error)

	resp, body := testutil.DoJSON(t, app, fiber.MethodGet,
		"/api/student/materials/"+subject.ID.String(), token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	items, ok := body["data"].([]any)
	require.True(t, ok)
	require.Len(t, items, 2)

	byTitle := map[string]map[string]any{}
	for _, it := range items {
		m := it.(map[string]any)
		byTitle[m["title"].(string)] = m
	}
	assert.Equal(t, true, byTitle["Bab 1"]["completed"])
	assert.EqualValues(t, 100, byTitle["Bab 1"]["progress"])
	assert.Equal(t, false, byTitle["Bab 2"]["completed"])
	assert.EqualValues(t, 0, byTitle["Bab 2"]["progress"])
}

func TestDeleteMaterialRemovesProgress(t *testing.T) {
	db := testutil.OpenTestDB(t)
	app, cfg, _, _ := testutil.NewTestApp(t, db)
	teacher, token := testutil.SeedUser(t, db, cfg, "Bu Sari", "sari@sekolah.id", userModel.RoleTeacher)
	student, _ := testutil.SeedUser(t, db, cfg, "Budi", "budi@sekolah.id", userModel.RoleStudent)

	room := classModel.ClassroomModel{Name: "Kelas 7A", ClassCode: "MAT005", TeacherID: teacher.ID}
	require.NoError(t, db.Create(&room).Error)
	subject := subjectModel.SubjectModel{Name: "IPA", ClassroomID: room.ID, TeacherID: teacher.ID}
	require.NoError(t, db.Create(&subject).Error)
	material := materialModel.MaterialModel{
		Title: "Bab 1", Type: materialModel.TypeDocument,
		FileURL: "https://cdn.test/bab1.pdf", SubjectID: subject.ID, TeacherID: teacher.ID,
	}
	require.NoError(t, db.Create(&material).Error)
	require.NoError(t, db.Create(&progressModel.ProgressModel{
		StudentID: student.ID, MaterialID: material.ID, SubjectID: subject.ID,
	}).Error)

	resp, _ := testutil.DoJSON(t, app, fiber.MethodDelete,
		"/api/teacher/materials/"+material.ID.String(), token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var n int64
	db.Model(&materialModel.MaterialModel{}).Where("id = ?", material.ID).Count(&n)
	assert.Zero(t, n)
	db.Model(&progressModel.ProgressModel{}).Where("material_id = ?", material.ID).Count(&n)
	assert.Zero(t, n)
}
