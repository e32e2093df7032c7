package controller_test

import (
	"errors"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	analysisModel "kelasku_backend/internals/features/analysis/model"
	classModel "kelasku_backend/internals/features/school/classrooms/model"
	materialModel "kelasku_backend/internals/features/school/materials/model"
	subjectModel "kelasku_backend/internals/features/school/subjects/model"
	userModel "kelasku_backend/internals/features/users/user/model"
	"kelasku_backend/internals/testutil"
)

func TestProcessFileCachesResult(t *testing.T) {
	db := testutil.OpenTestDB(t)
	app, cfg, _, analyzer := testutil.NewTestApp(t, db)
	teacher, token := testutil.SeedUser(t, db, cfg, "Bu Sari", "sari@sekolah.id", userModel.RoleTeacher)

	room := classModel.ClassroomModel{Name: "Kelas 7A", ClassCode: "ANL001", TeacherID: teacher.ID}
	require.NoError(t, db.Create(&room).Error)
	subject := subjectModel.SubjectModel{Name: "IPA", ClassroomID: room.ID, TeacherID: teacher.ID}
	require.NoError(t, db.Create(&subject).Error)
	material := materialModel.MaterialModel{
		Title: "Bab 1", Type: materialModel.TypeDocument,
		FileURL: "https://cdn.test/bab1.pdf", SubjectID: subject.ID, TeacherID: teacher.ID,
	}
	require.NoError(t, db.Create(&material).Error)

	path := "/api/teacher/file/" + analysisModel.EndpointBriefOverview
	resp, body := testutil.DoJSON(t, app, fiber.MethodPost, path, token, map[string]any{
		"fileId": material.ID,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := testutil.Data(t, body)
	assert.Equal(t, analysisModel.EndpointBriefOverview, data["endpoint"])
	assert.Equal(t, 1, analyzer.Calls)

	// Pasangan (file, endpoint) yang sama ditolak tanpa memanggil layanan lagi.
	resp, body = testutil.DoJSON(t, app, fiber.MethodPost, path, token, map[string]any{
		"fileId": material.ID,
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "File already processed", body["message"])
	assert.Equal(t, 1, analyzer.Calls)

	// Endpoint lain untuk file yang sama tetap boleh.
	resp, _ = testutil.DoJSON(t, app, fiber.MethodPost,
		"/api/teacher/file/"+analysisModel.EndpointPodcast, token, map[string]any{
			"fileId": material.ID,
		})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 2, analyzer.Calls)

	var n int64
	db.Model(&analysisModel.AnalysisResultModel{}).Where("file_id = ?", material.ID).Count(&n)
	assert.EqualValues(t, 2, n)
}

func TestProcessFileUpstreamFailureLeavesNoCache(t *testing.T) {
	db := testutil.OpenTestDB(t)
	app, cfg, _, analyzer := testutil.NewTestApp(t, db)
	teacher, token := testutil.SeedUser(t, db, cfg, "Bu Sari", "sari@sekolah.id", userModel.RoleTeacher)

	room := classModel.ClassroomModel{Name: "Kelas 7A", ClassCode: "ANL002", TeacherID: teacher.ID}
	require.NoError(t, db.Create(&room).Error)
	subject := subjectModel.SubjectModel{Name: "IPA", ClassroomID: room.ID, TeacherID: teacher.ID}
	require.NoError(t, db.Create(&subject).Error)
	material := materialModel.MaterialModel{
		Title: "Bab 1", Type: materialModel.TypeDocument,
		FileURL: "https://cdn.test/bab1.pdf", SubjectID: subject.ID, TeacherID: teacher.ID,
	}
	require.NoError(t, db.Create(&material).Error)

	analyzer.Err = errors.New("layanan analisis mati")
	path := "/api/teacher/file/" + analysisModel.EndpointAssesment
	resp, _ := testutil.DoJSON(t, app, fiber.MethodPost, path, token, map[string]any{
		"fileId": material.ID,
	})
	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)

	// Gagal = tidak ada baris cache, percobaan ulang tetap bisa.
	var n int64
	db.Model(&analysisModel.AnalysisResultModel{}).Where("file_id = ?", material.ID).Count(&n)
	assert.Zero(t, n)

	analyzer.Err = nil
	resp, _ = testutil.DoJSON(t, app, fiber.MethodPost, path, token, map[string]any{
		"fileId": material.ID,
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestProcessFileUnknownEndpointAndMaterial(t *testing.T) {
	db := testutil.OpenTestDB(t)
	app, cfg, _, _ := testutil.NewTestApp(t, db)
	_, token := testutil.SeedUser(t, db, cfg, "Bu Sari", "sari@sekolah.id", userModel.RoleTeacher)

	resp, _ := testutil.DoJSON(t, app, fiber.MethodPost, "/api/teacher/file/mind-map", token, map[string]any{
		"fileId": "2f9d2a66-0a44-4f2c-9c58-1b3f6d0f34b1",
	})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	// fileId yang tidak menunjuk material milik caller → 404.
	resp, _ = testutil.DoJSON(t, app, fiber.MethodPost,
		"/api/teacher/file/"+analysisModel.EndpointBriefOverview, token, map[string]any{
			"fileId": "2f9d2a66-0a44-4f2c-9c58-1b3f6d0f34b1",
		})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestProcessFileWithExplicitURLSkipsMaterialLookup(t *testing.T) {
	db := testutil.OpenTestDB(t)
	app, cfg, _, analyzer := testutil.NewTestApp(t, db)
	_, token := testutil.SeedUser(t, db, cfg, "Bu Sari", "sari@sekolah.id", userModel.RoleTeacher)

	resp, body := testutil.DoJSON(t, app, fiber.MethodPost,
		"/api/teacher/file/"+analysisModel.EndpointBriefOverview, token, map[string]any{
			"fileId":  "0b9af7e2-5f0e-4f89-9f43-6a9d9b5d8f77",
			"fileUrl": "https://cdn.test/eksternal.pdf",
		})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := testutil.Data(t, body)
	assert.Equal(t, "https://cdn.test/eksternal.pdf", data["file_url"])
	assert.Equal(t, 1, analyzer.Calls)
}
