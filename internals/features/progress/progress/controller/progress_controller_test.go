package controller_test

import (
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"kelasku_backend/internals/configs"
	progressModel "kelasku_backend/internals/features/progress/progress/model"
	classModel "kelasku_backend/internals/features/school/classrooms/model"
	materialModel "kelasku_backend/internals/features/school/materials/model"
	subjectModel "kelasku_backend/internals/features/school/subjects/model"
	userModel "kelasku_backend/internals/features/users/user/model"
	"kelasku_backend/internals/testutil"
)

type progressFixture struct {
	db       *gorm.DB
	app      *fiber.App
	cfg      *configs.Config
	token    string
	student  userModel.UserModel
	material materialModel.MaterialModel
}

func newProgressFixture(t *testing.T) progressFixture {
	db := testutil.OpenTestDB(t)
	app, cfg, _, _ := testutil.NewTestApp(t, db)
	teacher, _ := testutil.SeedUser(t, db, cfg, "Bu Sari", "sari@sekolah.id", userModel.RoleTeacher)
	student, token := testutil.SeedUser(t, db, cfg, "Budi", "budi@sekolah.id", userModel.RoleStudent)

	room := classModel.ClassroomModel{Name: "Kelas 7A", ClassCode: "PRG001", TeacherID: teacher.ID}
	require.NoError(t, db.Create(&room).Error)
	subject := subjectModel.SubjectModel{Name: "IPA", ClassroomID: room.ID, TeacherID: teacher.ID}
	require.NoError(t, db.Create(&subject).Error)
	material := materialModel.MaterialModel{
		Title: "Bab 1", Type: materialModel.TypeDocument,
		FileURL: "https://cdn.test/bab1.pdf", SubjectID: subject.ID, TeacherID: teacher.ID,
	}
	require.NoError(t, db.Create(&material).Error)
	require.NoError(t, db.Create(&classModel.ClassroomStudentModel{
		ClassroomID: room.ID, StudentID: student.ID,
	}).Error)

	return progressFixture{db: db, app: app, cfg: cfg, token: token, student: student, material: material}
}

func TestMarkCompleteTwiceKeepsOneRow(t *testing.T) {
	f := newProgressFixture(t)
	path := "/api/student/progress/" + f.material.ID.String()

	resp, body := testutil.DoJSON(t, f.app, fiber.MethodPatch, path, f.token, map[string]any{
		"completed": true,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := testutil.Data(t, body)
	assert.Equal(t, true, data["completed"])
	assert.NotEmpty(t, data["completed_at"])

	var first progressModel.ProgressModel
	require.NoError(t, f.db.Where("student_id = ? AND material_id = ?", f.student.ID, f.material.ID).
		First(&first).Error)
	require.NotNil(t, first.CompletedAt)

	time.Sleep(10 * time.Millisecond)

	// Penandaan kedua: tetap satu baris, completed_at tidak bergeser.
	resp, _ = testutil.DoJSON(t, f.app, fiber.MethodPatch, path, f.token, map[string]any{
		"completed": true,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var rows []progressModel.ProgressModel
	require.NoError(t, f.db.Where("student_id = ? AND material_id = ?", f.student.ID, f.material.ID).
		Find(&rows).Error)
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].CompletedAt)
	assert.WithinDuration(t, *first.CompletedAt, *rows[0].CompletedAt, time.Millisecond)
	assert.Equal(t, 100, rows[0].Progress)
}

func TestMarkCompleteConcurrentKeepsOneRow(t *testing.T) {
	f := newProgressFixture(t)
	path := "/api/student/progress/" + f.material.ID.String()

	// Satu koneksi supaya dua penulisan sqlite in-memory tidak saling
	// mengunci; race-nya tetap terjadi di upsert ON CONFLICT.
	sqlDB, err := f.db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	var wg sync.WaitGroup
	status := make([]int, 2)
	for i := range status {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp, _ := testutil.DoJSON(t, f.app, fiber.MethodPatch, path, f.token, map[string]any{
				"completed": true,
			})
			status[i] = resp.StatusCode
		}(i)
	}
	wg.Wait()

	assert.Equal(t, fiber.StatusOK, status[0])
	assert.Equal(t, fiber.StatusOK, status[1])

	var rows []progressModel.ProgressModel
	require.NoError(t, f.db.Where("student_id = ? AND material_id = ?", f.student.ID, f.material.ID).
		Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, true, rows[0].Completed)
	assert.Equal(t, 100, rows[0].Progress)
	require.NotNil(t, rows[0].CompletedAt)
}

func TestProgressPartialThenComplete(t *testing.T) {
	f := newProgressFixture(t)
	path := "/api/student/progress/" + f.material.ID.String()

	resp, body := testutil.DoJSON(t, f.app, fiber.MethodPatch, path, f.token, map[string]any{
		"progress": 40,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data := testutil.Data(t, body)
	assert.EqualValues(t, 40, data["progress"])
	assert.Equal(t, false, data["completed"])
	assert.Nil(t, data["completed_at"])

	resp, body = testutil.DoJSON(t, f.app, fiber.MethodPatch, path, f.token, map[string]any{
		"completed": true,
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data = testutil.Data(t, body)
	assert.Equal(t, true, data["completed"])
	assert.EqualValues(t, 100, data["progress"])
}

func TestProgressRejectsOutOfRange(t *testing.T) {
	f := newProgressFixture(t)
	path := "/api/student/progress/" + f.material.ID.String()

	resp, _ := testutil.DoJSON(t, f.app, fiber.MethodPatch, path, f.token, map[string]any{
		"progress": 150,
	})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestProgressUnknownMaterial(t *testing.T) {
	f := newProgressFixture(t)

	resp, body := testutil.DoJSON(t, f.app, fiber.MethodPatch,
		"/api/student/progress/"+uuid.NewString(), f.token, map[string]any{"completed": true})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Material not found", body["message"])
	assert.Equal(t, "NOT_FOUND", body["error_code"])
}

func TestProgressRequiresEnrollment(t *testing.T) {
	f := newProgressFixture(t)

	// Murid lain yang tidak terdaftar di kelas.
	_, outsiderToken := testutil.SeedUser(t, f.db, f.cfg, "Cici", "cici@sekolah.id", userModel.RoleStudent)
	resp, _ := testutil.DoJSON(t, f.app, fiber.MethodPatch,
		"/api/student/progress/"+f.material.ID.String(), outsiderToken,
		map[string]any{"completed": true})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestDeleteProgress(t *testing.T) {
	f := newProgressFixture(t)
	path := "/api/student/progress/" + f.material.ID.String()

	// Belum ada baris → 404.
	resp, _ := testutil.DoJSON(t, f.app, fiber.MethodDelete, path, f.token, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, _ = testutil.DoJSON(t, f.app, fiber.MethodPatch, path, f.token, map[string]any{"completed": true})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = testutil.DoJSON(t, f.app, fiber.MethodDelete, path, f.token, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var n int64
	f.db.Model(&progressModel.ProgressModel{}).
		Where("student_id = ? AND material_id = ?", f.student.ID, f.material.ID).Count(&n)
	assert.Zero(t, n)
}
