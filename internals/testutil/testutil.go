// Package testutil menyediakan harness pengujian: DB sqlite in-memory,
// fiber.App lengkap dengan route, plus stub untuk OSS dan layanan analisis.
package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"kelasku_backend/internals/configs"
	databases "kelasku_backend/internals/databases"
	userModel "kelasku_backend/internals/features/users/user/model"
	helper "kelasku_backend/internals/helpers"
	"kelasku_backend/internals/middlewares"
	routes "kelasku_backend/internals/route"
)

var dbSeq atomic.Int64

// OpenTestDB membuka sqlite in-memory terisolasi per pemanggil dan
// menjalankan migrasi yang sama dengan produksi.
func OpenTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, databases.Migrate(db))
	return db
}

// TestConfig: secret tetap dan TTL pendek supaya kasus kedaluwarsa
// bisa diuji tanpa menunggu.
func TestConfig() *configs.Config {
	return &configs.Config{
		Port:            "0",
		JWTSecret:       "unit-test-secret",
		TokenTTL:        time.Hour,
		AnalysisBaseURL: "http://analysis.invalid",
	}
}

// StubUploader mengembalikan URL deterministik tanpa menyentuh OSS.
type StubUploader struct {
	Uploads []string
}

func (s *StubUploader) UploadAny(ctx context.Context, dir string, fh *multipart.FileHeader) (string, error) {
	url := "https://cdn.test/" + dir + "/" + fh.Filename
	s.Uploads = append(s.Uploads, url)
	return url, nil
}

// StubAnalyzer mengembalikan output tetap; Err membuatnya gagal.
type StubAnalyzer struct {
	Calls int
	Err   error
}

func (s *StubAnalyzer) Analyze(ctx context.Context, endpoint, fileURL string) (json.RawMessage, error) {
	s.Calls++
	if s.Err != nil {
		return nil, s.Err
	}
	return json.RawMessage(`{"summary":"ok","endpoint":"` + endpoint + `"}`), nil
}

// NewTestApp merakit app lengkap di atas DB yang diberikan.
func NewTestApp(t *testing.T, db *gorm.DB) (*fiber.App, *configs.Config, *StubUploader, *StubAnalyzer) {
	t.Helper()
	cfg := TestConfig()
	uploader := &StubUploader{}
	analyzer := &StubAnalyzer{}

	app := fiber.New()
	app.Use(middlewares.RecoveryMiddleware())
	routes.SetupRoutes(app, db, cfg, uploader, analyzer)
	return app, cfg, uploader, analyzer
}

// DoJSON mengirim request JSON (token opsional) dan mengembalikan
// response plus body yang sudah di-decode.
func DoJSON(t *testing.T, app *fiber.App, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]any{}
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &out)
	}
	return resp, out
}

// DoMultipart mengirim form multipart dengan files = field → (nama file, isi).
func DoMultipart(t *testing.T, app *fiber.App, method, path, token string, fields map[string]string, files map[string][]byte) (*http.Response, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for field, content := range files {
		part, err := mw.CreateFormFile(field, field+".pdf")
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]any{}
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &out)
	}
	return resp, out
}

// SeedUser menanam user langsung di DB dan menandatangani tokennya,
// tanpa lewat endpoint register (yang dibatasi rate limiter).
func SeedUser(t *testing.T, db *gorm.DB, cfg *configs.Config, name, email, role string) (userModel.UserModel, string) {
	t.Helper()
	user := userModel.UserModel{Name: name, Email: email, Role: role}
	require.NoError(t, user.SetPassword("rahasia123"))
	require.NoError(t, db.Create(&user).Error)

	token, err := helper.SignUserToken(cfg.JWTSecret, cfg.TokenTTL, user.ID, user.Role)
	require.NoError(t, err)
	return user, token
}

// RegisterUser mendaftarkan user lewat endpoint publik, return token.
func RegisterUser(t *testing.T, app *fiber.App, name, email, role string) string {
	t.Helper()
	resp, body := DoJSON(t, app, fiber.MethodPost, "/api/auth/register", "", map[string]any{
		"name":     name,
		"email":    email,
		"password": "rahasia123",
		"role":     role,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	data, _ := body["data"].(map[string]any)
	token, _ := data["token"].(string)
	require.NotEmpty(t, token)
	return token
}

// Data menarik field "data" dari envelope response.
func Data(t *testing.T, body map[string]any) map[string]any {
	t.Helper()
	data, ok := body["data"].(map[string]any)
	require.True(t, ok, "response tanpa field data: %v", body)
	return data
}
