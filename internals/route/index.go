package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kelasku_backend/internals/configs"
	analysisController "kelasku_backend/internals/features/analysis/controller"
	"kelasku_backend/internals/helpers/media"
	routeDetails "kelasku_backend/internals/route/details"
)

var startTime time.Time

// SetupRoutes merakit seluruh route aplikasi. Semua dependency
// (db, config, uploader, analyzer) dirakit sekali di sini.
func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *configs.Config, uploader media.Uploader, analyzer analysisController.Analyzer) {
	startTime = time.Now()

	BaseRoutes(app, db)

	log.Println("[INFO] Setting up AuthRoutes...")
	routeDetails.AuthRoutes(app, db, cfg)

	log.Println("[INFO] Setting up TeacherRoutes...")
	routeDetails.TeacherRoutes(app, db, cfg, uploader, analyzer)

	log.Println("[INFO] Setting up StudentRoutes...")
	routeDetails.StudentRoutes(app, db, cfg)
}
