package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kelasku_backend/internals/configs"
	analysisController "kelasku_backend/internals/features/analysis/controller"
	announcementController "kelasku_backend/internals/features/school/announcements/controller"
	assignmentController "kelasku_backend/internals/features/school/assignments/controller"
	classroomController "kelasku_backend/internals/features/school/classrooms/controller"
	materialController "kelasku_backend/internals/features/school/materials/controller"
	subjectController "kelasku_backend/internals/features/school/subjects/controller"
	"kelasku_backend/internals/helpers/media"
	authMiddleware "kelasku_backend/internals/middlewares/auth"
)

// TeacherRoutes: seluruh endpoint /api/teacher (role teacher, ownership scope).
func TeacherRoutes(app *fiber.App, db *gorm.DB, cfg *configs.Config, uploader media.Uploader, analyzer analysisController.Analyzer) {
	classroom := classroomController.NewClassroomTeacherController(db)
	subject := subjectController.NewSubjectTeacherController(db)
	material := materialController.NewMaterialTeacherController(db, uploader)
	assignment := assignmentController.NewAssignmentTeacherController(db, uploader)
	announcement := announcementController.NewAnnouncementTeacherController(db)
	analysis := analysisController.NewAnalysisController(db, analyzer)

	teacher := app.Group("/api/teacher",
		authMiddleware.AuthMiddleware(db, cfg.JWTSecret),
		authMiddleware.IsTeacher(),
	)

	// ===================== CLASSROOM =====================
	teacher.Get("/dashboard", classroom.Dashboard)
	teacher.Post("/classroom", classroom.Create)
	teacher.Get("/classrooms", classroom.List)
	teacher.Get("/classroom/:classroomId", classroom.GetByID)
	teacher.Get("/search-classrooms", classroom.Search)
	teacher.Delete("/classrooms/:classroomId", classroom.Delete)

	// ===================== SUBJECT =====================
	teacher.Post("/subject", subject.Create)
	teacher.Get("/subjects", subject.List)
	teacher.Get("/subject/:subjectId", subject.GetByID)
	teacher.Get("/classrooms/:classroomId/subjects", subject.ListByClassroom)
	teacher.Delete("/subjects/:subjectId", subject.Delete)

	// ===================== MATERIAL =====================
	teacher.Post("/material", material.Create)
	teacher.Get("/materials", material.List)
	teacher.Get("/subjects/:subjectId/materials", material.ListBySubject)
	teacher.Get("/classrooms/:classroomId/materials", material.ListByClassroom)
	teacher.Delete("/materials/:materialId", material.Delete)

	// ===================== ASSIGNMENT =====================
	teacher.Post("/assignment", assignment.Create)
	teacher.Get("/assignments", assignment.List)
	teacher.Get("/subjects/:subjectId/assignments", assignment.ListBySubject)
	teacher.Get("/classrooms/:classroomId/assignments", assignment.ListByClassroom)
	teacher.Delete("/assignments/:assignmentId", assignment.Delete)

	// ===================== ANNOUNCEMENT =====================
	teacher.Post("/announcements/:classroomId", announcement.Create)
	teacher.Get("/announcements/:classroomId", announcement.ListByClassroom)

	// ===================== ANALYSIS =====================
	teacher.Post("/file/:endpoint", analysis.Process)
}
