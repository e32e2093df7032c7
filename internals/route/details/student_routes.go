package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kelasku_backend/internals/configs"
	progressController "kelasku_backend/internals/features/progress/progress/controller"
	announcementController "kelasku_backend/internals/features/school/announcements/controller"
	assignmentController "kelasku_backend/internals/features/school/assignments/controller"
	classroomController "kelasku_backend/internals/features/school/classrooms/controller"
	materialController "kelasku_backend/internals/features/school/materials/controller"
	subjectController "kelasku_backend/internals/features/school/subjects/controller"
	authMiddleware "kelasku_backend/internals/middlewares/auth"
)

// StudentRoutes: seluruh endpoint /api/student (role student, enrollment scope).
func StudentRoutes(app *fiber.App, db *gorm.DB, cfg *configs.Config) {
	classroom := classroomController.NewClassroomStudentController(db)
	subject := subjectController.NewSubjectStudentController(db)
	material := materialController.NewMaterialStudentController(db)
	assignment := assignmentController.NewAssignmentStudentController(db)
	announcement := announcementController.NewAnnouncementStudentController(db)
	progress := progressController.NewProgressController(db)

	student := app.Group("/api/student",
		authMiddleware.AuthMiddleware(db, cfg.JWTSecret),
		authMiddleware.IsStudent(),
	)

	// ===================== CLASSROOM =====================
	student.Get("/dashboard", classroom.Dashboard)
	student.Post("/join-class", classroom.Join)
	student.Get("/classrooms", classroom.List)
	student.Get("/classroom/:classroomId", classroom.GetByID)
	student.Delete("/classrooms/:classroomId", classroom.Leave)

	// ===================== SUBJECT =====================
	student.Get("/subjects/:classroomId", subject.ListByClassroom)
	student.Get("/subject/:subjectId", subject.GetByID)

	// ===================== MATERIAL =====================
	student.Get("/materials/:subjectId", material.ListBySubject)
	student.Get("/completed-materials", material.ListCompleted)

	// ===================== ASSIGNMENT =====================
	student.Get("/assignments/:subjectId", assignment.ListBySubject)

	// ===================== PROGRESS =====================
	student.Patch("/progress/:materialId", progress.Update)
	student.Delete("/progress/:materialId", progress.Delete)

	// ===================== ANNOUNCEMENT =====================
	student.Get("/announcements", announcement.List)
	student.Get("/announcements/:classroomId", announcement.ListByClassroom)
}
