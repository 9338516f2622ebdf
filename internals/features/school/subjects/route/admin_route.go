package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	subjectController "sekolahku_backend/internals/features/school/subjects/controller"
)

/*
Admin routes: halaman kelola mata pelajaran.
Mount contoh: SubjectAdminRoutes(app.Group("/admin"), db)
*/
func SubjectAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := &subjectController.SubjectsController{DB: db}

	subjects := r.Group("/subjects")
	subjects.Get("/", ctl.Page)
	subjects.Post("/", ctl.Submit)
	subjects.Get("/export", ctl.ExportExcel)
}
