package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	classController "sekolahku_backend/internals/features/school/classes/controller"
)

/*
Admin routes: halaman kelola kelas.
Mount contoh: ClassAdminRoutes(app.Group("/admin"), db)
*/
func ClassAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := &classController.ClassesController{DB: db}

	classes := r.Group("/classes")
	classes.Get("/", ctl.Page)          // GET  /admin/classes[?class_id=N]
	classes.Post("/", ctl.Submit)       // POST /admin/classes (action flag di form)
	classes.Get("/export", ctl.ExportExcel) // GET /admin/classes/export
}
