package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/configs"
	classRoute "sekolahku_backend/internals/features/school/classes/route"
	subjectRoute "sekolahku_backend/internals/features/school/subjects/route"
	authRoute "sekolahku_backend/internals/features/users/auth/route"
	authMw "sekolahku_backend/internals/middlewares/auth"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	log.Println("[INFO] Setting up AuthRoutes...")
	authRoute.AuthRoutes(app, db)

	// ===================== ADMIN (halaman kelola) =====================
	log.Println("[INFO] Setting up ADMIN group...")
	admin := app.Group("/admin",
		authMw.AuthJWT(authMw.AuthJWTOpts{
			Secret:   configs.GetEnv("JWT_SECRET"),
			LoginURL: "/login",
		}),
	)
	classRoute.ClassAdminRoutes(admin, db)
	subjectRoute.SubjectAdminRoutes(admin, db)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/admin/classes", fiber.StatusSeeOther)
	})
}
