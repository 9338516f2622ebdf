package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"sekolahku_backend/internals/configs"
	authController "sekolahku_backend/internals/features/users/auth/controller"
	"sekolahku_backend/internals/middlewares"
)

func AuthRoutes(app fiber.Router, db *gorm.DB) {
	ctl := &authController.AuthController{DB: db, JWTSecret: configs.GetEnv("JWT_SECRET")}

	app.Get("/login", ctl.LoginPage)
	app.Post("/login", middlewares.LoginRateLimiter(), ctl.Login)
	app.Post("/logout", ctl.Logout)
}
