package server

import (
	"log"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/template/html/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	database "sekolahku_backend/internals/databases"
	middlewares "sekolahku_backend/internals/middlewares"
	routes "sekolahku_backend/internals/route"
	"sekolahku_backend/views"
)

// NewApp merakit fiber app lengkap (views, middleware, session+CSRF, routes).
// Dipakai main.go dan test harness.
func NewApp(db *gorm.DB) *fiber.App {
	engine := html.NewFileSystem(http.FS(views.FS), ".html")

	app := fiber.New(fiber.Config{
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		Views:                   engine,
		DisableStartupMessage:   true,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
	})

	// ⚙️ middleware dasar + performa
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())

	// 🔎 Request-ID + timing
	app.Use(func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("X-Request-ID", id)
		c.Locals("reqid", id)
		start := time.Now()
		err := c.Next()
		dur := time.Since(start)
		log.Printf("[REQ] id=%s %s %s status=%d dur=%s", id, c.Method(), c.OriginalURL(), c.Response().StatusCode(), dur)
		return err
	})

	middlewares.SetupMiddlewares(app)

	// 🔐 Session + CSRF guard untuk semua form POST
	store := database.NewSessionStore()
	app.Use(csrf.New(csrf.Config{
		KeyLookup:         "form:csrf_token",
		CookieName:        "csrf_",
		CookieSameSite:    "Lax",
		CookieHTTPOnly:    true,
		CookieSessionOnly: true,
		Expiration:        1 * time.Hour,
		Session:           store,
		ContextKey:        "csrf_token",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// token hilang/kedaluwarsa: tolak dengan pesan generik, catat sesi
			log.Printf("[CSRF] ditolak: path=%s ip=%s session=%s err=%v",
				c.Path(), c.IP(), c.Cookies("sekolahku_session"), err)
			return c.Status(fiber.StatusForbidden).Render("pages/error", fiber.Map{
				"Title":   "Sesi Tidak Valid",
				"Message": "Sesi formulir tidak valid atau kedaluwarsa. Muat ulang halaman lalu coba lagi.",
			}, "layouts/main")
		},
	}))

	// ❤️ Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	routes.SetupRoutes(app, db)

	return app
}
