package controller

import (
	"errors"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	userModel "sekolahku_backend/internals/features/users/auth/model"
	helper "sekolahku_backend/internals/helpers"
	authMw "sekolahku_backend/internals/middlewares/auth"
)

const (
	MsgLoginRequired = "Email dan password wajib diisi"
	MsgLoginInvalid  = "Email atau password salah"
	MsgLoginFailed   = "Gagal memproses login"

	accessTokenTTL = 24 * time.Hour
)

type AuthController struct {
	DB        *gorm.DB
	JWTSecret string
}

/* =========================================================
   LOGIN
   GET|POST /login
   ========================================================= */

func (ctl *AuthController) LoginPage(c *fiber.Ctx) error {
	return ctl.renderLogin(c, nil)
}

func (ctl *AuthController) Login(c *fiber.Ctx) error {
	email := strings.TrimSpace(c.FormValue("user_email"))
	password := c.FormValue("user_password")
	if email == "" || password == "" {
		return ctl.renderLogin(c, helper.ErrorBanner(MsgLoginRequired))
	}

	var user userModel.UserModel
	if err := ctl.DB.
		Where("lower(user_email) = lower(?)", email).
		Take(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctl.renderLogin(c, helper.ErrorBanner(MsgLoginInvalid))
		}
		log.Printf("[AUTH] login lookup gagal: %v", err)
		return ctl.renderLogin(c, helper.ErrorBanner(MsgLoginFailed))
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.UserPassword), []byte(password)); err != nil {
		log.Printf("[AUTH] password salah untuk user=%d", user.UserID)
		return ctl.renderLogin(c, helper.ErrorBanner(MsgLoginInvalid))
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":       strconv.FormatUint(uint64(user.UserID), 10),
		"user_name": user.UserName,
		"role":      user.UserRole,
		"iat":       now.Unix(),
		"exp":       now.Add(accessTokenTTL).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(ctl.JWTSecret))
	if err != nil {
		log.Printf("[AUTH] gagal sign token: %v", err)
		return ctl.renderLogin(c, helper.ErrorBanner(MsgLoginFailed))
	}

	c.Cookie(&fiber.Cookie{
		Name:     authMw.AccessTokenCookie,
		Value:    token,
		Expires:  now.Add(accessTokenTTL),
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/",
	})
	return c.Redirect("/admin/classes", fiber.StatusSeeOther)
}

/* =========================================================
   LOGOUT
   POST /logout
   ========================================================= */

func (ctl *AuthController) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     authMw.AccessTokenCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
		Path:     "/",
	})
	return c.Redirect("/login", fiber.StatusSeeOther)
}

func (ctl *AuthController) renderLogin(c *fiber.Ctx, banner *helper.Banner) error {
	status := fiber.StatusOK
	if banner != nil {
		status = fiber.StatusUnauthorized
	}
	return c.Status(status).Render("pages/login", fiber.Map{
		"Title":     "Masuk",
		"CSRFToken": c.Locals("csrf_token"),
		"Banner":    banner,
	}, "layouts/main")
}
