// Package testutil menyediakan harness test: app fiber lengkap di atas
// SQLite in-memory, plus util cookie/CSRF untuk round-trip form HTML.
package testutil

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	database "sekolahku_backend/internals/databases"
	teacherModel "sekolahku_backend/internals/features/school/teachers/model"
	userModel "sekolahku_backend/internals/features/users/auth/model"
	"sekolahku_backend/internals/server"
)

const (
	AdminEmail    = "admin@sekolahku.test"
	AdminPassword = "rahasia123"
	AdminName     = "Admin Test"
)

var csrfTokenRe = regexp.MustCompile(`name="csrf_token" value="([^"]+)"`)

type TestEnv struct {
	App *fiber.App
	DB  *gorm.DB

	t       *testing.T
	cookies map[string]*http.Cookie
}

// Setup membangun app lengkap di atas SQLite in-memory, migrasi semua
// tabel, dan seed dua guru + satu akun admin.
func Setup(t *testing.T) *TestEnv {
	t.Helper()
	t.Setenv("JWT_SECRET", "unit-test-secret")

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))

	require.NoError(t, db.Create(&[]teacherModel.TeacherModel{
		{TeacherUsername: "pak.budi"},
		{TeacherUsername: "bu.siti"},
	}).Error)

	hash, err := bcrypt.GenerateFromPassword([]byte(AdminPassword), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, db.Create(&userModel.UserModel{
		UserName:     AdminName,
		UserEmail:    AdminEmail,
		UserPassword: string(hash),
		UserRole:     "admin",
	}).Error)

	return &TestEnv{
		App:     server.NewApp(db),
		DB:      db,
		t:       t,
		cookies: map[string]*http.Cookie{},
	}
}

// Login menjalankan alur login beneran: GET /login (ambil token CSRF),
// lalu POST kredensial. Cookie access_token tersimpan di env.
func (e *TestEnv) Login() {
	e.t.Helper()
	_, body := e.Get("/login")
	token := e.CSRFToken(body)

	form := url.Values{}
	form.Set("csrf_token", token)
	form.Set("user_email", AdminEmail)
	form.Set("user_password", AdminPassword)
	resp, _ := e.PostFormRaw("/login", form)
	require.Equal(e.t, fiber.StatusSeeOther, resp.StatusCode, "login harus redirect")
	require.NotEmpty(e.t, e.cookies["access_token"], "cookie access_token harus diset")
}

// Get mengirim GET dengan cookie tersimpan; balik (response, body).
func (e *TestEnv) Get(path string) (*http.Response, string) {
	e.t.Helper()
	req := httptest.NewRequest(fiber.MethodGet, path, nil)
	e.attachCookies(req)
	resp, err := e.App.Test(req, -1)
	require.NoError(e.t, err)
	e.storeCookies(resp)
	return resp, readBody(e.t, resp)
}

// PostForm mengambil token CSRF segar dari halaman form lalu POST.
// Field csrf_token yang sudah ada di form tidak ditimpa.
func (e *TestEnv) PostForm(path string, form url.Values) (*http.Response, string) {
	e.t.Helper()
	if form.Get("csrf_token") == "" {
		_, body := e.Get(path)
		form.Set("csrf_token", e.CSRFToken(body))
	}
	return e.PostFormRaw(path, form)
}

// PostFormRaw POST apa adanya (untuk test token hilang/invalid).
func (e *TestEnv) PostFormRaw(path string, form url.Values) (*http.Response, string) {
	e.t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	e.attachCookies(req)
	resp, err := e.App.Test(req, -1)
	require.NoError(e.t, err)
	e.storeCookies(resp)
	return resp, readBody(e.t, resp)
}

// CSRFToken mengekstrak token dari HTML yang dirender.
func (e *TestEnv) CSRFToken(body string) string {
	e.t.Helper()
	m := csrfTokenRe.FindStringSubmatch(body)
	require.Len(e.t, m, 2, "token csrf harus ada di halaman")
	return m[1]
}

// SetCookie menimpa cookie tersimpan (untuk test token rusak/kedaluwarsa).
func (e *TestEnv) SetCookie(name, value string) {
	e.cookies[name] = &http.Cookie{Name: name, Value: value}
}

func (e *TestEnv) attachCookies(req *http.Request) {
	for _, ck := range e.cookies {
		req.AddCookie(ck)
	}
}

func (e *TestEnv) storeCookies(resp *http.Response) {
	for _, ck := range resp.Cookies() {
		if ck.Value == "" || ck.MaxAge < 0 {
			delete(e.cookies, ck.Name)
			continue
		}
		e.cookies[ck.Name] = ck
	}
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()
	return string(b)
}
