package seeds

import (
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"sekolahku_backend/internals/configs"
	userModel "sekolahku_backend/internals/features/users/auth/model"
)

// EnsureDefaultAdmin membuat akun admin awal dari env ADMIN_EMAIL/ADMIN_PASSWORD
// kalau tabel users masih kosong. Tanpa env, tidak ada yang dibuat.
func EnsureDefaultAdmin(db *gorm.DB) error {
	var cnt int64
	if err := db.Model(&userModel.UserModel{}).Count(&cnt).Error; err != nil {
		return err
	}
	if cnt > 0 {
		return nil
	}

	email := configs.GetEnv("ADMIN_EMAIL")
	password := configs.GetEnv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Println("⚠️ Tabel users kosong dan ADMIN_EMAIL/ADMIN_PASSWORD tidak diset — lewati seeding admin")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := userModel.UserModel{
		UserName:     configs.GetEnv("ADMIN_NAME", "Administrator"),
		UserEmail:    email,
		UserPassword: string(hash),
		UserRole:     "admin",
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	log.Printf("✅ Admin awal dibuat: %s", email)
	return nil
}
