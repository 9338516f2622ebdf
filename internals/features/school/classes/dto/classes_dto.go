package dto

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	m "sekolahku_backend/internals/features/school/classes/model"
	helper "sekolahku_backend/internals/helpers"
)

/* =========================================================
   PESAN (banner & validasi)
   ========================================================= */

const (
	MsgClassCreated      = "Kelas berhasil ditambahkan"
	MsgClassUpdated      = "Kelas berhasil diperbarui"
	MsgClassDeleted      = "Kelas berhasil dihapus"
	MsgClassNotFound     = "Kelas tidak ditemukan"
	MsgClassCodeTaken    = "Kode kelas sudah digunakan"
	MsgClassHasRelations = "Kelas masih memiliki siswa atau mapel terkait, tidak dapat dihapus"
	MsgClassLoadFailed   = "Gagal mengambil data kelas"
	MsgClassSaveFailed   = "Gagal menyimpan data kelas"
	MsgTeacherNotFound   = "Wali kelas tidak ditemukan"
	MsgUnknownAction     = "Aksi tidak dikenali"
)

var classFieldMsg = map[string]string{
	"ClassID":   "Kelas tidak valid",
	"ClassName": "Nama kelas wajib diisi",
	"ClassCode": "Kode kelas wajib diisi",
	"TeacherID": "Wali kelas wajib dipilih",
}

var validate = validator.New()

// localizeClassErr memetakan error validator ke pesan banner; field pertama
// yang gagal yang dilaporkan.
func localizeClassErr(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		if msg, ok := classFieldMsg[verrs[0].StructField()]; ok {
			return fiber.NewError(fiber.StatusBadRequest, msg)
		}
	}
	return fiber.NewError(fiber.StatusBadRequest, "Data kelas tidak valid")
}

/* =========================================================
   ACTION — discriminant eksplisit dari form POST
   ========================================================= */

type ClassAction string

const (
	ClassActionCreate ClassAction = "create_class"
	ClassActionUpdate ClassAction = "update_class"
	ClassActionDelete ClassAction = "delete_class"
)

// ResolveClassAction membaca flag aksi dari body POST. Tepat satu flag harus
// hadir; nol atau lebih dari satu ditolak eksplisit (tidak ada mutasi diam-diam).
func ResolveClassAction(c *fiber.Ctx) (ClassAction, error) {
	args := c.Request().PostArgs()
	found := make([]ClassAction, 0, 1)
	for _, a := range []ClassAction{ClassActionCreate, ClassActionUpdate, ClassActionDelete} {
		if args.Has(string(a)) {
			found = append(found, a)
		}
	}
	if len(found) != 1 {
		return "", fiber.NewError(fiber.StatusBadRequest, MsgUnknownAction)
	}
	return found[0], nil
}

/* =========================================================
   CREATE / UPDATE / DELETE requests
   ========================================================= */

type CreateClassRequest struct {
	ClassName string `form:"class_name" validate:"required,max=120"`
	ClassCode string `form:"class_code" validate:"required,max=40"`
	TeacherID uint   `form:"homeroom_teacher_id" validate:"required"`
}

// ParseCreateClass mengambil field form, trim, parse id, lalu validasi penuh
// sebelum ada panggilan ke store.
func ParseCreateClass(c *fiber.Ctx) (CreateClassRequest, error) {
	req := CreateClassRequest{
		ClassName: strings.TrimSpace(c.FormValue("class_name")),
		ClassCode: strings.TrimSpace(c.FormValue("class_code")),
	}
	if id, err := helper.ParseID(c.FormValue("homeroom_teacher_id")); err == nil {
		req.TeacherID = id
	}
	if err := validate.Struct(req); err != nil {
		return req, localizeClassErr(err)
	}
	return req, nil
}

func (r CreateClassRequest) ToModel() m.ClassModel {
	return m.ClassModel{
		ClassName:      r.ClassName,
		ClassCode:      r.ClassCode,
		ClassTeacherID: r.TeacherID,
	}
}

type UpdateClassRequest struct {
	ClassID   uint   `form:"class_id" validate:"required"`
	ClassName string `form:"class_name" validate:"required,max=120"`
	ClassCode string `form:"class_code" validate:"required,max=40"`
	TeacherID uint   `form:"homeroom_teacher_id" validate:"required"`
}

func ParseUpdateClass(c *fiber.Ctx) (UpdateClassRequest, error) {
	req := UpdateClassRequest{
		ClassName: strings.TrimSpace(c.FormValue("class_name")),
		ClassCode: strings.TrimSpace(c.FormValue("class_code")),
	}
	if id, err := helper.ParseID(c.FormValue("class_id")); err == nil {
		req.ClassID = id
	}
	if id, err := helper.ParseID(c.FormValue("homeroom_teacher_id")); err == nil {
		req.TeacherID = id
	}
	if err := validate.Struct(req); err != nil {
		return req, localizeClassErr(err)
	}
	return req, nil
}

// Apply menyalin perubahan ke model yang sudah diambil dari DB.
func (r UpdateClassRequest) Apply(mm *m.ClassModel) {
	mm.ClassName = r.ClassName
	mm.ClassCode = r.ClassCode
	mm.ClassTeacherID = r.TeacherID
}

func ParseDeleteClass(c *fiber.Ctx) (uint, error) {
	id, err := helper.ParseID(c.FormValue("class_id"))
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, classFieldMsg["ClassID"])
	}
	return id, nil
}

/* =========================================================
   VIEW ROW — baris tabel + prefill modal edit
   ========================================================= */

type ClassRow struct {
	ClassID         uint   `json:"class_id" gorm:"column:class_id"`
	ClassName       string `json:"class_name" gorm:"column:class_name"`
	ClassCode       string `json:"class_code" gorm:"column:class_code"`
	TeacherID       uint   `json:"homeroom_teacher_id" gorm:"column:class_teacher_id"`
	TeacherUsername string `json:"teacher_username" gorm:"column:teacher_username"`
	StudentCount    int64  `json:"student_count" gorm:"column:student_count"`
	SubjectCount    int64  `json:"subject_count" gorm:"column:subject_count"`
}
