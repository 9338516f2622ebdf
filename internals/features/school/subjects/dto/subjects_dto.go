package dto

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	m "sekolahku_backend/internals/features/school/subjects/model"
	helper "sekolahku_backend/internals/helpers"
)

const (
	MsgSubjectCreated      = "Mapel berhasil ditambahkan"
	MsgSubjectUpdated      = "Mapel berhasil diperbarui"
	MsgSubjectDeleted      = "Mapel berhasil dihapus"
	MsgSubjectNotFound     = "Mapel tidak ditemukan"
	MsgSubjectNameTaken    = "Nama mapel sudah terdaftar"
	MsgSubjectHasRelations = "Mapel masih dipakai oleh kelas, tidak dapat dihapus"
	MsgSubjectLoadFailed   = "Gagal mengambil data mapel"
	MsgSubjectSaveFailed   = "Gagal menyimpan data mapel"
	MsgUnknownAction       = "Aksi tidak dikenali"
)

var subjectFieldMsg = map[string]string{
	"SubjectID":   "Mapel tidak valid",
	"SubjectName": "Nama mapel wajib diisi",
}

var validate = validator.New()

func localizeSubjectErr(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		if msg, ok := subjectFieldMsg[verrs[0].StructField()]; ok {
			return fiber.NewError(fiber.StatusBadRequest, msg)
		}
	}
	return fiber.NewError(fiber.StatusBadRequest, "Data mapel tidak valid")
}

/* =========================================================
   ACTION — discriminant eksplisit dari form POST
   ========================================================= */

type SubjectAction string

const (
	SubjectActionCreate SubjectAction = "create_subject"
	SubjectActionUpdate SubjectAction = "update_subject"
	SubjectActionDelete SubjectAction = "delete_subject"
)

func ResolveSubjectAction(c *fiber.Ctx) (SubjectAction, error) {
	args := c.Request().PostArgs()
	found := make([]SubjectAction, 0, 1)
	for _, a := range []SubjectAction{SubjectActionCreate, SubjectActionUpdate, SubjectActionDelete} {
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

type CreateSubjectRequest struct {
	SubjectName string `form:"subject_name" validate:"required,max=120"`
}

func ParseCreateSubject(c *fiber.Ctx) (CreateSubjectRequest, error) {
	req := CreateSubjectRequest{
		SubjectName: strings.TrimSpace(c.FormValue("subject_name")),
	}
	if err := validate.Struct(req); err != nil {
		return req, localizeSubjectErr(err)
	}
	return req, nil
}

func (r CreateSubjectRequest) ToModel() m.SubjectModel {
	return m.SubjectModel{SubjectName: r.SubjectName}
}

type UpdateSubjectRequest struct {
	SubjectID   uint   `form:"subject_id" validate:"required"`
	SubjectName string `form:"subject_name" validate:"required,max=120"`
}

func ParseUpdateSubject(c *fiber.Ctx) (UpdateSubjectRequest, error) {
	req := UpdateSubjectRequest{
		SubjectName: strings.TrimSpace(c.FormValue("subject_name")),
	}
	if id, err := helper.ParseID(c.FormValue("subject_id")); err == nil {
		req.SubjectID = id
	}
	if err := validate.Struct(req); err != nil {
		return req, localizeSubjectErr(err)
	}
	return req, nil
}

func (r UpdateSubjectRequest) Apply(mm *m.SubjectModel) {
	mm.SubjectName = r.SubjectName
}

func ParseDeleteSubject(c *fiber.Ctx) (uint, error) {
	id, err := helper.ParseID(c.FormValue("subject_id"))
	if err != nil {
		return 0, fiber.NewError(fiber.StatusBadRequest, subjectFieldMsg["SubjectID"])
	}
	return id, nil
}

/* =========================================================
   VIEW ROW
   ========================================================= */

type SubjectRow struct {
	SubjectID    uint   `json:"subject_id" gorm:"column:subject_id"`
	SubjectName  string `json:"subject_name" gorm:"column:subject_name"`
	ClassCount   int64  `json:"class_count" gorm:"column:class_count"`
	TeacherCount int64  `json:"teacher_count" gorm:"column:teacher_count"`
}
