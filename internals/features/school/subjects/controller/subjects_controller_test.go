package controller_test

import (
	"encoding/json"
	"net/url"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	classModel "sekolahku_backend/internals/features/school/classes/model"
	subjectDTO "sekolahku_backend/internals/features/school/subjects/dto"
	subjectModel "sekolahku_backend/internals/features/school/subjects/model"
	"sekolahku_backend/internals/testutil"
)

func subjectForm(action string, fields map[string]string) url.Values {
	form := url.Values{}
	form.Set(action, "1")
	for k, v := range fields {
		form.Set(k, v)
	}
	return form
}

func countSubjects(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var cnt int64
	require.NoError(t, db.Model(&subjectModel.SubjectModel{}).Count(&cnt).Error)
	return cnt
}

func TestSubjectsPageRequiresLogin(t *testing.T) {
	e := testutil.Setup(t)

	resp, _ := e.Get("/admin/subjects")
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/login", resp.Header.Get(fiber.HeaderLocation))
}

func TestCreateSubject(t *testing.T) {
	e := testutil.Setup(t)
	e.Login()

	resp, body := e.PostForm("/admin/subjects", subjectForm("create_subject", map[string]string{
		"subject_name": "Matematika",
	}))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Contains(t, body, subjectDTO.MsgSubjectCreated)
	require.Contains(t, body, "Matematika")

	var m subjectModel.SubjectModel
	require.NoError(t, e.DB.First(&m).Error)
	require.Equal(t, "Matematika", m.SubjectName)
}

func TestCreateSubjectEmptyName(t *testing.T) {
	e := testutil.Setup(t)
	e.Login()

	resp, body := e.PostForm("/admin/subjects", subjectForm("create_subject", map[string]string{
		"subject_name": "   ",
	}))
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	require.Contains(t, body, "Nama mapel wajib diisi")
	require.EqualValues(t, 0, countSubjects(t, e.DB))
}

func TestCreateSubjectDuplicateName(t *testing.T) {
	e := testutil.Setup(t)
	e.Login()

	require.NoError(t, e.DB.Create(&subjectModel.SubjectModel{SubjectName: "Matematika"}).Error)

	// case-insensitive
	resp, body := e.PostForm("/admin/subjects", subjectForm("create_subject", map[string]string{
		"subject_name": "MATEMATIKA",
	}))
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	require.Contains(t, body, subjectDTO.MsgSubjectNameTaken)
	require.EqualValues(t, 1, countSubjects(t, e.DB))
}

func TestUpdateSubject(t *testing.T) {
	e := testutil.Setup(t)
	e.Login()

	seed := subjectModel.SubjectModel{SubjectName: "Matematika"}
	require.NoError(t, e.DB.Create(&seed).Error)

	resp, body := e.PostForm("/admin/subjects", subjectForm("update_subject", map[string]string{
		"subject_id":   "1",
		"subject_name": "Matematika Lanjut",
	}))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Contains(t, body, subjectDTO.MsgSubjectUpdated)

	var m subjectModel.SubjectModel
	require.NoError(t, e.DB.First(&m, "subject_id = ?", seed.SubjectID).Error)
	require.Equal(t, "Matematika Lanjut", m.SubjectName)
}

func TestUpdateSubjectNotFound(t *testing.T) {
	e := testutil.Setup(t)
	e.Login()

	seed := subjectModel.SubjectModel{SubjectName: "Matematika"}
	require.NoError(t, e.DB.Create(&seed).Error)

	resp, body := e.PostForm("/admin/subjects", subjectForm("update_subject", map[string]string{
		"subject_id":   "999",
		"subject_name": "Fisika",
	}))
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	require.Contains(t, body, subjectDTO.MsgSubjectNotFound)

	var m subjectModel.SubjectModel
	require.NoError(t, e.DB.First(&m, "subject_id = ?", seed.SubjectID).Error)
	require.Equal(t, "Matematika", m.SubjectName)
}

func TestDeleteSubject(t *testing.T) {
	e := testutil.Setup(t)
	e.Login()

	require.NoError(t, e.DB.Create(&subjectModel.SubjectModel{SubjectName: "Matematika"}).Error)

	resp, body := e.PostForm("/admin/subjects", subjectForm("delete_subject", map[string]string{
		"subject_id": "1",
	}))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Contains(t, body, subjectDTO.MsgSubjectDeleted)
	require.EqualValues(t, 0, countSubjects(t, e.DB))
}

func TestDeleteSubjectInUse(t *testing.T) {
	e := testutil.Setup(t)
	e.Login()

	seed := subjectModel.SubjectModel{SubjectName: "Matematika"}
	require.NoError(t, e.DB.Create(&seed).Error)
	require.NoError(t, e.DB.Create(&classModel.ClassSubjectModel{
		ClassSubjectClassID:   1,
		ClassSubjectSubjectID: seed.SubjectID,
		ClassSubjectTeacherID: 1,
	}).Error)

	resp, body := e.PostForm("/admin/subjects", subjectForm("delete_subject", map[string]string{
		"subject_id": "1",
	}))
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	require.Contains(t, body, subjectDTO.MsgSubjectHasRelations)
	require.EqualValues(t, 1, countSubjects(t, e.DB))
}

func TestSubjectPostWithoutCSRF(t *testing.T) {
	e := testutil.Setup(t)
	e.Login()

	resp, _ := e.PostFormRaw("/admin/subjects", subjectForm("create_subject", map[string]string{
		"subject_name": "Matematika",
	}))
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	require.EqualValues(t, 0, countSubjects(t, e.DB))
}

func TestSubjectAmbiguousAction(t *testing.T) {
	e := testutil.Setup(t)
	e.Login()

	form := subjectForm("create_subject", map[string]string{
		"subject_name": "Matematika",
	})
	form.Set("update_subject", "1")
	resp, body := e.PostForm("/admin/subjects", form)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	require.Contains(t, body, subjectDTO.MsgUnknownAction)
	require.EqualValues(t, 0, countSubjects(t, e.DB))
}

func TestSubjectDetailJSON(t *testing.T) {
	e := testutil.Setup(t)
	e.Login()

	seed := subjectModel.SubjectModel{SubjectName: "Matematika"}
	require.NoError(t, e.DB.Create(&seed).Error)
	require.NoError(t, e.DB.Create(&[]classModel.ClassSubjectModel{
		{ClassSubjectClassID: 1, ClassSubjectSubjectID: seed.SubjectID, ClassSubjectTeacherID: 1},
		{ClassSubjectClassID: 2, ClassSubjectSubjectID: seed.SubjectID, ClassSubjectTeacherID: 1},
	}).Error)

	resp, body := e.Get("/admin/subjects?subject_id=1&format=json")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var envelope struct {
		Success bool                  `json:"success"`
		Data    subjectDTO.SubjectRow `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &envelope))
	require.True(t, envelope.Success)
	require.Equal(t, "Matematika", envelope.Data.SubjectName)
	require.EqualValues(t, 2, envelope.Data.ClassCount)
	require.EqualValues(t, 1, envelope.Data.TeacherCount)
}

func TestSubjectDetailJSONUnknownID(t *testing.T) {
	e := testutil.Setup(t)
	e.Login()

	resp, _ := e.Get("/admin/subjects?subject_id=999&format=json")
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestSubjectExportExcel(t *testing.T) {
	e := testutil.Setup(t)
	e.Login()

	require.NoError(t, e.DB.Create(&subjectModel.SubjectModel{SubjectName: "Matematika"}).Error)

	resp, body := e.Get("/admin/subjects/export")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Contains(t, resp.Header.Get(fiber.HeaderContentType), "spreadsheetml")
	require.NotEmpty(t, body)
}
