package controller_test

import (
	"encoding/json"
	"net/url"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	classDTO "sekolahku_backend/internals/features/school/classes/dto"
	classModel "sekolahku_backend/internals/features/school/classes/model"
	studentModel "sekolahku_backend/internals/features/school/students/model"
	"sekolahku_backend/internals/testutil"
)

func classForm(action string, fields map[string]string) url.Values {
	form := url.Values{}
	form.Set(action, "1")
	for k, v := range fields {
		form.Set(k, v)
	}
	return form
}

func countClasses(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var cnt int64
	require.NoError(t, db.Model(&classModel.ClassModel{}).Count(&cnt).Error)
	return cnt
}

func TestClassesPageRequiresLogin(t *testing.T) {
	e := testutil.Setup(t)

	resp, _ := e.Get("/admin/classes")
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/login", resp.Header.Get(fiber.HeaderLocation))
}

func TestClassesPageEmptyState(t *testing.T) {
	e := testutil.Setup(t)
	e.Login()

	resp, body := e.Get("/admin/classes")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Contains(t, body, "Belum ada kelas terdaftar.")
	require.Contains(t, body, "pak.budi") // dropdown wali kelas tetap terisi
}

func TestCreateClass(t *testing.T) {
	e := testutil.Setup(t)
	e.Login()

	resp, body := e.PostForm("/admin/classes", classForm("create_class", map[string]string{
		"class_name":          "1.A",
		"class_code":          "2024/2025",
		"homeroom_teacher_id": "1",
	}))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Contains(t, body, classDTO.MsgClassCreated)
	require.Contains(t, body, "1.A")
	require.Contains(t, body, "2024/2025")

	var m classModel.ClassModel
	require.NoError(t, e.DB.First(&m).Error)
	require.Equal(t, "1.A", m.ClassName)
	require.Equal(t, "2024/2025", m.ClassCode)
	require.EqualValues(t, 1, m.ClassTeacherID)
}

func TestCreateClassValidation(t *testing.T) {
	cases := []struct {
		name    string
		fields  map[string]string
		wantMsg string
	}{
		{
			name:    "nama kosong",
			fields:  map[string]string{"class_name": "   ", "class_code": "2024/2025", "homeroom_teacher_id": "1"},
			wantMsg: "Nama kelas wajib diisi",
		},
		{
			name:    "kode kosong",
			fields:  map[string]string{"class_name": "1.A", "class_code": "", "homeroom_teacher_id": "1"},
			wantMsg: "Kode kelas wajib diisi",
		},
		{
			name:    "wali kosong",
			fields:  map[string]string{"class_name": "1.A", "class_code": "2024/2025", "homeroom_teacher_id": ""},
			wantMsg: "Wali kelas wajib dipilih",
		},
		{
			name:    "wali bukan angka",
			fields:  map[string]string{"class_name": "1.A", "class_code": "2024/2025", "homeroom_teacher_id": "abc"},
			wantMsg: "Wali kelas wajib dipilih",
		},
		{
			name:    "wali negatif",
			fields:  map[string]string{"class_name": "1.A", "class_code": "2024/2025", "homeroom_teacher_id": "-3"},
			wantMsg: "Wali kelas wajib dipilih",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := testutil.Setup(t)
			e.Login()

			resp, body := e.PostForm("/admin/classes", classForm("create_class", tc.fields))
			require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
			require.Contains(t, body, tc.wantMsg)
			require.EqualValues(t, 0, countClasses(t, e.DB))
		})
	}
}

func TestCreateClassUnknownTeacher(t *testing.T) {
	e := testutil.Setup(t)
	e.Login()

	_, body := e.PostForm("/admin/classes", classForm("create_class", map[string]string{
		"class_name":          "1.A",
		"class_code":          "2024/2025",
		"homeroom_teacher_id": "999",
	}))
	require.Contains(t, body, classDTO.MsgTeacherNotFound)
	require.EqualValues(t, 0, countClasses(t, e.DB))
}

func TestCreateClassDuplicateCode(t *testing.T) {
	e := testutil.Setup(t)
	e.Login()

	fields := map[string]string{
		"class_name":          "1.A",
		"class_code":          "2024/2025",
		"homeroom_teacher_id": "1",
	}
	_, body := e.PostForm("/admin/classes", classForm("create_class", fields))
	require.Contains(t, body, classDTO.MsgClassCreated)

	fields["class_name"] = "1.B"
	resp, body := e.PostForm("/admin/classes", classForm("create_class", fields))
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	require.Contains(t, body, classDTO.MsgClassCodeTaken)
	require.EqualValues(t, 1, countClasses(t, e.DB))
}

func TestUpdateClass(t *testing.T) {
	e := testutil.Setup(t)
	e.Login()

	seed := classModel.ClassModel{ClassName: "1.A", ClassCode: "2024/2025", ClassTeacherID: 1}
	require.NoError(t, e.DB.Create(&seed).Error)

	resp, body := e.PostForm("/admin/classes", classForm("update_class", map[string]string{
		"class_id":            "1",
		"class_name":          "1.A Unggulan",
		"class_code":          "2024/2025",
		"homeroom_teacher_id": "2",
	}))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Contains(t, body, classDTO.MsgClassUpdated)

	var m classModel.ClassModel
	require.NoError(t, e.DB.First(&m, "class_id = ?", seed.ClassID).Error)
	require.Equal(t, "1.A Unggulan", m.ClassName)
	require.EqualValues(t, 2, m.ClassTeacherID)
}

func TestUpdateClassNotFound(t *testing.T) {
	e := testutil.Setup(t)
	e.Login()

	seed := classModel.ClassModel{ClassName: "1.A", ClassCode: "2024/2025", ClassTeacherID: 1}
	require.NoError(t, e.DB.Create(&seed).Error)

	resp, body := e.PostForm("/admin/classes", classForm("update_class", map[string]string{
		"class_id":            "999",
		"class_name":          "9.Z",
		"class_code":          "1999/2000",
		"homeroom_teacher_id": "1",
	}))
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	require.Contains(t, body, classDTO.MsgClassNotFound)

	// daftar tidak berubah
	var m classModel.ClassModel
	require.NoError(t, e.DB.First(&m, "class_id = ?", seed.ClassID).Error)
	require.Equal(t, "1.A", m.ClassName)
	require.EqualValues(t, 1, countClasses(t, e.DB))
}

func TestDeleteClass(t *testing.T) {
	e := testutil.Setup(t)
	e.Login()

	seed := classModel.ClassModel{ClassName: "1.A", ClassCode: "2024/2025", ClassTeacherID: 1}
	require.NoError(t, e.DB.Create(&seed).Error)

	resp, body := e.PostForm("/admin/classes", classForm("delete_class", map[string]string{
		"class_id": "1",
	}))
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Contains(t, body, classDTO.MsgClassDeleted)
	require.EqualValues(t, 0, countClasses(t, e.DB))
}

func TestDeleteClassWithStudents(t *testing.T) {
	e := testutil.Setup(t)
	e.Login()

	seed := classModel.ClassModel{ClassName: "1.A", ClassCode: "2024/2025", ClassTeacherID: 1}
	require.NoError(t, e.DB.Create(&seed).Error)
	classID := seed.ClassID
	require.NoError(t, e.DB.Create(&studentModel.StudentModel{
		StudentName:    "Andi",
		StudentClassID: &classID,
	}).Error)

	resp, body := e.PostForm("/admin/classes", classForm("delete_class", map[string]string{
		"class_id": "1",
	}))
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	require.Contains(t, body, classDTO.MsgClassHasRelations)
	require.EqualValues(t, 1, countClasses(t, e.DB))
}

func TestDeleteClassWithSubjects(t *testing.T) {
	e := testutil.Setup(t)
	e.Login()

	seed := classModel.ClassModel{ClassName: "1.A", ClassCode: "2024/2025", ClassTeacherID: 1}
	require.NoError(t, e.DB.Create(&seed).Error)
	require.NoError(t, e.DB.Create(&classModel.ClassSubjectModel{
		ClassSubjectClassID:   seed.ClassID,
		ClassSubjectSubjectID: 1,
		ClassSubjectTeacherID: 1,
	}).Error)

	_, body := e.PostForm("/admin/classes", classForm("delete_class", map[string]string{
		"class_id": "1",
	}))
	require.Contains(t, body, classDTO.MsgClassHasRelations)
	require.EqualValues(t, 1, countClasses(t, e.DB))
}

func TestClassPostWithoutCSRF(t *testing.T) {
	e := testutil.Setup(t)
	e.Login()

	resp, _ := e.PostFormRaw("/admin/classes", classForm("create_class", map[string]string{
		"class_name":          "1.A",
		"class_code":          "2024/2025",
		"homeroom_teacher_id": "1",
	}))
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	require.EqualValues(t, 0, countClasses(t, e.DB))
}

func TestClassPostWithBogusCSRF(t *testing.T) {
	e := testutil.Setup(t)
	e.Login()

	form := classForm("create_class", map[string]string{
		"class_name":          "1.A",
		"class_code":          "2024/2025",
		"homeroom_teacher_id": "1",
	})
	form.Set("csrf_token", "bukan-token-valid")
	resp, _ := e.PostFormRaw("/admin/classes", form)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	require.EqualValues(t, 0, countClasses(t, e.DB))
}

func TestClassAmbiguousAction(t *testing.T) {
	e := testutil.Setup(t)
	e.Login()

	form := classForm("create_class", map[string]string{
		"class_name":          "1.A",
		"class_code":          "2024/2025",
		"homeroom_teacher_id": "1",
	})
	form.Set("delete_class", "1")
	resp, body := e.PostForm("/admin/classes", form)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	require.Contains(t, body, classDTO.MsgUnknownAction)
	require.EqualValues(t, 0, countClasses(t, e.DB))
}

func TestClassNoAction(t *testing.T) {
	e := testutil.Setup(t)
	e.Login()

	form := url.Values{}
	form.Set("class_name", "1.A")
	resp, body := e.PostForm("/admin/classes", form)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	require.Contains(t, body, classDTO.MsgUnknownAction)
}

func TestClassDetailPrefill(t *testing.T) {
	e := testutil.Setup(t)
	e.Login()

	seed := classModel.ClassModel{ClassName: "1.A", ClassCode: "2024/2025", ClassTeacherID: 2}
	require.NoError(t, e.DB.Create(&seed).Error)

	_, body := e.Get("/admin/classes?class_id=1")
	require.Contains(t, body, `value="1.A"`)
	require.Contains(t, body, "openModal('modal-edit')")
}

func TestClassDetailJSON(t *testing.T) {
	e := testutil.Setup(t)
	e.Login()

	seed := classModel.ClassModel{ClassName: "1.A", ClassCode: "2024/2025", ClassTeacherID: 2}
	require.NoError(t, e.DB.Create(&seed).Error)

	resp, body := e.Get("/admin/classes?class_id=1&format=json")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var envelope struct {
		Success bool             `json:"success"`
		Data    classDTO.ClassRow `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &envelope))
	require.True(t, envelope.Success)
	require.Equal(t, "1.A", envelope.Data.ClassName)
	require.Equal(t, "2024/2025", envelope.Data.ClassCode)
	require.EqualValues(t, 2, envelope.Data.TeacherID)
	require.Equal(t, "bu.siti", envelope.Data.TeacherUsername)
}

func TestClassDetailJSONInvalidID(t *testing.T) {
	e := testutil.Setup(t)
	e.Login()

	resp, _ := e.Get("/admin/classes?class_id=abc&format=json")
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, _ = e.Get("/admin/classes?class_id=999&format=json")
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestClassDetailInvalidIDNoPrefill(t *testing.T) {
	e := testutil.Setup(t)
	e.Login()

	_, body := e.Get("/admin/classes?class_id=abc")
	require.NotContains(t, body, "openModal('modal-edit')")
}

func TestClassDerivedCounts(t *testing.T) {
	e := testutil.Setup(t)
	e.Login()

	seed := classModel.ClassModel{ClassName: "1.A", ClassCode: "2024/2025", ClassTeacherID: 1}
	require.NoError(t, e.DB.Create(&seed).Error)
	classID := seed.ClassID
	require.NoError(t, e.DB.Create(&[]studentModel.StudentModel{
		{StudentName: "Andi", StudentClassID: &classID},
		{StudentName: "Budi", StudentClassID: &classID},
	}).Error)
	require.NoError(t, e.DB.Create(&classModel.ClassSubjectModel{
		ClassSubjectClassID:   classID,
		ClassSubjectSubjectID: 1,
		ClassSubjectTeacherID: 1,
	}).Error)

	resp, body := e.Get("/admin/classes?class_id=1&format=json")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var envelope struct {
		Data classDTO.ClassRow `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &envelope))
	require.EqualValues(t, 2, envelope.Data.StudentCount)
	require.EqualValues(t, 1, envelope.Data.SubjectCount)
}

func TestClassExportExcel(t *testing.T) {
	e := testutil.Setup(t)
	e.Login()

	require.NoError(t, e.DB.Create(&classModel.ClassModel{
		ClassName: "1.A", ClassCode: "2024/2025", ClassTeacherID: 1,
	}).Error)

	resp, body := e.Get("/admin/classes/export")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Contains(t, resp.Header.Get(fiber.HeaderContentType), "spreadsheetml")
	require.NotEmpty(t, body)
}
