package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	classDTO "sekolahku_backend/internals/features/school/classes/dto"
	classModel "sekolahku_backend/internals/features/school/classes/model"
	studentModel "sekolahku_backend/internals/features/school/students/model"
	teacherModel "sekolahku_backend/internals/features/school/teachers/model"
	helper "sekolahku_backend/internals/helpers"
	authMw "sekolahku_backend/internals/middlewares/auth"
)

type ClassesController struct {
	DB *gorm.DB
}

const classListSelect = `
	classes.class_id,
	classes.class_name,
	classes.class_code,
	classes.class_teacher_id,
	(SELECT t.teacher_username FROM teachers t WHERE t.teacher_id = classes.class_teacher_id) AS teacher_username,
	(SELECT COUNT(*) FROM students s WHERE s.student_class_id = classes.class_id) AS student_count,
	(SELECT COUNT(*) FROM class_subjects cs WHERE cs.class_subject_class_id = classes.class_id) AS subject_count`

/* =========================================================
   PAGE
   GET  /admin/classes[?class_id=N[&format=json]]
   POST /admin/classes  (create_class|update_class|delete_class)
   ========================================================= */

// Page merender halaman kelola kelas. ?class_id=N memuat detail untuk
// prefill modal edit; &format=json menjawab fetch sekunder milik modal.
func (ctl *ClassesController) Page(c *fiber.Ctx) error {
	return ctl.render(c, nil)
}

// Submit memproses POST form lalu merender ulang halaman dengan banner.
// Satu siklus per request: Validating → (Success|Error) → Rendered.
func (ctl *ClassesController) Submit(c *fiber.Ctx) error {
	var banner *helper.Banner

	action, err := classDTO.ResolveClassAction(c)
	if err != nil {
		banner = helper.ErrorBanner(helper.MessageOf(err, classDTO.MsgUnknownAction))
	} else {
		switch action {
		case classDTO.ClassActionCreate:
			banner = ctl.createClass(c)
		case classDTO.ClassActionUpdate:
			banner = ctl.updateClass(c)
		case classDTO.ClassActionDelete:
			banner = ctl.deleteClass(c)
		}
	}

	return ctl.render(c, banner)
}

func (ctl *ClassesController) render(c *fiber.Ctx, banner *helper.Banner) error {
	wantJSON := strings.EqualFold(c.Query("format"), "json")

	// detail untuk prefill modal edit (GET ?class_id=N)
	var editing *classDTO.ClassRow
	if raw := strings.TrimSpace(c.Query("class_id")); raw != "" {
		id, perr := helper.ParseID(raw)
		if perr != nil {
			if wantJSON {
				return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
			}
		} else {
			row, derr := ctl.getClassRow(id)
			if wantJSON {
				if derr != nil {
					return helper.JsonError(c, fiber.StatusNotFound, classDTO.MsgClassNotFound)
				}
				return helper.JsonOK(c, "Detail kelas ditemukan", row)
			}
			if derr == nil {
				editing = row
			}
		}
	}

	rows, err := ctl.listClassRows()
	if err != nil {
		log.Printf("[CLASSES] gagal memuat daftar: %v", err)
		if banner == nil {
			banner = helper.ErrorBanner(classDTO.MsgClassLoadFailed)
		}
	}

	var teachers []teacherModel.TeacherModel
	if err := ctl.DB.Order("teacher_username ASC").Find(&teachers).Error; err != nil {
		log.Printf("[CLASSES] gagal memuat daftar guru: %v", err)
	}

	status := fiber.StatusOK
	if banner != nil && banner.Kind == "error" {
		status = fiber.StatusBadRequest
	}
	return c.Status(status).Render("pages/classes", fiber.Map{
		"Title":     "Kelola Kelas",
		"ActiveNav": "classes",
		"UserName":  c.Locals(authMw.LocUserName),
		"CSRFToken": c.Locals("csrf_token"),
		"Banner":    banner,
		"Classes":   rows,
		"Teachers":  teachers,
		"Editing":   editing,
	}, "layouts/main")
}

/* =========================================================
   MUTATIONS
   ========================================================= */

func (ctl *ClassesController) createClass(c *fiber.Ctx) *helper.Banner {
	req, err := classDTO.ParseCreateClass(c)
	if err != nil {
		return helper.ErrorBanner(helper.MessageOf(err, classDTO.MsgClassSaveFailed))
	}

	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		// wali kelas harus ada
		var cnt int64
		if err := tx.Model(&teacherModel.TeacherModel{}).
			Where("teacher_id = ?", req.TeacherID).
			Count(&cnt).Error; err != nil {
			return err
		}
		if cnt == 0 {
			return fiber.NewError(fiber.StatusBadRequest, classDTO.MsgTeacherNotFound)
		}

		// cek duplikat kode (baris hidup saja)
		if err := tx.Model(&classModel.ClassModel{}).
			Where("lower(class_code) = lower(?)", req.ClassCode).
			Count(&cnt).Error; err != nil {
			return err
		}
		if cnt > 0 {
			return fiber.NewError(fiber.StatusConflict, classDTO.MsgClassCodeTaken)
		}

		mm := req.ToModel()
		if err := tx.Create(&mm).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				return fiber.NewError(fiber.StatusConflict, classDTO.MsgClassCodeTaken)
			}
			return err
		}
		return nil
	}); err != nil {
		logClassErr(c, "create", err)
		return helper.ErrorBanner(helper.MessageOf(err, classDTO.MsgClassSaveFailed))
	}

	return helper.SuccessBanner(classDTO.MsgClassCreated)
}

func (ctl *ClassesController) updateClass(c *fiber.Ctx) *helper.Banner {
	req, err := classDTO.ParseUpdateClass(c)
	if err != nil {
		return helper.ErrorBanner(helper.MessageOf(err, classDTO.MsgClassSaveFailed))
	}

	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		var mm classModel.ClassModel
		if err := tx.First(&mm, "class_id = ?", req.ClassID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, classDTO.MsgClassNotFound)
			}
			return err
		}

		var cnt int64
		if err := tx.Model(&teacherModel.TeacherModel{}).
			Where("teacher_id = ?", req.TeacherID).
			Count(&cnt).Error; err != nil {
			return err
		}
		if cnt == 0 {
			return fiber.NewError(fiber.StatusBadRequest, classDTO.MsgTeacherNotFound)
		}

		// cek duplikat kode milik kelas lain
		if err := tx.Model(&classModel.ClassModel{}).
			Where("lower(class_code) = lower(?) AND class_id <> ?", req.ClassCode, req.ClassID).
			Count(&cnt).Error; err != nil {
			return err
		}
		if cnt > 0 {
			return fiber.NewError(fiber.StatusConflict, classDTO.MsgClassCodeTaken)
		}

		req.Apply(&mm)
		if err := tx.Model(&classModel.ClassModel{}).
			Where("class_id = ?", mm.ClassID).
			Updates(map[string]interface{}{
				"class_name":       mm.ClassName,
				"class_code":       mm.ClassCode,
				"class_teacher_id": mm.ClassTeacherID,
			}).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				return fiber.NewError(fiber.StatusConflict, classDTO.MsgClassCodeTaken)
			}
			return err
		}
		return nil
	}); err != nil {
		logClassErr(c, "update", err)
		return helper.ErrorBanner(helper.MessageOf(err, classDTO.MsgClassSaveFailed))
	}

	return helper.SuccessBanner(classDTO.MsgClassUpdated)
}

func (ctl *ClassesController) deleteClass(c *fiber.Ctx) *helper.Banner {
	id, err := classDTO.ParseDeleteClass(c)
	if err != nil {
		return helper.ErrorBanner(helper.MessageOf(err, classDTO.MsgClassSaveFailed))
	}

	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		var mm classModel.ClassModel
		if err := tx.First(&mm, "class_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, classDTO.MsgClassNotFound)
			}
			return err
		}

		// guard referensial: kelas yang masih dipakai tidak boleh dihapus
		var students, subjects int64
		if err := tx.Model(&studentModel.StudentModel{}).
			Where("student_class_id = ?", id).
			Count(&students).Error; err != nil {
			return err
		}
		if err := tx.Model(&classModel.ClassSubjectModel{}).
			Where("class_subject_class_id = ?", id).
			Count(&subjects).Error; err != nil {
			return err
		}
		if students > 0 || subjects > 0 {
			return fiber.NewError(fiber.StatusBadRequest, classDTO.MsgClassHasRelations)
		}

		if err := tx.Delete(&classModel.ClassModel{}, "class_id = ?", id).Error; err != nil {
			if helper.IsForeignKeyViolation(err) {
				return fiber.NewError(fiber.StatusBadRequest, classDTO.MsgClassHasRelations)
			}
			return err
		}
		return nil
	}); err != nil {
		logClassErr(c, "delete", err)
		return helper.ErrorBanner(helper.MessageOf(err, classDTO.MsgClassSaveFailed))
	}

	return helper.SuccessBanner(classDTO.MsgClassDeleted)
}

/* =========================================================
   QUERIES
   ========================================================= */

func (ctl *ClassesController) listClassRows() ([]classDTO.ClassRow, error) {
	rows := []classDTO.ClassRow{}
	err := ctl.DB.Model(&classModel.ClassModel{}).
		Select(classListSelect).
		Order("classes.class_name ASC").
		Scan(&rows).Error
	return rows, err
}

func (ctl *ClassesController) getClassRow(id uint) (*classDTO.ClassRow, error) {
	var row classDTO.ClassRow
	err := ctl.DB.Model(&classModel.ClassModel{}).
		Select(classListSelect).
		Where("classes.class_id = ?", id).
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// logClassErr mencatat kegagalan persistence dengan identitas user (kalau ada);
// ErrRecordNotFound dan fiber.Error adalah outcome normal, tidak perlu dicatat.
func logClassErr(c *fiber.Ctx, op string, err error) {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return
	}
	log.Printf("[CLASSES] %s gagal: user=%v err=%v", op, c.Locals(authMw.LocUserID), err)
}
