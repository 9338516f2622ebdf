package controller

import (
	"errors"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	classModel "sekolahku_backend/internals/features/school/classes/model"
	subjectDTO "sekolahku_backend/internals/features/school/subjects/dto"
	subjectModel "sekolahku_backend/internals/features/school/subjects/model"
	helper "sekolahku_backend/internals/helpers"
	authMw "sekolahku_backend/internals/middlewares/auth"
)

type SubjectsController struct {
	DB *gorm.DB
}

const subjectListSelect = `
	subjects.subject_id,
	subjects.subject_name,
	(SELECT COUNT(DISTINCT cs.class_subject_class_id) FROM class_subjects cs WHERE cs.class_subject_subject_id = subjects.subject_id) AS class_count,
	(SELECT COUNT(DISTINCT cs.class_subject_teacher_id) FROM class_subjects cs WHERE cs.class_subject_subject_id = subjects.subject_id) AS teacher_count`

/* =========================================================
   PAGE
   GET  /admin/subjects[?subject_id=N[&format=json]]
   POST /admin/subjects  (create_subject|update_subject|delete_subject)
   ========================================================= */

func (ctl *SubjectsController) Page(c *fiber.Ctx) error {
	return ctl.render(c, nil)
}

func (ctl *SubjectsController) Submit(c *fiber.Ctx) error {
	var banner *helper.Banner

	action, err := subjectDTO.ResolveSubjectAction(c)
	if err != nil {
		banner = helper.ErrorBanner(helper.MessageOf(err, subjectDTO.MsgUnknownAction))
	} else {
		switch action {
		case subjectDTO.SubjectActionCreate:
			banner = ctl.createSubject(c)
		case subjectDTO.SubjectActionUpdate:
			banner = ctl.updateSubject(c)
		case subjectDTO.SubjectActionDelete:
			banner = ctl.deleteSubject(c)
		}
	}

	return ctl.render(c, banner)
}

func (ctl *SubjectsController) render(c *fiber.Ctx, banner *helper.Banner) error {
	wantJSON := strings.EqualFold(c.Query("format"), "json")

	var editing *subjectDTO.SubjectRow
	if raw := strings.TrimSpace(c.Query("subject_id")); raw != "" {
		id, perr := helper.ParseID(raw)
		if perr != nil {
			if wantJSON {
				return helper.JsonError(c, fiber.StatusBadRequest, "ID tidak valid")
			}
		} else {
			row, derr := ctl.getSubjectRow(id)
			if wantJSON {
				if derr != nil {
					return helper.JsonError(c, fiber.StatusNotFound, subjectDTO.MsgSubjectNotFound)
				}
				return helper.JsonOK(c, "Detail mapel ditemukan", row)
			}
			if derr == nil {
				editing = row
			}
		}
	}

	rows, err := ctl.listSubjectRows()
	if err != nil {
		log.Printf("[SUBJECTS] gagal memuat daftar: %v", err)
		if banner == nil {
			banner = helper.ErrorBanner(subjectDTO.MsgSubjectLoadFailed)
		}
	}

	status := fiber.StatusOK
	if banner != nil && banner.Kind == "error" {
		status = fiber.StatusBadRequest
	}
	return c.Status(status).Render("pages/subjects", fiber.Map{
		"Title":     "Kelola Mata Pelajaran",
		"ActiveNav": "subjects",
		"UserName":  c.Locals(authMw.LocUserName),
		"CSRFToken": c.Locals("csrf_token"),
		"Banner":    banner,
		"Subjects":  rows,
		"Editing":   editing,
	}, "layouts/main")
}

/* =========================================================
   MUTATIONS
   ========================================================= */

func (ctl *SubjectsController) createSubject(c *fiber.Ctx) *helper.Banner {
	req, err := subjectDTO.ParseCreateSubject(c)
	if err != nil {
		return helper.ErrorBanner(helper.MessageOf(err, subjectDTO.MsgSubjectSaveFailed))
	}

	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		// cek duplikat nama (case-insensitive, baris hidup)
		var cnt int64
		if err := tx.Model(&subjectModel.SubjectModel{}).
			Where("lower(subject_name) = lower(?)", req.SubjectName).
			Count(&cnt).Error; err != nil {
			return err
		}
		if cnt > 0 {
			return fiber.NewError(fiber.StatusConflict, subjectDTO.MsgSubjectNameTaken)
		}

		mm := req.ToModel()
		if err := tx.Create(&mm).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				return fiber.NewError(fiber.StatusConflict, subjectDTO.MsgSubjectNameTaken)
			}
			return err
		}
		return nil
	}); err != nil {
		logSubjectErr(c, "create", err)
		return helper.ErrorBanner(helper.MessageOf(err, subjectDTO.MsgSubjectSaveFailed))
	}

	return helper.SuccessBanner(subjectDTO.MsgSubjectCreated)
}

func (ctl *SubjectsController) updateSubject(c *fiber.Ctx) *helper.Banner {
	req, err := subjectDTO.ParseUpdateSubject(c)
	if err != nil {
		return helper.ErrorBanner(helper.MessageOf(err, subjectDTO.MsgSubjectSaveFailed))
	}

	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		var mm subjectModel.SubjectModel
		if err := tx.First(&mm, "subject_id = ?", req.SubjectID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, subjectDTO.MsgSubjectNotFound)
			}
			return err
		}

		var cnt int64
		if err := tx.Model(&subjectModel.SubjectModel{}).
			Where("lower(subject_name) = lower(?) AND subject_id <> ?", req.SubjectName, req.SubjectID).
			Count(&cnt).Error; err != nil {
			return err
		}
		if cnt > 0 {
			return fiber.NewError(fiber.StatusConflict, subjectDTO.MsgSubjectNameTaken)
		}

		req.Apply(&mm)
		if err := tx.Model(&subjectModel.SubjectModel{}).
			Where("subject_id = ?", mm.SubjectID).
			Updates(map[string]interface{}{
				"subject_name": mm.SubjectName,
			}).Error; err != nil {
			if helper.IsUniqueViolation(err) {
				return fiber.NewError(fiber.StatusConflict, subjectDTO.MsgSubjectNameTaken)
			}
			return err
		}
		return nil
	}); err != nil {
		logSubjectErr(c, "update", err)
		return helper.ErrorBanner(helper.MessageOf(err, subjectDTO.MsgSubjectSaveFailed))
	}

	return helper.SuccessBanner(subjectDTO.MsgSubjectUpdated)
}

func (ctl *SubjectsController) deleteSubject(c *fiber.Ctx) *helper.Banner {
	id, err := subjectDTO.ParseDeleteSubject(c)
	if err != nil {
		return helper.ErrorBanner(helper.MessageOf(err, subjectDTO.MsgSubjectSaveFailed))
	}

	if err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		var mm subjectModel.SubjectModel
		if err := tx.First(&mm, "subject_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, subjectDTO.MsgSubjectNotFound)
			}
			return err
		}

		// guard referensial: mapel yang masih terhubung ke kelas tidak boleh dihapus
		var links int64
		if err := tx.Model(&classModel.ClassSubjectModel{}).
			Where("class_subject_subject_id = ?", id).
			Count(&links).Error; err != nil {
			return err
		}
		if links > 0 {
			return fiber.NewError(fiber.StatusBadRequest, subjectDTO.MsgSubjectHasRelations)
		}

		if err := tx.Delete(&subjectModel.SubjectModel{}, "subject_id = ?", id).Error; err != nil {
			if helper.IsForeignKeyViolation(err) {
				return fiber.NewError(fiber.StatusBadRequest, subjectDTO.MsgSubjectHasRelations)
			}
			return err
		}
		return nil
	}); err != nil {
		logSubjectErr(c, "delete", err)
		return helper.ErrorBanner(helper.MessageOf(err, subjectDTO.MsgSubjectSaveFailed))
	}

	return helper.SuccessBanner(subjectDTO.MsgSubjectDeleted)
}

/* =========================================================
   QUERIES
   ========================================================= */

func (ctl *SubjectsController) listSubjectRows() ([]subjectDTO.SubjectRow, error) {
	rows := []subjectDTO.SubjectRow{}
	err := ctl.DB.Model(&subjectModel.SubjectModel{}).
		Select(subjectListSelect).
		Order("subjects.subject_name ASC").
		Scan(&rows).Error
	return rows, err
}

func (ctl *SubjectsController) getSubjectRow(id uint) (*subjectDTO.SubjectRow, error) {
	var row subjectDTO.SubjectRow
	err := ctl.DB.Model(&subjectModel.SubjectModel{}).
		Select(subjectListSelect).
		Where("subjects.subject_id = ?", id).
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func logSubjectErr(c *fiber.Ctx, op string, err error) {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return
	}
	log.Printf("[SUBJECTS] %s gagal: user=%v err=%v", op, c.Locals(authMw.LocUserID), err)
}
