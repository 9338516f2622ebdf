package controller

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"

	subjectDTO "sekolahku_backend/internals/features/school/subjects/dto"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportExcel mengunduh daftar mapel sebagai .xlsx.
// GET /admin/subjects/export
func (ctl *SubjectsController) ExportExcel(c *fiber.Ctx) error {
	rows, err := ctl.listSubjectRows()
	if err != nil {
		log.Printf("[SUBJECTS] export gagal memuat daftar: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, subjectDTO.MsgSubjectLoadFailed)
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("[SUBJECTS] export: gagal menutup workbook: %v", err)
		}
	}()

	const sheet = "Mapel"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headers := []string{"ID", "Nama Mapel", "Jumlah Kelas", "Jumlah Guru"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	for i, row := range rows {
		values := []interface{}{
			row.SubjectID, row.SubjectName, row.ClassCount, row.TeacherCount,
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		log.Printf("[SUBJECTS] export: gagal menulis workbook: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat berkas Excel")
	}

	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", "daftar-mapel.xlsx"))
	return c.Send(buf.Bytes())
}
