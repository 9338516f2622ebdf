package controller

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"

	classDTO "sekolahku_backend/internals/features/school/classes/dto"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportExcel mengunduh daftar kelas (termasuk hitungan turunan) sebagai .xlsx.
// GET /admin/classes/export
func (ctl *ClassesController) ExportExcel(c *fiber.Ctx) error {
	rows, err := ctl.listClassRows()
	if err != nil {
		log.Printf("[CLASSES] export gagal memuat daftar: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, classDTO.MsgClassLoadFailed)
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("[CLASSES] export: gagal menutup workbook: %v", err)
		}
	}()

	const sheet = "Kelas"
	f.SetSheetName(f.GetSheetName(0), sheet)

	headers := []string{"ID", "Nama Kelas", "Kode", "Wali Kelas", "Jumlah Siswa", "Jumlah Mapel"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	for i, row := range rows {
		values := []interface{}{
			row.ClassID, row.ClassName, row.ClassCode,
			row.TeacherUsername, row.StudentCount, row.SubjectCount,
		}
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		log.Printf("[CLASSES] export: gagal menulis workbook: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat berkas Excel")
	}

	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", "daftar-kelas.xlsx"))
	return c.Send(buf.Bytes())
}
