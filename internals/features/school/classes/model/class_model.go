package model

import (
	"time"

	"gorm.io/gorm"
)

// ClassModel merepresentasikan tabel `classes` (rombongan belajar / kelas wali).
type ClassModel struct {
	ClassID uint `json:"class_id" gorm:"column:class_id;primaryKey;autoIncrement"`

	// Identitas
	ClassName string `json:"class_name" gorm:"column:class_name;type:varchar(120);not null"`
	// Kode kelas (mis. tahun ajaran "2024/2025") — unik per sekolah untuk baris hidup
	ClassCode string `json:"class_code" gorm:"column:class_code;type:varchar(40);not null"`

	// Wali kelas (FK ke teachers)
	ClassTeacherID uint `json:"class_teacher_id" gorm:"column:class_teacher_id;not null;index"`

	ClassCreatedAt time.Time      `json:"class_created_at" gorm:"column:class_created_at;not null;autoCreateTime"`
	ClassUpdatedAt time.Time      `json:"class_updated_at" gorm:"column:class_updated_at;not null;autoUpdateTime"`
	ClassDeletedAt gorm.DeletedAt `json:"class_deleted_at,omitempty" gorm:"column:class_deleted_at;index"`
}

func (ClassModel) TableName() string { return "classes" }
