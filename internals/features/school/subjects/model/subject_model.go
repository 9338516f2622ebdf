package model

import (
	"time"

	"gorm.io/gorm"
)

// SubjectModel merepresentasikan tabel `subjects` (mata pelajaran).
// Nama mapel unik (case-insensitive) untuk baris hidup.
type SubjectModel struct {
	SubjectID   uint   `json:"subject_id" gorm:"column:subject_id;primaryKey;autoIncrement"`
	SubjectName string `json:"subject_name" gorm:"column:subject_name;type:varchar(120);not null"`

	SubjectCreatedAt time.Time      `json:"subject_created_at" gorm:"column:subject_created_at;not null;autoCreateTime"`
	SubjectUpdatedAt time.Time      `json:"subject_updated_at" gorm:"column:subject_updated_at;not null;autoUpdateTime"`
	SubjectDeletedAt gorm.DeletedAt `json:"subject_deleted_at,omitempty" gorm:"column:subject_deleted_at;index"`
}

func (SubjectModel) TableName() string { return "subjects" }
