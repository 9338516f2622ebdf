package model

import "time"

// StudentModel merepresentasikan tabel `students`.
// Di halaman admin kelas, siswa hanya dibaca: untuk student_count dan
// sebagai guard saat hapus kelas.
type StudentModel struct {
	StudentID        uint      `json:"student_id" gorm:"column:student_id;primaryKey;autoIncrement"`
	StudentName      string    `json:"student_name" gorm:"column:student_name;type:varchar(120);not null"`
	StudentClassID   *uint     `json:"student_class_id,omitempty" gorm:"column:student_class_id;index"`
	StudentCreatedAt time.Time `json:"student_created_at" gorm:"column:student_created_at;not null;autoCreateTime"`
}

func (StudentModel) TableName() string { return "students" }
