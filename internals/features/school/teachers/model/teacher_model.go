package model

import "time"

// TeacherModel merepresentasikan tabel `teachers`.
// Data guru bersifat read-only di admin panel ini: hanya dipakai untuk
// dropdown wali kelas dan hitungan turunan.
type TeacherModel struct {
	TeacherID       uint      `json:"teacher_id" gorm:"column:teacher_id;primaryKey;autoIncrement"`
	TeacherUsername string    `json:"teacher_username" gorm:"column:teacher_username;type:varchar(80);not null;uniqueIndex"`
	TeacherCreatedAt time.Time `json:"teacher_created_at" gorm:"column:teacher_created_at;not null;autoCreateTime"`
}

func (TeacherModel) TableName() string { return "teachers" }
