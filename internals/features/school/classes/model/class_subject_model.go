package model

import "time"

// ClassSubjectModel merepresentasikan tabel pivot `class_subjects`
// (mapel yang diajarkan di sebuah kelas oleh seorang guru).
// Admin panel ini hanya membacanya: hitungan turunan + guard hapus.
type ClassSubjectModel struct {
	ClassSubjectID        uint      `json:"class_subject_id" gorm:"column:class_subject_id;primaryKey;autoIncrement"`
	ClassSubjectClassID   uint      `json:"class_subject_class_id" gorm:"column:class_subject_class_id;not null;index"`
	ClassSubjectSubjectID uint      `json:"class_subject_subject_id" gorm:"column:class_subject_subject_id;not null;index"`
	ClassSubjectTeacherID uint      `json:"class_subject_teacher_id" gorm:"column:class_subject_teacher_id;not null;index"`
	ClassSubjectCreatedAt time.Time `json:"class_subject_created_at" gorm:"column:class_subject_created_at;not null;autoCreateTime"`
}

func (ClassSubjectModel) TableName() string { return "class_subjects" }
