package model

import "time"

// Student is an enrollee together with the contact details of their guardian
type Student struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Name            string    `gorm:"column:nombre;type:varchar(255);not null" json:"nombre"`
	Surname         string    `gorm:"column:apellidos;type:varchar(255);not null" json:"apellidos"`
	GuardianName    string    `gorm:"column:nombre_responsable;type:varchar(255);not null" json:"nombre_responsable"`
	GuardianSurname string    `gorm:"column:apellido_responsable;type:varchar(255);not null" json:"apellido_responsable"`
	GuardianEmail   string    `gorm:"column:email_responsable;type:varchar(255);not null;uniqueIndex" json:"email_responsable"`
	GuardianPhone   string    `gorm:"column:telefono_responsable;type:varchar(15);not null" json:"telefono_responsable"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// TableName specifies the table name for Student
func (Student) TableName() string {
	return "alumnos"
}
