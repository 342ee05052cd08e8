package model

import "time"

// Activity represents a scheduled extracurricular program students can enroll in
type Activity struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Title          string    `gorm:"column:titulo;type:varchar(255);not null" json:"titulo"`
	Description    string    `gorm:"column:descripcion;type:text;not null" json:"descripcion"`
	Schedule       string    `gorm:"column:horario;type:varchar(255);not null" json:"horario"`
	EducationStage string    `gorm:"column:etapa_educativa;type:varchar(255);not null" json:"etapa_educativa"`
	Fee            int       `gorm:"column:cuota;not null" json:"cuota"`
	Image          *string   `gorm:"column:image;type:varchar(255)" json:"image"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TableName specifies the table name for Activity
func (Activity) TableName() string {
	return "actividades"
}
