package model

import "time"

// Enrollment request states
const (
	EnrollmentPending  = "pendiente"
	EnrollmentAccepted = "aceptada"
	EnrollmentRejected = "rechazada"
)

// EnrollmentRequest records a student's request to join an activity.
// It carries its own identity but there is at most one row per (activity, student) pair.
type EnrollmentRequest struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Status      string    `gorm:"column:estado;type:varchar(50);not null" json:"estado"`
	RequestedAt time.Time `gorm:"column:fecha;not null" json:"fecha"`
	ActivityID  uint      `gorm:"column:actividad_id;not null;uniqueIndex:idx_solicitud_actividad_alumno" json:"actividad_id"`
	StudentID   uint      `gorm:"column:alumno_id;not null;uniqueIndex:idx_solicitud_actividad_alumno;index" json:"alumno_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relationships
	Activity *Activity `gorm:"foreignKey:ActivityID;constraint:OnDelete:CASCADE" json:"actividad,omitempty"`
	Student  *Student  `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"alumno,omitempty"`
}

// TableName specifies the table name for EnrollmentRequest
func (EnrollmentRequest) TableName() string {
	return "solicitud_actividades"
}
