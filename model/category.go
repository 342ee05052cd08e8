package model

import "time"

// Category is a classification tag attachable to many activities
type Category struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"column:nombre;type:varchar(255);not null" json:"nombre"`
	Description string    `gorm:"column:descripcion;type:text;not null" json:"descripcion"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for Category
func (Category) TableName() string {
	return "categorias"
}

// ActivityCategory is the pure join row between an activity and a category
type ActivityCategory struct {
	ActivityID uint `gorm:"primaryKey;column:actividad_id;autoIncrement:false" json:"actividad_id"`
	CategoryID uint `gorm:"primaryKey;column:categoria_id;autoIncrement:false" json:"categoria_id"`

	// Relationships
	Activity Activity `gorm:"foreignKey:ActivityID;constraint:OnDelete:CASCADE" json:"-"`
	Category Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"-"`
}

// TableName specifies the table name for ActivityCategory
func (ActivityCategory) TableName() string {
	return "actividad_pertence"
}
