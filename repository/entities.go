package repository

import (
	"github.com/sahilchouksey/actividades-api/model"
	"gorm.io/gorm"
)

// NewActivityStore deletes category links and enrollment requests with the activity
func NewActivityStore(db *gorm.DB) *GormStore[model.Activity] {
	return NewGormStore[model.Activity](db, func(tx *gorm.DB, id uint) error {
		if err := tx.Where("actividad_id = ?", id).Delete(&model.ActivityCategory{}).Error; err != nil {
			return err
		}
		return tx.Where("actividad_id = ?", id).Delete(&model.EnrollmentRequest{}).Error
	})
}

// NewCategoryStore deletes activity links with the category
func NewCategoryStore(db *gorm.DB) *GormStore[model.Category] {
	return NewGormStore[model.Category](db, func(tx *gorm.DB, id uint) error {
		return tx.Where("categoria_id = ?", id).Delete(&model.ActivityCategory{}).Error
	})
}

// NewStudentStore deletes enrollment requests with the student
func NewStudentStore(db *gorm.DB) *GormStore[model.Student] {
	return NewGormStore[model.Student](db, func(tx *gorm.DB, id uint) error {
		return tx.Where("alumno_id = ?", id).Delete(&model.EnrollmentRequest{}).Error
	})
}

func NewEnrollmentStore(db *gorm.DB) *GormStore[model.EnrollmentRequest] {
	return NewGormStore[model.EnrollmentRequest](db, nil)
}

func NewProductStore(db *gorm.DB) *GormStore[model.Product] {
	return NewGormStore[model.Product](db, nil)
}

func NewBookStore(db *gorm.DB) *GormStore[model.Book] {
	return NewGormStore[model.Book](db, nil)
}
