package services

import (
	"context"
	"errors"

	"github.com/sahilchouksey/actividades-api/database"
	"github.com/sahilchouksey/actividades-api/model"
	"github.com/sahilchouksey/actividades-api/repository"
	"github.com/sahilchouksey/actividades-api/utils/validation"
	"gorm.io/gorm"
)

const guardianEmailField = "email_responsable"

// StudentService enforces guardian email uniqueness around student writes
type StudentService struct {
	db *gorm.DB
}

func NewStudentService(db *gorm.DB) *StudentService {
	return &StudentService{db: db}
}

// Create inserts the student unless the guardian email is already in use
func (s *StudentService) Create(ctx context.Context, student *model.Student) error {
	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		if err := ensureEmailFree(tx, student.GuardianEmail, 0); err != nil {
			return err
		}
		return repository.NewStudentStore(tx).Create(ctx, student)
	})
	return takenOnDuplicate(err)
}

// Update applies fields to the student. A guardian email change is checked
// against every other student.
func (s *StudentService) Update(ctx context.Context, id uint, fields map[string]interface{}) (*model.Student, error) {
	var updated *model.Student

	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		store := repository.NewStudentStore(tx)
		if _, err := store.Get(ctx, id); err != nil {
			return err
		}

		if email, ok := fields[guardianEmailField].(string); ok {
			if err := ensureEmailFree(tx, email, id); err != nil {
				return err
			}
		}

		var err error
		updated, err = store.Update(ctx, id, fields)
		return err
	})
	if err != nil {
		return nil, takenOnDuplicate(err)
	}
	return updated, nil
}

func ensureEmailFree(tx *gorm.DB, email string, exceptID uint) error {
	q := tx.Model(&model.Student{}).Where("email_responsable = ?", email)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return validation.Taken(guardianEmailField)
	}
	return nil
}

// takenOnDuplicate reports a unique index hit from a concurrent writer
// the same way as the pre-check does.
func takenOnDuplicate(err error) error {
	if err != nil && errors.Is(err, repository.ErrDuplicate) {
		return validation.Taken(guardianEmailField)
	}
	return err
}
