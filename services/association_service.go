package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sahilchouksey/actividades-api/database"
	"github.com/sahilchouksey/actividades-api/model"
	"github.com/sahilchouksey/actividades-api/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MissingError reports which side of an association does not exist.
// It matches repository.ErrNotFound with errors.Is.
type MissingError struct {
	Resource string
	ID       uint
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e *MissingError) Unwrap() error {
	return repository.ErrNotFound
}

const (
	resourceActivity = "Actividad"
	resourceCategory = "Categoria"
	resourceStudent  = "Alumno"
)

// AssociationService lists, attaches and detaches the many-to-many links
// between activities and categories (actividad_pertence) and between
// activities and students (solicitud_actividades).
type AssociationService struct {
	db *gorm.DB
}

// NewAssociationService creates a new association service
func NewAssociationService(db *gorm.DB) *AssociationService {
	return &AssociationService{db: db}
}

// EnrollOptions overrides the defaults of a new enrollment request
type EnrollOptions struct {
	Status      *string
	RequestedAt *time.Time
}

func ensureExists(tx *gorm.DB, m interface{}, resource string, id uint) error {
	var count int64
	if err := tx.Model(m).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return &MissingError{Resource: resource, ID: id}
	}
	return nil
}

// CategoriesOfActivity returns the categories linked to the activity
func (s *AssociationService) CategoriesOfActivity(ctx context.Context, activityID uint) ([]model.Category, error) {
	db := s.db.WithContext(ctx)
	if err := ensureExists(db, &model.Activity{}, resourceActivity, activityID); err != nil {
		return nil, err
	}

	categories := []model.Category{}
	err := db.Joins("JOIN actividad_pertence ap ON ap.categoria_id = categorias.id").
		Where("ap.actividad_id = ?", activityID).
		Order("categorias.id ASC").
		Find(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("list categories of activity %d: %w", activityID, err)
	}
	return categories, nil
}

// ActivitiesOfCategory returns the activities linked to the category
func (s *AssociationService) ActivitiesOfCategory(ctx context.Context, categoryID uint) ([]model.Activity, error) {
	db := s.db.WithContext(ctx)
	if err := ensureExists(db, &model.Category{}, resourceCategory, categoryID); err != nil {
		return nil, err
	}

	activities := []model.Activity{}
	err := db.Joins("JOIN actividad_pertence ap ON ap.actividad_id = actividades.id").
		Where("ap.categoria_id = ?", categoryID).
		Order("actividades.id ASC").
		Find(&activities).Error
	if err != nil {
		return nil, fmt.Errorf("list activities of category %d: %w", categoryID, err)
	}
	return activities, nil
}

// AttachCategory links an activity and a category. Linking twice is a no-op.
func (s *AssociationService) AttachCategory(ctx context.Context, activityID, categoryID uint) error {
	return database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		if err := ensureExists(tx, &model.Activity{}, resourceActivity, activityID); err != nil {
			return err
		}
		if err := ensureExists(tx, &model.Category{}, resourceCategory, categoryID); err != nil {
			return err
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&model.ActivityCategory{ActivityID: activityID, CategoryID: categoryID}).Error
	})
}

// DetachActivityCategory unlinks a category from the activity that owns the route
func (s *AssociationService) DetachActivityCategory(ctx context.Context, activityID, categoryID uint) error {
	return s.detach(ctx, &model.Activity{}, resourceActivity, activityID, &model.ActivityCategory{},
		"actividad_id = ? AND categoria_id = ?", activityID, categoryID)
}

// DetachCategoryActivity unlinks an activity from the category that owns the route
func (s *AssociationService) DetachCategoryActivity(ctx context.Context, categoryID, activityID uint) error {
	return s.detach(ctx, &model.Category{}, resourceCategory, categoryID, &model.ActivityCategory{},
		"actividad_id = ? AND categoria_id = ?", activityID, categoryID)
}

// StudentsOfActivity returns the students with an enrollment request for the activity
func (s *AssociationService) StudentsOfActivity(ctx context.Context, activityID uint) ([]model.Student, error) {
	db := s.db.WithContext(ctx)
	if err := ensureExists(db, &model.Activity{}, resourceActivity, activityID); err != nil {
		return nil, err
	}

	students := []model.Student{}
	err := db.Joins("JOIN solicitud_actividades sa ON sa.alumno_id = alumnos.id").
		Where("sa.actividad_id = ?", activityID).
		Order("alumnos.id ASC").
		Find(&students).Error
	if err != nil {
		return nil, fmt.Errorf("list students of activity %d: %w", activityID, err)
	}
	return students, nil
}

// ActivitiesOfStudent returns the activities the student has requested
func (s *AssociationService) ActivitiesOfStudent(ctx context.Context, studentID uint) ([]model.Activity, error) {
	db := s.db.WithContext(ctx)
	if err := ensureExists(db, &model.Student{}, resourceStudent, studentID); err != nil {
		return nil, err
	}

	activities := []model.Activity{}
	err := db.Joins("JOIN solicitud_actividades sa ON sa.actividad_id = actividades.id").
		Where("sa.alumno_id = ?", studentID).
		Order("actividades.id ASC").
		Find(&activities).Error
	if err != nil {
		return nil, fmt.Errorf("list activities of student %d: %w", studentID, err)
	}
	return activities, nil
}

// Enroll creates a pending enrollment request for the pair, or returns the
// existing one untouched.
func (s *AssociationService) Enroll(ctx context.Context, activityID, studentID uint, opts EnrollOptions) (*model.EnrollmentRequest, error) {
	var enrollment model.EnrollmentRequest

	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		if err := ensureExists(tx, &model.Activity{}, resourceActivity, activityID); err != nil {
			return err
		}
		if err := ensureExists(tx, &model.Student{}, resourceStudent, studentID); err != nil {
			return err
		}

		req := model.EnrollmentRequest{
			Status:      model.EnrollmentPending,
			RequestedAt: time.Now(),
			ActivityID:  activityID,
			StudentID:   studentID,
		}
		if opts.Status != nil {
			req.Status = *opts.Status
		}
		if opts.RequestedAt != nil {
			req.RequestedAt = *opts.RequestedAt
		}

		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&req).Error; err != nil {
			return err
		}

		return tx.Where("actividad_id = ? AND alumno_id = ?", activityID, studentID).First(&enrollment).Error
	})
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// DetachActivityStudent removes the student's request from the activity that owns the route
func (s *AssociationService) DetachActivityStudent(ctx context.Context, activityID, studentID uint) error {
	return s.detach(ctx, &model.Activity{}, resourceActivity, activityID, &model.EnrollmentRequest{},
		"actividad_id = ? AND alumno_id = ?", activityID, studentID)
}

// DetachStudentActivity removes the activity request from the student that owns the route
func (s *AssociationService) DetachStudentActivity(ctx context.Context, studentID, activityID uint) error {
	return s.detach(ctx, &model.Student{}, resourceStudent, studentID, &model.EnrollmentRequest{},
		"actividad_id = ? AND alumno_id = ?", activityID, studentID)
}

// detach checks the owner and deletes the link. A missing link is not an error.
func (s *AssociationService) detach(ctx context.Context, owner interface{}, resource string, ownerID uint,
	link interface{}, where string, args ...interface{}) error {
	return database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		if err := ensureExists(tx, owner, resource, ownerID); err != nil {
			return err
		}
		return tx.Where(where, args...).Delete(link).Error
	})
}
