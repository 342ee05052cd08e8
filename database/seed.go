package database

import (
	"fmt"
	"log"

	"github.com/sahilchouksey/actividades-api/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Seeder handles database seeding operations
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// SeedAll runs all seed functions
func (s *Seeder) SeedAll() error {
	log.Println("🌱 Starting database seeding...")

	// Run seeds in order (respecting foreign key constraints)
	if err := s.SeedCategories(); err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}

	if err := s.SeedActivities(); err != nil {
		return fmt.Errorf("failed to seed activities: %w", err)
	}

	if err := s.SeedActivityCategories(); err != nil {
		return fmt.Errorf("failed to seed activity categories: %w", err)
	}

	if err := s.SeedStudents(); err != nil {
		return fmt.Errorf("failed to seed students: %w", err)
	}

	log.Println("✅ Database seeding completed successfully!")
	return nil
}

// SeedCategories creates the default categories
func (s *Seeder) SeedCategories() error {
	var count int64
	if err := s.db.Model(&model.Category{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("⏭️  Categories already exist, skipping...")
		return nil
	}

	categories := []model.Category{
		{Name: "Deportes", Description: "Actividades deportivas y de psicomotricidad"},
		{Name: "Música", Description: "Iniciación musical, coro e instrumentos"},
		{Name: "Idiomas", Description: "Refuerzo y conversación en lenguas extranjeras"},
		{Name: "Tecnología", Description: "Robótica, programación y pensamiento computacional"},
	}

	if err := s.db.Create(&categories).Error; err != nil {
		return err
	}

	log.Printf("✅ Created %d categories\n", len(categories))
	return nil
}

// SeedActivities creates sample activities
func (s *Seeder) SeedActivities() error {
	var count int64
	if err := s.db.Model(&model.Activity{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("⏭️  Activities already exist, skipping...")
		return nil
	}

	activities := []model.Activity{
		{
			Title:          "Fútbol sala",
			Description:    "Entrenamiento y liga interna de fútbol sala",
			Schedule:       "Lunes y miércoles 16:00-17:30",
			EducationStage: "Primaria",
			Fee:            25,
		},
		{
			Title:          "Coro escolar",
			Description:    "Técnica vocal y repertorio para los festivales del centro",
			Schedule:       "Martes 16:00-17:00",
			EducationStage: "Primaria",
			Fee:            15,
		},
		{
			Title:          "Inglés conversacional",
			Description:    "Grupos reducidos de conversación con profesorado nativo",
			Schedule:       "Jueves 17:00-18:00",
			EducationStage: "ESO",
			Fee:            30,
		},
		{
			Title:          "Robótica",
			Description:    "Montaje y programación de robots educativos",
			Schedule:       "Viernes 16:00-17:30",
			EducationStage: "ESO",
			Fee:            35,
		},
	}

	if err := s.db.Create(&activities).Error; err != nil {
		return err
	}

	log.Printf("✅ Created %d activities\n", len(activities))
	return nil
}

// SeedActivityCategories links the sample activities to their categories
func (s *Seeder) SeedActivityCategories() error {
	pairs := map[string]string{
		"Fútbol sala":           "Deportes",
		"Coro escolar":          "Música",
		"Inglés conversacional": "Idiomas",
		"Robótica":              "Tecnología",
	}

	created := 0
	for title, name := range pairs {
		var activity model.Activity
		if err := s.db.Where("titulo = ?", title).First(&activity).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				continue
			}
			return err
		}

		var category model.Category
		if err := s.db.Where("nombre = ?", name).First(&category).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				continue
			}
			return err
		}

		link := model.ActivityCategory{ActivityID: activity.ID, CategoryID: category.ID}
		result := s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&link)
		if result.Error != nil {
			return result.Error
		}
		created += int(result.RowsAffected)
	}

	log.Printf("✅ Linked %d activity categories\n", created)
	return nil
}

// SeedStudents creates sample students
func (s *Seeder) SeedStudents() error {
	var count int64
	if err := s.db.Model(&model.Student{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("⏭️  Students already exist, skipping...")
		return nil
	}

	students := []model.Student{
		{
			Name:            "Lucía",
			Surname:         "García Pérez",
			GuardianName:    "Marta",
			GuardianSurname: "Pérez López",
			GuardianEmail:   "marta.perez@example.com",
			GuardianPhone:   "600111222",
		},
		{
			Name:            "Hugo",
			Surname:         "Martín Sanz",
			GuardianName:    "Javier",
			GuardianSurname: "Martín Ruiz",
			GuardianEmail:   "javier.martin@example.com",
			GuardianPhone:   "600333444",
		},
	}

	if err := s.db.Create(&students).Error; err != nil {
		return err
	}

	log.Printf("✅ Created %d students\n", len(students))
	return nil
}

// RunSeeds is a convenience function to run all seeds
func RunSeeds(db *gorm.DB) error {
	seeder := NewSeeder(db)
	return seeder.SeedAll()
}
