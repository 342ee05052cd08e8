package database

import (
	"context"
	"errors"
	"testing"

	"github.com/sahilchouksey/actividades-api/model"
	"gorm.io/gorm"
)

func openTestStore(t *testing.T) *GORMStore {
	t.Helper()
	store, err := StartSQLite(":memory:", "test")
	if err != nil {
		t.Fatalf("StartSQLite: %v", err)
	}
	if err := store.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestWithTransactionCommits(t *testing.T) {
	store := openTestStore(t)
	db := store.GetDB()

	err := WithTransaction(context.Background(), db, func(tx *gorm.DB) error {
		return tx.Create(&model.Product{Name: "Cuaderno", Details: "A4 cuadriculado"}).Error
	})
	if err != nil {
		t.Fatalf("WithTransaction: %v", err)
	}

	var count int64
	db.Model(&model.Product{}).Count(&count)
	if count != 1 {
		t.Fatalf("products: want=1 got=%d", count)
	}
}

func TestWithTransactionRollsBack(t *testing.T) {
	store := openTestStore(t)
	db := store.GetDB()
	boom := errors.New("boom")

	err := WithTransaction(context.Background(), db, func(tx *gorm.DB) error {
		if err := tx.Create(&model.Product{Name: "Lápiz", Details: "HB"}).Error; err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, ErrTransaction) {
		t.Fatalf("expected ErrTransaction, got=%v", err)
	}
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped cause, got=%v", err)
	}

	var count int64
	db.Model(&model.Product{}).Count(&count)
	if count != 0 {
		t.Fatalf("products after rollback: want=0 got=%d", count)
	}
}

func TestSeedAllIsIdempotent(t *testing.T) {
	store := openTestStore(t)
	db := store.GetDB()

	for i := 0; i < 2; i++ {
		if err := RunSeeds(db); err != nil {
			t.Fatalf("RunSeeds #%d: %v", i+1, err)
		}
	}

	var links int64
	db.Model(&model.ActivityCategory{}).Count(&links)
	if links != 4 {
		t.Fatalf("links: want=4 got=%d", links)
	}

	var students int64
	db.Model(&model.Student{}).Count(&students)
	if students != 2 {
		t.Fatalf("students: want=2 got=%d", students)
	}
}
