package repository

import (
	"context"
	"fmt"

	"github.com/sjperalta/obra-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SequenceRepository allocates values from named counters
type SequenceRepository interface {
	// Next returns the next value of the named sequence, creating it on first use.
	Next(ctx context.Context, name, prefix string) (int64, error)
}

type sequenceRepository struct {
	db *gorm.DB
}

// NewSequenceRepository creates a new sequence repository
func NewSequenceRepository(db *gorm.DB) SequenceRepository {
	return &sequenceRepository{db: db}
}

func (r *sequenceRepository) Next(ctx context.Context, name, prefix string) (int64, error) {
	var value int64

	// Own short transaction so the row lock is released before any caller transaction opens.
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := seedSequence(tx, name, prefix).Error; err != nil {
			return err
		}

		var seq models.CodeSequence
		result := advanceSequence(tx, name, &seq)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("sequence %q not found", name)
		}
		value = seq.NextValue
		return nil
	})
	if err != nil {
		return 0, err
	}
	return value, nil
}

func seedSequence(tx *gorm.DB, name, prefix string) *gorm.DB {
	return tx.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.CodeSequence{Name: name, Prefix: prefix})
}

// advanceSequence increments the counter row in place and scans the new value into seq.
func advanceSequence(tx *gorm.DB, name string, seq *models.CodeSequence) *gorm.DB {
	return tx.Model(seq).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "next_value"}}}).
		Where("name = ?", name).
		UpdateColumn("next_value", gorm.Expr("next_value + 1"))
}
