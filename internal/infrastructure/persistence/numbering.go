package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NumberSequence is one named document-number counter
type NumberSequence struct {
	Name      string `gorm:"primaryKey;type:varchar(20)"`
	NextValue int64  `gorm:"not null;default:1"`
}

// TableName returns the table name for GORM
func (NumberSequence) TableName() string {
	return "number_sequences"
}

// GormNumberGenerator issues gapless sequential document numbers from a
// per-sequence counter row. One instance serves all sequences (PAY, INV,
// BIL, SO, PO).
type GormNumberGenerator struct {
	db *gorm.DB
}

// NewGormNumberGenerator creates a new GormNumberGenerator
func NewGormNumberGenerator(db *gorm.DB) *GormNumberGenerator {
	return &GormNumberGenerator{db: db}
}

// NextNumber claims and formats the next number for the sequence
func (g *GormNumberGenerator) NextNumber(ctx context.Context, sequence string) (string, error) {
	var claimed int64
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Ensure the counter row exists
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&NumberSequence{Name: sequence, NextValue: 1}).Error; err != nil {
			return err
		}

		// The UPDATE takes a row lock, so the read after it is consistent
		// under concurrent claims
		result := tx.Model(&NumberSequence{}).
			Where("name = ?", sequence).
			UpdateColumn("next_value", gorm.Expr("next_value + 1"))
		if result.Error != nil {
			return result.Error
		}

		var row NumberSequence
		if err := tx.First(&row, "name = ?", sequence).Error; err != nil {
			return err
		}
		claimed = row.NextValue - 1
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to claim next number for sequence %s: %w", sequence, err)
	}

	return fmt.Sprintf("%s%06d", sequence, claimed), nil
}
