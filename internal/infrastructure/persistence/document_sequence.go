package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/stockmaster/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// DocumentSequence is one monthly counter per document prefix
type DocumentSequence struct {
	Prefix string `gorm:"type:varchar(10);primaryKey"`
	Period string `gorm:"type:varchar(6);primaryKey"`
	Value  int64  `gorm:"not null"`
}

// TableName returns the table name for GORM
func (DocumentSequence) TableName() string {
	return "document_sequences"
}

// GormDocumentNumberGenerator issues document numbers backed by the
// document_sequences table. The counter advance runs as a single
// INSERT ... ON CONFLICT ... RETURNING statement so concurrent callers never
// receive the same number.
type GormDocumentNumberGenerator struct {
	db *gorm.DB
}

// NewGormDocumentNumberGenerator creates a new GormDocumentNumberGenerator
func NewGormDocumentNumberGenerator(db *gorm.DB) *GormDocumentNumberGenerator {
	return &GormDocumentNumberGenerator{db: db}
}

// Next returns the next number for the prefix in the current month, formatted
// as {prefix}{YYYYMM}{NNNN}
func (g *GormDocumentNumberGenerator) Next(ctx context.Context, prefix string) (string, error) {
	period := time.Now().UTC().Format("200601")

	var value int64
	err := g.db.WithContext(ctx).Raw(
		`INSERT INTO document_sequences (prefix, period, value)
		 VALUES (?, ?, 1)
		 ON CONFLICT (prefix, period)
		 DO UPDATE SET value = document_sequences.value + 1
		 RETURNING value`,
		prefix, period,
	).Scan(&value).Error
	if err != nil {
		return "", fmt.Errorf("advance document sequence %s%s: %w", prefix, period, err)
	}

	return fmt.Sprintf("%s%s%04d", prefix, period, value), nil
}

// Ensure GormDocumentNumberGenerator implements DocumentNumberGenerator
var _ shared.DocumentNumberGenerator = (*GormDocumentNumberGenerator)(nil)
