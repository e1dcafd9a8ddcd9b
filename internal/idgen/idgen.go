// Package idgen issues the short, sequential identifiers used for tasks and
// members: a one-letter kind prefix followed by a counter that is zero-padded
// to two digits (t01, t09, t10, t11, ..., m01).
package idgen

import (
	"context"
	"fmt"
	"sync"

	"project-team-tracker/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Kind selects the counter and the prefix of an identifier.
type Kind string

const (
	KindTask   Kind = "t"
	KindMember Kind = "m"
)

// Generator hands out identifiers that are never reused.
type Generator interface {
	Next(ctx context.Context, kind Kind) (string, error)
}

// Format renders the n-th identifier of a kind.
func Format(kind Kind, n int64) string {
	return fmt.Sprintf("%s%02d", kind, n)
}

// Memory keeps one counter per kind in process memory. Numbering restarts with
// the process.
type Memory struct {
	mu       sync.Mutex
	counters map[Kind]int64
}

func NewMemory() *Memory {
	return &Memory{counters: make(map[Kind]int64)}
}

func (g *Memory) Next(_ context.Context, kind Kind) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.counters[kind]++
	return Format(kind, g.counters[kind]), nil
}

// Store keeps the counters in the sequences table so numbering survives
// restarts.
type Store struct {
	mu sync.Mutex
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (g *Store) Next(ctx context.Context, kind Kind) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	var next int64
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seq := models.Sequence{Kind: string(kind)}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seq).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Sequence{}).
			Where("kind = ?", kind).
			Update("value", gorm.Expr("value + 1")).Error; err != nil {
			return err
		}
		if err := tx.Where("kind = ?", kind).First(&seq).Error; err != nil {
			return err
		}
		next = seq.Value
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("next %s id: %w", kind, err)
	}
	return Format(kind, next), nil
}

var (
	_ Generator = (*Memory)(nil)
	_ Generator = (*Store)(nil)
)
