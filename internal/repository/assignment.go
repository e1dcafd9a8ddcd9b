package repository

import (
	"context"

	"project-team-tracker/internal/models"

	"gorm.io/gorm"
)

// Assignments is the gorm-backed AssignmentRepository.
type Assignments struct {
	db *gorm.DB
}

// NewAssignments returns a gorm-backed assignment repository.
func NewAssignments(db *gorm.DB) *Assignments {
	return &Assignments{db: db}
}

// Add inserts the pair. Inserting an existing pair fails on the primary key,
// so callers probe with Exists first.
func (r *Assignments) Add(ctx context.Context, taskID, memberID string) error {
	return r.db.WithContext(ctx).Create(&models.Assignment{TaskID: taskID, MemberID: memberID}).Error
}

func (r *Assignments) Remove(ctx context.Context, taskID, memberID string) error {
	return r.db.WithContext(ctx).
		Where("task_id = ? AND member_id = ?", taskID, memberID).
		Delete(&models.Assignment{}).Error
}

func (r *Assignments) Exists(ctx context.Context, taskID, memberID string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Assignment{}).
		Where("task_id = ? AND member_id = ?", taskID, memberID).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *Assignments) TaskIDsOf(ctx context.Context, memberID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&models.Assignment{}).
		Where("member_id = ?", memberID).
		Order("task_id asc").
		Pluck("task_id", &ids).Error
	return ids, err
}

func (r *Assignments) MemberIDsOf(ctx context.Context, taskID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&models.Assignment{}).
		Where("task_id = ?", taskID).
		Order("member_id asc").
		Pluck("member_id", &ids).Error
	return ids, err
}

func (r *Assignments) DeleteByTask(ctx context.Context, taskID string) (int64, error) {
	result := r.db.WithContext(ctx).Where("task_id = ?", taskID).Delete(&models.Assignment{})
	return result.RowsAffected, result.Error
}

func (r *Assignments) DeleteByMember(ctx context.Context, memberID string) (int64, error) {
	result := r.db.WithContext(ctx).Where("member_id = ?", memberID).Delete(&models.Assignment{})
	return result.RowsAffected, result.Error
}

func (r *Assignments) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Assignment{}).Count(&n).Error
	return n, err
}

var _ AssignmentRepository = (*Assignments)(nil)
