package services

import (
	"context"
	"errors"

	"project-team-tracker/internal/logger"
	"project-team-tracker/internal/models"
	"project-team-tracker/internal/repository"

	"go.uber.org/zap"
)

// Linker maintains the task/member join relation.
//
// Link is best effort: lookup and insert failures are logged and swallowed.
// The exists-then-insert probe is not atomic; callers are expected to issue
// one request at a time.
type Linker struct {
	stores Stores
	logger *zap.Logger
}

func NewLinker(stores Stores, log *zap.Logger) *Linker {
	if log == nil {
		log = zap.NewNop()
	}
	return &Linker{stores: stores, logger: log}
}

// Link inserts the pair unless it already exists. It reports whether the pair
// is present once the call returns.
func (l *Linker) Link(ctx context.Context, taskID, memberID string) bool {
	fields := []zap.Field{zap.String("task_id", taskID), zap.String("member_id", memberID)}
	exists, err := l.stores.Assignments.Exists(ctx, taskID, memberID)
	if err != nil {
		l.logger.Error("assignment lookup failed", append(fields, logger.Op("link.exists"), zap.Error(err))...)
		return false
	}
	if exists {
		return true
	}
	if err := l.stores.Assignments.Add(ctx, taskID, memberID); err != nil {
		l.logger.Error("assignment insert failed", append(fields, logger.Op("link.add"), zap.Error(err))...)
		return false
	}
	return true
}

// Unlink removes the pair; an absent pair is a no-op.
func (l *Linker) Unlink(ctx context.Context, taskID, memberID string) error {
	if err := l.stores.Assignments.Remove(ctx, taskID, memberID); err != nil {
		return storeFailure(l.logger, "unlink", err, zap.String("task_id", taskID), zap.String("member_id", memberID))
	}
	return nil
}

// Exists probes for the pair. A failed probe reads as false.
func (l *Linker) Exists(ctx context.Context, taskID, memberID string) bool {
	ok, err := l.stores.Assignments.Exists(ctx, taskID, memberID)
	if err != nil {
		l.logger.Error("assignment lookup failed", logger.Op("exists"), zap.Error(err))
		return false
	}
	return ok
}

// TasksOfMember resolves every task linked to the member. Links to tasks that
// no longer exist are skipped.
func (l *Linker) TasksOfMember(ctx context.Context, memberID string) ([]models.Task, error) {
	ids, err := l.stores.Assignments.TaskIDsOf(ctx, memberID)
	if err != nil {
		return nil, storeFailure(l.logger, "tasks_of_member", err, zap.String("member_id", memberID))
	}
	return resolve(ctx, l.logger, l.stores.Tasks, "tasks_of_member.find", ids), nil
}

// MembersOfTask resolves every member linked to the task. Links to members
// that no longer exist are skipped.
func (l *Linker) MembersOfTask(ctx context.Context, taskID string) ([]models.Member, error) {
	ids, err := l.stores.Assignments.MemberIDsOf(ctx, taskID)
	if err != nil {
		return nil, storeFailure(l.logger, "members_of_task", err, zap.String("task_id", taskID))
	}
	return resolve(ctx, l.logger, l.stores.Members, "members_of_task.find", ids), nil
}

func resolve[T any](ctx context.Context, log *zap.Logger, repo repository.Repository[T], op string, ids []string) []T {
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		entity, err := repo.FindByID(ctx, id)
		if err != nil {
			if !errors.Is(err, repository.ErrNotFound) {
				log.Error("store call failed", logger.Op(op), zap.String("id", id), zap.Error(err))
			}
			continue
		}
		out = append(out, *entity)
	}
	return out
}

// AttachMembers links the task to every id that resolves to an existing
// member and returns how many links are in place afterwards.
func (l *Linker) AttachMembers(ctx context.Context, taskID string, memberIDs []string) int {
	return l.attach(ctx, memberIDs, l.stores.Members.ExistsByID, "attach_members", func(mid string) bool {
		return l.Link(ctx, taskID, mid)
	})
}

// AttachTasks links the member to every id that resolves to an existing task.
func (l *Linker) AttachTasks(ctx context.Context, memberID string, taskIDs []string) int {
	return l.attach(ctx, taskIDs, l.stores.Tasks.ExistsByID, "attach_tasks", func(tid string) bool {
		return l.Link(ctx, tid, memberID)
	})
}

func (l *Linker) attach(ctx context.Context, ids []string, exists func(context.Context, string) (bool, error), op string, link func(string) bool) int {
	linked := 0
	for _, id := range ids {
		ok, err := exists(ctx, id)
		if err != nil {
			l.logger.Error("store call failed", logger.Op(op+".exists"), zap.String("id", id), zap.Error(err))
			continue
		}
		if !ok {
			l.logger.Warn("skipping unknown id", logger.Op(op), zap.String("id", id))
			continue
		}
		if link(id) {
			linked++
		}
	}
	return linked
}

// PurgeTask drops every assignment of a deleted task.
func (l *Linker) PurgeTask(ctx context.Context, taskID string) error {
	if _, err := l.stores.Assignments.DeleteByTask(ctx, taskID); err != nil {
		return storeFailure(l.logger, "purge_task", err, zap.String("task_id", taskID))
	}
	return nil
}

// PurgeMember drops every assignment of a deleted member.
func (l *Linker) PurgeMember(ctx context.Context, memberID string) error {
	if _, err := l.stores.Assignments.DeleteByMember(ctx, memberID); err != nil {
		return storeFailure(l.logger, "purge_member", err, zap.String("member_id", memberID))
	}
	return nil
}
