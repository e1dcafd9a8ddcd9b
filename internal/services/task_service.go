package services

import (
	"context"
	"errors"
	"iter"
	"time"

	"project-team-tracker/internal/convert"
	"project-team-tracker/internal/idgen"
	"project-team-tracker/internal/logger"
	"project-team-tracker/internal/models"
	"project-team-tracker/internal/repository"

	"go.uber.org/zap"
)

// TaskCreate carries the fields of a new task. A nil AssigneeIDs means no
// assignees were given; a nil DueTo leaves the task unscheduled.
type TaskCreate struct {
	Name        string
	Type        models.TaskType
	AssigneeIDs []string
	DueTo       *time.Time
}

// TaskUpdate carries a partial update. Nil fields keep their current value.
// AssigneeIDs are added to the existing assignees; none are ever removed.
type TaskUpdate struct {
	Name        *string
	Status      *models.TaskStatus
	AssigneeIDs []string
	DueTo       *time.Time
}

// CriterionKind selects what a TaskCriterion compares.
type CriterionKind string

const (
	CriterionType     CriterionKind = "1"
	CriterionStatus   CriterionKind = "2"
	CriterionAssignee CriterionKind = "3"
)

// TaskCriterion is one conjunctive filter step.
type TaskCriterion struct {
	Kind  CriterionKind
	Value string
}

// StatusCount tallies tasks by status, completed first.
type StatusCount struct {
	Done       int   `json:"done"`
	InProgress int   `json:"inProgress"`
	NotStarted int   `json:"notStarted"`
	Total      int64 `json:"total"`
}

type TaskService struct {
	stores  Stores
	linker  *Linker
	ids     idgen.Generator
	logger  *zap.Logger
	events  Publisher
	cascade bool
}

func NewTaskService(stores Stores, linker *Linker, opts Options) *TaskService {
	opts = opts.withDefaults()
	if linker == nil {
		linker = NewLinker(stores, opts.Logger)
	}
	return &TaskService{
		stores:  stores,
		linker:  linker,
		ids:     opts.IDs,
		logger:  opts.Logger.Named("tasks"),
		events:  opts.Publisher,
		cascade: opts.CascadeDeletes,
	}
}

// Create stores a new task in the NOT_STARTED status and links the given
// assignees. Assignee ids that do not resolve to a member are skipped.
func (s *TaskService) Create(ctx context.Context, in TaskCreate) (*models.Task, error) {
	if !in.Type.Valid() {
		return nil, invalidInput("task type %q", in.Type)
	}

	tid, err := s.ids.Next(ctx, idgen.KindTask)
	if err != nil {
		return nil, storeFailure(s.logger, "task.create.id", err)
	}

	at := now()
	task := &models.Task{
		ID:        tid,
		Name:      in.Name,
		Type:      in.Type,
		Status:    models.Statuses[0],
		DueTo:     dateOnly(in.DueTo),
		CreatedAt: convert.Today(at),
		UpdatedAt: at,
	}
	if err := s.stores.Tasks.Save(ctx, task); err != nil {
		return task, storeFailure(s.logger, "task.create.save", err, zap.String("task_id", tid))
	}

	if in.AssigneeIDs != nil {
		s.linker.AttachMembers(ctx, tid, in.AssigneeIDs)
	}

	s.events.Publish(Event{Type: EventTaskCreated, TaskID: tid, Version: 1})
	return task, nil
}

// Update applies a partial update. It is a no-op when tid does not exist.
func (s *TaskService) Update(ctx context.Context, tid string, in TaskUpdate) error {
	if in.Status != nil && !in.Status.Valid() {
		return invalidInput("task status %q", *in.Status)
	}

	task, err := s.stores.Tasks.FindByID(ctx, tid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return storeFailure(s.logger, "task.update.find", err, zap.String("task_id", tid))
	}

	if in.Name != nil {
		task.Name = *in.Name
	}
	if in.Status != nil {
		task.Status = *in.Status
	}
	if in.DueTo != nil {
		task.DueTo = dateOnly(in.DueTo)
	}
	if in.AssigneeIDs != nil {
		s.linker.AttachMembers(ctx, tid, in.AssigneeIDs)
	}

	// updatedAt is stamped last and never moves backwards
	stamp := now()
	if stamp.Before(task.UpdatedAt) {
		stamp = task.UpdatedAt
	}
	task.UpdatedAt = stamp

	if err := s.stores.Tasks.Update(ctx, task); err != nil {
		return storeFailure(s.logger, "task.update.save", err, zap.String("task_id", tid))
	}

	s.events.Publish(Event{Type: EventTaskUpdated, TaskID: tid, Version: 1})
	return nil
}

// Get returns the task, or nil when it does not exist.
func (s *TaskService) Get(ctx context.Context, tid string) (*models.Task, error) {
	task, err := s.stores.Tasks.FindByID(ctx, tid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, storeFailure(s.logger, "task.get", err, zap.String("task_id", tid))
	}
	return task, nil
}

// Remove deletes the task. Its assignments are left in place unless cascade
// deletes are enabled.
func (s *TaskService) Remove(ctx context.Context, tid string) error {
	if err := s.stores.Tasks.DeleteByID(ctx, tid); err != nil {
		return storeFailure(s.logger, "task.remove", err, zap.String("task_id", tid))
	}
	if s.cascade {
		if err := s.linker.PurgeTask(ctx, tid); err != nil {
			return err
		}
	}
	s.events.Publish(Event{Type: EventTaskDeleted, TaskID: tid, Version: 1})
	return nil
}

func (s *TaskService) List(ctx context.Context) ([]models.Task, error) {
	tasks, err := s.stores.Tasks.FindAll(ctx)
	if err != nil {
		return nil, storeFailure(s.logger, "task.list", err)
	}
	return tasks, nil
}

// Assignees returns the members linked to the task.
func (s *TaskService) Assignees(ctx context.Context, tid string) ([]models.Member, error) {
	return s.linker.MembersOfTask(ctx, tid)
}

// Unassign removes a single assignment.
func (s *TaskService) Unassign(ctx context.Context, tid, mid string) error {
	if err := s.linker.Unlink(ctx, tid, mid); err != nil {
		return err
	}
	s.events.Publish(Event{Type: EventTaskUnassigned, TaskID: tid, MemberID: mid, Version: 1})
	return nil
}

type taskPredicate func(models.Task) bool

// Filter narrows all tasks by every criterion in order. Unknown criterion
// kinds are ignored. The tasks are read up front; criteria are evaluated
// lazily while the sequence is consumed, so assignee lookups only happen for
// tasks that survived the earlier criteria.
func (s *TaskService) Filter(ctx context.Context, criteria []TaskCriterion) (iter.Seq[models.Task], error) {
	preds := make([]taskPredicate, 0, len(criteria))
	for _, c := range criteria {
		switch c.Kind {
		case CriterionType:
			typ, err := convert.ParseTaskType(c.Value)
			if err != nil {
				return nil, err
			}
			preds = append(preds, func(t models.Task) bool { return t.Type == typ })
		case CriterionStatus:
			status, err := convert.ParseStatus(c.Value)
			if err != nil {
				return nil, err
			}
			preds = append(preds, func(t models.Task) bool { return t.Status == status })
		case CriterionAssignee:
			mid := c.Value
			preds = append(preds, func(t models.Task) bool { return s.hasAssignee(ctx, t.ID, mid) })
		default:
			s.logger.Warn("ignoring unknown task criterion", logger.Op("task.filter"), zap.String("kind", string(c.Kind)))
		}
	}

	tasks, err := s.List(ctx)
	if err != nil {
		return func(func(models.Task) bool) {}, err
	}

	return func(yield func(models.Task) bool) {
	next:
		for _, t := range tasks {
			for _, p := range preds {
				if !p(t) {
					continue next
				}
			}
			if !yield(t) {
				return
			}
		}
	}, nil
}

func (s *TaskService) hasAssignee(ctx context.Context, tid, mid string) bool {
	members, err := s.linker.MembersOfTask(ctx, tid)
	if err != nil {
		return false
	}
	for _, m := range members {
		if m.ID == mid {
			return true
		}
	}
	return false
}

// CountByStatus tallies every task by status in a single pass. Total comes
// from the store's count.
func (s *TaskService) CountByStatus(ctx context.Context) (StatusCount, error) {
	var out StatusCount
	tasks, err := s.List(ctx)
	if err != nil {
		return out, err
	}
	for _, t := range tasks {
		switch t.Status {
		case models.StatusDone:
			out.Done++
		case models.StatusInProgress:
			out.InProgress++
		case models.StatusNotStarted:
			out.NotStarted++
		}
	}

	total, err := s.stores.Tasks.Count(ctx)
	if err != nil {
		return out, storeFailure(s.logger, "task.count", err)
	}
	out.Total = total
	return out, nil
}

func dateOnly(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := convert.Today(*t)
	return &d
}
