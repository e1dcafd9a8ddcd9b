package services

import (
	"context"
	"errors"
	"iter"
	"slices"
	"sync"
	"testing"
	"time"

	"project-team-tracker/internal/idgen"
	"project-team-tracker/internal/models"
	"project-team-tracker/internal/repository"
	"project-team-tracker/internal/testutil"

	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func newStores(t *testing.T) Stores {
	t.Helper()
	db := testutil.MustInMemoryDB(t)
	return Stores{
		Tasks:       repository.NewGorm[models.Task](db),
		Members:     repository.NewGorm[models.Member](db),
		Assignments: repository.NewAssignments(db),
	}
}

func newTestServices(t *testing.T, opts Options) (*Services, Stores) {
	t.Helper()
	stores := newStores(t)
	if opts.IDs == nil {
		opts.IDs = idgen.NewMemory()
	}
	return New(stores, opts), stores
}

// freezeNow pins the services clock and returns a setter for it.
func freezeNow(t *testing.T, at time.Time) func(time.Time) {
	t.Helper()
	current := at
	now = func() time.Time { return current }
	t.Cleanup(func() { now = time.Now })
	return func(next time.Time) { current = next }
}

func collect[T any](seq iter.Seq[T]) []T {
	var out []T
	for v := range seq {
		out = append(out, v)
	}
	return out
}

func taskIDs(tasks []models.Task) []string {
	ids := make([]string, 0, len(tasks))
	for _, t := range tasks {
		ids = append(ids, t.ID)
	}
	slices.Sort(ids)
	return ids
}

func memberIDs(members []models.Member) []string {
	ids := make([]string, 0, len(members))
	for _, m := range members {
		ids = append(ids, m.ID)
	}
	slices.Sort(ids)
	return ids
}

func mustMember(t *testing.T, svc *Services, name string, auth models.Authority) *models.Member {
	t.Helper()
	m, err := svc.Members.Create(context.Background(), MemberCreate{Name: name, Auth: auth})
	require.NoError(t, err)
	return m
}

func mustTask(t *testing.T, svc *Services, in TaskCreate) *models.Task {
	t.Helper()
	task, err := svc.Tasks.Create(context.Background(), in)
	require.NoError(t, err)
	return task
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []Event
}

func (p *recordingPublisher) Publish(evt Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

var errBroken = errors.New("disk on fire")

// brokenRepo fails every call.
type brokenRepo[T any] struct{}

func (brokenRepo[T]) Save(context.Context, *T) error { return errBroken }
func (brokenRepo[T]) FindByID(context.Context, string) (*T, error) { return nil, errBroken }
func (brokenRepo[T]) Update(context.Context, *T) error { return errBroken }
func (brokenRepo[T]) DeleteByID(context.Context, string) error { return errBroken }
func (brokenRepo[T]) FindAll(context.Context) ([]T, error) { return nil, errBroken }
func (brokenRepo[T]) ExistsByID(context.Context, string) (bool, error) { return false, errBroken }
func (brokenRepo[T]) Count(context.Context) (int64, error) { return 0, errBroken }

type brokenAssignments struct{}

func (brokenAssignments) Add(context.Context, string, string) error { return errBroken }
func (brokenAssignments) Remove(context.Context, string, string) error { return errBroken }
func (brokenAssignments) Exists(context.Context, string, string) (bool, error) {
	return false, errBroken
}
func (brokenAssignments) TaskIDsOf(context.Context, string) ([]string, error) {
	return nil, errBroken
}
func (brokenAssignments) MemberIDsOf(context.Context, string) ([]string, error) {
	return nil, errBroken
}
func (brokenAssignments) DeleteByTask(context.Context, string) (int64, error) {
	return 0, errBroken
}
func (brokenAssignments) DeleteByMember(context.Context, string) (int64, error) {
	return 0, errBroken
}
func (brokenAssignments) Count(context.Context) (int64, error) { return 0, errBroken }
