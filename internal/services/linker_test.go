package services

import (
	"context"
	"testing"

	"project-team-tracker/internal/models"

	"github.com/stretchr/testify/require"
)

func TestLinker_LinkIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc, stores := newTestServices(t, Options{})

	require.True(t, svc.Linker.Link(ctx, "t01", "m01"))
	require.True(t, svc.Linker.Exists(ctx, "t01", "m01"))
	require.True(t, svc.Linker.Link(ctx, "t01", "m01"))
	require.True(t, svc.Linker.Exists(ctx, "t01", "m01"))

	n, err := stores.Assignments.Count(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)
}

func TestLinker_UnlinkAbsentPair(t *testing.T) {
	svc, _ := newTestServices(t, Options{})
	require.NoError(t, svc.Linker.Unlink(context.Background(), "t01", "m01"))
}

func TestLinker_ResolvesBothSides(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestServices(t, Options{})
	mustMember(t, svc, "alice", models.AuthAdmin)
	mustTask(t, svc, TaskCreate{Name: "a", Type: models.TypeBug})
	mustTask(t, svc, TaskCreate{Name: "b", Type: models.TypeBug})

	require.Equal(t, 2, svc.Linker.AttachTasks(ctx, "m01", []string{"t01", "t02", "t03"}))
	require.Equal(t, 0, svc.Linker.AttachMembers(ctx, "t01", []string{"m05"}))

	tasks, err := svc.Linker.TasksOfMember(ctx, "m01")
	require.NoError(t, err)
	require.Equal(t, []string{"t01", "t02"}, taskIDs(tasks))

	members, err := svc.Linker.MembersOfTask(ctx, "t02")
	require.NoError(t, err)
	require.Equal(t, []string{"m01"}, memberIDs(members))
}

func TestLinker_DanglingTaskLinkIsSkipped(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestServices(t, Options{})
	mustMember(t, svc, "alice", models.AuthAdmin)
	require.True(t, svc.Linker.Link(ctx, "t09", "m01"))

	tasks, err := svc.Linker.TasksOfMember(ctx, "m01")
	require.NoError(t, err)
	require.Empty(t, tasks)
}
