package services

import (
	"context"
	"testing"

	"project-team-tracker/internal/convert"
	"project-team-tracker/internal/models"

	"github.com/stretchr/testify/require"
)

func TestMemberCreate(t *testing.T) {
	svc, _ := newTestServices(t, Options{})
	m := mustMember(t, svc, "alice", models.AuthAdmin)
	require.Equal(t, "m01", m.ID)

	tasks, err := svc.Members.Tasks(context.Background(), m.ID)
	require.NoError(t, err)
	require.Empty(t, tasks)

	_, err = svc.Members.Create(context.Background(), MemberCreate{Name: "eve", Auth: "OWNER"})
	require.ErrorIs(t, err, convert.ErrInvalidInput)
}

func TestMemberUpdate_ExistingMemberIsUpdated(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestServices(t, Options{})
	m := mustMember(t, svc, "alice", models.AuthViewer)
	mustTask(t, svc, TaskCreate{Name: "a", Type: models.TypeBug})
	mustTask(t, svc, TaskCreate{Name: "b", Type: models.TypeBug})

	require.NoError(t, svc.Members.Update(ctx, m.ID, MemberUpdate{
		Auth:    ptr(models.AuthAdmin),
		TaskIDs: []string{"t01", "t77", "t02"},
	}))

	got, err := svc.Members.Get(ctx, m.ID)
	require.NoError(t, err)
	require.Equal(t, "alice", got.Name)
	require.Equal(t, models.AuthAdmin, got.Auth)

	tasks, err := svc.Members.Tasks(ctx, m.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"t01", "t02"}, taskIDs(tasks))

	// additive: a second update never drops links
	require.NoError(t, svc.Members.Update(ctx, m.ID, MemberUpdate{Name: ptr("alicia"), TaskIDs: []string{"t01"}}))
	tasks, err = svc.Members.Tasks(ctx, m.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
}

func TestMemberUpdate_MissingMemberIsNoop(t *testing.T) {
	ctx := context.Background()
	svc, stores := newTestServices(t, Options{})
	mustTask(t, svc, TaskCreate{Name: "a", Type: models.TypeBug})

	require.NoError(t, svc.Members.Update(ctx, "m09", MemberUpdate{Name: ptr("ghost"), TaskIDs: []string{"t01"}}))

	n, err := stores.Assignments.Count(ctx)
	require.NoError(t, err)
	require.Zero(t, n)
	got, err := svc.Members.Get(ctx, "m09")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestMemberRemove_DanglingLinkDegradesGracefully(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestServices(t, Options{})
	m := mustMember(t, svc, "alice", models.AuthAdmin)
	task := mustTask(t, svc, TaskCreate{Name: "x", Type: models.TypeBug, AssigneeIDs: []string{m.ID}})

	require.NoError(t, svc.Members.Remove(ctx, m.ID))
	require.True(t, svc.Linker.Exists(ctx, task.ID, m.ID))

	assignees, err := svc.Tasks.Assignees(ctx, task.ID)
	require.NoError(t, err)
	require.Empty(t, assignees)
}

func TestMemberRemove_Cascade(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestServices(t, Options{CascadeDeletes: true})
	m := mustMember(t, svc, "alice", models.AuthAdmin)
	task := mustTask(t, svc, TaskCreate{Name: "x", Type: models.TypeBug, AssigneeIDs: []string{m.ID}})

	require.NoError(t, svc.Members.Remove(ctx, m.ID))
	require.False(t, svc.Linker.Exists(ctx, task.ID, m.ID))
}

func seedTeam(t *testing.T) *Services {
	t.Helper()
	svc, _ := newTestServices(t, Options{})
	mustMember(t, svc, "ann", models.AuthAdmin)  // m01, assigned
	mustMember(t, svc, "max", models.AuthMember) // m02, assigned
	mustMember(t, svc, "vic", models.AuthViewer) // m03
	mustMember(t, svc, "ada", models.AuthAdmin)  // m04
	mustTask(t, svc, TaskCreate{Name: "x", Type: models.TypeBug, AssigneeIDs: []string{"m01", "m02"}})
	return svc
}

func TestMemberFilter(t *testing.T) {
	ctx := context.Background()
	svc := seedTeam(t)

	cases := []struct {
		name      string
		selectors []MemberSelector
		want      []string
	}{
		{"all", []MemberSelector{SelectAll}, []string{"m01", "m02", "m03", "m04"}},
		{"all wins over others", []MemberSelector{SelectAll, SelectViewer}, []string{"m01", "m02", "m03", "m04"}},
		{"no selectors", nil, []string{"m01", "m02", "m03", "m04"}},
		{"admins", []MemberSelector{SelectAdmin}, []string{"m01", "m04"}},
		{"tiers are OR'd", []MemberSelector{SelectMember, SelectViewer}, []string{"m02", "m03"}},
		{"assigned", []MemberSelector{SelectAssigned}, []string{"m01", "m02"}},
		{"unassigned", []MemberSelector{SelectUnassigned}, []string{"m03", "m04"}},
		{"both assignment selectors", []MemberSelector{SelectAssigned, SelectUnassigned}, []string{"m01", "m02", "m03", "m04"}},
		{"groups are AND'd", []MemberSelector{SelectAdmin, SelectUnassigned}, []string{"m04"}},
		{"unknown ignored", []MemberSelector{"8", SelectViewer}, []string{"m03"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			seq, err := svc.Members.Filter(ctx, tc.selectors...)
			require.NoError(t, err)
			require.Equal(t, tc.want, memberIDs(collect(seq)))
		})
	}
}

func TestMemberCountAssignment(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestServices(t, Options{})
	mustMember(t, svc, "ann", models.AuthAdmin)
	mustMember(t, svc, "max", models.AuthMember)
	mustMember(t, svc, "vic", models.AuthViewer)
	mustTask(t, svc, TaskCreate{Name: "a", Type: models.TypeBug, AssigneeIDs: []string{"m01"}})
	mustTask(t, svc, TaskCreate{Name: "b", Type: models.TypeBug, AssigneeIDs: []string{"m01", "m02"}})

	counts, err := svc.Members.CountAssignment(ctx)
	require.NoError(t, err)
	require.Equal(t, AssignmentCount{Assigned: 2, Total: 3}, counts)
}

func TestMemberService_StoreFailuresFallBack(t *testing.T) {
	ctx := context.Background()
	svc := New(Stores{
		Tasks:       brokenRepo[models.Task]{},
		Members:     brokenRepo[models.Member]{},
		Assignments: brokenAssignments{},
	}, Options{})

	got, err := svc.Members.Get(ctx, "m01")
	require.Nil(t, got)
	require.True(t, IsStoreError(err))

	counts, err := svc.Members.CountAssignment(ctx)
	require.Equal(t, AssignmentCount{}, counts)
	require.True(t, IsStoreError(err))

	require.True(t, IsStoreError(svc.Members.Remove(ctx, "m01")))

	tasks, err := svc.Members.Tasks(ctx, "m01")
	require.Nil(t, tasks)
	require.True(t, IsStoreError(err))
}
