package services

import (
	"context"
	"errors"
	"iter"
	"slices"

	"project-team-tracker/internal/idgen"
	"project-team-tracker/internal/logger"
	"project-team-tracker/internal/models"
	"project-team-tracker/internal/repository"

	"go.uber.org/zap"
)

type MemberCreate struct {
	Name string
	Auth models.Authority
}

// MemberUpdate carries a partial update. Nil fields keep their current value;
// TaskIDs are added to the member's existing assignments.
type MemberUpdate struct {
	Name    *string
	Auth    *models.Authority
	TaskIDs []string
}

// MemberSelector is one member filter code.
type MemberSelector string

const (
	SelectAll        MemberSelector = "@"
	SelectAdmin      MemberSelector = "1"
	SelectMember     MemberSelector = "2"
	SelectViewer     MemberSelector = "3"
	SelectAssigned   MemberSelector = "4"
	SelectUnassigned MemberSelector = "5"
)

var tierSelectors = map[MemberSelector]models.Authority{
	SelectAdmin:  models.AuthAdmin,
	SelectMember: models.AuthMember,
	SelectViewer: models.AuthViewer,
}

// AssignmentCount pairs the members holding at least one task with the total.
type AssignmentCount struct {
	Assigned int   `json:"assigned"`
	Total    int64 `json:"total"`
}

type MemberService struct {
	stores  Stores
	linker  *Linker
	ids     idgen.Generator
	logger  *zap.Logger
	events  Publisher
	cascade bool
}

func NewMemberService(stores Stores, linker *Linker, opts Options) *MemberService {
	opts = opts.withDefaults()
	if linker == nil {
		linker = NewLinker(stores, opts.Logger)
	}
	return &MemberService{
		stores:  stores,
		linker:  linker,
		ids:     opts.IDs,
		logger:  opts.Logger.Named("members"),
		events:  opts.Publisher,
		cascade: opts.CascadeDeletes,
	}
}

// Create stores a new member. Members start without assignments.
func (s *MemberService) Create(ctx context.Context, in MemberCreate) (*models.Member, error) {
	if !in.Auth.Valid() {
		return nil, invalidInput("authority %q", in.Auth)
	}

	mid, err := s.ids.Next(ctx, idgen.KindMember)
	if err != nil {
		return nil, storeFailure(s.logger, "member.create.id", err)
	}

	member := &models.Member{ID: mid, Name: in.Name, Auth: in.Auth}
	if err := s.stores.Members.Save(ctx, member); err != nil {
		return member, storeFailure(s.logger, "member.create.save", err, zap.String("member_id", mid))
	}

	s.events.Publish(Event{Type: EventMemberCreated, MemberID: mid, Version: 1})
	return member, nil
}

// Update applies a partial update. It is a no-op when mid does not exist.
func (s *MemberService) Update(ctx context.Context, mid string, in MemberUpdate) error {
	if in.Auth != nil && !in.Auth.Valid() {
		return invalidInput("authority %q", *in.Auth)
	}

	member, err := s.stores.Members.FindByID(ctx, mid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return storeFailure(s.logger, "member.update.find", err, zap.String("member_id", mid))
	}

	if in.TaskIDs != nil {
		s.linker.AttachTasks(ctx, mid, in.TaskIDs)
	}
	if in.Name != nil {
		member.Name = *in.Name
	}
	if in.Auth != nil {
		member.Auth = *in.Auth
	}

	if err := s.stores.Members.Update(ctx, member); err != nil {
		return storeFailure(s.logger, "member.update.save", err, zap.String("member_id", mid))
	}

	s.events.Publish(Event{Type: EventMemberUpdated, MemberID: mid, Version: 1})
	return nil
}

// Get returns the member, or nil when it does not exist.
func (s *MemberService) Get(ctx context.Context, mid string) (*models.Member, error) {
	member, err := s.stores.Members.FindByID(ctx, mid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, storeFailure(s.logger, "member.get", err, zap.String("member_id", mid))
	}
	return member, nil
}

// Remove deletes the member. Its assignments are left in place unless
// cascade deletes are enabled.
func (s *MemberService) Remove(ctx context.Context, mid string) error {
	if err := s.stores.Members.DeleteByID(ctx, mid); err != nil {
		return storeFailure(s.logger, "member.remove", err, zap.String("member_id", mid))
	}
	if s.cascade {
		if err := s.linker.PurgeMember(ctx, mid); err != nil {
			return err
		}
	}
	s.events.Publish(Event{Type: EventMemberDeleted, MemberID: mid, Version: 1})
	return nil
}

func (s *MemberService) List(ctx context.Context) ([]models.Member, error) {
	members, err := s.stores.Members.FindAll(ctx)
	if err != nil {
		return nil, storeFailure(s.logger, "member.list", err)
	}
	return members, nil
}

// Tasks returns the tasks currently assigned to the member.
func (s *MemberService) Tasks(ctx context.Context, mid string) ([]models.Task, error) {
	return s.linker.TasksOfMember(ctx, mid)
}

// Filter selects members by tier and by whether they hold assignments.
// Selectors within a group are OR'd, a group without selectors passes every
// member, and the two groups are AND'd. SelectAll returns every member.
func (s *MemberService) Filter(ctx context.Context, selectors ...MemberSelector) (iter.Seq[models.Member], error) {
	members, err := s.List(ctx)
	if err != nil {
		return func(func(models.Member) bool) {}, err
	}
	all := func(yield func(models.Member) bool) {
		for _, m := range members {
			if !yield(m) {
				return
			}
		}
	}
	if slices.Contains(selectors, SelectAll) {
		return all, nil
	}

	var tiers []models.Authority
	var wantAssigned, wantUnassigned bool
	for _, sel := range selectors {
		switch sel {
		case SelectAdmin, SelectMember, SelectViewer:
			tiers = append(tiers, tierSelectors[sel])
		case SelectAssigned:
			wantAssigned = true
		case SelectUnassigned:
			wantUnassigned = true
		default:
			s.logger.Warn("ignoring unknown member selector", logger.Op("member.filter"), zap.String("selector", string(sel)))
		}
	}

	return func(yield func(models.Member) bool) {
		for _, m := range members {
			if len(tiers) > 0 && !slices.Contains(tiers, m.Auth) {
				continue
			}
			if wantAssigned || wantUnassigned {
				has := s.hasTasks(ctx, m.ID)
				if !(wantAssigned && has) && !(wantUnassigned && !has) {
					continue
				}
			}
			if !yield(m) {
				return
			}
		}
	}, nil
}

func (s *MemberService) hasTasks(ctx context.Context, mid string) bool {
	tasks, err := s.linker.TasksOfMember(ctx, mid)
	return err == nil && len(tasks) > 0
}

// CountAssignment counts the members with at least one task, paired with the
// store's member count.
func (s *MemberService) CountAssignment(ctx context.Context) (AssignmentCount, error) {
	var out AssignmentCount
	members, err := s.List(ctx)
	if err != nil {
		return out, err
	}
	for _, m := range members {
		if s.hasTasks(ctx, m.ID) {
			out.Assigned++
		}
	}

	total, err := s.stores.Members.Count(ctx)
	if err != nil {
		return out, storeFailure(s.logger, "member.count", err)
	}
	out.Total = total
	return out, nil
}
