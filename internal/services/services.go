package services

import (
	"time"

	"project-team-tracker/internal/idgen"
	"project-team-tracker/internal/models"
	"project-team-tracker/internal/repository"

	"go.uber.org/zap"
)

// Stores bundles the repositories the services read and write.
type Stores struct {
	Tasks       repository.Repository[models.Task]
	Members     repository.Repository[models.Member]
	Assignments repository.AssignmentRepository
}

// Options configures the services.
type Options struct {
	IDs       idgen.Generator
	Logger    *zap.Logger
	Publisher Publisher
	// CascadeDeletes removes the assignments of a deleted task or member.
	// When false, deletes leave the rows behind as dangling links.
	CascadeDeletes bool
}

func (o Options) withDefaults() Options {
	if o.IDs == nil {
		o.IDs = idgen.NewMemory()
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.Publisher == nil {
		o.Publisher = nopPublisher{}
	}
	return o
}

// Services groups the task and member services over one shared linker.
type Services struct {
	Tasks   *TaskService
	Members *MemberService
	Linker  *Linker
}

func New(stores Stores, opts Options) *Services {
	opts = opts.withDefaults()
	linker := NewLinker(stores, opts.Logger.Named("linker"))
	return &Services{
		Tasks:   NewTaskService(stores, linker, opts),
		Members: NewMemberService(stores, linker, opts),
		Linker:  linker,
	}
}

// now is swapped by tests.
var now = time.Now
