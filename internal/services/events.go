package services

// Event types published after a successful mutation.
const (
	EventTaskCreated    = "task_created"
	EventTaskUpdated    = "task_updated"
	EventTaskDeleted    = "task_deleted"
	EventTaskUnassigned = "task_unassigned"
	EventMemberCreated  = "member_created"
	EventMemberUpdated  = "member_updated"
	EventMemberDeleted  = "member_deleted"
)

// Event describes a change to a task or member.
type Event struct {
	Type     string `json:"type"`
	TaskID   string `json:"taskId,omitempty"`
	MemberID string `json:"memberId,omitempty"`
	Version  int    `json:"version"`
}

// Publisher receives events. Implementations must not block.
type Publisher interface {
	Publish(evt Event)
}

type nopPublisher struct{}

func (nopPublisher) Publish(Event) {}
