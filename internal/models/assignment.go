package models

// Assignment links a task to a member. The pair is the identity.
type Assignment struct {
	TaskID   string `json:"taskId" gorm:"primaryKey;column:task_id;size:16"`
	MemberID string `json:"memberId" gorm:"primaryKey;column:member_id;size:16;index"`
}

// TableName specifies the table name for Assignment Model
func (Assignment) TableName() string {
	return "assignments"
}

// Sequence holds the last identifier issued for an entity kind.
type Sequence struct {
	Kind  string `gorm:"primaryKey;size:16"`
	Value int64  `gorm:"not null"`
}

// TableName specifies the table name for Sequence Model
func (Sequence) TableName() string {
	return "sequences"
}

// All returns every model that must be migrated.
func All() []any {
	return []any{&Task{}, &Member{}, &Assignment{}, &Sequence{}}
}
