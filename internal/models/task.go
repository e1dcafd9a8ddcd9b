package models

import (
	"time"
)

// TaskStatus represents the status of a task
type TaskStatus string

const (
	StatusNotStarted TaskStatus = "NOT_STARTED"
	StatusInProgress TaskStatus = "IN_PROGRESS"
	StatusDone       TaskStatus = "DONE"
)

// Statuses lists every task status from the lowest to the highest.
var Statuses = []TaskStatus{StatusNotStarted, StatusInProgress, StatusDone}

// Ordinal returns the position of the status in Statuses, or -1 if unknown.
func (s TaskStatus) Ordinal() int {
	for i, st := range Statuses {
		if st == s {
			return i
		}
	}
	return -1
}

// Valid reports whether s is one of the known statuses.
func (s TaskStatus) Valid() bool {
	return s.Ordinal() >= 0
}

// TaskType represents the kind of work a task describes
type TaskType string

const (
	TypeFeature  TaskType = "FEATURE"
	TypeBug      TaskType = "BUG"
	TypeDocument TaskType = "DOCUMENT"
	TypeMeeting  TaskType = "MEETING"
	TypeEtc      TaskType = "ETC"
)

// TaskTypes lists every task type in input-code order (code 1 first).
var TaskTypes = []TaskType{TypeFeature, TypeBug, TypeDocument, TypeMeeting, TypeEtc}

// Valid reports whether t is one of the known task types.
func (t TaskType) Valid() bool {
	for _, tt := range TaskTypes {
		if tt == t {
			return true
		}
	}
	return false
}

// Task represents a unit of work. Assignees are not stored on the row; they
// are derived from the assignments table.
type Task struct {
	ID        string     `json:"id" gorm:"primaryKey;size:16"`
	Name      string     `json:"name" gorm:"not null"`
	Type      TaskType   `json:"type" gorm:"not null"`
	Status    TaskStatus `json:"status" gorm:"not null"`
	DueTo     *time.Time `json:"dueTo" gorm:"column:due_to"`
	CreatedAt time.Time  `json:"createdAt" gorm:"column:created_at;autoCreateTime:false"`
	UpdatedAt time.Time  `json:"updatedAt" gorm:"column:updated_at;autoUpdateTime:false"`
}

// TableName specifies the table name for Task Model
func (Task) TableName() string {
	return "tasks"
}

// Scheduled reports whether the task has a due date.
func (t Task) Scheduled() bool {
	return t.DueTo != nil
}
