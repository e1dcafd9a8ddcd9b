package models

// Authority represents the tier of a team member. It is stored data only and
// is never used for access control.
type Authority string

const (
	AuthAdmin  Authority = "ADMIN"
	AuthMember Authority = "MEMBER"
	AuthViewer Authority = "VIEWER"
)

// Authorities lists every tier in input-code order (code 1 first).
var Authorities = []Authority{AuthAdmin, AuthMember, AuthViewer}

// Valid reports whether a is one of the known tiers.
func (a Authority) Valid() bool {
	for _, au := range Authorities {
		if au == a {
			return true
		}
	}
	return false
}

// Member represents a person on the team
type Member struct {
	ID   string    `json:"id" gorm:"primaryKey;size:16"`
	Name string    `json:"name" gorm:"not null"`
	Auth Authority `json:"auth" gorm:"not null"`
}

// TableName specifies the table name for Member Model
func (Member) TableName() string {
	return "members"
}
