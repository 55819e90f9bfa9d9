package models

import "time"

const (
	RoleOwner  = "OWNER"
	RoleEditor = "EDITOR"
	RoleViewer = "VIEWER"
)

// roleRanks strictly orders OWNER > EDITOR > VIEWER for permission checks.
var roleRanks = map[string]int{
	RoleOwner:  3,
	RoleEditor: 2,
	RoleViewer: 1,
}

func RoleRank(role string) int {
	return roleRanks[role]
}

type Project struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Color       string          `json:"color,omitempty"`
	IsArchived  bool            `json:"isArchived"`
	OwnerID     string          `json:"ownerId"`
	Members     []ProjectMember `json:"members,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

type ProjectMember struct {
	UserID    string    `json:"userId"`
	ProjectID string    `json:"projectId"`
	Role      string    `json:"role"`
	JoinedAt  time.Time `json:"joinedAt"`
}

// MemberRole returns the effective role of the given user on the project.
// The owner is implicitly a member with full rights even when absent from
// the members list.
func (p *Project) MemberRole(userID string) (string, bool) {
	if userID == p.OwnerID {
		return RoleOwner, true
	}
	for _, m := range p.Members {
		if m.UserID == userID {
			return m.Role, true
		}
	}
	return "", false
}

// CanEdit reports whether the user may modify tasks within the project.
func (p *Project) CanEdit(userID string) bool {
	role, ok := p.MemberRole(userID)
	return ok && RoleRank(role) >= RoleRank(RoleEditor)
}

// CanManage reports whether the user may change project settings and members.
func (p *Project) CanManage(userID string) bool {
	role, ok := p.MemberRole(userID)
	return ok && RoleRank(role) >= RoleRank(RoleOwner)
}
