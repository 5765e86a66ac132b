package assignment

import "time"

type Role string

const (
	RoleOperator Role = "operator"
	RoleClient   Role = "client"
)

func ValidRole(r Role) bool {
	return r == RoleOperator || r == RoleClient
}

// ProjectAssignment links a user to a project with a role. The
// (user_id, project_id) pair is unique; Assign upserts against that index.
type ProjectAssignment struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	ProjectID string    `gorm:"type:uuid;index;uniqueIndex:idx_assignments_user_project,priority:2;not null" json:"project_id"`
	UserID    string    `gorm:"uniqueIndex:idx_assignments_user_project,priority:1;index;not null" json:"user_id"`
	Role      Role      `gorm:"type:text;not null" json:"role"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type ListFilter struct {
	ProjectID string
	UserID    string
}

type AssignInput struct {
	ProjectID string
	UserID    string
	Role      Role
}

// UpdateAssignmentInput patches a row by id. Only the role is patchable: the
// (user_id, project_id) pair is the row's identity under the unique index, so
// re-pairing goes through Assign plus Delete instead.
type UpdateAssignmentInput struct {
	ID   string
	Role *Role
}

// ProjectInfo is the project projection attached by the for-user resolver.
type ProjectInfo struct {
	ID       string `json:"id"`
	ClientID string `json:"client_id"`
	Name     string `json:"name"`
	Address  string `json:"address"`
}

// UserInfo is the user projection attached by the for-project resolver.
type UserInfo struct {
	ID        string  `json:"id"`
	Email     *string `json:"email"`
	Name      *string `json:"name"`
	AvatarURL *string `json:"avatar_url"`
}

type ProjectWithRole struct {
	ProjectInfo
	Role Role `json:"role"`
}

type UserWithRole struct {
	UserInfo
	Role Role `json:"role"`
}
