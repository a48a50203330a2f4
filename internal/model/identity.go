package model

// Role distinguishes uploaders from reviewers.
type Role string

const (
	RoleStudent   Role = "student"
	RoleProfessor Role = "professor"
)

// Identity is a caller-supplied reference to a user. It is consumed, never owned or authenticated.
type Identity struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email,omitempty"`
	RollNumber string `json:"rollNumber,omitempty"`
	Role       Role   `json:"role,omitempty"`
}

// IsReviewer reports whether the identity may approve or reject documents.
func (i Identity) IsReviewer() bool {
	return i.ID != "" && i.Role == RoleProfessor
}
