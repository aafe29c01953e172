package domain

// MemberRole is the role of a user inside a workspace or board.
type MemberRole string

const (
	MemberRoleAdmin    MemberRole = "admin"
	MemberRoleMember   MemberRole = "member"
	MemberRoleObserver MemberRole = "observer"
)

// IsValid reports whether r is one of the known roles.
func (r MemberRole) IsValid() bool {
	switch r {
	case MemberRoleAdmin, MemberRoleMember, MemberRoleObserver:
		return true
	}
	return false
}
