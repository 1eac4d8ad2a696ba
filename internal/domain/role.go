package domain

// Role is a named permission class, seeded once at startup
type Role struct {
	ID   int    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

// TableName specifies the table name for Role
func (Role) TableName() string {
	return "roles"
}

// Well-known role names
const (
	RoleAdmin     = "admin"
	RoleModerator = "moderator"
	RolePublisher = "publisher"
	RoleOrganizer = "organizer"
	RoleVolunteer = "volunteer"
)

// DefaultRoles are seeded into the roles table on startup
var DefaultRoles = []string{
	RoleAdmin,
	RoleModerator,
	RolePublisher,
	RoleOrganizer,
	RoleVolunteer,
}

// RoleStatus enumerates the role lifecycle states. Only Pending, Active,
// Rejected and Expired are ever stored; None, Renewable and Unknown are
// derived at read time by ResolveRoleStatus.
type RoleStatus int

const (
	RoleStatusNone      RoleStatus = 0
	RoleStatusPending   RoleStatus = 1
	RoleStatusActive    RoleStatus = 2
	RoleStatusRejected  RoleStatus = 3
	RoleStatusExpired   RoleStatus = 4
	RoleStatusRenewable RoleStatus = 5
	RoleStatusUnknown   RoleStatus = 9
)

// String returns the lowercase name of the status
func (s RoleStatus) String() string {
	switch s {
	case RoleStatusNone:
		return "none"
	case RoleStatusPending:
		return "pending"
	case RoleStatusActive:
		return "active"
	case RoleStatusRejected:
		return "rejected"
	case RoleStatusExpired:
		return "expired"
	case RoleStatusRenewable:
		return "renewable"
	default:
		return "unknown"
	}
}

// IsStored reports whether the status is one that may be persisted
func (s RoleStatus) IsStored() bool {
	switch s {
	case RoleStatusPending, RoleStatusActive, RoleStatusRejected, RoleStatusExpired:
		return true
	default:
		return false
	}
}
