package authz

import "github.com/BruksfildServices01/skin-clinic/internal/httperr"

type Role string

const (
	RoleAdmin Role = "admin"
	RoleStaff Role = "staff"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleStaff
}

type Permission string

const (
	PermCatalogRead   Permission = "catalog.read"
	PermCatalogWrite  Permission = "catalog.write"
	PermStaffManage   Permission = "staff.manage"
	PermClientsManage Permission = "clients.manage"
	PermSchedule      Permission = "appointments.manage"
	PermTracking      Permission = "tracking.manage"
	PermPOS           Permission = "pos.manage"
	PermUsersManage   Permission = "users.manage"
	PermAuditRead     Permission = "audit.read"
)

var allPermissions = []Permission{
	PermCatalogRead,
	PermCatalogWrite,
	PermStaffManage,
	PermClientsManage,
	PermSchedule,
	PermTracking,
	PermPOS,
	PermUsersManage,
	PermAuditRead,
}

var staffPermissions = map[Permission]bool{
	PermCatalogRead:   true,
	PermClientsManage: true,
	PermSchedule:      true,
	PermTracking:      true,
	PermPOS:           true,
}

// Actor is the authenticated user on whose behalf a use case runs.
type Actor struct {
	UserID uint
	Role   Role
}

func (a Actor) Can(p Permission) bool {
	switch a.Role {
	case RoleAdmin:
		return true
	case RoleStaff:
		return staffPermissions[p]
	}
	return false
}

// Permissions lists what the actor may do, in a stable order.
func (a Actor) Permissions() []Permission {
	out := []Permission{}
	for _, p := range allPermissions {
		if a.Can(p) {
			out = append(out, p)
		}
	}
	return out
}

func Require(a Actor, p Permission) error {
	if !a.Can(p) {
		return httperr.ErrForbidden(string(p))
	}
	return nil
}

// System is used by operational commands that run outside a request.
func System() Actor {
	return Actor{Role: RoleAdmin}
}
