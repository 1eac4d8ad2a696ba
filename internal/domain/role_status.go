package domain

import "time"

// RenewalWindow is how long before expiry an active role becomes renewable.
// The boundary is inclusive: a role expiring exactly 30 days from now is
// already renewable.
const RenewalWindow = 30 * 24 * time.Hour

// RoleStatusView is the derived lifecycle view of one (user, role) pair
type RoleStatusView struct {
	Status          RoleStatus `json:"userStatus"`
	CanApply        bool       `json:"canApply"`
	ActiveUntil     *time.Time `json:"activeUntil,omitempty"`
	DowntimeUntil   *time.Time `json:"downtimeUntil,omitempty"`
	RejectionReason *string    `json:"rejectionReason,omitempty"`
	RequestedAt     *time.Time `json:"requestedAt,omitempty"`
}

// ResolveRoleStatus derives the lifecycle view from the latest assignment
// row for a (user, role) pair. It is a pure function of the row and the
// clock; every status decision in the service goes through it, so the
// admission rules live in exactly one place.
//
// A stored Active row whose ActiveUntil has passed resolves as Expired.
// Nothing rewrites the row here; the expiry sweep persists that transition
// separately.
func ResolveRoleStatus(latest *RoleAssignment, now time.Time) RoleStatusView {
	if latest == nil {
		return RoleStatusView{Status: RoleStatusNone, CanApply: true}
	}

	switch latest.Status {
	case RoleStatusPending:
		requestedAt := latest.CreatedAt
		return RoleStatusView{
			Status:      RoleStatusPending,
			CanApply:    false,
			RequestedAt: &requestedAt,
		}

	case RoleStatusActive:
		requestedAt := latest.CreatedAt
		view := RoleStatusView{
			ActiveUntil: latest.ActiveUntil,
			RequestedAt: &requestedAt,
		}
		switch {
		case latest.ActiveUntil == nil:
			// Open-ended grant, never renewable
			view.Status = RoleStatusActive
			view.CanApply = false
		case !latest.ActiveUntil.After(now):
			view.Status = RoleStatusExpired
			view.CanApply = downtimePassed(latest.DowntimeUntil, now)
			view.DowntimeUntil = latest.DowntimeUntil
		case !latest.ActiveUntil.After(now.Add(RenewalWindow)):
			view.Status = RoleStatusRenewable
			view.CanApply = true
		default:
			view.Status = RoleStatusActive
			view.CanApply = false
		}
		return view

	case RoleStatusRejected:
		return RoleStatusView{
			Status:          RoleStatusRejected,
			CanApply:        downtimePassed(latest.DowntimeUntil, now),
			DowntimeUntil:   latest.DowntimeUntil,
			RejectionReason: latest.RejectionReason,
		}

	case RoleStatusExpired:
		return RoleStatusView{
			Status:        RoleStatusExpired,
			CanApply:      downtimePassed(latest.DowntimeUntil, now),
			ActiveUntil:   latest.ActiveUntil,
			DowntimeUntil: latest.DowntimeUntil,
		}

	default:
		return RoleStatusView{Status: RoleStatusUnknown, CanApply: false}
	}
}

func downtimePassed(downtimeUntil *time.Time, now time.Time) bool {
	return downtimeUntil == nil || !downtimeUntil.After(now)
}
