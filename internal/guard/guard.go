package guard

import (
	"hospital-portal/internal/models"
	"hospital-portal/internal/session"
)

// Route identifies a navigation target.
type Route string

const (
	RouteHome        Route = "home"
	RouteNews        Route = "news"
	RouteLogin       Route = "login"
	RouteSignup      Route = "signup"
	RouteAppointment Route = "appointment"
	RouteDashboard   Route = "dashboard"
	RouteAdminPanel  Route = "admin-panel"
	RouteUserEdit    Route = "user-edit"
)

// Action is the outcome of a guard decision.
type Action int

const (
	// Hold renders a neutral loading state; the session is still being
	// resolved and redirecting now would flash the wrong view.
	Hold Action = iota
	// Render lets the target view through.
	Render
	// Redirect sends the caller to Decision.Target instead.
	Redirect
)

// Decision is the guard's verdict for one navigation.
type Decision struct {
	Action Action
	Target string
}

// Decide is a pure function over the session and the navigation target.
func Decide(s session.Session, route Route) Decision {
	if s.Loading {
		return Decision{Action: Hold}
	}

	switch route {
	case RouteDashboard:
		if s.Authenticated {
			return Decision{Action: Render}
		}
		return Decision{Action: Redirect, Target: "/login"}
	case RouteAdminPanel, RouteUserEdit:
		if s.Authenticated && s.Role == models.RoleAdmin {
			return Decision{Action: Render}
		}
		return Decision{Action: Redirect, Target: "/dashboard"}
	default:
		return Decision{Action: Render}
	}
}
