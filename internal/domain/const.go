package domain

const (
	RequesterIDCtxKey      = "edsg-requesterId"
	RequesterIsAdminCtxKey = "edsg-requesterIsAdmin"
)

// DashboardMode selects which role's data a dashboard request wants. It is
// an explicit request parameter, not session state.
type DashboardMode int

const (
	ModeClient DashboardMode = iota
	ModeProfessional
)

func (m DashboardMode) String() string {
	if m == ModeProfessional {
		return "professional"
	}
	return "client"
}

// ParseDashboardMode maps the query token to a mode. Anything other than
// "professional" falls back to client, matching the original default.
func ParseDashboardMode(s string) DashboardMode {
	if s == "professional" {
		return ModeProfessional
	}
	return ModeClient
}
