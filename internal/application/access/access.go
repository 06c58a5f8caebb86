// Package access decides which dashboard routes an identity may reach and
// which navigation links it sees.
package access

import (
	"path"
	"strings"

	"github.com/oksasatya/smart-health-api/internal/domain/entity"
)

type NavItem struct {
	Path  string `json:"path"`
	Label string `json:"label"`
}

var (
	navDashboard = NavItem{Path: "/", Label: "Dashboard"}
	navProfile   = NavItem{Path: "/profile", Label: "Profile"}
	navTracker   = NavItem{Path: "/tracker", Label: "Health Tracker"}
	navAssistant = NavItem{Path: "/assistant", Label: "AI Assistant"}
	navReports   = NavItem{Path: "/reports", Label: "Reports"}
	navPatients  = NavItem{Path: "/patients", Label: "Patients"}
	navUsers     = NavItem{Path: "/admin/users", Label: "Manage Users"}
	navSystem    = NavItem{Path: "/admin/system", Label: "System Status"}
)

// Navigation returns the sidebar links for role, Dashboard first and
// Profile last. An invalid role gets nothing.
func Navigation(role entity.Role) []NavItem {
	var items []NavItem
	switch role {
	case entity.RoleUser:
		items = []NavItem{navTracker, navAssistant, navReports}
	case entity.RoleDoctor:
		items = []NavItem{navPatients, navAssistant}
	case entity.RoleAdmin:
		items = []NavItem{navUsers, navSystem}
	default:
		return nil
	}
	out := make([]NavItem, 0, len(items)+2)
	out = append(out, navDashboard)
	out = append(out, items...)
	return append(out, navProfile)
}

type Decision string

const (
	Allow         Decision = "allow"
	RedirectLogin Decision = "redirect_login"
	RedirectRoot  Decision = "redirect_root"
)

// Target is where a redirect decision sends the client.
func (d Decision) Target() string {
	switch d {
	case RedirectLogin:
		return "/login"
	case RedirectRoot:
		return "/"
	case Allow:
		return ""
	default:
		return ""
	}
}

var publicRoutes = map[string]bool{"/login": true, "/signup": true}

// Resolve decides what happens when ident (nil when logged out) opens p.
// Unknown paths go to the root, protected paths need a login, and a known
// route outside the role's navigation also goes to the root.
func Resolve(ident *entity.Identity, p string) Decision {
	p = clean(p)
	if publicRoutes[p] {
		return Allow
	}
	if !known(p) {
		return RedirectRoot
	}
	if ident == nil {
		return RedirectLogin
	}
	for _, item := range Navigation(ident.Role) {
		if item.Path == p {
			return Allow
		}
	}
	return RedirectRoot
}

func known(p string) bool {
	for _, role := range entity.Roles() {
		for _, item := range Navigation(role) {
			if item.Path == p {
				return true
			}
		}
	}
	return false
}

func clean(p string) string {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}
