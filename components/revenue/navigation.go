package revenue

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownRoute is returned when navigating to a path that is not in the sidebar.
var ErrUnknownRoute = errors.New("revenue: unknown route")

// RevenueTitle is the page title of the revenue route.
const RevenueTitle = "Dashboard de Receita"

// IsActive reports whether the sidebar entry for path is highlighted on the
// current route. Home only matches exactly; other entries also match nested paths.
func IsActive(current, path, home string) bool {
	if current == path {
		return true
	}
	return path != home && strings.HasPrefix(current, path+"/")
}

// NavItemView is a sidebar entry with its active flag.
type NavItemView struct {
	NavItem
	Active bool `json:"active"`
}

// Navigation resolves routes against the sidebar entries.
type Navigation struct {
	shell ShellInfo
	items []NavItem
}

// NewNavigation builds a navigator over the dataset sidebar.
func NewNavigation(shell ShellInfo, items []NavItem) Navigation {
	return Navigation{shell: shell, items: items}
}

// Resolve maps a requested path to the route shown. Empty and home paths land
// on the revenue page.
func (n Navigation) Resolve(path string) (string, error) {
	path = strings.TrimRight(strings.TrimSpace(path), "/")
	if path == "" || path == n.shell.Home {
		return n.shell.Landing, nil
	}
	for _, item := range n.items {
		if item.Path == path {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownRoute, path)
}

// Items marks the active entries for route.
func (n Navigation) Items(route string) []NavItemView {
	out := make([]NavItemView, len(n.items))
	for i, item := range n.items {
		out[i] = NavItemView{NavItem: item, Active: IsActive(route, item.Path, n.shell.Home)}
	}
	return out
}

// HasContent reports whether route renders the revenue widgets.
func (n Navigation) HasContent(route string) bool {
	return route == n.shell.Landing
}

// Title returns the page heading for route.
func (n Navigation) Title(route string) string {
	if n.HasContent(route) {
		return RevenueTitle
	}
	for _, item := range n.items {
		if item.Path == route {
			return item.Name
		}
	}
	return n.shell.Title
}
