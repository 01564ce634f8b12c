// Package nav builds the navigation bar for the signed-in state.
package nav

import "github.com/Veraticus/dex/internal/model"

// Route identifies a navigation destination.
type Route string

// Routes.
const (
	RouteHome     Route = "home"
	RouteRegister Route = "register"
	RouteLogin    Route = "login"
	RouteProfile  Route = "profile"
	RouteLogout   Route = "logout"
	RouteContact  Route = "contact"
)

// Item is one navigation entry.
type Item struct {
	Route  Route  `json:"route"`
	Label  string `json:"label"`
	Avatar string `json:"avatar,omitempty"`
	Path   string `json:"path"`
}

// Items returns the entries for user, or for a signed-out visitor when user is nil.
func Items(user *model.User) []Item {
	items := []Item{{Route: RouteHome, Label: "Home", Path: "/"}}

	if user == nil {
		items = append(items,
			Item{Route: RouteRegister, Label: "Register", Path: "/register"},
			Item{Route: RouteLogin, Label: "Login", Path: "/login"},
		)
	} else {
		items = append(items,
			Item{Route: RouteProfile, Label: user.Label(), Avatar: user.Avatar(), Path: "/profile"},
			Item{Route: RouteLogout, Label: "Logout", Path: "/logout"},
		)
	}

	return append(items, Item{Route: RouteContact, Label: "Contact", Path: "/contact"})
}
