package nav

import (
	"testing"

	"github.com/Veraticus/dex/internal/model"
	"github.com/stretchr/testify/assert"
)

func routes(items []Item) []Route {
	out := make([]Route, len(items))
	for i, it := range items {
		out[i] = it.Route
	}
	return out
}

func TestItems(t *testing.T) {
	tests := []struct {
		user        *model.User
		name        string
		wantRoutes  []Route
		wantProfile Item
	}{
		{
			name:       "signed out",
			user:       nil,
			wantRoutes: []Route{RouteHome, RouteRegister, RouteLogin, RouteContact},
		},
		{
			name:        "signed in without profile",
			user:        &model.User{ID: "u1"},
			wantRoutes:  []Route{RouteHome, RouteProfile, RouteLogout, RouteContact},
			wantProfile: Item{Route: RouteProfile, Label: "Profile", Avatar: model.DefaultAvatar, Path: "/profile"},
		},
		{
			name:        "signed in with profile",
			user:        &model.User{ID: "u1", DisplayName: "Ash", PhotoURL: "https://example.com/ash.png"},
			wantRoutes:  []Route{RouteHome, RouteProfile, RouteLogout, RouteContact},
			wantProfile: Item{Route: RouteProfile, Label: "Ash", Avatar: "https://example.com/ash.png", Path: "/profile"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items := Items(tt.user)
			assert.Equal(t, tt.wantRoutes, routes(items))
			if tt.user != nil {
				assert.Equal(t, tt.wantProfile, items[1])
			}
		})
	}
}
