package model

// SessionScope separates the local sign-in shared by CLI invocations from
// bearer tokens handed out by the API.
type SessionScope string

// Session scopes.
const (
	ScopeLocal SessionScope = "local"
	ScopeAPI   SessionScope = "api"
)
