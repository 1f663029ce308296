package auth

// Known OAuth scopes used by the API.
const (
	ScopeActivitiesRead  = "activities:read"
	ScopeActivitiesWrite = "activities:write"
	ScopeProfileRead     = "profile:read"
	ScopeProfileWrite    = "profile:write"
	ScopeCommunityRead   = "community:read"
	ScopeCommunityWrite  = "community:write"
)

// DefaultScopes are granted to every signed-in user.
var DefaultScopes = []string{
	ScopeActivitiesRead,
	ScopeActivitiesWrite,
	ScopeProfileRead,
	ScopeProfileWrite,
	ScopeCommunityRead,
	ScopeCommunityWrite,
}
