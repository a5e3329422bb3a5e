package rbac

// Simple default policy. Expand as needed.
var RolePermissions = map[string][]string{
	"viewer": {
		"survey:view",
		"dataset:view",
		"report:view",
	},
	"analyst": {
		"survey:*",
		"dataset:*",
		"report:view",
	},
	"admin": {
		"*", // everything
	},
}
