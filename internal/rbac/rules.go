package rbac

// Simple default policy. Expand as needed.
var RolePermissions = map[string][]string{
	"student": {
		"homework:view",
		"session:take",
		"daily:answer",
		"shop:use",
		"vocab:manage",
	},
	"teacher": {
		"homework:create",
		"homework:view",
		"homework:delete_own",
		"homework:share",
		"submissions:view",
		"session:take",
		"daily:answer",
		"shop:use",
		"vocab:manage",
	},
}
