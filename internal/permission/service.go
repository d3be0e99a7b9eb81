// Package permission 维基权限检查
// 权限名沿用 wiki_ 前缀约定，按全局角色授予
package permission

// 维基权限名
const (
	PermView        = "wiki_view"
	PermCreate      = "wiki_create_article"
	PermEdit        = "wiki_edit_article"
	PermDelete      = "wiki_delete_article"
	// 查看软删除条目，随删除权限授予
	PermViewDeleted = "wiki_view_deleted"
)

// 角色等级常量
// 数值越大权限越高
const (
	RoleLevelAdmin   = 80 // admin 级别
	RoleLevelUser    = 10 // 普通用户级别
	RoleLevelUnknown = 0  // 未知角色的 fallback 值
)

// RoleLevelMap 角色名称到等级的映射
var RoleLevelMap = map[string]int{
	"admin": RoleLevelAdmin,
	"user":  RoleLevelUser,
}

// rolePermissions 角色到权限集合的映射
// 匿名请求（空角色）只有查看权限
var rolePermissions = map[string]map[string]bool{
	"admin": {
		PermView:        true,
		PermCreate:      true,
		PermEdit:        true,
		PermDelete:      true,
		PermViewDeleted: true,
	},
	"user": {
		PermView:   true,
		PermCreate: true,
		PermEdit:   true,
	},
	"": {
		PermView: true,
	},
}

// GetRoleLevel 获取角色的权限等级
// 如果角色不存在于映射中，返回 RoleLevelUnknown 作为 fallback
func GetRoleLevel(role string) int {
	if level, ok := RoleLevelMap[role]; ok {
		return level
	}
	return RoleLevelUnknown
}

// HasPermission 检查角色是否持有指定权限
// 未知角色按匿名处理
func HasPermission(role string, perm string) bool {
	perms, ok := rolePermissions[role]
	if !ok {
		perms = rolePermissions[""]
	}
	return perms[perm]
}

// IsGlobalAdmin 检查用户是否是全局管理员
// userRole: 来自 JWT 的用户角色
func IsGlobalAdmin(userRole string) bool {
	return userRole == "admin"
}

// CanViewDeleted 是否可以看到软删除的文章
func CanViewDeleted(role string) bool {
	return HasPermission(role, PermViewDeleted)
}
