package model

import "strings"

// RoleCode 角色代码。平台内置角色见下方常量；服务端可以定义
// 额外的自定义角色，此时 RoleCode 保存原始字符串。
type RoleCode string

const (
	RoleStudent     RoleCode = "student"
	RoleLevel1Admin RoleCode = "level1_admin" // 一级管理员（校级）
	RoleLevel2Admin RoleCode = "level2_admin" // 二级管理员（院级）
	RoleTeacher     RoleCode = "teacher"
	RoleExpert      RoleCode = "expert"
	RoleAdmin       RoleCode = "admin" // 历史遗留的通用管理员
)

var knownRoles = map[RoleCode]struct{}{
	RoleStudent:     {},
	RoleLevel1Admin: {},
	RoleLevel2Admin: {},
	RoleTeacher:     {},
	RoleExpert:      {},
	RoleAdmin:       {},
}

// ParseRole lower-cases s and reports whether it names a built-in role.
// The lower-cased code is returned either way so callers can persist it.
func ParseRole(s string) (RoleCode, bool) {
	code := RoleCode(strings.ToLower(s))
	_, ok := knownRoles[code]
	return code, ok
}

// IsKnown reports whether r is one of the built-in roles.
func (r RoleCode) IsKnown() bool {
	_, ok := knownRoles[r]
	return ok
}

// User 用户信息
type User struct {
	Id          int64    `json:"id"`
	EmployeeId  string   `json:"employee_id"` // 学号/工号
	Username    string   `json:"username"`
	RealName    string   `json:"real_name,omitempty"`
	Email       string   `json:"email"`
	Role        RoleCode `json:"role"`
	IsExpert    bool     `json:"is_expert,omitempty"`
	ExpertScope string   `json:"expert_scope,omitempty"`
	College     string   `json:"college,omitempty"`
	Department  string   `json:"department,omitempty"`
	Phone       string   `json:"phone,omitempty"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`

	// RoleInfo 由服务端在登录/个人信息接口上附带返回，可能缺失。
	RoleInfo *RoleInfo `json:"role_info,omitempty"`
}

// RoleInfo 角色元数据，登录或拉取个人信息时解析一次。
// DefaultRoute 驱动登录后的默认跳转；ScopeDimension 非空表示
// 该角色带有某个组织维度上的管理范围。
type RoleInfo struct {
	Id             int64  `json:"id"`
	Code           string `json:"code"`
	Name           string `json:"name"`
	DefaultRoute   string `json:"default_route"`
	ScopeDimension string `json:"scope_dimension,omitempty"`
}

// LoginData 登录接口 data 字段的结构
type LoginData struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         *User  `json:"user"`
}
