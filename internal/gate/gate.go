// Package gate decides page reachability from resolved session state:
// whether a requested page is allowed for the current role, and where
// to land right after login. It only consumes what the session store
// exposes — authenticated bit, role string, role metadata.
package gate

import "github.com/dachuang-plat/dcctl/internal/model"

// Session 导航门需要的会话只读视角，由 session.Store 实现。
type Session interface {
	IsAuthenticated() bool
	Role() string
	RoleInfo() *model.RoleInfo
}

// LoginRoute 登录页路径
const LoginRoute = "/login"

// DefaultRoutes 内置角色的默认落地页。历史版本的路由表在个别
// 角色上有出入，这里是最近一版的行为；整表可在构造时替换。
func DefaultRoutes() map[string]string {
	return map[string]string{
		string(model.RoleStudent):     "/establishment/apply",
		string(model.RoleLevel1Admin): "/level1-admin/statistics",
		string(model.RoleLevel2Admin): "/level2-admin/projects",
		string(model.RoleAdmin):       "/level2-admin/projects",
		string(model.RoleExpert):      "/teacher/dashboard",
		string(model.RoleTeacher):     "/teacher/dashboard",
	}
}

// Decision 访问判定结果
type Decision int

const (
	Allow Decision = iota
	RedirectLogin
	RedirectDefault // 已登录访问登录页，跳角色默认落地页
)

// Page 页面的访问声明
type Page struct {
	Path         string
	RequiresAuth bool
	Role         string // 要求的角色，空串表示不限角色
}

// Gate 基于角色的导航门
type Gate struct {
	defaults map[string]string
}

// New 构造导航门。routes 为 nil 时使用内置默认表。
func New(routes map[string]string) *Gate {
	if routes == nil {
		routes = DefaultRoutes()
	}
	return &Gate{defaults: routes}
}

// DefaultRoute 登录后的默认跳转。优先取角色元数据里的
// default_route；缺失时按角色回退，带管理范围的自定义角色落到
// 院级管理员页，未知角色落到学生默认页。
func (g *Gate) DefaultRoute(sess Session) string {
	info := sess.RoleInfo()
	if info != nil && info.DefaultRoute != "" {
		return info.DefaultRoute
	}
	if route, ok := g.defaults[sess.Role()]; ok {
		return route
	}
	if info != nil && info.ScopeDimension != "" {
		return g.defaults[string(model.RoleLevel2Admin)]
	}
	return g.defaults[string(model.RoleStudent)]
}

// Decide 判定会话能否进入页面。
func (g *Gate) Decide(sess Session, page Page) Decision {
	authed := sess.IsAuthenticated()
	if page.RequiresAuth && !authed {
		return RedirectLogin
	}
	if page.Path == LoginRoute && authed {
		return RedirectDefault
	}
	if page.Role != "" && authed && !g.roleSatisfies(sess, page.Role) {
		return RedirectLogin
	}
	return Allow
}

// roleSatisfies 严格角色匹配，唯一例外：声明 admin 要求的页面
// 对管理员等价族（校级、院级、通用 admin、带 scope_dimension 的
// 自定义角色）互通。
func (g *Gate) roleSatisfies(sess Session, required string) bool {
	role := sess.Role()
	if role == required {
		return true
	}
	if required != string(model.RoleAdmin) {
		return false
	}
	switch role {
	case string(model.RoleLevel1Admin), string(model.RoleLevel2Admin):
		return true
	}
	info := sess.RoleInfo()
	return info != nil && info.ScopeDimension != ""
}
