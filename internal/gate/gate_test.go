package gate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dachuang-plat/dcctl/internal/model"
)

type fakeSession struct {
	authed   bool
	role     string
	roleInfo *model.RoleInfo
}

func (f *fakeSession) IsAuthenticated() bool     { return f.authed }
func (f *fakeSession) Role() string              { return f.role }
func (f *fakeSession) RoleInfo() *model.RoleInfo { return f.roleInfo }

func TestDefaultRoute_FallbackTable(t *testing.T) {
	g := New(nil)
	tests := []struct {
		role string
		want string
	}{
		{"student", "/establishment/apply"},
		{"level1_admin", "/level1-admin/statistics"},
		{"level2_admin", "/level2-admin/projects"},
		{"admin", "/level2-admin/projects"},
		{"teacher", "/teacher/dashboard"},
		{"expert", "/teacher/dashboard"},
		{"totally_unknown", "/establishment/apply"},
	}
	for _, tt := range tests {
		got := g.DefaultRoute(&fakeSession{authed: true, role: tt.role})
		assert.Equal(t, tt.want, got, "role %s", tt.role)
	}
}

func TestDefaultRoute_RoleInfoTakesPriority(t *testing.T) {
	g := New(nil)
	sess := &fakeSession{
		authed:   true,
		role:     "student",
		roleInfo: &model.RoleInfo{DefaultRoute: "/custom/landing"},
	}
	assert.Equal(t, "/custom/landing", g.DefaultRoute(sess))
}

func TestDefaultRoute_ScopeDimensionFallsBackToCollegeAdmin(t *testing.T) {
	g := New(nil)
	// 带管理范围的自定义角色落到院级管理员页
	sess := &fakeSession{
		authed:   true,
		role:     "research_office",
		roleInfo: &model.RoleInfo{Code: "research_office", ScopeDimension: "college"},
	}
	assert.Equal(t, "/level2-admin/projects", g.DefaultRoute(sess))
}

func TestDefaultRoute_CustomTable(t *testing.T) {
	g := New(map[string]string{
		"student":      "/home",
		"level1_admin": "/users/students",
	})
	assert.Equal(t, "/users/students", g.DefaultRoute(&fakeSession{authed: true, role: "level1_admin"}))
}

func TestDecide_UnauthenticatedRedirectsToLogin(t *testing.T) {
	g := New(nil)
	page := Page{Path: "/level1-admin/statistics", RequiresAuth: true, Role: "level1_admin"}
	assert.Equal(t, RedirectLogin, g.Decide(&fakeSession{}, page))
}

func TestDecide_LoginPageWhileAuthenticated(t *testing.T) {
	g := New(nil)
	page := Page{Path: LoginRoute}
	assert.Equal(t, RedirectDefault, g.Decide(&fakeSession{authed: true, role: "student"}, page))
	assert.Equal(t, Allow, g.Decide(&fakeSession{}, page))
}

func TestDecide_RoleMismatchIsStrict(t *testing.T) {
	g := New(nil)
	page := Page{Path: "/establishment/apply", RequiresAuth: true, Role: "student"}
	assert.Equal(t, Allow, g.Decide(&fakeSession{authed: true, role: "student"}, page))
	assert.Equal(t, RedirectLogin, g.Decide(&fakeSession{authed: true, role: "teacher"}, page))
	// 管理员等价族只对声明 admin 要求的页面生效
	assert.Equal(t, RedirectLogin, g.Decide(&fakeSession{authed: true, role: "level1_admin"}, page))
}

func TestDecide_AdminFamilyIsInterchangeable(t *testing.T) {
	g := New(nil)
	page := Page{Path: "/admin/funds", RequiresAuth: true, Role: "admin"}

	for _, role := range []string{"admin", "level1_admin", "level2_admin"} {
		assert.Equal(t, Allow, g.Decide(&fakeSession{authed: true, role: role}, page), "role %s", role)
	}

	// scope_dimension 标记的自定义角色同样进入等价族
	withScope := &fakeSession{
		authed:   true,
		role:     "research_office",
		roleInfo: &model.RoleInfo{ScopeDimension: "college"},
	}
	assert.Equal(t, Allow, g.Decide(withScope, page))

	assert.Equal(t, RedirectLogin, g.Decide(&fakeSession{authed: true, role: "student"}, page))
}
