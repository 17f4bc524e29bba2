package api

import (
	"context"

	"github.com/dachuang-plat/dcctl/internal/client"
	"github.com/dachuang-plat/dcctl/internal/model"
	"github.com/dachuang-plat/dcctl/internal/validation"
)

// Auth 认证相关接口
type Auth struct {
	client *client.Client
}

func NewAuth(c *client.Client) *Auth {
	return &Auth{client: c}
}

type loginRequest struct {
	EmployeeId string `json:"employee_id" validate:"required"`
	Password   string `json:"password" validate:"required"`
	// Role 登录角色提示，部分部署形态不需要。
	Role string `json:"role,omitempty"`
}

type changePasswordRequest struct {
	OldPassword     string `json:"old_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=NewPassword"`
}

// Login 用户登录
func (a *Auth) Login(ctx context.Context, employeeID, password, role string) (*model.LoginData, error) {
	body := loginRequest{EmployeeId: employeeID, Password: password, Role: role}
	if err := validation.Struct(body); err != nil {
		return nil, err
	}
	return send[*model.LoginData](ctx, a.client, &client.Request{
		URL:    "/auth/login/",
		Method: "POST",
		Data:   body,
	})
}

// Logout 用户登出
func (a *Auth) Logout(ctx context.Context) error {
	return sendNoData(ctx, a.client, &client.Request{
		URL:    "/auth/logout/",
		Method: "POST",
	})
}

// Profile 获取当前用户信息
func (a *Auth) Profile(ctx context.Context) (*model.User, error) {
	return send[*model.User](ctx, a.client, &client.Request{
		URL: "/auth/profile/",
	})
}

// UpdateProfile 更新当前用户信息，fields 为要变更的字段子集。
func (a *Auth) UpdateProfile(ctx context.Context, fields map[string]any) (*model.User, error) {
	return send[*model.User](ctx, a.client, &client.Request{
		URL:    "/auth/profile/",
		Method: "PUT",
		Data:   fields,
	})
}

// ChangePassword 修改密码
func (a *Auth) ChangePassword(ctx context.Context, oldPassword, newPassword, confirmPassword string) error {
	body := changePasswordRequest{
		OldPassword:     oldPassword,
		NewPassword:     newPassword,
		ConfirmPassword: confirmPassword,
	}
	if err := validation.Struct(body); err != nil {
		return err
	}
	return sendNoData(ctx, a.client, &client.Request{
		URL:    "/auth/change-password/",
		Method: "POST",
		Data:   body,
	})
}

// Roles 获取全部角色（含用户数等统计）。
func (a *Auth) Roles(ctx context.Context, params map[string]string) ([]model.RoleInfo, error) {
	return send[[]model.RoleInfo](ctx, a.client, &client.Request{
		URL:    "/auth/roles/",
		Params: params,
	})
}

// SimpleRoles 获取角色简化列表（下拉选择等场景）。
func (a *Auth) SimpleRoles(ctx context.Context) ([]model.RoleInfo, error) {
	return send[[]model.RoleInfo](ctx, a.client, &client.Request{
		URL: "/auth/roles/simple/",
	})
}
