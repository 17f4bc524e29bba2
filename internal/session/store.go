package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/dachuang-plat/dcctl/internal/model"
)

// AuthAPI 会话存储依赖的认证接口面，由 internal/api 实现，
// 测试里用假实现替换。
type AuthAPI interface {
	Login(ctx context.Context, employeeID, password, role string) (*model.LoginData, error)
	Logout(ctx context.Context) error
	Profile(ctx context.Context) (*model.User, error)
}

// Store 会话的唯一属主：token、用户、角色元数据的内存态加
// 持久化，登录/登出/拉取个人信息都从这里走。
type Store struct {
	mu      sync.RWMutex
	storage Storage
	auth    AuthAPI
	logger  *zap.SugaredLogger

	token    string
	user     *model.User
	roleInfo *model.RoleInfo
}

func NewStore(storage Storage, auth AuthAPI, logger *zap.SugaredLogger) *Store {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Store{storage: storage, auth: auth, logger: logger}
}

// Init 从持久化存储恢复上次会话的局部状态（token、角色元数据），
// 用户信息要等下一次 FetchProfile 补全。
func (s *Store) Init() error {
	token, err := s.storage.Get(KeyToken)
	if err != nil {
		return errors.Wrap(err, "restore token")
	}
	roleInfoJSON, err := s.storage.Get(KeyRoleInfo)
	if err != nil {
		return errors.Wrap(err, "restore role info")
	}
	var roleInfo *model.RoleInfo
	if roleInfoJSON != "" {
		roleInfo = &model.RoleInfo{}
		if err := json.Unmarshal([]byte(roleInfoJSON), roleInfo); err != nil {
			// 角色元数据损坏不阻断启动，下次拉取个人信息会重写。
			s.logger.Warnw("discard malformed role info", "err", err)
			roleInfo = nil
		}
	}
	s.mu.Lock()
	s.token = token
	s.roleInfo = roleInfo
	s.mu.Unlock()
	return nil
}

// Login 调登录接口，成功后把 token、refresh token、规范化后的
// 用户和角色元数据一次性写入持久化存储。失败时不留任何部分
// 写入，之前的会话原样保留。
func (s *Store) Login(ctx context.Context, employeeID, password, role string) error {
	data, err := s.auth.Login(ctx, employeeID, password, role)
	if err != nil {
		return err
	}
	if data == nil || data.AccessToken == "" {
		return errors.New("login response missing access token")
	}

	user := data.User
	roleValue := ""
	var roleInfo *model.RoleInfo
	if user != nil {
		roleValue = normalizeRoleValue(user)
		roleInfo = user.RoleInfo
	}
	roleInfoJSON := ""
	if roleInfo != nil {
		b, err := json.Marshal(roleInfo)
		if err != nil {
			return errors.Wrap(err, "encode role info")
		}
		roleInfoJSON = string(b)
	}

	values := map[string]string{
		KeyToken:        data.AccessToken,
		KeyRefreshToken: data.RefreshToken,
		KeyUserRole:     roleValue,
		KeyRoleInfo:     roleInfoJSON,
	}
	if err := s.storage.SetMany(values); err != nil {
		return errors.Wrap(err, "persist session")
	}

	s.mu.Lock()
	s.token = data.AccessToken
	s.user = user
	s.roleInfo = roleInfo
	s.mu.Unlock()
	return nil
}

// Logout 尽力调一次登出接口，网络失败只记日志——本地登出必须
// 永远成功。之后无条件清空内存态和全部持久化键。
func (s *Store) Logout(ctx context.Context) error {
	if err := s.auth.Logout(ctx); err != nil {
		s.logger.Warnw("logout request failed, clearing local session anyway", "err", err)
	}
	s.reset()
	return errors.Wrap(s.storage.Del(SessionKeys()...), "clear session")
}

// FetchProfile 拉取并落库当前用户信息。失败按会话失效处理：
// 清空全部会话状态后原样上抛，调用方（导航层）据此跳登录页。
func (s *Store) FetchProfile(ctx context.Context) error {
	user, err := s.auth.Profile(ctx)
	if err != nil {
		s.reset()
		if delErr := s.storage.Del(SessionKeys()...); delErr != nil {
			s.logger.Errorw("clear session after profile failure", "err", delErr)
		}
		return err
	}

	roleValue := normalizeRoleValue(user)
	roleInfoJSON := ""
	if user.RoleInfo != nil {
		b, err := json.Marshal(user.RoleInfo)
		if err != nil {
			return errors.Wrap(err, "encode role info")
		}
		roleInfoJSON = string(b)
	}
	if err := s.storage.SetMany(map[string]string{
		KeyUserRole: roleValue,
		KeyRoleInfo: roleInfoJSON,
	}); err != nil {
		return errors.Wrap(err, "persist role")
	}

	s.mu.Lock()
	s.user = user
	s.roleInfo = user.RoleInfo
	s.mu.Unlock()
	return nil
}

// NormalizeRole 把用户角色的小写形式无条件写入 user_role 键，
// 但只在角色属于内置枚举时收窄 user.Role 本身。这种不对称是
// 有意的：服务端自定义角色不改客户端也能工作，内置角色则拿到
// 强类型值。
func (s *Store) NormalizeRole(user *model.User) error {
	value := normalizeRoleValue(user)
	if value == "" {
		return nil
	}
	return errors.Wrap(s.storage.Set(KeyUserRole, value), "persist role")
}

func normalizeRoleValue(user *model.User) string {
	raw := string(user.Role)
	if raw == "" {
		return ""
	}
	code, known := model.ParseRole(raw)
	if known {
		user.Role = code
	}
	return string(code)
}

func (s *Store) reset() {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.roleInfo = nil
	s.mu.Unlock()
}

// IsAuthenticated 只看持久化 token 是否存在。
func (s *Store) IsAuthenticated() bool {
	token, err := s.storage.Get(KeyToken)
	return err == nil && token != ""
}

// Role 当前持久化的角色字符串（始终为小写形式）。
func (s *Store) Role() string {
	role, err := s.storage.Get(KeyUserRole)
	if err != nil {
		return ""
	}
	return role
}

// User 内存中的用户信息，未拉取过时为 nil。
func (s *Store) User() *model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// RoleInfo 已解析的角色元数据，可能为 nil。
func (s *Store) RoleInfo() *model.RoleInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.roleInfo
}

// TokenExpired 本地检查存储的 access token 是否已过期。只解码
// exp 声明不验签——签名归服务端验证，这里仅用于提前提示重新
// 登录。无 token 或无法解析时返回 true。
func (s *Store) TokenExpired() bool {
	token, err := s.storage.Get(KeyToken)
	if err != nil || token == "" {
		return true
	}
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
