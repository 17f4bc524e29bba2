// Package session owns the authentication/identity lifecycle: the
// persisted session keys, the storage backends they live in, and the
// store that mutates them. Nothing else writes these keys; the
// transport is allowed to clear them (401) through SessionSource.
package session

// 持久化会话键。四个键要么一起写入（登录），要么一起清除
//（登出 / 401 / 拉取个人信息失败），不允许只清一部分。
const (
	KeyToken        = "token"
	KeyRefreshToken = "refresh_token"
	KeyUserRole     = "user_role"
	KeyRoleInfo     = "role_info"
)

// SessionKeys 返回全部会话键，清理时必须整组使用。
func SessionKeys() []string {
	return []string{KeyToken, KeyRefreshToken, KeyUserRole, KeyRoleInfo}
}

// Storage 持久化键值存储。实现必须保证 SetMany 的原子性：
// 登录写入要么全部落盘要么全部不落。
type Storage interface {
	Get(key string) (string, error)
	Set(key, value string) error
	// SetMany 原子写入多个键。
	SetMany(values map[string]string) error
	// Del 删除给定键，键不存在不算错误。
	Del(keys ...string) error
}
