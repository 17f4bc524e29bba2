package session

// Source 提供 transport 需要的会话视角：按请求读 token、401 时
// 整组清键。直接读持久化存储而不是 Store 的内存态，这样外部
// 进程更新过的会话也能立即生效。
type Source struct {
	storage Storage
}

func NewSource(storage Storage) *Source {
	return &Source{storage: storage}
}

func (s *Source) Token() string {
	token, err := s.storage.Get(KeyToken)
	if err != nil {
		return ""
	}
	return token
}

// Clear 清除全部会话键。transport 在 401 上调用，必须与 Store
// 的清理范围完全一致。
func (s *Source) Clear() error {
	return s.storage.Del(SessionKeys()...)
}
