package client

import (
	"context"

	"github.com/pkg/errors"

	"github.com/dachuang-plat/dcctl/pkg/retry"
)

// SendWithRetry 对单次调用启用重试，仅在传输层失败（ErrNetwork）
// 时重试。默认不重试是契约的一部分；字典缓存刷新这类幂等读
// 才会用到这条路径。
func (c *Client) SendWithRetry(ctx context.Context, req *Request, opts ...retry.Option) (*Envelope, error) {
	var env *Envelope
	opts = append(opts, retry.WithRetryIf(func(err error) bool {
		return errors.Is(err, ErrNetwork)
	}))
	err := retry.Do(ctx, func(ctx context.Context) error {
		var sendErr error
		env, sendErr = c.Send(ctx, req)
		return sendErr
	}, opts...)
	if err != nil {
		return nil, err
	}
	return env, nil
}
