// Package api contains the typed endpoint wrappers of the platform
// REST surface. Each wrapper builds a client.Request, sends it, checks
// the business envelope and binds data — page code never touches raw
// transport fields.
package api

import (
	"context"

	"github.com/dachuang-plat/dcctl/internal/client"
)

// send 发请求、校验业务码并把 data 解码成 T。
func send[T any](ctx context.Context, c *client.Client, req *client.Request) (T, error) {
	var out T
	env, err := c.Send(ctx, req)
	if err != nil {
		return out, err
	}
	if err := env.Err(); err != nil {
		return out, err
	}
	if err := env.Bind(&out); err != nil {
		return out, err
	}
	return out, nil
}

// sendNoData 用于只关心操作结果、不需要 data 的写接口。
func sendNoData(ctx context.Context, c *client.Client, req *client.Request) error {
	env, err := c.Send(ctx, req)
	if err != nil {
		return err
	}
	return env.Err()
}
