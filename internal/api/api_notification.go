package api

import (
	"context"
	"fmt"

	"github.com/dachuang-plat/dcctl/internal/client"
	"github.com/dachuang-plat/dcctl/internal/model"
)

// Notifications 站内通知接口
type Notifications struct {
	client *client.Client
}

func NewNotifications(c *client.Client) *Notifications {
	return &Notifications{client: c}
}

// List 通知列表。
func (n *Notifications) List(ctx context.Context, params map[string]string) (*model.Page[model.Notification], error) {
	return send[*model.Page[model.Notification]](ctx, n.client, &client.Request{
		URL:    "/notifications/",
		Params: params,
	})
}

// UnreadCount 未读通知数。
func (n *Notifications) UnreadCount(ctx context.Context) (int, error) {
	data, err := send[map[string]int](ctx, n.client, &client.Request{
		URL: "/notifications/unread_count/",
	})
	if err != nil {
		return 0, err
	}
	return data["count"], nil
}

// MarkRead 标记单条已读。
func (n *Notifications) MarkRead(ctx context.Context, id int64) error {
	return sendNoData(ctx, n.client, &client.Request{
		URL:    fmt.Sprintf("/notifications/%d/mark_read/", id),
		Method: "POST",
	})
}

// MarkAllRead 全部标记已读。
func (n *Notifications) MarkAllRead(ctx context.Context) error {
	return sendNoData(ctx, n.client, &client.Request{
		URL:    "/notifications/mark-all-read/",
		Method: "POST",
	})
}
