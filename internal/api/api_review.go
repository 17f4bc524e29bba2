package api

import (
	"context"
	"fmt"

	"github.com/dachuang-plat/dcctl/internal/client"
	"github.com/dachuang-plat/dcctl/internal/model"
)

// Reviews 审核相关接口（立项/中期/结题的各级审核）
type Reviews struct {
	client *client.Client
}

func NewReviews(c *client.Client) *Reviews {
	return &Reviews{client: c}
}

// Pending 当前用户的待办审核任务。
func (r *Reviews) Pending(ctx context.Context, params map[string]string) (*model.Page[model.Review], error) {
	return send[*model.Page[model.Review]](ctx, r.client, &client.Request{
		URL:    "/reviews/pending/",
		Params: params,
	})
}

// Submit 提交审核结论（通过/驳回），状态流转由服务端的流程
// 引擎完成，客户端只发动作。
func (r *Reviews) Submit(ctx context.Context, reviewID int64, action *model.ReviewAction) error {
	return sendNoData(ctx, r.client, &client.Request{
		URL:    fmt.Sprintf("/reviews/%d/review/", reviewID),
		Method: "POST",
		Data:   action,
	})
}

// RejectTargets 驳回时可选择的回退节点。
func (r *Reviews) RejectTargets(ctx context.Context, reviewID int64) ([]model.RejectTarget, error) {
	return send[[]model.RejectTarget](ctx, r.client, &client.Request{
		URL: fmt.Sprintf("/reviews/%d/reject-targets/", reviewID),
	})
}

// PendingCounts 各阶段待审数量统计。
func (r *Reviews) PendingCounts(ctx context.Context) (map[string]int, error) {
	return send[map[string]int](ctx, r.client, &client.Request{
		URL: "/reviews/statistics/pending-counts/",
	})
}
