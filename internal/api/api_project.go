package api

import (
	"context"
	"fmt"
	"io"

	"github.com/dachuang-plat/dcctl/internal/client"
	"github.com/dachuang-plat/dcctl/internal/model"
)

// Projects 项目相关接口：立项申请、我的项目、结题流程、导出。
type Projects struct {
	client *client.Client
}

func NewProjects(c *client.Client) *Projects {
	return &Projects{client: c}
}

// List 项目列表（管理端视角），params 为过滤条件。
func (p *Projects) List(ctx context.Context, params map[string]string) (*model.Page[model.Project], error) {
	return send[*model.Page[model.Project]](ctx, p.client, &client.Request{
		URL:    "/projects/",
		Params: params,
	})
}

// MyProjects 当前用户参与的项目。
func (p *Projects) MyProjects(ctx context.Context) ([]model.Project, error) {
	return send[[]model.Project](ctx, p.client, &client.Request{
		URL: "/projects/my-projects/",
	})
}

// Detail 项目详情。
func (p *Projects) Detail(ctx context.Context, id int64) (*model.Project, error) {
	return send[*model.Project](ctx, p.client, &client.Request{
		URL: fmt.Sprintf("/projects/%d/", id),
	})
}

// CreateApplication 提交立项申请。
func (p *Projects) CreateApplication(ctx context.Context, form map[string]any) (*model.Project, error) {
	return send[*model.Project](ctx, p.client, &client.Request{
		URL:    "/projects/application/create/",
		Method: "POST",
		Data:   form,
	})
}

// Withdraw 撤回立项申请。
func (p *Projects) Withdraw(ctx context.Context, id int64) error {
	return sendNoData(ctx, p.client, &client.Request{
		URL:    fmt.Sprintf("/projects/application/%d/withdraw/", id),
		Method: "POST",
	})
}

// Achievements 项目成果列表。
func (p *Projects) Achievements(ctx context.Context, id int64) ([]model.Achievement, error) {
	return send[[]model.Achievement](ctx, p.client, &client.Request{
		URL: fmt.Sprintf("/projects/%d/achievements/", id),
	})
}

// AddAchievement 提交项目成果。带附件时走 multipart 上传。
func (p *Projects) AddAchievement(ctx context.Context, id int64, fields map[string]string, fileName string, file io.Reader) (*model.Achievement, error) {
	req := &client.Request{
		URL:    fmt.Sprintf("/projects/%d/add-achievement/", id),
		Method: "POST",
		Form:   fields,
	}
	if file != nil {
		req.Files = []client.File{{Param: "file", Name: fileName, Reader: file}}
	}
	return send[*model.Achievement](ctx, p.client, req)
}

// ExportDoc 下载项目申报书（服务端生成的 Word/PDF，原始字节）。
func (p *Projects) ExportDoc(ctx context.Context, id int64) ([]byte, error) {
	return p.client.Download(ctx, &client.Request{
		URL: fmt.Sprintf("/projects/%d/export-doc/", id),
	})
}

// Certificate 下载结题证书。
func (p *Projects) Certificate(ctx context.Context, id int64) ([]byte, error) {
	return p.client.Download(ctx, &client.Request{
		URL: fmt.Sprintf("/projects/%d/certificate/", id),
	})
}

// ClosurePending 待结题项目。
func (p *Projects) ClosurePending(ctx context.Context) ([]model.Project, error) {
	return send[[]model.Project](ctx, p.client, &client.Request{
		URL: "/projects/closure/pending/",
	})
}

// CreateClosure 提交结题申请。
func (p *Projects) CreateClosure(ctx context.Context, id int64, form map[string]any) error {
	return sendNoData(ctx, p.client, &client.Request{
		URL:    fmt.Sprintf("/projects/closure/%d/create/", id),
		Method: "POST",
		Data:   form,
	})
}

// RevokeClosure 撤回结题申请。
func (p *Projects) RevokeClosure(ctx context.Context, id int64) error {
	return sendNoData(ctx, p.client, &client.Request{
		URL:    fmt.Sprintf("/projects/%d/revoke-closure/", id),
		Method: "POST",
	})
}
