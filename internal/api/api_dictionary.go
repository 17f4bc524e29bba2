package api

import (
	"context"
	"fmt"

	"github.com/dachuang-plat/dcctl/internal/client"
	"github.com/dachuang-plat/dcctl/internal/model"
)

// Dictionaries 字典（服务端维护的枚举：学院列表、项目类别等）
type Dictionaries struct {
	client *client.Client
}

func NewDictionaries(c *client.Client) *Dictionaries {
	return &Dictionaries{client: c}
}

// ByCode 按编码取单个字典。
func (d *Dictionaries) ByCode(ctx context.Context, code string) (*model.DictionaryType, error) {
	return send[*model.DictionaryType](ctx, d.client, &client.Request{
		URL: fmt.Sprintf("/dictionaries/types/by-code/%s/", code),
	})
}

// Batch 批量取多个字典，键为字典编码。
func (d *Dictionaries) Batch(ctx context.Context, codes []string) (map[string]model.DictionaryType, error) {
	return send[map[string]model.DictionaryType](ctx, d.client, &client.Request{
		URL:    "/dictionaries/types/batch/",
		Method: "POST",
		Data:   map[string][]string{"codes": codes},
	})
}

// All 取全部字典数据。
func (d *Dictionaries) All(ctx context.Context) (map[string]model.DictionaryType, error) {
	return send[map[string]model.DictionaryType](ctx, d.client, &client.Request{
		URL: "/dictionaries/types/all/",
	})
}

// CreateItem 新建字典条目。
func (d *Dictionaries) CreateItem(ctx context.Context, item *model.DictionaryItem) (*model.DictionaryItem, error) {
	return send[*model.DictionaryItem](ctx, d.client, &client.Request{
		URL:    "/dictionaries/items/",
		Method: "POST",
		Data:   item,
	})
}

// UpdateItem 更新字典条目。
func (d *Dictionaries) UpdateItem(ctx context.Context, id int64, item *model.DictionaryItem) (*model.DictionaryItem, error) {
	return send[*model.DictionaryItem](ctx, d.client, &client.Request{
		URL:    fmt.Sprintf("/dictionaries/items/%d/", id),
		Method: "PATCH",
		Data:   item,
	})
}

// DeleteItem 删除字典条目。
func (d *Dictionaries) DeleteItem(ctx context.Context, id int64) error {
	return sendNoData(ctx, d.client, &client.Request{
		URL:    fmt.Sprintf("/dictionaries/items/%d/", id),
		Method: "DELETE",
	})
}
