package client

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeError_StatusTable(t *testing.T) {
	tests := []struct {
		status  int
		message string
	}{
		{401, "登录已过期，请重新登录"},
		{403, "没有权限访问"},
		{404, "请求的资源不存在"},
		{500, "服务器错误"},
	}
	for _, tt := range tests {
		apiErr := normalizeError(tt.status, nil, "/projects/")
		assert.Equal(t, tt.message, apiErr.Message, "status %d", tt.status)
		assert.Equal(t, tt.status, apiErr.Status)
	}
}

func TestNormalizeError_401IsSessionExpired(t *testing.T) {
	apiErr := normalizeError(401, nil, "/auth/profile/")
	assert.True(t, errors.Is(apiErr, ErrSessionExpired))
}

func TestNormalizeErrorBody_MessageWithErrorsList(t *testing.T) {
	body := []byte(`{"message":"参数错误","errors":["标题不能为空","成员超出上限"]}`)
	got := normalizeErrorBody(body, false)
	assert.Equal(t, "参数错误: 标题不能为空; 成员超出上限", got)
}

func TestNormalizeErrorBody_MessageWithErrorsMap(t *testing.T) {
	body := []byte(`{"message":"校验失败","errors":{"email":["格式不正确"],"phone":["长度不足"]}}`)
	got := normalizeErrorBody(body, false)
	assert.Equal(t, "校验失败: 邮箱：格式不正确; 手机号：长度不足", got)
}

func TestNormalizeErrorBody_BareFieldMapKeepsDocumentOrder(t *testing.T) {
	// 字段顺序必须与服务端返回一致，不能被 map 打乱
	body := []byte(`{"value":["This field must be unique."],"label":["required"]}`)
	got := normalizeErrorBody(body, true)
	assert.Equal(t, "代码：This field must be unique.; 显示名称：required", got)
}

func TestNormalizeErrorBody_BareFieldMapBaseLabels(t *testing.T) {
	body := []byte(`{"employee_id":["该学号已注册"],"password":["过于简单"]}`)
	got := normalizeErrorBody(body, false)
	assert.Equal(t, "学号/工号：该学号已注册; 密码：过于简单", got)
}

func TestNormalizeErrorBody_UnknownFieldFallsBackToKey(t *testing.T) {
	body := []byte(`{"budget":["必须为正数"]}`)
	got := normalizeErrorBody(body, false)
	assert.Equal(t, "budget：必须为正数", got)
}

func TestNormalizeErrorBody_NonFieldErrorsHasNoPrefix(t *testing.T) {
	body := []byte(`{"non_field_errors":["不允许重复提交"]}`)
	got := normalizeErrorBody(body, false)
	assert.Equal(t, "不允许重复提交", got)
}

func TestNormalizeErrorBody_DetailOnly(t *testing.T) {
	body := []byte(`{"detail":"认证凭据未提供"}`)
	got := normalizeErrorBody(body, false)
	assert.Equal(t, "认证凭据未提供", got)
}

func TestNormalizeErrorBody_UnknownShape(t *testing.T) {
	for _, body := range [][]byte{
		[]byte(`["boom"]`),
		[]byte(`{"foo":"bar"}`),
		[]byte(`not json`),
		nil,
	} {
		got := normalizeErrorBody(body, false)
		assert.Equal(t, "请求失败", got)
	}
}

func TestNormalizeErrorBody_DictUniqueSetMessage(t *testing.T) {
	body := []byte(`{"non_field_errors":["The fields dict_type, value must make a unique set."]}`)
	got := normalizeErrorBody(body, true)
	assert.Equal(t, "字典类型与代码已存在，不能重复", got)

	// 同一文案在非字典接口上不做替换
	got = normalizeErrorBody(body, false)
	assert.Equal(t, "The fields dict_type, value must make a unique set.", got)
}

func TestNormalizeMessage_DictWordSubstitution(t *testing.T) {
	got := normalizeMessage("dict_type with this value already exists", true)
	assert.Equal(t, "字典类型 with this 代码 already exists", got)

	// 词边界：evaluate 不应被替换
	got = normalizeMessage("evaluate later", true)
	assert.Equal(t, "evaluate later", got)
}

func TestIsDictionaryRequest(t *testing.T) {
	assert.True(t, isDictionaryRequest("/dictionaries/items/3/"))
	assert.False(t, isDictionaryRequest("/projects/3/"))
}

func TestNormalizeErrorBody_AlwaysSingleString(t *testing.T) {
	// 四种错误体形态都必须产出非空字符串
	bodies := [][]byte{
		[]byte(`{"message":"失败","errors":["a"]}`),
		[]byte(`{"message":"失败","errors":{"email":["b"]}}`),
		[]byte(`{"email":["c"]}`),
		[]byte(`{"detail":"d"}`),
	}
	for _, body := range bodies {
		got := normalizeErrorBody(body, false)
		require.NotEmpty(t, got)
	}
}

func TestDecodeOrderedObject(t *testing.T) {
	entries, ok := decodeOrderedObject([]byte(`{"b":1,"a":[2],"c":"x"}`))
	require.True(t, ok)
	require.Len(t, entries, 3)
	assert.Equal(t, "b", entries[0].key)
	assert.Equal(t, "a", entries[1].key)
	assert.Equal(t, "c", entries[2].key)

	_, ok = decodeOrderedObject([]byte(`[1,2]`))
	assert.False(t, ok)
}

func TestFlattenValue(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, flattenValue([]byte(`["a",["b","c"]]`)))
	assert.Equal(t, []string{"5"}, flattenValue([]byte(`5`)))
	assert.Equal(t, []string{"x"}, flattenValue([]byte(`"x"`)))
	assert.Nil(t, flattenValue([]byte(`null`)))
}
