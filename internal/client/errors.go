package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// 用户可见的固定错误文案
const (
	msgSessionExpired = "登录已过期，请重新登录"
	msgForbidden      = "没有权限访问"
	msgNotFound       = "请求的资源不存在"
	msgServerError    = "服务器错误"
	msgNetworkError   = "网络错误，请检查网络连接"
	msgRequestFailed  = "请求失败"

	msgDictDuplicate = "字典类型与代码已存在，不能重复"
)

// dictUniqueSetMessage 是后端序列化器对字典条目唯一约束的原文，
// 命中时整体替换为 msgDictDuplicate。
const dictUniqueSetMessage = "The fields dict_type, value must make a unique set."

var (
	// ErrNetwork 传输层失败：请求根本没有得到 HTTP 响应
	//（断网、DNS 失败、超时）。
	ErrNetwork = errors.New("network error")
	// ErrSessionExpired 会话过期（401），本地会话已被清除。
	ErrSessionExpired = errors.New("session expired")
)

// APIError 归一化后的接口错误。Message 永远是一条可直接展示的
// 单行文案，结构化的错误体不允许越过这一层。
type APIError struct {
	Status  int    // HTTP 状态码，传输层失败时为 0
	Code    int    // 业务信封里的 code，无信封时为 0
	Message string
	kind    error // 供 errors.Is 判别的哨兵
}

func (e *APIError) Error() string {
	return e.Message
}

func (e *APIError) Unwrap() error {
	return e.kind
}

type errorKind int

const (
	bodyUnknown errorKind = iota
	bodyMessage           // {message, errors?}
	bodyFieldMap          // 裸字段错误表 {field: [..], ...}
	bodyDetail            // {detail}
)

// fieldMessages 保留字段在原始 JSON 文档中的出现顺序。
// 服务端按字段声明顺序输出错误，拼出来的文案要与之一致，
// 所以不能用 map 承接。
type fieldMessages struct {
	field    string
	messages []string
}

type parsedError struct {
	kind    errorKind
	message string
	list    []string        // errors 为字符串列表时
	fields  []fieldMessages // errors 为字段表、或整个 body 即字段表时
	detail  string
}

// classifyErrorBody maps the heterogeneous server error bodies onto a
// closed set of variants. Unrecognized shapes become bodyUnknown.
func classifyErrorBody(body []byte) parsedError {
	entries, ok := decodeOrderedObject(body)
	if !ok {
		return parsedError{kind: bodyUnknown}
	}

	var message, detail string
	var errorsRaw json.RawMessage
	hasMessage := false
	for _, e := range entries {
		switch e.key {
		case "message":
			// message 键存在即走 message 分支，即便值不是字符串，
			// 此时文案退化为"请求失败"。
			hasMessage = true
			if s, ok := asString(e.value); ok {
				message = s
			}
		case "errors":
			errorsRaw = e.value
		case "detail":
			if s, ok := asString(e.value); ok {
				detail = s
			}
		}
	}

	if hasMessage {
		p := parsedError{kind: bodyMessage, message: message}
		switch {
		case len(errorsRaw) == 0:
		case isArray(errorsRaw):
			p.list = flattenValue(errorsRaw)
		default:
			if nested, ok := decodeOrderedObject(errorsRaw); ok {
				p.fields = toFieldMessages(nested)
			}
		}
		return p
	}

	// 标准 DRF 风格：body 本身就是字段错误表
	hasArray := false
	for _, e := range entries {
		if isArray(e.value) {
			hasArray = true
			break
		}
	}
	if hasArray {
		return parsedError{kind: bodyFieldMap, fields: toFieldMessages(entries), detail: detail}
	}
	if detail != "" {
		return parsedError{kind: bodyDetail, detail: detail}
	}
	return parsedError{kind: bodyUnknown}
}

// normalizeErrorBody renders a parsed error variant into the single
// user-facing string. dictReq enables the dictionary-endpoint label
// and message substitutions.
func normalizeErrorBody(body []byte, dictReq bool) string {
	p := classifyErrorBody(body)
	switch p.kind {
	case bodyMessage:
		msg := p.message
		if msg == "" {
			msg = msgRequestFailed
		}
		var details string
		if len(p.list) > 0 {
			details = strings.Join(p.list, "; ")
		} else if len(p.fields) > 0 {
			details = formatFieldErrors(p.fields, dictReq)
		}
		if details != "" {
			msg = msg + ": " + details
		}
		return msg
	case bodyFieldMap:
		if details := formatFieldErrors(p.fields, dictReq); details != "" {
			return details
		}
		if p.detail != "" {
			return p.detail
		}
		return msgRequestFailed
	case bodyDetail:
		return p.detail
	default:
		return msgRequestFailed
	}
}

// normalizeError 把一次带响应的失败归一化为 *APIError。
// 401 的本地清理由调用方（transport）完成，这里只产出文案。
func normalizeError(status int, body []byte, reqURL string) *APIError {
	apiErr := &APIError{Status: status}
	switch status {
	case 401:
		apiErr.Message = msgSessionExpired
		apiErr.kind = ErrSessionExpired
	case 403:
		apiErr.Message = msgForbidden
	case 404:
		apiErr.Message = msgNotFound
	case 500:
		apiErr.Message = msgServerError
	default:
		apiErr.Message = normalizeErrorBody(body, isDictionaryRequest(reqURL))
	}
	return apiErr
}

// isDictionaryRequest 字典条目类接口与其他资源共用同一套序列化
// 错误格式，但需要资源特定的字段文案，按 URL 判别。
func isDictionaryRequest(url string) bool {
	return strings.Contains(url, "/dictionaries/")
}

var (
	reDictType = regexp.MustCompile(`\bdict_type\b`)
	reValue    = regexp.MustCompile(`\bvalue\b`)
)

func normalizeMessage(msg string, dictReq bool) string {
	if !dictReq {
		return msg
	}
	if strings.Contains(msg, dictUniqueSetMessage) {
		return msgDictDuplicate
	}
	msg = reDictType.ReplaceAllString(msg, "字典类型")
	msg = reValue.ReplaceAllString(msg, "代码")
	return msg
}

// 字段名 → 领域文案。non_field_errors 映射为空串，表示不加前缀。
var baseFieldLabels = map[string]string{
	"non_field_errors": "",
	"dict_type":        "字典类型",
	"value":            "值",
	"label":            "名称",
	"employee_id":      "学号/工号",
	"real_name":        "姓名",
	"password":         "密码",
	"college":          "学院",
	"major":            "专业",
	"title":            "职称",
	"email":            "邮箱",
	"phone":            "手机号",
	"role":             "角色",
}

var dictFieldLabels = map[string]string{
	"value": "代码",
	"label": "显示名称",
}

func fieldLabel(key string, dictReq bool) string {
	if dictReq {
		if label, ok := dictFieldLabels[key]; ok {
			return label
		}
	}
	if label, ok := baseFieldLabels[key]; ok {
		return label
	}
	return key
}

func formatFieldErrors(fields []fieldMessages, dictReq bool) string {
	var parts []string
	for _, f := range fields {
		msgs := make([]string, 0, len(f.messages))
		for _, m := range f.messages {
			msgs = append(msgs, normalizeMessage(m, dictReq))
		}
		if len(msgs) == 0 {
			continue
		}
		if f.field == "non_field_errors" {
			parts = append(parts, msgs...)
			continue
		}
		prefix := ""
		if label := fieldLabel(f.field, dictReq); label != "" {
			prefix = label + "："
		}
		parts = append(parts, prefix+strings.Join(msgs, "; "))
	}
	return strings.Join(parts, "; ")
}

type objectEntry struct {
	key   string
	value json.RawMessage
}

// decodeOrderedObject decodes a JSON object keeping document order.
// encoding/json 的 map 会打乱字段顺序，而错误文案的字段顺序要跟
// 服务端返回保持一致，因此用 token 流手工解析。
func decodeOrderedObject(data []byte) ([]objectEntry, bool) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, false
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, false
	}
	var entries []objectEntry
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, false
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, false
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, false
		}
		entries = append(entries, objectEntry{key: key, value: raw})
	}
	return entries, true
}

func toFieldMessages(entries []objectEntry) []fieldMessages {
	out := make([]fieldMessages, 0, len(entries))
	for _, e := range entries {
		out = append(out, fieldMessages{field: e.key, messages: flattenValue(e.value)})
	}
	return out
}

// flattenValue 把任意 JSON 值拍平成字符串列表：数组递归展开，
// 标量转成字符串，null 丢弃。
func flattenValue(raw json.RawMessage) []string {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return flatten(v)
}

func flatten(v any) []string {
	switch t := v.(type) {
	case nil:
		return nil
	case []any:
		var out []string
		for _, item := range t {
			out = append(out, flatten(item)...)
		}
		return out
	case string:
		return []string{t}
	case float64:
		return []string{trimFloat(t)}
	case bool:
		return []string{fmt.Sprintf("%t", t)}
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return nil
		}
		return []string{string(b)}
	}
}

func trimFloat(f float64) string {
	if f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%g", f)
}

func asString(raw json.RawMessage) (string, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

func isArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '['
}
