package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/rs/xid"
	"go.uber.org/zap"
)

// SessionSource 是 transport 对会话存储的唯一视角：取当前 token、
// 以及在 401 时整体清除会话。Clear 必须清掉会话存储的全部键，
// 部分清除会在下次加载时泄漏过期角色。
type SessionSource interface {
	Token() string
	Clear() error
}

// noSession 匿名模式（未注入会话时），不带 token 也不做清理。
type noSession struct{}

func (noSession) Token() string { return "" }
func (noSession) Clear() error  { return nil }

// Conf transport 配置。BaseURL 不含 API 版本段，版本段在
// 构造时拼接，所有请求共用同一个超时。
type Conf struct {
	BaseURL    string
	APIVersion string
	Timeout    time.Duration
}

func (c *Conf) basePath() string {
	version := c.APIVersion
	if version == "" {
		version = "v1"
	}
	return fmt.Sprintf("%s/api/%s", strings.TrimRight(c.BaseURL, "/"), version)
}

// Request 一次 API 调用的描述
type Request struct {
	URL     string // base path 之后的相对路径
	Method  string // 默认 GET
	Params  map[string]string
	Data    any // JSON 请求体
	Headers map[string]string

	// Form/Files 非空时走 multipart/form-data 而不是 JSON。
	Form  map[string]string
	Files []File
}

// File multipart 请求中的一个文件字段
type File struct {
	Param  string
	Name   string
	Reader io.Reader
}

// Client 平台 API 的 HTTP 客户端。所有 JSON 接口经 Send 返回
// 统一信封；文件类接口经 Download 返回原始字节。
type Client struct {
	rc      *resty.Client
	session SessionSource
	logger  *zap.SugaredLogger
	metrics *Metrics
}

type Option func(*Client)

// WithLogger 注入日志器，默认丢弃。
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithMetrics 开启请求维度的 prometheus 指标。
func WithMetrics(m *Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// New 构造客户端并装配拦截器链。拦截器按注册顺序执行：
// 先补 token，再打请求 ID，响应侧记指标。
func New(conf *Conf, session SessionSource, opts ...Option) *Client {
	if session == nil {
		session = noSession{}
	}
	c := &Client{
		session: session,
		logger:  zap.NewNop().Sugar(),
	}
	for _, opt := range opts {
		opt(c)
	}

	rc := resty.New()
	rc.SetBaseURL(conf.basePath())
	if conf.Timeout > 0 {
		rc.SetTimeout(conf.Timeout)
	}
	rc.OnBeforeRequest(c.authMiddleware)
	rc.OnBeforeRequest(requestIDMiddleware)
	if c.metrics != nil {
		rc.OnAfterResponse(c.metricsMiddleware)
	}
	c.rc = rc
	return c
}

// authMiddleware 每个请求发出前同步读一次持久化 token，
// 有就带 Bearer 头，没有（如登录接口）就不带。
func (c *Client) authMiddleware(_ *resty.Client, req *resty.Request) error {
	if token := c.session.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return nil
}

func requestIDMiddleware(_ *resty.Client, req *resty.Request) error {
	req.SetHeader("X-Request-Id", xid.New().String())
	return nil
}

func (c *Client) metricsMiddleware(_ *resty.Client, resp *resty.Response) error {
	c.metrics.observe(resp.Request.Method, resp.StatusCode(), resp.Time())
	return nil
}

// Send issues a JSON request and unwraps the transport framing into
// the business envelope. Callers only ever see code/message/data on
// the success path, never transport metadata.
func (c *Client) Send(ctx context.Context, req *Request) (*Envelope, error) {
	resp, err := c.execute(ctx, req)
	if err != nil {
		return nil, c.transportFailure(req, err)
	}
	if resp.IsError() {
		return nil, c.responseFailure(req, resp)
	}
	var env Envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		return nil, errors.Wrapf(err, "decode response for %s", req.URL)
	}
	return &env, nil
}

// Download fetches a server-generated blob (导出的 Word/Excel/PDF 等)。
// 文件类接口不包 JSON 信封，原样返回字节。
func (c *Client) Download(ctx context.Context, req *Request) ([]byte, error) {
	resp, err := c.execute(ctx, req)
	if err != nil {
		return nil, c.transportFailure(req, err)
	}
	if resp.IsError() {
		return nil, c.responseFailure(req, resp)
	}
	return resp.Body(), nil
}

func (c *Client) execute(ctx context.Context, req *Request) (*resty.Response, error) {
	r := c.rc.R().SetContext(ctx)
	if len(req.Headers) > 0 {
		r.SetHeaders(req.Headers)
	}
	if len(req.Params) > 0 {
		r.SetQueryParams(req.Params)
	}
	switch {
	case len(req.Files) > 0:
		for _, f := range req.Files {
			r.SetFileReader(f.Param, f.Name, f.Reader)
		}
		if len(req.Form) > 0 {
			r.SetMultipartFormData(req.Form)
		}
	case len(req.Form) > 0:
		r.SetMultipartFormData(req.Form)
	case req.Data != nil:
		r.SetBody(req.Data)
	}

	method := strings.ToUpper(req.Method)
	if method == "" {
		method = "GET"
	}
	return r.Execute(method, req.URL)
}

// transportFailure 没有拿到任何 HTTP 响应：断网、DNS、超时。
// 统一呈现为网络错误，不自动重试。
func (c *Client) transportFailure(req *Request, err error) error {
	c.logger.Warnw("request failed without response", "url", req.URL, "err", err)
	return &APIError{Message: msgNetworkError, kind: ErrNetwork}
}

func (c *Client) responseFailure(req *Request, resp *resty.Response) error {
	apiErr := normalizeError(resp.StatusCode(), resp.Body(), req.URL)
	if resp.StatusCode() == 401 {
		// 任何接口返回 401 都视为会话过期，就地清掉全部会话键。
		if err := c.session.Clear(); err != nil {
			c.logger.Errorw("clear session after 401", "err", err)
		}
	}
	c.logger.Debugw("request failed",
		"url", req.URL,
		"status", resp.StatusCode(),
		"message", apiErr.Message,
	)
	return apiErr
}
