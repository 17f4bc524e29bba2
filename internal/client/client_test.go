package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dachuang-plat/dcctl/internal/session"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, source SessionSource) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(&Conf{BaseURL: srv.URL, Timeout: 5 * time.Second}, source)
}

func TestSend_UnwrapsEnvelope(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/auth/profile/", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"code":200,"message":"success","data":{"id":7,"username":"wang"}}`))
	}, nil)

	env, err := c.Send(context.Background(), &Request{URL: "/auth/profile/"})
	require.NoError(t, err)
	assert.Equal(t, 200, env.Code)
	assert.Equal(t, "success", env.Message)
	assert.JSONEq(t, `{"id":7,"username":"wang"}`, string(env.Data))
	assert.True(t, env.OK())
}

func TestSend_AttachesBearerToken(t *testing.T) {
	storage := session.NewMemoryStorage()
	require.NoError(t, storage.Set(session.KeyToken, "tok-123"))

	var gotAuth, gotRequestID string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-Id")
		_, _ = w.Write([]byte(`{"code":200,"message":"ok","data":null}`))
	}, session.NewSource(storage))

	_, err := c.Send(context.Background(), &Request{URL: "/projects/"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.NotEmpty(t, gotRequestID)
}

func TestSend_OmitsBearerWithoutToken(t *testing.T) {
	var gotAuth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"code":200,"message":"ok","data":null}`))
	}, session.NewSource(session.NewMemoryStorage()))

	_, err := c.Send(context.Background(), &Request{URL: "/auth/login/", Method: "POST", Data: map[string]string{}})
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestSend_401ClearsAllSessionKeys(t *testing.T) {
	storage := session.NewMemoryStorage()
	require.NoError(t, storage.SetMany(map[string]string{
		session.KeyToken:        "tok",
		session.KeyRefreshToken: "ref",
		session.KeyUserRole:     "student",
		session.KeyRoleInfo:     `{"code":"student"}`,
	}))

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}, session.NewSource(storage))

	_, err := c.Send(context.Background(), &Request{URL: "/projects/"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSessionExpired))
	assert.Equal(t, "登录已过期，请重新登录", err.Error())

	// 四个键必须整组清空，不允许残留
	for _, key := range session.SessionKeys() {
		val, getErr := storage.Get(key)
		require.NoError(t, getErr)
		assert.Empty(t, val, "key %s should be cleared", key)
	}
}

func TestSend_ValidationErrorNormalized(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"value":["This field must be unique."],"label":["required"]}`))
	}, nil)

	_, err := c.Send(context.Background(), &Request{URL: "/dictionaries/items/3/", Method: "PATCH"})
	require.Error(t, err)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "代码：This field must be unique.; 显示名称：required", apiErr.Message)
	assert.Equal(t, 400, apiErr.Status)
}

func TestSend_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close() // 连接必然失败

	c := New(&Conf{BaseURL: url, Timeout: time.Second}, nil)
	_, err := c.Send(context.Background(), &Request{URL: "/projects/"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNetwork))
	assert.Equal(t, "网络错误，请检查网络连接", err.Error())
}

func TestSend_BusinessCodeFailure(t *testing.T) {
	// 传输层 200 但业务码非 200：Send 正常返回信封，由调用方判码
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code":403,"message":"当前批次不允许申报","data":null}`))
	}, nil)

	env, err := c.Send(context.Background(), &Request{URL: "/projects/application/create/", Method: "POST"})
	require.NoError(t, err)
	assert.False(t, env.OK())

	envErr := env.Err()
	require.Error(t, envErr)
	assert.Equal(t, "当前批次不允许申报", envErr.Error())
}

func TestDownload_ReturnsRawBlob(t *testing.T) {
	blob := []byte("%PDF-1.4 raw bytes")
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write(blob)
	}, nil)

	got, err := c.Download(context.Background(), &Request{URL: "/projects/3/export-doc/"})
	require.NoError(t, err)
	assert.Equal(t, blob, got)
}

func TestEnvelope_Bind(t *testing.T) {
	env := &Envelope{Code: 201, Data: json.RawMessage(`{"id":1,"value":"cs","label":"计算机学院"}`)}
	assert.True(t, env.OK())

	var item struct {
		Id    int64  `json:"id"`
		Value string `json:"value"`
		Label string `json:"label"`
	}
	require.NoError(t, env.Bind(&item))
	assert.Equal(t, "计算机学院", item.Label)
}

func TestSend_RecordsMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code":200,"message":"ok","data":null}`))
	}))
	t.Cleanup(srv.Close)

	c := New(&Conf{BaseURL: srv.URL, Timeout: 5 * time.Second}, nil, WithMetrics(m))
	_, err := c.Send(context.Background(), &Request{URL: "/projects/"})
	require.NoError(t, err)
	_, err = c.Send(context.Background(), &Request{URL: "/projects/", Method: "POST"})
	require.NoError(t, err)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.requests.WithLabelValues("GET", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.requests.WithLabelValues("POST", "200")))
}

func TestConf_BasePath(t *testing.T) {
	assert.Equal(t, "http://localhost:8000/api/v1", (&Conf{BaseURL: "http://localhost:8000"}).basePath())
	assert.Equal(t, "https://api.dachuang.com/api/v2", (&Conf{BaseURL: "https://api.dachuang.com/", APIVersion: "v2"}).basePath())
}
