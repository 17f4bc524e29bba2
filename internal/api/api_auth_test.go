package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dachuang-plat/dcctl/internal/client"
)

func newTestAPI(t *testing.T, handler http.HandlerFunc) *client.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return client.New(&client.Conf{BaseURL: srv.URL, Timeout: 5 * time.Second}, nil)
}

func TestAuth_Login(t *testing.T) {
	var gotBody map[string]string
	c := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/auth/login/", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_, _ = w.Write([]byte(`{"code":200,"message":"success","data":{
			"access_token":"abc","refresh_token":"def",
			"user":{"id":1,"employee_id":"T1001","username":"wang","role":"teacher"}}}`))
	})

	data, err := NewAuth(c).Login(context.Background(), "T1001", "pw123", "teacher")
	require.NoError(t, err)
	assert.Equal(t, "abc", data.AccessToken)
	assert.Equal(t, "def", data.RefreshToken)
	assert.Equal(t, "T1001", data.User.EmployeeId)
	assert.Equal(t, map[string]string{
		"employee_id": "T1001",
		"password":    "pw123",
		"role":        "teacher",
	}, gotBody)
}

func TestAuth_LoginValidatesInput(t *testing.T) {
	c := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("request must not be sent for invalid input")
	})

	_, err := NewAuth(c).Login(context.Background(), "", "pw", "student")
	require.Error(t, err)

	_, err = NewAuth(c).Login(context.Background(), "T1001", "", "student")
	require.Error(t, err)
}

func TestAuth_LoginBusinessFailure(t *testing.T) {
	c := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code":400,"message":"学号或密码错误","data":null}`))
	})

	_, err := NewAuth(c).Login(context.Background(), "T1001", "bad", "student")
	require.Error(t, err)
	assert.Equal(t, "学号或密码错误", err.Error())
}

func TestAuth_Profile(t *testing.T) {
	c := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/auth/profile/", r.URL.Path)
		_, _ = w.Write([]byte(`{"code":200,"message":"success","data":{
			"id":2,"username":"li","role":"level1_admin",
			"role_info":{"code":"level1_admin","default_route":"/level1-admin/statistics"}}}`))
	})

	user, err := NewAuth(c).Profile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "li", user.Username)
	require.NotNil(t, user.RoleInfo)
	assert.Equal(t, "/level1-admin/statistics", user.RoleInfo.DefaultRoute)
}

func TestAuth_ChangePasswordValidatesConfirmation(t *testing.T) {
	c := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("request must not be sent for mismatched confirmation")
	})

	err := NewAuth(c).ChangePassword(context.Background(), "old123", "new456", "different")
	require.Error(t, err)
}
