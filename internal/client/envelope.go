package client

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// 业务响应码。服务端所有 JSON 接口都包一层统一信封，
// HTTP 200 不代表业务成功，以信封里的 code 为准。
const (
	CodeOK      = 200
	CodeCreated = 201
)

// Envelope 统一业务响应结构 {code, message, data}
type Envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// OK reports whether the envelope carries a business-level success code.
func (e *Envelope) OK() bool {
	return e.Code == CodeOK || e.Code == CodeCreated
}

// Bind decodes the envelope's data field into v.
func (e *Envelope) Bind(v any) error {
	if len(e.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(e.Data, v); err != nil {
		return errors.Wrap(err, "decode envelope data")
	}
	return nil
}

// Err converts a non-success envelope into an *APIError. Returns nil
// when the envelope is a success.
func (e *Envelope) Err() error {
	if e.OK() {
		return nil
	}
	msg := e.Message
	if msg == "" {
		msg = msgRequestFailed
	}
	return &APIError{Code: e.Code, Message: msg}
}
