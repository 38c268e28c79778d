package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"blogapi/internal/auth"
)

type call struct {
	method string
	target string
	body   string
	params map[string]string
	claims *auth.Claims
}

// do runs h against a recorded request and renders any returned error the
// way the server does.
func do(t *testing.T, h echo.HandlerFunc, in call) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	e := newTestEcho()

	var req *http.Request
	if in.body != "" {
		req = httptest.NewRequest(in.method, in.target, strings.NewReader(in.body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(in.method, in.target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if len(in.params) > 0 {
		names := make([]string, 0, len(in.params))
		values := make([]string, 0, len(in.params))
		for name, value := range in.params {
			names = append(names, name)
			values = append(values, value)
		}
		c.SetParamNames(names...)
		c.SetParamValues(values...)
	}
	if in.claims != nil {
		c.Set(ContextKeyClaims, in.claims)
	}

	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return rec, body
}
