package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auth-api/app/rest/response"
	"auth-api/app/utils/timefmt"
)

func callRoot(t *testing.T, h *HealthHandler) response.Envelope {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	require.NoError(t, h.Root(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)

	var env response.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestRootReportsOnline(t *testing.T) {
	env := callRoot(t, NewHealthHandler())

	assert.True(t, env.Success)
	assert.Equal(t, "Server is online!", env.Message)

	data := env.Data.(map[string]interface{})
	assert.Regexp(t, `^\d+ seconds$`, data["uptime"])

	ts, err := time.Parse(timefmt.Layout, data["timestamp"].(string))
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), ts, time.Minute)
}

func TestRootUptimeNeverDecreases(t *testing.T) {
	h := NewHealthHandler()

	first := callRoot(t, h).Data.(map[string]interface{})["uptime"].(string)
	second := callRoot(t, h).Data.(map[string]interface{})["uptime"].(string)

	var a, b int64
	_, err := fmt.Sscanf(first, "%d seconds", &a)
	require.NoError(t, err)
	_, err = fmt.Sscanf(second, "%d seconds", &b)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, b, a)
}
