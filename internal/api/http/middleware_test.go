package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/itops/helpdesk-service/internal/observability"
	"github.com/itops/helpdesk-service/pkg/util"
)

type errorBody struct {
	Error struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

func newTestApp() *fiber.App {
	app := fiber.New()
	RegisterMiddlewares(app, zap.NewNop(), observability.NewMetrics(), 0, "*")

	app.Get("/not-found", func(c *fiber.Ctx) error {
		return util.NewNotFound("ticket", map[string]any{"id": 42})
	})
	app.Get("/driver-failure", func(c *fiber.Ctx) error {
		return errors.New("pq: connection refused")
	})
	app.Get("/panics", func(c *fiber.Ctx) error {
		panic("boom")
	})
	app.Get("/ok", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	return app
}

func decodeError(t *testing.T, body io.Reader) errorBody {
	t.Helper()
	var decoded errorBody
	require.NoError(t, json.NewDecoder(body).Decode(&decoded))
	return decoded
}

func TestErrorEnvelopeForDomainError(t *testing.T) {
	app := newTestApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/not-found", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	decoded := decodeError(t, resp.Body)
	assert.Equal(t, "NOT_FOUND", decoded.Error.Code)
	assert.Equal(t, "ticket not found", decoded.Error.Message)
	assert.Equal(t, float64(42), decoded.Error.Details["id"])
}

func TestErrorEnvelopeHidesInternalDetail(t *testing.T) {
	app := newTestApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/driver-failure", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	decoded := decodeError(t, resp.Body)
	assert.Equal(t, "INTERNAL_ERROR", decoded.Error.Code)
	assert.Equal(t, "internal server error", decoded.Error.Message)
	assert.NotContains(t, decoded.Error.Message, "pq:")
}

func TestPanicRecoveredAsInternalError(t *testing.T) {
	app := newTestApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/panics", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	decoded := decodeError(t, resp.Body)
	assert.Equal(t, "INTERNAL_ERROR", decoded.Error.Code)
}

func TestSuccessPassesThrough(t *testing.T) {
	app := newTestApp()

	resp, err := app.Test(httptest.NewRequest("GET", "/ok", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
