package http

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "github.com/spec-kit/staffing-tracker/pkg/util"
)

func newMiddlewareTestApp() *fiber.App {
	app := fiber.New()
	app.Use(errorHandlingMiddleware(zap.NewNop(), nil))
	return app
}

func TestErrorMiddlewareSuccessAfterMappedNil(t *testing.T) {
	// Delete-style handlers return MapError(repoCall()) directly, which on
	// success must flow through the middleware as a plain 2xx.
	app := newMiddlewareTestApp()
	app.Delete("/staff/:id", func(c *fiber.Ctx) error {
		return apperrors.MapError(nil)
	})

	resp, err := app.Test(httptest.NewRequest("DELETE", "/staff/7", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestErrorMiddlewareRendersDomainError(t *testing.T) {
	app := newMiddlewareTestApp()
	app.Get("/missing", func(c *fiber.Ctx) error {
		return apperrors.NewNotFound("project", map[string]any{"id": 42})
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"code":"NOT_FOUND"`)
}

func TestErrorMiddlewareRecoversPanic(t *testing.T) {
	app := newMiddlewareTestApp()
	app.Get("/boom", func(c *fiber.Ctx) error {
		panic("unexpected")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}
