package handlers_test

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apihttp "github.com/spec-kit/staffing-tracker/internal/api/http"
	"github.com/spec-kit/staffing-tracker/internal/api/http/handlers"
	"github.com/spec-kit/staffing-tracker/internal/heatmap"
	"github.com/spec-kit/staffing-tracker/internal/service"
)

type stubHeatmapRepo struct {
	calls int
}

func (s *stubHeatmapRepo) ActiveRoster(ctx context.Context) ([]heatmap.RosterEntry, error) {
	s.calls++
	return []heatmap.RosterEntry{{StaffID: 1, Name: "Alice Chen", Position: "Partner"}}, nil
}

func (s *stubHeatmapRepo) MilestoneEvents(ctx context.Context, start, end time.Time, mt heatmap.MilestoneType) ([]heatmap.Event, error) {
	s.calls++
	return nil, nil
}

func newHeatmapApp(repo *stubHeatmapRepo) *fiber.App {
	svc := service.NewDashboardService(service.DashboardDependencies{HeatmapRepo: repo}, time.UTC, 0)
	handler := handlers.NewDashboardHandler(svc)

	app := fiber.New()
	apihttp.RegisterMiddlewares(app, zap.NewNop(), nil, 0)
	app.Get("/api/dashboard/heatmap", handler.StaffingHeatmap)
	return app
}

func TestStaffingHeatmapHandlerDaysValidation(t *testing.T) {
	cases := []struct {
		name  string
		query string
	}{
		{"explicit zero", "?days=0"},
		{"not a number", "?days=abc"},
		{"below minimum", "?days=-5"},
		{"above maximum", "?days=400"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &stubHeatmapRepo{}
			app := newHeatmapApp(repo)

			resp, err := app.Test(httptest.NewRequest("GET", "/api/dashboard/heatmap"+tc.query, nil))
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			assert.Contains(t, string(body), `"code":"VALIDATION_FAILED"`)
			assert.Zero(t, repo.calls)
		})
	}
}

func TestStaffingHeatmapHandlerDefaultsWhenAbsent(t *testing.T) {
	repo := &stubHeatmapRepo{}
	app := newHeatmapApp(repo)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/dashboard/heatmap", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"staffingHeatmap"`)
}
