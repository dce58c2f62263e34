package serverutils

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeBody(t *testing.T, body io.Reader) map[string]string {
	t.Helper()
	var out map[string]string
	require.NoError(t, json.NewDecoder(body).Decode(&out))
	return out
}

func TestErrorHandlerMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware())
	app.Get("/plain", func(ctx *fiber.Ctx) error { return errors.New("index unavailable") })
	app.Get("/app", func(ctx *fiber.Ctx) error { return NewValidationError("message failed on 'required'", nil) })
	app.Get("/fiber", func(ctx *fiber.Ctx) error { return fiber.NewError(fiber.StatusBadRequest, "bad json") })
	app.Get("/ok", func(ctx *fiber.Ctx) error { return ctx.SendString("ok") })

	tests := []struct {
		path       string
		wantStatus int
		wantDetail string
	}{
		{"/plain", fiber.StatusInternalServerError, "index unavailable"},
		{"/app", fiber.StatusUnprocessableEntity, "message failed on 'required'"},
		{"/fiber", fiber.StatusBadRequest, "bad json"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", tt.path, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, tt.wantDetail, decodeBody(t, resp.Body)["detail"])
		})
	}

	resp, err := app.Test(httptest.NewRequest("GET", "/ok", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRateLimiter(t *testing.T) {
	app := fiber.New()
	app.Use(RateLimiter(2))
	app.Get("/", func(ctx *fiber.Ctx) error { return ctx.SendString("ok") })

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "Rate limit exceeded: 2 per 1 minute", decodeBody(t, resp.Body)["error"])
}

func TestValidateRequest(t *testing.T) {
	type request struct {
		Message string `json:"message" validate:"required"`
	}

	assert.NoError(t, ValidateRequest(request{Message: "hi"}))

	err := ValidateRequest(request{})
	var appErr *AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, fiber.StatusUnprocessableEntity, appErr.Code)
	assert.Contains(t, appErr.Message, "message failed on 'required'")
}
