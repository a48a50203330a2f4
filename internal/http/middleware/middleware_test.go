package middleware

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"docportal/internal/model"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestID(t *testing.T) {
	app := fiber.New()
	app.Use(RequestID())

	app.Get("/test", func(c *fiber.Ctx) error {
		return c.SendString(RequestIDFrom(c))
	})

	t.Run("generates an id when absent", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		ridHeader := resp.Header.Get(RequestIDHeader)
		assert.NotEmpty(t, ridHeader)

		buf := new(bytes.Buffer)
		buf.ReadFrom(resp.Body)
		assert.Equal(t, ridHeader, buf.String())
	})

	t.Run("preserves an incoming id", func(t *testing.T) {
		existingID := "test-id-123"
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set(RequestIDHeader, existingID)

		resp, _ := app.Test(req)

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Equal(t, existingID, resp.Header.Get(RequestIDHeader))

		buf := new(bytes.Buffer)
		buf.ReadFrom(resp.Body)
		assert.Equal(t, existingID, buf.String())
	})
}

func TestIdentity(t *testing.T) {
	app := fiber.New()
	app.Use(Identity())

	app.Get("/whoami", func(c *fiber.Ctx) error {
		id, ok := IdentityFrom(c)
		if !ok {
			return c.SendStatus(fiber.StatusNoContent)
		}
		return c.JSON(id)
	})

	t.Run("reads every header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/whoami", nil)
		req.Header.Set(UserIDHeader, " prof-1 ")
		req.Header.Set(UserNameHeader, "Dr. Rao")
		req.Header.Set(UserEmailHeader, "rao@example.edu")
		req.Header.Set(UserRollHeader, "")
		req.Header.Set(UserRoleHeader, "Professor")

		resp, _ := app.Test(req)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		var got model.Identity
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, model.Identity{ID: "prof-1", Name: "Dr. Rao", Email: "rao@example.edu", Role: model.RoleProfessor}, got)
		assert.True(t, got.IsReviewer())
	})

	t.Run("anonymous without user id", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/whoami", nil)
		req.Header.Set(UserNameHeader, "Someone")

		resp, _ := app.Test(req)
		assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	})
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	app := fiber.New()

	app.Use(RequestID())
	app.Use(LoggerWithWriter(&buf, time.UTC))

	app.Get("/test", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusAccepted)
	})

	req := httptest.NewRequest("GET", "/test", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, fiber.StatusAccepted, resp.StatusCode)

	var logData map[string]any
	err := json.Unmarshal(buf.Bytes(), &logData)
	assert.NoError(t, err)

	assert.NotEmpty(t, logData["request_id"])
	assert.Equal(t, "GET", logData["method"])
	assert.Equal(t, "/test", logData["path"])
	assert.Equal(t, float64(fiber.StatusAccepted), logData["status"])
	assert.NotNil(t, logData["latency"])
	assert.NotEmpty(t, logData["ts"])
}

func TestLogger_Levels(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	app := fiber.New()
	app.Use(Identity())
	app.Use(Logger(zap.New(core)))

	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	app.Get("/boom", func(c *fiber.Ctx) error { return fiber.NewError(fiber.StatusServiceUnavailable, "down") })

	req := httptest.NewRequest("GET", "/ok", nil)
	req.Header.Set(UserIDHeader, "stu-1")
	app.Test(req)
	app.Test(httptest.NewRequest("GET", "/boom", nil))

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zap.InfoLevel, entries[0].Level)
	assert.Equal(t, "stu-1", entries[0].ContextMap()["user_id"])
	assert.Equal(t, zap.ErrorLevel, entries[1].Level)
	assert.Equal(t, int64(fiber.StatusServiceUnavailable), entries[1].ContextMap()["status"])
}
