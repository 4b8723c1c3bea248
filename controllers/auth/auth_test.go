package authController_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"portal/config"
	"portal/database"
	authRoutes "portal/routers/authRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	config.AppConfig = &config.Config{JWTKey: "test-secret", SaltRound: 4}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	authRoutes.SetupAuthRoutes(app)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, url, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, url, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	decoded := map[string]interface{}{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func registerBody(email string) fiber.Map {
	return fiber.Map{
		"email":                 email,
		"password":              "secreto123",
		"numero_identificacion": "100200300",
		"nombres":               "Ana María",
		"apellidos":             "Pérez",
		"telefono":              "3001234567",
	}
}

func TestRegisterLoginMe(t *testing.T) {
	app := setupApp(t)

	resp, body := doJSON(t, app, "POST", "/auth/register", "", registerBody("ana@portal.test"))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	require.Equal(t, "Usuario registrado exitosamente", body["message"])

	data := body["data"].(map[string]interface{})
	require.Equal(t, "aprendiz", data["role"])
	profile := data["profile"].(map[string]interface{})
	require.Equal(t, "100200300", profile["numero_identificacion"])

	// Password never leaves the server
	user := data["user"].(map[string]interface{})
	_, exposed := user["password"]
	require.False(t, exposed)

	resp, body = doJSON(t, app, "POST", "/auth/login", "", fiber.Map{
		"email":    "ana@portal.test",
		"password": "secreto123",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data = body["data"].(map[string]interface{})
	token := data["token"].(string)
	require.NotEmpty(t, token)

	resp, body = doJSON(t, app, "GET", "/auth/me", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data = body["data"].(map[string]interface{})
	require.Equal(t, "aprendiz", data["role"])
}

func TestRegisterDuplicateEmail(t *testing.T) {
	app := setupApp(t)

	resp, _ := doJSON(t, app, "POST", "/auth/register", "", registerBody("dup@portal.test"))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, app, "POST", "/auth/register", "", registerBody("dup@portal.test"))
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "El email ya está registrado", body["error"])
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	app := setupApp(t)

	payload := registerBody("rol@portal.test")
	payload["role"] = "superadmin"

	resp, _ := doJSON(t, app, "POST", "/auth/register", "", payload)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestRegisterValidatesRequiredFields(t *testing.T) {
	app := setupApp(t)

	resp, _ := doJSON(t, app, "POST", "/auth/register", "", fiber.Map{
		"email":    "incompleto@portal.test",
		"password": "secreto123",
	})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	app := setupApp(t)

	resp, _ := doJSON(t, app, "POST", "/auth/register", "", registerBody("ana@portal.test"))
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, body := doJSON(t, app, "POST", "/auth/login", "", fiber.Map{
		"email":    "ana@portal.test",
		"password": "incorrecta",
	})
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, "Credenciales inválidas", body["error"])

	resp, _ = doJSON(t, app, "POST", "/auth/login", "", fiber.Map{
		"email":    "nadie@portal.test",
		"password": "loquesea",
	})
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
