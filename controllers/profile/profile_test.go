package profileController_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"portal/config"
	"portal/database"
	"portal/middleware"
	"portal/models"
	profileRoutes "portal/routers/profileRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	config.AppConfig = &config.Config{JWTKey: "test-secret", SaltRound: 4}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	profileRoutes.SetupProfileRoutes(app)
	return app, db
}

func newUser(t *testing.T, db *gorm.DB, email, numeroID string) (uint, string) {
	t.Helper()

	user := models.User{Email: email, Password: "x"}
	require.NoError(t, db.Create(&user).Error)
	require.NoError(t, db.Create(&models.Profile{
		UserID:               user.ID,
		NumeroIdentificacion: numeroID,
		Nombres:              "Ana María",
		Apellidos:            "Pérez",
		Email:                email,
		Telefono:             "3001234567",
	}).Error)
	require.NoError(t, db.Create(&models.UserRole{UserID: user.ID, Role: models.RoleAprendiz}).Error)

	token, err := middleware.GenerateJWT(user.ID, models.RoleAprendiz, email)
	require.NoError(t, err)
	return user.ID, token
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

func TestProfileGet(t *testing.T) {
	app, db := setupApp(t)
	_, token := newUser(t, db, "ana@portal.test", "100200300")

	resp, body := doJSON(t, app, "GET", "/profile", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	data := body["data"].(map[string]interface{})
	require.Equal(t, "aprendiz", data["role"])
	profile := data["profile"].(map[string]interface{})
	require.Equal(t, "100200300", profile["numero_identificacion"])
}

func TestProfileUpdateAllowListedFieldsOnly(t *testing.T) {
	app, db := setupApp(t)
	userID, token := newUser(t, db, "ana@portal.test", "100200300")

	// email and numero_identificacion in the body are simply ignored
	resp, body := doJSON(t, app, "PUT", "/profile", token, fiber.Map{
		"nombres":               "Ana",
		"telefono":              "3009876543",
		"email":                 "otra@portal.test",
		"numero_identificacion": "999999999",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "Perfil actualizado", body["message"])

	var profile models.Profile
	require.NoError(t, db.Where("user_id = ?", userID).First(&profile).Error)
	require.Equal(t, "Ana", profile.Nombres)
	require.Equal(t, "3009876543", profile.Telefono)
	require.Equal(t, "ana@portal.test", profile.Email)
	require.Equal(t, "100200300", profile.NumeroIdentificacion)
}

func TestProfileUpdateEmptyPatch(t *testing.T) {
	app, db := setupApp(t)
	_, token := newUser(t, db, "ana@portal.test", "100200300")

	resp, _ := doJSON(t, app, "PUT", "/profile", token, fiber.Map{})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, app, "PUT", "/profile", token, fiber.Map{"nombres": "  "})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestProfileChangePassword(t *testing.T) {
	app, db := setupApp(t)
	userID, token := newUser(t, db, "ana@portal.test", "100200300")

	resp, _ := doJSON(t, app, "POST", "/profile/change-password", token, fiber.Map{
		"new_password": "corta",
	})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, body := doJSON(t, app, "POST", "/profile/change-password", token, fiber.Map{
		"new_password": "nuevaclave1",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Equal(t, "Contraseña actualizada exitosamente", body["message"])

	var user models.User
	require.NoError(t, db.Where("id = ?", userID).First(&user).Error)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("nuevaclave1")))
}

func TestProfileRequiresAuth(t *testing.T) {
	app, _ := setupApp(t)

	resp, _ := doJSON(t, app, "GET", "/profile", "", nil)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
