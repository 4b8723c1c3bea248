package certificateController_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"portal/config"
	"portal/database"
	"portal/middleware"
	"portal/models"
	certificateRoutes "portal/routers/certificateRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	config.AppConfig = &config.Config{JWTKey: "test-secret", SaltRound: 4, MaxUploadBytes: 10 * 1024 * 1024}

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	certificateRoutes.SetupCertificateRoutes(app)
	return app, db
}

func newUser(t *testing.T, db *gorm.DB, email, role string) (uint, string) {
	t.Helper()

	user := models.User{Email: email, Password: "x"}
	require.NoError(t, db.Create(&user).Error)
	require.NoError(t, db.Create(&models.UserRole{UserID: user.ID, Role: role}).Error)

	token, err := middleware.GenerateJWT(user.ID, role, email)
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

func TestCertificatesRequireAuth(t *testing.T) {
	app, _ := setupApp(t)

	resp, _ := doJSON(t, app, "GET", "/certificates", "", nil)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestCertificateLifecycleOverHTTP(t *testing.T) {
	app, db := setupApp(t)

	certType := models.CertificateType{Nombre: "Certificado Académico", Activo: true}
	require.NoError(t, db.Create(&certType).Error)

	_, applicantToken := newUser(t, db, "aprendiz@portal.test", models.RoleAprendiz)
	_, otherToken := newUser(t, db, "otro@portal.test", models.RoleAprendiz)
	_, staffToken := newUser(t, db, "staff@portal.test", models.RoleFuncionario)
	_, adminToken := newUser(t, db, "admin@portal.test", models.RoleAdmin)

	// Applicant creates a request
	resp, body := doJSON(t, app, "POST", "/certificates", applicantToken, fiber.Map{
		"certificate_type_id": certType.ID,
		"observaciones":       "urgente",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	require.Equal(t, "Solicitud creada exitosamente", body["message"])

	data := body["data"].(map[string]interface{})
	require.Equal(t, "pendiente", data["estado"])
	certID := int(data["ID"].(float64))

	// A different applicant cannot mutate the state
	resp, _ = doJSON(t, app, "PUT", "/certificates/"+itoa(certID), otherToken, fiber.Map{
		"estado": "en_proceso",
	})
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// Staff completes it; delivery date is auto-set
	resp, body = doJSON(t, app, "PUT", "/certificates/"+itoa(certID), staffToken, fiber.Map{
		"estado": "completado",
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	data = body["data"].(map[string]interface{})
	require.Equal(t, "completado", data["estado"])
	require.NotNil(t, data["fecha_entrega"])

	// Owner cannot delete a completed request
	resp, _ = doJSON(t, app, "DELETE", "/certificates/"+itoa(certID), applicantToken, nil)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	// Admin deletes unconditionally
	resp, _ = doJSON(t, app, "DELETE", "/certificates/"+itoa(certID), adminToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, app, "GET", "/certificates/"+itoa(certID), adminToken, nil)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestCertificateCreateValidation(t *testing.T) {
	app, db := setupApp(t)
	_, token := newUser(t, db, "aprendiz@portal.test", models.RoleAprendiz)

	resp, body := doJSON(t, app, "POST", "/certificates", token, fiber.Map{
		"observaciones": "sin tipo",
	})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "certificate_type_id es requerido", body["error"])
}

func TestCertificateUpdateRejectsUnknownEstado(t *testing.T) {
	app, db := setupApp(t)
	_, token := newUser(t, db, "staff@portal.test", models.RoleFuncionario)

	resp, _ := doJSON(t, app, "PUT", "/certificates/1", token, fiber.Map{
		"estado": "aprobado",
	})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestCertificateListScopedForApplicants(t *testing.T) {
	app, db := setupApp(t)

	certType := models.CertificateType{Nombre: "Constancia de Estudio", Activo: true}
	require.NoError(t, db.Create(&certType).Error)

	userA, tokenA := newUser(t, db, "a@portal.test", models.RoleAprendiz)
	userB, _ := newUser(t, db, "b@portal.test", models.RoleAprendiz)
	_, staffToken := newUser(t, db, "staff@portal.test", models.RoleFuncionario)

	for _, userID := range []uint{userA, userA, userB} {
		require.NoError(t, db.Create(&models.Certificate{
			UserID:            userID,
			CertificateTypeID: certType.ID,
			Estado:            models.EstadoPendiente,
		}).Error)
	}

	resp, body := doJSON(t, app, "GET", "/certificates?limit=10", tokenA, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.EqualValues(t, 2, body["count"])
	for _, row := range body["data"].([]interface{}) {
		require.EqualValues(t, userA, row.(map[string]interface{})["user_id"])
	}

	resp, body = doJSON(t, app, "GET", "/certificates?estado=pendiente&limit=10", staffToken, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.EqualValues(t, 3, body["count"])
}

func TestCertificateTypesEndpoint(t *testing.T) {
	app, db := setupApp(t)
	_, token := newUser(t, db, "aprendiz@portal.test", models.RoleAprendiz)

	certType := models.CertificateType{Nombre: "Certificado Académico", Activo: true}
	require.NoError(t, db.Create(&certType).Error)

	resp, body := doJSON(t, app, "GET", "/certificates/types", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Len(t, body["data"].([]interface{}), 1)
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
