package authController

import (
	"errors"
	"log"

	"portal/config"
	"portal/database"
	"portal/middleware"
	"portal/models"
	"portal/services"
	authValidator "portal/validators/auth"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Register creates the identity record, profile and role row for a new
// user. Role defaults to aprendiz.
func Register(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedRegister").(*authValidator.RegisterRequest)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Solicitud inválida")
	}

	db := database.Database.Db

	if err := db.Where("email = ?", reqData.Email).First(&models.User{}).Error; err == nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "El email ya está registrado")
	}
	if err := db.Where("numero_identificacion = ?", reqData.NumeroIdentificacion).First(&models.Profile{}).Error; err == nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "El número de identificación ya está registrado")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Error interno del servidor")
	}

	role := reqData.Role
	if role == "" {
		role = models.RoleAprendiz
	}

	user := models.User{
		Email:    reqData.Email,
		Password: string(hashedPassword),
	}
	profile := models.Profile{
		NumeroIdentificacion: reqData.NumeroIdentificacion,
		Nombres:              reqData.Nombres,
		Apellidos:            reqData.Apellidos,
		Email:                reqData.Email,
		Telefono:             reqData.Telefono,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		profile.UserID = user.ID
		if err := tx.Create(&profile).Error; err != nil {
			return err
		}
		return tx.Create(&models.UserRole{UserID: user.ID, Role: role}).Error
	})
	if err != nil {
		log.Printf("Error registering user: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Error al registrar el usuario")
	}

	user.Password = ""

	return middleware.JsonResponse(c, fiber.StatusCreated, "Usuario registrado exitosamente", fiber.Map{
		"user":    user,
		"profile": profile,
		"role":    role,
	})
}

// Login verifies credentials and issues a JWT.
func Login(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLogin").(*authValidator.LoginRequest)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Solicitud inválida")
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("email = ? AND is_deleted = ?", reqData.Email, false).First(&user).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Credenciales inválidas")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Credenciales inválidas")
	}

	role := services.ResolveRole(db, user.ID)

	token, err := middleware.GenerateJWT(user.ID, role, user.Email)
	if err != nil {
		log.Printf("Error generating token for user %d: %v", user.ID, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Error interno del servidor")
	}

	var profile models.Profile
	if err := db.Where("user_id = ?", user.ID).First(&profile).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Error interno del servidor")
	}

	user.Password = ""

	return middleware.JsonResponse(c, fiber.StatusOK, "Login exitoso", fiber.Map{
		"token":   token,
		"user":    user,
		"profile": profile,
		"role":    role,
	})
}

// Me returns the authenticated user with profile and role.
func Me(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Token inválido")
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Token inválido")
	}

	var profile models.Profile
	db.Where("user_id = ?", userID).First(&profile)

	user.Password = ""

	return middleware.JsonResponse(c, fiber.StatusOK, "", fiber.Map{
		"user":    user,
		"profile": profile,
		"role":    services.ResolveRole(db, userID),
	})
}
