package profileController

import (
	"log"
	"path/filepath"

	"portal/config"
	"portal/database"
	"portal/middleware"
	"portal/models"
	"portal/services"
	"portal/storage"
	profileValidator "portal/validators/profile"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Get returns the caller's profile together with role and email.
func Get(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Token inválido")
	}

	db := database.Database.Db

	var profile models.Profile
	if err := db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Perfil no encontrado")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "", fiber.Map{
		"profile": profile,
		"role":    services.ResolveRole(db, userID),
	})
}

// Update changes the caller's mutable profile fields. Email and
// numero_identificacion stay as registered.
func Update(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Token inválido")
	}

	reqData, ok := c.Locals("validatedProfileUpdate").(*profileValidator.UpdateRequest)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Solicitud inválida")
	}

	db := database.Database.Db

	var profile models.Profile
	if err := db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Perfil no encontrado")
	}

	updates := map[string]interface{}{}
	if reqData.Nombres != nil {
		updates["nombres"] = *reqData.Nombres
	}
	if reqData.Apellidos != nil {
		updates["apellidos"] = *reqData.Apellidos
	}
	if reqData.Telefono != nil {
		updates["telefono"] = *reqData.Telefono
	}
	if reqData.AvatarURL != nil {
		updates["avatar_url"] = *reqData.AvatarURL
	}

	if err := db.Model(&profile).Updates(updates).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, err.Error())
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "Perfil actualizado", fiber.Map{
		"profile": profile,
		"role":    services.ResolveRole(db, userID),
	})
}

// ChangePassword replaces the caller's password.
func ChangePassword(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Token inválido")
	}

	reqData, ok := c.Locals("validatedChangePassword").(*profileValidator.ChangePasswordRequest)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Solicitud inválida")
	}

	db := database.Database.Db

	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Token inválido")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.NewPassword), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Error al cambiar la contraseña")
	}

	if err := db.Model(&user).Update("password", string(hashedPassword)).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Error al cambiar la contraseña")
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Contraseña actualizada exitosamente"})
}

// UploadAvatar stores a new avatar in the blob store and points the
// profile at it.
func UploadAvatar(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Token inválido")
	}

	db := database.Database.Db

	var profile models.Profile
	if err := db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Perfil no encontrado")
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "avatar es requerido")
	}
	if fileHeader.Size > config.AppConfig.MaxUploadBytes {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "El archivo supera el tamaño máximo permitido (10 MiB)")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "No se pudo leer el archivo")
	}
	defer src.Close()

	key := uuid.NewString() + filepath.Ext(fileHeader.Filename)
	contentType := fileHeader.Header.Get("Content-Type")

	if err := storage.Put(c.Context(), storage.BucketAvatars, key, src, fileHeader.Size, contentType); err != nil {
		log.Printf("Error uploading avatar for user %d: %v", userID, err)
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Error al subir el archivo")
	}

	avatarURL := storage.PublicURL(storage.BucketAvatars, key)
	if err := db.Model(&profile).Update("avatar_url", avatarURL).Error; err != nil {
		if rerr := storage.Remove(c.Context(), storage.BucketAvatars, key); rerr != nil {
			log.Printf("Error removing orphaned avatar %s: %v", key, rerr)
		}
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, err.Error())
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "Avatar actualizado", profile)
}
