package documentController

import (
	"encoding/json"
	"errors"
	"log"
	"path/filepath"
	"strings"

	"portal/config"
	"portal/database"
	"portal/middleware"
	"portal/models"
	"portal/services"
	"portal/storage"
	documentValidator "portal/validators/document"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// List returns documents visible to the caller; non-staff callers only
// ever see their own.
func List(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Token inválido")
	}

	reqData, ok := c.Locals("validatedDocumentList").(*documentValidator.ListRequest)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Solicitud inválida")
	}

	db := database.Database.Db
	role := services.ResolveRole(db, userID)

	query := db.Model(&models.Document{})
	if !services.IsStaff(role) {
		query = query.Where("user_id = ?", userID)
	}
	if reqData.CategoryID != nil {
		query = query.Where("category_id = ?", *reqData.CategoryID)
	}
	if reqData.Search != "" {
		query = query.Where("LOWER(nombre) LIKE LOWER(?)", "%"+reqData.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, err.Error())
	}

	var documents []models.Document
	err := query.Preload("Category").
		Order("created_at DESC").
		Limit(reqData.Limit).Offset(reqData.Offset).
		Find(&documents).Error
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, err.Error())
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data":  documents,
		"count": total,
	})
}

// Get returns one document, owner or staff only.
func Get(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Token inválido")
	}

	docID, err := c.ParamsInt("id")
	if err != nil || docID < 1 {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "ID inválido")
	}

	db := database.Database.Db

	var document models.Document
	if err := db.Preload("Category").Where("id = ?", docID).First(&document).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Documento no encontrado")
	}

	role := services.ResolveRole(db, userID)
	if document.UserID != userID && !services.IsStaff(role) {
		return middleware.ErrorResponse(c, fiber.StatusForbidden, "No autorizado")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "", document)
}

// Create stores a new document. Multipart requests carry the file,
// which is uploaded to the blob store first; if the database insert
// then fails the orphaned blob is removed best-effort.
func Create(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Token inválido")
	}

	reqData, ok := c.Locals("validatedDocumentCreate").(*documentValidator.CreateRequest)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Solicitud inválida")
	}

	db := database.Database.Db

	objectKey := ""
	if fileHeader, ferr := c.FormFile("archivo"); ferr == nil {
		if fileHeader.Size > config.AppConfig.MaxUploadBytes {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "El archivo supera el tamaño máximo permitido (10 MiB)")
		}

		src, err := fileHeader.Open()
		if err != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "No se pudo leer el archivo")
		}
		defer src.Close()

		objectKey = uuid.NewString() + filepath.Ext(fileHeader.Filename)
		contentType := fileHeader.Header.Get("Content-Type")

		if err := storage.Put(c.Context(), storage.BucketDocuments, objectKey, src, fileHeader.Size, contentType); err != nil {
			log.Printf("Error uploading document for user %d: %v", userID, err)
			return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Error al subir el archivo")
		}

		reqData.ArchivoURL = storage.PublicURL(storage.BucketDocuments, objectKey)
		reqData.TipoMime = contentType
		reqData.TamanoBytes = fileHeader.Size
	}

	if reqData.Etiquetas == nil {
		reqData.Etiquetas = []string{}
	}
	etiquetas, err := json.Marshal(reqData.Etiquetas)
	if err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Etiquetas inválidas")
	}

	document := models.Document{
		UserID:      userID,
		Nombre:      reqData.Nombre,
		Descripcion: reqData.Descripcion,
		ArchivoURL:  reqData.ArchivoURL,
		TipoMime:    reqData.TipoMime,
		TamanoBytes: reqData.TamanoBytes,
		CategoryID:  reqData.CategoryID,
		Etiquetas:   datatypes.JSON(etiquetas),
	}

	if err := db.Create(&document).Error; err != nil {
		// Compensating delete of the orphaned blob; failure is logged only.
		if objectKey != "" {
			if rerr := storage.Remove(c.Context(), storage.BucketDocuments, objectKey); rerr != nil {
				log.Printf("Error removing orphaned blob %s: %v", objectKey, rerr)
			}
		}
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, err.Error())
	}

	db.Preload("Category").Where("id = ?", document.ID).First(&document)

	return middleware.JsonResponse(c, fiber.StatusCreated, "Documento creado exitosamente", document)
}

// Update changes document metadata, owner only.
func Update(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Token inválido")
	}

	docID, err := c.ParamsInt("id")
	if err != nil || docID < 1 {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "ID inválido")
	}

	reqData, ok := c.Locals("validatedDocumentUpdate").(*documentValidator.UpdateRequest)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Solicitud inválida")
	}

	db := database.Database.Db

	var document models.Document
	if err := db.Where("id = ?", docID).First(&document).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "Documento no encontrado")
		}
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Error interno del servidor")
	}

	if document.UserID != userID {
		return middleware.ErrorResponse(c, fiber.StatusForbidden, "No autorizado")
	}

	updates := map[string]interface{}{}
	if reqData.Nombre != nil {
		updates["nombre"] = *reqData.Nombre
	}
	if reqData.Descripcion != nil {
		updates["descripcion"] = *reqData.Descripcion
	}
	if reqData.CategoryID != nil {
		updates["category_id"] = *reqData.CategoryID
	}
	if reqData.Etiquetas != nil {
		etiquetas, merr := json.Marshal(*reqData.Etiquetas)
		if merr != nil {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Etiquetas inválidas")
		}
		updates["etiquetas"] = datatypes.JSON(etiquetas)
	}

	if err := db.Model(&document).Updates(updates).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, err.Error())
	}

	db.Preload("Category").Where("id = ?", document.ID).First(&document)

	return middleware.JsonResponse(c, fiber.StatusOK, "Documento actualizado", document)
}

// Delete removes a document (owner or admin) along with its blob.
func Delete(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Token inválido")
	}

	docID, err := c.ParamsInt("id")
	if err != nil || docID < 1 {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "ID inválido")
	}

	db := database.Database.Db

	var document models.Document
	if err := db.Where("id = ?", docID).First(&document).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Documento no encontrado")
	}

	role := services.ResolveRole(db, userID)
	if document.UserID != userID && role != models.RoleAdmin {
		return middleware.ErrorResponse(c, fiber.StatusForbidden, "No autorizado")
	}

	if err := db.Unscoped().Delete(&document).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, err.Error())
	}

	// Blob removal is best-effort: the record is already gone.
	if key := objectKeyFromURL(document.ArchivoURL, storage.BucketDocuments); key != "" {
		if rerr := storage.Remove(c.Context(), storage.BucketDocuments, key); rerr != nil {
			log.Printf("Error removing blob %s for document %d: %v", key, document.ID, rerr)
		}
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "Documento eliminado"})
}

// ListCategories returns all document categories ordered by name.
func ListCategories(c *fiber.Ctx) error {
	db := database.Database.Db

	var categories []models.DocumentCategory
	if err := db.Order("nombre").Find(&categories).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, err.Error())
	}

	return middleware.JsonResponse(c, fiber.StatusOK, "", categories)
}

// objectKeyFromURL extracts the object key from a public URL produced
// by storage.PublicURL. Returns "" for external or empty URLs.
func objectKeyFromURL(url, bucket string) string {
	marker := "/" + bucket + "/"
	i := strings.Index(url, marker)
	if i < 0 {
		return ""
	}
	return url[i+len(marker):]
}
