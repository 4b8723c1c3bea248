package database

import (
	"fmt"
	"log"
	"os"

	"portal/config"
	"portal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DbInstance struct holds the database connection instance
type DbInstance struct {
	Db *gorm.DB
}

// Database is the global database instance
var Database DbInstance

// ConnectDb establishes a connection to PostgreSQL
func ConnectDb() {
	cfg := config.AppConfig

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
		os.Exit(2)
	}

	// Set up connection pooling
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(0)

	RunMigrations(db)
	seedReferenceData(db)

	// Save database instance globally
	Database = DbInstance{Db: db}
}

// RunMigrations performs database migrations
func RunMigrations(db *gorm.DB) {
	log.Println("Running Migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.UserRole{},
		&models.Profile{},
		&models.CertificateType{},
		&models.Certificate{},
		&models.DocumentCategory{},
		&models.Document{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Migrations completed successfully.")
}

// seedReferenceData inserts the certificate types and document
// categories the portal ships with. Runs only on an empty table.
func seedReferenceData(db *gorm.DB) {
	var typeCount int64
	db.Model(&models.CertificateType{}).Count(&typeCount)
	if typeCount == 0 {
		types := []models.CertificateType{
			{Nombre: "Certificado Académico", Descripcion: "Certificado de notas y logros académicos", Activo: true, TiempoProcesamientoDias: 5},
			{Nombre: "Constancia de Estudio", Descripcion: "Constancia de matrícula vigente", Activo: true, TiempoProcesamientoDias: 3},
			{Nombre: "Certificado de Finalización", Descripcion: "Certificado de programa finalizado", Activo: true, TiempoProcesamientoDias: 8},
		}
		if err := db.Create(&types).Error; err != nil {
			log.Printf("Error seeding certificate types: %v", err)
		}
	}

	var catCount int64
	db.Model(&models.DocumentCategory{}).Count(&catCount)
	if catCount == 0 {
		categories := []models.DocumentCategory{
			{Nombre: "Identidad", Descripcion: "Documentos de identidad"},
			{Nombre: "Académico", Descripcion: "Soportes académicos"},
			{Nombre: "Otros", Descripcion: "Documentos varios"},
		}
		if err := db.Create(&categories).Error; err != nil {
			log.Printf("Error seeding document categories: %v", err)
		}
	}
}
