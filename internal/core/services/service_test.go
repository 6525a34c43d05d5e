package services

import (
	"fmt"
	"testing"

	"patitas-adopciones/internal/adapters/persistence/models"
	"patitas-adopciones/internal/adapters/persistence/repositories"
	"patitas-adopciones/internal/config"
	"patitas-adopciones/internal/pkg/password"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := models.AutoMigrate(conn); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return conn
}

func testConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			Secret:          "test-secret",
			ExpirationHours: 1,
		},
	}
}

func seedUser(t *testing.T, db *gorm.DB, email, rol string, activo bool) *models.User {
	t.Helper()
	hash, err := password.Hash("secret123")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := &models.User{
		Email:        email,
		Nombre:       "Usuario de Prueba",
		PasswordHash: hash,
		Rol:          rol,
		Activo:       activo,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to seed user %s: %v", email, err)
	}
	return user
}

func seedPet(t *testing.T, db *gorm.DB, nombre, especie, estado string) *models.Pet {
	t.Helper()
	pet := &models.Pet{
		Nombre:      nombre,
		Especie:     especie,
		Descripcion: "Una mascota cariñosa que busca hogar.",
		Estado:      estado,
	}
	if err := db.Create(pet).Error; err != nil {
		t.Fatalf("failed to seed pet %s: %v", nombre, err)
	}
	return pet
}

func newTestAuthService(db *gorm.DB) *AuthService {
	return NewAuthService(repositories.NewUserRepository(db), testConfig())
}

func newTestPetService(db *gorm.DB) *PetService {
	return NewPetService(repositories.NewPetRepository(db), repositories.NewRequestRepository(db))
}

func newTestRequestService(db *gorm.DB) *RequestService {
	return NewRequestService(db, repositories.NewRequestRepository(db), repositories.NewPetRepository(db), nil)
}
