package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"patitas-adopciones/internal/adapters/http/middleware"
	"patitas-adopciones/internal/adapters/persistence/models"
	"patitas-adopciones/internal/config"
	"patitas-adopciones/internal/pkg/password"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	cfg := &config.Config{
		AppMode: "dev",
		Session: config.SessionConfig{Secret: "test-session", RememberDays: 30},
		JWT:     config.JWTConfig{Secret: "test-secret", ExpirationHours: 1},
	}
	config.AppConfig = cfg

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	config.DB = db

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.CustomErrorHandler,
	})
	Setup(app, db, cfg)

	return app, db
}

func seedUser(t *testing.T, db *gorm.DB, email, rol string) *models.User {
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
		Activo:       true,
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

func jsonRequest(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
}

func errorMessage(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	decodeBody(t, resp, &body)
	return body.Error
}

func loginToken(t *testing.T, app *fiber.App, email string) string {
	t.Helper()
	req := jsonRequest(t, http.MethodPost, "/api/auth/login", fiber.Map{
		"email":    email,
		"password": "secret123",
	})
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("login request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login returned %d", resp.StatusCode)
	}
	var body struct {
		Token string `json:"token"`
	}
	decodeBody(t, resp, &body)
	if body.Token == "" {
		t.Fatal("login returned an empty token")
	}
	return body.Token
}

func TestAPILogin(t *testing.T) {
	app, db := newTestApp(t)
	seedUser(t, db, "ana@example.com", models.RoleAdoptant)

	req := jsonRequest(t, http.MethodPost, "/api/auth/login", fiber.Map{
		"email":    "ana@example.com",
		"password": "secret123",
	})
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("got status %d, want 200", resp.StatusCode)
	}

	var body struct {
		Token string               `json:"token"`
		User  *models.UserResponse `json:"user"`
	}
	decodeBody(t, resp, &body)
	if body.Token == "" {
		t.Fatal("expected a token")
	}
	if body.User == nil || body.User.Email != "ana@example.com" {
		t.Fatalf("unexpected user payload: %+v", body.User)
	}
}

func TestAPILoginWrongPassword(t *testing.T) {
	app, db := newTestApp(t)
	seedUser(t, db, "ana@example.com", models.RoleAdoptant)

	req := jsonRequest(t, http.MethodPost, "/api/auth/login", fiber.Map{
		"email":    "ana@example.com",
		"password": "otracosa",
	})
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("got status %d, want 401", resp.StatusCode)
	}
	if msg := errorMessage(t, resp); msg != "Credenciales inválidas" {
		t.Fatalf("got error %q", msg)
	}
}

func TestAPILoginMissingFields(t *testing.T) {
	app, _ := newTestApp(t)

	req := jsonRequest(t, http.MethodPost, "/api/auth/login", fiber.Map{"email": "ana@example.com"})
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("got status %d, want 400", resp.StatusCode)
	}
	if msg := errorMessage(t, resp); msg != "Email y password son requeridos" {
		t.Fatalf("got error %q", msg)
	}
}

func TestAPIPetList(t *testing.T) {
	app, db := newTestApp(t)
	seedPet(t, db, "Rocky", "perro", models.PetAvailable)
	seedPet(t, db, "Luna", "gato", models.PetAvailable)
	seedPet(t, db, "Max", "perro", models.PetAdopted)

	req := httptest.NewRequest(http.MethodGet, "/api/mascotas/", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("got status %d, want 200", resp.StatusCode)
	}

	var pets []models.Pet
	decodeBody(t, resp, &pets)
	if len(pets) != 2 {
		t.Fatalf("listing must return only disponible pets, got %d", len(pets))
	}

	req = httptest.NewRequest(http.MethodGet, "/api/mascotas/?especie=gato", nil)
	resp, err = app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	decodeBody(t, resp, &pets)
	if len(pets) != 1 || pets[0].Nombre != "Luna" {
		t.Fatalf("species filter failed: %+v", pets)
	}
}

func TestAPIPetNotFound(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/mascotas/999", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("got status %d, want 404", resp.StatusCode)
	}
	if msg := errorMessage(t, resp); msg != "Mascota no encontrada" {
		t.Fatalf("got error %q", msg)
	}
}

func TestAPIBearerGuard(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/solicitudes/mias", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("got status %d, want 401", resp.StatusCode)
	}
	if msg := errorMessage(t, resp); msg != "Token no proporcionado" {
		t.Fatalf("got error %q", msg)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/solicitudes/mias", nil)
	req.Header.Set("Authorization", "Bearer no-es-un-token")
	resp, err = app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("got status %d, want 401", resp.StatusCode)
	}
	if msg := errorMessage(t, resp); msg != "Token inválido" {
		t.Fatalf("got error %q", msg)
	}
}

func TestAPICreateRequest(t *testing.T) {
	app, db := newTestApp(t)
	seedUser(t, db, "ana@example.com", models.RoleAdoptant)
	pet := seedPet(t, db, "Rocky", "perro", models.PetAvailable)

	token := loginToken(t, app, "ana@example.com")

	req := jsonRequest(t, http.MethodPost, "/api/solicitudes/", fiber.Map{
		"mascota_id":   pet.ID,
		"cuestionario": fiber.Map{"tipo_vivienda": "casa"},
	})
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("got status %d, want 201", resp.StatusCode)
	}

	var created models.RequestResponse
	decodeBody(t, resp, &created)
	if created.Estado != models.RequestPending {
		t.Fatalf("new request must be pendiente, got %q", created.Estado)
	}

	var stored models.Pet
	if err := db.First(&stored, pet.ID).Error; err != nil {
		t.Fatalf("failed to reload pet: %v", err)
	}
	if stored.Estado != models.PetInProcess {
		t.Fatalf("pet must move to en_proceso, got %q", stored.Estado)
	}
}

func TestAPICreateRequestPetNotAvailable(t *testing.T) {
	app, db := newTestApp(t)
	seedUser(t, db, "ana@example.com", models.RoleAdoptant)
	pet := seedPet(t, db, "Rocky", "perro", models.PetInProcess)

	token := loginToken(t, app, "ana@example.com")

	req := jsonRequest(t, http.MethodPost, "/api/solicitudes/", fiber.Map{
		"mascota_id":   pet.ID,
		"cuestionario": fiber.Map{},
	})
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("got status %d, want 400", resp.StatusCode)
	}
	if msg := errorMessage(t, resp); msg != "Mascota no disponible" {
		t.Fatalf("got error %q", msg)
	}

	var count int64
	if err := db.Model(&models.AdoptionRequest{}).Count(&count).Error; err != nil {
		t.Fatalf("failed to count requests: %v", err)
	}
	if count != 0 {
		t.Fatalf("no request row must be written, found %d", count)
	}
}

func TestAPICreateRequestDuplicate(t *testing.T) {
	app, db := newTestApp(t)
	seedUser(t, db, "ana@example.com", models.RoleAdoptant)
	pet := seedPet(t, db, "Rocky", "perro", models.PetAvailable)

	token := loginToken(t, app, "ana@example.com")

	body := fiber.Map{"mascota_id": pet.ID, "cuestionario": fiber.Map{}}

	req := jsonRequest(t, http.MethodPost, "/api/solicitudes/", body)
	req.Header.Set("Authorization", "Bearer "+token)
	if _, err := app.Test(req, -1); err != nil {
		t.Fatalf("request failed: %v", err)
	}

	// Release the pet so the duplicate reaches the uniqueness check
	if err := db.Model(&models.Pet{}).Where("id = ?", pet.ID).
		Update("estado", models.PetAvailable).Error; err != nil {
		t.Fatalf("failed to reset pet state: %v", err)
	}

	req = jsonRequest(t, http.MethodPost, "/api/solicitudes/", body)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("got status %d, want 409", resp.StatusCode)
	}
	if msg := errorMessage(t, resp); msg != "Ya has enviado una solicitud para esta mascota" {
		t.Fatalf("got error %q", msg)
	}
}

func TestAPICreateRequestInvalidBody(t *testing.T) {
	app, db := newTestApp(t)
	seedUser(t, db, "ana@example.com", models.RoleAdoptant)

	token := loginToken(t, app, "ana@example.com")

	req := jsonRequest(t, http.MethodPost, "/api/solicitudes/", fiber.Map{"mascota_id": 0})
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("got status %d, want 400", resp.StatusCode)
	}
	if msg := errorMessage(t, resp); msg != "Datos inválidos" {
		t.Fatalf("got error %q", msg)
	}
}

func TestAPIMineKeepsSubmissionOrder(t *testing.T) {
	app, db := newTestApp(t)
	user := seedUser(t, db, "ana@example.com", models.RoleAdoptant)
	first := seedPet(t, db, "Rocky", "perro", models.PetAvailable)
	second := seedPet(t, db, "Luna", "gato", models.PetAvailable)

	token := loginToken(t, app, "ana@example.com")

	for _, pet := range []*models.Pet{first, second} {
		req := jsonRequest(t, http.MethodPost, "/api/solicitudes/", fiber.Map{
			"mascota_id":   pet.ID,
			"cuestionario": fiber.Map{},
		})
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req, -1)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("got status %d, want 201", resp.StatusCode)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/solicitudes/mias", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("got status %d, want 200", resp.StatusCode)
	}

	var mine []models.RequestResponse
	decodeBody(t, resp, &mine)
	if len(mine) != 2 {
		t.Fatalf("expected 2 requests, got %d", len(mine))
	}
	if mine[0].MascotaID != first.ID || mine[1].MascotaID != second.ID {
		t.Fatalf("requests must keep submission order: %+v", mine)
	}
	if mine[0].UsuarioID != user.ID {
		t.Fatalf("request owned by user %d, want %d", mine[0].UsuarioID, user.ID)
	}
}

// sessionLogin posts the login form and returns the session cookie
func sessionLogin(t *testing.T, app *fiber.App, email string) *http.Cookie {
	t.Helper()

	form := url.Values{}
	form.Set("email", email)
	form.Set("password", "secret123")

	login := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(form.Encode()))
	login.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := app.Test(login, -1)
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("login returned %d, want 302", resp.StatusCode)
	}

	for _, c := range resp.Cookies() {
		if c.Name == "session_id" {
			return c
		}
	}
	t.Fatal("login did not set a session cookie")
	return nil
}

func TestAdminPagesRequireLogin(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/mascotas/admin/", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("got status %d, want 302", resp.StatusCode)
	}
	want := "/auth/login?next=" + url.QueryEscape("/mascotas/admin/")
	if location := resp.Header.Get("Location"); location != want {
		t.Fatalf("anonymous users must be sent to login, got %q, want %q", location, want)
	}
}

func TestAdminPagesRejectAdoptants(t *testing.T) {
	app, db := newTestApp(t)
	seedUser(t, db, "ana@example.com", models.RoleAdoptant)

	cookie := sessionLogin(t, app, "ana@example.com")

	req := httptest.NewRequest(http.MethodGet, "/mascotas/admin/", nil)
	req.AddCookie(cookie)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("got status %d, want 302", resp.StatusCode)
	}
	if location := resp.Header.Get("Location"); location != "/mascotas/" {
		t.Fatalf("adoptants must be sent back to the catalog, got %q", location)
	}
}

func TestAdminDecideUnknownAction(t *testing.T) {
	app, db := newTestApp(t)
	user := seedUser(t, db, "ana@example.com", models.RoleAdoptant)
	seedUser(t, db, "admin@example.com", models.RoleAdmin)
	pet := seedPet(t, db, "Rocky", "perro", models.PetInProcess)

	request := &models.AdoptionRequest{
		UsuarioID:    user.ID,
		MascotaID:    pet.ID,
		Cuestionario: models.Questionnaire{},
	}
	if err := db.Create(request).Error; err != nil {
		t.Fatalf("failed to seed request: %v", err)
	}

	cookie := sessionLogin(t, app, "admin@example.com")

	form := url.Values{}
	form.Set("accion", "archivar")

	target := fmt.Sprintf("/solicitudes/admin/revisar/%d", request.ID)
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(cookie)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("got status %d, want 302", resp.StatusCode)
	}
	if location := resp.Header.Get("Location"); location != target {
		t.Fatalf("unknown action must return to the review page, got %q", location)
	}

	var stored models.AdoptionRequest
	if err := db.First(&stored, request.ID).Error; err != nil {
		t.Fatalf("failed to reload request: %v", err)
	}
	if stored.Estado != models.RequestPending {
		t.Fatalf("request must stay pendiente, got %q", stored.Estado)
	}
}
