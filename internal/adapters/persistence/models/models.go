package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Usuarios
// ============================================================

// User roles
const (
	RoleAdoptant = "adoptante"
	RoleAdmin    = "admin"
)

// User represents the usuarios table. It covers both adoptants and
// shelter administrators; the role decides what they can do.
type User struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Email         string    `gorm:"uniqueIndex;size:120;not null" json:"email"`
	PasswordHash  string    `gorm:"column:password_hash;size:255;not null" json:"-"`
	Nombre        string    `gorm:"size:100;not null" json:"nombre"`
	Telefono      *string   `gorm:"size:20" json:"telefono"`
	Direccion     *string   `gorm:"type:text" json:"direccion"`
	Rol           string    `gorm:"size:20;not null;default:'adoptante';index" json:"rol"`
	FechaRegistro time.Time `gorm:"column:fecha_registro;autoCreateTime" json:"fecha_registro"`
	// No column default here: GORM skips zero-value fields when a
	// default is set, which would turn a created Activo=false into true.
	// Every create path sets the flag explicitly.
	Activo bool `gorm:"not null" json:"activo"`

	// Relations
	Solicitudes []AdoptionRequest `gorm:"foreignKey:UsuarioID;constraint:OnDelete:CASCADE" json:"-"`
}

func (User) TableName() string {
	return "usuarios"
}

// IsAdmin checks whether the user is a shelter administrator
func (u *User) IsAdmin() bool {
	return u.Rol == RoleAdmin
}

// UserResponse DTO. The password hash never leaves the server.
type UserResponse struct {
	ID            uint      `json:"id"`
	Email         string    `json:"email"`
	Nombre        string    `json:"nombre"`
	Telefono      *string   `json:"telefono"`
	Direccion     *string   `json:"direccion"`
	Rol           string    `json:"rol"`
	FechaRegistro time.Time `json:"fecha_registro"`
	Activo        bool      `json:"activo"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:            u.ID,
		Email:         u.Email,
		Nombre:        u.Nombre,
		Telefono:      u.Telefono,
		Direccion:     u.Direccion,
		Rol:           u.Rol,
		FechaRegistro: u.FechaRegistro,
		Activo:        u.Activo,
	}
}

// ============================================================
// Mascotas
// ============================================================

// Pet lifecycle states
const (
	PetAvailable = "disponible"
	PetInProcess = "en_proceso"
	PetAdopted   = "adoptado"
)

// ValidPetState reports whether s is one of the three pet states
func ValidPetState(s string) bool {
	return s == PetAvailable || s == PetInProcess || s == PetAdopted
}

// Pet represents the mascotas table
type Pet struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Nombre       string    `gorm:"size:100;not null" json:"nombre"`
	Especie      string    `gorm:"size:50;not null;index" json:"especie"`
	Raza         *string   `gorm:"size:100" json:"raza"`
	EdadAprox    *int      `gorm:"column:edad_aprox" json:"edad_aprox"`
	Sexo         *string   `gorm:"size:10" json:"sexo"`
	Tamano       *string   `gorm:"size:20" json:"tamano"`
	Descripcion  string    `gorm:"type:text" json:"descripcion"`
	Estado       string    `gorm:"size:20;not null;default:'disponible';index" json:"estado"`
	FotoURL      *string   `gorm:"column:foto_url;size:255" json:"foto_url"`
	FechaIngreso time.Time `gorm:"column:fecha_ingreso;autoCreateTime" json:"fecha_ingreso"`
	Vacunado     bool      `gorm:"not null;default:false" json:"vacunado"`
	Esterilizado bool      `gorm:"not null;default:false" json:"esterilizado"`

	// Relations
	Solicitudes []AdoptionRequest `gorm:"foreignKey:MascotaID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Pet) TableName() string {
	return "mascotas"
}

// IsAvailable checks whether the pet can still receive applications
func (p *Pet) IsAvailable() bool {
	return p.Estado == PetAvailable
}

// ============================================================
// Solicitudes
// ============================================================

// Adoption request states
const (
	RequestPending  = "pendiente"
	RequestApproved = "aprobada"
	RequestRejected = "rechazada"
)

// Questionnaire holds the adoption-suitability answers as a JSON column
type Questionnaire map[string]interface{}

// Value marshals the questionnaire for storage
func (q Questionnaire) Value() (driver.Value, error) {
	if q == nil {
		return "{}", nil
	}
	b, err := json.Marshal(q)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan decodes the stored JSON back into the map
func (q *Questionnaire) Scan(value interface{}) error {
	if value == nil {
		*q = Questionnaire{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, q)
	case string:
		return json.Unmarshal([]byte(v), q)
	default:
		return fmt.Errorf("cuestionario: unsupported scan type %T", value)
	}
}

// AdoptionRequest represents the solicitudes table. A user can apply at
// most once per pet; the composite unique index is the authority under
// concurrent submissions.
type AdoptionRequest struct {
	ID               uint          `gorm:"primaryKey" json:"id"`
	UsuarioID        uint          `gorm:"column:usuario_id;not null;index;uniqueIndex:idx_usuario_mascota" json:"usuario_id"`
	MascotaID        uint          `gorm:"column:mascota_id;not null;index;uniqueIndex:idx_usuario_mascota" json:"mascota_id"`
	FechaSolicitud   time.Time     `gorm:"column:fecha_solicitud;autoCreateTime" json:"fecha_solicitud"`
	Estado           string        `gorm:"size:20;not null;default:'pendiente';index" json:"estado"`
	Cuestionario     Questionnaire `gorm:"column:cuestionario_json;type:jsonb" json:"cuestionario"`
	ComentariosAdmin *string       `gorm:"column:comentarios_admin;type:text" json:"comentarios_admin"`
	FechaRevision    *time.Time    `gorm:"column:fecha_revision" json:"fecha_revision"`
	RevisadoPor      *uint         `gorm:"column:revisado_por" json:"revisado_por"`

	// Relations
	Usuario *User `gorm:"foreignKey:UsuarioID" json:"-"`
	Mascota *Pet  `gorm:"foreignKey:MascotaID" json:"-"`
	Revisor *User `gorm:"foreignKey:RevisadoPor" json:"-"`
}

func (AdoptionRequest) TableName() string {
	return "solicitudes"
}

// IsPending checks whether the request is still awaiting review
func (r *AdoptionRequest) IsPending() bool {
	return r.Estado == RequestPending
}

// RequestResponse DTO
type RequestResponse struct {
	ID               uint          `json:"id"`
	UsuarioID        uint          `json:"usuario_id"`
	MascotaID        uint          `json:"mascota_id"`
	FechaSolicitud   time.Time     `json:"fecha_solicitud"`
	Estado           string        `json:"estado"`
	Cuestionario     Questionnaire `json:"cuestionario"`
	ComentariosAdmin *string       `json:"comentarios_admin"`
	FechaRevision    *time.Time    `json:"fecha_revision"`
	RevisadoPor      *uint         `json:"revisado_por"`
}

func (r *AdoptionRequest) ToResponse() *RequestResponse {
	return &RequestResponse{
		ID:               r.ID,
		UsuarioID:        r.UsuarioID,
		MascotaID:        r.MascotaID,
		FechaSolicitud:   r.FechaSolicitud,
		Estado:           r.Estado,
		Cuestionario:     r.Cuestionario,
		ComentariosAdmin: r.ComentariosAdmin,
		FechaRevision:    r.FechaRevision,
		RevisadoPor:      r.RevisadoPor,
	}
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Pet{},
		&AdoptionRequest{},
	)
}
