package services

import (
	"fmt"
	"log"

	"patitas-adopciones/internal/adapters/persistence/models"
	"patitas-adopciones/internal/config"

	"github.com/wneessen/go-mail"
)

// NotificationService sends mail notifications about adoption requests.
// Disabled when no SMTP credentials are configured; every Notify method
// is then a no-op so callers never need to check.
type NotificationService struct {
	cfg     *config.Config
	enabled bool
}

// NewNotificationService creates a new notification service
func NewNotificationService(cfg *config.Config) *NotificationService {
	return &NotificationService{
		cfg:     cfg,
		enabled: cfg.Mail.Username != "",
	}
}

// IsEnabled checks if notification is enabled
func (s *NotificationService) IsEnabled() bool {
	return s.enabled
}

// send delivers a plain text mail to the given recipients
func (s *NotificationService) send(to []string, subject, body string) error {
	if !s.enabled || len(to) == 0 {
		return nil
	}

	msg := mail.NewMsg()
	if err := msg.From(s.cfg.Mail.DefaultSender); err != nil {
		return err
	}
	if err := msg.To(to...); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	opts := []mail.Option{
		mail.WithPort(s.cfg.Mail.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(s.cfg.Mail.Username),
		mail.WithPassword(s.cfg.Mail.Password),
	}
	if s.cfg.Mail.UseTLS {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}

	client, err := mail.NewClient(s.cfg.Mail.Server, opts...)
	if err != nil {
		return err
	}

	return client.DialAndSend(msg)
}

// NotifyDecision mails the applicant when their request is decided.
// The request must carry its Usuario and Mascota preloads.
func (s *NotificationService) NotifyDecision(request *models.AdoptionRequest) {
	if !s.enabled {
		return
	}

	if request.Usuario == nil || request.Mascota == nil || request.Usuario.Email == "" {
		return
	}

	petName := request.Mascota.Nombre
	var subject, body string

	switch request.Estado {
	case models.RequestApproved:
		subject = fmt.Sprintf("Solicitud aprobada: %s", petName)
		body = fmt.Sprintf(
			"Hola %s,\n\n¡Buenas noticias! Tu solicitud de adopción para %s fue aprobada.\n\nEl refugio se pondrá en contacto contigo para coordinar la entrega.\n\nEquipo Patitas",
			request.Usuario.Nombre, petName,
		)
	case models.RequestRejected:
		subject = fmt.Sprintf("Solicitud rechazada: %s", petName)
		body = fmt.Sprintf(
			"Hola %s,\n\nLamentamos informarte que tu solicitud de adopción para %s fue rechazada.\n\nGracias por tu interés en adoptar.\n\nEquipo Patitas",
			request.Usuario.Nombre, petName,
		)
	default:
		return
	}

	if comment := request.ComentariosAdmin; comment != nil && *comment != "" {
		body += fmt.Sprintf("\n\nComentarios del refugio: %s", *comment)
	}

	if err := s.send([]string{request.Usuario.Email}, subject, body); err != nil {
		log.Printf("⚠️ Failed to send decision mail for request #%d: %v", request.ID, err)
	}
}

// NotifyPendingDigest mails admins the count of requests awaiting review
func (s *NotificationService) NotifyPendingDigest(admins []*models.User, pending int64) {
	if !s.enabled || pending == 0 {
		return
	}

	to := make([]string, 0, len(admins))
	for _, admin := range admins {
		if admin.Email != "" {
			to = append(to, admin.Email)
		}
	}

	subject := fmt.Sprintf("Solicitudes pendientes: %d", pending)
	body := fmt.Sprintf(
		"Hay %d solicitudes de adopción esperando revisión.\n\nIngresa al panel de administración para revisarlas.",
		pending,
	)

	if err := s.send(to, subject, body); err != nil {
		log.Printf("⚠️ Failed to send pending digest: %v", err)
	}
}
