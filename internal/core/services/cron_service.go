package services

import (
	"context"
	"log"

	"patitas-adopciones/internal/adapters/persistence/repositories"

	"github.com/robfig/cron/v3"
)

// CronService runs scheduled background jobs
type CronService struct {
	cron          *cron.Cron
	userRepo      repositories.UserRepository
	requestRepo   repositories.RequestRepository
	notifyService *NotificationService
}

// NewCronService creates a new cron service
func NewCronService(
	userRepo repositories.UserRepository,
	requestRepo repositories.RequestRepository,
	notifyService *NotificationService,
) *CronService {
	return &CronService{
		cron:          cron.New(),
		userRepo:      userRepo,
		requestRepo:   requestRepo,
		notifyService: notifyService,
	}
}

// Start registers and starts the scheduled jobs
func (s *CronService) Start() error {
	// Daily digest of requests awaiting review, 08:30 shelter time
	if _, err := s.cron.AddFunc("30 8 * * *", s.sendPendingDigest); err != nil {
		return err
	}

	s.cron.Start()
	log.Println("✅ Cron jobs started")
	return nil
}

// Stop stops the cron scheduler
func (s *CronService) Stop() {
	s.cron.Stop()
	log.Println("🛑 Cron jobs stopped")
}

// sendPendingDigest mails admins the pending request count
func (s *CronService) sendPendingDigest() {
	ctx := context.Background()

	pending, err := s.requestRepo.CountPending(ctx)
	if err != nil {
		log.Printf("❌ Pending digest: failed to count requests: %v", err)
		return
	}
	if pending == 0 {
		return
	}

	admins, err := s.userRepo.ListAdmins(ctx)
	if err != nil {
		log.Printf("❌ Pending digest: failed to list admins: %v", err)
		return
	}

	if s.notifyService != nil {
		s.notifyService.NotifyPendingDigest(admins, pending)
	}
	log.Printf("📬 Pending digest sent: %d requests awaiting review", pending)
}
