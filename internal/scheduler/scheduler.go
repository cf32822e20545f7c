package scheduler

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/go-co-op/gocron"

	"hanzidrill/internal/service"
)

// Scheduler runs the daily housekeeping job: compute today's due set,
// push reminders, and write a dated CSV snapshot when a backup directory
// is configured.
type Scheduler struct {
	scheduler *gocron.Scheduler
	reviews   *service.ReviewService
	backups   *service.BackupService
	email     *service.EmailService
	reminders *service.ReminderService
	backupDir string
}

// New creates a scheduler instance
func New(reviews *service.ReviewService, backups *service.BackupService, email *service.EmailService, reminders *service.ReminderService, backupDir string) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.Local),
		reviews:   reviews,
		backups:   backups,
		email:     email,
		reminders: reminders,
		backupDir: backupDir,
	}
}

// Start schedules the daily job at the given hour and begins running
// asynchronously
func (s *Scheduler) Start(reminderHour int) error {
	at := fmt.Sprintf("%02d:00", reminderHour%24)
	if _, err := s.scheduler.Every(1).Day().At(at).Do(s.runDaily); err != nil {
		return fmt.Errorf("failed to schedule daily job: %w", err)
	}
	s.scheduler.StartAsync()
	log.Printf("Daily reminder job scheduled at %s", at)
	return nil
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// RunNow forces one immediate run of the daily job
func (s *Scheduler) RunNow() {
	s.runDaily()
}

func (s *Scheduler) runDaily() {
	today := time.Now()

	due, err := s.reviews.DueToday(today)
	if err != nil {
		log.Printf("Daily job: failed to compute due set: %v", err)
		return
	}
	log.Printf("Daily job: %d characters due on %s", len(due), today.Format("2006-01-02"))

	if err := s.reminders.SendDueReminder(due); err != nil {
		log.Printf("Daily job: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := s.email.SendReviewDigest(ctx, today, due); err != nil {
		log.Printf("Daily job: %v", err)
	}

	if s.backupDir != "" {
		if err := os.MkdirAll(s.backupDir, 0755); err != nil {
			log.Printf("Daily job: failed to create backup dir: %v", err)
			return
		}
		path := filepath.Join(s.backupDir,
			fmt.Sprintf("characters_%s.csv", today.Format("20060102")))
		if err := s.backups.ExportFile(path); err != nil {
			log.Printf("Daily job: snapshot failed: %v", err)
		} else {
			log.Printf("Daily job: snapshot written to %s", path)
		}
	}
}
