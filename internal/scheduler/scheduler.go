package scheduler

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler управляет запланированными задачами
type Scheduler struct {
	cron    *cron.Cron
	ctx     context.Context
	cancel  context.CancelFunc
	spec    string
	jobFunc func(ctx context.Context) error
}

// New создает новый планировщик для cron-выражения spec (UTC)
func New(spec string) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		cron:   cron.New(cron.WithLocation(time.UTC)),
		ctx:    ctx,
		cancel: cancel,
		spec:   spec,
	}
}

// SetJobFunction устанавливает периодическую задачу
func (s *Scheduler) SetJobFunction(f func(ctx context.Context) error) {
	s.jobFunc = f
}

// Start запускает планировщик
func (s *Scheduler) Start() error {
	if s.jobFunc == nil {
		log.Println("⚠️ Job function not set, scheduler will not run")
		return nil
	}
	if s.spec == "" {
		return errors.New("empty cron schedule")
	}

	_, err := s.cron.AddFunc(s.spec, func() {
		log.Printf("🕘 Triggered scheduled job (%s)", s.spec)
		if err := s.jobFunc(s.ctx); err != nil {
			log.Printf("❌ Scheduled job failed: %v", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	log.Printf("📅 Scheduler started with schedule %q (UTC)", s.spec)
	return nil
}

// Stop останавливает планировщик и ждёт завершения текущих задач
func (s *Scheduler) Stop() {
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}
	if s.cancel != nil {
		s.cancel()
	}
	log.Println("📅 Scheduler stopped")
}

// IsRunning проверяет, запущен ли планировщик
func (s *Scheduler) IsRunning() bool {
	return s.cron != nil && len(s.cron.Entries()) > 0
}
