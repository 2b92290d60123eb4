package scheduler

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler управляет ежедневным напоминанием об оценке настроения
type Scheduler struct {
	cron       *cron.Cron
	spec       string
	remindFunc func()
}

// New создает планировщик с cron-расписанием в локальном времени процесса
func New(spec string) *Scheduler {
	return &Scheduler{
		cron: cron.New(cron.WithLocation(time.Local)),
		spec: spec,
	}
}

// SetRemindFunction устанавливает функцию рассылки напоминаний
func (s *Scheduler) SetRemindFunction(f func()) {
	s.remindFunc = f
}

// Start запускает планировщик
func (s *Scheduler) Start() error {
	if s.remindFunc == nil {
		log.Println("⚠️ Remind function not set, scheduler will not send reminders")
		return nil
	}

	_, err := s.cron.AddFunc(s.spec, func() {
		log.Printf("🕘 Triggered mood reminder (%s)", s.spec)
		s.remindFunc()
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	log.Printf("📅 Scheduler started - mood reminders on %q", s.spec)
	return nil
}

// Stop останавливает планировщик
func (s *Scheduler) Stop() {
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}
	log.Println("📅 Scheduler stopped")
}
