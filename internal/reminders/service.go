// Package reminders keeps payment reminders in line with the expenses
// they belong to.
//
// Every unpaid expense with a due date has at most one reminder, addressed
// by Key. Mutations of expenses call Sync or Retract after they have been
// persisted. Resync rebuilds all reminders from the database and is run
// once at startup to recover from any inconsistency between the two.
package reminders

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/pocket-ledger/backend/internal/models"
	"github.com/pocket-ledger/backend/internal/notifications"
	"github.com/rs/zerolog/log"
)

// Scheduler schedules and cancels notifications. It is implemented by
// *notifications.Scheduler.
type Scheduler interface {
	Schedule(ctx context.Context, req notifications.Request) (string, bool)
	Cancel(ctx context.Context, key string)
	CancelAll(ctx context.Context)
	List(ctx context.Context) []notifications.Pending
}

// Service serializes all reminder operations of the process, so the cancel
// for an expense always completes before its reschedule.
type Service struct {
	mu        sync.Mutex
	scheduler Scheduler
	store     Store
	policy    Policy
	formatter Formatter
	now       func() time.Time
}

type Option func(*Service)

// WithClock sets the clock fire times are compared against.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithFormatter sets the formatter for reminder texts.
func WithFormatter(f Formatter) Option {
	return func(s *Service) {
		s.formatter = f
	}
}

func NewService(scheduler Scheduler, store Store, policy Policy, opts ...Option) *Service {
	s := &Service{
		scheduler: scheduler,
		store:     store,
		policy:    policy,
		formatter: DefaultFormatter(),
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Policy returns the policy the service computes fire times with.
func (s *Service) Policy() Policy {
	return s.policy
}

// Sync brings the reminder of an expense in line with its state. Any pending
// reminder is cancelled first. A new one is scheduled if the expense is
// unpaid and its due date is far enough in the future.
//
// It reports whether a reminder is scheduled after the call.
func (s *Service) Sync(ctx context.Context, expense models.Expense) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.scheduler.Cancel(ctx, Key(expense.ID))

	if expense.Paid || strings.TrimSpace(expense.DueDate) == "" {
		return false
	}

	name, err := s.store.ConceptName(ctx, expense.ConceptID)
	if err != nil {
		log.Error().Err(err).Uint("expense", expense.ID).Msg("could not load concept for reminder")
		return false
	}

	return s.schedule(ctx, models.ReminderCandidate{
		ExpenseID:   expense.ID,
		ConceptID:   expense.ConceptID,
		ConceptName: name,
		Amount:      expense.Amount,
		DueDate:     expense.DueDate,
	})
}

// Retract cancels the reminder of an expense. It is safe to call for
// expenses that never had one.
func (s *Service) Retract(ctx context.Context, expenseID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.scheduler.Cancel(ctx, Key(expenseID))
}

// Resync rebuilds the reminders for all unpaid expenses with a due date and
// returns how many reminders were scheduled.
//
// Reminders for expenses that are no longer pending are cancelled.
// Failures for single expenses are logged and do not stop the resync.
func (s *Service) Resync(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	candidates, err := s.store.Pending(ctx)
	if err != nil {
		log.Error().Err(err).Msg("resync: could not load pending expenses")
		return 0
	}

	wanted := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		wanted[Key(c.ExpenseID)] = true
	}

	for _, p := range s.scheduler.List(ctx) {
		if _, ok := ParseKey(p.Key); ok && !wanted[p.Key] {
			log.Debug().Str("key", p.Key).Msg("resync: cancelling stale reminder")
			s.scheduler.Cancel(ctx, p.Key)
		}
	}

	count := 0
	for _, c := range candidates {
		if err := ctx.Err(); err != nil {
			log.Warn().Err(err).Int("scheduled", count).Msg("resync aborted")
			return count
		}

		s.scheduler.Cancel(ctx, Key(c.ExpenseID))
		if s.schedule(ctx, c) {
			count++
		}
	}

	log.Info().Int("pending", len(candidates)).Int("scheduled", count).Msg("reminders resynced")
	return count
}

// Pending lists all pending reminders.
func (s *Service) Pending(ctx context.Context) []notifications.Pending {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.scheduler.List(ctx)
}

// CancelAll cancels every pending reminder.
func (s *Service) CancelAll(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.scheduler.CancelAll(ctx)
}

// schedule schedules the reminder for c if the policy yields a fire time.
// The caller must hold s.mu and have cancelled the previous reminder.
func (s *Service) schedule(ctx context.Context, c models.ReminderCandidate) bool {
	fireAt, ok := s.policy.FireTime(c.DueDate, s.now())
	if !ok {
		log.Debug().Uint("expense", c.ExpenseID).Str("dueDate", c.DueDate).Msg("no reminder, due date is invalid or too close")
		return false
	}

	_, ok = s.scheduler.Schedule(ctx, notifications.Request{
		Key:    Key(c.ExpenseID),
		Title:  s.formatter.Title(),
		Body:   s.formatter.Body(c.ConceptName, c.Amount, c.DueDate),
		FireAt: fireAt,
		Data:   payload(c),
	})

	return ok
}
