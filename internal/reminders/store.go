package reminders

import (
	"context"

	"github.com/pocket-ledger/backend/internal/models"
)

// Store is the persisted state reminders are derived from.
type Store interface {
	// Pending returns all unpaid expenses with a due date.
	Pending(ctx context.Context) ([]models.ReminderCandidate, error)

	// ConceptName returns the name of a concept.
	ConceptName(ctx context.Context, conceptID uint) (string, error)
}

// DBStore reads from the database connection in models.DB.
type DBStore struct{}

func (DBStore) Pending(ctx context.Context) ([]models.ReminderCandidate, error) {
	return models.PendingReminders(models.DB.WithContext(ctx))
}

func (DBStore) ConceptName(ctx context.Context, conceptID uint) (string, error) {
	return models.ConceptName(models.DB.WithContext(ctx), conceptID)
}
