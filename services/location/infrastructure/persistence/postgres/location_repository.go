package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ghuser/gardenhub/pkg/database"
	"github.com/ghuser/gardenhub/pkg/events"
	"github.com/ghuser/gardenhub/pkg/kernel"
	"github.com/ghuser/gardenhub/services/location/domain/models"
)

// LocationRepository implements repositories.LocationRepository against PostgreSQL.
// Pending events are written through outbox in the same transaction as the
// row when outbox is set.
type LocationRepository struct {
	db     *database.Database
	outbox events.TxEventWriter
}

func NewLocationRepository(db *database.Database, outbox events.TxEventWriter) *LocationRepository {
	return &LocationRepository{db: db, outbox: outbox}
}

func (r *LocationRepository) FindByID(ctx context.Context, id kernel.LocationID) (*models.Location, error) {
	var (
		p    models.LocationPrimitives
		desc sql.NullString
	)
	err := r.db.DB().QueryRowContext(ctx,
		`SELECT id, name, type, description, version, created_at, updated_at FROM locations WHERE id = $1`,
		id.String(),
	).Scan(&p.ID, &p.Name, &p.Type, &desc, &p.Version, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query location: %w", err)
	}
	if desc.Valid {
		p.Description = &desc.String
	}
	return models.RehydrateLocation(p)
}

// Save inserts a new location or updates it when the stored version still matches.
func (r *LocationRepository) Save(ctx context.Context, l *models.Location) error {
	var version int
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		v, err := saveLocation(ctx, tx, l)
		if err != nil {
			return err
		}
		version = v
		return r.writeEvents(ctx, tx, l)
	})
	if err != nil {
		return err
	}
	l.MarkPersisted(version)
	r.drain(l)
	return nil
}

func saveLocation(ctx context.Context, tx *sql.Tx, l *models.Location) (int, error) {
	p := l.Primitives()
	if l.Version() == 0 {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO locations (id, name, type, description, version, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, 1, $5, $6)`,
			p.ID, p.Name, p.Type, p.Description, p.CreatedAt, p.UpdatedAt)
		if database.IsCode(err, database.CodeUniqueViolation) {
			return 0, fmt.Errorf("location %s: %w", p.ID, kernel.ErrConcurrentModification)
		}
		if err != nil {
			return 0, fmt.Errorf("insert location: %w", err)
		}
		return 1, nil
	}

	res, err := tx.ExecContext(ctx,
		`UPDATE locations SET name = $2, type = $3, description = $4, version = version + 1, updated_at = $6
		 WHERE id = $1 AND version = $5`,
		p.ID, p.Name, p.Type, p.Description, l.Version(), p.UpdatedAt)
	if err != nil {
		return 0, fmt.Errorf("update location: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("update location: %w", err)
	}
	if n == 0 {
		return 0, fmt.Errorf("location %s at version %d: %w", p.ID, l.Version(), kernel.ErrConcurrentModification)
	}
	return l.Version() + 1, nil
}

func (r *LocationRepository) Delete(ctx context.Context, l *models.Location) error {
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM locations WHERE id = $1`, l.ID().String()); err != nil {
			return fmt.Errorf("delete location: %w", err)
		}
		return r.writeEvents(ctx, tx, l)
	})
	if err != nil {
		return err
	}
	r.drain(l)
	return nil
}

func (r *LocationRepository) writeEvents(ctx context.Context, tx *sql.Tx, l *models.Location) error {
	if r.outbox == nil {
		return nil
	}
	if err := r.outbox.WriteTx(ctx, tx, l.UncommittedEvents()); err != nil {
		return fmt.Errorf("write location events: %w", err)
	}
	return nil
}

func (r *LocationRepository) drain(l *models.Location) {
	if r.outbox != nil {
		l.PullEvents()
	}
}
