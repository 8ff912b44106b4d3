package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ghuser/gardenhub/pkg/database"
	"github.com/ghuser/gardenhub/pkg/events"
	"github.com/ghuser/gardenhub/pkg/kernel"
	"github.com/ghuser/gardenhub/services/plant/domain/models"
)

// PlantRepository implements repositories.PlantRepository against PostgreSQL.
type PlantRepository struct {
	db     *database.Database
	outbox events.TxEventWriter
}

// NewPlantRepository returns a repository on db. outbox may be nil.
func NewPlantRepository(db *database.Database, outbox events.TxEventWriter) *PlantRepository {
	return &PlantRepository{db: db, outbox: outbox}
}

const selectPlant = `
SELECT id, container_id, name, species, planted_date, notes, status, version, created_at, updated_at
FROM plants
WHERE id = $1`

func (r *PlantRepository) FindByID(ctx context.Context, id kernel.PlantID) (*models.PlantAggregate, error) {
	var (
		p           models.PlantPrimitives
		plantedDate sql.NullTime
		notes       sql.NullString
	)
	err := r.db.DB().QueryRowContext(ctx, selectPlant, id.String()).Scan(
		&p.ID, &p.ContainerID, &p.Name, &p.Species, &plantedDate, &notes, &p.Status, &p.Version, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query plant: %w", err)
	}
	if plantedDate.Valid {
		p.PlantedDate = &plantedDate.Time
	}
	if notes.Valid {
		p.Notes = &notes.String
	}
	return models.RehydratePlantAggregate(p)
}

const insertPlant = `
INSERT INTO plants (id, container_id, name, species, planted_date, notes, status, version, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, 1, $8, $9)`

const updatePlant = `
UPDATE plants
SET container_id = $2, name = $3, species = $4, planted_date = $5, notes = $6, status = $7,
    version = version + 1, updated_at = $9
WHERE id = $1 AND version = $8`

// Save inserts or compare-and-swap updates the plant row, then writes the
// plant's pending events in the same transaction.
func (r *PlantRepository) Save(ctx context.Context, pl *models.PlantAggregate) error {
	var version int
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		v, err := savePlant(ctx, tx, pl)
		if err != nil {
			return err
		}
		version = v
		return r.writeEvents(ctx, tx, pl)
	})
	if err != nil {
		return err
	}
	pl.MarkPersisted(version)
	r.drain(pl)
	return nil
}

func savePlant(ctx context.Context, tx *sql.Tx, pl *models.PlantAggregate) (int, error) {
	p := pl.Primitives()
	planted := nullTime(p.PlantedDate)
	if pl.Version() == 0 {
		_, err := tx.ExecContext(ctx, insertPlant,
			p.ID, p.ContainerID, p.Name, p.Species, planted, p.Notes, p.Status, p.CreatedAt, p.UpdatedAt)
		if database.IsCode(err, database.CodeUniqueViolation) {
			return 0, fmt.Errorf("plant %s: %w", p.ID, kernel.ErrConcurrentModification)
		}
		if err != nil {
			return 0, fmt.Errorf("insert plant: %w", err)
		}
		return 1, nil
	}
	res, err := tx.ExecContext(ctx, updatePlant,
		p.ID, p.ContainerID, p.Name, p.Species, planted, p.Notes, p.Status, pl.Version(), p.UpdatedAt)
	if err != nil {
		return 0, fmt.Errorf("update plant: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return 0, fmt.Errorf("update plant: %w", err)
	} else if n == 0 {
		return 0, fmt.Errorf("plant %s at version %d: %w", p.ID, pl.Version(), kernel.ErrConcurrentModification)
	}
	return pl.Version() + 1, nil
}

func (r *PlantRepository) Delete(ctx context.Context, pl *models.PlantAggregate) error {
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM plants WHERE id = $1`, pl.ID().String()); err != nil {
			return fmt.Errorf("delete plant: %w", err)
		}
		return r.writeEvents(ctx, tx, pl)
	})
	if err != nil {
		return err
	}
	r.drain(pl)
	return nil
}

func (r *PlantRepository) writeEvents(ctx context.Context, tx *sql.Tx, pl *models.PlantAggregate) error {
	if r.outbox == nil {
		return nil
	}
	if err := r.outbox.WriteTx(ctx, tx, pl.UncommittedEvents()); err != nil {
		return fmt.Errorf("write plant events: %w", err)
	}
	return nil
}

func (r *PlantRepository) drain(pl *models.PlantAggregate) {
	if r.outbox != nil {
		pl.PullEvents()
	}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
