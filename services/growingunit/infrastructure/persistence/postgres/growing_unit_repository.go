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
	"github.com/ghuser/gardenhub/services/growingunit/domain"
	"github.com/ghuser/gardenhub/services/growingunit/domain/models"
)

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// GrowingUnitRepository implements repositories.GrowingUnitRepository against
// PostgreSQL. The unit row carries a version used for compare-and-swap; plant
// rows are rewritten on every save in aggregate order.
type GrowingUnitRepository struct {
	db     *database.Database
	outbox events.TxEventWriter
}

// NewGrowingUnitRepository returns a repository on db. With a non-nil outbox,
// saves and deletes write the units' pending events in their transaction.
func NewGrowingUnitRepository(db *database.Database, outbox events.TxEventWriter) *GrowingUnitRepository {
	return &GrowingUnitRepository{db: db, outbox: outbox}
}

const selectGrowingUnit = `
SELECT id, location_id, name, type, capacity, dim_length, dim_width, dim_height, dim_unit,
       version, created_at, updated_at
FROM growing_units
WHERE id = $1`

const selectGrowingUnitPlants = `
SELECT id, name, species, planted_date, notes, status, created_at, updated_at
FROM growing_unit_plants
WHERE growing_unit_id = $1
ORDER BY position`

// FindByID returns (nil, nil) when the unit does not exist.
func (r *GrowingUnitRepository) FindByID(ctx context.Context, id kernel.GrowingUnitID) (*models.GrowingUnit, error) {
	q := r.db.DB()

	var (
		p          models.GrowingUnitPrimitives
		locationID sql.NullString
		length     sql.NullFloat64
		width      sql.NullFloat64
		height     sql.NullFloat64
		unit       sql.NullString
	)
	err := q.QueryRowContext(ctx, selectGrowingUnit, id.String()).Scan(
		&p.ID, &locationID, &p.Name, &p.Type, &p.Capacity,
		&length, &width, &height, &unit,
		&p.Version, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query growing unit: %w", err)
	}
	if locationID.Valid {
		p.LocationID = &locationID.String
	}
	if unit.Valid {
		p.Dimensions = &models.DimensionsPrimitives{
			Length: length.Float64,
			Width:  width.Float64,
			Height: height.Float64,
			Unit:   unit.String,
		}
	}

	if p.Plants, err = loadPlants(ctx, q, p.ID); err != nil {
		return nil, err
	}
	return models.RehydrateGrowingUnit(p)
}

func loadPlants(ctx context.Context, q querier, unitID string) ([]models.PlantPrimitives, error) {
	rows, err := q.QueryContext(ctx, selectGrowingUnitPlants, unitID)
	if err != nil {
		return nil, fmt.Errorf("query growing unit plants: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	plants := []models.PlantPrimitives{}
	for rows.Next() {
		var (
			pl          models.PlantPrimitives
			plantedDate sql.NullTime
			notes       sql.NullString
		)
		if err := rows.Scan(&pl.ID, &pl.Name, &pl.Species, &plantedDate, &notes, &pl.Status, &pl.CreatedAt, &pl.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan growing unit plant: %w", err)
		}
		if plantedDate.Valid {
			t := plantedDate.Time
			pl.PlantedDate = &t
		}
		if notes.Valid {
			pl.Notes = &notes.String
		}
		unit := unitID
		pl.GrowingUnitID = &unit
		plants = append(plants, pl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate growing unit plants: %w", err)
	}
	return plants, nil
}

// Save persists one unit. It returns kernel.ErrConcurrentModification when
// the stored version moved since the unit was loaded.
func (r *GrowingUnitRepository) Save(ctx context.Context, unit *models.GrowingUnit) error {
	return r.SaveAll(ctx, unit)
}

// SaveAll persists units in order inside one transaction, followed by their
// pending events in the same order. Versions advance and events drain only
// once the transaction commits.
func (r *GrowingUnitRepository) SaveAll(ctx context.Context, units ...*models.GrowingUnit) error {
	versions := make([]int, len(units))
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		for i, u := range units {
			v, err := saveUnit(ctx, tx, u)
			if err != nil {
				return err
			}
			versions[i] = v
		}
		for _, u := range units {
			if err := r.writeEvents(ctx, tx, u); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	for i, u := range units {
		u.MarkPersisted(versions[i])
		r.drain(u)
	}
	return nil
}

func (r *GrowingUnitRepository) writeEvents(ctx context.Context, tx *sql.Tx, u *models.GrowingUnit) error {
	if r.outbox == nil {
		return nil
	}
	if err := r.outbox.WriteTx(ctx, tx, u.UncommittedEvents()); err != nil {
		return fmt.Errorf("write growing unit events: %w", err)
	}
	return nil
}

func (r *GrowingUnitRepository) drain(u *models.GrowingUnit) {
	if r.outbox != nil {
		u.PullEvents()
	}
}

const insertGrowingUnit = `
INSERT INTO growing_units
    (id, location_id, name, type, capacity, dim_length, dim_width, dim_height, dim_unit, version, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 1, $10, $11)`

const updateGrowingUnit = `
UPDATE growing_units
SET location_id = $2, name = $3, type = $4, capacity = $5,
    dim_length = $6, dim_width = $7, dim_height = $8, dim_unit = $9,
    version = version + 1, updated_at = $11
WHERE id = $1 AND version = $10`

const insertGrowingUnitPlant = `
INSERT INTO growing_unit_plants
    (id, growing_unit_id, position, name, species, planted_date, notes, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

func saveUnit(ctx context.Context, tx querier, u *models.GrowingUnit) (int, error) {
	p := u.Primitives()
	var length, width, height sql.NullFloat64
	var unit sql.NullString
	if d := p.Dimensions; d != nil {
		length = sql.NullFloat64{Float64: d.Length, Valid: true}
		width = sql.NullFloat64{Float64: d.Width, Valid: true}
		height = sql.NullFloat64{Float64: d.Height, Valid: true}
		unit = sql.NullString{String: d.Unit, Valid: true}
	}

	next := u.Version() + 1
	if u.Version() == 0 {
		_, err := tx.ExecContext(ctx, insertGrowingUnit,
			p.ID, p.LocationID, p.Name, p.Type, p.Capacity, length, width, height, unit, p.CreatedAt, p.UpdatedAt)
		if database.IsCode(err, database.CodeUniqueViolation) {
			return 0, fmt.Errorf("growing unit %s: %w", p.ID, kernel.ErrConcurrentModification)
		}
		if err != nil {
			return 0, fmt.Errorf("insert growing unit: %w", err)
		}
	} else {
		res, err := tx.ExecContext(ctx, updateGrowingUnit,
			p.ID, p.LocationID, p.Name, p.Type, p.Capacity, length, width, height, unit, u.Version(), p.UpdatedAt)
		if err != nil {
			return 0, fmt.Errorf("update growing unit: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("update growing unit: %w", err)
		}
		if n == 0 {
			return 0, fmt.Errorf("growing unit %s at version %d: %w", p.ID, u.Version(), kernel.ErrConcurrentModification)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM growing_unit_plants WHERE growing_unit_id = $1`, p.ID); err != nil {
		return 0, fmt.Errorf("clear growing unit plants: %w", err)
	}
	for i, pl := range p.Plants {
		if _, err := tx.ExecContext(ctx, insertGrowingUnitPlant,
			pl.ID, p.ID, i, pl.Name, pl.Species, nullTime(pl.PlantedDate), pl.Notes, pl.Status, pl.CreatedAt, pl.UpdatedAt,
		); err != nil {
			if database.IsCode(err, database.CodeUniqueViolation) {
				return 0, &domain.PlantHeldByAnotherGrowingUnitError{GrowingUnitID: u.ID(), PlantID: u.Plants()[i].ID()}
			}
			return 0, fmt.Errorf("insert growing unit plant: %w", err)
		}
	}
	return next, nil
}

// Delete removes the unit and, by cascade, its plants.
func (r *GrowingUnitRepository) Delete(ctx context.Context, unit *models.GrowingUnit) error {
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM growing_units WHERE id = $1`, unit.ID().String()); err != nil {
			return fmt.Errorf("delete growing unit: %w", err)
		}
		return r.writeEvents(ctx, tx, unit)
	})
	if err != nil {
		return err
	}
	r.drain(unit)
	return nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
