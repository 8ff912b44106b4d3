package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ghuser/gardenhub/pkg/database"
	"github.com/ghuser/gardenhub/pkg/events"
	"github.com/ghuser/gardenhub/pkg/kernel"
	"github.com/ghuser/gardenhub/services/plantspecies/domain/models"
)

type PlantSpeciesRepository struct {
	db     *database.Database
	outbox events.TxEventWriter
}

func NewPlantSpeciesRepository(db *database.Database, outbox events.TxEventWriter) *PlantSpeciesRepository {
	return &PlantSpeciesRepository{db: db, outbox: outbox}
}

const selectPlantSpecies = `
SELECT id, common_name, scientific_name, family, description, version, created_at, updated_at
FROM plant_species
`

func (r *PlantSpeciesRepository) FindByID(ctx context.Context, id kernel.PlantSpeciesID) (*models.PlantSpecies, error) {
	return r.findOne(ctx, selectPlantSpecies+`WHERE id = $1`, id.String())
}

// FindByScientificName matches case-insensitively, mirroring the unique index.
func (r *PlantSpeciesRepository) FindByScientificName(ctx context.Context, name string) (*models.PlantSpecies, error) {
	return r.findOne(ctx, selectPlantSpecies+`WHERE lower(scientific_name) = lower($1)`, name)
}

func (r *PlantSpeciesRepository) findOne(ctx context.Context, query string, arg any) (*models.PlantSpecies, error) {
	var (
		p           models.PlantSpeciesPrimitives
		family      sql.NullString
		description sql.NullString
	)
	err := r.db.DB().QueryRowContext(ctx, query, arg).Scan(
		&p.ID, &p.CommonName, &p.ScientificName, &family, &description, &p.Version, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query plant species: %w", err)
	}
	if family.Valid {
		p.Family = &family.String
	}
	if description.Valid {
		p.Description = &description.String
	}
	return models.RehydratePlantSpecies(p)
}

// Save inserts or compare-and-swap updates, writing pending events in the
// same transaction.
func (r *PlantSpeciesRepository) Save(ctx context.Context, s *models.PlantSpecies) error {
	var version int
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		v, err := saveSpecies(ctx, tx, s)
		if err != nil {
			return err
		}
		version = v
		return r.writeEvents(ctx, tx, s)
	})
	if err != nil {
		return err
	}
	s.MarkPersisted(version)
	r.drain(s)
	return nil
}

// saveSpecies maps a unique violation on the scientific name index to a
// concurrent writer having claimed the name first.
func saveSpecies(ctx context.Context, tx *sql.Tx, s *models.PlantSpecies) (int, error) {
	p := s.Primitives()
	if s.Version() == 0 {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO plant_species (id, common_name, scientific_name, family, description, version, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, 1, $6, $7)`,
			p.ID, p.CommonName, p.ScientificName, p.Family, p.Description, p.CreatedAt, p.UpdatedAt)
		if database.IsCode(err, database.CodeUniqueViolation) {
			return 0, fmt.Errorf("plant species %s: %w", p.ScientificName, kernel.ErrConcurrentModification)
		}
		if err != nil {
			return 0, fmt.Errorf("insert plant species: %w", err)
		}
		return 1, nil
	}
	res, err := tx.ExecContext(ctx,
		`UPDATE plant_species
		 SET common_name = $2, scientific_name = $3, family = $4, description = $5, version = version + 1, updated_at = $7
		 WHERE id = $1 AND version = $6`,
		p.ID, p.CommonName, p.ScientificName, p.Family, p.Description, s.Version(), p.UpdatedAt)
	if database.IsCode(err, database.CodeUniqueViolation) {
		return 0, fmt.Errorf("plant species %s: %w", p.ScientificName, kernel.ErrConcurrentModification)
	}
	if err != nil {
		return 0, fmt.Errorf("update plant species: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("update plant species: %w", err)
	}
	if n == 0 {
		return 0, fmt.Errorf("plant species %s at version %d: %w", p.ID, s.Version(), kernel.ErrConcurrentModification)
	}
	return s.Version() + 1, nil
}

func (r *PlantSpeciesRepository) Delete(ctx context.Context, s *models.PlantSpecies) error {
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM plant_species WHERE id = $1`, s.ID().String()); err != nil {
			return fmt.Errorf("delete plant species: %w", err)
		}
		return r.writeEvents(ctx, tx, s)
	})
	if err != nil {
		return err
	}
	r.drain(s)
	return nil
}

func (r *PlantSpeciesRepository) writeEvents(ctx context.Context, tx *sql.Tx, s *models.PlantSpecies) error {
	if r.outbox == nil {
		return nil
	}
	if err := r.outbox.WriteTx(ctx, tx, s.UncommittedEvents()); err != nil {
		return fmt.Errorf("write plant species events: %w", err)
	}
	return nil
}

func (r *PlantSpeciesRepository) drain(s *models.PlantSpecies) {
	if r.outbox != nil {
		s.PullEvents()
	}
}
