package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ghuser/gardenhub/pkg/kernel"
	"github.com/ghuser/gardenhub/services/plantspecies/domain"
	"github.com/ghuser/gardenhub/services/plantspecies/domain/events"
)

const maxNameLength = 255

// ValidateName trims s and checks it is 1..255 characters. Used for both the
// common and the scientific name.
func ValidateName(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("%w: name is required", domain.ErrInvalidPlantSpecies)
	}
	if utf8.RuneCountInString(s) > maxNameLength {
		return "", fmt.Errorf("%w: name must not exceed %d characters", domain.ErrInvalidPlantSpecies, maxNameLength)
	}
	return s, nil
}

type PlantSpecies struct {
	kernel.AggregateRoot

	id             kernel.PlantSpeciesID
	commonName     string
	scientificName string
	family         *string
	description    *string
	createdAt      time.Time
	updatedAt      time.Time
}

type PlantSpeciesPrimitives struct {
	ID             string    `json:"id"`
	CommonName     string    `json:"commonName"`
	ScientificName string    `json:"scientificName"`
	Family         *string   `json:"family"`
	Description    *string   `json:"description"`
	Version        int       `json:"version"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type NewPlantSpeciesParams struct {
	ID             kernel.PlantSpeciesID
	CommonName     string
	ScientificName string
	Family         *string
	Description    *string
}

func NewPlantSpecies(p NewPlantSpeciesParams, emit bool) *PlantSpecies {
	id := p.ID
	if id.IsZero() {
		id = kernel.NewPlantSpeciesID()
	}
	now := time.Now().UTC()
	s := &PlantSpecies{
		id:             id,
		commonName:     p.CommonName,
		scientificName: p.ScientificName,
		family:         p.Family,
		description:    p.Description,
		createdAt:      now,
		updatedAt:      now,
	}
	if emit {
		s.record(events.TopicPlantSpeciesCreated)
	}
	return s
}

func RehydratePlantSpecies(p PlantSpeciesPrimitives) (*PlantSpecies, error) {
	id, err := kernel.ParsePlantSpeciesID(p.ID)
	if err != nil {
		return nil, err
	}
	s := &PlantSpecies{
		id:             id,
		commonName:     p.CommonName,
		scientificName: p.ScientificName,
		family:         p.Family,
		description:    p.Description,
		createdAt:      p.CreatedAt,
		updatedAt:      p.UpdatedAt,
	}
	s.MarkPersisted(p.Version)
	return s, nil
}

func (s *PlantSpecies) ID() kernel.PlantSpeciesID { return s.id }
func (s *PlantSpecies) CommonName() string        { return s.commonName }
func (s *PlantSpecies) ScientificName() string    { return s.scientificName }
func (s *PlantSpecies) Family() *string           { return s.family }
func (s *PlantSpecies) Description() *string      { return s.description }

type PlantSpeciesPatch struct {
	CommonName     kernel.Optional[string]
	ScientificName kernel.Optional[string]
	Family         kernel.Optional[string]
	Description    kernel.Optional[string]
}

func (s *PlantSpecies) Update(patch PlantSpeciesPatch, emit bool) error {
	if patch.CommonName.IsNull() || patch.ScientificName.IsNull() {
		return fmt.Errorf("%w: commonName and scientificName cannot be cleared", domain.ErrInvalidPlantSpecies)
	}
	if v, ok := patch.CommonName.Get(); ok {
		s.commonName = v
	}
	if v, ok := patch.ScientificName.Get(); ok {
		s.scientificName = v
	}
	s.family = applyNullable(s.family, patch.Family)
	s.description = applyNullable(s.description, patch.Description)
	s.updatedAt = time.Now().UTC()
	if emit {
		s.record(events.TopicPlantSpeciesUpdated)
	}
	return nil
}

func applyNullable(cur *string, o kernel.Optional[string]) *string {
	if o.IsNull() {
		return nil
	}
	if v, ok := o.Get(); ok {
		return &v
	}
	return cur
}

func (s *PlantSpecies) Delete(emit bool) {
	if emit {
		s.record(events.TopicPlantSpeciesDeleted)
	}
}

func (s *PlantSpecies) Primitives() PlantSpeciesPrimitives {
	return PlantSpeciesPrimitives{
		ID:             s.id.String(),
		CommonName:     s.commonName,
		ScientificName: s.scientificName,
		Family:         s.family,
		Description:    s.description,
		Version:        s.Version(),
		CreatedAt:      s.createdAt,
		UpdatedAt:      s.updatedAt,
	}
}

func (s *PlantSpecies) record(eventType string) {
	s.Record(kernel.NewEvent(events.AggregateType, s.id.String(), eventType, s.Primitives()))
}
