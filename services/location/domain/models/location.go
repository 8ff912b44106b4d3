package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ghuser/gardenhub/pkg/kernel"
	"github.com/ghuser/gardenhub/services/location/domain"
	"github.com/ghuser/gardenhub/services/location/domain/events"
)

const maxNameLength = 255

// ValidateName trims s and checks it is 1..255 characters.
func ValidateName(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("%w: name is required", domain.ErrInvalidLocation)
	}
	if utf8.RuneCountInString(s) > maxNameLength {
		return "", fmt.Errorf("%w: name must not exceed %d characters", domain.ErrInvalidLocation, maxNameLength)
	}
	return s, nil
}

// Location is a place growing units can be assigned to.
type Location struct {
	kernel.AggregateRoot

	id          kernel.LocationID
	name        string
	locType     LocationType
	description *string
	createdAt   time.Time
	updatedAt   time.Time
}

type LocationPrimitives struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Description *string   `json:"description"`
	Version     int       `json:"version"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type NewLocationParams struct {
	ID          kernel.LocationID
	Name        string
	Type        LocationType
	Description *string
}

// NewLocation builds a location; Name must already be validated.
func NewLocation(p NewLocationParams, emit bool) *Location {
	id := p.ID
	if id.IsZero() {
		id = kernel.NewLocationID()
	}
	now := time.Now().UTC()
	l := &Location{
		id:          id,
		name:        p.Name,
		locType:     p.Type,
		description: p.Description,
		createdAt:   now,
		updatedAt:   now,
	}
	if emit {
		l.record(events.TopicLocationCreated)
	}
	return l
}

func RehydrateLocation(p LocationPrimitives) (*Location, error) {
	id, err := kernel.ParseLocationID(p.ID)
	if err != nil {
		return nil, err
	}
	name, err := ValidateName(p.Name)
	if err != nil {
		return nil, err
	}
	t, err := ParseLocationType(p.Type)
	if err != nil {
		return nil, err
	}
	l := &Location{
		id:          id,
		name:        name,
		locType:     t,
		description: p.Description,
		createdAt:   p.CreatedAt,
		updatedAt:   p.UpdatedAt,
	}
	l.MarkPersisted(p.Version)
	return l, nil
}

func (l *Location) ID() kernel.LocationID { return l.id }
func (l *Location) Name() string          { return l.name }
func (l *Location) Type() LocationType    { return l.locType }
func (l *Location) Description() *string  { return l.description }

type LocationPatch struct {
	Name        kernel.Optional[string]
	Type        kernel.Optional[LocationType]
	Description kernel.Optional[string]
}

// Update applies patch. Only description may be cleared.
func (l *Location) Update(patch LocationPatch, emit bool) error {
	if patch.Name.IsNull() || patch.Type.IsNull() {
		return fmt.Errorf("%w: name and type cannot be cleared", domain.ErrInvalidLocation)
	}
	if v, ok := patch.Name.Get(); ok {
		l.name = v
	}
	if v, ok := patch.Type.Get(); ok {
		l.locType = v
	}
	if patch.Description.IsNull() {
		l.description = nil
	} else if v, ok := patch.Description.Get(); ok {
		l.description = &v
	}
	l.updatedAt = time.Now().UTC()
	if emit {
		l.record(events.TopicLocationUpdated)
	}
	return nil
}

func (l *Location) Delete(emit bool) {
	if emit {
		l.record(events.TopicLocationDeleted)
	}
}

func (l *Location) Primitives() LocationPrimitives {
	return LocationPrimitives{
		ID:          l.id.String(),
		Name:        l.name,
		Type:        l.locType.String(),
		Description: l.description,
		Version:     l.Version(),
		CreatedAt:   l.createdAt,
		UpdatedAt:   l.updatedAt,
	}
}

func (l *Location) record(eventType string) {
	l.Record(kernel.NewEvent(events.AggregateType, l.id.String(), eventType, l.Primitives()))
}
