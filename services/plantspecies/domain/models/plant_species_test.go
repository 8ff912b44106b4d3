package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghuser/gardenhub/pkg/kernel"
	"github.com/ghuser/gardenhub/services/plantspecies/domain/events"
)

func TestPlantSpecies_Update(t *testing.T) {
	family := "Lamiaceae"
	s := NewPlantSpecies(NewPlantSpeciesParams{CommonName: "Basil", ScientificName: "Ocimum basilicum", Family: &family}, true)

	require.NoError(t, s.Update(PlantSpeciesPatch{
		CommonName:  kernel.Some("Sweet basil"),
		Family:      kernel.Null[string](),
		Description: kernel.Some("Annual herb"),
	}, true))
	assert.Equal(t, "Sweet basil", s.CommonName())
	assert.Equal(t, "Ocimum basilicum", s.ScientificName())
	assert.Nil(t, s.Family())
	require.NotNil(t, s.Description())

	err := s.Update(PlantSpeciesPatch{ScientificName: kernel.Null[string]()}, true)
	assert.ErrorIs(t, err, kernel.ErrValidation)

	evts := s.PullEvents()
	require.Len(t, evts, 2)
	assert.Equal(t, events.TopicPlantSpeciesCreated, evts[0].Type)
	assert.Equal(t, events.TopicPlantSpeciesUpdated, evts[1].Type)
}

func TestRehydratePlantSpecies(t *testing.T) {
	src := NewPlantSpecies(NewPlantSpeciesParams{CommonName: "Rosemary", ScientificName: "Salvia rosmarinus"}, false)
	p := src.Primitives()
	p.Version = 3
	s, err := RehydratePlantSpecies(p)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Version())

	p.ID = "bad"
	_, err = RehydratePlantSpecies(p)
	assert.ErrorIs(t, err, kernel.ErrValidation)
}

func TestValidateName(t *testing.T) {
	got, err := ValidateName("  Thyme ")
	require.NoError(t, err)
	assert.Equal(t, "Thyme", got)
	_, err = ValidateName(" ")
	assert.ErrorIs(t, err, kernel.ErrValidation)
}
