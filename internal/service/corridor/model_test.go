package corridor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func abcd(t *testing.T) *Model {
	t.Helper()
	m, err := New(ReferenceData{
		Corridors: []Corridor{{Name: "test", Stops: []string{"A", "B", "C", "D"}}},
	})
	require.NoError(t, err)
	return m
}

func TestIsOnRoute_Containment(t *testing.T) {
	m := abcd(t)

	// ride A->D contains rider B->C
	assert.True(t, m.IsOnRoute("B", "C", "A", "D"))
	// ride B->C does not contain rider A->D
	assert.False(t, m.IsOnRoute("A", "D", "B", "C"))
	// direction of the ride does not matter, the index range is inclusive
	assert.True(t, m.IsOnRoute("B", "D", "D", "A"))
	assert.True(t, m.IsOnRoute("A", "D", "A", "D"))
	// rider partially outside
	assert.False(t, m.IsOnRoute("A", "C", "B", "D"))
	// unknown place
	assert.False(t, m.IsOnRoute("B", "Z", "A", "D"))
	assert.False(t, m.IsOnRoute("", "C", "A", "D"))
}

func TestIsOnRoute_Karnataka(t *testing.T) {
	m := Default()

	// Tumakuru(1) and Davangere(3) within Bengaluru(0)..Hubballi(5) on NH44
	assert.True(t, m.IsOnRoute("Tumakuru", "Davangere", "Bengaluru", "Hubballi"))
	// reverse travel direction along the corridor
	assert.True(t, m.IsOnRoute("Davangere", "Tumakuru", "Hubballi", "Bengaluru"))
	// Mandya sits between Bengaluru and Mysuru
	assert.True(t, m.IsOnRoute("Mandya", "Mysuru", "Bengaluru", "Mysuru"))
	// Belagavi is past Hubballi on NH44
	assert.False(t, m.IsOnRoute("Tumakuru", "Belagavi", "Bengaluru", "Hubballi"))
	// no shared corridor
	assert.False(t, m.IsOnRoute("Udupi", "Karwar", "Bengaluru", "Mysuru"))
}

func TestIsOnRoute_LooseMatching(t *testing.T) {
	m := Default()

	assert.True(t, m.IsOnRoute("tumakuru", "DAVANGERE", "Bengaluru", "Hubballi Rural"))
	assert.True(t, m.IsOnRoute("Mandya", "Mysuru Road", "Bengaluru", "Mysuru"))
	// partial stop names need at least three characters
	assert.True(t, m.IsOnRoute("Tumak", "Davan", "Bengaluru", "Hubballi"))
	assert.False(t, m.IsOnRoute("a", "Mysuru", "Bengaluru", "Mysuru"))
	assert.False(t, m.IsOnRoute("Mandya", "ur", "Bengaluru", "Mysuru"))
}

func TestEstimateDistance(t *testing.T) {
	m := Default()

	km, ok := m.EstimateDistance("Bengaluru", "Mysuru")
	require.True(t, ok)
	assert.Equal(t, 150.0, km)

	km, ok = m.EstimateDistance("Mysuru", "Bengaluru")
	require.True(t, ok)
	assert.Equal(t, 150.0, km)

	km, ok = m.EstimateDistance(" hubballi ", "Dharwad")
	require.True(t, ok)
	assert.Equal(t, 20.0, km)

	_, ok = m.EstimateDistance("Udupi", "Bidar")
	assert.False(t, ok)
}

func TestNew_Validation(t *testing.T) {
	_, err := New(ReferenceData{Corridors: []Corridor{{Name: "short", Stops: []string{"A"}}}})
	assert.ErrorIs(t, err, ErrInvalidReferenceData)

	_, err = New(ReferenceData{Distances: []Distance{{"A", "B", 0}}})
	assert.ErrorIs(t, err, ErrInvalidReferenceData)
}

func TestLoad(t *testing.T) {
	m, err := Load("")
	require.NoError(t, err)
	assert.Len(t, m.Corridors(), 15)

	path := filepath.Join(t.TempDir(), "corridors.json")
	body := `{"corridors":[{"name":"x","stops":["P","Q","R"]}],"distances":[{"from":"P","to":"R","km":42}]}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	m, err = Load(path)
	require.NoError(t, err)
	assert.True(t, m.IsOnRoute("Q", "R", "P", "R"))
	km, ok := m.EstimateDistance("R", "P")
	assert.True(t, ok)
	assert.Equal(t, 42.0, km)

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestCorridors_ReturnsCopy(t *testing.T) {
	m := Default()
	c := m.Corridors()
	c[0].Stops[0] = "Chennai"
	assert.Equal(t, "Bengaluru", m.Corridors()[0].Stops[0])
}
