package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dozzergeeky/mgnrega-insights/models"
)

type fakeSource struct {
	name      string
	districts []models.District
	err       error
	calls     int
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) ListDistricts(ctx context.Context) ([]models.District, error) {
	f.calls++
	return f.districts, f.err
}

func TestTieredFirstSuccessWins(t *testing.T) {
	primary := &fakeSource{name: "primary", districts: []models.District{{Code: "0001", Name: "Primary"}}}
	secondary := &fakeSource{name: "secondary", districts: []models.District{{Code: "0002", Name: "Secondary"}}}

	districts := NewTieredFrom(primary, secondary).ListDistricts(context.Background())

	require.Len(t, districts, 1)
	assert.Equal(t, "Primary", districts[0].Name)
	assert.Equal(t, 0, secondary.calls)
}

func TestTieredFallsThroughOnError(t *testing.T) {
	primary := &fakeSource{name: "primary", err: errors.New("connection refused")}
	secondary := &fakeSource{name: "secondary", districts: []models.District{{Code: "0002", Name: "Secondary"}}}

	districts := NewTieredFrom(primary, secondary).ListDistricts(context.Background())

	require.Len(t, districts, 1)
	assert.Equal(t, "Secondary", districts[0].Name)
}

func TestTieredTreatsEmptyAsMiss(t *testing.T) {
	primary := &fakeSource{name: "primary", districts: []models.District{}}
	secondary := &fakeSource{name: "secondary", districts: []models.District{{Code: "0002", Name: "Secondary"}}}

	districts := NewTieredFrom(primary, secondary).ListDistricts(context.Background())

	require.Len(t, districts, 1)
	assert.Equal(t, "Secondary", districts[0].Name)
}

func TestTieredNeverFails(t *testing.T) {
	// Every configured tier down: the static table still answers.
	primary := &fakeSource{name: "primary", err: errors.New("down")}
	secondary := &fakeSource{name: "secondary", err: errors.New("also down")}

	districts := NewTieredFrom(primary, secondary).ListDistricts(context.Background())

	assert.Len(t, districts, len(WestBengalDistricts))
}

func TestStaticDistrictsReturnsACopy(t *testing.T) {
	first, err := StaticDistricts{}.ListDistricts(context.Background())
	require.NoError(t, err)

	first[0].Name = "mutated"

	second, err := StaticDistricts{}.ListDistricts(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, "mutated", second[0].Name)
}

func TestStaticTableCoversWestBengal(t *testing.T) {
	districts, err := StaticDistricts{}.ListDistricts(context.Background())
	require.NoError(t, err)

	assert.Len(t, districts, 21)

	seen := make(map[string]bool, len(districts))
	for _, d := range districts {
		assert.False(t, seen[d.Code], "duplicate code %s", d.Code)
		seen[d.Code] = true
		assert.Equal(t, "32", d.StateCode)
		assert.Equal(t, "West Bengal", d.StateName)
	}
	assert.True(t, seen["3213"], "Bankura present")
}
