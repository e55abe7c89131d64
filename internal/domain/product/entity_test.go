package product

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	p, err := New("1", "Ceramic Pot", 250, TypePot, time.Now())
	require.NoError(t, err)
	assert.Equal(t, TypePot, p.Type)

	_, err = New("1", "", 250, TypePot, time.Now())
	assert.ErrorIs(t, err, ErrInvalidName)

	_, err = New("1", "Ceramic Pot", -5, TypePot, time.Now())
	assert.ErrorIs(t, err, ErrInvalidPrice)

	_, err = New("1", "Ceramic Pot", 250, Type("Gadget"), time.Now())
	assert.ErrorIs(t, err, ErrInvalidType)
}

func TestMatches(t *testing.T) {
	p := Product{ID: "3", Name: "Jade Plant", Price: 180, Type: TypePlant}

	potType := TypePot
	plantType := TypePlant

	testCases := []struct {
		testName string
		filter   Filter
		want     bool
	}{
		{testName: "empty filter matches all", filter: Filter{}, want: true},
		{testName: "matching type", filter: Filter{Type: &plantType}, want: true},
		{testName: "wrong type", filter: Filter{Type: &potType}, want: false},
		{testName: "search is case-insensitive substring", filter: Filter{SearchQuery: "jade"}, want: true},
		{testName: "search miss", filter: Filter{SearchQuery: "fern"}, want: false},
		{testName: "type and search together", filter: Filter{Type: &plantType, SearchQuery: "Plant"}, want: true},
	}

	for _, tc := range testCases {
		t.Run(tc.testName, func(t *testing.T) {
			assert.Equal(t, tc.want, p.Matches(tc.filter))
		})
	}
}
