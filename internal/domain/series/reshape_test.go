package series

import (
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/atlasiq/atlasiq-gateway/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReshape(t *testing.T) {
	t.Run("Empty input", func(t *testing.T) {
		rows := Reshape(nil)
		assert.NotNil(t, rows)
		assert.Empty(t, rows)

		rows = Reshape([]entity.Observation{})
		assert.Empty(t, rows)
	})

	t.Run("Pivot with last write wins", func(t *testing.T) {
		input := []entity.Observation{
			{Entity: "NLD", Year: 2020, Value: 1.5},
			{Entity: "BEL", Year: 2020, Value: 0.9},
			{Entity: "NLD", Year: 2021, Value: 2.0},
			{Entity: "NLD", Year: 2020, Value: 1.7},
		}

		rows := Reshape(input)
		require.Len(t, rows, 2)

		assert.Equal(t, 2020, rows[0].Year)
		nld, ok := rows[0].Get("NLD")
		assert.True(t, ok)
		assert.Equal(t, 1.7, nld)
		bel, ok := rows[0].Get("BEL")
		assert.True(t, ok)
		assert.Equal(t, 0.9, bel)
		assert.Equal(t, 2, rows[0].Len())

		assert.Equal(t, 2021, rows[1].Year)
		nld, ok = rows[1].Get("NLD")
		assert.True(t, ok)
		assert.Equal(t, 2.0, nld)
		_, ok = rows[1].Get("BEL")
		assert.False(t, ok, "missing pairs stay absent")

		data, err := json.Marshal(rows)
		require.NoError(t, err)
		assert.JSONEq(t, `[{"year":2020,"NLD":1.7,"BEL":0.9},{"year":2021,"NLD":2}]`, string(data))
	})

	t.Run("Unsorted years come out ascending", func(t *testing.T) {
		input := []entity.Observation{
			{Entity: "DEU", Year: 2023, Value: 0.1},
			{Entity: "DEU", Year: 2015, Value: 1.2},
			{Entity: "LUX", Year: 2019, Value: 2.3},
		}

		rows := Reshape(input)
		require.Len(t, rows, 3)
		assert.Equal(t, []int{2015, 2019, 2023}, years(rows))
	})
}

func TestReshapeProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	entities := []string{"NLD", "BEL", "LUX", "DEU", "Main refinancing rate"}

	for i := 0; i < 200; i++ {
		n := rng.Intn(40)
		input := make([]entity.Observation, n)
		last := make(map[int]map[string]float64)

		for j := range input {
			obs := entity.Observation{
				Entity: entities[rng.Intn(len(entities))],
				Year:   2010 + rng.Intn(12),
				Value:  rng.Float64() * 10,
			}
			input[j] = obs
			if last[obs.Year] == nil {
				last[obs.Year] = make(map[string]float64)
			}
			last[obs.Year][obs.Entity] = obs.Value
		}

		rows := Reshape(input)

		require.Len(t, rows, len(last))
		for k := 1; k < len(rows); k++ {
			assert.Less(t, rows[k-1].Year, rows[k].Year, "rows strictly ascending by year")
		}

		for _, row := range rows {
			want := last[row.Year]
			assert.Equal(t, len(want), row.Len())
			for e, v := range want {
				got, ok := row.Get(e)
				assert.True(t, ok)
				assert.Equal(t, v, got, "value of last occurrence wins")
			}
		}
	}
}

func TestReshapeIgnoresOrderOfDistinctKeys(t *testing.T) {
	input := []entity.Observation{
		{Entity: "NLD", Year: 2020, Value: 1},
		{Entity: "BEL", Year: 2021, Value: 2},
		{Entity: "DEU", Year: 2020, Value: 3},
		{Entity: "LUX", Year: 2022, Value: 4},
	}
	reversed := make([]entity.Observation, len(input))
	for i, obs := range input {
		reversed[len(input)-1-i] = obs
	}

	a := Reshape(input)
	b := Reshape(reversed)
	require.Equal(t, years(a), years(b))

	for i := range a {
		for _, e := range a[i].Entities() {
			va, _ := a[i].Get(e)
			vb, ok := b[i].Get(e)
			assert.True(t, ok)
			assert.Equal(t, va, vb)
		}
	}
}

func TestFromMacroAndInterestRates(t *testing.T) {
	points := []entity.MacroDataPoint{
		{Country: "NLD", Year: 2020, Value: -3.9, Indicator: "gdp_growth", Unit: "%"},
	}
	assert.Equal(t, []entity.Observation{{Entity: "NLD", Year: 2020, Value: -3.9}}, FromMacro(points))

	rates := []entity.InterestRate{
		{RateType: "MRO", RateName: "Main refinancing operations", Year: 2022, Value: 2.5},
	}
	assert.Equal(t,
		[]entity.Observation{{Entity: "Main refinancing operations", Year: 2022, Value: 2.5}},
		FromInterestRates(rates))
}

func TestEntities(t *testing.T) {
	rows := Reshape([]entity.Observation{
		{Entity: "BEL", Year: 2021, Value: 1},
		{Entity: "NLD", Year: 2020, Value: 1},
		{Entity: "DEU", Year: 2021, Value: 1},
		{Entity: "NLD", Year: 2021, Value: 1},
	})

	assert.Equal(t, []string{"NLD", "BEL", "DEU"}, Entities(rows))
	assert.Empty(t, Entities(nil))
}

func years(rows []entity.WideRow) []int {
	out := make([]int, len(rows))
	for i, r := range rows {
		out[i] = r.Year
	}
	return out
}
