package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionalFloat_JSON(t *testing.T) {
	// Absent marshals to null, not zero
	data, err := json.Marshal(OptionalFloat{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))

	data, err = json.Marshal(SomeFloat(12.5))
	require.NoError(t, err)
	assert.Equal(t, "12.5", string(data))

	var o OptionalFloat
	require.NoError(t, json.Unmarshal([]byte("null"), &o))
	assert.False(t, o.Valid)

	require.NoError(t, json.Unmarshal([]byte("3.25"), &o))
	assert.True(t, o.Valid)
	assert.Equal(t, 3.25, o.Float64)
}

func TestOptionalFloat_CSVString(t *testing.T) {
	assert.Equal(t, "", OptionalFloat{}.CSVString())
	assert.Equal(t, "12.5", SomeFloat(12.5).CSVString())
	assert.Equal(t, "10.0", SomeFloat(10).CSVString())
	assert.Equal(t, "0.0", SomeFloat(0).CSVString(), "a present zero is not the same as absent")
}

func TestOptionalInt_JSON(t *testing.T) {
	data, err := json.Marshal(OptionalInt{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))

	data, err = json.Marshal(SomeInt(80))
	require.NoError(t, err)
	assert.Equal(t, "80", string(data))

	var o OptionalInt
	require.NoError(t, json.Unmarshal([]byte("null"), &o))
	assert.False(t, o.Valid)

	require.NoError(t, json.Unmarshal([]byte("97"), &o))
	assert.True(t, o.Valid)
	assert.Equal(t, 97, o.Int)
}

func TestOptionalInt_CSVString(t *testing.T) {
	assert.Equal(t, "", OptionalInt{}.CSVString())
	assert.Equal(t, "80", SomeInt(80).CSVString())
	assert.Equal(t, "0", SomeInt(0).CSVString())
}

func TestHeatmap_Intensity(t *testing.T) {
	h := Heatmap{
		EmployeeIDs: []string{"a", "b"},
		Dates:       []Date{"2024-03-01", "2024-03-02"},
		Breaches:    [][]int{{0, 4}, {2, 1}},
		MaxBreaches: 4,
	}

	assert.Equal(t, 0.0, h.Intensity(0, 0))
	assert.Equal(t, 1.0, h.Intensity(0, 1))
	assert.Equal(t, 0.5, h.Intensity(1, 0))
	assert.Equal(t, 0.25, h.Intensity(1, 1))

	// All-zero matrix never divides by zero
	empty := Heatmap{Breaches: [][]int{{0}}, MaxBreaches: 0}
	assert.Equal(t, 0.0, empty.Intensity(0, 0))
}
