package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func basePropertyForm() PropertyForm {
	return PropertyForm{
		TitleES:   "Casa",
		TitleEN:   "House",
		Type:      "casa",
		Operation: "venta",
		Price:     2500000,
		Lat:       "16.5",
		Lng:       "-96.7",
		Bedrooms:  3,
		Bathrooms: 2,
	}
}

func TestPropertyFormAcceptsBasePayload(t *testing.T) {
	f := basePropertyForm()
	lat, lng, fe := f.Validate()
	require.Nil(t, fe)
	require.NotNil(t, lat)
	require.NotNil(t, lng)
	assert.InDelta(t, 16.5, *lat, 1e-9)
	assert.InDelta(t, -96.7, *lng, 1e-9)
}

func TestPropertyFormRequiresBothTitles(t *testing.T) {
	f := basePropertyForm()
	f.TitleES = ""
	_, _, fe := f.Validate()
	require.NotNil(t, fe)
	assert.Equal(t, "title_es", fe.Field)

	f = basePropertyForm()
	f.TitleEN = "   "
	_, _, fe = f.Validate()
	require.NotNil(t, fe)
	assert.Equal(t, "title_en", fe.Field)
}

func TestPropertyFormCoordinateBounds(t *testing.T) {
	cases := []struct {
		lat, lng string
		field    string
	}{
		{"90.5", "-96.7", "lat"},
		{"-91", "-96.7", "lat"},
		{"16.5", "180.1", "lng"},
		{"16.5", "-181", "lng"},
		{"norte", "-96.7", "lat"},
	}
	for _, c := range cases {
		f := basePropertyForm()
		f.Lat, f.Lng = c.lat, c.lng
		_, _, fe := f.Validate()
		require.NotNil(t, fe, "lat=%s lng=%s", c.lat, c.lng)
		assert.Equal(t, c.field, fe.Field)
	}

	// boundary values are valid
	f := basePropertyForm()
	f.Lat, f.Lng = "-90", "180"
	_, _, fe := f.Validate()
	assert.Nil(t, fe)
}

func TestPropertyFormCoordinatesOptionalButPaired(t *testing.T) {
	f := basePropertyForm()
	f.Lat, f.Lng = "", ""
	lat, lng, fe := f.Validate()
	require.Nil(t, fe)
	assert.Nil(t, lat)
	assert.Nil(t, lng)

	f = basePropertyForm()
	f.Lng = ""
	_, _, fe = f.Validate()
	require.NotNil(t, fe)
}

func TestPropertyFormEnums(t *testing.T) {
	f := basePropertyForm()
	f.Type = "rancho"
	_, _, fe := f.Validate()
	require.NotNil(t, fe)
	assert.Equal(t, "type", fe.Field)

	f = basePropertyForm()
	f.Operation = "trueque"
	_, _, fe = f.Validate()
	require.NotNil(t, fe)
	assert.Equal(t, "operation", fe.Field)
}

func TestPropertyFormToModelDefaultsStatus(t *testing.T) {
	f := basePropertyForm()
	lat, lng, fe := f.Validate()
	require.Nil(t, fe)
	p := f.ToModel(lat, lng, nil)
	assert.Equal(t, "disponible", p.Status)
	assert.Nil(t, p.ZoneID)
	assert.Nil(t, p.AgentID)
}
