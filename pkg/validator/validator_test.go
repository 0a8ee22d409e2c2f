package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testLocation struct {
	Coordinates []float64 `json:"coordinates" validate:"required,lnglat"`
}

type testRequest struct {
	Title    string       `json:"title" validate:"required,min=5"`
	Phone    string       `json:"phone" validate:"omitempty,phone"`
	Location testLocation `json:"location"`
}

func TestValidate_FieldErrorsUseJSONNames(t *testing.T) {
	v := New()

	err := v.Struct(testRequest{Title: "abc", Location: testLocation{Coordinates: []float64{1}}})
	require.Error(t, err)

	vErr := ToFieldErrors(err)
	require.Len(t, vErr.Fields, 2)
	assert.Equal(t, "title", vErr.Fields[0].Field)
	assert.Equal(t, "must be at least 5 characters", vErr.Fields[0].Message)
	assert.Equal(t, "location.coordinates", vErr.Fields[1].Field)
	assert.Equal(t, "coordinates must be [longitude, latitude]", vErr.Fields[1].Message)
}

func TestValidate_LngLatBounds(t *testing.T) {
	v := New()

	assert.NoError(t, v.Struct(testRequest{Title: "Crowd at gate", Location: testLocation{Coordinates: []float64{77.209, 28.6139}}}))
	assert.Error(t, v.Struct(testRequest{Title: "Crowd at gate", Location: testLocation{Coordinates: []float64{28.6, 200}}}))
	assert.Error(t, v.Struct(testRequest{Title: "Crowd at gate", Location: testLocation{Coordinates: []float64{1, 2, 3}}}))
}

func TestValidate_Phone(t *testing.T) {
	v := New()
	loc := testLocation{Coordinates: []float64{0, 0}}

	assert.NoError(t, v.Struct(testRequest{Title: "Valid title", Phone: "+91 9876543210", Location: loc}))
	assert.Error(t, v.Struct(testRequest{Title: "Valid title", Phone: "call me", Location: loc}))
}

func TestToFieldErrors_NonValidatorError(t *testing.T) {
	vErr := ToFieldErrors(errors.New("unexpected EOF"))
	require.Len(t, vErr.Fields, 1)
	assert.Equal(t, "body", vErr.Fields[0].Field)
}
