package objmap

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapJSON_FlatObject(t *testing.T) {
	type config struct {
		Host   string `json:"host"`
		Port   int    `json:"port"`
		Debug  bool   `json:"debug"`
		Weight float64
	}

	data := []byte(`{"host":"localhost","port":8080,"debug":true,"weight":1.5}`)

	var c config
	require.NoError(t, MapJSON(data, &c))
	assert.Equal(t, "localhost", c.Host)
	assert.Equal(t, 8080, c.Port)
	assert.Equal(t, true, c.Debug)
	assert.Equal(t, 1.5, c.Weight)
}

func TestMapJSON_TextualScalars(t *testing.T) {
	type payload struct {
		Age int
		Day Date
	}

	// Scalars arrive as text and go through the same cascade as struct sources.
	data := []byte(`{"age":"30","day":"2026-08-25"}`)

	var p payload
	require.NoError(t, MapJSON(data, &p))
	assert.Equal(t, 30, p.Age)
	assert.Equal(t, Date{Year: 2026, Month: time.August, Day: 25}, p.Day)
}

func TestMapJSON_NestedObjectsAndArrays(t *testing.T) {
	type score struct {
		Value int `json:"value"`
	}
	type user struct {
		Name string `json:"name"`
	}
	type payload struct {
		User   user    `json:"user"`
		Tags   []string `json:"tags"`
		Scores []score  `json:"scores"`
	}

	data := []byte(`{
		"user": {"name": "John"},
		"tags": ["a", "b"],
		"scores": [{"value": "1"}, {"value": 2}]
	}`)

	var p payload
	require.NoError(t, MapJSON(data, &p))
	assert.Equal(t, "John", p.User.Name)
	assert.Equal(t, []string{"a", "b"}, p.Tags)
	assert.Equal(t, []score{{Value: 1}, {Value: 2}}, p.Scores)
}

func TestMapJSON_PointerTargets(t *testing.T) {
	type payload struct {
		Name   *string `json:"name"`
		Absent *int    `json:"absent"`
		Null   *int    `json:"null_field"`
	}

	data := []byte(`{"name":"present","null_field":null}`)

	var p payload
	require.NoError(t, MapJSON(data, &p))
	require.NotNil(t, p.Name)
	assert.Equal(t, "present", *p.Name)
	assert.Nil(t, p.Absent)
	assert.Nil(t, p.Null)
}

func TestMapJSON_DefaultAppliedOnAbsence(t *testing.T) {
	type config struct {
		Host string `json:"host"`
		Port int    `json:"port" default:"8080"`
	}

	var c config
	require.NoError(t, MapJSON([]byte(`{"host":"localhost"}`), &c))
	assert.Equal(t, 8080, c.Port)
}

func TestMapJSON_MissingRequiredKey(t *testing.T) {
	type config struct {
		Host string `json:"host"`
	}

	var c config
	err := MapJSON([]byte(`{}`), &c)
	require.Error(t, err)

	var unresolved *UnresolvedFieldError
	require.True(t, errors.As(err, &unresolved))
	assert.Equal(t, "Host", unresolved.Param)
}

func TestMapJSON_NullForNonNullable(t *testing.T) {
	type config struct {
		Port int `json:"port"`
	}

	var c config
	err := MapJSON([]byte(`{"port":null}`), &c)
	require.Error(t, err)

	var violation *NonNullableViolationError
	require.True(t, errors.As(err, &violation))
	assert.Equal(t, "Port", violation.Param)
}

func TestMapJSON_ConversionFailure(t *testing.T) {
	type config struct {
		Port int `json:"port"`
	}

	var c config
	err := MapJSON([]byte(`{"port":"not-a-number"}`), &c)
	require.Error(t, err)

	var failed *ConversionFailedError
	require.True(t, errors.As(err, &failed))
	assert.Equal(t, "Port", failed.Param)
	assert.Equal(t, "port", failed.Field)
}

func TestMapJSON_NotAnObject(t *testing.T) {
	type config struct {
		Host string `json:"host"`
	}

	var c config
	err := MapJSON([]byte(`[1,2,3]`), &c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be an object")
}

func TestMapJSON_NoPartialResult(t *testing.T) {
	type config struct {
		Host string `json:"host"`
		Port int    `json:"port"`
	}

	c := config{Host: "stale", Port: 7}
	err := MapJSON([]byte(`{"host":"fresh","port":"bad"}`), &c)
	require.Error(t, err)
	assert.Equal(t, config{}, c)
}

func TestMapJSONString(t *testing.T) {
	type config struct {
		Host string `json:"host"`
	}

	var c config
	require.NoError(t, MapJSONString(`{"host":"localhost"}`, &c))
	assert.Equal(t, "localhost", c.Host)
}
