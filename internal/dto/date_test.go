package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateUnmarshalDateOnly(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2025-06-01"`), &d))
	require.NotNil(t, d.Ptr())
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), *d.Ptr())
}

func TestDateUnmarshalRFC3339(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"2025-06-01T14:30:00Z"`), &d))
	require.NotNil(t, d.Ptr())
	assert.Equal(t, 14, d.Ptr().Hour())
}

func TestDateUnmarshalEmptyAndNull(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`""`), &d))
	assert.Nil(t, d.Ptr())

	require.NoError(t, json.Unmarshal([]byte(`null`), &d))
	assert.Nil(t, d.Ptr())
}

func TestDateUnmarshalInvalid(t *testing.T) {
	var d Date
	assert.Error(t, json.Unmarshal([]byte(`"June 1st"`), &d))
}
