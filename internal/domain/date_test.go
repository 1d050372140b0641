package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_JSON(t *testing.T) {
	w := Week{StartDate: NewDate(2024, time.March, 4)}

	data, err := json.Marshal(w)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"startDate":"2024-03-04"`)
	assert.Contains(t, string(data), `"endDate":null`)

	var back Week
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, "2024-03-04", back.StartDate.String())
	assert.True(t, back.EndDate.IsZero())
}

func TestDate_RejectsBadInput(t *testing.T) {
	var d Date
	assert.Error(t, json.Unmarshal([]byte(`"03/04/2024"`), &d))
	assert.Error(t, d.Scan(42))
}

func TestDate_Scan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan("2024-12-31"))
	assert.Equal(t, time.December, d.Month())

	require.NoError(t, d.Scan(nil))
	assert.True(t, d.IsZero())
}
