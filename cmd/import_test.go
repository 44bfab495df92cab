//go:build !integration

package main

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEvents(t *testing.T) {
	in := strings.Join([]string{
		`{"lon":13.2,"lat":38.8,"depth":10.5,"time":"2023-04-12T06:00:00Z"}`,
		``,
		`{"lon":13.3,"lat":38.9,"depth":7.2,"payload":{"mag":3.1}}`,
	}, "\n")

	events, err := decodeEvents(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, events, 2)

	assert.Equal(t, 13.2, events[0].Lon)
	assert.Equal(t, 38.8, events[0].Lat)
	assert.Equal(t, 10.5, events[0].DepthKM)
	assert.Equal(t, time.Date(2023, 4, 12, 6, 0, 0, 0, time.UTC), events[0].Time.UTC())

	assert.Equal(t, 7.2, events[1].DepthKM)
	assert.JSONEq(t, `{"mag":3.1}`, string(events[1].Payload))
}

func TestDecodeEvents_Empty(t *testing.T) {
	events, err := decodeEvents(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestDecodeEvents_BadLineReportsLineNumber(t *testing.T) {
	in := `{"lon":13.2,"lat":38.8,"depth":10}
{"lon":broken}`

	_, err := decodeEvents(strings.NewReader(in))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}
