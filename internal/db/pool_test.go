package db

import (
	"context"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyFrom_EmptyRows(t *testing.T) {
	n, err := CopyFrom(context.TODO(), nil, "events", []string{"lon", "lat"}, nil)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestCopyFrom_Success(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectCopyFrom(pgx.Identifier{"events"}, []string{"lon", "lat", "depth_km"}).WillReturnResult(3)

	rows := [][]any{{13.2, 38.8, 10.5}, {13.3, 38.9, 7.2}, {13.1, 38.7, 22.0}}
	n, err := CopyFrom(context.Background(), mock, "events", []string{"lon", "lat", "depth_km"}, rows)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCopyFrom_Error(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectCopyFrom(pgx.Identifier{"events"}, []string{"lon", "lat"}).WillReturnError(fmt.Errorf("copy failed"))

	rows := [][]any{{13.2, 38.8}}
	_, err = CopyFrom(context.Background(), mock, "events", []string{"lon", "lat"}, rows)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "COPY INTO events")
	assert.NoError(t, mock.ExpectationsWereMet())
}
