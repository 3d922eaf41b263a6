package migration

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableMetadataStorageCustomColumnNames(t *testing.T) {
	conn := newTestConnection()
	storage := NewTableMetadataStorage(conn,
		WithTableName("schema_versions"),
		WithVersionColumnName("v"),
		WithExecutedAtColumnName("at"),
		WithExecutionTimeColumnName("ms"),
	)

	assert.Equal(t, "schema_versions", storage.tableName)
	assert.Equal(t, "v", storage.versionColumnName)
	assert.Equal(t, "at", storage.executedAtColumnName)
	assert.Equal(t, "ms", storage.executionTimeColumnName)

	expected := storage.expectedTable()
	assert.Equal(t, "schema_versions", expected.Name)
	assert.Equal(t, []string{"v"}, expected.PrimaryKeyColumns)
}

func TestTableMetadataStorageCompleteUpThenDown(t *testing.T) {
	conn := newTestConnection()
	storage := NewTableMetadataStorage(conn)
	ctx := context.Background()

	result := ExecutionResult{Version: 1, Direction: Up, ExecutedAt: time.Now(), ExecutionTime: 42}
	require.NoError(t, storage.Complete(ctx, result))

	list, err := storage.GetExecutedMigrations(ctx)
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, int64(1), list.Items[0].Version)
	assert.Equal(t, int64(42), list.Items[0].ExecutionTime)

	downResult := ExecutionResult{Version: 1, Direction: Down}
	require.NoError(t, storage.Complete(ctx, downResult))

	list, err = storage.GetExecutedMigrations(ctx)
	require.NoError(t, err)
	assert.Empty(t, list.Items)
}

func TestTableMetadataStorageGetExecutedMigrationsOnMissingTableIsEmpty(t *testing.T) {
	conn := newTestConnection()
	storage := NewTableMetadataStorage(conn)

	list, err := storage.GetExecutedMigrations(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list.Items)
}

func TestTableMetadataStorageGetExecutedMigrationsSortedByVersion(t *testing.T) {
	conn := newTestConnection()
	storage := NewTableMetadataStorage(conn)
	ctx := context.Background()

	require.NoError(t, storage.Complete(ctx, ExecutionResult{Version: 3, Direction: Up, ExecutedAt: time.Now()}))
	require.NoError(t, storage.Complete(ctx, ExecutionResult{Version: 1, Direction: Up, ExecutedAt: time.Now()}))
	require.NoError(t, storage.Complete(ctx, ExecutionResult{Version: 2, Direction: Up, ExecutedAt: time.Now()}))

	list, err := storage.GetExecutedMigrations(ctx)
	require.NoError(t, err)
	require.Len(t, list.Items, 3)
	assert.Equal(t, []int64{1, 2, 3}, []int64{list.Items[0].Version, list.Items[1].Version, list.Items[2].Version})
}

func TestExecutedMigrationListLastOnEmptyList(t *testing.T) {
	l := ExecutedMigrationList{}
	_, ok := l.Last()
	assert.False(t, ok)
}
