package db

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/EO-DataHub/workos-go/webhooks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupPostgresContainer starts a throwaway PostgreSQL and returns a
// migrated DeliveryDB connected to it.
func setupPostgresContainer(t *testing.T) *DeliveryDB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping PostgreSQL container test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
			"POSTGRES_DB":       "postgres",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(time.Minute),
	}

	postgresC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err, "could not start container")
	t.Cleanup(func() { _ = postgresC.Terminate(ctx) })

	host, err := postgresC.Host(ctx)
	require.NoError(t, err)
	port, err := postgresC.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	source := fmt.Sprintf("postgres://postgres:postgres@%s:%s/postgres?sslmode=disable", host, port.Port())
	deliveries, err := NewDeliveryDB(ctx, source)
	require.NoError(t, err)
	t.Cleanup(func() { _ = deliveries.Close() })

	require.NoError(t, deliveries.Migrate(ctx))
	return deliveries
}

func TestDeliveries(t *testing.T) {
	d := setupPostgresContainer(t)
	ctx := context.Background()

	created := &webhooks.Webhook{ID: "wh_01", Event: webhooks.DirectoryUserCreated}
	deleted := &webhooks.Webhook{ID: "wh_02", Event: webhooks.DirectoryUserDeleted}

	fresh, err := d.RecordDelivery(ctx, created)
	require.NoError(t, err)
	assert.True(t, fresh)

	fresh, err = d.RecordDelivery(ctx, created)
	require.NoError(t, err)
	assert.True(t, fresh, "an unpublished delivery is claimed again")

	_, err = d.RecordDelivery(ctx, deleted)
	require.NoError(t, err)

	require.NoError(t, d.MarkPublished(ctx, "wh_01"))
	fresh, err = d.RecordDelivery(ctx, created)
	require.NoError(t, err)
	assert.False(t, fresh, "a published delivery is a duplicate")
	got, err := d.GetDelivery(ctx, "wh_01")
	require.NoError(t, err)
	assert.Equal(t, webhooks.DirectoryUserCreated, got.Event)
	assert.NotNil(t, got.PublishedAt)

	all, err := d.ListDeliveries(ctx, ListDeliveriesOpts{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	filtered, err := d.ListDeliveries(ctx, ListDeliveriesOpts{Events: []string{webhooks.DirectoryUserDeleted}})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "wh_02", filtered[0].ID)
	assert.Nil(t, filtered[0].PublishedAt)

	require.NoError(t, d.ForgetDelivery(ctx, "wh_02"))
	_, err = d.GetDelivery(ctx, "wh_02")
	assert.ErrorIs(t, err, ErrDeliveryNotFound)
	assert.ErrorIs(t, d.MarkPublished(ctx, "wh_02"), ErrDeliveryNotFound)

	fresh, err = d.RecordDelivery(ctx, deleted)
	require.NoError(t, err)
	assert.True(t, fresh, "a forgotten delivery is accepted again")
}

func TestRecordDelivery_RetryAfterLostPublish(t *testing.T) {
	d := setupPostgresContainer(t)
	ctx := context.Background()
	wh := &webhooks.Webhook{ID: "wh_03", Event: webhooks.ConnectionActivated}

	// the first attempt is recorded but never published or forgotten
	fresh, err := d.RecordDelivery(ctx, wh)
	require.NoError(t, err)
	require.True(t, fresh)

	fresh, err = d.RecordDelivery(ctx, wh)
	require.NoError(t, err)
	assert.True(t, fresh)

	require.NoError(t, d.MarkPublished(ctx, wh.ID))
	fresh, err = d.RecordDelivery(ctx, wh)
	require.NoError(t, err)
	assert.False(t, fresh)
}

func TestNewDeliveryDB_MissingSource(t *testing.T) {
	_, err := NewDeliveryDB(context.Background(), "")
	assert.EqualError(t, err, "database source is not set")
}
