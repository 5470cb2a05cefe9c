package queue

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/rohan-lakhani/eSign-Workflow/internal/domain"
)

func setupRedisContainer(t *testing.T) (testcontainers.Container, *redis.Client) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForLog("Ready to accept connections"),
	}

	redisContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := redisContainer.Host(ctx)
	require.NoError(t, err)

	port, err := redisContainer.MappedPort(ctx, "6379")
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{
		Addr: host + ":" + port.Port(),
		DB:   0,
	})

	err = client.Ping(ctx).Err()
	require.NoError(t, err)

	return redisContainer, client
}

func testNotification() *domain.Notification {
	return &domain.Notification{
		Type:          domain.NotificationSignatureRequest,
		WorkflowID:    "wf-1",
		DocumentID:    "doc-1",
		DocumentName:  "contract.pdf",
		RoleNumber:    1,
		Email:         "a@x.com",
		RecipientName: "A",
		AccessToken:   "tok-1",
	}
}

func TestRedisNotificationQueue_EnqueueDequeue(t *testing.T) {
	container, client := setupRedisContainer(t)
	defer container.Terminate(context.Background())

	q := &RedisNotificationQueue{client: client}
	ctx := context.Background()

	sent := testNotification()
	require.NoError(t, q.Enqueue(ctx, sent))

	received, err := q.Dequeue(ctx, time.Second)
	require.NoError(t, err)
	require.NotNil(t, received)

	assert.Equal(t, sent.Type, received.Type)
	assert.Equal(t, sent.WorkflowID, received.WorkflowID)
	assert.Equal(t, sent.Email, received.Email)
	assert.Equal(t, sent.AccessToken, received.AccessToken)
	assert.Equal(t, 0, received.Attempts)

	// The entry sits on the processing list until acked or nacked.
	pending, err := client.LLen(ctx, pendingKey).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(0), pending)

	processing, err := client.LLen(ctx, processingKey).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), processing)
}

func TestRedisNotificationQueue_DequeueTimeout(t *testing.T) {
	container, client := setupRedisContainer(t)
	defer container.Terminate(context.Background())

	q := &RedisNotificationQueue{client: client}

	received, err := q.Dequeue(context.Background(), 100*time.Millisecond)
	require.NoError(t, err)
	assert.Nil(t, received)
}

func TestRedisNotificationQueue_Ack(t *testing.T) {
	container, client := setupRedisContainer(t)
	defer container.Terminate(context.Background())

	q := &RedisNotificationQueue{client: client}
	ctx := context.Background()

	require.NoError(t, q.Enqueue(ctx, testNotification()))

	received, err := q.Dequeue(ctx, time.Second)
	require.NoError(t, err)
	require.NotNil(t, received)

	require.NoError(t, q.Ack(ctx, received))

	processing, err := client.LLen(ctx, processingKey).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(0), processing)

	pending, err := client.LLen(ctx, pendingKey).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(0), pending)
}

func TestRedisNotificationQueue_NackRequeuesWithAttemptBump(t *testing.T) {
	container, client := setupRedisContainer(t)
	defer container.Terminate(context.Background())

	q := &RedisNotificationQueue{client: client}
	ctx := context.Background()

	require.NoError(t, q.Enqueue(ctx, testNotification()))

	received, err := q.Dequeue(ctx, time.Second)
	require.NoError(t, err)
	require.NotNil(t, received)

	require.NoError(t, q.Nack(ctx, received))

	processing, err := client.LLen(ctx, processingKey).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(0), processing)

	requeued, err := q.Dequeue(ctx, time.Second)
	require.NoError(t, err)
	require.NotNil(t, requeued)
	assert.Equal(t, 1, requeued.Attempts)
	assert.Equal(t, received.WorkflowID, requeued.WorkflowID)
}

func TestRedisNotificationQueue_FIFOOrder(t *testing.T) {
	container, client := setupRedisContainer(t)
	defer container.Terminate(context.Background())

	q := &RedisNotificationQueue{client: client}
	ctx := context.Background()

	first := testNotification()
	first.RoleNumber = 1
	second := testNotification()
	second.RoleNumber = 2

	require.NoError(t, q.Enqueue(ctx, first))
	require.NoError(t, q.Enqueue(ctx, second))

	received, err := q.Dequeue(ctx, time.Second)
	require.NoError(t, err)
	require.NotNil(t, received)
	assert.Equal(t, 1, received.RoleNumber)

	received, err = q.Dequeue(ctx, time.Second)
	require.NoError(t, err)
	require.NotNil(t, received)
	assert.Equal(t, 2, received.RoleNumber)
}
