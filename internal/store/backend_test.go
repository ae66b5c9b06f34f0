package store_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatvault/internal/crypto"
	"chatvault/internal/domain"
	"chatvault/internal/store"
)

const testRedisAddr = "localhost:6379"

// exerciseBackend runs the behaviour every RecordBackend must share.
func exerciseBackend(t *testing.T, b domain.RecordBackend) {
	t.Helper()
	ctx := context.Background()
	key := testKey(t, domain.ChatTypeGroup)

	_, ok, err := b.Load(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok, "fresh backend must not hold the key")

	require.NoError(t, b.Save(ctx, key, []byte(`{"v":1}`)))
	got, ok, err := b.Load(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"v":1}`, string(got))

	require.NoError(t, b.Save(ctx, key, []byte(`{"v":2}`)))
	got, ok, err = b.Load(ctx, key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"v":2}`, string(got), "save must overwrite")

	existed, err := b.Remove(ctx, key)
	require.NoError(t, err)
	assert.True(t, existed)

	existed, err = b.Remove(ctx, key)
	require.NoError(t, err)
	assert.False(t, existed, "second remove reports absence")

	_, ok, err = b.Load(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryBackend(t *testing.T) {
	exerciseBackend(t, store.NewMemoryBackend())
}

func TestMemoryBackend_CopiesBytes(t *testing.T) {
	ctx := context.Background()
	b := store.NewMemoryBackend()
	key := testKey(t, domain.ChatTypePrivate)

	data := []byte(`{"v":1}`)
	require.NoError(t, b.Save(ctx, key, data))
	data[0] = 'x'

	got, _, err := b.Load(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, `{"v":1}`, string(got))
	assert.Equal(t, 1, b.Len())
}

func TestFileBackend(t *testing.T) {
	b, err := store.NewFileBackend(t.TempDir())
	require.NoError(t, err)
	exerciseBackend(t, b)
}

func TestFileBackend_LayoutAndPersistence(t *testing.T) {
	ctx := context.Background()
	home := t.TempDir()
	key := testKey(t, domain.ChatTypePrivate)

	b, err := store.NewFileBackend(home)
	require.NoError(t, err)
	require.NoError(t, b.Save(ctx, key, []byte(`{}`)))

	path := filepath.Join(home, "rooms", crypto.Fingerprint([]byte(key))+".json")
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	reopened, err := store.NewFileBackend(home)
	require.NoError(t, err)
	_, ok, err := reopened.Load(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok, "record must survive reopening")
}

func TestFileBackend_CancelledContext(t *testing.T) {
	b, err := store.NewFileBackend(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = b.Save(ctx, testKey(t, domain.ChatTypeGroup), []byte(`{}`))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSQLBackend(t *testing.T) {
	db, err := store.OpenSQLite(filepath.Join(t.TempDir(), "chatvault.db"))
	require.NoError(t, err)

	b, err := store.NewSQLBackend(db)
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })

	exerciseBackend(t, b)
}

func TestRedisBackend(t *testing.T) {
	ctx := context.Background()
	client, err := store.DialRedis(ctx, &redis.Options{Addr: testRedisAddr})
	if err != nil {
		t.Skipf("Redis not available at %s: %v", testRedisAddr, err)
	}

	prefix := "chatvault:test:" + testKey(t, domain.ChatTypeGroup).String() + ":"
	b := store.NewRedisBackend(client, prefix)
	t.Cleanup(func() { _ = b.Close() })

	exerciseBackend(t, b)
}

func TestPostgresBackend(t *testing.T) {
	url := os.Getenv("CHATVAULT_TEST_POSTGRES_URL")
	if url == "" {
		t.Skip("CHATVAULT_TEST_POSTGRES_URL not set")
	}
	ctx := context.Background()

	pool, err := store.ConnectPostgres(ctx, url)
	if err != nil {
		t.Skipf("PostgreSQL not available: %v", err)
	}
	b, err := store.NewPostgresBackend(ctx, pool)
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })

	exerciseBackend(t, b)
}
