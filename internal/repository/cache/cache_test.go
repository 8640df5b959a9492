package cache_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"opsdash/internal/assignment"
	"opsdash/internal/models"
	"opsdash/internal/repository/cache"
)

func TestSessionCache_PutGetDelete(t *testing.T) {
	repo := cache.NewSessionCache(cache.NewCache())

	_, err := repo.GetSession("nope")
	require.Error(t, err)
	if eh, ok := err.(cache.ErrorHandler); ok {
		require.Equal(t, http.StatusNotFound, eh.StatusCode)
	}

	sess := assignment.NewSession(
		models.Order{Oid: "ORD1", CustomerName: "Acme"},
		nil, nil, "",
		assignment.NewStore(nil, assignment.NewResolver(nil, nil)),
	)
	repo.PutSession("ORD1", sess)

	got, err := repo.GetSession("ORD1")
	require.NoError(t, err)
	require.Same(t, sess, got)

	repo.DeleteSession("ORD1")
	_, err = repo.GetSession("ORD1")
	require.Error(t, err)
}

func TestCache_TTL_Expiry(t *testing.T) {
	c := cache.NewCache(cache.WithTTL(20*time.Millisecond), cache.WithNoJanitor())
	defer c.Close()

	c.Put("ORD1", 1)
	_, ok := c.Get("ORD1")
	require.True(t, ok)

	time.Sleep(35 * time.Millisecond)
	_, ok = c.Get("ORD1")
	require.False(t, ok)
	require.Empty(t, c.Snapshot())
}
