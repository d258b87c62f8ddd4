package commands

import (
	"context"
	"os"
	"testing"

	"brefstats/lib/playerstore"

	"github.com/stretchr/testify/require"
)

func TestCloseStoreWithoutStore(t *testing.T) {
	openedStore = nil
	// repeated calls with nothing open are no-ops
	closeStore(context.Background())
	closeStore(context.Background())
	require.Nil(t, openedStore)
}

func TestCloseStoreDisconnects(t *testing.T) {
	url := os.Getenv("BREFSTATS_TEST_MONGODB_URL")
	if url == "" {
		t.Skip("BREFSTATS_TEST_MONGODB_URL not set")
	}

	ctx := context.Background()
	store, err := playerstore.Open(ctx, url)
	if err != nil {
		t.Fatal(err)
	}
	openedStore = store

	closeStore(ctx)
	require.Nil(t, openedStore)
	// a second call after disconnecting is still a no-op
	closeStore(ctx)
}
