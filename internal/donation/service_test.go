package donation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	donations []Donation
	err       error
}

func (f *fakeFetcher) FetchDonations(ctx context.Context, requestID string) ([]Donation, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.donations, nil
}

func TestListByRequestSortsNewestFirst(t *testing.T) {
	base := time.Date(2026, time.August, 1, 10, 0, 0, 0, time.UTC)
	fetcher := &fakeFetcher{donations: []Donation{
		{ID: "old", CreatedAt: base},
		{ID: "newest", CreatedAt: base.Add(2 * time.Hour)},
		{ID: "middle", CreatedAt: base.Add(time.Hour)},
	}}

	got, err := NewService(fetcher).ListByRequest(context.Background(), "r1")
	require.NoError(t, err)

	assert.Equal(t, []string{"newest", "middle", "old"}, []string{got[0].ID, got[1].ID, got[2].ID})
}

func TestListByRequestPropagatesFetchError(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("platform down")}

	_, err := NewService(fetcher).ListByRequest(context.Background(), "r1")
	assert.Error(t, err)
}
