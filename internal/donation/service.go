package donation

import (
	"context"
	"sort"
)

// Fetcher retrieves donations from the platform API.
type Fetcher interface {
	FetchDonations(ctx context.Context, requestID string) ([]Donation, error)
}

type Service interface {
	ListByRequest(ctx context.Context, requestID string) ([]Donation, error)
}

type service struct {
	fetcher Fetcher
}

func NewService(fetcher Fetcher) Service {
	return &service{fetcher: fetcher}
}

// ListByRequest returns the donations attached to a request, newest first.
func (s *service) ListByRequest(ctx context.Context, requestID string) ([]Donation, error) {
	donations, err := s.fetcher.FetchDonations(ctx, requestID)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(donations, func(i, j int) bool {
		return donations[i].CreatedAt.After(donations[j].CreatedAt)
	})

	return donations, nil
}
