package notification

import (
	"context"
	"log"
	"sync"
	"time"
)

type Service interface {
	RegisterDevice(orgID string, req RegisterDeviceRequest) DeviceToken
	UnregisterDevice(orgID, token string) bool
	TokensForOrg(orgID string) []string
	NotifyOrg(ctx context.Context, orgID, title, body string)
}

// service keeps the device registry in memory; tokens are re-registered by
// clients on every app start so losing them on restart is acceptable.
type service struct {
	mu      sync.RWMutex
	byOrg   map[string]map[string]DeviceToken
	channel Channel
}

func NewService(channel Channel) Service {
	return &service{
		byOrg:   make(map[string]map[string]DeviceToken),
		channel: channel,
	}
}

func (s *service) RegisterDevice(orgID string, req RegisterDeviceRequest) DeviceToken {
	s.mu.Lock()
	defer s.mu.Unlock()

	tokens, ok := s.byOrg[orgID]
	if !ok {
		tokens = make(map[string]DeviceToken)
		s.byOrg[orgID] = tokens
	}

	dt := DeviceToken{
		Token:        req.Token,
		OrgID:        orgID,
		DeviceType:   req.DeviceType,
		RegisteredAt: time.Now().UTC(),
	}
	tokens[req.Token] = dt
	return dt
}

func (s *service) UnregisterDevice(orgID, token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	tokens, ok := s.byOrg[orgID]
	if !ok {
		return false
	}
	if _, ok := tokens[token]; !ok {
		return false
	}
	delete(tokens, token)
	return true
}

func (s *service) TokensForOrg(orgID string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tokens := s.byOrg[orgID]
	out := make([]string, 0, len(tokens))
	for t := range tokens {
		out = append(out, t)
	}
	return out
}

// NotifyOrg pushes to every device of the organisation. Delivery is best
// effort and never blocks the caller's flow.
func (s *service) NotifyOrg(ctx context.Context, orgID, title, body string) {
	recipients := s.TokensForOrg(orgID)
	if len(recipients) == 0 || s.channel == nil {
		return
	}

	if err := s.channel.Send(ctx, recipients, title, body); err != nil {
		log.Printf("⚠️ push notification failed for org %s: %v", orgID, err)
	}
}
