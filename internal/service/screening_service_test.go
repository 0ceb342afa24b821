package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/listing-portal/internal/domain"
)

func newScreeningFixture() (*ScreeningService, *fakeBlacklistRepository) {
	blacklist := newFakeBlacklistRepository()
	return NewScreeningService(blacklist, nil, 0, zap.NewNop()), blacklist
}

func TestScreenEmptyContactShortCircuits(t *testing.T) {
	svc, blacklist := newScreeningFixture()

	verdict, err := svc.Screen(context.Background(), domain.Contact{})
	require.NoError(t, err)
	assert.False(t, verdict.Blocked)
	assert.Nil(t, verdict.Match)
	assert.Equal(t, 0, blacklist.findCalls, "empty contact must not query the store")
}

func TestScreenNoMatch(t *testing.T) {
	svc, blacklist := newScreeningFixture()

	verdict, err := svc.Screen(context.Background(), domain.Contact{Email: "clean@good.com"})
	require.NoError(t, err)
	assert.False(t, verdict.Blocked)
	assert.Equal(t, 1, blacklist.findCalls)
}

func TestScreenMatchesNormalizedIdentifiers(t *testing.T) {
	svc, blacklist := newScreeningFixture()
	require.NoError(t, blacklist.InsertIfAbsent(context.Background(), domain.BlacklistKindEmail, "bad@spam.com", nil))

	// raw form differs only cosmetically from the banned entry
	verdict, err := svc.Screen(context.Background(), domain.Contact{Email: "  BAD@Spam.COM "})
	require.NoError(t, err)
	assert.True(t, verdict.Blocked)
	require.NotNil(t, verdict.Match)
	assert.Equal(t, domain.BlacklistKindEmail, verdict.Match.Kind)
	assert.Equal(t, "bad@spam.com", verdict.Match.Value)
}

func TestScreenMatchesDomainFromWebsite(t *testing.T) {
	svc, blacklist := newScreeningFixture()
	require.NoError(t, blacklist.InsertIfAbsent(context.Background(), domain.BlacklistKindDomain, "scam.example", nil))

	verdict, err := svc.Screen(context.Background(), domain.Contact{Website: "HTTP://WWW.Scam.Example/offers"})
	require.NoError(t, err)
	assert.True(t, verdict.Blocked)
	assert.Equal(t, domain.BlacklistKindDomain, verdict.Match.Kind)
}

func TestScreenPrecedenceEmailBeforeDomain(t *testing.T) {
	svc, blacklist := newScreeningFixture()
	emailReason := "banned sender"
	domainReason := "banned domain"
	require.NoError(t, blacklist.InsertIfAbsent(context.Background(), domain.BlacklistKindEmail, "a@shop.com", &emailReason))
	require.NoError(t, blacklist.InsertIfAbsent(context.Background(), domain.BlacklistKindDomain, "shop.com", &domainReason))

	verdict, err := svc.Screen(context.Background(), domain.Contact{Email: "a@shop.com"})
	require.NoError(t, err)
	require.True(t, verdict.Blocked)
	assert.Equal(t, domain.BlacklistKindEmail, verdict.Match.Kind)
	require.NotNil(t, verdict.Match.Reason)
	assert.Equal(t, "banned sender", *verdict.Match.Reason)
}

func TestInsertIfAbsentIdempotent(t *testing.T) {
	svc, blacklist := newScreeningFixture()

	require.NoError(t, svc.InsertIfAbsent(context.Background(), domain.BlacklistKindWhatsApp, "5511999990000", nil))
	require.NoError(t, svc.InsertIfAbsent(context.Background(), domain.BlacklistKindWhatsApp, "5511999990000", nil))

	assert.Equal(t, 1, blacklist.size())
	assert.Equal(t, 2, blacklist.insertCalls)
}

func TestCandidatesProjection(t *testing.T) {
	candidates := Candidates(domain.Contact{
		Email:    "A@Shop.COM",
		WhatsApp: "+55 11 99999-0000",
		Website:  "https://www.other.example/page",
	})
	require.Len(t, candidates, 4)
	assert.Equal(t, domain.BlacklistCandidate{Kind: domain.BlacklistKindEmail, Value: "a@shop.com"}, candidates[0])
	assert.Equal(t, domain.BlacklistCandidate{Kind: domain.BlacklistKindWhatsApp, Value: "5511999990000"}, candidates[1])
	assert.Equal(t, domain.BlacklistCandidate{Kind: domain.BlacklistKindDomain, Value: "shop.com"}, candidates[2])
	assert.Equal(t, domain.BlacklistCandidate{Kind: domain.BlacklistKindDomain, Value: "other.example"}, candidates[3])
}

func TestCandidatesDeduplicatesDomains(t *testing.T) {
	candidates := Candidates(domain.Contact{
		Email:   "a@shop.com",
		Website: "shop.com",
	})
	require.Len(t, candidates, 2)
	assert.Equal(t, domain.BlacklistKindEmail, candidates[0].Kind)
	assert.Equal(t, domain.BlacklistKindDomain, candidates[1].Kind)
}
