package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/listing-portal/internal/domain"
	"github.com/spec-kit/listing-portal/internal/events"
	"github.com/spec-kit/listing-portal/internal/observability"
	"github.com/spec-kit/listing-portal/pkg/util"
)

const testAdminID = "3f1c2f4e-0000-0000-0000-000000000001"

func newModerationFixture(t *testing.T) (*ModerationService, *fakeListingRepository, *fakeBlacklistRepository, *recordingDispatcher) {
	t.Helper()
	listings := newFakeListingRepository()
	blacklist := newFakeBlacklistRepository()
	dispatcher := &recordingDispatcher{}
	screening := NewScreeningService(blacklist, nil, 0, zap.NewNop())
	svc := NewModerationService(ModerationDependencies{
		ListingRepo: listings,
		Screening:   screening,
		Dispatcher:  dispatcher,
		Metrics:     observability.NewMetrics(),
		Logger:      zap.NewNop(),
	})
	return svc, listings, blacklist, dispatcher
}

func TestApplyDecisionApprove(t *testing.T) {
	svc, listings, _, dispatcher := newModerationFixture(t)
	listing := listings.add(domain.Listing{Name: "Ana Electrics", Email: "ana@fix.com", Status: domain.ListingStatusPending})

	result, err := svc.ApplyDecision(context.Background(), testAdminID, listing.ID, domain.DecisionApprove, DecisionOptions{})
	require.NoError(t, err)
	assert.Equal(t, listing.ID, result.ListingID)
	assert.Equal(t, domain.ListingStatusApproved, result.NewStatus)
	assert.Equal(t, "ana@fix.com", result.Contact.Email)

	stored, err := listings.GetByID(context.Background(), listing.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ListingStatusApproved, stored.Status)

	decided := dispatcher.ofType(events.EventListingDecided)
	require.Len(t, decided, 1)
	assert.Equal(t, listing.ID, decided[0].ListingID)
}

func TestApplyDecisionReject(t *testing.T) {
	svc, listings, blacklist, _ := newModerationFixture(t)
	listing := listings.add(domain.Listing{Name: "Spam Co", Email: "spam@junk.com", Status: domain.ListingStatusPending})

	result, err := svc.ApplyDecision(context.Background(), testAdminID, listing.ID, domain.DecisionReject, DecisionOptions{Reason: "low quality"})
	require.NoError(t, err)
	assert.Equal(t, domain.ListingStatusRejected, result.NewStatus)

	stored, err := listings.GetByID(context.Background(), listing.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ListingStatusRejected, stored.Status)
	require.NotNil(t, stored.DecisionReason)
	assert.Equal(t, "low quality", *stored.DecisionReason)

	// no opt-in, so no blacklist writes
	assert.Equal(t, 0, blacklist.size())
}

func TestApplyDecisionRepeatOnDecidedListingSucceeds(t *testing.T) {
	svc, listings, _, _ := newModerationFixture(t)
	listing := listings.add(domain.Listing{Name: "Twice", Email: "t@x.com", Status: domain.ListingStatusPending})

	_, err := svc.ApplyDecision(context.Background(), testAdminID, listing.ID, domain.DecisionApprove, DecisionOptions{})
	require.NoError(t, err)

	result, err := svc.ApplyDecision(context.Background(), testAdminID, listing.ID, domain.DecisionApprove, DecisionOptions{})
	require.NoError(t, err)
	assert.Equal(t, domain.ListingStatusApproved, result.NewStatus)

	result, err = svc.ApplyDecision(context.Background(), testAdminID, listing.ID, domain.DecisionReject, DecisionOptions{})
	require.NoError(t, err)
	assert.Equal(t, domain.ListingStatusRejected, result.NewStatus)
}

func TestApplyDecisionInvalidInputs(t *testing.T) {
	svc, _, _, _ := newModerationFixture(t)

	_, err := svc.ApplyDecision(context.Background(), testAdminID, 0, domain.DecisionApprove, DecisionOptions{})
	assertDomainCode(t, err, "INVALID_ID")

	_, err = svc.ApplyDecision(context.Background(), testAdminID, 1, domain.DecisionAction("delete"), DecisionOptions{})
	assertDomainCode(t, err, "INVALID_ACTION")

	_, err = svc.ApplyDecision(context.Background(), testAdminID, 999999, domain.DecisionApprove, DecisionOptions{})
	assertDomainCode(t, err, "NOT_FOUND")
}

func TestApplyDecisionInvalidActionCheckedBeforeStore(t *testing.T) {
	svc, _, blacklist, _ := newModerationFixture(t)

	_, err := svc.ApplyDecision(context.Background(), testAdminID, 999999, domain.DecisionAction("purge"), DecisionOptions{AddToBlacklist: true})
	assertDomainCode(t, err, "INVALID_ACTION")
	assert.Equal(t, 0, blacklist.insertCalls)
}

func TestRejectWithBlacklistScenario(t *testing.T) {
	svc, listings, blacklist, _ := newModerationFixture(t)
	listing := listings.add(domain.Listing{
		ID:       42,
		Name:     "Shop 42",
		Email:    "a@shop.com",
		WhatsApp: "+55 11 99999-0000",
		Status:   domain.ListingStatusPending,
	})

	result, err := svc.ApplyDecision(context.Background(), testAdminID, listing.ID, domain.DecisionReject, DecisionOptions{
		Reason:         "duplicate entry",
		AddToBlacklist: true,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ListingStatusRejected, result.NewStatus)

	assert.True(t, blacklist.has(domain.BlacklistKindEmail, "a@shop.com"))
	assert.True(t, blacklist.has(domain.BlacklistKindWhatsApp, "5511999990000"))
	assert.True(t, blacklist.has(domain.BlacklistKindDomain, "shop.com"))
	assert.Equal(t, 3, blacklist.size())
}

func TestRejectDomainFallsBackToWebsite(t *testing.T) {
	svc, listings, blacklist, _ := newModerationFixture(t)
	listing := listings.add(domain.Listing{
		Name:     "No Email Shop",
		Website:  "https://www.noemail.example/contact",
		WhatsApp: "+1 (555) 000-1111",
		Status:   domain.ListingStatusPending,
	})

	_, err := svc.ApplyDecision(context.Background(), testAdminID, listing.ID, domain.DecisionReject, DecisionOptions{AddToBlacklist: true})
	require.NoError(t, err)

	assert.True(t, blacklist.has(domain.BlacklistKindDomain, "noemail.example"))
	assert.True(t, blacklist.has(domain.BlacklistKindWhatsApp, "15550001111"))
	assert.False(t, blacklist.has(domain.BlacklistKindEmail, ""))
}

func TestRejectSucceedsWhenBlacklistStoreFails(t *testing.T) {
	svc, listings, blacklist, dispatcher := newModerationFixture(t)
	blacklist.failInserts = true
	listing := listings.add(domain.Listing{Name: "Degraded", Email: "d@deg.com", Status: domain.ListingStatusPending})

	result, err := svc.ApplyDecision(context.Background(), testAdminID, listing.ID, domain.DecisionReject, DecisionOptions{AddToBlacklist: true})
	require.NoError(t, err)
	assert.Equal(t, domain.ListingStatusRejected, result.NewStatus)

	stored, err := listings.GetByID(context.Background(), listing.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ListingStatusRejected, stored.Status)

	// the decision event still fires; only blacklist events are absent
	assert.Len(t, dispatcher.ofType(events.EventListingDecided), 1)
	assert.Empty(t, dispatcher.ofType(events.EventBlacklistEntryAdded))
}

func TestParseListingID(t *testing.T) {
	id, err := ParseListingID("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, raw := range []string{"", "0", "-3", "abc", "12.5"} {
		_, err := ParseListingID(raw)
		assertDomainCode(t, err, "INVALID_ID")
	}
}

func assertDomainCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	domainErr := util.ToDomainError(err)
	assert.Equal(t, code, domainErr.Code)
}
