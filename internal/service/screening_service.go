package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/listing-portal/internal/domain"
	"github.com/spec-kit/listing-portal/internal/normalize"
	"github.com/spec-kit/listing-portal/internal/repository"
)

const verdictCachePrefix = "screening:blacklist:"

// Verdict is the outcome of screening a contact against the blacklist.
type Verdict struct {
	Blocked bool
	Match   *domain.BlacklistEntry
}

// ScreeningService decides admission for submitted contacts. Screening is
// read-only and idempotent; match precedence among candidates is fixed as
// email > whatsapp > domain-from-email > domain-from-website, so the verdict
// never depends on storage ordering.
type ScreeningService struct {
	blacklist repository.BlacklistRepository
	cache     *redis.Client
	cacheTTL  time.Duration
	logger    *zap.Logger
}

// NewScreeningService constructs the service. The cache client may be nil, in
// which case every screen goes straight to the store.
func NewScreeningService(blacklist repository.BlacklistRepository, cache *redis.Client, cacheTTL time.Duration, logger *zap.Logger) *ScreeningService {
	return &ScreeningService{
		blacklist: blacklist,
		cache:     cache,
		cacheTTL:  cacheTTL,
		logger:    logger,
	}
}

// Candidates projects a contact into normalized blacklist candidates in
// precedence order, dropping empty values and duplicates.
func Candidates(contact domain.Contact) []domain.BlacklistCandidate {
	raw := []domain.BlacklistCandidate{
		{Kind: domain.BlacklistKindEmail, Value: normalize.Email(contact.Email)},
		{Kind: domain.BlacklistKindWhatsApp, Value: normalize.WhatsApp(contact.WhatsApp)},
		{Kind: domain.BlacklistKindDomain, Value: normalize.DomainFromEmail(contact.Email)},
		{Kind: domain.BlacklistKindDomain, Value: normalize.DomainFromWebsite(contact.Website)},
	}

	seen := make(map[domain.BlacklistCandidate]struct{}, len(raw))
	result := make([]domain.BlacklistCandidate, 0, len(raw))
	for _, candidate := range raw {
		if candidate.Value == "" {
			continue
		}
		if _, dup := seen[candidate]; dup {
			continue
		}
		seen[candidate] = struct{}{}
		result = append(result, candidate)
	}
	return result
}

// Screen checks the contact's identifiers against the blacklist. An all-empty
// contact short-circuits to not-blocked without touching the store, so a stray
// empty-string blacklist entry can never match everything.
func (s *ScreeningService) Screen(ctx context.Context, contact domain.Contact) (Verdict, error) {
	candidates := Candidates(contact)
	if len(candidates) == 0 {
		return Verdict{Blocked: false}, nil
	}

	for _, candidate := range candidates {
		if entry := s.cachedMatch(ctx, candidate); entry != nil {
			return Verdict{Blocked: true, Match: entry}, nil
		}
	}

	matches, err := s.blacklist.FindMatches(ctx, candidates)
	if err != nil {
		return Verdict{}, err
	}
	if len(matches) == 0 {
		return Verdict{Blocked: false}, nil
	}

	byKey := make(map[domain.BlacklistCandidate]domain.BlacklistEntry, len(matches))
	for _, match := range matches {
		byKey[domain.BlacklistCandidate{Kind: match.Kind, Value: match.Value}] = match
	}
	for _, candidate := range candidates {
		if entry, ok := byKey[candidate]; ok {
			s.cacheMatch(ctx, candidate, entry)
			return Verdict{Blocked: true, Match: &entry}, nil
		}
	}
	return Verdict{Blocked: false}, nil
}

// InsertIfAbsent adds a banned identifier; inserting an existing (kind, value)
// pair is a silent no-op.
func (s *ScreeningService) InsertIfAbsent(ctx context.Context, kind domain.BlacklistKind, value string, reason *string) error {
	if err := s.blacklist.InsertIfAbsent(ctx, kind, value, reason); err != nil {
		return err
	}
	s.cacheMatch(ctx, domain.BlacklistCandidate{Kind: kind, Value: value}, domain.BlacklistEntry{
		Kind:   kind,
		Value:  value,
		Reason: reason,
	})
	return nil
}

func (s *ScreeningService) cachedMatch(ctx context.Context, candidate domain.BlacklistCandidate) *domain.BlacklistEntry {
	if s.cache == nil {
		return nil
	}
	data, err := s.cache.Get(ctx, cacheKey(candidate)).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Debug("verdict cache read failed", zap.Error(err))
		}
		return nil
	}
	var entry domain.BlacklistEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil
	}
	return &entry
}

func (s *ScreeningService) cacheMatch(ctx context.Context, candidate domain.BlacklistCandidate, entry domain.BlacklistEntry) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, cacheKey(candidate), data, s.cacheTTL).Err(); err != nil {
		s.logger.Debug("verdict cache write failed", zap.Error(err))
	}
}

func cacheKey(candidate domain.BlacklistCandidate) string {
	return verdictCachePrefix + string(candidate.Kind) + ":" + candidate.Value
}
