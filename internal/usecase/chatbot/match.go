package chatbot

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"jobboard/internal/domain/experience"
	"jobboard/internal/domain/job"
	"jobboard/internal/domain/matching"

	"github.com/google/uuid"
)

const (
	defaultMatchLimit = 10
	maxMatchLimit     = 50

	matchCacheTTL = 60 * time.Second
)

// MatchFilters narrow a match request. Empty Skills or Level are derived
// from the user's profile.
type MatchFilters struct {
	Skills   []string
	Level    string
	Type     string
	Location string
	Limit    int
}

// MatchJobs ranks active jobs for the user by requirement overlap.
func (s *Service) MatchJobs(ctx context.Context, userID uuid.UUID, f MatchFilters) ([]MatchedJob, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = defaultMatchLimit
	}
	if limit > maxMatchLimit {
		limit = maxMatchLimit
	}

	q := job.Filter{Location: strings.TrimSpace(f.Location)}
	if strings.TrimSpace(f.Type) != "" {
		t, ok := job.ParseType(f.Type)
		if !ok {
			return nil, ErrInvalidInput
		}
		q.Type = t
	}

	skills := cleanSkills(f.Skills)
	if strings.TrimSpace(f.Level) != "" {
		l, ok := experience.ParseLevel(f.Level)
		if !ok {
			return nil, ErrInvalidInput
		}
		q.Level = l
	}

	if len(skills) == 0 || q.Level == "" {
		sig, err := s.DeriveSignals(ctx, userID)
		if err != nil {
			return nil, err
		}
		if len(skills) == 0 {
			skills = sig.Skills
		}
		if q.Level == "" {
			q.Level = sig.ExperienceLevel
		}
	}

	key := MatchCacheKey(userID, q, skills, limit)
	if s.cache != nil {
		var cached []MatchedJob
		if ok, err := s.cache.GetJSON(ctx, key, &cached); err == nil && ok {
			return cached, nil
		}
	}

	out, err := s.rankedJobs(ctx, q, skills, limit)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, key, out, matchCacheTTL); err != nil {
			s.logger.Printf("[Chatbot] match cache set failed key=%s err=%v", key, err)
		}
	}
	return out, nil
}

type matchCacheKeyInput struct {
	Skills   []string `json:"skills"`
	Level    string   `json:"level"`
	Type     string   `json:"type"`
	Location string   `json:"location"`
	Limit    int      `json:"limit"`
}

// MatchCacheKey is "match:<user>:<digest>" over the effective query, so a
// profile change can drop every entry of one user by prefix.
func MatchCacheKey(userID uuid.UUID, q job.Filter, skills []string, limit int) string {
	in := matchCacheKeyInput{
		Skills:   matching.NormalizeSkills(skills),
		Level:    string(q.Level),
		Type:     string(q.Type),
		Location: strings.ToLower(q.Location),
		Limit:    limit,
	}
	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	return "match:" + userID.String() + ":" + hex.EncodeToString(sum[:])
}

func cleanSkills(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
