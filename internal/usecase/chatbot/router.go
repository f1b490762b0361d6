package chatbot

import (
	"context"
	"regexp"
	"strings"

	"jobboard/internal/domain/experience"
	"jobboard/internal/domain/job"
	"jobboard/internal/domain/matching"

	"github.com/google/uuid"
)

const (
	routedJobLimit = 10

	apologyText    = "Sorry, I'm having trouble answering right now. Please try again in a moment."
	notSureText    = "I'm not sure how to help with that yet. Try asking about your applications or job matches."
	systemPreamble = "You are the assistant of a job board. Answer questions about using the product " +
		"concisely and only from the documentation below. If the documentation does not cover a question, " +
		"say so and suggest contacting support.\n\n"
)

var (
	statsPattern       = regexp.MustCompile(`(?i)\b(how many|count|number of)\b.*\bapplications?\b`)
	myAppsPattern      = regexp.MustCompile(`(?i)\b(show|list|view|see)\b.*\bmy\s+applications?\b`)
	companyJobsPattern = regexp.MustCompile(`(?i)\b(?:jobs|roles)\s+(?:at|in)\s+(.+)`)
	entryLevelPattern  = regexp.MustCompile(`(?i)entry-level`)
	recommendPattern   = regexp.MustCompile(`(?i)match|recommend|suggest`)
	howPattern         = regexp.MustCompile(`(?i)how`)
)

// rule pairs a predicate on the message with the handler that answers it.
// Rules are evaluated in order and the first match wins.
type rule struct {
	name   string
	match  func(msg string) bool
	handle func(ctx context.Context, userID uuid.UUID, msg string) (Reply, error)
}

func (s *Service) defaultRules() []rule {
	return []rule{
		{name: "stats", match: statsPattern.MatchString, handle: s.replyStats},
		{name: "applications", match: myAppsPattern.MatchString, handle: s.replyApplications},
		{name: "company_jobs", match: companyJobsPattern.MatchString, handle: s.replyCompanyJobs},
		{name: "entry_level", match: entryLevelPattern.MatchString, handle: s.replyEntryLevel},
		{
			name: "recommend",
			match: func(msg string) bool {
				return recommendPattern.MatchString(msg) && !howPattern.MatchString(msg)
			},
			handle: s.replyRecommendations,
		},
	}
}

// HandleMessage routes a free-text message. Messages no rule claims go to
// the language model; its failures become a fixed apology, never an error.
func (s *Service) HandleMessage(ctx context.Context, userID uuid.UUID, message string) (Reply, error) {
	msg := strings.TrimSpace(message)
	if msg == "" {
		return Reply{}, ErrInvalidInput
	}

	for _, r := range s.rules {
		if r.match(msg) {
			return r.handle(ctx, userID, msg)
		}
	}
	return s.replyFromModel(ctx, userID, msg), nil
}

func (s *Service) replyStats(ctx context.Context, userID uuid.UUID, _ string) (Reply, error) {
	st, err := s.ApplicationStats(ctx, userID)
	if err != nil {
		return Reply{}, err
	}
	return Reply{Type: ReplyStats, Stats: &st}, nil
}

func (s *Service) replyApplications(ctx context.Context, userID uuid.UUID, _ string) (Reply, error) {
	apps, err := s.UserApplications(ctx, userID)
	if err != nil {
		return Reply{}, err
	}
	return Reply{Type: ReplyApplications, Applications: apps}, nil
}

func (s *Service) replyCompanyJobs(ctx context.Context, userID uuid.UUID, msg string) (Reply, error) {
	m := companyJobsPattern.FindStringSubmatch(msg)
	name := ""
	if len(m) > 1 {
		name = strings.TrimRight(strings.TrimSpace(m[1]), "?!. ")
	}
	if name == "" {
		return s.replyFromModel(ctx, userID, msg), nil
	}

	sig, err := s.DeriveSignals(ctx, userID)
	if err != nil {
		return Reply{}, err
	}
	jobs, err := s.rankedJobs(ctx, job.Filter{CompanyName: name, Level: sig.ExperienceLevel}, sig.Skills, routedJobLimit)
	if err != nil {
		return Reply{}, err
	}
	return Reply{Type: ReplyJobList, Jobs: jobs}, nil
}

func (s *Service) replyEntryLevel(ctx context.Context, userID uuid.UUID, _ string) (Reply, error) {
	sig, err := s.DeriveSignals(ctx, userID)
	if err != nil {
		return Reply{}, err
	}
	jobs, err := s.rankedJobs(ctx, job.Filter{Level: experience.LevelEntry}, sig.Skills, routedJobLimit)
	if err != nil {
		return Reply{}, err
	}
	return Reply{Type: ReplyJobList, Jobs: jobs}, nil
}

func (s *Service) replyRecommendations(ctx context.Context, userID uuid.UUID, _ string) (Reply, error) {
	jobs, err := s.MatchJobs(ctx, userID, MatchFilters{})
	if err != nil {
		return Reply{}, err
	}
	return Reply{Type: ReplyJobList, Jobs: jobs}, nil
}

func (s *Service) replyFromModel(ctx context.Context, userID uuid.UUID, msg string) Reply {
	if s.llm == nil {
		return Reply{Type: ReplyText, Text: notSureText}
	}
	text, err := s.llm.Complete(ctx, s.systemPrompt, msg)
	if err != nil {
		s.logger.Printf("[Chatbot] completion failed user_id=%s err=%v", userID, err)
		return Reply{Type: ReplyText, Text: apologyText}
	}
	return Reply{Type: ReplyText, Text: text}
}

// rankedJobs scores every active candidate for f, keeping only jobs that
// overlap the skills when any are known, and returns the best limit of them.
func (s *Service) rankedJobs(ctx context.Context, f job.Filter, skills []string, limit int) ([]MatchedJob, error) {
	if len(skills) > 0 {
		f.AnySkill = matching.NormalizeSkills(skills)
	}
	f.Unbounded = true

	candidates, err := s.jobs.List(ctx, f)
	if err != nil {
		s.logger.Printf("[Chatbot] job query failed err=%v", err)
		return nil, ErrInternal
	}

	ranked := matching.Rank(candidates, func(j job.Job) []string { return j.Requirements }, skills, limit)
	out := make([]MatchedJob, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, MatchedJob{Job: r.Item, Score: r.Score})
	}
	return out, nil
}

// SystemPrompt is the fixed instruction the model receives, followed by the
// product documentation.
func SystemPrompt(docs string) string {
	return systemPreamble + strings.TrimSpace(docs)
}
