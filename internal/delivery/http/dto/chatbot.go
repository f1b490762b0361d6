package dto

import (
	"jobboard/internal/domain/application"
	"jobboard/internal/usecase/chatbot"
)

type ChatMessageRequest struct {
	Message string `json:"message"`
}

type MatchedJobResponse struct {
	Job   JobResponse `json:"job"`
	Score int         `json:"score"`
}

func NewMatchedJobResponses(items []chatbot.MatchedJob) []MatchedJobResponse {
	out := make([]MatchedJobResponse, 0, len(items))
	for _, m := range items {
		out = append(out, MatchedJobResponse{Job: NewJobResponse(m.Job), Score: m.Score})
	}
	return out
}

// MatchJobsResponse carries ranked jobs under the same key as a jobList
// chat reply.
type MatchJobsResponse struct {
	Jobs []MatchedJobResponse `json:"jobs"`
}

func NewMatchJobsResponse(items []chatbot.MatchedJob) MatchJobsResponse {
	return MatchJobsResponse{Jobs: NewMatchedJobResponses(items)}
}

// NewChatReply renders a reply as {"type": ..., <payload key>: ...}. Only the
// key belonging to the reply type is present.
func NewChatReply(r chatbot.Reply) map[string]any {
	out := map[string]any{"type": r.Type}
	switch r.Type {
	case chatbot.ReplyStats:
		stats := application.Stats{}
		if r.Stats != nil {
			stats = *r.Stats
		}
		out["stats"] = stats
	case chatbot.ReplyApplications:
		out["applications"] = NewApplicationResponses(r.Applications)
	case chatbot.ReplyJobList:
		out["jobs"] = NewMatchedJobResponses(r.Jobs)
	default:
		out["type"] = chatbot.ReplyText
		out["text"] = r.Text
	}
	return out
}
