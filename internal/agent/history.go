package agent

import "github.com/isaacphi/realty/internal/domain"

// trimHistory drops the oldest messages so at most limit remain. It only cuts
// in front of a user message so that tool calls and their results stay
// together. limit <= 0 disables trimming.
func trimHistory(history []domain.Message, limit int) []domain.Message {
	if limit <= 0 || len(history) <= limit {
		return history
	}
	for start := len(history) - limit; start < len(history); start++ {
		if history[start].Role == domain.RoleUser {
			return append([]domain.Message(nil), history[start:]...)
		}
	}
	return nil
}
