package agent

import (
	"errors"

	"github.com/isaacphi/realty/internal/domain"
)

// UserMessage is the text shown to a person when Ask fails. Details stay in
// the logs and traces.
func UserMessage(err error) string {
	var modelErr domain.ModelCallError
	switch {
	case domain.IsAgentLoopExceededError(err):
		return "Sorry, I couldn't work out an answer to that. Try asking more specifically."
	case errors.As(err, &modelErr) && modelErr.Timeout:
		return "Sorry, the model took too long to respond. Please try again."
	case errors.As(err, &modelErr):
		return "Sorry, I couldn't reach the model. Please try again."
	default:
		return "Sorry, something went wrong answering that."
	}
}
