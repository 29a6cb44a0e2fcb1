package chat

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isaacphi/realty/internal/domain"
)

type fakeAsker struct {
	questions []string
	resets    int
	fail      map[string]error
}

func (f *fakeAsker) Ask(ctx context.Context, input string) (string, error) {
	f.questions = append(f.questions, input)
	if err, ok := f.fail[input]; ok {
		return "", err
	}
	return "answer to " + input, nil
}

func (f *fakeAsker) Reset() {
	f.resets++
}

func TestRun(t *testing.T) {
	asker := &fakeAsker{fail: map[string]error{
		"loop": domain.AgentLoopExceededError{Limit: 6},
		"down": domain.ModelCallError{Err: errors.New("503")},
	}}
	in := strings.NewReader("Tell me about 85 Turner St\n\n  loop  \ndown\n/reset\nWhat about Abbotsford?\nexit\nnever asked\n")
	var out bytes.Buffer

	require.NoError(t, Run(context.Background(), in, &out, asker))

	assert.Equal(t, []string{"Tell me about 85 Turner St", "loop", "down", "What about Abbotsford?"}, asker.questions)
	assert.Equal(t, 1, asker.resets)
	text := out.String()
	assert.Contains(t, text, "answer to Tell me about 85 Turner St")
	assert.Contains(t, text, "couldn't work out an answer")
	assert.Contains(t, text, "couldn't reach the model")
	assert.Contains(t, text, "Conversation cleared.")
	assert.Contains(t, text, "answer to What about Abbotsford?")
	assert.NotContains(t, text, "never asked")
}

func TestRunEOF(t *testing.T) {
	asker := &fakeAsker{}
	var out bytes.Buffer
	require.NoError(t, Run(context.Background(), strings.NewReader("hello"), &out, asker))
	assert.Equal(t, []string{"hello"}, asker.questions)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	asker := &fakeAsker{}
	var out bytes.Buffer

	// an in-flight read never completes; cancellation alone ends the loop
	pr, pw := io.Pipe()
	defer pw.Close()
	require.NoError(t, Run(ctx, pr, &out, asker))
	assert.Empty(t, asker.questions)
}
