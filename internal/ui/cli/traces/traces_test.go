package traces

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isaacphi/realty/internal/domain"
)

func TestWriteEvents(t *testing.T) {
	run := uuid.New()
	var buf bytes.Buffer
	writeEvents(&buf, []domain.TraceEvent{
		{RunID: run, Name: "turn", Status: "error", Error: "no final answer after 6 model calls", CreatedAt: time.Now()},
		{RunID: run, Name: "tool_call", Status: "success", Payload: `{"tool":"find_property","summary":"` + strings.Repeat("x", 80) + `"}`, CreatedAt: time.Now()},
	})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Event")
	assert.Contains(t, lines[1], run.String()[:8])
	assert.Contains(t, lines[1], "no final answer after 6 model calls")
	assert.True(t, strings.HasSuffix(lines[2], "..."))
}
