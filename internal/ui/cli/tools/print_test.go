package tools

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/isaacphi/realty/internal/domain"
)

func TestPrintTools(t *testing.T) {
	var buf bytes.Buffer
	PrintTools(&buf, []domain.Tool{{
		Name:        "suburb_trends",
		Description: "Summarise sales in a suburb",
		Parameters: domain.Parameters{
			Type:       "object",
			Required:   []string{"suburb"},
			Properties: map[string]domain.Property{"suburb": {Type: "string", Description: "Suburb name"}},
		},
	}})

	assert.Equal(t, `suburb_trends:
  description: Summarise sales in a suburb
  parameters:
    type: object
    required:
      - suburb
    properties:
      suburb:
        type: string
        description: Suburb name
`, buf.String())
}
