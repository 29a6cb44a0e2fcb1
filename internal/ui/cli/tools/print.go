package tools

import (
	"fmt"
	"io"
	"sort"

	"github.com/isaacphi/realty/internal/domain"
)

// PrintTools writes tool definitions in YAML form.
func PrintTools(w io.Writer, tools []domain.Tool) {
	for _, tool := range tools {
		fmt.Fprintf(w, "%s:\n", tool.Name)
		fmt.Fprintf(w, "  description: %s\n", tool.Description)
		fmt.Fprintf(w, "  parameters:\n")

		if tool.Parameters.Type != "" {
			fmt.Fprintf(w, "    type: %s\n", tool.Parameters.Type)
		}

		if len(tool.Parameters.Required) > 0 {
			fmt.Fprintf(w, "    required:\n")
			for _, req := range tool.Parameters.Required {
				fmt.Fprintf(w, "      - %s\n", req)
			}
		}

		if len(tool.Parameters.Properties) > 0 {
			fmt.Fprintf(w, "    properties:\n")
			names := make([]string, 0, len(tool.Parameters.Properties))
			for name := range tool.Parameters.Properties {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				prop := tool.Parameters.Properties[name]
				fmt.Fprintf(w, "      %s:\n", name)
				if prop.Type != "" {
					fmt.Fprintf(w, "        type: %s\n", prop.Type)
				}
				if prop.Description != "" {
					fmt.Fprintf(w, "        description: %s\n", prop.Description)
				}
				if len(prop.Enum) > 0 {
					fmt.Fprintf(w, "        enum:\n")
					for _, enum := range prop.Enum {
						fmt.Fprintf(w, "          - %s\n", enum)
					}
				}
				if prop.Default != nil {
					fmt.Fprintf(w, "        default: %v\n", prop.Default)
				}
			}
		}
	}
}
