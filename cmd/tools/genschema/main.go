// Command genschema writes the JSON schema of the realty configuration file
// so editors can complete and check *.realty.yaml files.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/isaacphi/realty/internal/config"
)

func main() {
	var outFile string
	flag.StringVar(&outFile, "out", "realty.schema.json", "Output file path")
	flag.Parse()

	if err := write(outFile); err != nil {
		fmt.Fprintf(os.Stderr, "genschema: %v\n", err)
		os.Exit(1)
	}
}

func write(outFile string) error {
	outFile, err := filepath.Abs(outFile)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", outFile, err)
	}

	schema, err := config.GenerateJSONSchema()
	if err != nil {
		return fmt.Errorf("generating schema: %w", err)
	}

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling schema: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(outFile), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", outFile, err)
	}
	if err := os.WriteFile(outFile, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", outFile, err)
	}
	fmt.Printf("Schema written to %s\n", outFile)
	return nil
}
