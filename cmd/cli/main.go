package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/de-tools/boutique-reports/pkg/runtime/terminal"
	"github.com/joho/godotenv"
)

func main() {
	// REPORTS_* variables may come from a local .env file.
	_ = godotenv.Load()

	home, _ := os.UserHomeDir()
	cli := terminal.NewCLI(terminal.Options{
		Output:       os.Stdout,
		ProfilesPath: filepath.Join(home, ".boutiquecfg"),
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
