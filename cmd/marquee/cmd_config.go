package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"marquee/internal/config"
)

// configCmd groups the configuration subcommands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage marquee configuration",
}

// configInitCmd writes a starter config file
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config file with the defaults",
	RunE:  runConfigInit,
}

// configShowCmd prints the resolved configuration
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the resolved configuration with the API key masked",
	RunE:  runConfigShow,
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path, err := resolveConfigPath()
	if err != nil {
		return err
	}

	// Check if already initialized
	if _, err := os.Stat(path); err == nil {
		fmt.Printf("Config already exists at %s. Use 'marquee config show' to view it.\n", path)
		return nil
	}

	if err := config.DefaultConfig().Save(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	fmt.Printf("✓ Config written to %s\n", path)
	fmt.Println("Set tmdb.api_key in the file or export TMDB_API_KEY to enable querying.")
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	path, err := resolveConfigPath()
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg.Redacted())
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	fmt.Printf("Config file: %s\n", path)
	if _, statErr := os.Stat(path); os.IsNotExist(statErr) {
		fmt.Println("  (not present; showing defaults and environment overrides)")
	}
	fmt.Println()
	fmt.Print(string(data))
	fmt.Println()

	if cfg.Validate() == nil {
		fmt.Println("✓ TMDB API key configured")
	} else {
		fmt.Println("✗ TMDB API key not configured (set TMDB_API_KEY or tmdb.api_key)")
	}
	return nil
}
