package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"peek-go/internal/app"
	"peek-go/internal/config"
	"peek-go/internal/peek"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// overrides collects the path flags shared by every command that touches
// the games, database or output locations.
func overrides(cmd *cobra.Command) config.Overrides {
	flags := cmd.Flags()
	games, _ := flags.GetString("games")
	db, _ := flags.GetString("db")
	output, _ := flags.GetString("output")
	peekPath, _ := flags.GetString("peek")
	return config.Overrides{
		GamesPath:  games,
		DbPath:     db,
		OutputPath: output,
		PeekPath:   peekPath,
	}
}

// newApp loads the config, applies command-line overrides and creates a
// PeekApp. The caller must defer app.Close().
// operation identifies the CLI command being run (e.g. "Scan", "Setup").
func newApp(cmd *cobra.Command, operation string) (*app.PeekApp, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := defaults.LoadConfig(overrides(cmd))
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	a, err := app.NewPeekApp(cfg, operation, os.Stdout)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}
	return a, nil
}

var rootCmd = &cobra.Command{
	Use:   "peek",
	Short: "Identify ROMs against OpenVGDB and write per-core reports",
}

// scan command
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan the games directory and write reports",
	RunE: func(cmd *cobra.Command, args []string) error {
		assumeYes, _ := cmd.Flags().GetBool("yes")

		a, err := newApp(cmd, "Scan")
		if err != nil {
			return err
		}
		defer a.Close()

		ok, err := a.Setup(cmd.Context(), os.Stdin, assumeYes)
		if err != nil {
			return fmt.Errorf("setup failed: %w", err)
		}
		if !ok {
			return nil
		}

		results, err := a.Scan()
		switch {
		case errors.Is(err, peek.ErrGamesPathMissing):
			fmt.Printf("ERROR: Roms directory doesn't exist at path: %s\n", a.Config().GamesPath)
			return nil
		case errors.Is(err, peek.ErrDatabaseMissing):
			fmt.Printf("ERROR: OpenVGDB doesn't exist at path: %s\n", a.Config().DbPath)
			return nil
		case err != nil:
			return fmt.Errorf("scan failed: %w", err)
		}

		fmt.Println(renderSummary(results))
		return nil
	},
}

// setup command
var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Download the OpenVGDB reference database if it is missing",
	RunE: func(cmd *cobra.Command, args []string) error {
		assumeYes, _ := cmd.Flags().GetBool("yes")

		a, err := newApp(cmd, "Setup")
		if err != nil {
			return err
		}
		defer a.Close()

		if _, err := a.Setup(cmd.Context(), os.Stdin, assumeYes); err != nil {
			return fmt.Errorf("setup failed: %w", err)
		}
		return nil
	},
}

// cores command
var coresCmd = &cobra.Command{
	Use:   "cores",
	Short: "List the cores that are scanned",
	Run: func(cmd *cobra.Command, args []string) {
		var rows [][]string
		for _, c := range peek.KnownCores() {
			rows = append(rows, []string{c.Name, strconv.Itoa(c.HeaderSize), c.Name + ".txt"})
		}
		fmt.Println(renderTable([]string{"Core", "Header bytes", "Report"}, rows, []columnAlignment{alignLeft, alignRight, alignLeft}))
	},
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg := defaults.Config()
		cfg.Apply(overrides(cmd))

		if err := config.Init(defaults.ConfigPath, cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults.ConfigPath)
		fmt.Printf("Base Dir: %s\n", cfg.BaseDir)
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := defaults.LoadConfig(overrides(cmd))
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", defaults.ConfigPath)
		fmt.Printf("Base Dir:    %s\n", cfg.BaseDir)
		fmt.Printf("Games Path:  %s\n", cfg.GamesPath)
		fmt.Printf("DB Path:     %s\n", cfg.DbPath)
		fmt.Printf("Output Path: %s\n", cfg.OutputPath)
		fmt.Printf("Peek Path:   %s\n", cfg.PeekPath)
		fmt.Printf("Log Dir:     %s\n", cfg.LogDir)
		return nil
	},
}

func init() {
	// path flags are shared by every command
	rootCmd.PersistentFlags().String("games", "", "Games directory holding one subdirectory per core")
	rootCmd.PersistentFlags().String("db", "", "Path to the OpenVGDB SQLite file")
	rootCmd.PersistentFlags().String("output", "", "Directory for the per-core reports")
	rootCmd.PersistentFlags().String("peek", "", "Import executable run after each report")

	// config subcommands
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)

	// root commands
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().BoolP("yes", "y", false, "Download the reference database without asking")
	rootCmd.AddCommand(setupCmd)
	setupCmd.Flags().BoolP("yes", "y", false, "Download without asking")
	rootCmd.AddCommand(coresCmd)
	rootCmd.AddCommand(configCmd)
}
