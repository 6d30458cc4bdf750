package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/marcus/disclose/internal/config"
	"github.com/marcus/disclose/internal/logging"
	"github.com/marcus/disclose/internal/output"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change the project configuration",
	Long: `Shows the resolved configuration: environment overrides, then
.disclose/config.json, then defaults.

  disclose config                        show settings
  disclose config --set-hover-delay 120  persist a hover delay
  disclose config -i                     edit interactively`,
	RunE: func(cmd *cobra.Command, args []string) error {
		baseDir := getBaseDir()

		if cmd.Flags().Changed("set-hover-delay") {
			ms, _ := cmd.Flags().GetInt("set-hover-delay")
			if err := config.SetHoverDelay(baseDir, ms); err != nil {
				output.Error("failed to set hover delay: %v", err)
				return err
			}
			output.Success("HOVER DELAY %dms", ms)
			return nil
		}

		if interactive, _ := cmd.Flags().GetBool("interactive"); interactive {
			if err := editConfig(baseDir); err != nil {
				if errors.Is(err, huh.ErrUserAborted) {
					output.Warning("config unchanged")
					return nil
				}
				output.Error("%v", err)
				return err
			}
			output.Success("Saved %s", config.Path(baseDir))
			return nil
		}

		jsonOut, _ := cmd.Flags().GetBool("json")
		return showConfig(baseDir, jsonOut)
	},
}

func showConfig(baseDir string, jsonOut bool) error {
	cfg, err := config.Resolve(baseDir)
	if err != nil {
		output.Error("%v", err)
		return err
	}

	if jsonOut {
		return output.JSON(cfg)
	}

	fmt.Fprintf(output.Stdout, "hover_delay_ms: %d\n", *cfg.HoverDelayMS)
	fmt.Fprintf(output.Stdout, "log_level:      %s\n", cfg.LogLevel)
	fmt.Fprintf(output.Stdout, "log_file:       %s\n", logging.Path(baseDir, cfg.LogFile))
	fmt.Fprintf(output.Stdout, "config:         %s\n", config.Path(baseDir))
	return nil
}

// parseHoverDelay validates user input for the hover delay.
func parseHoverDelay(s string) (int, error) {
	ms, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	if ms < 0 || ms > config.MaxHoverDelayMS {
		return 0, fmt.Errorf("must be between 0 and %d", config.MaxHoverDelayMS)
	}
	return ms, nil
}

func editConfig(baseDir string) error {
	cfg, err := config.Load(baseDir)
	if err != nil {
		return err
	}

	delay := strconv.Itoa(int(cfg.HoverDelay().Milliseconds()))
	level := cfg.LogLevel
	if level == "" {
		level = config.DefaultLogLevel
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Hover delay (ms)").
				Value(&delay).
				Validate(func(s string) error {
					_, err := parseHoverDelay(s)
					return err
				}),
			huh.NewSelect[string]().
				Title("Log level").
				Options(huh.NewOptions("debug", "info", "warn", "error")...).
				Value(&level),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	ms, err := parseHoverDelay(delay)
	if err != nil {
		return err
	}
	cfg.SetHoverDelayMS(ms)
	cfg.LogLevel = level
	return config.Save(baseDir, cfg)
}

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.Flags().Int("set-hover-delay", 0, "Persist the hover delay in milliseconds")
	configCmd.Flags().BoolP("interactive", "i", false, "Edit settings in a form")
	configCmd.Flags().Bool("json", false, "JSON output")
}
