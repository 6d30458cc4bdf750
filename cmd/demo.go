package cmd

import (
	"errors"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/marcus/disclose/internal/config"
	"github.com/marcus/disclose/internal/logging"
	"github.com/marcus/disclose/internal/output"
	"github.com/marcus/disclose/pkg/monitor"
	"github.com/marcus/disclose/pkg/monitor/tooltip"
)

var errNoTerminal = errors.New("demo needs an interactive terminal")

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the interactive disclosure demo",
	Long: `Opens a full-screen demo document. Hover a button to open its tooltip after
the hover delay, tab to open it by focus, click Share or About to toggle them,
and press esc to dismiss.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		baseDir := getBaseDir()

		cfg, err := config.Resolve(baseDir)
		if err != nil {
			output.Error("%v", err)
			return err
		}
		if err := applyDemoFlags(cmd, cfg); err != nil {
			output.Error("%v", err)
			return err
		}

		if !term.IsTerminal(int(os.Stdout.Fd())) {
			output.Error("%v", errNoTerminal)
			return errNoTerminal
		}

		logger, closeLog, err := logging.Setup(baseDir, cfg.LogFile, cfg.LogLevel)
		if err != nil {
			output.Error("failed to open log: %v", err)
			return err
		}
		defer closeLog()

		plain, _ := cmd.Flags().GetBool("plain")
		opts := monitor.Options{
			HoverDelay: cfg.HoverDelay(),
			Logger:     logger,
		}
		if plain {
			opts.TooltipOptions = append(opts.TooltipOptions, tooltip.WithMarkdownStyle(""))
		}

		logger.Info("demo starting", "hover_delay", cfg.HoverDelay(), "version", version)
		p := tea.NewProgram(monitor.NewModel(opts), tea.WithAltScreen(), tea.WithMouseAllMotion())
		if _, err := p.Run(); err != nil {
			logger.Error("demo failed", "err", err)
			output.Error("%v", err)
			return err
		}
		return nil
	},
}

// applyDemoFlags overrides cfg with flags the user set explicitly.
func applyDemoFlags(cmd *cobra.Command, cfg *config.Config) error {
	if cmd.Flags().Changed("hover-delay") {
		ms, _ := cmd.Flags().GetInt("hover-delay")
		cfg.SetHoverDelayMS(ms)
	}
	if f, _ := cmd.Flags().GetString("log-file"); f != "" {
		cfg.LogFile = f
	}
	if l, _ := cmd.Flags().GetString("log-level"); l != "" {
		cfg.LogLevel = l
	}
	return cfg.Validate()
}

func addDemoFlags(c *cobra.Command) {
	c.Flags().Int("hover-delay", config.DefaultHoverDelayMS, "Hover delay in milliseconds")
	c.Flags().String("log-file", "", "Log file (default .disclose/logs/disclose.log)")
	c.Flags().String("log-level", "", "Log level: debug, info, warn or error")
	c.Flags().Bool("plain", false, "Render tooltips as plain text instead of markdown")
}

func init() {
	rootCmd.AddCommand(demoCmd)
	addDemoFlags(demoCmd)
}
