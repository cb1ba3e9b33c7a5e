package cmd

import (
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Rorical/RoriSearch/internal/app"
	"github.com/Rorical/RoriSearch/internal/config"
)

var configURLFlag string

var rootCmd = &cobra.Command{
	Use:   "rorisearch",
	Short: "Terminal research assistant",
	Long:  `RoriSearch asks an LLM research questions from the terminal, with a selectable effort level and model.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig()
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		runApplication(cfg)
	},
}

// runApplication owns the terminal until the user quits.
func runApplication(cfg *config.Config) {
	cfg.OverrideConfigURL(configURLFlag)

	logPath, err := config.LogPath()
	if err != nil {
		log.Fatalf("Failed to resolve log path: %v", err)
	}
	logFile, err := tea.LogToFile(logPath, "rorisearch")
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer logFile.Close()

	application := app.NewApplication(cfg, tea.WithAltScreen())
	defer application.Stop()

	if err := application.Start(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution error: %v", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configURLFlag, "config-url", "", "override the LLM configuration endpoint for this run")
	rootCmd.AddCommand(profileCmd)
}
