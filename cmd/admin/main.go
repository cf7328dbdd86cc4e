package main

import (
	"flag"
	"fmt"
	"os"

	"feedback-board/app/repo"
	"feedback-board/cmd/admin/ui"
	"feedback-board/config"
	"feedback-board/db"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfgPath := flag.String("config", "", "path to config yaml")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}

	gdb, err := db.Connect(cfg.DB)
	if err != nil {
		fmt.Fprintln(os.Stderr, "connect db:", err)
		os.Exit(1)
	}

	root := ui.NewRootModel(repo.NewUserRepository(gdb), repo.NewFeedbackRepository(gdb))
	if _, err := tea.NewProgram(root, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintln(os.Stderr, "ui:", err)
		os.Exit(1)
	}
}
