package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"kanitomo/internal/config"
	"kanitomo/internal/minigame"
	"kanitomo/internal/store"
	"kanitomo/internal/ui"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug keys and logging")
	reset := flag.Bool("reset", false, "wipe all saved state and exit")
	game := flag.Bool("game", false, "play a round of crab catch")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Bad configuration: %v\n", err)
		os.Exit(1)
	}

	if *debug {
		f, err := tea.LogToFile(cfg.LogFile, "kanitomo")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Cannot open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	db, err := store.Open(cfg.StatePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cannot open state database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	switch {
	case *reset:
		err = runReset(db)
	case *game:
		err = minigame.Run(db)
	default:
		err = ui.Run(cfg, db, *debug)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runReset(db *store.Store) error {
	fmt.Print("This wipes your crab's happiness, streak and scores. Continue? [y/N] ")
	answer, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && answer == "" {
		return err
	}
	if strings.ToLower(strings.TrimSpace(answer)) != "y" {
		fmt.Println("Nothing touched.")
		return nil
	}
	if err := db.Reset(context.Background()); err != nil {
		return err
	}
	fmt.Println("Fresh start. Your crab remembers nothing.")
	return nil
}
