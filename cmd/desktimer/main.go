package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dori/desktimer/internal/app"
	"github.com/dori/desktimer/internal/config"
	"github.com/dori/desktimer/internal/countdown"
	"github.com/dori/desktimer/internal/db"
	"github.com/dori/desktimer/internal/menu"
	"github.com/dori/desktimer/internal/model"
	"github.com/dori/desktimer/internal/ui"
	"github.com/dori/desktimer/internal/ui/theme"
)

var (
	version = "0.1.0"
)

func main() {
	// Subcommand handling
	if len(os.Args) > 1 {
		var err error
		switch os.Args[1] {
		case "add":
			err = handleAdd(os.Args[2:])
		case "list":
			err = handleList(os.Args[2:])
		case "watch":
			err = handleWatch(os.Args[2:])
		case "version":
			fmt.Printf("desktimer v%s\n", version)
			return
		case "help", "-h", "--help":
			printHelp()
			return
		default:
			err = runTUI(os.Args[1:])
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := runTUI(nil); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	help := `desktimer - countdown timers for your desk

Usage:
  desktimer [--theme name] [--config path]   Start the TUI
  desktimer add <duration> [flags]           Start a timer without the TUI
  desktimer list                             Show timers and time remaining
  desktimer watch                            Ring timers headlessly until Ctrl-C
  desktimer version                          Show version
  desktimer help                             Show this help

Add flags:
  --color <peach|red|cyan>   Color tag (default peach)
  --snooze <minutes>         Snooze length, 1-60 (default from config)
  --label <text>             Name shown on the panel

Durations use Go syntax: 90s, 10m, 1h30m. The longest timer is 23h59m59s.

Keybindings:
  Menu:     ←/→ field, ↑/↓ adjust, 1-5 presets, c color, +/- snooze,
            i label, enter start
  Timers:   j/k select, s snooze (when done), d delete
  Global:   tab switch pane, m hide/show menu, ctrl+t theme, ? help, q quit`

	fmt.Println(help)
}

// loadConfig parses the shared --config flag
func loadConfig(fs *flag.FlagSet, args []string) (*config.Config, error) {
	configPath := fs.String("config", config.DefaultPath(), "Path to config.yaml")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	cfg, err := config.Load(*configPath)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func handleAdd(args []string) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	color := fs.String("color", string(model.ColorPeach), "Color tag (peach, red, cyan)")
	snooze := fs.Int("snooze", 0, "Snooze length in minutes")
	label := fs.String("label", "", "Timer label")

	// the duration comes first, flags after it
	if len(args) == 0 {
		return errors.New("usage: desktimer add <duration> [--color c] [--snooze m] [--label l]")
	}
	d, err := time.ParseDuration(args[0])
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", args[0], err)
	}

	cfg, err := loadConfig(fs, args[1:])
	if err != nil {
		return err
	}

	c, ok := model.ParseColor(*color)
	if !ok {
		return fmt.Errorf("unknown color %q", *color)
	}
	snoozeMinutes := *snooze
	if snoozeMinutes == 0 {
		snoozeMinutes = cfg.DefaultSnoozeMinutes
	}

	sel, err := menu.FromDuration(d, c, snoozeMinutes)
	if err != nil {
		return err
	}

	application, err := app.New(cfg, app.Options{})
	if err != nil {
		return err
	}
	defer application.Close()

	t, err := application.StartTimer(sel, *label)
	if err != nil {
		return err
	}

	fmt.Printf("Started: %s\n", t.DisplayName())
	fmt.Printf("Rings at: %s\n", t.Deadline().Local().Format("15:04:05"))
	return nil
}

func handleList(args []string) error {
	cfg, err := loadConfig(flag.NewFlagSet("list", flag.ContinueOnError), args)
	if err != nil {
		return err
	}

	// Open database (no lock needed for a read)
	database, err := db.OpenWith(cfg.DBPath, db.Options{ReadOnly: true})
	if errors.Is(err, db.ErrNoDatabase) {
		fmt.Println("No timers.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	timers, err := database.GetTimers()
	if err != nil {
		return err
	}
	if len(timers) == 0 {
		fmt.Println("No timers.")
		return nil
	}

	now := time.Now()
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCOLOR\tDURATION\tREMAINING\tSTATE")
	for _, t := range timers {
		res := countdown.Evaluate(t.StartedAt, t.DurationSeconds, now, t.Complete)
		h, m, s := res.Clamped()
		state := "running"
		if res.Expired {
			state = "done"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%02d:%02d:%02d\t%s\n",
			t.DisplayName(),
			t.Color.DisplayName(),
			time.Duration(t.DurationSeconds)*time.Second,
			h, m, s,
			state,
		)
	}
	return w.Flush()
}

func handleWatch(args []string) error {
	cfg, err := loadConfig(flag.NewFlagSet("watch", flag.ContinueOnError), args)
	if err != nil {
		return err
	}

	application, err := app.New(cfg, app.Options{Lock: true, Bell: os.Stdout})
	if err != nil {
		return err
	}
	defer application.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Watching %d timer(s). Ctrl-C to stop.\n", application.Registry.Len())
	if err := application.Driver.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func runTUI(args []string) error {
	fs := flag.NewFlagSet("desktimer", flag.ContinueOnError)
	themeFlag := fs.String("theme", "", "Theme name (nord, dracula)")
	cfg, err := loadConfig(fs, args)
	if err != nil {
		return err
	}

	themeName := cfg.Theme
	if *themeFlag != "" {
		themeName = *themeFlag
	}
	if t, ok := theme.ByName(themeName); ok {
		theme.SetTheme(t)
	} else {
		return fmt.Errorf("unknown theme %q", themeName)
	}

	application, err := app.New(cfg, app.Options{Lock: true, Bell: os.Stdout})
	if err != nil {
		return err
	}
	defer application.Close()

	p := tea.NewProgram(
		ui.NewRootModel(application),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err = p.Run()
	return err
}
