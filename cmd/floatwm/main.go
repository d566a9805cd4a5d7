package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/1broseidon/floatwm/internal/config"
	"github.com/1broseidon/floatwm/internal/engine"
	"github.com/1broseidon/floatwm/internal/hotkeys"
	"github.com/1broseidon/floatwm/internal/ipc"
	"github.com/1broseidon/floatwm/internal/tui"
	"github.com/1broseidon/floatwm/internal/x11"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "daemon":
		if len(os.Args) > 2 && (os.Args[2] == "help" || os.Args[2] == "-h" || os.Args[2] == "--help") {
			fmt.Fprintln(os.Stdout, "Usage: floatwm daemon")
			os.Exit(0)
		}
		if len(os.Args) > 2 {
			fmt.Fprintln(os.Stderr, "daemon takes no arguments")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Usage: floatwm daemon")
			os.Exit(2)
		}
		runDaemon()
	case "status":
		os.Exit(runStatus(os.Args[2:]))
	case "monitors":
		os.Exit(runMonitors(os.Args[2:]))
	case "window":
		os.Exit(runWindow(os.Args[2:]))
	case "layout":
		os.Exit(runLayout(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "play":
		os.Exit(runPlay(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "reload":
		os.Exit(runReload(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: floatwm <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  daemon              Start the floatwm daemon (foreground)")
	fmt.Fprintln(w, "  status              Show daemon status")
	fmt.Fprintln(w, "  monitors            List monitors the daemon sees")
	fmt.Fprintln(w, "  reload              Tell the daemon to reload its configuration")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  window list         List managed windows")
	fmt.Fprintln(w, "  window move         Move a window by a delta")
	fmt.Fprintln(w, "  window resize       Resize a window by edge deltas")
	fmt.Fprintln(w, "  window front        Raise and focus a window")
	fmt.Fprintln(w, "  window close        Close a window")
	fmt.Fprintln(w, "  window set-layout   Override (or clear) a window's layout")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  layout list         List configured layouts")
	fmt.Fprintln(w, "  layout set          Switch the active layout")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "  config explain      Explain a config value")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  play                Interactive layout playground in the terminal")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'floatwm <command> --help' for command-specific options.")
}

func slogLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func runDaemon() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	log.Printf("Configuration loaded (default layout: %s, %d layouts)", cfg.DefaultLayout, len(cfg.Layouts))

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slogLevel(cfg.LogLevel),
	}))

	conn, err := x11.Connect(cfg.Display, cfg.XAuthority)
	if err != nil {
		log.Fatalf("Failed to connect to display: %v", err)
	}
	defer conn.Close()

	eng, err := engine.New(engine.Options{
		Config:       cfg,
		Backend:      conn,
		Logger:       logger,
		ReloadConfig: config.Load,
	})
	if err != nil {
		log.Fatalf("Failed to build engine: %v", err)
	}
	if err := eng.Start(); err != nil {
		log.Fatalf("Failed to start engine: %v", err)
	}
	defer eng.Stop()

	hk := hotkeys.NewHandler(conn, logger)
	if cfg.CycleLayoutHotkey != "" {
		if err := hk.Register(cfg.CycleLayoutHotkey, func() { eng.CycleLayout(1) }); err != nil {
			log.Printf("Warning: failed to register cycle_layout_hotkey: %v", err)
		}
	}
	if cfg.CycleLayoutReverseHotkey != "" {
		if err := hk.Register(cfg.CycleLayoutReverseHotkey, func() { eng.CycleLayout(-1) }); err != nil {
			log.Printf("Warning: failed to register cycle_layout_reverse_hotkey: %v", err)
		}
	}
	if cfg.FrontWindowHotkey != "" {
		if err := hk.Register(cfg.FrontWindowHotkey, func() { eng.FrontActiveWindow() }); err != nil {
			log.Printf("Warning: failed to register front_window_hotkey: %v", err)
		}
	}

	ipcServer, err := ipc.NewServer(eng, logger)
	if err != nil {
		log.Fatalf("Failed to create IPC server: %v", err)
	}
	if err := ipcServer.Start(); err != nil {
		log.Fatalf("Failed to start IPC server: %v", err)
	}
	defer ipcServer.Stop()

	reconciler := engine.NewReconciler(engine.ReconcilerConfig{
		Interval: 10 * time.Second,
		Logger:   logger,
	}, eng)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go reconciler.Run(ctx)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	go func() {
		for sig := range sigCh {
			switch sig {
			case syscall.SIGHUP:
				log.Println("Received SIGHUP, reloading config...")
				if err := eng.Reload(); err != nil {
					log.Printf("Config reload failed: %v", err)
				}
			case os.Interrupt, syscall.SIGTERM:
				log.Println("Shutting down floatwm daemon...")
				cancel()
				conn.Quit()
				return
			}
		}
	}()

	log.Println("floatwm daemon started, entering event loop")
	conn.EventLoop()
}

func runStatus(args []string) int {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: floatwm status")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Show daemon status via IPC.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "status takes no arguments")
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	status, err := client.GetStatus()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("daemon_running: %v\n", status.DaemonRunning)
	fmt.Printf("active_layout:  %s\n", status.ActiveLayout)
	fmt.Printf("monitor:        %s\n", status.Monitor)
	fmt.Printf("window_count:   %d\n", status.WindowCount)
	fmt.Printf("uptime_seconds: %d\n", status.UptimeSeconds)
	return 0
}

func runMonitors(args []string) int {
	fs := flag.NewFlagSet("monitors", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: floatwm monitors")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "List monitors and their geometry.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "monitors takes no arguments")
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	data, err := client.GetMonitors()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	for _, m := range data.Monitors {
		mark := ""
		if m.Primary {
			mark = " primary"
		}
		fmt.Printf("%d: %s %dx%d+%d+%d%s\n", m.ID, m.Name, m.Width, m.Height, m.X, m.Y, mark)
	}
	return 0
}

func runReload(args []string) int {
	fs := flag.NewFlagSet("reload", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: floatwm reload")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Ask the running daemon to reload its configuration.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "reload takes no arguments")
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	if err := client.Reload(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Println("config reloaded")
	return 0
}

func runPlay(args []string) int {
	fs := flag.NewFlagSet("play", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: floatwm play [--fps N]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Interactive playground: spawn windows on a terminal canvas and drive")
		fmt.Fprintln(os.Stderr, "the layout engine with the mouse. No X11 connection or daemon needed.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Keybindings:")
		fmt.Fprintln(os.Stderr, "  n          Open the new-window form")
		fmt.Fprintln(os.Stderr, "  x          Close the front window")
		fmt.Fprintln(os.Stderr, "  space      Cycle the front window")
		fmt.Fprintln(os.Stderr, "  tab        Next layout (shift+tab: previous)")
		fmt.Fprintln(os.Stderr, "  drag       Move a window (right or shift+drag: resize)")
		fmt.Fprintln(os.Stderr, "  ?          Toggle full help")
		fmt.Fprintln(os.Stderr, "  q, Esc     Quit")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	fps := fs.Int("fps", 0, "Override the configured animation frame rate")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "play takes no arguments")
		fs.Usage()
		return 2
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintln(os.Stderr, "play needs an interactive terminal")
		return 1
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	rate := cfg.Animation.FPS
	if *fps > 0 {
		rate = *fps
	}

	// Logs would corrupt the alternate screen.
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	err = tui.Run(tui.Options{
		Transitions: engine.TransitionsFrom(cfg.Animation),
		FPS:         rate,
		Logger:      logger,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
