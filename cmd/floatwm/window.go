package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/1broseidon/floatwm/internal/ipc"
)

func printWindowUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  floatwm window list [--json]")
	fmt.Fprintln(w, "  floatwm window move <window> <dx> <dy>")
	fmt.Fprintln(w, "  floatwm window resize [--left N] [--top N] [--right N] [--bottom N] <window>")
	fmt.Fprintln(w, "  floatwm window front <window>")
	fmt.Fprintln(w, "  floatwm window close <window>")
	fmt.Fprintln(w, "  floatwm window set-layout [--clear] <window> [<layout>]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "<window> is a numeric window id or a key assigned at adoption.")
	fmt.Fprintln(w, "Run 'floatwm window <command> --help' for command-specific options.")
}

// parseWindowRef reads a positional window selector. Numbers select by
// id, anything else by key.
func parseWindowRef(arg string) ipc.WindowRef {
	if id, err := strconv.Atoi(arg); err == nil {
		return ipc.WindowRef{ID: id}
	}
	return ipc.WindowRef{Key: arg}
}

func runWindow(args []string) int {
	if len(args) == 0 {
		printWindowUsage(os.Stderr)
		return 2
	}
	if args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		printWindowUsage(os.Stdout)
		return 0
	}

	client := ipc.NewClient()

	switch args[0] {
	case "list":
		fs := flag.NewFlagSet("list", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		fs.Usage = func() {
			fmt.Fprintln(os.Stderr, "Usage: floatwm window list [--json]")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "List managed windows, back to front.")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Flags:")
			fs.PrintDefaults()
		}
		jsonOut := fs.Bool("json", false, "Output full window details as JSON")
		if err := fs.Parse(args[1:]); err != nil {
			if err == flag.ErrHelp {
				return 0
			}
			return 2
		}
		if fs.NArg() != 0 {
			fmt.Fprintln(os.Stderr, "window list takes no arguments")
			fs.Usage()
			return 2
		}

		data, err := client.ListWindows()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}

		if *jsonOut {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(data.Windows); err != nil {
				fmt.Fprintln(os.Stderr, err)
				return 1
			}
			return 0
		}

		for _, win := range data.Windows {
			layoutName := win.Layout
			if win.Override {
				layoutName += "*"
			}
			label := win.Key
			if label == "" {
				label = win.Class
			}
			fmt.Printf("%-4d %-14s %-16s %dx%d+%d+%d  %s\n",
				win.ID, label, layoutName,
				win.PixelWidth, win.PixelHeight, win.PixelX, win.PixelY,
				win.Title)
		}
		return 0

	case "move":
		fs := flag.NewFlagSet("move", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		fs.Usage = func() {
			fmt.Fprintln(os.Stderr, "Usage: floatwm window move <window> <dx> <dy>")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Move a window by a delta in its layout's units.")
		}
		if err := fs.Parse(args[1:]); err != nil {
			if err == flag.ErrHelp {
				return 0
			}
			return 2
		}
		if fs.NArg() != 3 {
			fmt.Fprintln(os.Stderr, "window move requires <window> <dx> <dy>")
			fs.Usage()
			return 2
		}
		dx, errX := strconv.ParseFloat(fs.Arg(1), 64)
		dy, errY := strconv.ParseFloat(fs.Arg(2), 64)
		if errX != nil || errY != nil {
			fmt.Fprintln(os.Stderr, "dx and dy must be numbers")
			return 2
		}
		if err := client.MoveWindow(parseWindowRef(fs.Arg(0)), dx, dy); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0

	case "resize":
		fs := flag.NewFlagSet("resize", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		fs.Usage = func() {
			fmt.Fprintln(os.Stderr, "Usage: floatwm window resize [--left N] [--top N] [--right N] [--bottom N] <window>")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Push window edges outward by positive deltas, inward by negative ones.")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Flags:")
			fs.PrintDefaults()
		}
		left := fs.Float64("left", 0, "Delta for the left edge")
		top := fs.Float64("top", 0, "Delta for the top edge")
		right := fs.Float64("right", 0, "Delta for the right edge")
		bottom := fs.Float64("bottom", 0, "Delta for the bottom edge")
		if err := fs.Parse(args[1:]); err != nil {
			if err == flag.ErrHelp {
				return 0
			}
			return 2
		}
		if fs.NArg() != 1 {
			fmt.Fprintln(os.Stderr, "window resize requires <window>")
			fs.Usage()
			return 2
		}
		if *left == 0 && *top == 0 && *right == 0 && *bottom == 0 {
			fmt.Fprintln(os.Stderr, "window resize requires at least one edge delta")
			fs.Usage()
			return 2
		}
		if err := client.ResizeWindow(parseWindowRef(fs.Arg(0)), *left, *top, *right, *bottom); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0

	case "front":
		fs := flag.NewFlagSet("front", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		fs.Usage = func() {
			fmt.Fprintln(os.Stderr, "Usage: floatwm window front <window>")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Raise a window to the front and focus it.")
		}
		if err := fs.Parse(args[1:]); err != nil {
			if err == flag.ErrHelp {
				return 0
			}
			return 2
		}
		if fs.NArg() != 1 {
			fmt.Fprintln(os.Stderr, "window front requires <window>")
			fs.Usage()
			return 2
		}
		if err := client.FrontWindow(parseWindowRef(fs.Arg(0))); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0

	case "close":
		fs := flag.NewFlagSet("close", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		fs.Usage = func() {
			fmt.Fprintln(os.Stderr, "Usage: floatwm window close <window>")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Ask a window's client to close.")
		}
		if err := fs.Parse(args[1:]); err != nil {
			if err == flag.ErrHelp {
				return 0
			}
			return 2
		}
		if fs.NArg() != 1 {
			fmt.Fprintln(os.Stderr, "window close requires <window>")
			fs.Usage()
			return 2
		}
		if err := client.CloseWindow(parseWindowRef(fs.Arg(0))); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0

	case "set-layout":
		fs := flag.NewFlagSet("set-layout", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		fs.Usage = func() {
			fmt.Fprintln(os.Stderr, "Usage: floatwm window set-layout [--clear] <window> [<layout>]")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Pin a window to a layout regardless of the active one. --clear removes")
			fmt.Fprintln(os.Stderr, "the override and returns the window to the active layout.")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Flags:")
			fs.PrintDefaults()
		}
		clear := fs.Bool("clear", false, "Clear the window's layout override")
		if err := fs.Parse(args[1:]); err != nil {
			if err == flag.ErrHelp {
				return 0
			}
			return 2
		}
		var name string
		switch {
		case *clear:
			if fs.NArg() != 1 {
				fmt.Fprintln(os.Stderr, "window set-layout --clear requires <window>")
				fs.Usage()
				return 2
			}
		case fs.NArg() == 2:
			name = fs.Arg(1)
		default:
			fmt.Fprintln(os.Stderr, "window set-layout requires <window> <layout>")
			fs.Usage()
			return 2
		}
		if err := client.SetWindowLayout(parseWindowRef(fs.Arg(0)), name); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown window command: %s\n\n", args[0])
		printWindowUsage(os.Stderr)
		return 2
	}
}
