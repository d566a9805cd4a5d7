package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/1broseidon/floatwm/internal/config"
	"github.com/1broseidon/floatwm/internal/ipc"
)

func printLayoutUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  floatwm layout list [--json]")
	fmt.Fprintln(w, "  floatwm layout set <layout>")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'floatwm layout <command> --help' for command-specific options.")
}

type sizeRangeJSON struct {
	MinWidth        int `json:"min_width,omitempty"`
	MinHeight       int `json:"min_height,omitempty"`
	MaxWidth        int `json:"max_width,omitempty"`
	MaxHeight       int `json:"max_height,omitempty"`
	PreferredWidth  int `json:"preferred_width,omitempty"`
	PreferredHeight int `json:"preferred_height,omitempty"`
}

type gridJSON struct {
	Cols int `json:"cols"`
	Rows int `json:"rows"`
}

type dialogJSON struct {
	Width  int `json:"width"`
	Height int `json:"height"`
	Margin int `json:"margin"`
}

type layoutJSON struct {
	Name   string         `json:"name"`
	Kind   string         `json:"kind"`
	Sizes  *sizeRangeJSON `json:"sizes,omitempty"`
	Grid   *gridJSON      `json:"grid,omitempty"`
	Dialog *dialogJSON    `json:"dialog,omitempty"`
}

// layoutListJSON prints the configured presets without needing a
// running daemon.
func layoutListJSON() int {
	res, err := config.LoadWithSources()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	names := make([]string, 0, len(res.Config.Layouts))
	for name := range res.Config.Layouts {
		names = append(names, name)
	}
	sort.Strings(names)

	layouts := make([]layoutJSON, 0, len(names))
	for _, name := range names {
		p := res.Config.Layouts[name]
		entry := layoutJSON{Name: name, Kind: string(p.Kind)}
		switch p.Kind {
		case config.LayoutConstrained, config.LayoutGrid:
			entry.Sizes = &sizeRangeJSON{
				MinWidth:        p.Sizes.MinWidth,
				MinHeight:       p.Sizes.MinHeight,
				MaxWidth:        p.Sizes.MaxWidth,
				MaxHeight:       p.Sizes.MaxHeight,
				PreferredWidth:  p.Sizes.PreferredWidth,
				PreferredHeight: p.Sizes.PreferredHeight,
			}
		}
		if p.Kind == config.LayoutGrid {
			entry.Grid = &gridJSON{Cols: p.Grid.Cols, Rows: p.Grid.Rows}
		}
		if p.Kind == config.LayoutDialog {
			entry.Dialog = &dialogJSON{Width: p.Dialog.Width, Height: p.Dialog.Height, Margin: p.Dialog.Margin}
		}
		layouts = append(layouts, entry)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(layouts); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runLayout(args []string) int {
	if len(args) == 0 {
		printLayoutUsage(os.Stderr)
		return 2
	}
	if args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		printLayoutUsage(os.Stdout)
		return 0
	}

	client := ipc.NewClient()

	switch args[0] {
	case "list":
		fs := flag.NewFlagSet("list", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		fs.Usage = func() {
			fmt.Fprintln(os.Stderr, "Usage: floatwm layout list [--json]")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "List layouts and the current selection. --json prints the configured")
			fmt.Fprintln(os.Stderr, "presets in full and works without a running daemon.")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Flags:")
			fs.PrintDefaults()
		}
		jsonOut := fs.Bool("json", false, "Output full preset details as JSON")
		if err := fs.Parse(args[1:]); err != nil {
			if err == flag.ErrHelp {
				return 0
			}
			return 2
		}
		if fs.NArg() != 0 {
			fmt.Fprintln(os.Stderr, "layout list takes no arguments")
			fs.Usage()
			return 2
		}

		if *jsonOut {
			return layoutListJSON()
		}

		data, err := client.ListLayouts()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Printf("default_layout: %s\n", data.DefaultLayout)
		fmt.Printf("active_layout:  %s\n", data.ActiveLayout)
		for _, name := range data.Layouts {
			fmt.Printf("- %s\n", name)
		}
		return 0

	case "set":
		fs := flag.NewFlagSet("set", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		fs.Usage = func() {
			fmt.Fprintln(os.Stderr, "Usage: floatwm layout set <layout>")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Switch the daemon's active layout. Windows glide to their new rects.")
		}
		if err := fs.Parse(args[1:]); err != nil {
			if err == flag.ErrHelp {
				return 0
			}
			return 2
		}
		if fs.NArg() != 1 {
			fmt.Fprintln(os.Stderr, "layout set requires <layout>")
			fs.Usage()
			return 2
		}
		if err := client.SetLayout(fs.Arg(0)); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown layout command: %s\n\n", args[0])
		printLayoutUsage(os.Stderr)
		return 2
	}
}
