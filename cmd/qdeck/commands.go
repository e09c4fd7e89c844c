package main

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/qdeck/qdeck/internal/cli"
	"github.com/qdeck/qdeck/internal/version"
	"github.com/qdeck/qdeck/pkg/config"
	"github.com/qdeck/qdeck/pkg/errors"
	"github.com/qdeck/qdeck/pkg/filesystem"
	"github.com/qdeck/qdeck/pkg/ingest"
	"github.com/qdeck/qdeck/pkg/types"
)

func addCommands(root *cobra.Command) {
	root.AddCommand(
		newVersionCmd(),
		newProfilesCmd(),
		newPagesCmd(),
		newSwitchCmd(),
		newPageCmd(),
		newNextCmd(),
		newPrevCmd(),
		newShowCmd(),
		newExecCmd(),
		newAddCmd(),
		newRemoveCmd(),
		newResizeCmd(),
		newDropCmd(),
		newIconCmd(),
		newUndoCmd(),
		newConfigCmd(),
	)
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("qdeck %s (commit %s, built %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}

func newProfilesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profiles",
		Short: "List profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := cli.Open()
			if err != nil {
				return err
			}
			ctx := app.Engine.Context()
			cmd.Println(cli.RenderProfiles(app.Engine.Profiles(), ctx.ProfileIndex))
			return nil
		},
	}
}

func newPagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pages",
		Short: "List pages of the active profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := cli.Open()
			if err != nil {
				return err
			}
			ctx := app.Engine.Context()
			cmd.Println(cli.RenderPages(app.Engine.Pages(), ctx.PageIndex))
			return nil
		},
	}
}

func newSwitchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "switch <profile>",
		Short: "Switch to a profile by name or number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := cli.Open()
			if err != nil {
				return err
			}

			var ctx types.NavigationContext
			if n, convErr := strconv.Atoi(args[0]); convErr == nil {
				ctx, err = app.Engine.SwitchToProfile(n - 1)
			} else {
				ctx, err = app.Engine.SwitchToProfileByName(args[0])
			}
			if err != nil {
				return err
			}
			cmd.Println(cli.RenderContext(ctx))
			return nil
		},
	}
}

func newPageCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "page <number>",
		Short: "Switch to a page of the active profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := cli.Open()
			if err != nil {
				return err
			}
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return errors.Newf(errors.ErrInvalidInput, "page must be a number, got %q", args[0])
			}
			ctx, err := app.Engine.SwitchToPage(n - 1)
			if err != nil {
				return err
			}
			cmd.Println(cli.RenderContext(ctx))
			return nil
		},
	}
}

func newNextCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "next",
		Short: "Go to the next page",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := cli.Open()
			if err != nil {
				return err
			}
			ctx, err := app.Engine.NextPage()
			if err != nil {
				return err
			}
			if ctx == nil {
				cmd.Println("Already at the last page")
				return nil
			}
			cmd.Println(cli.RenderContext(*ctx))
			return nil
		},
	}
}

func newPrevCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prev",
		Short: "Go to the previous page",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := cli.Open()
			if err != nil {
				return err
			}
			ctx, err := app.Engine.PreviousPage()
			if err != nil {
				return err
			}
			if ctx == nil {
				cmd.Println("Already at the first page")
				return nil
			}
			cmd.Println(cli.RenderContext(*ctx))
			return nil
		},
	}
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current page grid",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := cli.Open()
			if err != nil {
				return err
			}
			ctx := app.Engine.Context()
			page := &app.Engine.Snapshot().Profiles[ctx.ProfileIndex].Pages[ctx.PageIndex]
			cmd.Println(cli.RenderPage(ctx.ProfileName, page))
			cmd.Println(cli.RenderContext(ctx))
			return nil
		},
	}
}

func newExecCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exec <row> <col>",
		Short: "Execute the button at a cell of the current page",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := cli.Open()
			if err != nil {
				return err
			}
			pos, err := parsePosition(args[0], args[1])
			if err != nil {
				return err
			}

			result := app.Dispatcher.ExecuteButton(app.CurrentButton(pos))
			if !result.Success {
				cmd.PrintErrf("Failed: %s\n", result.Message)
				return nil
			}
			cmd.Println(result.Message)
			return nil
		},
	}
}

func newAddCmd() *cobra.Command {
	var (
		label      string
		icon       string
		actionType string
		sets       []string
	)
	cmd := &cobra.Command{
		Use:   "add <row> <col>",
		Short: "Place a button on the current page",
		Long: `Place a button at a cell of the current page, replacing any button
already there. Action parameters are given as repeated --set key=value
flags, e.g. --set path=/usr/bin/htop.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := cli.Open()
			if err != nil {
				return err
			}
			pos, err := parsePosition(args[0], args[1])
			if err != nil {
				return err
			}

			config := make(map[string]interface{}, len(sets))
			for _, kv := range sets {
				key, value, found := strings.Cut(kv, "=")
				if !found || key == "" {
					return errors.Newf(errors.ErrInvalidInput, "--set expects key=value, got %q", kv)
				}
				config[key] = value
			}

			ctx := app.Engine.Context()
			opID, err := app.Space.AddButton(ctx.ProfileIndex, ctx.PageIndex, types.Button{
				Position:   pos,
				ActionType: actionType,
				Label:      label,
				Icon:       icon,
				Config:     config,
			})
			if err != nil {
				return err
			}
			cmd.Printf("Added %q at (%d,%d) [operation %s]\n", label, pos.Row, pos.Col, opID)
			return nil
		},
	}
	cmd.Flags().StringVar(&label, "label", "", "Button label (required)")
	cmd.Flags().StringVar(&icon, "icon", "", "Icon reference: emoji, file path, URL or data URL")
	cmd.Flags().StringVar(&actionType, "action", types.ActionOpen, "Action type")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "Action parameter as key=value (repeatable)")
	_ = cmd.MarkFlagRequired("label")
	return cmd
}

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <row> <col>",
		Short: "Clear a cell of the current page",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := cli.Open()
			if err != nil {
				return err
			}
			pos, err := parsePosition(args[0], args[1])
			if err != nil {
				return err
			}

			ctx := app.Engine.Context()
			opID, err := app.Space.RemoveButton(ctx.ProfileIndex, ctx.PageIndex, pos)
			if err != nil {
				return err
			}
			if opID == "" {
				cmd.Printf("Cell (%d,%d) was already empty\n", pos.Row, pos.Col)
				return nil
			}
			cmd.Printf("Removed button at (%d,%d)\n", pos.Row, pos.Col)
			return nil
		},
	}
}

func newResizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resize <rows> <cols>",
		Short: "Resize the current page",
		Long: `Resize the current page. Buttons outside the new bounds are removed;
a single undo restores both the dimensions and the removed buttons.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := cli.Open()
			if err != nil {
				return err
			}
			size, err := parsePosition(args[0], args[1])
			if err != nil {
				return err
			}

			ctx := app.Engine.Context()
			if _, err := app.Space.ResizePage(ctx.ProfileIndex, ctx.PageIndex, size.Row, size.Col); err != nil {
				return err
			}
			cmd.Printf("Resized %s to %dx%d\n", ctx.PageName, size.Row, size.Col)
			return nil
		},
	}
}

func newDropCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "drop <row> <col> <file>...",
		Short: "Place buttons for files, as a drop onto a cell",
		Long: `Classify files into buttons and place them on the current page, row
major from the given cell, skipping occupied cells. Files that do not fit
are reported and skipped. The whole drop is one undoable operation.`,
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := cli.Open()
			if err != nil {
				return err
			}
			pos, err := parsePosition(args[0], args[1])
			if err != nil {
				return err
			}

			drops := app.Drops(pos)
			if err := drops.DragEnter(args[2:]); err != nil {
				return err
			}
			resp, err := drops.Drop(ingest.DropRequest{Paths: args[2:]})
			if err != nil {
				return err
			}
			if _, err := drops.Commit(); err != nil {
				return err
			}

			for _, op := range resp.Placements {
				cmd.Printf("Placed %q at (%d,%d)\n", op.Button.Label, op.Position.Row, op.Position.Col)
			}
			for _, path := range resp.Discarded {
				cmd.PrintErrf("No room for %s\n", path)
			}
			return nil
		},
	}
}

func newIconCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "icon <row> <col>",
		Short: "Resolve the icon of the button at a cell",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := cli.Open()
			if err != nil {
				return err
			}
			pos, err := parsePosition(args[0], args[1])
			if err != nil {
				return err
			}

			button := app.CurrentButton(pos)
			if button == nil || button.Icon == "" {
				cmd.Printf("Cell (%d,%d) has no icon\n", pos.Row, pos.Col)
				return nil
			}

			icon, err := app.Icons.Resolve(button.Icon)
			if err != nil {
				return err
			}
			cmd.Printf("kind: %s\n", icon.Kind)
			if icon.MIME != "" {
				cmd.Printf("mime: %s\n", icon.MIME)
			}
			if icon.Ref != "" {
				cmd.Printf("ref:  %s\n", icon.Ref)
			}
			if icon.Data != nil {
				cmd.Printf("size: %d bytes\n", len(icon.Data))
			}
			return nil
		},
	}
}

func newUndoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "undo",
		Short: "Revert the last grid change",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := cli.Open()
			if err != nil {
				return err
			}
			entry, err := app.Space.Undo()
			if err != nil {
				return err
			}
			cmd.Printf("Reverted %s affecting %d cell(s)\n", entry.OperationType, len(entry.AffectedPositions))
			return nil
		},
	}
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and transfer the configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print configuration file locations",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := cli.Open()
			if err != nil {
				return err
			}
			cmd.Printf("config:   %s\n", app.Paths.ConfigFile())
			cmd.Printf("settings: %s\n", app.Paths.SettingsFile())
			cmd.Printf("state:    %s\n", app.Paths.StateFile())
			cmd.Printf("log:      %s\n", app.Paths.LogFile())
			cmd.Printf("cache:    %s\n", app.Paths.IconCacheDir())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write a starter settings file with the defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := cli.Open()
			if err != nil {
				return err
			}
			written, err := config.WriteStarterSettings(filesystem.NewOS(), app.Paths.SettingsFile())
			if err != nil {
				return err
			}
			if !written {
				cmd.Printf("Settings file already exists at %s\n", app.Paths.SettingsFile())
				return nil
			}
			cmd.Printf("Wrote %s\n", app.Paths.SettingsFile())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "export <file>",
		Short: "Write the configuration tree to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := cli.Open()
			if err != nil {
				return err
			}
			if err := app.Store.Export(app.Engine.Snapshot(), args[0]); err != nil {
				return err
			}
			cmd.Printf("Exported to %s\n", args[0])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "import <file>",
		Short: "Replace the configuration tree from a file",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := cli.Open()
			if err != nil {
				return err
			}
			cfg, err := app.Store.Import(args[0])
			if err != nil {
				return err
			}
			app.Engine.Replace(cfg)
			cmd.Printf("Imported %d profile(s) from %s\n", len(cfg.Profiles), args[0])
			return nil
		},
		Args: cobra.ExactArgs(1),
	})

	return cmd
}

func parsePosition(rowArg, colArg string) (types.Position, error) {
	row, err := strconv.Atoi(rowArg)
	if err != nil {
		return types.Position{}, errors.Newf(errors.ErrInvalidInput, "row must be a number, got %q", rowArg)
	}
	col, err := strconv.Atoi(colArg)
	if err != nil {
		return types.Position{}, errors.Newf(errors.ErrInvalidInput, "col must be a number, got %q", colArg)
	}
	return types.Position{Row: row, Col: col}, nil
}
