package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/praxis/internal/core/theme"
	"github.com/example/praxis/internal/ports/primary"
	"github.com/example/praxis/internal/wire"
)

// ThemeCmd returns the theme command
func ThemeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Manage interface colors",
		Long: `Manage the interface colors.

Colors are kept in the local store and on your profile. Reads prefer the
profile; writes go to the local store first and then to the profile.`,
	}
	cmd.AddCommand(themeShowCmd())
	cmd.AddCommand(themeSetCmd())
	cmd.AddCommand(themeStatusColorCmd("case-color", theme.CaseOpen, theme.CaseCompleted))
	cmd.AddCommand(themeStatusColorCmd("task-color", theme.TaskInProgress, theme.TaskDelayed, theme.TaskCompleted))
	cmd.AddCommand(themeViewCmd())
	cmd.AddCommand(themeCheckCmd())
	cmd.AddCommand(themeClearCacheCmd())
	cmd.AddCommand(themeResetCmd())
	cmd.AddCommand(themeDeriveCmd())
	return cmd
}

func themeShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current colors and where they came from",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := actorContext()
			if err != nil {
				return err
			}
			state, err := wire.ThemeService().LoadTheme(ctx)
			if err != nil {
				return err
			}
			s := state.Settings
			cmd.Printf("Source: %s\n", bold(state.Source))
			if state.Warning != "" {
				cmd.Println(warn("⚠ " + state.Warning))
			}
			cmd.Printf("  header   %s\n", s.HeaderColor)
			cmd.Printf("  avatar   %s\n", s.AvatarColor)
			cmd.Printf("  text     %s\n", s.TextColor)
			cmd.Printf("  main     %s\n", s.MainColor)
			cmd.Printf("  button   %s\n", s.ButtonColor)
			cmd.Printf("  cases    open %s  completed %s\n", s.CaseStatusColors.Open, s.CaseStatusColors.Completed)
			cmd.Printf("  tasks    in-progress %s  delayed %s  completed %s\n",
				s.TaskStatusColors.InProgress, s.TaskStatusColors.Delayed, s.TaskStatusColors.Completed)
			cmd.Printf("  view     %s\n", state.StatusView)
			return nil
		},
	}
}

func themeSetCmd() *cobra.Command {
	setters := map[string]func(primary.ThemeService, context.Context, string) (*primary.SaveResult, error){
		"header": primary.ThemeService.SetHeaderColor,
		"avatar": primary.ThemeService.SetAvatarColor,
		"text":   primary.ThemeService.SetTextColor,
		"main":   primary.ThemeService.SetMainColor,
		"button": primary.ThemeService.SetButtonColor,
	}
	return &cobra.Command{
		Use:   "set [header|avatar|text|main|button] [value]",
		Short: "Set one color",
		Long: `Set one color. Colors are hex values; "text" takes a text class such as
text-white or text-gray-800. Setting the header color also picks a readable
text class for it.`,
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"header", "avatar", "text", "main", "button"},
		RunE: func(cmd *cobra.Command, args []string) error {
			set, ok := setters[args[0]]
			if !ok {
				return fmt.Errorf("unknown color %q\nHint: use header, avatar, text, main or button", args[0])
			}
			ctx, err := actorContext()
			if err != nil {
				return err
			}
			res, err := set(wire.ThemeService(), ctx, args[1])
			if err != nil {
				return err
			}
			reportSave(cmd, res)
			return nil
		},
	}
}

func themeStatusColorCmd(use string, statuses ...string) *cobra.Command {
	return &cobra.Command{
		Use:       use + " [status] [hex]",
		Short:     "Set a status badge color",
		Args:      cobra.ExactArgs(2),
		ValidArgs: statuses,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := actorContext()
			if err != nil {
				return err
			}
			svc := wire.ThemeService()
			var res *primary.SaveResult
			if use == "case-color" {
				res, err = svc.SetCaseStatusColor(ctx, args[0], args[1])
			} else {
				res, err = svc.SetTaskStatusColor(ctx, args[0], args[1])
			}
			if err != nil {
				return err
			}
			reportSave(cmd, res)
			return nil
		},
	}
}

func themeViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "view [cases|tasks]",
		Short:     "Choose which statuses the dashboard shows",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{theme.ViewCases, theme.ViewTasks},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := actorContext()
			if err != nil {
				return err
			}
			if err := wire.ThemeService().SetStatusView(ctx, args[0]); err != nil {
				return err
			}
			cmd.Printf("✓ Status view set to %s\n", args[0])
			return nil
		},
	}
}

func themeCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Compare local and profile colors, repairing the local copy",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := actorContext()
			if err != nil {
				return err
			}
			report, err := wire.ThemeService().CheckConsistency(ctx)
			if err != nil {
				return err
			}
			if report.Consistent {
				cmd.Println(good("✓ Local colors match the profile"))
				return nil
			}
			cmd.Println(warn("⚠ Local colors differed from the profile and were replaced"))
			return nil
		},
	}
}

func themeClearCacheCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear-cache",
		Short: "Remove the locally stored colors",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := actorContext()
			if err != nil {
				return err
			}
			if err := wire.ThemeService().ClearCache(ctx); err != nil {
				return err
			}
			cmd.Println("✓ Local theme cache cleared")
			return nil
		},
	}
}

func themeResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Write the default palette to the local store",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := actorContext()
			if err != nil {
				return err
			}
			if err := wire.ThemeService().ResetToGlobalDefaults(ctx); err != nil {
				return err
			}
			cmd.Println("✓ Local colors reset to defaults")
			return nil
		},
	}
}

func themeDeriveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "derive [hex]",
		Short: "Show the values derived from a color",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := wire.ThemeService().Derive(args[0])
			if err != nil {
				return err
			}
			cmd.Printf("hex:        %s\n", d.Hex)
			cmd.Printf("hsl:        %s\n", d.HSL)
			cmd.Printf("light:      %t\n", d.IsLight)
			cmd.Printf("text:       %s\n", d.TextColor)
			cmd.Printf("text class: %s\n", d.HeaderTextClass)
			return nil
		},
	}
}

func reportSave(cmd *cobra.Command, res *primary.SaveResult) {
	if res.Synced {
		cmd.Println("✓ Saved locally and to your profile")
		return
	}
	cmd.Println(warn("✓ Saved locally only"))
	if res.Warning != "" {
		cmd.Println(dim("  " + res.Warning))
	}
}
