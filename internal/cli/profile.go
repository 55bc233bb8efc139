package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/example/praxis/internal/core/profile"
	"github.com/example/praxis/internal/ports/primary"
	"github.com/example/praxis/internal/wire"
)

// ProfileCmd returns the profile command
func ProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage your profile and avatar",
	}
	cmd.AddCommand(profileShowCmd())
	cmd.AddCommand(profileUpdateCmd())
	cmd.AddCommand(profileAvatarCmd())
	cmd.AddCommand(profilePaletteCmd())
	cmd.AddCommand(iconCmd())
	return cmd
}

func profileShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show your profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := actorContext()
			if err != nil {
				return err
			}
			p, err := wire.ProfileService().GetProfile(ctx)
			if err != nil {
				return err
			}
			name := p.FullName
			if name == "" {
				name = dim("(no name)")
			}
			cmd.Printf("%s %s\n", bold(p.Initials), name)
			for _, row := range [][2]string{
				{"E-mail", p.Email},
				{"CPF", p.CPF},
				{"Phone", p.Phone},
				{"OAB", p.OABNumber},
				{"City", strings.Trim(p.City+"/"+p.State, "/")},
				{"Avatar", p.Avatar.Type},
			} {
				if row[1] != "" {
					cmd.Printf("  %-13s %s\n", row[0]+":", row[1])
				}
			}
			if p.SubscriptionActive {
				cmd.Printf("  %-13s %s\n", "Subscription:", good("active"))
			} else {
				cmd.Printf("  %-13s %s\n", "Subscription:", warn("inactive"))
			}
			if p.NextPayment != "" {
				cmd.Printf("  %-13s %s\n", "Next payment:", p.NextPayment)
			}
			return nil
		},
	}
}

func profileUpdateCmd() *cobra.Command {
	var req primary.UpdateProfileRequest
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update your profile",
		Long: `Update the editable profile fields. Fields whose flags are not given keep
their current value.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := actorContext()
			if err != nil {
				return err
			}
			current, err := wire.ProfileService().GetProfile(ctx)
			if err != nil {
				return err
			}
			merged := primary.UpdateProfileRequest{
				FullName:  current.FullName,
				CPF:       current.CPF,
				Phone:     current.Phone,
				OABNumber: current.OABNumber,
				State:     current.State,
				City:      current.City,
			}
			flags := cmd.Flags()
			if flags.Changed("full-name") {
				merged.FullName = req.FullName
			}
			if flags.Changed("cpf") {
				merged.CPF = req.CPF
			}
			if flags.Changed("phone") {
				merged.Phone = req.Phone
			}
			if flags.Changed("oab") {
				merged.OABNumber = req.OABNumber
			}
			if flags.Changed("state") {
				merged.State = req.State
			}
			if flags.Changed("city") {
				merged.City = req.City
			}
			p, err := wire.ProfileService().UpdateProfile(ctx, merged)
			if err != nil {
				return err
			}
			cmd.Printf("✓ Profile updated (%s)\n", p.Initials)
			return nil
		},
	}
	cmd.Flags().StringVar(&req.FullName, "full-name", "", "full name")
	cmd.Flags().StringVar(&req.CPF, "cpf", "", "CPF")
	cmd.Flags().StringVar(&req.Phone, "phone", "", "phone")
	cmd.Flags().StringVar(&req.OABNumber, "oab", "", "OAB registration")
	cmd.Flags().StringVar(&req.State, "state", "", "state (UF)")
	cmd.Flags().StringVar(&req.City, "city", "", "city")
	return cmd
}

func profileAvatarCmd() *cobra.Command {
	var data profile.AvatarData
	cmd := &cobra.Command{
		Use:   "avatar [initials|icon|predefined|uploaded]",
		Short: "Change your avatar",
		Example: `  praxis profile avatar initials --color "#F5A65B"
  praxis profile avatar icon --icon scale --color "#8B9474"
  praxis profile avatar uploaded --uploaded-id ICON-001`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(profile.AvatarInitials), string(profile.AvatarIcon), string(profile.AvatarPredefined), string(profile.AvatarUploaded)},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := actorContext()
			if err != nil {
				return err
			}
			p, err := wire.ProfileService().ChangeAvatar(ctx, primary.ChangeAvatarRequest{Type: args[0], Data: data})
			if err != nil {
				return err
			}
			cmd.Printf("✓ Avatar set to %s\n", p.Avatar.Type)
			return nil
		},
	}
	cmd.Flags().StringVar(&data.Color, "color", "", "background color (hex)")
	cmd.Flags().StringVar(&data.Character, "char", "", "character shown on the avatar")
	cmd.Flags().StringVar(&data.Icon, "icon", "", "icon name")
	cmd.Flags().StringVar(&data.URL, "url", "", "image URL")
	cmd.Flags().StringVar(&data.UploadedIconID, "uploaded-id", "", "uploaded icon ID")
	return cmd
}

func profilePaletteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "palette",
		Short: "List the avatar background colors",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, c := range wire.ProfileService().AvatarPalette() {
				cmd.Printf("%-10s %s\n", c.Value, c.Name)
			}
			return nil
		},
	}
}

func iconCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "icon",
		Short: "Manage uploaded avatar images",
	}
	cmd.AddCommand(iconUploadCmd())
	cmd.AddCommand(iconListCmd())
	cmd.AddCommand(iconDeleteCmd())
	return cmd
}

func iconUploadCmd() *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "upload [image]",
		Short: "Upload an image to use as avatar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := actorContext()
			if err != nil {
				return err
			}
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[0], err)
			}
			defer f.Close()

			if name == "" {
				name = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			}
			icon, err := wire.ProfileService().UploadIcon(ctx, primary.UploadIconRequest{
				Name:     name,
				FileName: filepath.Base(args[0]),
				Content:  f,
			})
			if err != nil {
				return err
			}
			cmd.Printf("✓ Icon %s uploaded (%s, %s)\n", icon.ID, icon.MimeType, humanize.IBytes(uint64(icon.Size)))
			return nil
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "display name (defaults to the file name)")
	return cmd
}

func iconListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List uploaded icons",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := actorContext()
			if err != nil {
				return err
			}
			icons, err := wire.ProfileService().ListIcons(ctx)
			if err != nil {
				return err
			}
			if len(icons) == 0 {
				cmd.Println(dim("No icons uploaded."))
				return nil
			}
			for _, icon := range icons {
				cmd.Printf("%s  %-20s %8s  %s\n", icon.ID, icon.Name, humanize.IBytes(uint64(icon.Size)), dim(icon.URL))
			}
			return nil
		},
	}
}

func iconDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [icon-id]",
		Short: "Delete an uploaded icon",
		Long:  "Delete an uploaded icon. An avatar using it falls back to initials.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := actorContext()
			if err != nil {
				return err
			}
			if err := wire.ProfileService().DeleteIcon(ctx, args[0]); err != nil {
				return err
			}
			cmd.Printf("✓ Icon %s deleted\n", args[0])
			return nil
		},
	}
}
