package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/example/praxis/internal/ports/primary"
	"github.com/example/praxis/internal/wire"
)

// TemplateCmd returns the template command
func TemplateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "template",
		Aliases: []string{"tpl"},
		Short:   "Manage petition templates",
		Long: `Manage petition templates and their PDF or DOCX files.

Templates are grouped by tema. The catalog lists the numbered petitions the
practice works with; uploading to a catalog item creates its template on
first use.`,
	}
	cmd.AddCommand(templateCreateCmd())
	cmd.AddCommand(templateListCmd())
	cmd.AddCommand(templateShowCmd())
	cmd.AddCommand(templateDeleteCmd())
	cmd.AddCommand(templateClearCmd())
	cmd.AddCommand(templateAttachCmd())
	cmd.AddCommand(templateDownloadCmd())
	cmd.AddCommand(templateRemoveFileCmd())
	cmd.AddCommand(templateCatalogCmd())
	cmd.AddCommand(templateTemasCmd())
	return cmd
}

func templateCreateCmd() *cobra.Command {
	var req primary.CreateTemplateRequest
	cmd := &cobra.Command{
		Use:   "create [titulo]",
		Short: "Create a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := actorContext()
			if err != nil {
				return err
			}
			req.Titulo = args[0]
			tpl, err := wire.TemplateService().CreateTemplate(ctx, req)
			if err != nil {
				return err
			}
			cmd.Printf("✓ Template %s created under %s\n", tpl.ID, tpl.Tema)
			return nil
		},
	}
	cmd.Flags().StringVar(&req.Tema, "tema", "", "tema (see praxis template temas)")
	cmd.Flags().StringVar(&req.Subtema, "subtema", "", "subtema")
	cmd.Flags().StringVar(&req.Ordem, "ordem", "", "ordering key (e.g. 2.1)")
	cmd.Flags().StringVarP(&req.Descricao, "descricao", "d", "", "description")
	_ = cmd.MarkFlagRequired("tema")
	return cmd
}

func templateListCmd() *cobra.Command {
	var filters primary.TemplateFilters
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := actorContext()
			if err != nil {
				return err
			}
			_, err = wire.TemplateAdapter(cmd.OutOrStdout()).List(ctx, filters)
			return err
		},
	}
	cmd.Flags().StringVarP(&filters.Search, "search", "s", "", "search titulo, subtema and descricao (accents ignored)")
	cmd.Flags().StringVar(&filters.Tema, "tema", "", `filter by tema ("Todos" for every tema)`)
	return cmd
}

func templateShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [template-id]",
		Short: "Show a template and its files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := actorContext()
			if err != nil {
				return err
			}
			_, err = wire.TemplateAdapter(cmd.OutOrStdout()).Show(ctx, args[0])
			return err
		},
	}
}

func templateDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [template-id]",
		Short: "Delete a template and its files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := actorContext()
			if err != nil {
				return err
			}
			if err := wire.TemplateService().DeleteTemplate(ctx, args[0]); err != nil {
				return err
			}
			cmd.Printf("✓ Template %s deleted\n", args[0])
			return nil
		},
	}
}

func templateClearCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every template",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("refusing to delete every template without --yes")
			}
			ctx, err := actorContext()
			if err != nil {
				return err
			}
			n, err := wire.TemplateService().ClearTemplates(ctx)
			if err != nil {
				return err
			}
			cmd.Printf("✓ %d template(s) deleted\n", n)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm deletion")
	return cmd
}

func templateAttachCmd() *cobra.Command {
	var templateID, catalogItem string
	cmd := &cobra.Command{
		Use:   "attach [file]",
		Short: "Attach a PDF or DOCX file",
		Long: `Attach a PDF or DOCX file to a template, or to the template of a
catalog item. Exactly one of --template or --item is required.`,
		Example: `  praxis template attach inicial.pdf --template TPL-001
  praxis template attach danos.docx --item 2.1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (templateID == "") == (catalogItem == "") {
				return errors.New("exactly one of --template or --item is required")
			}
			ctx, err := actorContext()
			if err != nil {
				return err
			}
			_, err = wire.TemplateAdapter(cmd.OutOrStdout()).Attach(ctx, templateID, catalogItem, args[0])
			return err
		},
	}
	cmd.Flags().StringVarP(&templateID, "template", "t", "", "template ID")
	cmd.Flags().StringVar(&catalogItem, "item", "", "catalog item ID")
	return cmd
}

func templateDownloadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "download [file-id] [dest]",
		Short: "Download a template file",
		Long:  "Download a template file. When dest is a directory the stored file name is kept.",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := actorContext()
			if err != nil {
				return err
			}
			dest := "."
			if len(args) == 2 {
				dest = args[1]
			}
			_, err = wire.TemplateAdapter(cmd.OutOrStdout()).Download(ctx, args[0], dest)
			return err
		},
	}
}

func templateRemoveFileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm-file [file-id]",
		Short: "Delete a template file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := actorContext()
			if err != nil {
				return err
			}
			if err := wire.TemplateService().DeleteFile(ctx, args[0]); err != nil {
				return err
			}
			cmd.Printf("✓ File %s deleted\n", args[0])
			return nil
		},
	}
}

func templateCatalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Show the petition catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			wire.TemplateAdapter(cmd.OutOrStdout()).Catalog()
			return nil
		},
	}
}

func templateTemasCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "temas",
		Short: "List the predefined temas",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, t := range wire.TemplateService().Temas() {
				cmd.Println(t)
			}
			return nil
		},
	}
}
