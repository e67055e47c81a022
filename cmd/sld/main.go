// Command sld manages single-line diagram documents from the command line:
// validating the stored document, exporting pages, importing project files
// and running an AI design review.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"sld/analysis"
	"sld/config"
	"sld/diagram"
	"sld/editor"
	"sld/export"
	"sld/importer"
	"sld/logging"
	"sld/storage"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "sld",
		Short:         "Manage single-line diagram documents",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")

	root.AddCommand(
		newValidateCmd(&configPath),
		newExportCmd(&configPath),
		newImportCmd(&configPath),
		newAnalyzeCmd(&configPath),
	)
	return root
}

func setup(configPath string) (config.Config, *storage.Store, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, nil, err
	}
	log := logging.New(logging.Config{Level: cfg.LogLevel})
	return cfg, storage.NewStore(cfg.DocumentPath, log), nil
}

func newValidateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check every page of the document for structural problems",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := setup(*configPath)
			if err != nil {
				return err
			}
			doc, err := store.Load()
			if err != nil {
				return err
			}

			problems := 0
			for _, project := range doc.Projects {
				for _, page := range project.Pages {
					for _, verr := range diagram.Validate(page.Items) {
						problems++
						fmt.Fprintf(cmd.OutOrStdout(), "%s / %s: %s\n",
							project.Name, page.Name, verr)
					}
				}
			}
			if problems > 0 {
				return fmt.Errorf("%d problem(s) found", problems)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "document is valid")
			return nil
		},
	}
}

func newExportCmd(configPath *string) *cobra.Command {
	var format, pageID, outPath string
	var toClipboard bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a page as JSON or CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := setup(*configPath)
			if err != nil {
				return err
			}
			doc, err := store.Load()
			if err != nil {
				return err
			}

			page := doc.CurrentPage()
			if pageID != "" {
				page = findPage(doc, pageID)
				if page == nil {
					return fmt.Errorf("no page %q in document", pageID)
				}
			}
			if page == nil {
				return fmt.Errorf("document has no pages")
			}

			registry := export.NewRegistry()
			exporter, err := registry.Get(format)
			if err != nil {
				return fmt.Errorf("%w (available: %s)", err,
					strings.Join(registry.Formats(), ", "))
			}
			out, err := exporter.Export(page)
			if err != nil {
				return err
			}

			switch {
			case toClipboard:
				return export.ToClipboard(out)
			case outPath != "":
				return os.WriteFile(outPath, []byte(out), 0o644)
			default:
				fmt.Fprint(cmd.OutOrStdout(), out)
				return nil
			}
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "export format")
	cmd.Flags().StringVar(&pageID, "page", "", "page id (default: active page)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write to file instead of stdout")
	cmd.Flags().BoolVar(&toClipboard, "clipboard", false, "copy to system clipboard")
	return cmd
}

func newImportCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Merge projects from a file into the document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, store, err := setup(*configPath)
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			projects, err := importer.Import(data)
			if err != nil {
				return err
			}

			doc, err := store.Load()
			if err != nil {
				return err
			}
			log := logging.New(logging.Config{Level: cfg.LogLevel})
			ed := editor.New(doc, log)
			ed.AddProjects(projects)
			if err := store.Save(ed.Document()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d project(s) into %s\n",
				len(projects), store.Path())
			return nil
		},
	}
}

func newAnalyzeCmd(configPath *string) *cobra.Command {
	var pageID string

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Send a page to the configured model for design review",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, store, err := setup(*configPath)
			if err != nil {
				return err
			}
			doc, err := store.Load()
			if err != nil {
				return err
			}

			page := doc.CurrentPage()
			if pageID != "" {
				page = findPage(doc, pageID)
			}
			if page == nil {
				return fmt.Errorf("no page to analyze")
			}

			log := logging.New(logging.Config{Level: cfg.LogLevel})
			analyzer, err := analysis.New(analysis.Config{
				APIKey:  cfg.APIKey(),
				BaseURL: cfg.Analysis.BaseURL,
				Model:   cfg.Analysis.Model,
			}, log)
			if err != nil {
				return err
			}
			review, err := analyzer.Analyze(cmd.Context(), page)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), review)
			return nil
		},
	}
	cmd.Flags().StringVar(&pageID, "page", "", "page id (default: active page)")
	return cmd
}

func findPage(doc *diagram.Document, id string) *diagram.Page {
	for _, project := range doc.Projects {
		if page := project.FindPage(id); page != nil {
			return page
		}
	}
	return nil
}
