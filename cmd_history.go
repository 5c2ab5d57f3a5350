package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/pocketbase/pocketbase/core"
	"github.com/spf13/cobra"

	"quotegen/handlers"
	"quotegen/services"
)

// newHistoryCmd manages finalized quotes from the command line.
func newHistoryCmd(app core.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Manage the history of finalized quotes",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List finalized quotes, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printHistory(cmd.OutOrStdout(), services.NewHistoryStore(app).List())
		},
	})

	var yes bool
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every finalized quote",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("refusing to clear the history without --yes")
			}
			if err := services.NewHistoryStore(app).Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
			return nil
		},
	}
	clearCmd.Flags().BoolVar(&yes, "yes", false, "confirm deletion")
	cmd.AddCommand(clearCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "export <file>",
		Short: `Write the history as a JSON array ("-" for stdout)`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := services.NewHistoryStore(app).ExportBlob()
			if err != nil {
				return err
			}
			if args[0] == "-" {
				_, err = cmd.OutOrStdout().Write(append(data, '\n'))
				return err
			}
			return os.WriteFile(args[0], data, 0o644)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "import <file>",
		Short: "Load quotes from a JSON array, replacing entries with the same number",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			n, err := services.NewHistoryStore(app).ImportBlob(data)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d quote(s).\n", n)
			return nil
		},
	})

	return cmd
}

func printHistory(w io.Writer, docs []services.QuoteDocument) error {
	if len(docs) == 0 {
		_, err := fmt.Fprintln(w, "No finalized quotes.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NUMBER\tDATE\tCLIENT\tPROJECT\tTOTAL TTC")
	for _, d := range docs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			d.QuoteNumber, d.Date, d.ClientName, d.ProjectName,
			services.FormatEUR(services.ComputeTotals(d).TotalTTC))
	}
	return tw.Flush()
}

// newQuoteCmd exports finalized quotes without starting the server.
func newQuoteCmd(app core.App, settings handlers.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Work with finalized quotes",
	}

	var format, outDir string
	exportCmd := &cobra.Command{
		Use:   "export <quoteNumber>",
		Short: "Export a finalized quote to xlsx, pdf or jpg",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := handlers.ParseExportFormat(format)
			if err != nil {
				return err
			}
			doc, err := services.NewHistoryStore(app).Get(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			body, err := handlers.RenderExport(ctx, doc, settings, f)
			if err != nil {
				return err
			}
			path := filepath.Join(outDir, handlers.ExportFilename(doc.ClientName, settings.Brand, f.Ext()))
			if err := os.WriteFile(path, body, 0o644); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	exportCmd.Flags().StringVar(&format, "format", "xlsx", "export format: xlsx, pdf or jpg")
	exportCmd.Flags().StringVar(&outDir, "out", ".", "output directory")
	cmd.AddCommand(exportCmd)

	return cmd
}
