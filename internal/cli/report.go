package cli

import (
	"errors"
	"fmt"

	"fabrica-backend/internal/report"
	"fabrica-backend/internal/share"

	"github.com/spf13/cobra"
)

func newReportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate the monthly report document",
		Long: `Generate the monthly summary document, archive it and optionally share it.
A failed share keeps the generated file and only prints a warning.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := periodFromFlags(cmd, a.store.Now())
			if err != nil {
				return err
			}
			format, _ := cmd.Flags().GetString("format")
			doShare, _ := cmd.Flags().GetBool("share")
			preview, _ := cmd.Flags().GetBool("preview")

			res, err := a.reports.Generate(cmd.Context(), p, format)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Reporte generado: %s\n", res.Path)

			if preview {
				style, _ := cmd.Flags().GetString("style")
				if style == "" {
					style = "dark"
				}
				if err := writeMarkdown(out, report.Markdown(res.Document, a.cfg.AppTitle), style); err != nil {
					return err
				}
			}

			if doShare {
				if err := a.reports.Share(cmd.Context(), res.Path); err != nil {
					if !errors.Is(err, share.ErrShareFailure) {
						return err
					}
					fmt.Fprintf(cmd.ErrOrStderr(), "No se pudo compartir el reporte: %v\n", err)
					return nil
				}
				fmt.Fprintln(out, "Reporte compartido")
			}
			return nil
		},
	}

	addPeriodFlags(cmd)
	f := cmd.Flags()
	f.String("format", "", "Document format: pdf, xlsx, md or html (default REPORT_FORMAT)")
	f.Bool("share", false, "Share the document after generating it")
	f.Bool("preview", false, "Print the report in the terminal")
	return cmd
}
