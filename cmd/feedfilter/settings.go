package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show, export or import filter settings",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current settings",
	RunE:  runSettingsShow,
}

var settingsExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export settings as JSON",
	Long:  `Export settings as a JSON record keyed by "redditFilter". Writes to stdout when no file is given.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSettingsExport,
}

var settingsImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import settings from JSON",
	Long:  `Replace the stored settings with an exported record. Use "-" to read from stdin.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsImport,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd, settingsExportCmd, settingsImportCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	out := cmd.OutOrStdout()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	current, err := a.Settings.Load(ctx)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	fmt.Fprintln(out, "=== Filter Settings ===")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Database: %s\n", a.Config.DatabasePath)
	fmt.Fprintf(out, "Hide geo-popular: %t\n", current.HideGeoPopular)
	fmt.Fprintf(out, "Hide ads: %t\n", current.HideAds)
	fmt.Fprintf(out, "Keywords (%d):\n", len(current.Keywords))
	for _, kw := range current.Keywords {
		fmt.Fprintf(out, "  %s\n", kw)
	}
	return nil
}

func runSettingsExport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	var out io.Writer = cmd.OutOrStdout()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if len(args) == 1 && args[0] != "-" {
		f, err := os.Create(args[0])
		if err != nil {
			return fmt.Errorf("create export file: %w", err)
		}
		defer f.Close()
		out = f
	}

	if err := a.Settings.Export(ctx, out); err != nil {
		return fmt.Errorf("export settings: %w", err)
	}
	return nil
}

func runSettingsImport(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	out := cmd.OutOrStdout()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	in := cmd.InOrStdin()
	if args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open import file: %w", err)
		}
		defer f.Close()
		in = f
	}

	imported, err := a.Settings.Import(ctx, in)
	if err != nil {
		return fmt.Errorf("import settings: %w", err)
	}

	fmt.Fprintf(out, "Imported %d keywords (hide geo-popular: %t, hide ads: %t)\n",
		len(imported.Keywords), imported.HideGeoPopular, imported.HideAds)
	return nil
}
