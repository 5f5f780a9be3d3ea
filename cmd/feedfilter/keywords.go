package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var keywordsCmd = &cobra.Command{
	Use:     "keywords",
	Aliases: []string{"kw"},
	Short:   "Manage blocked keywords",
}

var keywordsAddCmd = &cobra.Command{
	Use:   "add <keywords>",
	Short: "Add comma-separated keywords",
	Long: `Add one or more comma-separated keywords to the block list.

Keywords are trimmed and lowercased. Ones already on the list are skipped.`,
	Example: `  feedfilter keywords add "politics, crypto"`,
	Args:    cobra.MinimumNArgs(1),
	RunE:    runKeywordsAdd,
}

var keywordsRemoveCmd = &cobra.Command{
	Use:   "remove <keyword>",
	Short: "Remove a keyword",
	Args:  cobra.ExactArgs(1),
	RunE:  runKeywordsRemove,
}

var keywordsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all keywords",
	Long:  `Remove all keywords. The geo-popular and ads toggles are kept.`,
	RunE:  runKeywordsClear,
}

var keywordsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List blocked keywords",
	RunE:  runKeywordsList,
}

func init() {
	keywordsCmd.AddCommand(keywordsAddCmd, keywordsRemoveCmd, keywordsClearCmd, keywordsListCmd)
	rootCmd.AddCommand(keywordsCmd)
}

func runKeywordsAdd(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	out := cmd.OutOrStdout()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	added, err := a.Settings.AddKeywords(ctx, strings.Join(args, ","))
	if err != nil {
		return fmt.Errorf("add keywords: %w", err)
	}

	if len(added) == 0 {
		fmt.Fprintln(out, "No new keywords added")
		return nil
	}
	for _, kw := range added {
		fmt.Fprintf(out, "Added %q\n", kw)
	}
	return nil
}

func runKeywordsRemove(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	out := cmd.OutOrStdout()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.Settings.RemoveKeyword(ctx, args[0]); err != nil {
		return fmt.Errorf("remove keyword: %w", err)
	}

	fmt.Fprintf(out, "Removed %q\n", args[0])
	return nil
}

func runKeywordsClear(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	out := cmd.OutOrStdout()

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.Settings.ClearKeywords(ctx); err != nil {
		return fmt.Errorf("clear keywords: %w", err)
	}

	fmt.Fprintln(out, "All keywords removed")
	return nil
}

func runKeywordsList(cmd *cobra.Command, args []string) error {
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

	if len(current.Keywords) == 0 {
		fmt.Fprintln(out, "No keywords configured")
		return nil
	}
	for _, kw := range current.Keywords {
		fmt.Fprintln(out, kw)
	}
	return nil
}
