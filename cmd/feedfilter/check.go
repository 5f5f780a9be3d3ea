package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/abdulachik/feedfilter/internal/feed"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Filter a saved feed snapshot once",
	Long: `Read a saved feed snapshot (.jsonl, .json listing or .html page), apply the
current settings and print which posts would be hidden and why.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

var (
	checkOutput string
	checkAll    bool
)

func init() {
	checkCmd.Flags().StringVarP(&checkOutput, "output", "o", "", "Write the visible posts to this file (.jsonl)")
	checkCmd.Flags().BoolVarP(&checkAll, "all", "a", false, "Also list posts that stay visible")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	out := cmd.OutOrStdout()

	if feed.SamePath(args[0], checkOutput) {
		return fmt.Errorf("%w: %s", feed.ErrOutputIsFeed, checkOutput)
	}

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	current, err := a.Settings.Load(ctx)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	posts, err := feed.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read feed: %w", err)
	}

	result := feed.Apply(posts, current)

	for i, p := range posts {
		v := result.Verdicts[i]
		if !v.Hide && !checkAll {
			continue
		}

		state := "show"
		if v.Hide {
			state = "hide"
		}
		fmt.Fprintf(out, "%-4s %-11s %-24s %s\n", state, v.Reason, p.Subreddit, p.Title)
		if len(v.MatchedKeywords) > 0 {
			fmt.Fprintf(out, "     matched: %s (subreddit words: %s)\n",
				strings.Join(v.MatchedKeywords, ", "), strings.Join(v.SubredditWords, ", "))
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Total: %d, hidden: %d (keyword: %d, geo: %d, ads: %d)\n",
		result.Total, result.Hidden, result.HiddenByKeyword, result.HiddenByGeo, result.HiddenAds)

	if checkOutput != "" {
		if err := feed.WriteFile(checkOutput, feed.Visible(posts)); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		fmt.Fprintf(out, "Visible posts written to %s\n", checkOutput)
	}

	return nil
}
