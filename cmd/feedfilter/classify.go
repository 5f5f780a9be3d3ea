package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/abdulachik/feedfilter/internal/filter"
	"github.com/spf13/cobra"
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify a single post against the current settings",
	Example: `  feedfilter classify --title "Election results" --subreddit r/WorldPolitics
  feedfilter classify --subreddit r/aww --source geo_explore_subreddits`,
	RunE: runClassify,
}

var (
	classifyTitle     string
	classifySubreddit string
	classifySource    string
)

func init() {
	classifyCmd.Flags().StringVarP(&classifyTitle, "title", "t", "", "Post title")
	classifyCmd.Flags().StringVarP(&classifySubreddit, "subreddit", "s", "", "Subreddit name, e.g. r/WorldPolitics")
	classifyCmd.Flags().StringVar(&classifySource, "source", "", "Recommendation source")
	rootCmd.AddCommand(classifyCmd)
}

func runClassify(cmd *cobra.Command, args []string) error {
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

	v := filter.Classify(filter.Post{
		Title:                classifyTitle,
		Subreddit:            classifySubreddit,
		RecommendationSource: classifySource,
	}, current)

	if !v.Hide {
		fmt.Fprintln(out, "show")
		return nil
	}

	fmt.Fprintf(out, "hide (%s)\n", v.Reason)
	if v.Reason == filter.ReasonKeyword {
		fmt.Fprintf(out, "Matched keywords: %s\n", strings.Join(v.MatchedKeywords, ", "))
		fmt.Fprintf(out, "Subreddit words: %s\n", strings.Join(v.SubredditWords, ", "))
	}
	return nil
}
