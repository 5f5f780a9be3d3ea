package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var toggleCmd = &cobra.Command{
	Use:       "toggle <geo|ads> <on|off>",
	Short:     "Turn hiding of geo-popular or sponsored posts on or off",
	Example:   "  feedfilter toggle geo on\n  feedfilter toggle ads off",
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{"geo", "ads"},
	RunE:      runToggle,
}

func init() {
	rootCmd.AddCommand(toggleCmd)
}

func parseOnOff(s string) (bool, error) {
	switch s {
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	}
	return false, fmt.Errorf("invalid state %q: want on or off", s)
}

func runToggle(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	out := cmd.OutOrStdout()

	hide, err := parseOnOff(args[1])
	if err != nil {
		return err
	}

	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	switch args[0] {
	case "geo":
		err = a.Settings.SetHideGeoPopular(ctx, hide)
	case "ads":
		err = a.Settings.SetHideAds(ctx, hide)
	default:
		return fmt.Errorf("unknown toggle %q: want geo or ads", args[0])
	}
	if err != nil {
		return fmt.Errorf("update settings: %w", err)
	}

	fmt.Fprintf(out, "%s hiding %s\n", args[0], args[1])
	return nil
}
