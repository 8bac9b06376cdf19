package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"dconn.dev/folio/internal/theme"
	"dconn.dev/folio/internal/web"
)

var themeCmd = &cobra.Command{
	Use:       "theme [show|toggle]",
	Short:     "Show or switch the theme used by static builds",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"show", "toggle"},
	RunE: func(cmd *cobra.Command, args []string) error {
		action := "show"
		if len(args) == 1 {
			action = args[0]
		}

		store := theme.NewFileStore(cfg.PrefsFile)
		doc, err := web.Page(web.PageIndex)
		if err != nil {
			return err
		}
		c := theme.NewController(doc, store)
		current := c.Init()

		switch action {
		case "show":
			fmt.Println(current)
		case "toggle":
			next, err := c.Toggle()
			if err != nil {
				return fmt.Errorf("saving theme to %s: %w", store.Path(), err)
			}
			fmt.Printf("%s -> %s (%s)\n", current, next, store.Path())
		default:
			return fmt.Errorf("unknown action %q: must be show or toggle", action)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(themeCmd)
}
