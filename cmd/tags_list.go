package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/parleychat/parley/internal/paths"
	"github.com/parleychat/parley/internal/presentation"
	"github.com/parleychat/parley/internal/settings"
	"github.com/parleychat/parley/internal/tags"
)

var tagsSearch string

var tagsListCmd = &cobra.Command{
	Use:   "tags:list",
	Short: "List tags as JSON",
	Long: `List the tags stored in the settings file as JSON.

Without --search, tags appear in collection order (or sorted, when
tags.sort_unfiltered is set). With --search, only tags whose name contains
the search string case-insensitively appear, sorted by name - the same
matching the in-console tag-list command uses.

Examples:
  # List all tags
  parley tags:list

  # Filter by substring
  parley tags:list --search oc
  parley tags:list -s oc

  # Parse specific fields with jq
  parley tags:list | jq '.[].name'
  parley tags:list | jq '.[] | {name, sort_order}'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dataDir := paths.ResolveDataDir(cfg.DataDir)

		store := settings.New(paths.SettingsPath(dataDir))
		if err := store.Load(); err != nil {
			return fmt.Errorf("loading settings: %w", err)
		}
		defer store.Close()

		registry := tags.New(store,
			tags.WithMatching(cfg.Tags.MatchingMode()),
			tags.WithSortedListing(cfg.Tags.SortUnfiltered))

		// ListNames applies the filter and ordering; resolve each name
		// back to its record for the full DTO.
		names := registry.ListNames(tagsSearch)
		selected := make([]*tags.Tag, 0, len(names))
		for _, name := range names {
			if tag, ok := registry.Lookup(name); ok {
				selected = append(selected, tag)
			}
		}

		formatter := presentation.NewFormatter(os.Stdout)
		return formatter.FormatTags(presentation.FromDomainTags(selected))
	},
}

func init() {
	tagsListCmd.Flags().StringVarP(&tagsSearch, "search", "s", "", "Filter tags by case-insensitive substring")
	rootCmd.AddCommand(tagsListCmd)
}
