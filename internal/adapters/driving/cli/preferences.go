package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/newsagg/internal/core/domain"
	"github.com/custodia-labs/newsagg/internal/core/ports/driving"
)

var (
	prefUser       string
	prefSources    []string
	prefCategories []string
	prefAuthors    []string
	prefJSON       bool
)

var preferencesCmd = &cobra.Command{
	Use:     "preferences",
	Aliases: []string{"prefs"},
	Short:   "Manage a user's feed preferences",
}

var preferencesSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Replace a user's preferred sources, categories and authors",
	Long: `Replaces all of the user's preferences. A flag that is not given
leaves that set unconstrained; pass --sources "" to save an empty set.

Example:
  newsagg preferences set --user alice --sources "BBC News,The Guardian" --categories world`,
	Args: cobra.NoArgs,
	RunE: runPreferencesSet,
}

var preferencesGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show a user's preferences",
	Args:  cobra.NoArgs,
	RunE:  runPreferencesGet,
}

func init() {
	for _, c := range []*cobra.Command{preferencesSetCmd, preferencesGetCmd} {
		c.Flags().StringVarP(&prefUser, "user", "u", "", "user ID (required)")
		_ = c.MarkFlagRequired("user")
		c.Flags().BoolVar(&prefJSON, "json", false, "output as JSON")
	}
	preferencesSetCmd.Flags().StringSliceVar(&prefSources, "sources", nil, "preferred sources")
	preferencesSetCmd.Flags().StringSliceVar(&prefCategories, "categories", nil, "preferred categories")
	preferencesSetCmd.Flags().StringSliceVar(&prefAuthors, "authors", nil, "preferred authors")

	preferencesCmd.AddCommand(preferencesSetCmd)
	preferencesCmd.AddCommand(preferencesGetCmd)
	rootCmd.AddCommand(preferencesCmd)
}

func runPreferencesSet(cmd *cobra.Command, _ []string) error {
	if preferenceService == nil {
		return errors.New("preference service not configured")
	}

	in := driving.PreferenceInput{
		Sources:    sliceFlag(cmd, "sources", prefSources),
		Categories: sliceFlag(cmd, "categories", prefCategories),
		Authors:    sliceFlag(cmd, "authors", prefAuthors),
	}

	pref, err := preferenceService.Save(cmd.Context(), prefUser, in)
	if err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}

	if prefJSON {
		return writeJSON(cmd, pref)
	}
	cmd.Printf("Preferences saved for %s.\n", pref.UserID)
	printPreferences(cmd, pref)
	return nil
}

func runPreferencesGet(cmd *cobra.Command, _ []string) error {
	if preferenceService == nil {
		return errors.New("preference service not configured")
	}

	pref, err := preferenceService.Get(cmd.Context(), prefUser)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("no preferences found for %s", prefUser)
		}
		return fmt.Errorf("failed to get preferences: %w", err)
	}

	if prefJSON {
		return writeJSON(cmd, pref)
	}
	printPreferences(cmd, pref)
	return nil
}

// sliceFlag returns nil for an unset flag and a non-nil slice otherwise,
// dropping blank entries.
func sliceFlag(cmd *cobra.Command, name string, values []string) []string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func printPreferences(cmd *cobra.Command, pref *domain.UserPreference) {
	cmd.Printf("  Sources:    %s\n", describeSet(pref.PreferredSources))
	cmd.Printf("  Categories: %s\n", describeSet(pref.PreferredCategories))
	cmd.Printf("  Authors:    %s\n", describeSet(pref.PreferredAuthors))
}

func describeSet(values []string) string {
	if len(values) == 0 {
		return "(any)"
	}
	return strings.Join(values, ", ")
}
