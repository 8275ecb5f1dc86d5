package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/newsagg/internal/core/domain"
)

func TestPreferencesSetCmd(t *testing.T) {
	t.Run("saves supplied sets only", func(t *testing.T) {
		env := setupTestServices(t)

		out, err := execute(t, "preferences", "set", "--user", "alice",
			"--sources", "BBC News,The Guardian", "--categories", "world")
		require.NoError(t, err)
		assert.Contains(t, out, "Preferences saved for alice.")
		assert.Contains(t, out, "Authors:    (any)")

		pref, err := env.prefs.Get(context.Background(), "alice")
		require.NoError(t, err)
		assert.Equal(t, []string{"BBC News", "The Guardian"}, pref.PreferredSources)
		assert.Equal(t, []string{"world"}, pref.PreferredCategories)
		assert.Nil(t, pref.PreferredAuthors)
	})

	t.Run("empty value saves empty set", func(t *testing.T) {
		env := setupTestServices(t)

		_, err := execute(t, "preferences", "set", "--user", "bob", "--sources", "")
		require.NoError(t, err)

		pref, err := env.prefs.Get(context.Background(), "bob")
		require.NoError(t, err)
		assert.NotNil(t, pref.PreferredSources)
		assert.Empty(t, pref.PreferredSources)
	})

	t.Run("replaces previous row", func(t *testing.T) {
		env := setupTestServices(t)

		_, err := execute(t, "preferences", "set", "--user", "carol", "--sources", "BBC News")
		require.NoError(t, err)
		_, err = execute(t, "preferences", "set", "--user", "carol", "--authors", "Jane Doe")
		require.NoError(t, err)

		pref, err := env.prefs.Get(context.Background(), "carol")
		require.NoError(t, err)
		assert.Nil(t, pref.PreferredSources)
		assert.Equal(t, []string{"Jane Doe"}, pref.PreferredAuthors)
	})

	t.Run("requires user", func(t *testing.T) {
		setupTestServices(t)

		_, err := execute(t, "preferences", "set", "--sources", "BBC News")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "user")
	})
}

func TestPreferencesGetCmd(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		setupTestServices(t)

		_, err := execute(t, "preferences", "get", "--user", "nobody")
		assert.EqualError(t, err, "no preferences found for nobody")
	})

	t.Run("prints sets", func(t *testing.T) {
		env := setupTestServices(t)
		require.NoError(t, env.prefs.Save(context.Background(), &domain.UserPreference{
			UserID:           "alice",
			PreferredSources: []string{"BBC News"},
		}))

		out, err := execute(t, "prefs", "get", "-u", "alice")
		require.NoError(t, err)
		assert.Contains(t, out, "Sources:    BBC News")
		assert.Contains(t, out, "Categories: (any)")
	})
}

func TestFeedCmd(t *testing.T) {
	env := setupTestServices(t)
	env.seed(t,
		testArticle("A", "BBC News", "general", nil),
		testArticle("B", "The Guardian", "general", nil),
		testArticle("C", "BBC News", "sport", nil),
	)

	t.Run("no preferences", func(t *testing.T) {
		_, err := execute(t, "feed", "--user", "alice")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no preferences set for alice")
	})

	t.Run("filtered by source", func(t *testing.T) {
		require.NoError(t, env.prefs.Save(context.Background(), &domain.UserPreference{
			UserID:           "alice",
			PreferredSources: []string{"BBC News"},
		}))

		out, err := execute(t, "feed", "--user", "alice")
		require.NoError(t, err)
		assert.Contains(t, out, "(2 articles)")
		assert.NotContains(t, out, "The Guardian")
	})
}
