package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/newsagg/internal/adapters/driven/config/file"
	"github.com/custodia-labs/newsagg/internal/core/ports/driven"
)

// openConfigStore opens the config file named by --config.
var openConfigStore = func(path string) (driven.ConfigStore, error) {
	store, err := file.NewConfigStore(path)
	if err != nil {
		return nil, err
	}
	return store, nil
}

var configCmd = &cobra.Command{
	Use:         "config",
	Short:       "Inspect and edit the configuration file",
	Annotations: map[string]string{skipBootstrap: "true"},
	Long: `Reads and writes ~/.newsagg/config.toml (or --config).
Keys use dot notation matching the file's tables, for example:

  storage                      sqlite or memory
  server.addr                  listen address for 'newsagg serve'
  schedule.interval            e.g. 30m; 0s disables scheduled ingestion
  providers.newsapi.api_key    NewsAPI key (env NEWS_API_KEY wins)
  providers.guardian.enabled   true or false`,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		store, err := openConfigStore(configPath)
		if err != nil {
			return err
		}
		cmd.Println(store.Path())
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print one config value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a config value",
	Long: `Sets a config value and saves the file. If the value is omitted and
stdin is a terminal, it is read without echo, which suits API keys.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runConfigSet,
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List values set in the config file",
	Args:  cobra.NoArgs,
	RunE:  runConfigList,
}

func init() {
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configListCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	store, err := openConfigStore(configPath)
	if err != nil {
		return err
	}
	if _, ok := store.Get(args[0]); !ok {
		return fmt.Errorf("key %q is not set", args[0])
	}
	cmd.Println(store.GetString(args[0]))
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	store, err := openConfigStore(configPath)
	if err != nil {
		return err
	}

	key := args[0]
	var raw string
	if len(args) == 2 {
		raw = args[1]
	} else {
		cmd.Printf("Value for %s: ", key)
		raw = readSecret()
		cmd.Println()
	}

	if err := store.Set(key, file.ParseValue(raw)); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	cmd.Printf("Set %s\n", key)
	return nil
}

func runConfigList(cmd *cobra.Command, _ []string) error {
	store, err := openConfigStore(configPath)
	if err != nil {
		return err
	}

	keys := store.Keys()
	if len(keys) == 0 {
		cmd.Printf("No values set in %s; defaults apply.\n", store.Path())
		return nil
	}
	for _, k := range keys {
		value := store.GetString(k)
		if isSecretKey(k) {
			value = maskAPIKey(value)
		}
		cmd.Printf("%s = %s\n", k, value)
	}
	return nil
}

func isSecretKey(key string) bool {
	return strings.HasSuffix(key, "api_key")
}

//nolint:errcheck // CLI helper, error ignored for UX
func readSecret() string {
	// Try to read without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		secret, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return strings.TrimSpace(string(secret))
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
