package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idun-project/idun-defaults/internal/cache"
	"github.com/idun-project/idun-defaults/internal/config"
	"github.com/idun-project/idun-defaults/internal/proxy"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "idun",
	Short: "Drive an idun-cartridge Commodore from a Linux terminal",
	Long: `idun forwards commands from your Linux shell to the Commodore
attached through the idun cartridge, and provides cached fuzzy
file/directory lookup for quick navigation.

Device-facing commands go through the idunsh proxy binary; the fuzzy
lookups (zcd, ff) are served from TTL-bound snapshots built with an
external indexer and ranked with an external fuzzy filter.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// exitError carries a specific process exit status out of a RunE. An
// empty message means the failure was already reported.
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string { return e.msg }

// exitStatus propagates an external process's exit code unchanged.
func exitStatus(code int) error {
	if code == 0 {
		return nil
	}
	return &exitError{code: code}
}

func usageError(format string, a ...any) error {
	return &exitError{code: 1, msg: fmt.Sprintf(format, a...)}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			if exitErr.msg != "" {
				fmt.Fprintln(os.Stderr, exitErr.msg)
			}
			os.Exit(exitErr.code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/idun/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		configDir := filepath.Join(home, ".config", "idun")
		viper.AddConfigPath(configDir)
		viper.SetConfigType("toml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("idun")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	home, _ := os.UserHomeDir()

	// Set defaults
	viper.SetDefault("proxy.binary", "idunsh")
	viper.SetDefault("proxy.system_dir", "/usr/local/idun/sys")
	viper.SetDefault("cache.root", home)
	viper.SetDefault("cache.dir", filepath.Join(home, ".cache", "idun"))
	viper.SetDefault("cache.ttl", 300)
	viper.SetDefault("tools.indexer", "fd")
	viper.SetDefault("tools.filter", "fzf")
	viper.SetDefault("ultimate.ip", "")

	_ = viper.ReadInConfig()

	log.SetLevel(log.WarnLevel)
	if verbose {
		log.SetLevel(log.DebugLevel)
	}
}

// newProxy builds the shared transport, resolving the execution context
// once from the parent process's identity.
func newProxy() *proxy.Proxy {
	bin := config.GetProxyBinary()
	return proxy.New(bin, proxy.DetectContext(filepath.Base(bin)))
}

func newCache() *cache.Cache {
	return &cache.Cache{
		Root:    config.GetCacheRoot(),
		Dir:     config.GetCacheDir(),
		TTL:     config.GetCacheTTL(),
		Indexer: config.GetIndexer(),
		Filter:  config.GetFilter(),
	}
}

func newSession() *cache.Session {
	return &cache.Session{Dir: config.GetCacheDir()}
}
