package config

import (
	"os"
	"time"

	"github.com/spf13/viper"
)

// GetProxyBinary returns the name of the idun proxy program
func GetProxyBinary() string {
	return viper.GetString("proxy.binary")
}

// GetSystemDir returns the directory searched for device-side commands
func GetSystemDir() string {
	return viper.GetString("proxy.system_dir")
}

// GetCacheRoot returns the subtree the file cache indexes
func GetCacheRoot() string {
	return viper.GetString("cache.root")
}

// GetCacheDir returns the directory holding the cache snapshots
func GetCacheDir() string {
	return viper.GetString("cache.dir")
}

// GetCacheTTL returns the maximum snapshot age before regeneration
func GetCacheTTL() time.Duration {
	return time.Duration(viper.GetInt("cache.ttl")) * time.Second
}

// GetIndexer returns the external recursive file indexer binary
func GetIndexer() string {
	return viper.GetString("tools.indexer")
}

// GetFilter returns the external fuzzy-filter binary
func GetFilter() string {
	return viper.GetString("tools.filter")
}

// GetUltimateIP returns the C64 Ultimate address, falling back to the
// C64_ULTIMATE_IP variable the proxy binary itself honors. Empty means
// no Ultimate hardware is reachable.
func GetUltimateIP() string {
	if ip := viper.GetString("ultimate.ip"); ip != "" {
		return ip
	}
	return os.Getenv("C64_ULTIMATE_IP")
}
