package config

import (
	"os"

	"github.com/tailscale/hujson"
)

// loadStandardized reads a HUJSON file from disk and returns its strict-JSON
// equivalent. A missing file is not an error: it returns "{}".
func loadStandardized(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []byte("{}"), nil
		}
		return nil, err
	}
	return hujson.Standardize(raw)
}
