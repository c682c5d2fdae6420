package pipeline

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// readLocalImage reads target's bytes from disk if it is a site-local path
// (leading "/"), returning (nil, nil) for remote targets so callers skip
// the invertibility check rather than fetching just to sample luminance.
// Image inversion only applies to locally-stored images.
func readLocalImage(rootDir, target string) ([]byte, error) {
	if !strings.HasPrefix(target, "/") {
		return nil, nil
	}
	full := filepath.Join(rootDir, target)
	content, err := os.ReadFile(full)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return content, nil
}

func secondsToDuration(s int) time.Duration {
	if s <= 0 {
		return 0
	}
	return time.Duration(s) * time.Second
}
