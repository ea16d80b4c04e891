package version

import (
	"os"

	"github.com/goccy/go-json"

	"github.com/JustinTDCT/CineCurator/internal/logging"
)

// Version is stamped at build time with -ldflags "-X .../version.Version=...".
var Version = "dev"

type Info struct {
	Version string `json:"version"`
}

// Load prefers a version.json next to the binary (written by the release
// pipeline) and falls back to the linked-in Version.
func Load() Info {
	return loadFrom("version.json")
}

func loadFrom(path string) Info {
	log := logging.Component("version")
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn().Err(err).Msg("could not read version.json")
		}
		return Info{Version: Version}
	}
	var info Info
	if err := json.Unmarshal(data, &info); err != nil || info.Version == "" {
		log.Warn().Err(err).Msg("could not parse version.json")
		return Info{Version: Version}
	}
	return info
}
