package settings

import "time"

const (
	KeyTMDBAPIKey       = "tmdb_api_key"
	KeyTMDBReadToken    = "tmdb_read_token"
	KeySearchDebounceMS = "search_debounce_ms"
	KeyRecentLimit      = "recent_limit"
	KeyRefreshSchedule  = "refresh_schedule"
	KeySearchCacheTTL   = "search_cache_ttl"
	KeyLogLevel         = "log_level"
)

// Known lists the keys the server reads on startup.
var Known = map[string]bool{
	KeyTMDBAPIKey:       true,
	KeyTMDBReadToken:    true,
	KeySearchDebounceMS: true,
	KeyRecentLimit:      true,
	KeyRefreshSchedule:  true,
	KeySearchCacheTTL:   true,
	KeyLogLevel:         true,
}

var secret = map[string]bool{
	KeyTMDBAPIKey:    true,
	KeyTMDBReadToken: true,
}

const masked = "********"

type Setting struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}
