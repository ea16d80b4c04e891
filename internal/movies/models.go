package movies

import (
	"errors"
	"time"

	"github.com/JustinTDCT/CineCurator/internal/models"
)

// ──────────────────── Category ────────────────────

type Category string

const (
	CategoryNewReleases Category = "new releases"
	CategoryTrending    Category = "trending"
	CategoryPopular     Category = "popular"
)

var Categories = []Category{CategoryNewReleases, CategoryTrending, CategoryPopular}

func (c Category) Valid() bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

// ──────────────────── Movie ────────────────────

type CastMember struct {
	Name        string  `json:"name"`
	Character   string  `json:"character"`
	ProfilePath *string `json:"profile_path"`
}

type Movie struct {
	ID              int64        `json:"id"`
	Title           string       `json:"title"`
	Slug            string       `json:"slug"`
	Overview        string       `json:"overview"`
	PosterPath      string       `json:"poster_path"`
	ReleaseDate     string       `json:"release_date"`
	StreamingLink   string       `json:"streaming_link"`
	AssetID         *string      `json:"asset_id"`
	ExternalID      int          `json:"external_id"`
	Rating          float64      `json:"rating"`
	DurationMinutes int          `json:"duration_minutes"`
	Cast            []CastMember `json:"cast"`
	Director        string       `json:"director"`
	Category        Category     `json:"category"`
	CustomTags      []string     `json:"custom_tags"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

// ──────────────────── Requests ────────────────────

// SaveRequest carries everything the save form submits.
type SaveRequest struct {
	Item          models.SearchCandidate `json:"item"`
	StreamingLink string                 `json:"streaming_link"`
	AssetID       string                 `json:"asset_id"`
	Category      Category               `json:"category" validate:"required"`
	Tags          []string               `json:"tags"`
	// ExternalID overrides Item.ID when set, as it is for edits of stored
	// records whose item carries the local id.
	ExternalID int `json:"external_id"`

	EditingID *int64 `json:"-"`
}

// Page is one page of the catalog listing. Pages are zero-based.
type Page struct {
	Items       []Movie `json:"items"`
	Total       int     `json:"total"`
	Page        int     `json:"page"`
	RowsPerPage int     `json:"rows_per_page"`
}

var RowsPerPageOptions = []int{5, 10, 25}

const DefaultRowsPerPage = 10

// ──────────────────── Errors ────────────────────

const (
	ValidationMessage   = "Please fill in all required fields including category"
	SaveFailedMessage   = "Failed to save movie. Please try again."
	DeleteFailedMessage = "Failed to delete movie. Please try again."
	ListFailedMessage   = "Failed to load movies. Please try again."
)

var (
	ErrNotFound       = errors.New("movie not found")
	ErrInvalidRequest = errors.New(ValidationMessage)
)
