package github

import (
	"time"

	"github.com/Nabil3962/Suhail-Repository-Hub/internal/cache"
	"github.com/rs/zerolog"
)

// RawRepo mirrors the subset of the API response we care about. Extra fields
// in the payload are ignored; optional ones are pointers so absence is
// distinguishable from a zero value.
type RawRepo struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	HTMLURL     string    `json:"html_url"`
	Description *string   `json:"description"`
	Language    *string   `json:"language"`
	Stargazers  *int      `json:"stargazers_count"`
	Forks       *int      `json:"forks_count"`
	UpdatedAt   time.Time `json:"updated_at"`
	Homepage    *string   `json:"homepage"`
	Topics      []string  `json:"topics"`
	Owner       struct {
		Login     string `json:"login"`
		AvatarURL string `json:"avatar_url"`
	} `json:"owner"`
}

// Normalize reduces raw API records to cache.Record, filling defaults for
// anything the source omitted. A record without an ID cannot be keyed against
// later snapshots, so it is skipped rather than given a synthetic identity;
// the batch itself never fails.
func Normalize(raw []RawRepo, log zerolog.Logger) []cache.Record {
	records := make([]cache.Record, 0, len(raw))
	skipped := 0

	for _, r := range raw {
		if r.ID == 0 {
			skipped++
			continue
		}

		rec := cache.Record{
			ID:             r.ID,
			Name:           r.Name,
			URL:            r.HTMLURL,
			UpdatedAt:      r.UpdatedAt,
			Topics:         []string{},
			OwnerLogin:     r.Owner.Login,
			OwnerAvatarURL: r.Owner.AvatarURL,
		}
		if r.Description != nil {
			rec.Description = *r.Description
		}
		if r.Language != nil {
			rec.Language = *r.Language
		}
		if r.Stargazers != nil {
			rec.Stars = *r.Stargazers
		}
		if r.Forks != nil {
			rec.Forks = *r.Forks
		}
		if r.Homepage != nil {
			rec.Homepage = *r.Homepage
		}
		if len(r.Topics) > 0 {
			rec.Topics = append(rec.Topics, r.Topics...)
		}
		records = append(records, rec)
	}

	if skipped > 0 {
		log.Warn().Int("skipped", skipped).Msg("dropped records without an id")
	}
	return records
}
