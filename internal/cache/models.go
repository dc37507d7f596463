package cache

import "time"

// Record is the normalized shape of one repository, the only shape the rest
// of the app ever sees. Optional fields from the API are zero values here;
// Topics is never nil.
type Record struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	URL            string    `json:"url"`
	Description    string    `json:"description,omitempty"`
	Language       string    `json:"language,omitempty"`
	Stars          int       `json:"stars"`
	Forks          int       `json:"forks"`
	UpdatedAt      time.Time `json:"updated_at"`
	Homepage       string    `json:"homepage,omitempty"`
	Topics         []string  `json:"topics"`
	OwnerLogin     string    `json:"owner_login"`
	OwnerAvatarURL string    `json:"owner_avatar_url"`
}

// Snapshot wraps one full fetch result with the time it was captured.
// It is written wholesale and never partially updated.
type Snapshot struct {
	FetchedAt time.Time `json:"-"`
	Repos     []Record  `json:"data"`
}

// Stale reports whether the snapshot has reached the TTL. The boundary is
// inclusive: a snapshot exactly TTL old is stale.
func (s *Snapshot) Stale(ttl time.Duration, now time.Time) bool {
	return now.Sub(s.FetchedAt) >= ttl
}
