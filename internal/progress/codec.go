package progress

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/linguaspark/internal/store"
)

// schemaVersion is the envelope version written by this build.
const schemaVersion = 1

// ErrUnsupportedVersion is returned for blobs written by a newer build.
var ErrUnsupportedVersion = store.ErrUnsupportedVersion

func encode(v any) (string, error) {
	return store.EncodeVersioned(schemaVersion, v)
}

func decode(raw string) (int, json.RawMessage, error) {
	return store.DecodeVersioned(raw, schemaVersion)
}

func decodeProfile(raw string) (Profile, error) {
	version, data, err := decode(raw)
	if err != nil {
		return Profile{}, err
	}

	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("decode profile: %w", err)
	}
	if version < 1 {
		p = migrateProfileV0(p)
	}
	if p.Recommendations == nil {
		p.Recommendations = []Recommendation{}
	}
	return p, nil
}

// migrateProfileV0 fills fields the browser build could leave unset.
func migrateProfileV0(p Profile) Profile {
	if p.Name == "" {
		p.Name = DefaultName
	}
	if p.Language == "" {
		p.Language = DefaultLanguage
	}
	if p.TotalLessons == 0 {
		p.TotalLessons = DefaultTotalLessons
	}
	// Older builds stored a full ISO timestamp.
	if len(p.LastLoginDate) > 10 && strings.Contains(p.LastLoginDate, "T") {
		p.LastLoginDate = p.LastLoginDate[:10]
	}
	return p
}

func decodeSkills(raw string) (Skills, error) {
	_, data, err := decode(raw)
	if err != nil {
		return nil, err
	}
	var s Skills
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode skills: %w", err)
	}
	return s, nil
}
