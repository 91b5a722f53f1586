package lessons

import (
	"encoding/json"
	"fmt"

	"github.com/abhisek/linguaspark/internal/store"
)

// progressVersion is the envelope version written by this build.
const progressVersion = 1

// browserLesson is the lesson shape the browser build cached under
// KeyLessonProgress, with a completed flag per section.
type browserLesson struct {
	ID           string `json:"id"`
	ContentItems []struct {
		Type      SectionType `json:"type"`
		Completed bool        `json:"completed"`
	} `json:"contentItems"`
}

func encodeSectionProgress(all map[string][]SectionType) (string, error) {
	return store.EncodeVersioned(progressVersion, all)
}

func decodeSectionProgress(raw string) (map[string][]SectionType, error) {
	version, data, err := store.DecodeVersioned(raw, progressVersion)
	if err != nil {
		return nil, err
	}
	all := map[string][]SectionType{}
	if version >= 1 {
		if err := json.Unmarshal(data, &all); err != nil {
			return nil, fmt.Errorf("decode lesson progress: %w", err)
		}
		return all, nil
	}

	// Version 0 is either the bare map or the browser's lesson array.
	if err := json.Unmarshal(data, &all); err == nil {
		return all, nil
	}
	var lessons []browserLesson
	if err := json.Unmarshal(data, &lessons); err != nil {
		return nil, fmt.Errorf("decode legacy lesson progress: %w", err)
	}
	for _, l := range lessons {
		for _, item := range l.ContentItems {
			if item.Completed && item.Type.Valid() {
				all[l.ID] = append(all[l.ID], item.Type)
			}
		}
	}
	return all, nil
}
