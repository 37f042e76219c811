package store

import (
	"encoding/json"
	"fmt"
	"os"
)

// BlockedPaper is one entry in the user-owned block-list. Blocking is
// index-level only: blocked papers stay in their year partition and are
// excluded at index build time.
type BlockedPaper struct {
	ID        string `json:"id"`
	Reason    string `json:"reason,omitempty"`
	BlockedAt string `json:"blockedAt,omitempty"`
	BlockedBy string `json:"blockedBy,omitempty"`
}

// BlockList is the persisted block-list format.
type BlockList struct {
	Blocked []BlockedPaper `json:"blocked"`
}

// IDs returns the blocked IDs as a set.
func (b *BlockList) IDs() map[string]bool {
	ids := make(map[string]bool, len(b.Blocked))
	for _, e := range b.Blocked {
		ids[e.ID] = true
	}
	return ids
}

// SavedPaper is one entry in the user-owned saved list.
type SavedPaper struct {
	ID      string `json:"id"`
	Note    string `json:"note,omitempty"`
	SavedAt string `json:"savedAt,omitempty"`
}

// SavedList is the persisted saved-list format.
type SavedList struct {
	Saved []SavedPaper `json:"saved"`
}

// LoadBlockList reads the block-list. The pipeline consumes it read-only;
// a missing file means nothing is blocked.
func LoadBlockList(path string) (BlockList, error) {
	var bl BlockList
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return bl, nil
		}
		return bl, fmt.Errorf("reading block-list: %w", err)
	}
	if err := json.Unmarshal(data, &bl); err != nil {
		return bl, fmt.Errorf("parsing block-list: %w", err)
	}
	return bl, nil
}

// LoadSavedList reads the saved list owned by the UI collaborator.
func LoadSavedList(path string) (SavedList, error) {
	var sl SavedList
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return sl, nil
		}
		return sl, fmt.Errorf("reading saved list: %w", err)
	}
	if err := json.Unmarshal(data, &sl); err != nil {
		return sl, fmt.Errorf("parsing saved list: %w", err)
	}
	return sl, nil
}
