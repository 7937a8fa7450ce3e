package data

import "sync"

// QuestProgress answers whether a quest is completed.
type QuestProgress interface {
	Completed(quest string) bool
}

// QuestFlags is an in-memory QuestProgress.
type QuestFlags struct {
	mu   sync.RWMutex
	done map[string]bool
}

// NewQuestFlags marks the given quests as completed.
func NewQuestFlags(completed ...string) *QuestFlags {
	f := &QuestFlags{done: make(map[string]bool, len(completed))}
	for _, q := range completed {
		f.done[q] = true
	}
	return f
}

func (f *QuestFlags) Completed(quest string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.done[quest]
}

// Complete marks quest as completed.
func (f *QuestFlags) Complete(quest string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.done[quest] = true
}

// QuestBossSelector offers a location's boss once its quest is done.
type QuestBossSelector struct {
	catalog  *Catalog
	progress QuestProgress
}

// NewQuestBossSelector creates a selector. A nil progress treats every
// quest as incomplete.
func NewQuestBossSelector(catalog *Catalog, progress QuestProgress) *QuestBossSelector {
	return &QuestBossSelector{catalog: catalog, progress: progress}
}

// SelectBossCandidate returns the boss alias for location, if one is
// unlocked.
func (s *QuestBossSelector) SelectBossCandidate(location string) (string, bool) {
	loc, err := s.catalog.Location(location)
	if err != nil || loc.Boss == "" {
		return "", false
	}
	if loc.BossQuest == "" {
		return loc.Boss, true
	}
	if s.progress == nil || !s.progress.Completed(loc.BossQuest) {
		return "", false
	}
	return loc.Boss, true
}
