package logic

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"findanything/internal/domain"
	"findanything/internal/errs"
)

// MemoryPromptStore is an in-memory, insertion-ordered implementation of PromptStore
type MemoryPromptStore struct {
	mu      sync.RWMutex
	prompts []*domain.Prompt
	byID    map[string]*domain.Prompt
	newID   func() string
}

// NewMemoryPromptStore creates a new memory-based prompt store
func NewMemoryPromptStore() *MemoryPromptStore {
	return &MemoryPromptStore{
		byID:  make(map[string]*domain.Prompt),
		newID: uuid.NewString,
	}
}

func (s *MemoryPromptStore) AddIfAbsent(text string) (domain.Prompt, bool, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return domain.Prompt{}, false, errs.InvalidInput("store.add", "prompt text is empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.prompts {
		if strings.TrimSpace(p.Text) == trimmed {
			return *p, true, nil
		}
	}

	id := s.newID()
	for s.byID[id] != nil {
		id = s.newID()
	}
	p := &domain.Prompt{ID: id, Text: trimmed, Selected: true}
	s.prompts = append(s.prompts, p)
	s.byID[id] = p
	return *p, false, nil
}

func (s *MemoryPromptStore) Edit(id string, newText string) (domain.Prompt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.byID[id]
	if !ok {
		return domain.Prompt{}, errs.NotFound("store.edit", id)
	}
	trimmed := strings.TrimSpace(newText)
	if trimmed == "" {
		return domain.Prompt{}, errs.InvalidInput("store.edit", "prompt text is empty")
	}
	p.Text = trimmed
	return *p, nil
}

// Delete removes the prompt; an unknown id is not an error
func (s *MemoryPromptStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return false
	}
	delete(s.byID, id)
	for i, p := range s.prompts {
		if p.ID == id {
			s.prompts = append(s.prompts[:i:i], s.prompts[i+1:]...)
			break
		}
	}
	return true
}

func (s *MemoryPromptStore) Toggle(id string) (domain.Prompt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.byID[id]
	if !ok {
		return domain.Prompt{}, errs.NotFound("store.toggle", id)
	}
	p.Selected = !p.Selected
	return *p, nil
}

func (s *MemoryPromptStore) GetPrompt(id string) (domain.Prompt, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.byID[id]
	if !ok {
		return domain.Prompt{}, false
	}
	return *p, true
}

// GetAllPrompts returns a copy in insertion order
func (s *MemoryPromptStore) GetAllPrompts() []domain.Prompt {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Prompt, len(s.prompts))
	for i, p := range s.prompts {
		result[i] = *p
	}
	return result
}

func (s *MemoryPromptStore) SelectedTextsInOrder() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var texts []string
	for _, p := range s.prompts {
		if p.Selected {
			texts = append(texts, p.Text)
		}
	}
	return texts
}

func (s *MemoryPromptStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.prompts)
}
