package logic

import "findanything/internal/domain"

// PromptStore owns the ordered prompt collection and its selection state
type PromptStore interface {
	// AddIfAbsent appends text as a new selected prompt unless a prompt with
	// trimmed-equal text exists; the bool reports that it already existed
	AddIfAbsent(text string) (domain.Prompt, bool, error)
	Edit(id string, newText string) (domain.Prompt, error)
	Delete(id string) bool
	Toggle(id string) (domain.Prompt, error)

	GetPrompt(id string) (domain.Prompt, bool)
	GetAllPrompts() []domain.Prompt
	SelectedTextsInOrder() []string
	Len() int
}
