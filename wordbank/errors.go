package wordbank

import "fmt"

// InsufficientWordsError reports that the unused pool cannot satisfy a
// selection request. Callers surface the counts so the host can add words.
type InsufficientWordsError struct {
	Requested int
	Available int
}

func (e *InsufficientWordsError) Error() string {
	return fmt.Sprintf("requested %d words but only %d available", e.Requested, e.Available)
}

// InvalidCategoryError reports an unknown category filter.
type InvalidCategoryError struct {
	Category Category
}

func (e *InvalidCategoryError) Error() string {
	return fmt.Sprintf("invalid word category: %s", e.Category)
}
