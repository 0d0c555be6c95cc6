package dashboard

import "fmt"

// RepositoryError wraps a transport failure from the project repository.
// It is recoverable: the UI shows an error banner and may retry. An empty
// result is never a RepositoryError.
type RepositoryError struct {
	Resource string
	Err      error
}

func (e *RepositoryError) Error() string {
	return fmt.Sprintf("repository fetch failed for %s: %v", e.Resource, e.Err)
}

func (e *RepositoryError) Unwrap() error {
	return e.Err
}
