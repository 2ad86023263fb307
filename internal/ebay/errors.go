package ebay

import "fmt"

// AuthError indicates a failed credential refresh against the eBay identity
// endpoint. Message carries the upstream-provided error description.
type AuthError struct {
	Status  int
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("upstream auth failed (status %d): %s", e.Status, e.Message)
}

// SearchError indicates a non-success response from an eBay search endpoint.
type SearchError struct {
	Status  int
	Message string
}

func (e *SearchError) Error() string {
	return fmt.Sprintf("upstream search failed (status %d): %s", e.Status, e.Message)
}
