package store

import (
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// isNotFound reports whether a Firestore error means the document does not
// exist, so callers can map it to the domain not-found error.
func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}
