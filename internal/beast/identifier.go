package beast

import (
	"fmt"

	"github.com/google/uuid"
)

// NewID generates a fragment identifier of the form "<prefix>.<token>"
// where the token is the first segment of a random UUID. Used to default
// distribution identifiers when the caller does not pin one; callers that
// need byte-stable output (golden tests, reproducible documents) should
// set identifiers explicitly.
func NewID(prefix string) string {
	return fmt.Sprintf("%s.%.8s", prefix, uuid.NewString())
}
