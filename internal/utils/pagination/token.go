package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano

// ClosureCursor is the position after the last closure of a history page.
// History is ordered by closure date, then creation time, then id, all descending.
type ClosureCursor struct {
	ClosureDate time.Time
	CreatedAt   time.Time
	ClosureID   string
}

// EncodeClosureCursor renders a cursor as an opaque URL-safe token.
func EncodeClosureCursor(c ClosureCursor) string {
	tokenStr := strings.Join([]string{
		c.ClosureDate.Format(timeFormat),
		c.CreatedAt.Format(timeFormat),
		c.ClosureID,
	}, "|")
	return base64.RawURLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeClosureCursor parses a token produced by EncodeClosureCursor.
func DecodeClosureCursor(token string) (ClosureCursor, error) {
	decodedBytes, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return ClosureCursor{}, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.Split(string(decodedBytes), "|")
	if len(parts) != 3 || parts[2] == "" {
		return ClosureCursor{}, fmt.Errorf("invalid pagination token format (split)")
	}

	closureDate, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return ClosureCursor{}, fmt.Errorf("invalid pagination token format (closure date parse): %w", err)
	}
	createdAt, err := time.Parse(timeFormat, parts[1])
	if err != nil {
		return ClosureCursor{}, fmt.Errorf("invalid pagination token format (created_at parse): %w", err)
	}

	return ClosureCursor{ClosureDate: closureDate, CreatedAt: createdAt, ClosureID: parts[2]}, nil
}
