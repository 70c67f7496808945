package enrich

import (
	"context"
	"errors"
	"log/slog"

	"github.com/fcidata/staffscraper/internal/roster"
	"github.com/fcidata/staffscraper/internal/types"
)

// ResolvePerson tries each name variation of one person until a lookup
// resolves. All variations failing yields a name-only record, never an
// error: a person the API cannot find is a result, not a failure. Only an
// AuthError propagates, since it dooms every later request too.
func (c *Client) ResolvePerson(ctx context.Context, person types.StaffInput) (*types.LinkedInRecord, error) {
	for _, v := range roster.Variations(person) {
		rec, err := c.Resolve(ctx, v.First, v.Last)

		var authErr *AuthError
		switch {
		case errors.As(err, &authErr):
			return nil, err
		case errors.Is(err, ErrNoMatch):
			continue
		case err != nil:
			slog.WarnContext(ctx, "enrichment lookup failed",
				"person", person.FullName, "first", v.First, "last", v.Last, "err", err)
			continue
		}

		if rec.Found() {
			slog.InfoContext(ctx, "resolved enrichment profile",
				"person", person.FullName, "first", v.First, "last", v.Last)
			rec.FullName = person.FullName
			return rec, nil
		}
	}

	slog.InfoContext(ctx, "no enrichment profile for any name variation", "person", person.FullName)
	return &types.LinkedInRecord{FullName: person.FullName}, nil
}
