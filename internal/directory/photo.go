package directory

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/chromedp/chromedp"
)

const profileImageSelector = `.sf-profile-img img`

// SavePhoto screenshots the profile image into dir as <upi>.png. A missing
// image logs and returns nil so the record itself is unaffected.
func (s *Session) SavePhoto(ctx context.Context, dir, upi string) error {
	n, err := s.count(s.ctx, profileImageSelector)
	if err != nil {
		return err
	}
	if n == 0 {
		slog.InfoContext(ctx, "no profile image found", "upi", upi)
		return nil
	}

	shotCtx, cancel := context.WithTimeout(s.ctx, sectionTimeout)
	defer cancel()

	var buf []byte
	if err := chromedp.Run(shotCtx,
		chromedp.Screenshot(profileImageSelector, &buf, chromedp.ByQuery, chromedp.NodeVisible),
	); err != nil {
		return fmt.Errorf("failed to screenshot profile image for %s: %w", upi, err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create photo dir %s: %w", dir, err)
	}
	path := filepath.Join(dir, upi+".png")
	if err := os.WriteFile(path, buf, 0644); err != nil {
		return fmt.Errorf("failed to write photo %s: %w", path, err)
	}
	slog.InfoContext(ctx, "saved profile photo", "upi", upi, "path", path)
	return nil
}
