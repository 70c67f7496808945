package directory

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/chromedp/chromedp/kb"
)

const (
	searchInputSelector = `input[id='sf_sample__text_id']`
	firstResultSelector = `.sf-people-name`
)

// Locate searches the directory for name and clicks through to the profile
// page, returning its URL. ErrNotFound is returned when the search yields no
// result within the timeout or the first result is a different person.
func (s *Session) Locate(ctx context.Context, name string) (string, error) {
	navCtx, cancel := context.WithTimeout(s.ctx, 30*time.Second)
	defer cancel()

	if err := chromedp.Run(navCtx,
		chromedp.Navigate(s.opts.SearchURL),
		chromedp.WaitVisible(searchInputSelector, chromedp.ByQuery),
		chromedp.SetValue(searchInputSelector, name, chromedp.ByQuery),
		chromedp.SendKeys(searchInputSelector, kb.Enter, chromedp.ByQuery),
	); err != nil {
		return "", &NavigationError{Name: name, Message: "failed to submit directory search", Cause: err}
	}

	waitCtx, cancelWait := context.WithTimeout(navCtx, sectionTimeout)
	defer cancelWait()

	var resultText string
	err := chromedp.Run(waitCtx,
		chromedp.WaitVisible(firstResultSelector, chromedp.ByQuery),
		chromedp.Text(firstResultSelector, &resultText, chromedp.ByQuery),
	)
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "", ErrNotFound
	case err != nil:
		return "", &NavigationError{Name: name, Message: "failed to read search results", Cause: err}
	}

	if !strings.Contains(resultText, name) {
		return "", ErrNotFound
	}

	var profileURL string
	if err := chromedp.Run(navCtx,
		chromedp.Click(firstResultSelector, chromedp.ByQuery),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(time.Second),
		chromedp.Location(&profileURL),
	); err != nil {
		return "", &NavigationError{Name: name, Message: "failed to open profile page", Cause: err}
	}
	return profileURL, nil
}
