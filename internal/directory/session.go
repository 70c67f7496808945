package directory

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/chromedp/chromedp"
)

// DefaultUserAgent is the browser user agent for directory sessions.
const DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/125.0 Safari/537.36"

// sectionTimeout bounds waits on individual page elements.
const sectionTimeout = 5 * time.Second

// SessionOptions configures the headless browser session.
type SessionOptions struct {
	Headless bool
	// ProfileDir is a persistent user-data directory. It carries the
	// intranet SSO session across runs, replacing a stored-state file.
	ProfileDir string
	// ExecPath optionally points at a specific Chrome/Chromium binary.
	ExecPath string
	// SearchURL is the people-directory search page.
	SearchURL string
}

// Session owns one browser for the whole run. All per-person navigation
// happens in its context; Close releases the browser.
type Session struct {
	ctx     context.Context
	cancels []context.CancelFunc
	opts    SessionOptions
}

// NewSession launches the browser. The caller must Close the session.
func NewSession(ctx context.Context, opts SessionOptions) (*Session, error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(DefaultUserAgent),
	)
	if opts.ProfileDir != "" {
		allocOpts = append(allocOpts, chromedp.UserDataDir(opts.ProfileDir))
	}
	if opts.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(opts.ExecPath))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	s := &Session{
		ctx:     browserCtx,
		cancels: []context.CancelFunc{browserCancel, allocCancel},
		opts:    opts,
	}

	if err := chromedp.Run(browserCtx, chromedp.Navigate("about:blank")); err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}
	return s, nil
}

// Close shuts the browser down.
func (s *Session) Close() {
	for _, cancel := range s.cancels {
		cancel()
	}
}

// Login opens the directory search page and, if an intranet login form is
// presented, submits the given credentials. With a persistent profile dir
// the session usually survives across runs and the form never appears.
func (s *Session) Login(ctx context.Context, username, password string) error {
	runCtx, cancel := context.WithTimeout(s.ctx, 60*time.Second)
	defer cancel()

	if err := chromedp.Run(runCtx,
		chromedp.Navigate(s.opts.SearchURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(2*time.Second),
	); err != nil {
		return fmt.Errorf("failed to open search page: %w", err)
	}

	n, err := s.count(runCtx, `input[type='password']`)
	if err != nil {
		return err
	}
	if n == 0 {
		slog.DebugContext(ctx, "existing session still valid, skipping login")
		return nil
	}

	slog.InfoContext(ctx, "intranet login form detected, authenticating")
	if err := chromedp.Run(runCtx,
		chromedp.SetValue(`input[type='text'], input[type='email'], input[name='username']`, username, chromedp.ByQuery),
		chromedp.SetValue(`input[type='password']`, password, chromedp.ByQuery),
		chromedp.Click(`button[type='submit'], input[type='submit']`, chromedp.ByQuery),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Sleep(3*time.Second),
	); err != nil {
		return fmt.Errorf("failed to submit login form: %w", err)
	}

	n, err = s.count(runCtx, `input[type='password']`)
	if err != nil {
		return err
	}
	if n > 0 {
		return fmt.Errorf("intranet login failed: login form still present")
	}
	return nil
}

// count evaluates a querySelectorAll length in the page.
func (s *Session) count(ctx context.Context, selector string) (int, error) {
	var n int
	err := chromedp.Run(ctx,
		chromedp.Evaluate(fmt.Sprintf(`document.querySelectorAll(%q).length`, selector), &n),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to count %q: %w", selector, err)
	}
	return n, nil
}

// clickIfPresent clicks the first match of selector when one exists and is
// visible, reporting whether a click happened.
func (s *Session) clickIfPresent(ctx context.Context, selector string) (bool, error) {
	n, err := s.count(ctx, selector)
	if err != nil || n == 0 {
		return false, err
	}
	clickCtx, cancel := context.WithTimeout(ctx, sectionTimeout)
	defer cancel()
	if err := chromedp.Run(clickCtx,
		chromedp.Click(selector, chromedp.ByQuery, chromedp.NodeVisible),
	); err != nil {
		// present but not clickable counts as absent
		return false, nil
	}
	return true, nil
}

// outerHTML captures the rendered HTML of the whole page.
func (s *Session) outerHTML(ctx context.Context) (string, error) {
	var html string
	captureCtx, cancel := context.WithTimeout(ctx, sectionTimeout)
	defer cancel()
	if err := chromedp.Run(captureCtx,
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	); err != nil {
		return "", fmt.Errorf("failed to capture page html: %w", err)
	}
	return html, nil
}
