package directory

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"

	"github.com/fcidata/staffscraper/internal/types"
)

// ProjectCategory is one of the project experience tabs.
type ProjectCategory string

const (
	CategoryLending    ProjectCategory = "lending"
	CategoryNonLending ProjectCategory = "nonlending"
	CategoryIFC        ProjectCategory = "ifc"
)

// maxProjectPages bounds the pagination loop against a next-button that
// never disables.
const maxProjectPages = 100

const (
	projectRowSelector  = "accordion-group"
	nextPageSelector    = "li.pagination-next:not(.disabled) a"
	rowsPerPageSelector = "select[name='noOfRows']"
)

// selectRowsExpr bumps the page size to 50 when the control exists.
const selectRowsExpr = `(() => {
	const s = document.querySelector("select[name='noOfRows']");
	if (!s) return false;
	s.value = '50';
	s.dispatchEvent(new Event('change', { bubbles: true }));
	return true;
})()`

// openAllProjectsExpr clicks the "View All Projects" link when present.
const openAllProjectsExpr = `(() => {
	for (const a of document.querySelectorAll('a, span, button')) {
		if (a.textContent.trim().match(/^View (All )?Projects?$/i) && a.offsetParent !== null) {
			a.click();
			return true;
		}
	}
	return false;
})()`

// ScrapeProjects walks the three project category tabs and accumulates every
// page of each. A failure in one category logs and yields empty lists for
// that category only.
func (s *Session) ScrapeProjects(ctx context.Context, name string) (lending, nonLending, ifc types.ProjectList) {
	var opened bool
	if err := chromedp.Run(s.ctx, chromedp.Evaluate(openAllProjectsExpr, &opened)); err != nil {
		slog.WarnContext(ctx, "failed to open projects view", "name", name, "err", err)
		return
	}
	if opened {
		_ = chromedp.Run(s.ctx, chromedp.Sleep(2*time.Second))
	}

	for _, category := range []ProjectCategory{CategoryLending, CategoryNonLending, CategoryIFC} {
		list, err := s.collectCategory(ctx, category)
		if err != nil {
			slog.WarnContext(ctx, "failed to collect project category",
				"name", name, "category", string(category), "err", err)
			list = types.ProjectList{}
		}
		switch category {
		case CategoryLending:
			lending = list
		case CategoryNonLending:
			nonLending = list
		case CategoryIFC:
			ifc = list
		}
	}
	return
}

func (s *Session) collectCategory(ctx context.Context, category ProjectCategory) (types.ProjectList, error) {
	var list types.ProjectList

	tabSelector := fmt.Sprintf(`span[data-customlink='tb:%sprojects']`, category)
	clicked, err := s.clickIfPresent(s.ctx, tabSelector)
	if err != nil {
		return list, err
	}
	if !clicked {
		return list, nil
	}

	if ok := s.waitForRows(); !ok {
		// tab exists but holds no projects
		return list, nil
	}

	var resized bool
	if err := chromedp.Run(s.ctx, chromedp.Evaluate(selectRowsExpr, &resized)); err != nil {
		return list, fmt.Errorf("failed to set rows per page: %w", err)
	}
	if resized && !s.waitForRows() {
		return list, fmt.Errorf("project rows did not reload after resize")
	}

	return collectPages(sessionPager{s}, category)
}

// projectPager is the pagination surface collectPages drives. The session
// implements it over the live browser; tests feed fixture pages.
type projectPager interface {
	// WaitPage blocks until page number is the current one.
	WaitPage(page int) bool
	// PageHTML returns the rendered HTML of the current page.
	PageHTML() (string, error)
	// NextPage clicks the next-page control, reporting false when no
	// enabled control remains.
	NextPage() (bool, error)
}

// collectPages accumulates project rows across pages until no enabled
// next-page control remains, bounded by maxProjectPages.
func collectPages(pager projectPager, category ProjectCategory) (types.ProjectList, error) {
	var list types.ProjectList
	for page := 1; page <= maxProjectPages; page++ {
		if ok := pager.WaitPage(page); !ok {
			return list, fmt.Errorf("page %d never became current", page)
		}

		html, err := pager.PageHTML()
		if err != nil {
			return list, err
		}
		rows, err := ParseProjectRows(html, category)
		if err != nil {
			return list, err
		}
		for _, row := range rows {
			list.Append(row.Title, row.Code, row.Status, row.Year)
		}

		next, err := pager.NextPage()
		if err != nil {
			return list, err
		}
		if !next {
			break
		}
	}
	return list, nil
}

type sessionPager struct{ s *Session }

func (p sessionPager) WaitPage(page int) bool { return p.s.waitForPage(page) }

func (p sessionPager) PageHTML() (string, error) { return p.s.outerHTML(p.s.ctx) }

func (p sessionPager) NextPage() (bool, error) {
	next, err := p.s.count(p.s.ctx, nextPageSelector)
	if err != nil {
		return false, err
	}
	if next == 0 {
		return false, nil
	}
	if _, err := p.s.clickIfPresent(p.s.ctx, nextPageSelector); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Session) waitForRows() bool {
	waitCtx, cancel := context.WithTimeout(s.ctx, sectionTimeout)
	defer cancel()
	var ready bool
	err := chromedp.Run(waitCtx,
		chromedp.Poll(fmt.Sprintf(`document.querySelector(%q) !== null`, projectRowSelector), &ready,
			chromedp.WithPollingInterval(200*time.Millisecond)),
	)
	return err == nil && ready
}

func (s *Session) waitForPage(page int) bool {
	waitCtx, cancel := context.WithTimeout(s.ctx, sectionTimeout)
	defer cancel()
	var current bool
	err := chromedp.Run(waitCtx,
		chromedp.Poll(
			fmt.Sprintf(`(document.querySelector('li.current')?.textContent ?? '').includes(%q)`, fmt.Sprint(page)),
			&current,
			chromedp.WithPollingInterval(200*time.Millisecond),
		),
	)
	return err == nil && current
}

// ProjectRow is one parsed project accordion entry.
type ProjectRow struct {
	Title  string
	Code   string
	Status string
	Year   string
}

// ParseProjectRows reads the project accordion entries out of a rendered
// projects page. Status and fiscal year default to "N/A" when absent.
func ParseProjectRows(html string, category ProjectCategory) ([]ProjectRow, error) {
	doc, err := parseDoc(html)
	if err != nil {
		return nil, err
	}

	var rows []ProjectRow
	doc.Find(projectRowSelector).Each(func(_ int, s *goquery.Selection) {
		title := s.Find("a.sf-project-title").First()
		row := ProjectRow{
			Title:  text(title),
			Status: "N/A",
			Year:   "N/A",
		}
		if href, ok := title.Attr("href"); ok {
			row.Code = CodeFromHref(href, category)
		}
		s.Find("li.list-inline-item").Each(func(_ int, li *goquery.Selection) {
			value := text(li.Find("span.sf-dark").First())
			if value == "" {
				return
			}
			switch {
			case strings.Contains(li.Text(), "Status:"):
				row.Status = value
			case strings.Contains(li.Text(), "Fiscal Year:"):
				row.Year = value
			}
		})
		rows = append(rows, row)
	})
	return rows, nil
}

// CodeFromHref extracts the project code from a project link: a P-number for
// bank projects, a numeric id of at least five digits for IFC projects. The
// last matching path segment wins.
func CodeFromHref(href string, category ProjectCategory) string {
	parts := strings.Split(href, "/")
	for i := len(parts) - 1; i >= 0; i-- {
		part := parts[i]
		if category == CategoryIFC {
			if len(part) >= 5 && isDigits(part) {
				return part
			}
			continue
		}
		if len(part) > 1 && part[0] == 'P' && isDigits(part[1:]) {
			return part
		}
	}
	return ""
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
