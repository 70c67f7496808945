package directory

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/fcidata/staffscraper/internal/types"
)

// profileLoadExpr is the readiness predicate for a profile page: the profile
// name header plus the two widgets that render last.
const profileLoadExpr = `(() => {
	const name = document.querySelector('.sf-profile-name');
	if (!name || !name.textContent.includes(%q)) return false;
	const txt = document.body.textContent;
	return txt.includes('Profile Completion') && txt.includes('Profile Views');
})()`

// expandSeeAllExpr clicks every visible "See All" control on the page.
const expandSeeAllExpr = `(() => {
	let clicked = 0;
	for (const a of document.querySelectorAll('a')) {
		if (a.textContent.includes('See All') && a.offsetParent !== null) {
			a.click();
			clicked++;
		}
	}
	return clicked;
})()`

// tabSection describes one tabbed profile section: the tab control, the
// section-scoped "See All" link, and the selector whose presence marks the
// section as rendered.
type tabSection struct {
	name        string
	tabSelector string
	seeAll      string
	content     string
}

var tabSections = []tabSection{
	{
		name:        "pre_bank_experience",
		tabSelector: `span[data-customlink='tb:prebankexperience']`,
		seeAll:      `a[data-customlink='nl:prebankviewall']`,
		content:     `app-pre-bank-experience`,
	},
	{
		name:        "formal_education",
		tabSelector: `span[data-customlink='tb:formaleducation']`,
		seeAll:      `a[data-customlink='nl:formaleducationviewall']`,
		content:     `app-formal-education`,
	},
	{
		name:        "documents_and_reports",
		tabSelector: `span[data-customlink='tb:documentreports']`,
		seeAll:      `a[data-customlink='nl:documentsviewall']`,
		content:     `app-documents-reports`,
	},
}

// Extract scrapes a fully loaded profile page into a ProfileRecord. A
// missing section yields empty fields for that section only; a page that
// never reaches its loaded state is a NavigationError.
func (s *Session) Extract(ctx context.Context, name string, unitMarkers []string) (*types.ProfileRecord, error) {
	if err := s.waitForProfileLoad(name); err != nil {
		return nil, err
	}

	var clicked int
	if err := chromedp.Run(s.ctx, chromedp.Evaluate(expandSeeAllExpr, &clicked)); err != nil {
		return nil, &NavigationError{Name: name, Message: "failed to expand sections", Cause: err}
	}
	slog.DebugContext(ctx, "expanded collapsed sections", "name", name, "clicked", clicked)

	var profileURL string
	if err := chromedp.Run(s.ctx, chromedp.Location(&profileURL)); err != nil {
		return nil, &NavigationError{Name: name, Message: "failed to read profile url", Cause: err}
	}

	html, err := s.outerHTML(s.ctx)
	if err != nil {
		return nil, &NavigationError{Name: name, Message: "failed to capture profile page", Cause: err}
	}

	rec := &types.ProfileRecord{Name: name, URL: profileURL, UPI: UPIFromURL(profileURL)}

	info, err := ParseBasicInfo(html)
	if err != nil {
		return nil, err
	}
	rec.OfficialUnitName = info.OfficialUnitName
	rec.CurrentUnitName = info.CurrentUnitName
	rec.UnitCode = info.UnitCode
	rec.WorkAndDutyLocation = info.WorkAndDutyLocation
	rec.RoomNumber = info.RoomNumber

	positions, err := ParseBankExperience(html)
	if err != nil {
		return nil, err
	}
	tenure := ComputeTenure(positions, unitMarkers, time.Now())
	rec.YearsInCurrentPosition = tenure.YearsInCurrentPosition
	rec.YearsInUnit = tenure.YearsInUnit
	rec.YearsInBank = tenure.YearsInBank
	rec.LastPosition = tenure.LastPosition
	rec.AllPositions = tenure.AllPositions

	if rec.AreasOfExpertise, err = ParseExpertise(html); err != nil {
		return nil, err
	}
	if rec.Skills, err = ParseSkills(html); err != nil {
		return nil, err
	}
	if rec.Languages, err = ParseLanguages(html); err != nil {
		return nil, err
	}
	if rec.ListOfAwards, rec.TotalNumberOfAwards, err = ParseAwards(html); err != nil {
		return nil, err
	}

	for _, section := range tabSections {
		sectionHTML, err := s.openTabSection(ctx, name, section)
		if err != nil {
			slog.WarnContext(ctx, "skipping profile section", "name", name, "section", section.name, "err", err)
			continue
		}
		if sectionHTML == "" {
			continue
		}
		switch section.name {
		case "pre_bank_experience":
			rec.PreBankExperience, err = ParsePreBankExperience(sectionHTML)
		case "formal_education":
			rec.FormalEducation, err = ParseFormalEducation(sectionHTML)
		case "documents_and_reports":
			rec.DocumentsAndReports, err = ParseDocuments(sectionHTML)
			rec.DocumentIDs = DocumentIDs(rec.DocumentsAndReports)
		}
		if err != nil {
			slog.WarnContext(ctx, "failed to parse profile section", "name", name, "section", section.name, "err", err)
		}
	}

	return rec, nil
}

func (s *Session) waitForProfileLoad(name string) error {
	waitCtx, cancel := context.WithTimeout(s.ctx, sectionTimeout)
	defer cancel()

	var loaded bool
	err := chromedp.Run(waitCtx,
		chromedp.Poll(fmt.Sprintf(profileLoadExpr, name), &loaded,
			chromedp.WithPollingInterval(200*time.Millisecond)),
	)
	if err != nil || !loaded {
		return &NavigationError{Name: name, Message: "profile page did not finish loading", Cause: err}
	}
	return nil
}

// openTabSection clicks a section tab, expands its "See All" control, and
// returns the rendered page HTML. An absent tab returns "" with no error.
func (s *Session) openTabSection(ctx context.Context, name string, section tabSection) (string, error) {
	clicked, err := s.clickIfPresent(s.ctx, section.tabSelector)
	if err != nil {
		return "", err
	}
	if !clicked {
		slog.DebugContext(ctx, "profile tab not present", "name", name, "section", section.name)
		return "", nil
	}

	waitCtx, cancel := context.WithTimeout(s.ctx, sectionTimeout)
	var ready bool
	_ = chromedp.Run(waitCtx,
		chromedp.Poll(fmt.Sprintf(`document.querySelector(%q) !== null`, section.content), &ready,
			chromedp.WithPollingInterval(200*time.Millisecond)),
	)
	cancel()

	if err := s.expandSectionSeeAll(section.seeAll); err != nil {
		slog.DebugContext(ctx, "section see-all did not expand", "name", name, "section", section.name, "err", err)
	}

	return s.outerHTML(s.ctx)
}

// expandSectionSeeAll clicks a section's "See All" link and waits for it to
// flip to "See Less", which marks the full list as rendered. A link that is
// absent or already expanded is not an error.
func (s *Session) expandSectionSeeAll(selector string) error {
	var text string
	checkCtx, cancel := context.WithTimeout(s.ctx, sectionTimeout)
	defer cancel()
	err := chromedp.Run(checkCtx,
		chromedp.Evaluate(fmt.Sprintf(`document.querySelector(%q)?.textContent ?? ''`, selector), &text),
	)
	if err != nil {
		return err
	}
	if !strings.Contains(text, "See All") {
		return nil
	}

	clicked, err := s.clickIfPresent(s.ctx, selector)
	if err != nil || !clicked {
		return err
	}

	waitCtx, cancelWait := context.WithTimeout(s.ctx, sectionTimeout)
	defer cancelWait()
	var flipped bool
	return chromedp.Run(waitCtx,
		chromedp.Poll(
			fmt.Sprintf(`(document.querySelector(%q)?.textContent ?? '').includes('See Less')`, selector),
			&flipped,
			chromedp.WithPollingInterval(200*time.Millisecond),
		),
	)
}
