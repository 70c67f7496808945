// Package directory drives the intranet people directory: locating a
// person's profile page, extracting its sections, paginating project lists,
// and saving the profile photo.
//
// Browser navigation lives in session.go/extract.go; everything that reads
// fields out of rendered HTML is a pure function in this file so it can be
// tested against fixture markup.
package directory

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/fcidata/staffscraper/internal/types"
)

// startDateLayout is the date format of bank-experience entries.
const startDateLayout = "Jan 2, 2006"

// BasicInfo holds the header fields of a profile page.
type BasicInfo struct {
	OfficialUnitName    string
	CurrentUnitName     string
	UnitCode            string
	WorkAndDutyLocation string
	RoomNumber          string
}

// BankPosition is one entry of the in-bank work history, most recent first.
type BankPosition struct {
	Start       time.Time
	StartRaw    string
	Designation string
	Unit        string
}

func parseDoc(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &ParseError{Section: "document", Cause: err}
	}
	return doc, nil
}

func text(s *goquery.Selection) string {
	return strings.TrimSpace(s.Text())
}

// ParseBasicInfo reads the profile header fields from rendered page HTML.
// Missing fields come back empty; the unit code defaults to "N/A" as on the
// site itself.
func ParseBasicInfo(html string) (BasicInfo, error) {
	doc, err := parseDoc(html)
	if err != nil {
		return BasicInfo{}, err
	}

	info := BasicInfo{
		OfficialUnitName: text(doc.Find("a[data-customlink='nl:officialunit'] span").First()),
		CurrentUnitName:  text(doc.Find("a[data-customlink='nl:currentunit'] span").First()),
		UnitCode:         "N/A",
	}

	if code := text(doc.Find("p.sf-profile-unit a[data-customlink='nl:unit']").First()); code != "" {
		info.UnitCode = code
	}

	// The location value is the sibling of the "Work Location" label,
	// skipping the timezone div that sits between them.
	doc.Find("div").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if !strings.Contains(s.Text(), "Work Location") || s.Children().Length() > 0 {
			return true
		}
		info.WorkAndDutyLocation = text(s.NextAll().Not(".sf-time-zone").First())
		return false
	})

	doc.Find(".sf-info-set").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if !strings.Contains(s.Find(".sf-info-title").Text(), "Room No") {
			return true
		}
		info.RoomNumber = strings.TrimSpace(strings.ReplaceAll(s.Text(), "Room No", ""))
		return false
	})

	return info, nil
}

// UPIFromURL derives the staff UPI from a profile URL: the last six
// characters of the final path segment.
func UPIFromURL(url string) string {
	segment := url
	if i := strings.LastIndex(url, "/"); i >= 0 {
		segment = url[i+1:]
	}
	if len(segment) > 6 {
		segment = segment[len(segment)-6:]
	}
	return segment
}

// ParseBankExperience reads the in-bank work history entries. Entries
// without a parseable start date are skipped.
func ParseBankExperience(html string) ([]BankPosition, error) {
	doc, err := parseDoc(html)
	if err != nil {
		return nil, err
	}

	var positions []BankPosition
	doc.Find(".sf-bank-exp-new-loop .sf-experience-details").Each(func(_ int, s *goquery.Selection) {
		raw := text(s.Find(".sf-experience-from").First())
		if raw == "" {
			return
		}
		start, err := time.Parse(startDateLayout, raw)
		if err != nil {
			return
		}
		positions = append(positions, BankPosition{
			Start:       start,
			StartRaw:    raw,
			Designation: text(s.Find(".sf-designation").First()),
			Unit:        text(s.Find(".sf-units").First()),
		})
	})
	return positions, nil
}

// ParsePreBankExperience reads the pre-bank experience tab. Entries missing
// any of the three fields are dropped.
func ParsePreBankExperience(html string) ([]types.Experience, error) {
	doc, err := parseDoc(html)
	if err != nil {
		return nil, err
	}

	var out []types.Experience
	doc.Find("app-pre-bank-experience ul.sf-vertical-list li.sf-details").Each(func(_ int, s *goquery.Selection) {
		exp := types.Experience{
			Title:        text(s.Find(".sf-title-txt").First()),
			Organization: text(s.Find("div").Not(".sf-title-txt").Not(".sf-content-txt").First()),
			DateRange:    text(s.Find(".sf-content-txt.mt-1").First()),
		}
		if exp.Title != "" && exp.Organization != "" && exp.DateRange != "" {
			out = append(out, exp)
		}
	})
	return out, nil
}

// ParseFormalEducation reads the formal education tab.
func ParseFormalEducation(html string) ([]types.Education, error) {
	doc, err := parseDoc(html)
	if err != nil {
		return nil, err
	}

	var out []types.Education
	doc.Find("app-formal-education ul.sf-vertical-list li.sf-details").Each(func(_ int, s *goquery.Selection) {
		edu := types.Education{
			Degree:      text(s.Find(".sf-title-txt").First()),
			Institution: text(s.Find(".sf-content-txt.sf-text-dark").First()),
			Year:        text(s.Find(".sf-content-txt.mt-1").First()),
		}
		if edu.Degree != "" && edu.Institution != "" && edu.Year != "" {
			out = append(out, edu)
		}
	})
	return out, nil
}

// ParseDocuments reads the documents & reports tab. The document id is the
// last segment of the title link.
func ParseDocuments(html string) ([]types.Document, error) {
	doc, err := parseDoc(html)
	if err != nil {
		return nil, err
	}

	var out []types.Document
	doc.Find("app-documents-reports ul.sf-vertical-list.sf-purple-bullet li.sf-details").Each(func(_ int, s *goquery.Selection) {
		entry := types.Document{
			ID:          "N/A",
			Date:        "N/A",
			Title:       "N/A",
			Link:        "N/A",
			Description: "N/A",
		}
		if v := text(s.Find(".sf-date").First()); v != "" {
			entry.Date = v
		}
		title := s.Find(".sf-title-txt a").First()
		if v := text(title); v != "" {
			entry.Title = v
		}
		if href, ok := title.Attr("href"); ok && href != "" {
			entry.Link = href
			if i := strings.LastIndex(href, "/"); i >= 0 {
				entry.ID = href[i+1:]
			}
		}
		if v := text(s.Find(".sf-doc-des").First()); v != "" {
			entry.Description = v
		}
		out = append(out, entry)
	})
	return out, nil
}

// DocumentIDs projects the id column out of a document list.
func DocumentIDs(docs []types.Document) []string {
	ids := make([]string, len(docs))
	for i, d := range docs {
		ids[i] = d.ID
	}
	return ids
}

// ParseExpertise reads the areas-of-expertise chips.
func ParseExpertise(html string) ([]string, error) {
	return parseChips(html, ".sf-areas-expertise-section .sf-area-title")
}

// ParseSkills reads the skills chips.
func ParseSkills(html string) ([]string, error) {
	return parseChips(html, ".sf-skills-section .sf-area-title")
}

func parseChips(html, selector string) ([]string, error) {
	doc, err := parseDoc(html)
	if err != nil {
		return nil, err
	}
	var out []string
	doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		if v := text(s); v != "" {
			out = append(out, v)
		}
	})
	return out, nil
}

// ParseLanguages reads the languages section; a missing level becomes "N/A".
func ParseLanguages(html string) ([]types.Language, error) {
	doc, err := parseDoc(html)
	if err != nil {
		return nil, err
	}

	var out []types.Language
	doc.Find(".sf-languages .sf-language-name").Each(func(_ int, s *goquery.Selection) {
		name := text(s.Find(".sf-text-secondary").First())
		if name == "" {
			return
		}
		level := text(s.Find(".sf-lang-item").First())
		if level == "" {
			level = "N/A"
		}
		out = append(out, types.Language{Language: name, Level: level})
	})
	return out, nil
}

// ParseAwards reads the awards list into a joined "name|dept|date" string
// and a count. Entries missing any field are dropped.
func ParseAwards(html string) (string, int, error) {
	doc, err := parseDoc(html)
	if err != nil {
		return "", 0, err
	}

	var awards []string
	doc.Find("div.sf-awards ul li").Each(func(_ int, s *goquery.Selection) {
		name := text(s.Find(".sf-bold").First())
		dept := text(s.Find(".sf-dept").First())
		date := text(s.Find(".sf-date").First())
		if name != "" && dept != "" && date != "" {
			awards = append(awards, name+"|"+dept+"|"+date)
		}
	})
	return strings.Join(awards, ", "), len(awards), nil
}
