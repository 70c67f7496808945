// Package types provides type definitions for the records produced by the
// staff-scraper pipelines.
//
//nolint:revive // types is a standard Go package name pattern
package types

// StaffInput is one row of the roster CSV after name normalization.
type StaffInput struct {
	FullName string `json:"full_name"` // "First Last"
	First    string `json:"first"`
	Last     string `json:"last"`
}

// Experience is one pre-employer work history entry.
type Experience struct {
	Title        string `json:"title"`
	Organization string `json:"organization"`
	DateRange    string `json:"date_range"`
}

// Education is one formal education entry.
type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
}

// Document is one entry from the documents & reports section.
type Document struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	Title       string `json:"title"`
	Link        string `json:"link"`
	Description string `json:"description"`
}

// Language pairs a language name with a proficiency level.
type Language struct {
	Language string `json:"language"`
	Level    string `json:"level"`
}

// ProjectList holds the parallel columns of one project category tab.
type ProjectList struct {
	Titles   []string `json:"titles"`
	Codes    []string `json:"codes"`
	Statuses []string `json:"statuses"`
	Years    []string `json:"years"`
}

// Append adds one project row to the list.
func (p *ProjectList) Append(title, code, status, year string) {
	p.Titles = append(p.Titles, title)
	p.Codes = append(p.Codes, code)
	p.Statuses = append(p.Statuses, status)
	p.Years = append(p.Years, year)
}

// Len returns the number of project rows.
func (p *ProjectList) Len() int { return len(p.Titles) }

// Concat returns a new list with the rows of all arguments in order.
func Concat(lists ...ProjectList) ProjectList {
	var out ProjectList
	for _, l := range lists {
		out.Titles = append(out.Titles, l.Titles...)
		out.Codes = append(out.Codes, l.Codes...)
		out.Statuses = append(out.Statuses, l.Statuses...)
		out.Years = append(out.Years, l.Years...)
	}
	return out
}

// ProfileRecord is the full extraction result for one staff member.
// It is written once and never mutated afterwards.
type ProfileRecord struct {
	Name                   string       `json:"name"`
	OfficialUnitName       string       `json:"official_unit_name"`
	CurrentUnitName        string       `json:"current_unit_name"`
	UnitCode               string       `json:"unit_code"`
	WorkAndDutyLocation    string       `json:"work_and_duty_location"`
	RoomNumber             string       `json:"room_number"`
	URL                    string       `json:"url"`
	UPI                    string       `json:"upi"`
	YearsInCurrentPosition float64      `json:"years_in_current_position"`
	YearsInUnit            float64      `json:"years_in_unit"`
	YearsInBank            float64      `json:"years_in_bank"`
	LastPosition           string       `json:"last_position"`
	AllPositions           string       `json:"all_positions"`
	PreBankExperience      []Experience `json:"pre_bank_experience"`
	FormalEducation        []Education  `json:"formal_education"`
	DocumentsAndReports    []Document   `json:"documents_and_reports"`
	DocumentIDs            []string     `json:"document_ids"`
	AreasOfExpertise       []string     `json:"areas_of_expertise"`
	Skills                 []string     `json:"skills"`
	Languages              []Language   `json:"languages"`
	ListOfAwards           string       `json:"list_of_awards"`
	TotalNumberOfAwards    int          `json:"total_number_of_awards"`
	Lending                ProjectList  `json:"lending_projects"`
	NonLending             ProjectList  `json:"non_lending_projects"`
	IFC                    ProjectList  `json:"ifc_projects"`
	AllProjects            ProjectList  `json:"all_projects"`
}

// NotFoundRecord marks a roster name that could not be resolved to a profile.
type NotFoundRecord struct {
	Name string `json:"name"`
}
