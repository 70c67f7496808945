package types

import "strings"

// LinkedInExperience is one position from an enrichment API profile.
type LinkedInExperience struct {
	Company     string `json:"company"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	StartsAt    string `json:"starts_at,omitempty"`
	EndsAt      string `json:"ends_at,omitempty"`
	Location    string `json:"location,omitempty"`
}

// LinkedInEducation is one education entry from an enrichment API profile.
type LinkedInEducation struct {
	School       string `json:"school"`
	DegreeName   string `json:"degree_name,omitempty"`
	FieldOfStudy string `json:"field_of_study,omitempty"`
	StartsAt     string `json:"starts_at,omitempty"`
	EndsAt       string `json:"ends_at,omitempty"`
}

// LinkedInRecord is the enrichment result for one person. A record with an
// empty ProfileURL means no variation of the name resolved.
type LinkedInRecord struct {
	FullName                string               `json:"full_name"`
	ProfileURL              string               `json:"linkedin_url"`
	PublicIdentifier        string               `json:"public_identifier"`
	ProfilePicURL           string               `json:"profile_pic_url"`
	BackgroundCoverImageURL string               `json:"background_cover_image_url"`
	FirstName               string               `json:"first_name"`
	LastName                string               `json:"last_name"`
	Occupation              string               `json:"occupation"`
	Headline                string               `json:"headline"`
	Summary                 string               `json:"summary"`
	Country                 string               `json:"country"`
	CountryFullName         string               `json:"country_full_name"`
	City                    string               `json:"city"`
	State                   string               `json:"state"`
	Experiences             []LinkedInExperience `json:"experiences"`
	Education               []LinkedInEducation  `json:"education"`
	Languages               []string             `json:"languages"`
	AccomplishmentProjects  []map[string]any     `json:"accomplishment_projects"`
	Certifications          []map[string]any     `json:"certifications"`
	Connections             int                  `json:"connections"`
	Recommendations         []string             `json:"recommendations"`
	Activities              []map[string]any     `json:"activities"`
	SimilarlyNamedProfiles  []map[string]any     `json:"similarly_named_profiles"`
	EducationTitles         []string             `json:"education_titles"`
	ExternalExperiences     []LinkedInExperience `json:"external_experiences"`
	RawData                 map[string]any       `json:"raw_data,omitempty"`
}

// Found reports whether the enrichment lookup resolved to a profile.
func (r *LinkedInRecord) Found() bool { return r.ProfileURL != "" }

// DeriveEducationTitles fills EducationTitles from the degree names of the
// education entries, skipping blanks.
func (r *LinkedInRecord) DeriveEducationTitles() {
	r.EducationTitles = r.EducationTitles[:0]
	for _, edu := range r.Education {
		if edu.DegreeName != "" {
			r.EducationTitles = append(r.EducationTitles, edu.DegreeName)
		}
	}
}

// DeriveExternalExperiences fills ExternalExperiences with positions whose
// company name does not contain employer (case-insensitive).
func (r *LinkedInRecord) DeriveExternalExperiences(employer string) {
	r.ExternalExperiences = r.ExternalExperiences[:0]
	needle := strings.ToLower(employer)
	for _, exp := range r.Experiences {
		if exp.Company == "" {
			continue
		}
		if needle != "" && strings.Contains(strings.ToLower(exp.Company), needle) {
			continue
		}
		r.ExternalExperiences = append(r.ExternalExperiences, exp)
	}
}
