// Package enrich resolves staff names against a third-party LinkedIn
// enrichment API and maps the responses into LinkedInRecords.
package enrich

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	_ "embed"

	"github.com/go-resty/resty/v2"

	"github.com/fcidata/staffscraper/internal/schemas"
	"github.com/fcidata/staffscraper/internal/types"
)

//go:embed resolve_schema.json
var resolveSchema string

// DefaultBaseURL is the enrichment API endpoint.
const DefaultBaseURL = "https://enrich.example.com"

const resolvePath = "/api/linkedin/profile/resolve"

// ErrMissingAPIKey is returned when no API key is configured. The API
// rejects every request without one, so this is fatal before any lookup.
var ErrMissingAPIKey = errors.New("enrichment API key is not set")

// ErrNoMatch is returned when the API has no profile for a name variation.
var ErrNoMatch = errors.New("no profile match")

// AuthError marks an authentication rejection by the API. It aborts the
// whole run: every subsequent request would fail the same way.
type AuthError struct {
	StatusCode int
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("enrichment API rejected credentials (HTTP %d)", e.StatusCode)
}

// Options configures the enrichment client.
type Options struct {
	BaseURL string
	APIKey  string
	// CompanyDomain scopes person lookups to one employer's domain.
	CompanyDomain string
	// Employer is the employer name used to split off external experiences.
	Employer string
	Timeout  time.Duration
}

// Client is a connection to the enrichment API. One client serves a whole
// run.
type Client struct {
	http     *resty.Client
	domain   string
	employer string
}

// NewClient validates the options and builds a client. A missing API key is
// an immediate error.
func NewClient(opts Options) (*Client, error) {
	if opts.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetAuthToken(opts.APIKey).
		SetTimeout(timeout)

	return &Client{
		http:     httpClient,
		domain:   opts.CompanyDomain,
		employer: opts.Employer,
	}, nil
}

// resolveResponse mirrors the API's person-resolve payload.
type resolveResponse struct {
	URL                 *string         `json:"url"`
	NameSimilarityScore *float64        `json:"name_similarity_score"`
	Profile             *profilePayload `json:"profile"`
}

type profilePayload struct {
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
	Connections             int                  `json:"connections"`
	Experiences             []experiencePayload  `json:"experiences"`
	Education               []educationPayload   `json:"education"`
	Languages               []string             `json:"languages"`
	AccomplishmentProjects  []map[string]any     `json:"accomplishment_projects"`
	Certifications          []map[string]any     `json:"certifications"`
	Recommendations         []string             `json:"recommendations"`
	Activities              []map[string]any     `json:"activities"`
	SimilarlyNamedProfiles  []map[string]any     `json:"similarly_named_profiles"`
}

type experiencePayload struct {
	Company     string       `json:"company"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Location    string       `json:"location"`
	StartsAt    *datePayload `json:"starts_at"`
	EndsAt      *datePayload `json:"ends_at"`
}

type educationPayload struct {
	School       string       `json:"school"`
	DegreeName   string       `json:"degree_name"`
	FieldOfStudy string       `json:"field_of_study"`
	StartsAt     *datePayload `json:"starts_at"`
	EndsAt       *datePayload `json:"ends_at"`
}

type datePayload struct {
	Day   int `json:"day"`
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (d *datePayload) String() string {
	if d == nil || d.Year == 0 {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Resolve looks one (first, last) name up. It returns ErrNoMatch when the
// API has no candidate, an AuthError on credential rejection, and a mapped
// record (with raw payload attached) on success.
func (c *Client) Resolve(ctx context.Context, first, last string) (*types.LinkedInRecord, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"first_name":        first,
			"last_name":         last,
			"company_domain":    c.domain,
			"similarity_checks": "skip",
			"enrich_profile":    "enrich",
		}).
		Get(resolvePath)
	if err != nil {
		return nil, fmt.Errorf("resolve request for %s %s failed: %w", first, last, err)
	}

	switch resp.StatusCode() {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, &AuthError{StatusCode: resp.StatusCode()}
	case http.StatusNotFound:
		return nil, ErrNoMatch
	default:
		return nil, fmt.Errorf("resolve request for %s %s: unexpected HTTP %d", first, last, resp.StatusCode())
	}

	body := resp.Body()
	if err := schemas.ValidateJSONString(resolveSchema, string(body)); err != nil {
		return nil, fmt.Errorf("resolve response for %s %s is malformed: %w", first, last, err)
	}

	var payload resolveResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode resolve response: %w", err)
	}
	if payload.URL == nil && payload.NameSimilarityScore == nil {
		return nil, ErrNoMatch
	}

	rec := c.mapRecord(&payload)
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err == nil {
		rec.RawData = raw
	}
	return rec, nil
}

func (c *Client) mapRecord(payload *resolveResponse) *types.LinkedInRecord {
	rec := &types.LinkedInRecord{}
	if payload.URL != nil {
		rec.ProfileURL = *payload.URL
	}

	p := payload.Profile
	if p == nil {
		return rec
	}

	rec.PublicIdentifier = p.PublicIdentifier
	rec.ProfilePicURL = p.ProfilePicURL
	rec.BackgroundCoverImageURL = p.BackgroundCoverImageURL
	rec.FirstName = p.FirstName
	rec.LastName = p.LastName
	rec.Occupation = p.Occupation
	rec.Headline = p.Headline
	rec.Summary = p.Summary
	rec.Country = p.Country
	rec.CountryFullName = p.CountryFullName
	rec.City = p.City
	rec.State = p.State
	rec.Connections = p.Connections
	rec.Languages = p.Languages
	rec.AccomplishmentProjects = p.AccomplishmentProjects
	rec.Certifications = p.Certifications
	rec.Recommendations = p.Recommendations
	rec.Activities = p.Activities
	rec.SimilarlyNamedProfiles = p.SimilarlyNamedProfiles

	for _, exp := range p.Experiences {
		rec.Experiences = append(rec.Experiences, types.LinkedInExperience{
			Company:     exp.Company,
			Title:       exp.Title,
			Description: exp.Description,
			Location:    exp.Location,
			StartsAt:    exp.StartsAt.String(),
			EndsAt:      exp.EndsAt.String(),
		})
	}
	for _, edu := range p.Education {
		rec.Education = append(rec.Education, types.LinkedInEducation{
			School:       edu.School,
			DegreeName:   edu.DegreeName,
			FieldOfStudy: edu.FieldOfStudy,
			StartsAt:     edu.StartsAt.String(),
			EndsAt:       edu.EndsAt.String(),
		})
	}

	rec.DeriveEducationTitles()
	rec.DeriveExternalExperiences(c.employer)
	return rec
}
