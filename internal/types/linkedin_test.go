package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinkedInRecord_Found(t *testing.T) {
	r := &LinkedInRecord{FullName: "Jane Doe"}
	assert.False(t, r.Found())

	r.ProfileURL = "https://www.linkedin.com/in/janedoe"
	assert.True(t, r.Found())
}

func TestDeriveEducationTitles(t *testing.T) {
	r := &LinkedInRecord{
		Education: []LinkedInEducation{
			{School: "MIT", DegreeName: "MSc Economics"},
			{School: "Night school"}, // no degree name
			{School: "LSE", DegreeName: "BSc Economics"},
		},
	}
	r.DeriveEducationTitles()
	assert.Equal(t, []string{"MSc Economics", "BSc Economics"}, r.EducationTitles)
}

func TestDeriveExternalExperiences(t *testing.T) {
	tests := []struct {
		name     string
		employer string
		exps     []LinkedInExperience
		want     []string
	}{
		{
			name:     "filters employer positions case-insensitively",
			employer: "World Bank",
			exps: []LinkedInExperience{
				{Company: "The World Bank Group", Title: "Economist"},
				{Company: "Acme Corp", Title: "Analyst"},
				{Company: "world bank", Title: "Consultant"},
			},
			want: []string{"Analyst"},
		},
		{
			name:     "empty employer keeps everything with a company",
			employer: "",
			exps: []LinkedInExperience{
				{Company: "Acme Corp", Title: "Analyst"},
				{Company: "", Title: "Freelance"},
			},
			want: []string{"Analyst"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &LinkedInRecord{Experiences: tt.exps}
			r.DeriveExternalExperiences(tt.employer)

			var titles []string
			for _, e := range r.ExternalExperiences {
				titles = append(titles, e.Title)
			}
			assert.Equal(t, tt.want, titles)
		})
	}
}

func TestConcat(t *testing.T) {
	a := ProjectList{}
	a.Append("Rural Roads", "P123456", "Active", "FY22")
	b := ProjectList{}
	b.Append("Port Upgrade", "45678", "Closed", "FY19")

	all := Concat(a, b, ProjectList{})
	assert.Equal(t, 2, all.Len())
	assert.Equal(t, []string{"Rural Roads", "Port Upgrade"}, all.Titles)
	assert.Equal(t, []string{"P123456", "45678"}, all.Codes)
	assert.Equal(t, []string{"Active", "Closed"}, all.Statuses)
	assert.Equal(t, []string{"FY22", "FY19"}, all.Years)
}
