// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package profile manages developer profiles and their work and study history.

Each account owns at most one profile, created or replaced by [Service.Upsert].
Experience and education entries are embedded in the profile, newest first,
and carry their own ids.

The package also serves a cached, throttled lookup of a user's latest public
GitHub repositories.
*/
package profile

import (
	"time"

	"github.com/taibuivan/devhub/pkg/skillset"
)

// # Domain Entities

// Profile is the public description of one account.
type Profile struct {
	ID             string       `json:"id"`
	Owner          string       `json:"-"`
	User           OwnerSummary `json:"user"`
	Company        string       `json:"company"`
	Website        string       `json:"website"`
	Location       string       `json:"location"`
	Status         string       `json:"status"`
	Skills         skillset.Set `json:"skills"`
	Bio            string       `json:"bio"`
	GitHubUsername string       `json:"githubusername"`
	Social         Social       `json:"social"`
	Experience     []Experience `json:"experience"`
	Education      []Education  `json:"education"`
	CreatedAt      time.Time    `json:"date"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}

// OwnerSummary is the owning account as shown next to a profile.
type OwnerSummary struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// Social holds canonical links to external networks. Empty means unset.
type Social struct {
	YouTube   string `json:"youtube,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
}

// Experience is one position in a work history.
type Experience struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	From        string `json:"from"`
	To          string `json:"to,omitempty"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

// Education is one entry in a study history.
type Education struct {
	ID           string `json:"id"`
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldofstudy"`
	From         string `json:"from"`
	To           string `json:"to,omitempty"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

// # Field Identifiers

const (
	FieldStatus         = "status"
	FieldSkills         = "skills"
	FieldWebsite        = "website"
	FieldCompany        = "company"
	FieldLocation       = "location"
	FieldBio            = "bio"
	FieldGitHubUsername = "githubusername"
	FieldYouTube        = "youtube"
	FieldTwitter        = "twitter"
	FieldInstagram      = "instagram"
	FieldLinkedIn       = "linkedin"
	FieldFacebook       = "facebook"
	FieldTitle          = "title"
	FieldSchool         = "school"
	FieldDegree         = "degree"
	FieldFieldOfStudy   = "fieldofstudy"
	FieldFrom           = "from"
	FieldTo             = "to"
	FieldUserID         = "userID"
	FieldExperienceID   = "expID"
	FieldEducationID    = "eduID"
	FieldUsername       = "username"
)

// # Limits

const (
	ShortTextMaxLength = 200
	BioMaxLength       = 2000
	SkillsMaxCount     = 50
	// GitHubUsernameMaxLength matches GitHub's own limit.
	GitHubUsernameMaxLength = 39
)
