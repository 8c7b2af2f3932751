// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package profile

import "github.com/taibuivan/devhub/pkg/skillset"

// UpsertInput lists every field a caller may set on their profile.
//
// A nil pointer leaves the stored value untouched. Skills and Social are
// replaced on every call.
type UpsertInput struct {
	Company        *string
	Website        *string
	Location       *string
	Status         *string
	Bio            *string
	GitHubUsername *string
	Skills         skillset.Set
	Social         Social
}

// ExperienceInput is a new work history entry.
type ExperienceInput struct {
	Title       string
	Company     string
	Location    string
	From        string
	To          string
	Current     bool
	Description string
}

// EducationInput is a new study history entry.
type EducationInput struct {
	School       string
	Degree       string
	FieldOfStudy string
	From         string
	To           string
	Current      bool
	Description  string
}
