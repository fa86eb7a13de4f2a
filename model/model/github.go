package model

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

const (
	ContributionYearLast = "last"
	ContributionYearAll  = "all"

	ContributionFormatNested = "nested"
)

var githubUsernameRegex = regexp.MustCompile(`^[A-Za-z0-9](?:[A-Za-z0-9]|-(?:[A-Za-z0-9])){0,38}$`)
var yearRegex = regexp.MustCompile(`^\d{4}$`)

// ContributionYear accepts "last", "all" or a year given as string or number.
type ContributionYear string

func (year *ContributionYear) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*year = ContributionYear(s)
		return nil
	}

	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*year = ContributionYear(strconv.Itoa(n))
	return nil
}

type ContributionsInput struct {
	Username string           `json:"username" validate:"omitempty,max=39"`
	Year     ContributionYear `json:"year"`
	Format   string           `json:"format" validate:"omitempty,oneof=nested"`
	NoCache  bool             `json:"noCache"`
}

func (input *ContributionsInput) Normalize() {
	trim(&input.Username)
	input.Format = strings.TrimSpace(input.Format)
	input.Year = ContributionYear(strings.ToLower(strings.TrimSpace(string(input.Year))))
	if input.Year == "" {
		input.Year = ContributionYearLast
	}
}

func (input *ContributionsInput) Validate() error {
	errs := FieldErrors{}
	if input.Username != "" && !githubUsernameRegex.MatchString(input.Username) {
		errs["username"] = "invalid github username"
	}

	year := string(input.Year)
	if year != ContributionYearLast && year != ContributionYearAll && !yearRegex.MatchString(year) {
		errs["year"] = "must be last, all or a 4 digit year"
	}
	return errs.ErrorOrNil()
}

type Contribution struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
	Level int    `json:"level"`
}

// ContributionsOutput carries either the flat list or, for the nested
// format, contributions keyed by year, month and day.
type ContributionsOutput struct {
	Total         map[string]int                                `json:"total"`
	Contributions []Contribution                                `json:"contributions,omitempty"`
	Nested        map[string]map[string]map[string]Contribution `json:"nested,omitempty"`
}

// NestContributions groups flat contributions by year, month and day taken
// from the YYYY-MM-DD date.
func NestContributions(contributions []Contribution) map[string]map[string]map[string]Contribution {
	nested := make(map[string]map[string]map[string]Contribution)
	for _, contribution := range contributions {
		parts := strings.Split(contribution.Date, "-")
		if len(parts) != 3 {
			continue
		}

		year, month, day := parts[0], strings.TrimLeft(parts[1], "0"), strings.TrimLeft(parts[2], "0")
		if _, exists := nested[year]; !exists {
			nested[year] = make(map[string]map[string]Contribution)
		}
		if _, exists := nested[year][month]; !exists {
			nested[year][month] = make(map[string]Contribution)
		}
		nested[year][month][day] = contribution
	}
	return nested
}
