package icp

import (
	"fmt"
	"strings"

	"github.com/anjy7/ascendo/internal/model"
)

// insufficientData is the reasoning used when no scoring rule fires.
const insufficientData = "Insufficient data for scoring"

// Score computes the rule-based ICP fit for one company. It is pure: the
// same details and criteria always produce the same result. Component rules:
//
//  1. Industry: full weight if any target industry matches the company's
//     industry field (case-insensitive substring, either direction).
//  2. Title: full weight if any contact's title contains a target title.
//  3. Department: same pattern against target departments.
//  4. Size: full weight at the preferred threshold, half (floor) at the
//     minimum, else zero.
//  5. Speaker bonus: full weight if the company has at least one contact.
//
// Fit level follows the thresholds applied to the component sum.
func Score(details model.CompanyDetails, criteria Criteria, thresholds model.Thresholds) model.ScoreResult {
	w := criteria.Weights
	var reasons []string

	industryScore := 0
	industry := strings.ToLower(details.Industry)
	if industry != "" {
		for _, target := range criteria.TargetIndustries {
			t := strings.ToLower(target)
			if strings.Contains(industry, t) || strings.Contains(t, industry) {
				industryScore = w.Industry
				reasons = append(reasons, "Industry match: "+target)
				break
			}
		}
	}

	contacts := details.Contacts()

	titleScore := 0
	for _, c := range contacts {
		if titleScore > 0 {
			break
		}
		title := strings.ToLower(c.Title)
		for _, target := range criteria.TargetTitles {
			if strings.Contains(title, strings.ToLower(target)) {
				titleScore = w.Title
				reasons = append(reasons, "Title match: "+c.Title)
				break
			}
		}
	}

	departmentScore := 0
	for _, c := range contacts {
		if departmentScore > 0 {
			break
		}
		title := strings.ToLower(c.Title)
		for _, dept := range criteria.TargetDepartments {
			if strings.Contains(title, strings.ToLower(dept)) {
				departmentScore = w.Department
				reasons = append(reasons, "Department match: "+dept)
				break
			}
		}
	}

	sizeScore := 0
	if details.Size != nil {
		switch size := *details.Size; {
		case size >= criteria.PreferredCompanySize:
			sizeScore = w.Size
			reasons = append(reasons, fmt.Sprintf("Enterprise size: %d+ employees", size))
		case size >= criteria.MinCompanySize:
			sizeScore = w.Size / 2
			reasons = append(reasons, fmt.Sprintf("Mid-market size: %d employees", size))
		}
	}

	speakerBonus := 0
	if len(contacts) > 0 {
		speakerBonus = w.SpeakerBonus
		reasons = append(reasons, fmt.Sprintf("Has %d contact(s) at conference", len(contacts)))
	}

	total := industryScore + titleScore + departmentScore + sizeScore + speakerBonus

	reasoning := insufficientData
	if len(reasons) > 0 {
		reasoning = strings.Join(reasons, "; ")
	}

	return model.ScoreResult{
		CompanyName:     details.Name,
		Score:           total,
		FitLevel:        thresholds.FitFor(total),
		Reasoning:       reasoning,
		IndustryScore:   industryScore,
		TitleScore:      titleScore,
		DepartmentScore: departmentScore,
		SizeScore:       sizeScore,
		SpeakerBonus:    speakerBonus,
	}
}
