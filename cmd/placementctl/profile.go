package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/go-playground/validator/v10"

	"alfredoptarigan/placement-predictor/internal/models"
	"alfredoptarigan/placement-predictor/internal/prediction"
	"alfredoptarigan/placement-predictor/internal/report"
	"alfredoptarigan/placement-predictor/internal/services"
)

var validate = validator.New()

// profileFile is the JSON accepted by --profile. It mirrors the profile form.
type profileFile struct {
	Name           string   `json:"name"`
	CGPA           float64  `json:"cgpa" validate:"gte=0,lte=10"`
	Branch         string   `json:"branch"`
	Experience     string   `json:"experience"`
	Technologies   []string `json:"technologies"`
	Projects       []string `json:"projects"`
	Internships    []string `json:"internships"`
	Certifications int      `json:"certifications" validate:"gte=0"`
	ResumeUploaded bool     `json:"resume_uploaded"`
	SoftSkills     *int     `json:"soft_skills,omitempty" validate:"omitempty,min=1,max=100"`
}

func readProfile(path string) (*profileFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}

	var pf profileFile
	if err := json.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("failed to decode profile %s: %w", path, err)
	}
	if err := validate.Struct(&pf); err != nil {
		return nil, fmt.Errorf("invalid profile: %s", strings.Join(models.ValidationMessages(err), ", "))
	}
	return &pf, nil
}

func (pf *profileFile) student() *models.Student {
	return &models.Student{
		Name:         pf.Name,
		CGPA:         pf.CGPA,
		Branch:       pf.Branch,
		Experience:   pf.Experience,
		Technologies: pf.Technologies,
		Projects:     pf.Projects,
		Internships:  pf.Internships,
		SoftSkills:   pf.SoftSkills,
	}
}

func (pf *profileFile) profile() prediction.StudentProfile {
	return services.ProfileFromStudent(pf.student(), pf.ResumeUploaded)
}

func (pf *profileFile) info() report.StudentInfo {
	return services.StudentInfoFrom(pf.student(), pf.Certifications)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func rupees(v float64) string {
	return "₹" + humanize.Comma(int64(v))
}

func writeList(w io.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s:\n", title)
	for _, item := range items {
		fmt.Fprintf(w, "  - %s\n", item)
	}
}
