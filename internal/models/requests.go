package models

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type CreateStudentRequest struct {
	Name         string   `json:"name" validate:"required,min=1"`
	Email        string   `json:"email" validate:"required,email"`
	CGPA         float64  `json:"cgpa" validate:"gte=0,lte=10"`
	Branch       string   `json:"branch" validate:"max=120"`
	Experience   string   `json:"experience"`
	Technologies []string `json:"technologies" validate:"max=50,dive,max=80"`
	Projects     []string `json:"projects" validate:"max=50"`
	Internships  []string `json:"internships" validate:"max=50"`
	SoftSkills   *int     `json:"soft_skills,omitempty" validate:"omitempty,min=1,max=100"`
}

func (r *CreateStudentRequest) Validate() error {
	return validate.Struct(r)
}

// ToStudent builds a new profile. ProfileCompleted is set once the academic
// fields are present.
func (r *CreateStudentRequest) ToStudent() *Student {
	s := &Student{
		Name:         r.Name,
		Email:        r.Email,
		CGPA:         r.CGPA,
		Branch:       r.Branch,
		Experience:   r.Experience,
		Technologies: r.Technologies,
		Projects:     r.Projects,
		Internships:  r.Internships,
		SoftSkills:   r.SoftSkills,
	}
	s.ProfileCompleted = IsProfileComplete(s)
	return s
}

// UpdateStudentRequest is a partial update; nil fields are left unchanged.
type UpdateStudentRequest struct {
	Name         *string   `json:"name,omitempty" validate:"omitempty,min=1"`
	CGPA         *float64  `json:"cgpa,omitempty" validate:"omitempty,gte=0,lte=10"`
	Branch       *string   `json:"branch,omitempty" validate:"omitempty,max=120"`
	Experience   *string   `json:"experience,omitempty"`
	Technologies *[]string `json:"technologies,omitempty" validate:"omitempty,max=50,dive,max=80"`
	Projects     *[]string `json:"projects,omitempty" validate:"omitempty,max=50"`
	Internships  *[]string `json:"internships,omitempty" validate:"omitempty,max=50"`
	SoftSkills   *int      `json:"soft_skills,omitempty" validate:"omitempty,min=1,max=100"`
}

func (r *UpdateStudentRequest) Validate() error {
	return validate.Struct(r)
}

func (r *UpdateStudentRequest) Apply(s *Student) {
	if r.Name != nil {
		s.Name = *r.Name
	}
	if r.CGPA != nil {
		s.CGPA = *r.CGPA
	}
	if r.Branch != nil {
		s.Branch = *r.Branch
	}
	if r.Experience != nil {
		s.Experience = *r.Experience
	}
	if r.Technologies != nil {
		s.Technologies = *r.Technologies
	}
	if r.Projects != nil {
		s.Projects = *r.Projects
	}
	if r.Internships != nil {
		s.Internships = *r.Internships
	}
	if r.SoftSkills != nil {
		s.SoftSkills = r.SoftSkills
	}
	s.ProfileCompleted = IsProfileComplete(s)
}

func IsProfileComplete(s *Student) bool {
	return s.Name != "" && s.CGPA > 0 && s.Branch != "" && len(s.Technologies) > 0
}

// SubmitAssessmentRequest carries one chosen option index per question; -1
// marks a skipped question.
type SubmitAssessmentRequest struct {
	SkillID string `json:"skill_id" validate:"required"`
	Answers []int  `json:"answers" validate:"required,min=1,dive,min=-1"`
}

func (r *SubmitAssessmentRequest) Validate() error {
	return validate.Struct(r)
}

type UploadResponse struct {
	ID           string `json:"id"`
	Filename     string `json:"filename"`
	OriginalName string `json:"original_name"`
	FileType     string `json:"file_type"`
}

// ValidationMessages flattens validator errors into "field: rule" strings.
func ValidationMessages(err error) []string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return []string{"invalid request"}
	}
	out := make([]string, 0, len(ve))
	for _, fe := range ve {
		out = append(out, fmt.Sprintf("%s: %s", fe.Field(), fe.Tag()))
	}
	return out
}
