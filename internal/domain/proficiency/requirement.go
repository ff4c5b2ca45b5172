package proficiency

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var ErrInvalidRequirement = errors.New("invalid skill requirement")

// Requirement is one skill a job asks for. Criticality weighs the skill's
// relative importance; the sum across a job's requirements need not be 1.
type Requirement struct {
	JobID       uuid.UUID
	SkillID     uuid.UUID
	SkillName   string
	Required    float64
	Criticality float64
	Mandatory   bool
}

func (r Requirement) Validate() error {
	if r.SkillID == uuid.Nil {
		return fmt.Errorf("%w: nil skill id", ErrInvalidRequirement)
	}
	if r.Required < MinValue || r.Required > MaxValue {
		return fmt.Errorf("%w: required_proficiency %.2f out of [0,10]", ErrInvalidRequirement, r.Required)
	}
	if r.Criticality < 0 || r.Criticality > 1 {
		return fmt.Errorf("%w: criticality %.2f out of [0,1]", ErrInvalidRequirement, r.Criticality)
	}
	return nil
}

// ValidateRequirements rejects a requirement list at the boundary before
// any scoring runs over it.
func ValidateRequirements(reqs []Requirement) error {
	for _, r := range reqs {
		if err := r.Validate(); err != nil {
			return err
		}
	}
	return nil
}
