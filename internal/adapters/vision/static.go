package vision

import (
	"context"

	"medication-adherence/internal/ports/verification"
)

// Static devuelve siempre el mismo veredicto. Para dev local y tests.
type Static struct {
	Verdict verification.Verdict
	Err     error
}

// NewStatic acepta toda foto con confianza 90.
func NewStatic() *Static {
	return &Static{Verdict: verification.Verdict{
		Accepted:   true,
		Confidence: 90,
		Tags:       []string{"pill", "hand"},
		Rationale:  "static oracle",
		Model:      "static",
	}}
}

func (s *Static) Classify(_ context.Context, _ []byte, _ string) (verification.Verdict, error) {
	if s.Err != nil {
		return verification.Verdict{Model: s.Verdict.Model}, s.Err
	}
	v := s.Verdict
	v.Tags = append([]string(nil), s.Verdict.Tags...)
	return v, nil
}
