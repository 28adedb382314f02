package service

import (
	"context"

	"roarrealty/internal/apperrors"

	"github.com/rs/zerolog/log"
)

// Stage is one step of the chat pipeline. Run does the work; Fallback turns
// a failure into the safe value the pipeline continues with, so a stage
// never aborts the request.
type Stage[In, Out any] struct {
	Name     string
	Run      func(ctx context.Context, in In) (Out, error)
	Fallback func(in In, err error) Out
}

// Exec runs the stage and substitutes the fallback on error
func (s Stage[In, Out]) Exec(ctx context.Context, in In) Out {
	out, err := s.Run(ctx, in)
	if err == nil {
		return out
	}

	log.Ctx(ctx).Warn().
		Err(err).
		Str("stage", s.Name).
		Str("error_type", string(apperrors.TypeOf(err))).
		Msg("stage failed, using fallback")

	return s.Fallback(in, err)
}
