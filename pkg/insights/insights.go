package insights

import (
	"context"
	"errors"

	"github.com/matst80/shophub-catalog/pkg/types"
)

// ErrInFlight is returned when a request is started while another one is
// still outstanding. Only one insight request runs at a time.
var ErrInFlight = errors.New("insight request already in flight")

// Generator produces a short prose insight for a filtered product view.
type Generator interface {
	Generate(ctx context.Context, products []types.Product) (string, error)
}

// StaticGenerator returns a fixed result, used in tests.
type StaticGenerator struct {
	Text string
	Err  error
}

func (s *StaticGenerator) Generate(_ context.Context, _ []types.Product) (string, error) {
	if s.Err != nil {
		return "", s.Err
	}
	return s.Text, nil
}
