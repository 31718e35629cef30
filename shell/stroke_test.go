package shell

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/juruen/digitpad/sample"
	"github.com/juruen/digitpad/session"
	"github.com/juruen/digitpad/surface"
)

type nopClassifier struct{}

func (nopClassifier) Classify(ctx context.Context, s sample.Sample) (int, error) {
	return 0, nil
}

func TestParsePoints(t *testing.T) {
	points, err := parsePoints([]string{"1", "2.5", "30", "40"})
	require.NoError(t, err)
	assert.Equal(t, []surface.Point{{X: 1, Y: 2.5}, {X: 30, Y: 40}}, points)

	_, err = parsePoints([]string{"1"})
	assert.Error(t, err)
	_, err = parsePoints(nil)
	assert.Error(t, err)
	_, err = parsePoints([]string{"a", "2"})
	assert.Error(t, err)

	for _, args := range [][]string{{"NaN", "1"}, {"1", "Inf"}, {"-inf", "0"}, {"1e400", "0"}} {
		_, err = parsePoints(args)
		assert.Error(t, err, "%v", args)
	}

	points, err = parsePoints([]string{"-5", "1e12"})
	require.NoError(t, err)
	assert.Equal(t, []surface.Point{{X: -5, Y: 1e12}}, points)
}

func TestParsePoint(t *testing.T) {
	p, err := parsePoint([]string{"3", "4"})
	require.NoError(t, err)
	assert.Equal(t, surface.Point{X: 3, Y: 4}, p)

	_, err = parsePoint([]string{"3", "4", "5", "6"})
	assert.Error(t, err)
}

func TestDrawLine(t *testing.T) {
	s := session.New(session.DefaultOptions(), nopClassifier{})
	runCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(runCtx)

	ctx := &ShellCtxt{Session: s, Pressed: true}
	require.NoError(t, drawLine(ctx, []surface.Point{{X: 224, Y: 224}}))
	assert.False(t, ctx.Pressed)

	preview, err := s.Preview()
	require.NoError(t, err)
	assert.False(t, preview.Empty(), "a single point leaves a dot")
}
