package board

import (
	"errors"
	"testing"

	"checkers/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartingLayout(t *testing.T) {
	t.Parallel()
	b := New()
	assert.Equal(t, StartingLayout, b.Layout(core.SideRed))

	parsed, turn, err := ParseLayout(StartingLayout)
	require.NoError(t, err)
	assert.Equal(t, b, parsed)
	assert.Equal(t, core.SideRed, turn)
}

func TestParseLayout(t *testing.T) {
	t.Parallel()
	tests := []struct {
		layout  string
		wantErr bool
	}{
		{layout: StartingLayout, wantErr: false},
		{layout: "8/8/8/8/8/8/8/8 b", wantErr: false},
		{layout: "1B6/8/8/2r5/8/8/8/6R1 r", wantErr: false},
		{layout: "", wantErr: true},
		{layout: "invalid layout", wantErr: true},
		{layout: "8/8/8/8/8/8/8 r", wantErr: true},
		{layout: "8/8/8/8/8/8/8/8/8 r", wantErr: true},
		{layout: "8/8/8/8/8/8/8/8 w", wantErr: true},
		{layout: "8/8/8/8/8/8/8/8 red", wantErr: true},
		{layout: "b7/8/8/8/8/8/8/8 r", wantErr: true}, // light square
		{layout: "1b1b1b1b1/8/8/8/8/8/8/8 r", wantErr: true},
		{layout: "1q6/8/8/8/8/8/8/8 r", wantErr: true},
		{layout: "7/8/8/8/8/8/8/8 r", wantErr: true},
		{layout: "8/8/8/8/8/8/8/8 r extra", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.layout, func(t *testing.T) {
			t.Parallel()

			b, turn, err := ParseLayout(tt.layout)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidLayout), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.layout, b.Layout(turn))
		})
	}
}
