package analysis

import (
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallbackHostedImage(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "raw base64 gets a jpeg data prefix",
			in:   "dGVzdA==",
			want: "data:image/jpeg;base64,dGVzdA==",
		},
		{
			name: "existing data URL passes through",
			in:   "data:image/png;base64,dGVzdA==",
			want: "data:image/png;base64,dGVzdA==",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hosted := FallbackHostedImage(tt.in)
			assert.Equal(t, tt.want, hosted.URL)
			assert.NotEmpty(t, hosted.DeleteURL)
		})
	}
}

func TestFallbackCandidates(t *testing.T) {
	got := FallbackCandidates()
	require.Len(t, got, 5)
	for _, c := range got {
		assert.NotEmpty(t, c.Title)
		assert.NotEmpty(t, c.ExtractedPrice)
	}
}

func TestAnnotator_PreservesLengthAndOrder(t *testing.T) {
	a := NewAnnotator(1)
	in := Filter(FallbackCandidates())

	out := a.Annotate(in)

	require.Len(t, out, len(in))
	for i, item := range out {
		assert.Equal(t, in[i], item.Candidate)
		require.NotNil(t, item.Analysis)
	}
}

func TestAnnotator_ValueRange(t *testing.T) {
	a := NewAnnotator(42)

	tests := []struct {
		extracted string
		estimated string
		valRange  string
	}{
		{"450", "$450", "$360 - $540"},
		{"85", "$85", "$68 - $102"},
		{"0", "$0", "$0 - $0"},
		{"abc", "$0", "$0 - $0"},
		{"", "$0", "$0 - $0"},
		{"-10", "$0", "$0 - $0"},
	}

	for _, tt := range tests {
		t.Run(tt.extracted, func(t *testing.T) {
			out := a.Annotate([]Candidate{{Title: "Vintage Crystal Vase", ExtractedPrice: tt.extracted}})
			require.Len(t, out, 1)
			assert.Equal(t, tt.estimated, out[0].Analysis.EstimatedValue)
			assert.Equal(t, tt.valRange, out[0].Analysis.ValueRange)
		})
	}
}

func TestAnnotator_RangeLowNeverAboveHigh(t *testing.T) {
	a := NewAnnotator(7)
	for _, price := range []string{"1", "3", "99", "1234", "999999"} {
		out := a.Annotate([]Candidate{{ExtractedPrice: price}})
		require.Len(t, out, 1)

		parts := strings.Split(out[0].Analysis.ValueRange, " - ")
		require.Len(t, parts, 2)
		low, err := strconv.Atoi(strings.TrimPrefix(parts[0], "$"))
		require.NoError(t, err)
		high, err := strconv.Atoi(strings.TrimPrefix(parts[1], "$"))
		require.NoError(t, err)

		assert.GreaterOrEqual(t, low, 0)
		assert.LessOrEqual(t, low, high)
	}
}

func TestAnnotator_LabelsFromFixedSets(t *testing.T) {
	a := NewAnnotator(99)
	in := make([]Candidate, 50)
	for i := range in {
		in[i] = Candidate{Title: fmt.Sprintf("item %d", i), ExtractedPrice: "100"}
	}

	sawHigh, sawMedium := false, false
	for _, item := range a.Annotate(in) {
		an := item.Analysis
		// the draw is random, only set membership is stable
		assert.Contains(t, []string{"High", "Medium"}, an.Confidence)
		assert.Contains(t, fallbackConditions, an.Condition)
		assert.Contains(t, fallbackEras, an.Era)
		assert.Contains(t, fallbackMaterials, an.Material)
		assert.Contains(t, fallbackStyles, an.Style)
		switch an.Confidence {
		case "High":
			sawHigh = true
		case "Medium":
			sawMedium = true
		}
	}
	// with 50 draws at p=0.7 both labels are effectively certain
	assert.True(t, sawHigh)
	assert.True(t, sawMedium)
}

func TestAnnotator_Description(t *testing.T) {
	a := NewAnnotator(3)
	out := a.Annotate([]Candidate{{Title: "Antique Oak Dining Table", ExtractedPrice: "450"}})
	require.Len(t, out, 1)

	desc := out[0].Analysis.Description
	assert.Contains(t, desc, "antique oak dining table")
	assert.Contains(t, desc, "$450")
	assert.Contains(t, desc, "condition")
}

func TestAnnotator_EmptyInput(t *testing.T) {
	a := NewAnnotator(5)
	assert.Empty(t, a.Annotate(nil))
	assert.Empty(t, a.Annotate([]Candidate{}))
}
