package datefmt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestToGoLayout(t *testing.T) {
	for _, c := range []struct {
		pattern  string
		expected string
	}{
		{"y-dd-MM", "2006-02-01"},
		{"y-MM", "2006-01"},
		{"yyyy-MM-dd", "2006-01-02"},
		{"yyyy-MM-dd HH:mm:ss", "2006-01-02 15:04:05"},
		{"yyyy-MM-dd'T'HH:mm:ssXXX", "2006-01-02T15:04:05Z07:00"},
		{"MMM d, yy", "Jan 2, 06"},
		{"EEEE, MMMM d", "Monday, January 2"},
		{"h:mm a", "3:04 PM"},
		{"HH:mm:ss.SSS Z", "15:04:05.000 -0700"},
	} {
		layout, err := ToGoLayout(c.pattern)
		require.Nil(t, err)
		require.Equal(t, c.expected, layout, "pattern %q", c.pattern)
	}
}

func TestToGoLayoutQuoting(t *testing.T) {
	layout, err := ToGoLayout("yyyy'y'MM''dd")
	require.Nil(t, err)
	require.Equal(t, "2006y01'02", layout)

	_, err = ToGoLayout("yyyy'T")
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "Unterminated quote")
}

func TestToGoLayoutUnsupported(t *testing.T) {
	_, err := ToGoLayout("yyyy-ww")
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "Unsupported date format token")
}

func TestToGoLayoutRoundTrip(t *testing.T) {
	// day and month transposed in the source data
	inLayout, err := ToGoLayout("y-dd-MM")
	require.Nil(t, err)
	outLayout, err := ToGoLayout("y-MM")
	require.Nil(t, err)
	parsed, err := time.Parse(inLayout, "2021-12-01")
	require.Nil(t, err)
	require.Equal(t, "2021-01", parsed.Format(outLayout))
}
