package marketvalue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseToken(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  float64
	}{
		{"millions with pound sign", "£15.00m", 15_000_000},
		{"thousands", "£450Th.", 450_000},
		{"euro prefix", "€1.20m", 1_200_000},
		{"mis-decoded pound", "Â£63.00m", 63_000_000},
		{"german millions", "1,50 Mio. €", 1_500_000},
		{"german thousands", "800 Tsd. €", 800_000},
		{"billions", "€1.2bn", 1_200_000_000},
		{"thousand separators with decimal", "€1,234.5Th.", 1_234_500},
		{"dotted thousands german", "1.234,5 Tsd. €", 1_234_500},
		{"k suffix", "$500k", 500_000},
		{"surrounding whitespace", "\n\t£7.50m \r\n", 7_500_000},
		{"zero value", "£0Th.", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseToken(tt.token)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseToken_Failures(t *testing.T) {
	_, err := ParseToken("")
	assert.ErrorIs(t, err, ErrNoToken)

	for _, token := range []string{"-", "£15.00", "abcm", "£1.2.3m", "£-5m"} {
		_, err := ParseToken(token)
		assert.ErrorIs(t, err, ErrBadToken, token)
	}
}

func TestExtractToken(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"english block", "\n  £63.00m\n  Last update: Jun 7, 2021\n", "63.00m"},
		{"thousands block", "Current market value: £450Th.", "450Th."},
		{"german block", "Marktwert: 1,50 Mio. € Letzte Änderung: 07.06.2021", "1,50Mio."},
		{"no currency", "value 12.5m", "12.5m"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractToken(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ExtractToken("Last update: -")
	assert.ErrorIs(t, err, ErrNoToken)
}
