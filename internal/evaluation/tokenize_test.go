package evaluation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "empty string yields empty slice",
			input: "",
			want:  []string{},
		},
		{
			name:  "whitespace only yields empty slice",
			input: "   \t\n  ",
			want:  []string{},
		},
		{
			name:  "lower-cases and splits on whitespace",
			input: "Load Balancer\tDistributes\nTraffic",
			want:  []string{"load", "balancer", "distributes", "traffic"},
		},
		{
			name:  "drops tokens of two characters or fewer",
			input: "go is an ok db",
			want:  []string{},
		},
		{
			name:  "keeps three-character tokens",
			input: "aws api gcp",
			want:  []string{"aws", "api", "gcp"},
		},
		{
			name:  "mixed short and long tokens",
			input: "I used the API at my last job",
			want:  []string{"used", "the", "api", "last", "job"},
		},
		{
			name:  "counts runes not bytes for the length floor",
			input: "héllo wörld ab",
			want:  []string{"héllo", "wörld"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.input))
		})
	}
}
