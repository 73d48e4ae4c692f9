package evaluation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWordSimilar(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want bool
	}{
		{"identical words", "kubernetes", "kubernetes", true},
		{"identical short words", "go", "go", true},
		{"empty strings are not similar", "", "", false},
		{"short words must match exactly", "ha", "hash", false},
		{"containment counts", "index", "indexing", true},
		{"containment is symmetric", "indexing", "index", true},
		{"shared prefix over sixty percent", "cat", "car", true},
		{"no shared characters", "abc", "xyz", false},
		{"inflected forms pass the character check", "scaling", "scalability", true},
		{"plural noise passes", "latency", "latencies", true},
		{"verb form matches noun", "caching", "cache", true},
		// The multiset fallback is loose: distant words with enough
		// shared characters still pass.
		{"loose multiset fallback accepts distant words", "production", "grpc", true},
		{"loose multiset fallback on long needles", "under", "kubernetes", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WordSimilar(tt.a, tt.b))
		})
	}
}

func TestFuzzyMatch(t *testing.T) {
	tests := []struct {
		name string
		text string
		term string
		want bool
	}{
		{"verbatim phrase", "we put a load balancer in front", "load balancer", true},
		{"case insensitive", "We Ran Kubernetes In Production", "kubernetes", true},
		{"variant table catches abbreviations", "I deployed it on kube last year", "kubernetes", true},
		{"variant table catches shortened names", "we used postgres for storage", "postgresql", true},
		{"variant table catches mis-transcriptions", "the sequel database held orders", "sql", true},
		{"variant table expands acronyms", "our continuous integration pipeline", "ci/cd", true},
		{"singular text matches plural term", "the container crashed nightly", "containers", true},
		{"stemmed variant catches misspellings", "we sped it up with cacheing", "caching", true},
		{"empty text never matches", "", "kubernetes", false},
		{"empty term never matches", "some answer text", "", false},
		{"unrelated term stays unmatched", "we tuned the slow dashboard queries", "kafka", false},
		{"short tokens cannot fuzzy-match", "qq zz xx", "kubernetes", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FuzzyMatch(tt.text, tt.term))
		})
	}
}

func TestVariantsFor(t *testing.T) {
	t.Run("adds plural for singular terms", func(t *testing.T) {
		assert.Contains(t, variantsFor("docker"), "dockers")
	})
	t.Run("adds singular for plural terms", func(t *testing.T) {
		assert.Contains(t, variantsFor("microservices"), "microservice")
	})
	t.Run("stems long ing terms", func(t *testing.T) {
		assert.Contains(t, variantsFor("sharding"), "shard")
	})
	t.Run("stems long tion terms", func(t *testing.T) {
		assert.Contains(t, variantsFor("replication"), "replica")
	})
	t.Run("keeps table variants", func(t *testing.T) {
		got := variantsFor("kubernetes")
		assert.Contains(t, got, "k8s")
		assert.Contains(t, got, "kube")
	})
	t.Run("does not mutate the table", func(t *testing.T) {
		before := len(termVariants["kubernetes"])
		_ = variantsFor("kubernetes")
		_ = variantsFor("kubernetes")
		assert.Len(t, termVariants["kubernetes"], before)
	})
}
