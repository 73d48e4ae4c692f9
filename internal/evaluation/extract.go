package evaluation

import (
	"regexp"
	"strings"
)

// maxCapitalizedTerms caps how many terms the capitalized-phrase fallback
// may add. Pattern-family hits are never capped.
const maxCapitalizedTerms = 10

type termPattern struct {
	category string
	re       *regexp.Regexp
}

// termPatterns is scanned in order and hits are collected in order, so
// extraction output is stable for a given input. Longer alternatives come
// before their substrings (postgresql before sql) so the leftmost-first
// regexp engine picks the specific term.
var termPatterns = []termPattern{
	{"networking", regexp.MustCompile(`(?i)\b(load balanc\w*|api gateway\w*|reverse prox\w*|dns|tcp|udp|http/?2?|grpc|websocket\w*|rest(?:ful)? api\w*|graphql)\b`)},
	{"datastores", regexp.MustCompile(`(?i)\b(postgresql|postgres|mysql|mongodb|cassandra|dynamodb|elasticsearch|redis|memcached|sqlite|sql|nosql|database shard\w*|shard\w*|replicat\w*|indexe?s?|indexing)\b`)},
	{"containers", regexp.MustCompile(`(?i)\b(kubernetes|k8s|docker|container\w*|pod\w*|helm|terraform|ansible|aws|azure|gcp|ec2|s3|lambda|serverless|cloud\w*)\b`)},
	{"messaging", regexp.MustCompile(`(?i)\b(kafka|rabbitmq|sqs|pub/?sub|message queue\w*|event[- ]driven|event sourcing|async\w*|webhook\w*)\b`)},
	{"reliability", regexp.MustCompile(`(?i)\b(circuit breaker\w*|retr(?:y|ies)|timeout\w*|failover\w*|fault[- ]toleran\w*|high availability|redundanc\w*|disaster recovery|backpressure|rate limit\w*|throttl\w*|bulkhead\w*|health check\w*)\b`)},
	{"performance", regexp.MustCompile(`(?i)\b(cach(?:e|es|ing)|cdn|lazy load\w*|pagination|batch\w*|connection pool\w*|memoiz\w*|profil\w*|benchmark\w*|latenc\w*|throughput)\b`)},
	{"security", regexp.MustCompile(`(?i)\b(oauth2?|jwt|authenticat\w*|authoriz\w*|encrypt\w*|tls|ssl|https|csrf|xss|sql injection|rbac|secrets? manage\w*)\b`)},
	{"architecture", regexp.MustCompile(`(?i)\b(microservice\w*|monolith\w*|service mesh|domain[- ]driven|cqrs|saga\w*|distributed system\w*|eventual consistency|consensus|raft|paxos|cap theorem|vertical scal\w*|horizontal scal\w*|scalab\w*)\b`)},
	{"patterns", regexp.MustCompile(`(?i)\b(singleton|factory|observer|dependency injection|solid principle\w*|design pattern\w*|idempoten\w*|immutab\w*|polymorphis\w*|abstraction|encapsulation|inheritance)\b`)},
	{"dataeng", regexp.MustCompile(`(?i)\b(etl|data pipeline\w*|data warehous\w*|data lake\w*|stream process\w*|spark|airflow|batch process\w*|mapreduce)\b`)},
	{"delivery", regexp.MustCompile(`(?i)\b(ci/?cd|continuous integration|continuous deliver\w*|continuous deployment|blue[- ]green|canary deploy\w*|feature flag\w*|rollback\w*|git(?:hub|lab)? flow|trunk[- ]based)\b`)},
	{"languages", regexp.MustCompile(`(?i)\b(golang|python|java(?:script)?|typescript|rust|scala|kotlin|node\.?js|react|angular|vue|django|spring|flask)\b`)},
	{"behavioral", regexp.MustCompile(`(?i)\b(leadership|mentors?h?ip|teamwork|collaborat\w*|stakeholder\w*|communicat\w*|conflict\w*|deadline\w*|prioriti\w*|ownership|accountab\w*|feedback|retrospective\w*|postmortem\w*)\b`)},
	{"process", regexp.MustCompile(`(?i)\b(agile|scrum|kanban|sprint\w*|standup\w*|code review\w*|pair programming|tdd|test[- ]driven|unit test\w*|integration test\w*|observab\w*|monitor\w*|logg?ing|alert\w*|metrics|tracing|slos?|slas?)\b`)},
}

// capitalizedPhrase picks up proper nouns the pattern families miss, e.g.
// product names in a reference answer. Sentence-leading words are filtered
// by the stoplist below.
var capitalizedPhrase = regexp.MustCompile(`\b[A-Z][a-zA-Z]+(?:\s+[A-Z][a-zA-Z]+)*\b`)

var sentenceStarters = map[string]struct{}{
	"The": {}, "This": {}, "That": {}, "When": {}, "What": {}, "How": {}, "Why": {},
}

// ExtractKeyTerms pulls the technical and behavioral vocabulary out of a
// reference answer. Terms come back lower-cased, deduplicated, in the order
// first seen. Every pattern-family hit is kept; the capitalized-phrase pass
// adds at most ten more.
func ExtractKeyTerms(referenceText string) []string {
	terms := []string{}
	seen := make(map[string]struct{})

	add := func(raw string) bool {
		term := strings.ToLower(strings.TrimSpace(raw))
		if term == "" {
			return false
		}
		if _, dup := seen[term]; dup {
			return false
		}
		seen[term] = struct{}{}
		terms = append(terms, term)
		return true
	}

	for _, pattern := range termPatterns {
		for _, match := range pattern.re.FindAllString(referenceText, -1) {
			add(match)
		}
	}

	added := 0
	for _, phrase := range capitalizedPhrase.FindAllString(referenceText, -1) {
		if added >= maxCapitalizedTerms {
			break
		}
		if len(phrase) <= 3 {
			continue
		}
		first := phrase
		if idx := strings.IndexByte(phrase, ' '); idx >= 0 {
			first = phrase[:idx]
		}
		if _, skip := sentenceStarters[first]; skip {
			continue
		}
		if add(phrase) {
			added++
		}
	}

	return terms
}
