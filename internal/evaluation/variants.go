package evaluation

import "strings"

// termVariants maps technical and behavioral terms to spellings that
// speech-to-text systems produce for them: mis-hearings, split-word
// transcriptions, abbreviations, and close synonyms. Keys and values are
// lower case. The table is read-only after initialization and safe to share
// across concurrent evaluations.
var termVariants = map[string][]string{
	// Containers, cloud, infrastructure
	"kubernetes":    {"k8s", "kube", "kuber", "cooper netes", "kubernetic"},
	"docker":        {"dockers", "docker container", "doctor container"},
	"terraform":     {"terra form"},
	"jenkins":       {"jenkin"},
	"aws":           {"a w s", "amazon web services"},
	"azure":         {"as your", "asher"},
	"gcp":           {"g c p", "google cloud"},
	"serverless":    {"server less"},
	"microservices": {"microservice", "micro services", "micro service"},
	"devops":        {"dev ops"},
	"ci/cd":         {"cicd", "ci cd", "continuous integration", "continuous delivery", "continuous deployment"},
	"helm":          {"helm chart"},

	// Data stores
	"sql":           {"sequel", "s q l"},
	"nosql":         {"no sequel", "no s q l", "non relational"},
	"postgresql":    {"postgres", "postgre", "post gres"},
	"mysql":         {"my sequel", "my s q l"},
	"mongodb":       {"mongo", "mongo db"},
	"redis":         {"red is", "reddis"},
	"elasticsearch": {"elastic search", "elastic"},
	"database":      {"data base", "db"},
	"dynamodb":      {"dynamo", "dynamo db"},

	// Networking and APIs
	"api":       {"a p i", "apis"},
	"rest":      {"restful", "rest ful"},
	"graphql":   {"graph ql", "graph q l"},
	"grpc":      {"g rpc", "g r p c"},
	"http":      {"h t t p"},
	"websocket": {"web socket", "web sockets"},
	"oauth":     {"o auth", "oh auth", "oauth2"},
	"jwt":       {"j w t", "jot token", "json web token"},

	// Messaging and async
	"kafka":    {"kafkas", "caf ka"},
	"rabbitmq": {"rabbit mq", "rabbit m q"},
	"queue":    {"queues", "message queue"},

	// Reliability and performance
	"scalability":     {"scalable", "scaling", "scale"},
	"availability":    {"available", "high availability"},
	"fault tolerance": {"fault tolerant", "fault toleration"},
	"load balancer":   {"load balancing", "load balancers", "load balance"},
	"cache":           {"caching", "cash", "cashing", "cached"},
	"latency":         {"latencies"},
	"throughput":      {"through put"},
	"circuit breaker": {"circuit breaking", "circuit breakers"},
	"idempotent":      {"idempotency", "idem potent"},
	"sharding":        {"shard", "shards", "sharded"},
	"replication":     {"replica", "replicas", "replicated"},
	"failover":        {"fail over"},

	// Security
	"authentication": {"auth", "authenticate", "authenticating"},
	"authorization":  {"authorize", "authorizing", "access control"},
	"encryption":     {"encrypt", "encrypted", "encrypting"},

	// Languages and frameworks
	"golang":     {"go lang", "go language"},
	"javascript": {"js", "java script"},
	"typescript": {"type script"},
	"react":      {"reactjs", "react js"},
	"node":       {"nodejs", "node js", "node.js"},
	"github":     {"git hub"},

	// Behavioral
	"leadership":    {"leader", "leading", "led the"},
	"teamwork":      {"team work", "team player"},
	"communication": {"communicate", "communicating", "communicated"},
	"collaboration": {"collaborate", "collaborating", "collaborated"},
	"stakeholder":   {"stake holder", "stakeholders"},
	"mentorship":    {"mentor", "mentoring", "mentored"},
	"conflict":      {"disagreement", "conflicts"},
	"deadline":      {"dead line", "deadlines"},
	"prioritize":    {"prioritization", "prioritizing", "priorities"},
	"ownership":     {"owned", "taking charge"},
}

// variantsFor returns the known transcription variants for a lower-cased
// term, plus a generated plural/singular form and, for -ing/-tion words, a
// crude stem.
func variantsFor(term string) []string {
	variants := append([]string(nil), termVariants[term]...)

	if strings.HasSuffix(term, "s") {
		variants = append(variants, strings.TrimSuffix(term, "s"))
	} else {
		variants = append(variants, term+"s")
	}

	if len(term) > 5 {
		if strings.HasSuffix(term, "ing") {
			variants = append(variants, strings.TrimSuffix(term, "ing"))
		}
		if strings.HasSuffix(term, "tion") {
			variants = append(variants, strings.TrimSuffix(term, "tion"))
		}
	}

	return variants
}
