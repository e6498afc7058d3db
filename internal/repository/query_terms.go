package repository

import "strings"

// roleSynonyms widens a corpus query to the usual spellings of a role.
var roleSynonyms = map[string][]string{
	"frontend":  {"front end", "front-end", "ui developer"},
	"backend":   {"back end", "back-end", "server developer"},
	"fullstack": {"full stack", "full-stack"},
	"devops":    {"site reliability", "sre", "platform engineer"},
	"data":      {"data engineer", "data scientist", "analytics"},
	"mobile":    {"android", "ios", "flutter"},
}

// queryPatterns returns the ILIKE patterns for a query: the query itself
// followed by its synonyms. An empty query yields no patterns.
func queryPatterns(query string) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []string{}
	}
	terms := append([]string{q}, roleSynonyms[q]...)
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		out = append(out, "%"+escapeLike(t)+"%")
	}
	return out
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
