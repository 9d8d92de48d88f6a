package routeros

import (
	"sort"
	"strings"
)

// Request is the caller-facing shape of one command. Path is the
// command word (e.g. "/interface/print"); Body fields become attribute
// words "=key=value"; Query fields become query words "?key=value",
// one word per list element in order.
type Request struct {
	Path  string
	Query map[string][]string
	Body  map[string]string
}

// words flattens the request into the ordered word list sent on the
// wire: path first, then attributes, then queries. Field names are
// emitted sorted so the sentence is deterministic; the protocol assigns
// no meaning to attribute order.
func (r Request) words() ([]string, error) {
	path := strings.TrimSpace(r.Path)
	if path == "" {
		return nil, ErrEmptyPath
	}
	words := make([]string, 0, 1+len(r.Body)+len(r.Query))
	words = append(words, path)
	for _, key := range sortedKeys(r.Body) {
		words = append(words, "="+key+"="+r.Body[key])
	}
	queryKeys := make([]string, 0, len(r.Query))
	for key := range r.Query {
		queryKeys = append(queryKeys, key)
	}
	sort.Strings(queryKeys)
	for _, key := range queryKeys {
		for _, value := range r.Query[key] {
			words = append(words, "?"+key+"="+value)
		}
	}
	return words, nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
