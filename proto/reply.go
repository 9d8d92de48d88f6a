package proto

import "strings"

// Reply markers. The first word of every reply sentence is one of these.
const (
	MarkerRe    = "!re"    // one result row
	MarkerDone  = "!done"  // command finished
	MarkerTrap  = "!trap"  // command failed
	MarkerFatal = "!fatal" // connection-level failure, router closes after
)

// Row holds the attributes of one !re sentence.
type Row map[string]string

// Result is the structured outcome of one command's reply sentences.
// Success selects which of Data and Message carries meaning: rows on
// success, the trap message on failure.
type Result struct {
	Success bool
	Data    []Row
	Message string
}

// ParseReply converts the reply sentences collected for one command into
// a Result. A !trap sentence short-circuits: later sentences are not
// inspected. !re sentences contribute one row each; !done and any other
// leading word contribute nothing.
func ParseReply(sentences []Sentence) Result {
	res := Result{Success: true, Data: []Row{}}
	for _, s := range sentences {
		if len(s) == 0 {
			continue
		}
		switch s[0] {
		case MarkerTrap:
			msg := attributeValue(s, "message")
			if msg == "" {
				msg = "Unknown error"
			}
			return Result{Success: false, Message: msg}
		case MarkerRe:
			row := Row{}
			for _, w := range s[1:] {
				if !strings.HasPrefix(w, "=") {
					continue
				}
				key, value := splitAttribute(w)
				row[key] = value
			}
			res.Data = append(res.Data, row)
		}
	}
	return res
}

// splitAttribute splits an attribute word "=key=value" at the first "="
// after the leading one. Splitting on every "=" would corrupt values
// that themselves contain the character.
func splitAttribute(word string) (key, value string) {
	rest := word[1:]
	if i := strings.IndexByte(rest, '='); i >= 0 {
		return rest[:i], rest[i+1:]
	}
	return rest, ""
}

func attributeValue(s Sentence, key string) string {
	prefix := "=" + key + "="
	for _, w := range s {
		if strings.HasPrefix(w, prefix) {
			return w[len(prefix):]
		}
	}
	return ""
}
