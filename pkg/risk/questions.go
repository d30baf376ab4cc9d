package risk

import (
	"regexp"
	"slices"
	"strings"
)

// Vector is a class of exposure an advisory can describe.
type Vector string

const (
	VectorNetwork Vector = "network"
	VectorCookie  Vector = "cookie"
	VectorConsole Vector = "console"
)

// Vectors lists every vector in the order their questions are asked.
var Vectors = []Vector{VectorNetwork, VectorCookie, VectorConsole}

// keywords maps each vector to the terms that reveal it in advisory text.
var keywords = map[Vector][]string{
	VectorNetwork: {
		"network", "http", "request", "remote", "server", "url", "dns",
		"proxy", "socket", "ssrf", "fetch", "download", "redirect",
	},
	VectorCookie: {
		"cookie", "session", "csrf", "jwt", "token", "credential", "auth",
	},
	VectorConsole: {
		"console", "script", "xss", "cross-site", "injection", "escape",
		"sanitiz", "terminal", "ansi", "log ", "html",
	},
}

// urlRe matches links in advisory text.
var urlRe = regexp.MustCompile(`(?i)\b[a-z][a-z0-9+.-]*://\S+`)

// Match reports the vectors whose keywords occur in text, case-insensitively,
// in [Vectors] order. Links are ignored.
func Match(text string) []Vector {
	lower := strings.ToLower(urlRe.ReplaceAllString(text, " "))
	var out []Vector
	for _, v := range Vectors {
		if slices.ContainsFunc(keywords[v], func(k string) bool { return strings.Contains(lower, k) }) {
			out = append(out, v)
		}
	}
	return out
}

// Question is one yes/no question. A "yes" is the risky answer unless
// Reversed is set, in which case "no" is.
type Question struct {
	ID        string
	Text      string
	Reversed  bool
	FollowUps []*Question // asked only after a risky answer
}

// Positive reports whether answering yes to q signals risk.
func (q *Question) Positive(yes bool) bool {
	return yes != q.Reversed
}

// tree returns the fixed question tree rooted at vector v. Every call
// builds fresh values.
func tree(v Vector) *Question {
	switch v {
	case VectorNetwork:
		return &Question{
			ID:   "network",
			Text: "Does your project make or accept network requests involving the affected package?",
			FollowUps: []*Question{
				{
					ID:       "network.https",
					Text:     "Is all of that traffic sent over HTTPS?",
					Reversed: true,
				},
				{
					ID:   "network.websocket",
					Text: "Does your project use WebSockets?",
					FollowUps: []*Question{{
						ID:   "network.websocket.leak",
						Text: "Could data sent over those WebSockets reach a user it does not belong to?",
					}},
				},
			},
		}
	case VectorCookie:
		return &Question{
			ID:   "cookie",
			Text: "Does your project read or set cookies or session tokens?",
			FollowUps: []*Question{{
				ID:       "cookie.flags",
				Text:     "Are all of those cookies marked HttpOnly and Secure?",
				Reversed: true,
			}},
		}
	case VectorConsole:
		return &Question{
			ID:   "console",
			Text: "Does your project print or render untrusted input (browser, terminal or log console)?",
			FollowUps: []*Question{{
				ID:       "console.sanitize",
				Text:     "Is that input always sanitized or escaped before it is shown?",
				Reversed: true,
			}},
		}
	}
	return nil
}

// Interrogate builds the base questions for a set of advisories: one per
// vector matched by any summary or details text, never the same question
// twice.
func Interrogate(advisories []Advisory) []*Question {
	seen := make(map[Vector]bool, len(Vectors))
	for _, a := range advisories {
		for _, v := range Match(a.Summary + "\n" + a.Details) {
			seen[v] = true
		}
	}

	var out []*Question
	for _, v := range Vectors {
		if seen[v] {
			out = append(out, tree(v))
		}
	}
	return out
}
