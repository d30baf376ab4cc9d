package risk

import "github.com/ZakaHaceCosas/FuckingNode-sub000/pkg/audit"

// Answer records one response.
type Answer struct {
	Question *Question
	Yes      bool
	Positive bool
}

// Session walks a question set forward once. Base questions come first;
// a risky answer queues the question's follow-ups behind the ones already
// pending. Nothing is asked twice and no answer can be revised.
type Session struct {
	queue   []*Question
	answers []Answer
}

// NewSession starts a session over the base questions.
func NewSession(questions []*Question) *Session {
	return &Session{queue: append([]*Question(nil), questions...)}
}

// Next returns the pending question, or false when the session is done.
func (s *Session) Next() (*Question, bool) {
	if len(s.queue) == 0 {
		return nil, false
	}
	return s.queue[0], true
}

// Answer answers the pending question. It reports false if none is pending.
func (s *Session) Answer(yes bool) bool {
	q, ok := s.Next()
	if !ok {
		return false
	}
	s.queue = s.queue[1:]

	positive := q.Positive(yes)
	s.answers = append(s.answers, Answer{Question: q, Yes: yes, Positive: positive})
	if positive {
		s.queue = append(s.queue, q.FollowUps...)
	}
	return true
}

// Answers returns the answers given so far, in order.
func (s *Session) Answers() []Answer {
	return append([]Answer(nil), s.answers...)
}

// Asker poses a question to the respondent.
type Asker func(q *Question) (yes bool, err error)

// Run asks every question in order. An asker error (an interrupted prompt)
// stops the session; the answers given so far are kept.
func (s *Session) Run(ask Asker) error {
	for {
		q, ok := s.Next()
		if !ok {
			return nil
		}
		yes, err := ask(q)
		if err != nil {
			return err
		}
		s.Answer(yes)
	}
}

// Assess scores the answers given so far against the report's aggregate
// severity.
func (s *Session) Assess(sev audit.Severity, strict bool) Assessment {
	a := Assessment{Risk: sev, Strict: strict}
	for _, ans := range s.answers {
		if ans.Positive {
			a.Positives++
		} else {
			a.Negatives++
		}
	}
	return a
}
