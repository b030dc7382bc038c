package models

import (
	"net/url"
	"strconv"
	"strings"
)

// minTopicsLen is the shortest trimmed topics value worth sending.
const minTopicsLen = 3

// ExamOptions are the optional parameters of an exam generation request.
// Zero values mean "not set". The options only live for one generation call.
type ExamOptions struct {
	NQuestions int
	Topics     string
}

// Query encodes the options as generation query parameters. A non-positive
// question count is omitted; topics are omitted unless the trimmed value is
// at least three characters long. Short input is not an error.
func (o ExamOptions) Query() url.Values {
	params := url.Values{}

	if o.NQuestions > 0 {
		params.Set("n_questions", strconv.Itoa(o.NQuestions))
	}

	if topics := strings.TrimSpace(o.Topics); len(topics) >= minTopicsLen {
		params.Set("topics", topics)
	}

	return params
}
