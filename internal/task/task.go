package task

import (
	"fmt"
	"strings"
)

// Task identifies an evaluation scenario. It decides which record fields are
// semantically the query, the supporting document, and the ground truth, and
// which prompt template applies.
type Task string

const (
	Summarization        Task = "summarization"
	QuestionAnswering    Task = "question_answering"
	Continuation         Task = "continuation"
	HallucinatedModified Task = "hallucinated_modified"
)

// All lists the supported tasks in a stable order.
var All = []Task{Summarization, QuestionAnswering, Continuation, HallucinatedModified}

// Record is one dataset entry. The field set varies by task, so records are
// kept as a plain string mapping and validated at the extraction boundary.
type Record map[string]string

// UnsupportedError reports a task identifier outside the supported set.
type UnsupportedError struct {
	Task string
}

func (e *UnsupportedError) Error() string {
	names := make([]string, 0, len(All))
	for _, t := range All {
		names = append(names, string(t))
	}
	return fmt.Sprintf("task: unsupported task %q (supported: %s)", e.Task, strings.Join(names, ", "))
}

// Parse validates a task identifier.
func Parse(s string) (Task, error) {
	t := Task(strings.TrimSpace(s))
	switch t {
	case Summarization, QuestionAnswering, Continuation, HallucinatedModified:
		return t, nil
	default:
		return "", &UnsupportedError{Task: s}
	}
}

// Query returns the record field holding the query text for this task.
func (t Task) Query(rec Record) (string, error) {
	switch t {
	case Summarization:
		return field(t, rec, "text")
	case QuestionAnswering:
		return field(t, rec, "questions")
	case Continuation:
		return field(t, rec, "beginning")
	case HallucinatedModified:
		return field(t, rec, "newsBeginning")
	default:
		return "", &UnsupportedError{Task: string(t)}
	}
}

// Document returns the record field holding the supporting document text.
func (t Task) Document(rec Record) (string, error) {
	switch t {
	case Summarization:
		return field(t, rec, "text")
	case QuestionAnswering:
		return field(t, rec, "news1")
	case Continuation:
		return field(t, rec, "beginning")
	case HallucinatedModified:
		return field(t, rec, "newsBeginning")
	default:
		return "", &UnsupportedError{Task: string(t)}
	}
}

// GroundTruth returns the record field holding the reference answer.
func (t Task) GroundTruth(rec Record) (string, error) {
	switch t {
	case Summarization:
		return field(t, rec, "summary")
	case QuestionAnswering:
		return field(t, rec, "answers")
	case Continuation:
		return field(t, rec, "continuing")
	case HallucinatedModified:
		return field(t, rec, "hallucinatedMod")
	default:
		return "", &UnsupportedError{Task: string(t)}
	}
}

// DatasetKey maps a task to its dataset group in the evaluation file. Only
// summarization and question_answering have dataset groups; the other tasks
// cannot be run end to end even though field extraction supports them.
func (t Task) DatasetKey() (string, error) {
	switch t {
	case QuestionAnswering:
		return "questanswer_1doc", nil
	case Summarization:
		return "event_summary", nil
	default:
		return "", &UnsupportedError{Task: string(t)}
	}
}

func field(t Task, rec Record, name string) (string, error) {
	v, ok := rec[name]
	if !ok {
		return "", fmt.Errorf("task: record missing field %q required by task %q", name, t)
	}
	return v, nil
}
