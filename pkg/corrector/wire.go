package corrector

import (
	"fmt"

	"github.com/bkga-dev/bkga/pkg/types"
)

// DefaultMessage is used when the corrector omits an issue message.
const DefaultMessage = "문장 오류"

type analyzeRequest struct {
	Text string `json:"text"`
}

type analyzeResponse struct {
	Issues []wireIssue `json:"issues"`
}

// wireIssue accepts both the documented field names and their short aliases.
type wireIssue struct {
	Start      *int   `json:"start"`
	End        *int   `json:"end"`
	Message    string `json:"message"`
	Msg        string `json:"msg"`
	Suggestion string `json:"suggestion"`
	Fix        string `json:"fix"`
	Severity   string `json:"severity"`
}

// toIssue converts a wire issue. Both offsets are required.
func (w wireIssue) toIssue() (types.Issue, error) {
	if w.Start == nil || w.End == nil {
		return types.Issue{}, fmt.Errorf("%w: issue without start and end offsets", ErrMalformed)
	}
	issue := types.Issue{
		Span:     types.Span{Start: *w.Start, End: *w.End},
		Message:  firstNonEmpty(w.Message, w.Msg, DefaultMessage),
		Severity: types.ParseSeverity(w.Severity),
	}
	if s := firstNonEmpty(w.Suggestion, w.Fix); s != "" {
		issue.Suggestion = types.Suggest(s)
	}
	issue.Category = types.ExtractCategory(issue.Message)
	return issue, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
