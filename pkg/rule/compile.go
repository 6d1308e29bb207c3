package rule

import (
	"fmt"
	"time"

	"github.com/dlclark/regexp2"
)

// MatchTimeout bounds a single pattern evaluation.
const MatchTimeout = 100 * time.Millisecond

// Compile compiles a rule pattern. RE2 syntax is tried first; patterns that
// need lookaround or other Perl features fall back to the default mode.
func Compile(pattern string) (*regexp2.Regexp, error) {
	re, err := regexp2.Compile(pattern, regexp2.RE2)
	if err != nil {
		re, err = regexp2.Compile(pattern, regexp2.None)
		if err != nil {
			return nil, fmt.Errorf("failed to compile pattern %q: %w", pattern, err)
		}
	}
	re.MatchTimeout = MatchTimeout
	return re, nil
}
