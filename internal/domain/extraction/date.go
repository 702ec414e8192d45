package extraction

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d{1,2})[/-](\d{1,2})[/-](\d{4})`),
	regexp.MustCompile(`(\d{4})[/-](\d{1,2})[/-](\d{1,2})`),
	regexp.MustCompile(`(?i)(\d{1,2})\s+(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\s+(\d{4})`),
}

var monthNames = map[string]string{
	"jan": "01", "feb": "02", "mar": "03", "apr": "04",
	"may": "05", "jun": "06", "jul": "07", "aug": "08",
	"sep": "09", "oct": "10", "nov": "11", "dec": "12",
}

// extractDate pulls a transaction date out of the combined email text,
// falling back to the given current time when nothing matches. The output is
// always "YYYY-MM-DD".
func extractDate(text string, now time.Time) string {
	for i, re := range datePatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		switch i {
		case 0: // DD/MM/YYYY
			return fmt.Sprintf("%s-%s-%s", m[3], pad2(m[2]), pad2(m[1]))
		case 1: // YYYY/MM/DD
			return fmt.Sprintf("%s-%s-%s", m[1], pad2(m[2]), pad2(m[3]))
		case 2: // DD Month YYYY
			month, ok := monthNames[strings.ToLower(m[2])]
			if !ok {
				month = "01"
			}
			return fmt.Sprintf("%s-%s-%s", m[3], month, pad2(m[1]))
		}
	}
	return now.Format("2006-01-02")
}

func pad2(s string) string {
	if len(s) < 2 {
		return "0" + s
	}
	return s
}
