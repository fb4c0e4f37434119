package gantt

import "strings"

// dateLayoutReplacer maps the YYYY-MM-DD style tokens used in gantt
// source to Go time layouts. Longer tokens sit first so YYYY wins
// over YY.
var dateLayoutReplacer = strings.NewReplacer(
	"YYYY", "2006",
	"YY", "06",
	"MM", "01",
	"DD", "02",
	"HH", "15",
	"mm", "04",
	"ss", "05",
)

// axisLayoutReplacer maps strftime-style axis format codes to Go time
// layouts.
var axisLayoutReplacer = strings.NewReplacer(
	"%Y", "2006",
	"%y", "06",
	"%m", "01",
	"%d", "02",
	"%H", "15",
	"%M", "04",
	"%S", "05",
	"%b", "Jan",
	"%B", "January",
	"%a", "Mon",
	"%A", "Monday",
)

func toDateLayout(s string) string { return dateLayoutReplacer.Replace(s) }

func toAxisLayout(s string) string { return axisLayoutReplacer.Replace(s) }
