package compare

import (
	"strconv"
	"strings"
)

// Message formats a failed verdict the way the run log records it:
//
//	Iteration 7 from 2500, State: "color_o_s1c_add_alpha_sa_da_min", GENERIC: attachments 1,3
//
// It returns "" for a verdict that did not fail.
func (v Verdict) Message(cur, total uint64, state string) string {
	if v.OK || v.Degenerate || v.Stage == StageNone {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("Iteration ")
	sb.WriteString(strconv.FormatUint(cur, 10))
	sb.WriteString(" from ")
	sb.WriteString(strconv.FormatUint(total, 10))
	sb.WriteString(", State: ")
	sb.WriteString(strconv.Quote(state))
	sb.WriteString(", ")
	sb.WriteString(v.Stage.String())
	sb.WriteString(": attachment")
	if len(v.Attachments) == 1 {
		sb.WriteByte(' ')
	} else {
		sb.WriteString("s ")
	}
	for n, a := range v.Attachments {
		if n > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(a))
	}
	return sb.String()
}
