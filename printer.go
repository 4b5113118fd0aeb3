package crisp

import (
	"fmt"
	"strconv"
)

/* ---------- printable form ---------- */

// FormatValue renders v in its user-facing printable form:
//
//	Number  → shortest decimal, no fractional part when integral ("3", "4.5")
//	Boolean → "#t" / "#f"
//	None    → "" (a false `if` with no alternative prints as an empty line)
//	Builtin → debug form only; builtins are not a supported print case
func FormatValue(v Value) string {
	switch v.Tag {
	case VTNum:
		// 'f' with precision -1 is the shortest exact decimal: 4 → "4",
		// 4.5 → "4.5", 3.14159 → "3.14159".
		return strconv.FormatFloat(v.Data.(float64), 'f', -1, 64)
	case VTBool:
		if v.Data.(bool) {
			return "#t"
		}
		return "#f"
	case VTNone:
		return ""
	case VTBuiltin:
		return fmt.Sprintf("#<builtin %s>", v.Data.(*Builtin).Name)
	default:
		return "<unknown>"
	}
}
