package providers

import (
	"strings"
)

// LocalPhone convierte "+82 10-1234-5678" a "010-1234-5678".
// Otros formatos se devuelven sin cambios.
func LocalPhone(p string) string {
	p = strings.TrimSpace(p)
	if rest, ok := strings.CutPrefix(p, "+82 "); ok {
		return "0" + strings.TrimPrefix(rest, "0")
	}
	return p
}

// BirthDate une año ("1990") y día ("0131", "01-31") en "1990-01-31".
// Sin año devuelve "01-31"; sin día devuelve "".
func BirthDate(year, day string) string {
	day = strings.ReplaceAll(strings.TrimSpace(day), "-", "")
	if len(day) != 4 {
		return ""
	}
	md := day[:2] + "-" + day[2:]
	year = strings.TrimSpace(year)
	if len(year) != 4 {
		return md
	}
	return year + "-" + md
}
