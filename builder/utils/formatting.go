package utils

import (
	"fmt"
	"time"

	"github.com/Serg-Ale/LXNDR-PORTIFOLIO/builder/models"
)

var monthsEN = [...]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

var monthsPT = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// FormatDate renders date in the long form readers of locale expect:
// "March 1, 2024" or "1 de março de 2024".
func FormatDate(date time.Time, locale models.Locale) string {
	if locale == models.LocalePTBR {
		return fmt.Sprintf("%d de %s de %d", date.Day(), monthsPT[date.Month()-1], date.Year())
	}
	return fmt.Sprintf("%s %d, %d", monthsEN[date.Month()-1], date.Day(), date.Year())
}
