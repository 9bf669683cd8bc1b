package output

import "strings"

// ResultLabels are the labels handlers put before a computed value.
var ResultLabels = []string{
	"Tenglama",
	"O'zgaruvchi",
	"Yechim",
	"Natija",
	"Ifoda",
	"Taqribiy qiymat",
	"Soddalashtirilgan",
	"Limit natijasi",
}

// ErrorPrefixes start every handler and loop error message.
var ErrorPrefixes = []string{
	"Xato:",
	"XATO:",
	"Tenglamada xato:",
	"Integral xatosi:",
	"Hosila xatosi:",
	"Grafik xatosi:",
	"Dastur xatosi:",
	"Limit formati xato.",
}

// SuccessLines are complete replies that mark a finished action.
var SuccessLines = []string{
	"Grafik yakunlandi.",
	"Dastur tugatildi.",
	"Dastur to'xtatildi.",
}

// ClassifyLine returns the semantic type of one reply line. For
// SemanticLabel it also returns the label and the value after ": ".
func ClassifyLine(line string) (kind SemanticType, label, value string) {
	for _, prefix := range ErrorPrefixes {
		if strings.HasPrefix(line, prefix) {
			return SemanticError, "", ""
		}
	}
	for _, s := range SuccessLines {
		if line == s {
			return SemanticSuccess, "", ""
		}
	}
	if strings.HasPrefix(line, "Grafik chizilmoqda:") {
		return SemanticInfo, "", ""
	}
	if l, v, ok := strings.Cut(line, ": "); ok {
		for _, known := range ResultLabels {
			if l == known {
				return SemanticLabel, l, v
			}
		}
	}
	return SemanticResult, "", ""
}
