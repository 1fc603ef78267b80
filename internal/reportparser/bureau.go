package reportparser

import "strings"

// BureauUnknown is returned when neither the filename nor the report
// text names a bureau.
const BureauUnknown = "Unknown Bureau"

var bureauNames = []struct {
	name    string
	markers []string
}{
	{"Experian", []string{"experian"}},
	{"Equifax", []string{"equifax"}},
	{"TransUnion", []string{"transunion", "trans union"}},
}

// DetectBureau identifies which bureau produced a report. The filename
// is checked first since exports are usually named after the bureau;
// the report text is the fallback.
func DetectBureau(filename, text string) string {
	lowerName := strings.ToLower(filename)
	for _, bureau := range bureauNames {
		for _, marker := range bureau.markers {
			if strings.Contains(lowerName, marker) {
				return bureau.name
			}
		}
	}

	lowerText := strings.ToLower(text)
	for _, bureau := range bureauNames {
		for _, marker := range bureau.markers {
			if strings.Contains(lowerText, marker) {
				return bureau.name
			}
		}
	}

	return BureauUnknown
}
