package reportparser

import (
	"regexp"
	"strings"
)

// creditorPattern is one entry of the ordered recognizer table. Patterns
// are tried in priority order and the first match wins, so specific
// furnisher aliases must precede the generic catch-alls at the bottom.
type creditorPattern struct {
	re        *regexp.Regexp
	canonical string
}

var creditorPatterns = []creditorPattern{
	// Card issuers and their run-together OCR variants.
	{regexp.MustCompile(`(?i)\bDISCOVER\s*(?:CARD|BANK|FIN)?\b`), "DISCOVER"},
	{regexp.MustCompile(`(?i)\bDISCOVERCARD\b`), "DISCOVER"},
	{regexp.MustCompile(`(?i)\bAMERICAN\s*EXPRESS\b|\bAMEX\b`), "AMERICAN EXPRESS"},
	{regexp.MustCompile(`(?i)\bCAP(?:ITAL)?\s*ONE\s*(?:AUTO|N\.?A\.?|BANK)?\b`), "CAPITAL ONE"},
	{regexp.MustCompile(`(?i)\bJPMCB\b|\bCHASE\s*(?:CARD|BANK|AUTO)?\b`), "CHASE"},
	{regexp.MustCompile(`(?i)\bBANK\s*OF\s*AMERICA\b|\bBK\s*OF\s*AMER\b|\bBOFA\b`), "BANK OF AMERICA"},
	{regexp.MustCompile(`(?i)\bCITI(?:BANK|CARDS)?\b|\bCBNA\b`), "CITIBANK"},
	{regexp.MustCompile(`(?i)\bWELLS\s*FARGO\b|\bWF\s*(?:BANK|CRD\s*SVC)\b`), "WELLS FARGO"},
	{regexp.MustCompile(`(?i)\bSYNCB\b|\bSYNCHRONY\s*(?:BANK)?\b`), "SYNCHRONY BANK"},
	{regexp.MustCompile(`(?i)\bCOMENITY\s*(?:BANK|CAPITAL)?\b|\bCOMENITYCB\b`), "COMENITY"},
	{regexp.MustCompile(`(?i)\bCREDIT\s*ONE\s*BANK\b`), "CREDIT ONE BANK"},
	{regexp.MustCompile(`(?i)\bUS\s*BANK\b|\bU\.S\.\s*BANK\b`), "US BANK"},
	{regexp.MustCompile(`(?i)\bPNC\s*(?:BANK)?\b`), "PNC BANK"},
	{regexp.MustCompile(`(?i)\bTD\s*BANK\b`), "TD BANK"},
	{regexp.MustCompile(`(?i)\bBARCLAYS?\s*(?:BANK)?\b`), "BARCLAYS"},
	{regexp.MustCompile(`(?i)\bGOLDMAN\s*SACHS\b|\bGS\s*BANK\b`), "GOLDMAN SACHS"},

	// Student loan servicers.
	{regexp.MustCompile(`(?i)\bDEPT\.?\s*OF\s*ED(?:UCATION)?\s*/?\s*NELNET\b|\bDEPTEDNELNET\b`), "DEPT OF EDUCATION/NELNET"},
	{regexp.MustCompile(`(?i)\bNELNET\b`), "NELNET"},
	{regexp.MustCompile(`(?i)\bNAVIENT\b`), "NAVIENT"},
	{regexp.MustCompile(`(?i)\bMOHELA\b`), "MOHELA"},
	{regexp.MustCompile(`(?i)\bAIDVANTAGE\b`), "AIDVANTAGE"},
	{regexp.MustCompile(`(?i)\bGREAT\s*LAKES\b`), "GREAT LAKES"},

	// Auto lenders.
	{regexp.MustCompile(`(?i)\bGM\s*FINANCIAL\b`), "GM FINANCIAL"},
	{regexp.MustCompile(`(?i)\bSANTANDER\s*(?:CONSUMER)?\b`), "SANTANDER"},
	{regexp.MustCompile(`(?i)\bALLY\s*(?:FINANCIAL|BANK)?\b`), "ALLY"},
	{regexp.MustCompile(`(?i)\bTOYOTA\s*MOTOR\s*CREDIT\b|\bTMCC\b`), "TOYOTA MOTOR CREDIT"},
	{regexp.MustCompile(`(?i)\bAMERICAN\s*HONDA\s*FINANCE\b|\bHONDA\s*FIN\w*\b`), "HONDA FINANCIAL"},
	{regexp.MustCompile(`(?i)\bWESTLAKE\s*(?:FINANCIAL|SERVICES)?\b`), "WESTLAKE FINANCIAL"},
	{regexp.MustCompile(`(?i)\bCARMAX\s*AUTO\s*FINANCE\b`), "CARMAX AUTO FINANCE"},

	// Debt buyers and collection agencies.
	{regexp.MustCompile(`(?i)\bPORTFOLIO\s*RECOV\w*\b`), "PORTFOLIO RECOVERY"},
	{regexp.MustCompile(`(?i)\bMIDLAND\s*(?:CREDIT|FUNDING)?\b`), "MIDLAND CREDIT"},
	{regexp.MustCompile(`(?i)\bLVNV\s*FUNDING\b`), "LVNV FUNDING"},
	{regexp.MustCompile(`(?i)\bJEFFERSON\s*CAPITAL\b`), "JEFFERSON CAPITAL"},
	{regexp.MustCompile(`(?i)\bENHANCED\s*RECOVERY\b|\bERC\b`), "ENHANCED RECOVERY"},
	{regexp.MustCompile(`(?i)\bCONVERGENT\s*(?:OUTSOURCING)?\b`), "CONVERGENT"},
	{regexp.MustCompile(`(?i)\bIC\s*SYSTEM\b`), "IC SYSTEM"},

	// Medical furnishers.
	{regexp.MustCompile(`(?i)\b[A-Z][A-Z .&'-]*(?:MEDICAL|HOSPITAL|HEALTH(?:CARE)?|CLINIC|PHYSICIANS?|RADIOLOGY|EMERGENCY)\s*[A-Z .&'-]*\b`), ""},

	// Generic credit unions: keep the on-report name as canonical.
	{regexp.MustCompile(`(?i)\b[A-Z][A-Z0-9 .&'-]+\s(?:FCU|EFCU|EMPCU|CU)\b`), ""},
}

// fieldLabelRe guards the recognizer against label lines whose value text
// happens to contain a creditor-like token ("Account type", "Status").
var fieldLabelRe = regexp.MustCompile(`(?i)^\s*(?:account\s+(?:name|number|no\.?|#|type|status|history)|creditor\s+(?:name|type)|current\s+status|status|balance(?:\s+owed)?|high\s+balance|credit\s+limit|monthly\s+payment|past\s+due|payment\s+(?:history|status)|date\s+(?:opened|reported|closed)|dofd|terms|responsibility|remarks?|comments?|original\s+creditor)\s*:`)

// labelBoundaryRe cuts the on-report label at the first metadata token:
// two or more spaces, a colon, or a known field keyword.
var labelBoundaryRe = regexp.MustCompile(`\s{2,}|\t|:|(?i)\b(?:account|acct|status|balance|opened|reported|type|terms|payment|credit\s+limit|high\s+balance)\b`)

// matchCreditor runs the ordered pattern table against a line. It
// returns the canonical creditor name and the on-report label, or
// ok=false when the line matches nothing or is a field-label line.
func matchCreditor(line string) (canonical, label string, ok bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || fieldLabelRe.MatchString(trimmed) {
		return "", "", false
	}

	for _, pattern := range creditorPatterns {
		loc := pattern.re.FindStringIndex(trimmed)
		if loc == nil {
			continue
		}
		label = fullLabel(trimmed, loc[0])
		canonical = pattern.canonical
		if canonical == "" {
			// Catch-all entries keep the normalized on-report name.
			canonical = strings.ToUpper(strings.TrimSpace(trimmed[loc[0]:loc[1]]))
		}
		return canonical, label, true
	}
	return "", "", false
}

// fullLabel captures the report's own wording for the creditor, from the
// match start up to the first metadata token, so letters can cite the
// exact label while internal logic uses the canonical alias.
func fullLabel(line string, start int) string {
	rest := line[start:]
	if loc := labelBoundaryRe.FindStringIndex(rest); loc != nil && loc[0] > 0 {
		rest = rest[:loc[0]]
	}
	return strings.TrimSpace(rest)
}
