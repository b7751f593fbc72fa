package services

import (
	"regexp"
)

// FilterResult reports whether a message violates content policy and why.
type FilterResult struct {
	Blocked  bool
	Category string
	Reason   string
}

type blockedPattern struct {
	category string
	pattern  *regexp.Regexp
	reason   string
}

// Ordered list; the first matching pattern wins and short-circuits.
var blockedPatterns = []blockedPattern{
	{
		category: "illegal_financial",
		pattern:  regexp.MustCompile(`(?i)\b(money\s*launder|launder\s*money|tax\s*evasion|evade\s*tax|insider\s*trading|ponzi|pyramid\s*scheme|counterfeit\s*(money|currency))\b`),
		reason:   "illegal financial activity",
	},
	{
		category: "academic_dishonesty",
		pattern:  regexp.MustCompile(`(?i)\b(cheat(ing)?\s+(on|in)\s+(an?\s+)?(exam|test|quiz)|exam\s*cheating|do\s+my\s+homework\s+for\s+me)\b`),
		reason:   "academic dishonesty",
	},
	{
		category: "theft",
		pattern:  regexp.MustCompile(`(?i)\b(steal(ing)?|shoplift(ing)?|rob(bing|bery)?|break\s+into\s+(a\s+)?(house|car|home))\b`),
		reason:   "theft",
	},
	{
		category: "fraud",
		pattern:  regexp.MustCompile(`(?i)\b(scam(ming)?|defraud|fraud(ulent)?|fake\s+(id|identity|documents?)|identity\s+theft|phishing)\b`),
		reason:   "fraud",
	},
	{
		category: "cyberattack",
		pattern:  regexp.MustCompile(`(?i)\b(hack(ing)?\s+(into|someone|accounts?|passwords?)|ddos|denial.of.service|malware|ransomware|keylogger|crack\s+passwords?)\b`),
		reason:   "cyberattacks",
	},
	{
		category: "spam",
		pattern:  regexp.MustCompile(`(?i)\b(spam(ming)?\s+(bot|email|message)s?|mass\s+unsolicited|bulk\s+spam)\b`),
		reason:   "spam",
	},
	{
		category: "plagiarism",
		pattern:  regexp.MustCompile(`(?i)\b(plagiari(se|ze|sm)|bypass\s+plagiarism|pass\s+off\s+.*\s+as\s+my\s+own)\b`),
		reason:   "plagiarism",
	},
	{
		category: "harm_weapons",
		pattern:  regexp.MustCompile(`(?i)\b(make\s+(a\s+)?(bomb|weapon|explosive)|build\s+(a\s+)?(gun|bomb)|hurt\s+(someone|people)|kill(ing)?\s+(someone|people))\b`),
		reason:   "harm or weapons",
	},
	{
		category: "illegal_substances",
		pattern:  regexp.MustCompile(`(?i)\b(buy|sell|make|cook|synthesi(se|ze))\s+(illegal\s+)?(drugs?|meth|cocaine|heroin|fentanyl)\b`),
		reason:   "illegal substances",
	},
	{
		category: "privacy_violation",
		pattern:  regexp.MustCompile(`(?i)\b(stalk(ing)?|track\s+(someone|a\s+person)|spy\s+on|find\s+someone'?s?\s+(address|location|phone)|dox(x)?(ing)?)\b`),
		reason:   "privacy violations or stalking",
	},
	{
		category: "explicit_content",
		pattern:  regexp.MustCompile(`(?i)\b(porn(ography)?|nsfw|nude(s)?|explicit\s+(content|images?)|deepfake\s+nudes?)\b`),
		reason:   "explicit content",
	},
}

// ContentFilter screens messages against policy before any search work runs.
// It is pure and side-effect-free.
type ContentFilter interface {
	Classify(message string) FilterResult
}

type contentFilter struct{}

func NewContentFilter() ContentFilter {
	return &contentFilter{}
}

func (f *contentFilter) Classify(message string) FilterResult {
	for _, bp := range blockedPatterns {
		if bp.pattern.MatchString(message) {
			return FilterResult{Blocked: true, Category: bp.category, Reason: bp.reason}
		}
	}
	return FilterResult{}
}
