package speech

import (
	"strings"

	"golang.org/x/text/language"
)

// whisperLanguages maps the language names Whisper reports in verbose
// transcriptions to ISO 639-1 codes. The same set is accepted for synthesis.
var whisperLanguages = map[string]string{
	"afrikaans":   "af",
	"arabic":      "ar",
	"armenian":    "hy",
	"azerbaijani": "az",
	"belarusian":  "be",
	"bengali":     "bn",
	"bosnian":     "bs",
	"bulgarian":   "bg",
	"catalan":     "ca",
	"chinese":     "zh",
	"croatian":    "hr",
	"czech":       "cs",
	"danish":      "da",
	"dutch":       "nl",
	"english":     "en",
	"estonian":    "et",
	"finnish":     "fi",
	"french":      "fr",
	"galician":    "gl",
	"german":      "de",
	"greek":       "el",
	"gujarati":    "gu",
	"hebrew":      "he",
	"hindi":       "hi",
	"hungarian":   "hu",
	"icelandic":   "is",
	"indonesian":  "id",
	"italian":     "it",
	"japanese":    "ja",
	"kannada":     "kn",
	"kazakh":      "kk",
	"korean":      "ko",
	"latvian":     "lv",
	"lithuanian":  "lt",
	"macedonian":  "mk",
	"malay":       "ms",
	"malayalam":   "ml",
	"maori":       "mi",
	"marathi":     "mr",
	"nepali":      "ne",
	"norwegian":   "no",
	"persian":     "fa",
	"polish":      "pl",
	"portuguese":  "pt",
	"punjabi":     "pa",
	"romanian":    "ro",
	"russian":     "ru",
	"serbian":     "sr",
	"slovak":      "sk",
	"slovenian":   "sl",
	"spanish":     "es",
	"swahili":     "sw",
	"swedish":     "sv",
	"tagalog":     "tl",
	"tamil":       "ta",
	"telugu":      "te",
	"thai":        "th",
	"turkish":     "tr",
	"ukrainian":   "uk",
	"urdu":        "ur",
	"vietnamese":  "vi",
	"welsh":       "cy",
}

// DefaultLanguages returns the ISO 639-1 codes both adapters handle.
func DefaultLanguages() []string {
	codes := make([]string, 0, len(whisperLanguages))
	for _, c := range whisperLanguages {
		codes = append(codes, c)
	}
	return codes
}

// BaseCode reduces a catalog code such as "zh-CN" to its base language
// ("zh"). ok is false when code is not a well-formed BCP 47 tag.
func BaseCode(code string) (string, bool) {
	tag, err := language.Parse(code)
	if err != nil {
		return "", false
	}
	base, _ := tag.Base()
	return base.String(), true
}

// NormalizeLanguage turns a Whisper language name or a language tag into an
// ISO 639-1 code, or "" when it is not recognised.
func NormalizeLanguage(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}
	if code, ok := whisperLanguages[s]; ok {
		return code
	}
	if base, ok := BaseCode(s); ok {
		for _, c := range whisperLanguages {
			if c == base {
				return base
			}
		}
	}
	return ""
}
