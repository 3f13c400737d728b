// Copyright (c) 2026 Nitrokit Team
// Nitrokit - developer automation toolkit
// This source code is licensed under the MIT license found in the LICENSE file.

package translate

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Language is a translation target.
type Language struct {
	Code string
	Name string
	Flag string
}

func (l Language) String() string { return fmt.Sprintf("%s %s (%s)", l.Flag, l.Name, l.Code) }

var languageTable = map[string]Language{
	"tr": {"tr", "Turkish", "🇹🇷"},
	"en": {"en", "English", "🇺🇸"},
	"es": {"es", "Spanish", "🇪🇸"},
	"fr": {"fr", "French", "🇫🇷"},
	"de": {"de", "German", "🇩🇪"},
	"it": {"it", "Italian", "🇮🇹"},
	"pt": {"pt", "Portuguese", "🇵🇹"},
	"ru": {"ru", "Russian", "🇷🇺"},
	"ja": {"ja", "Japanese", "🇯🇵"},
	"ko": {"ko", "Korean", "🇰🇷"},
	"zh": {"zh", "Chinese", "🇨🇳"},
	"ar": {"ar", "Arabic", "🇸🇦"},
	"hi": {"hi", "Hindi", "🇮🇳"},
	"nl": {"nl", "Dutch", "🇳🇱"},
	"sv": {"sv", "Swedish", "🇸🇪"},
	"no": {"no", "Norwegian", "🇳🇴"},
	"da": {"da", "Danish", "🇩🇰"},
	"fi": {"fi", "Finnish", "🇫🇮"},
	"pl": {"pl", "Polish", "🇵🇱"},
	"cs": {"cs", "Czech", "🇨🇿"},
	"hu": {"hu", "Hungarian", "🇭🇺"},
	"ro": {"ro", "Romanian", "🇷🇴"},
	"bg": {"bg", "Bulgarian", "🇧🇬"},
	"hr": {"hr", "Croatian", "🇭🇷"},
	"sk": {"sk", "Slovak", "🇸🇰"},
	"sl": {"sl", "Slovenian", "🇸🇮"},
	"et": {"et", "Estonian", "🇪🇪"},
	"lv": {"lv", "Latvian", "🇱🇻"},
	"lt": {"lt", "Lithuanian", "🇱🇹"},
	"uk": {"uk", "Ukrainian", "🇺🇦"},
	"he": {"he", "Hebrew", "🇮🇱"},
	"th": {"th", "Thai", "🇹🇭"},
	"vi": {"vi", "Vietnamese", "🇻🇳"},
	"id": {"id", "Indonesian", "🇮🇩"},
	"ms": {"ms", "Malay", "🇲🇾"},
	"az": {"az", "Azerbaijani", "🇦🇿"},
	"bs": {"bs", "Bosnian", "🇧🇦"},
	"ur": {"ur", "Urdu", "🇵🇰"},
	"uz": {"uz", "Uzbek", "🇺🇿"},
}

// DefaultLanguages are targeted when the messages directory has no
// translations yet.
var DefaultLanguages = []string{"tr", "es", "fr", "de", "it"}

// LanguageFor looks up code. Unknown codes use the code as name and a
// globe as flag.
func LanguageFor(code string) Language {
	if l, ok := languageTable[code]; ok {
		return l
	}
	return Language{Code: code, Name: code, Flag: "🌍"}
}

// ParseLanguages turns "ja, ko,zh" into languages, dropping blanks and
// duplicates.
func ParseLanguages(csv string) []Language {
	seen := map[string]bool{}
	var out []Language
	for _, code := range strings.Split(csv, ",") {
		code = strings.TrimSpace(code)
		if code == "" || seen[code] {
			continue
		}
		seen[code] = true
		out = append(out, LanguageFor(code))
	}
	return out
}

// DiscoverLanguages lists the <code>.json files in dir other than source,
// sorted by code. It falls back to DefaultLanguages when there are none.
func DiscoverLanguages(dir, source string) ([]Language, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("messages directory does not exist: %s: %w", dir, err)
	}
	var langs []Language
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || filepath.Ext(name) != ".json" || name == source {
			continue
		}
		langs = append(langs, LanguageFor(strings.TrimSuffix(name, ".json")))
	}
	if len(langs) == 0 {
		for _, code := range DefaultLanguages {
			langs = append(langs, LanguageFor(code))
		}
		return langs, nil
	}
	sort.Slice(langs, func(i, j int) bool { return langs[i].Code < langs[j].Code })
	return langs, nil
}
