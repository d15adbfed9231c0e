package services

import (
	"strings"
)

type allergyKeywords struct {
	tag      string
	keywords []string
}

// Synonyms spoken customers actually use, including English loanwords.
// Matching is substring containment on purpose: speech transcripts are
// noisy and a missed allergen is worse than an extra filter. Known false
// positives (조개 maps to both shellfish tags, 두부 triggers 대두) are
// accepted.
var allergyKeywordTable = []allergyKeywords{
	{"달걀", []string{"달걀", "계란", "에그"}},
	{"토마토", []string{"토마토"}},
	{"새우", []string{"새우", "쉬림프"}},
	{"조개류(굴)", []string{"굴", "조개", "굴조개"}},
	{"조개류(가리비)", []string{"가리비", "조개", "스캘럽"}},
	{"닭고기", []string{"닭", "닭고기", "치킨"}},
	{"땅콩", []string{"땅콩", "피넛"}},
	{"쇠고기", []string{"소고기", "쇠고기", "비프"}},
	{"돼지고기", []string{"돼지고기", "돼지", "포크"}},
	{"호두", []string{"호두", "월넛"}},
	{"밀", []string{"밀", "글루텐", "밀가루"}},
	{"대두", []string{"대두", "콩", "두부"}},
	{"우유", []string{"우유", "유제품", "밀크", "치즈"}},
}

// DetectAllergens scans a voice transcript for allergy mentions and
// returns the matched tags in table order, each at most once.
func DetectAllergens(transcript string) []string {
	lower := strings.ToLower(transcript)

	detected := []string{}
	for _, entry := range allergyKeywordTable {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				detected = append(detected, entry.tag)
				break
			}
		}
	}
	return detected
}
