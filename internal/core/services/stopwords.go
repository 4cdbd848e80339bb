package services

// Stop-word sets for the lexical overlap check and the language
// heuristic. Deliberately small: they only need to cover the function
// words that dominate short questions, not a full linguistic inventory.

var polishStopwords = wordSet(
	"i", "w", "we", "na", "z", "ze", "do", "od", "po", "za", "o", "u",
	"się", "jest", "są", "być", "był", "była", "było", "będzie",
	"nie", "tak", "to", "ten", "ta", "te", "tej", "tym", "tego",
	"że", "czy", "jak", "co", "kto", "gdzie", "kiedy", "ile", "dlaczego",
	"który", "która", "które", "których", "jaki", "jaka", "jakie",
	"dla", "przez", "przy", "pod", "nad", "bez", "oraz", "ale", "lub",
	"albo", "aby", "żeby", "więc", "też", "także", "tylko", "już",
	"jeszcze", "może", "można", "mam", "ma", "mogę", "moje", "mój",
	"moja", "nas", "nam", "was", "wam", "ich", "jego", "jej",
)

var englishStopwords = wordSet(
	"the", "a", "an", "is", "are", "was", "were", "be", "been", "being",
	"do", "does", "did", "have", "has", "had", "will", "would", "can",
	"could", "should", "may", "might", "what", "when", "where", "who",
	"whom", "which", "how", "why", "i", "you", "he", "she", "it", "we",
	"they", "my", "your", "his", "her", "its", "our", "their", "this",
	"that", "these", "those", "of", "to", "in", "on", "at", "for",
	"with", "by", "from", "and", "or", "but", "not", "no", "about",
	"please", "me", "us", "them",
)

func wordSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}
