package textproc

func wordSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// stopwordsByLocale holds the fixed stop-word lists per supported locale.
// The lists are part of the normalization configuration: changing them
// changes the feature space, so they are versioned with the code, not
// loaded at runtime.
var stopwordsByLocale = map[string]map[string]struct{}{
	"en": wordSet(
		"a", "about", "after", "again", "all", "am", "an", "and", "any",
		"are", "as", "at", "be", "because", "been", "before", "being",
		"but", "by", "did", "do", "does", "doing", "for", "from", "had",
		"has", "have", "having", "he", "her", "here", "hers", "him", "his",
		"how", "i", "if", "in", "into", "is", "it", "its", "just", "me",
		"more", "most", "my", "no", "nor", "not", "of", "off", "on", "once",
		"only", "or", "other", "our", "ours", "out", "over", "own", "s",
		"same", "she", "should", "so", "some", "such", "t", "than", "that",
		"the", "their", "theirs", "them", "then", "there", "these", "they",
		"this", "those", "through", "to", "too", "under", "until", "up",
		"was", "we", "were", "what", "when", "where", "which", "while",
		"who", "whom", "why", "will", "with", "would", "you", "your", "yours",
	),
	"es": wordSet(
		"a", "al", "algo", "como", "con", "de", "del", "donde", "el",
		"ella", "ellas", "ellos", "en", "era", "es", "esa", "ese", "eso",
		"esta", "este", "esto", "fue", "ha", "hay", "la", "las", "le",
		"lo", "los", "mas", "me", "mi", "mis", "muy", "no", "nos", "o",
		"para", "pero", "por", "que", "se", "si", "sin", "son", "su",
		"sus", "te", "tu", "un", "una", "uno", "y", "ya", "yo",
	),
}

// stemmerLanguages maps a stop-word locale to the snowball language name
var stemmerLanguages = map[string]string{
	"en": "english",
	"es": "spanish",
}
