package tokenizer

// stopWords lists common English words that carry no ranking signal and are
// removed during tokenization.
var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {},
	"be": {}, "but": {}, "by": {}, "can": {}, "do": {}, "each": {},
	"for": {}, "from": {}, "had": {}, "has": {}, "have": {}, "he": {},
	"if": {}, "in": {}, "is": {}, "it": {}, "its": {}, "no": {},
	"not": {}, "of": {}, "on": {}, "or": {}, "so": {}, "that": {},
	"the": {}, "their": {}, "they": {}, "this": {}, "to": {}, "was": {},
	"were": {}, "what": {}, "when": {}, "where": {}, "which": {},
	"who": {}, "will": {}, "with": {},
}
