package generator

import (
	"math/rand"
	"regexp"
	"strconv"
)

// MutationRule przekształca zdanie prawdziwe w fałszywe. Apply zwraca
// (wynik, true) przy dopasowaniu albo ("", false), gdy reguła nie pasuje.
type MutationRule struct {
	Name  string
	Apply func(sentence string) (string, bool)
}

// negacja czasownika: "jest" -> "nie jest" itd.
func negateVerb(verb string) MutationRule {
	pattern := regexp.MustCompile(`\b` + verb + `\b`)
	return MutationRule{
		Name: "negate_" + verb,
		Apply: func(sentence string) (string, bool) {
			if !pattern.MatchString(sentence) {
				return "", false
			}
			return pattern.ReplaceAllString(sentence, "nie "+verb), true
		},
	}
}

var digitsPattern = regexp.MustCompile(`\d+`)

// incrementNumbers zwiększa każdą liczbę w zdaniu o 10
var incrementNumbers = MutationRule{
	Name: "increment_number",
	Apply: func(sentence string) (string, bool) {
		if !digitsPattern.MatchString(sentence) {
			return "", false
		}
		mutated := digitsPattern.ReplaceAllStringFunc(sentence, func(match string) string {
			n, err := strconv.Atoi(match)
			if err != nil {
				return match
			}
			return strconv.Itoa(n + 10)
		})
		return mutated, true
	},
}

// defaultMutationRules w stałej kolejności; losowany jest tylko punkt startu
var defaultMutationRules = []MutationRule{
	negateVerb("jest"),
	negateVerb("ma"),
	negateVerb("można"),
	incrementNumbers,
}

// MutateToFalse przekształca zdanie tak, by było fałszywe. Reguły są
// próbowane po kolei od losowego punktu startu; pierwsza, która faktycznie
// zmienia zdanie, wygrywa. Gdy żadna nie pasuje, działa reguła ostateczna:
// jawne zaprzeczenie, które zawsze odróżnia wynik od oryginału.
func MutateToFalse(sentence string, rng *rand.Rand) string {
	start := rng.Intn(len(defaultMutationRules))
	for i := 0; i < len(defaultMutationRules); i++ {
		rule := defaultMutationRules[(start+i)%len(defaultMutationRules)]
		if mutated, ok := rule.Apply(sentence); ok && mutated != sentence {
			return mutated
		}
	}
	return "Nieprawdą jest, że " + sentence
}
