package classify

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/osaa-analytics/unga-readout/internal/domain/entities"
)

// maxFuzzyDistance bounds edit distance for fuzzy roster matching. Values
// above this are treated as no match at all.
const maxFuzzyDistance = 2

// Classifier maps free-text entity names to readout classifications using
// the AU roster and the recognized-state list. It is a pure function holder;
// all state is the static rosters.
type Classifier struct {
	auSet       map[string]string // lowercased name -> canonical
	aliasSet    map[string]string // lowercased alias -> canonical AU name
	partnerSet  map[string]string
	stateSet    map[string]string // lowercased non-AU recognized state -> canonical
	nameToCode   map[string]string
	fuzzyOrder   []fuzzyCandidate
	mentionOrder []fuzzyCandidate
	auCanonical  map[string]bool
}

type fuzzyCandidate struct {
	lower     string
	canonical string
	african   bool
}

// New builds a classifier from the static rosters.
func New() *Classifier {
	c := &Classifier{
		auSet:       make(map[string]string),
		aliasSet:    make(map[string]string),
		partnerSet:  make(map[string]string),
		stateSet:    make(map[string]string),
		nameToCode:  make(map[string]string),
		auCanonical: make(map[string]bool),
	}

	for _, name := range auMembers {
		c.auSet[strings.ToLower(name)] = name
		c.auCanonical[name] = true
		c.fuzzyOrder = append(c.fuzzyOrder, fuzzyCandidate{strings.ToLower(name), name, true})
	}

	// Aliases follow the roster in fuzzy precedence, sorted for determinism.
	aliasKeys := make([]string, 0, len(auAliases))
	for alias := range auAliases {
		aliasKeys = append(aliasKeys, alias)
	}
	sort.Strings(aliasKeys)
	for _, alias := range aliasKeys {
		canonical := auAliases[alias]
		c.aliasSet[strings.ToLower(alias)] = canonical
		c.fuzzyOrder = append(c.fuzzyOrder, fuzzyCandidate{strings.ToLower(alias), canonical, true})
	}

	for _, name := range partnerEntities {
		c.partnerSet[strings.ToLower(name)] = name
	}

	// Non-AU recognized states, sorted for deterministic fuzzy precedence.
	codes := make([]string, 0, len(countryCodes))
	for code := range countryCodes {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	seen := make(map[string]bool)
	for _, code := range codes {
		name := countryCodes[code]
		if _, exists := c.nameToCode[strings.ToLower(name)]; !exists {
			c.nameToCode[strings.ToLower(name)] = code
		}
		if c.auCanonical[name] || seen[name] {
			continue
		}
		seen[name] = true
		c.stateSet[strings.ToLower(name)] = name
		c.fuzzyOrder = append(c.fuzzyOrder, fuzzyCandidate{strings.ToLower(name), name, false})
	}

	for _, cand := range c.fuzzyOrder {
		c.mentionOrder = append(c.mentionOrder, fuzzyCandidate{foldToWords(cand.lower), cand.canonical, cand.african})
	}
	sort.SliceStable(c.mentionOrder, func(i, j int) bool {
		return len(c.mentionOrder[i].lower) > len(c.mentionOrder[j].lower)
	})

	return c
}

// Result carries the classification verdict plus the canonical name matched.
type Result struct {
	Classification entities.Classification
	CanonicalName  string
}

// Classify returns exactly one of AfricanMemberState, DevelopmentPartner or
// Unspecified for the given free-text entity name. Exact matches beat fuzzy
// matches; fuzzy ties resolve by shortest edit distance, then first-in-roster.
func (c *Classifier) Classify(name string) Result {
	// Partner entities like "President of the General Assembly" overlap the
	// honorific prefixes, so match them before title stripping.
	if canonical, ok := c.partnerSet[strings.ToLower(strings.TrimSpace(name))]; ok {
		return Result{Classification: entities.DevelopmentPartner, CanonicalName: canonical}
	}

	normalized := c.Normalize(name)
	if normalized == "" {
		return Result{Classification: entities.Unspecified}
	}

	lower := strings.ToLower(normalized)

	if canonical, ok := c.aliasSet[lower]; ok {
		return Result{Classification: entities.AfricanMemberState, CanonicalName: canonical}
	}
	if canonical, ok := c.auSet[lower]; ok {
		return Result{Classification: entities.AfricanMemberState, CanonicalName: canonical}
	}
	if canonical, ok := c.partnerSet[lower]; ok {
		return Result{Classification: entities.DevelopmentPartner, CanonicalName: canonical}
	}
	if canonical, ok := c.stateSet[lower]; ok {
		return Result{Classification: entities.DevelopmentPartner, CanonicalName: canonical}
	}

	if match, ok := c.fuzzyMatch(lower); ok {
		cls := entities.DevelopmentPartner
		if match.african {
			cls = entities.AfricanMemberState
		}
		return Result{Classification: cls, CanonicalName: match.canonical}
	}

	return Result{Classification: entities.Unspecified}
}

// IsAfricanMember reports whether the name resolves to an AU member state.
func (c *Classifier) IsAfricanMember(name string) bool {
	return c.Classify(name).Classification == entities.AfricanMemberState
}

// CountryCode returns the ISO3 code for a recognized country name.
func (c *Classifier) CountryCode(name string) string {
	res := c.Classify(name)
	if res.CanonicalName == "" {
		return ""
	}
	return c.nameToCode[strings.ToLower(res.CanonicalName)]
}

// CountryName returns the canonical country name for an ISO3 code.
func (c *Classifier) CountryName(code string) string {
	return countryCodes[strings.ToUpper(code)]
}

// AUMembers returns a copy of the AU roster.
func (c *Classifier) AUMembers() []string {
	out := make([]string, len(auMembers))
	copy(out, auMembers)
	return out
}

// Mentions extracts the canonical name of every recognized country referenced
// in free text, in order of first appearance. Longer names match first so
// "Democratic Republic of the Congo" is not also reported as "Congo".
func (c *Classifier) Mentions(text string) []string {
	haystack := " " + foldToWords(text) + " "

	type hit struct {
		pos       int
		canonical string
	}
	var hits []hit
	seen := make(map[string]bool)

	for _, cand := range c.mentionOrder {
		needle := " " + cand.lower + " "
		for from := 0; ; {
			i := strings.Index(haystack[from:], needle)
			if i < 0 {
				break
			}
			pos := from + i
			if !seen[cand.canonical] {
				seen[cand.canonical] = true
				hits = append(hits, hit{pos, cand.canonical})
			}
			// Blank the match so shorter names cannot re-match inside it.
			haystack = haystack[:pos+1] + strings.Repeat(" ", len(cand.lower)) + haystack[pos+1+len(cand.lower):]
			from = pos + 1
		}
	}

	sort.Slice(hits, func(i, j int) bool { return hits[i].pos < hits[j].pos })
	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = h.canonical
	}
	return out
}

// foldToWords lowercases text and replaces punctuation, including
// apostrophes, with spaces. Roster names pass through the same fold, so
// "Côte d'Ivoire" and possessives like "Ghana's" still line up.
func foldToWords(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		switch {
		case r == 'ʼ' || r == '’':
			b.WriteRune(' ')
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r > 127:
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Normalize trims the name, collapses whitespace and strips leading
// diplomatic titles and honorifics.
func (c *Classifier) Normalize(name string) string {
	normalized := strings.Join(strings.Fields(strings.TrimSpace(name)), " ")

	// Strip honorific prefixes repeatedly ("H.E. Mr. ..." carries two).
	for stripped := true; stripped; {
		stripped = false
		lower := strings.ToLower(normalized)
		for _, prefix := range honorifics {
			if strings.HasPrefix(lower, prefix+" ") {
				normalized = strings.TrimSpace(normalized[len(prefix):])
				stripped = true
				break
			}
		}
	}

	return normalized
}

// fuzzyMatch finds the roster entry with the smallest edit distance within
// maxFuzzyDistance. Ties resolve to the earliest candidate: AU members first
// in declared order, then aliases, then recognized states.
func (c *Classifier) fuzzyMatch(lower string) (fuzzyCandidate, bool) {
	best := fuzzyCandidate{}
	bestDist := maxFuzzyDistance + 1
	found := false

	for _, cand := range c.fuzzyOrder {
		dist := levenshtein.ComputeDistance(lower, cand.lower)
		if dist < bestDist {
			bestDist = dist
			best = cand
			found = true
		}
	}

	if !found || bestDist > maxFuzzyDistance {
		return fuzzyCandidate{}, false
	}
	return best, true
}
