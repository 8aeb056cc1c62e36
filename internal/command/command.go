package command

import (
	"strconv"
	"strings"
)

type Action int

const (
	ActionUnknown Action = iota
	ActionAdd
	ActionRemove
)

// Command is the structured form of one user utterance. Quantity is
// meaningful only for ActionAdd and is always >= 1 there.
type Command struct {
	Action   Action
	Item     string
	Quantity int
}

var addVerbs = map[string]bool{
	"add":  true,
	"buy":  true,
	"get":  true,
	"need": true,
	"put":  true,
}

var removeVerbs = map[string]bool{
	"remove": true,
	"delete": true,
	"cancel": true,
	"drop":   true,
}

var stopWords = map[string]bool{
	"a":      true,
	"an":     true,
	"the":    true,
	"some":   true,
	"of":     true,
	"to":     true,
	"my":     true,
	"please": true,
	"list":   true,
	"cart":   true,
	"from":   true,
	"and":    true,
	"i":      true,
	"we":     true,
}

// Parse converts free-form text into a Command. The first recognized verb
// decides the intent; for additions the first integer token is taken as the
// quantity (default 1). Anything that cannot be resolved to an intent with a
// non-empty item yields ActionUnknown. Parse never fails on malformed input.
func Parse(text string) Command {
	tokens := strings.Fields(strings.TrimSpace(text))
	if len(tokens) == 0 {
		return Command{Action: ActionUnknown}
	}

	action := ActionUnknown
	verbIdx := -1
	for i, tok := range tokens {
		low := strings.ToLower(tok)
		if addVerbs[low] {
			action = ActionAdd
			verbIdx = i
			break
		}
		if removeVerbs[low] {
			action = ActionRemove
			verbIdx = i
			break
		}
	}
	if action == ActionUnknown {
		return Command{Action: ActionUnknown}
	}

	quantity := 1
	qtyIdx := -1
	if action == ActionAdd {
		for i, tok := range tokens {
			if i == verbIdx {
				continue
			}
			if n, err := strconv.Atoi(tok); err == nil {
				if n > 0 {
					quantity = n
				}
				qtyIdx = i
				break
			}
		}
	}

	var itemTokens []string
	for i, tok := range tokens {
		if i == verbIdx || i == qtyIdx {
			continue
		}
		if stopWords[strings.ToLower(tok)] {
			continue
		}
		itemTokens = append(itemTokens, tok)
	}
	item := strings.TrimSpace(strings.Join(itemTokens, " "))
	if item == "" {
		return Command{Action: ActionUnknown}
	}

	if action == ActionRemove {
		return Command{Action: ActionRemove, Item: item}
	}
	return Command{Action: ActionAdd, Item: item, Quantity: quantity}
}
