package player

import (
	"strconv"
	"strings"

	"videoplayer-service/internal/catalog"
)

// Results is an ordered search result. Selections are 1-based indexes
// into Videos.
type Results struct {
	Query  string
	Videos []*catalog.Video
}

// SearchByTitle returns the unflagged videos whose title contains term,
// ignoring case, sorted by title.
func (p *Player) SearchByTitle(term string) Results {
	needle := strings.ToLower(term)
	return p.search(term, func(v *catalog.Video) bool {
		return strings.Contains(strings.ToLower(v.Title()), needle)
	})
}

// SearchByTag returns the unflagged videos carrying tag, ignoring case.
// A tag that does not start with '#' never matches.
func (p *Player) SearchByTag(tag string) Results {
	if !strings.HasPrefix(tag, "#") {
		return Results{Query: tag}
	}
	return p.search(tag, func(v *catalog.Video) bool {
		for _, t := range v.Tags() {
			if strings.EqualFold(t, tag) {
				return true
			}
		}
		return false
	})
}

func (p *Player) search(query string, match func(*catalog.Video) bool) Results {
	res := Results{Query: query}
	for _, v := range p.catalog.All() {
		if !v.Flagged() && match(v) {
			res.Videos = append(res.Videos, v)
		}
	}
	sortByTitle(res.Videos)
	return res
}

// Selection is the outcome of parsing a result number.
type Selection int

const (
	SelectionValid Selection = iota
	SelectionInvalidFormat
	SelectionOutOfRange
)

// ParseSelection reads a 1-based result number. On success it returns the
// 0-based index.
func ParseSelection(input string, count int) (int, Selection) {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, SelectionInvalidFormat
	}
	if n < 1 || n > count {
		return 0, SelectionOutOfRange
	}
	return n - 1, SelectionValid
}

// PlaySelected plays result number input from res. Malformed or out of
// range input is declined silently with ok == false, as is a result that
// was flagged after the search ran.
func (p *Player) PlaySelected(res Results, input string) (pb Playback, ok bool) {
	idx, sel := ParseSelection(input, len(res.Videos))
	if sel != SelectionValid {
		return Playback{}, false
	}
	v := res.Videos[idx]
	if v.Flagged() {
		return Playback{}, false
	}
	return p.start(v), true
}
