package quiz

// Coord addresses one subtopic by its zero-based position in the sorted
// tree. Structured coordinates avoid the string-parsing fragility of
// dotted "1.2" keys.
type Coord struct {
	Topic int
	Sub   int
}

// Selection is the set of subtopics currently ticked in the topic menu.
type Selection map[Coord]struct{}

// NewSelection returns an empty selection.
func NewSelection() Selection {
	return make(Selection)
}

// Has reports whether the coordinate is selected.
func (s Selection) Has(c Coord) bool {
	_, ok := s[c]
	return ok
}

// Toggle flips the selection state of a single subtopic.
func (s Selection) Toggle(c Coord) {
	if s.Has(c) {
		delete(s, c)
	} else {
		s[c] = struct{}{}
	}
}

// ToggleTopic flips every subtopic of topic ti: if all are selected they
// are all deselected, otherwise all are selected.
func (s Selection) ToggleTopic(t *Tree, ti int) {
	subs := t.Topics[ti].Subtopics
	all := true
	for si := range subs {
		if !s.Has(Coord{ti, si}) {
			all = false
			break
		}
	}
	for si := range subs {
		c := Coord{ti, si}
		if all {
			delete(s, c)
		} else {
			s[c] = struct{}{}
		}
	}
}

// Mark is the aggregate checkbox mark for a topic: 'X' when every
// subtopic is selected, '~' when some are, ' ' when none are.
func (s Selection) Mark(t *Tree, ti int) byte {
	subs := t.Topics[ti].Subtopics
	selected := 0
	for si := range subs {
		if s.Has(Coord{ti, si}) {
			selected++
		}
	}
	switch {
	case len(subs) > 0 && selected == len(subs):
		return 'X'
	case selected > 0:
		return '~'
	default:
		return ' '
	}
}

// Pool returns the concatenation of the questions in every selected
// subtopic, in subtopic order within topic order. Free-form questions
// are skipped: the quiz flow answers by option letter.
func (s Selection) Pool(t *Tree) []*Question {
	var pool []*Question
	for ti := range t.Topics {
		for si := range t.Topics[ti].Subtopics {
			if !s.Has(Coord{ti, si}) {
				continue
			}
			for _, q := range t.Topics[ti].Subtopics[si].Questions {
				if q.MultipleChoice() {
					pool = append(pool, q)
				}
			}
		}
	}
	return pool
}
