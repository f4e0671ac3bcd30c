package quiz

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Subtopic is a named question grouping inside a topic.
type Subtopic struct {
	Name        string
	Description string
	Questions   []*Question
}

// Topic groups subtopics under a top-level category name.
type Topic struct {
	Name      string
	Subtopics []Subtopic
}

// Tree is the topic hierarchy built once from the flat store payload.
// Topics and subtopics are sorted by name so that menu indices are
// deterministic regardless of payload order.
type Tree struct {
	Topics []Topic
}

// BuildTree groups the flat subtopic list into a sorted topic tree.
// Questions keep their payload order; pointers are shared so that a
// learn-text fill-in is visible everywhere the question appears.
func BuildTree(groups []SubtopicGroup) *Tree {
	byTopic := make(map[string][]Subtopic)
	for i := range groups {
		g := &groups[i]
		qs := make([]*Question, len(g.Questions))
		for j := range g.Questions {
			qs[j] = &g.Questions[j]
		}
		byTopic[g.Topic] = append(byTopic[g.Topic], Subtopic{
			Name:        g.Subtopic,
			Description: g.Description,
			Questions:   qs,
		})
	}

	names := make([]string, 0, len(byTopic))
	for name := range byTopic {
		names = append(names, name)
	}
	sort.Strings(names)

	t := &Tree{Topics: make([]Topic, 0, len(names))}
	for _, name := range names {
		subs := byTopic[name]
		sort.Slice(subs, func(i, j int) bool { return subs[i].Name < subs[j].Name })
		t.Topics = append(t.Topics, Topic{Name: name, Subtopics: subs})
	}
	return t
}

// DisplayName turns a snake_case store name into a menu label.
func DisplayName(name string) string {
	words := strings.Split(name, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
