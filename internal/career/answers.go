package career

import "encoding/json"

type Answer struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// AnswerSet is an ordered label -> answer mapping. Iteration follows
// insertion order and re-setting a label keeps its position.
type AnswerSet struct {
	entries []Answer
}

// NewAnswerSet returns the category's fields with their default values.
// Unknown categories get an empty set.
func NewAnswerSet(c Category) AnswerSet {
	var set AnswerSet
	form, ok := defaultForms.Lookup(c)
	if !ok {
		return set
	}
	for _, field := range form.Fields {
		set.Set(field.Label, field.Default())
	}
	return set
}

func (a *AnswerSet) Set(label, value string) {
	for i := range a.entries {
		if a.entries[i].Label == label {
			a.entries[i].Value = value
			return
		}
	}
	a.entries = append(a.entries, Answer{Label: label, Value: value})
}

func (a AnswerSet) Get(label string) (string, bool) {
	for _, e := range a.entries {
		if e.Label == label {
			return e.Value, true
		}
	}
	return "", false
}

// Entries returns a copy of the answers in order.
func (a AnswerSet) Entries() []Answer {
	out := make([]Answer, len(a.entries))
	copy(out, a.entries)
	return out
}

func (a AnswerSet) Len() int {
	return len(a.entries)
}

func (a AnswerSet) Clone() AnswerSet {
	return AnswerSet{entries: a.Entries()}
}

func (a AnswerSet) MarshalJSON() ([]byte, error) {
	if a.entries == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(a.entries)
}

func (a *AnswerSet) UnmarshalJSON(data []byte) error {
	var entries []Answer
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	a.entries = nil
	for _, e := range entries {
		a.Set(e.Label, e.Value)
	}
	return nil
}
