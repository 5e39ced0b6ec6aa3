package models

import "time"

// Field represents a name/value pair on a Panel
type Field struct {
	Name   string
	Value  string
	Inline bool
}

// Panel represents one rendered help message. Panels are built per render and
// are never mutated after being sent.
type Panel struct {
	Title       string
	Description string
	Fields      []Field
	Timestamp   time.Time
	Footer      string
	Color       int
}

// AddField appends a field and returns the panel for chaining
func (p *Panel) AddField(name, value string, inline bool) *Panel {
	p.Fields = append(p.Fields, Field{Name: name, Value: value, Inline: inline})
	return p
}

// Field looks up a field by name
func (p *Panel) Field(name string) (Field, bool) {
	for _, f := range p.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// SelectorOption represents one entry of a Selector
type SelectorOption struct {
	Label       string
	Value       string
	Description string
}

// Selector represents a single-choice dropdown attached to a Panel
type Selector struct {
	CustomID    string
	Placeholder string
	Options     []SelectorOption
}

// Labels returns the offered labels in order
func (s *Selector) Labels() []string {
	labels := make([]string, 0, len(s.Options))
	for _, opt := range s.Options {
		labels = append(labels, opt.Label)
	}
	return labels
}
