package config

// Entry is a single key/value pair of a configuration section.
type Entry struct {
	Key   string
	Value string
}

// Section is a named, ordered list of entries.
type Section struct {
	Name    string
	Entries []Entry
}

// Get returns the value stored under key and whether it was present.
func (s Section) Get(key string) (string, bool) {
	for _, e := range s.Entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return "", false
}

// RunConfiguration is the parsed INI file: sections in file order, keys in
// section order. It is built once per invocation and never mutated.
type RunConfiguration struct {
	sections []Section
	// source is the text the configuration was parsed from, nil when it was
	// built in code.
	source []byte
}

// Empty returns a configuration with no sections.
func Empty() *RunConfiguration {
	return &RunConfiguration{}
}

// New builds a configuration from sections. The slice is copied.
func New(sections ...Section) *RunConfiguration {
	c := &RunConfiguration{sections: make([]Section, 0, len(sections))}
	for _, s := range sections {
		entries := make([]Entry, len(s.Entries))
		copy(entries, s.Entries)
		c.sections = append(c.sections, Section{Name: s.Name, Entries: entries})
	}
	return c
}

// Sections returns a copy of the sections in file order.
func (c *RunConfiguration) Sections() []Section {
	if c == nil {
		return nil
	}
	return New(c.sections...).sections
}

// Section looks up a section by name.
func (c *RunConfiguration) Section(name string) (Section, bool) {
	if c == nil {
		return Section{}, false
	}
	for _, s := range c.sections {
		if s.Name == name {
			return s, true
		}
	}
	return Section{}, false
}

// Get returns the value of key in section.
func (c *RunConfiguration) Get(section, key string) (string, bool) {
	s, ok := c.Section(section)
	if !ok {
		return "", false
	}
	return s.Get(key)
}

// Len is the number of sections.
func (c *RunConfiguration) Len() int {
	if c == nil {
		return 0
	}
	return len(c.sections)
}

// IsEmpty reports whether the configuration holds no sections.
func (c *RunConfiguration) IsEmpty() bool {
	return c.Len() == 0
}
