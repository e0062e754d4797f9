package record

import "strings"

// Links maps an author or translator display name to a profile URL.
// Iteration order is insertion order, which is the order of the file.
type Links struct {
	names []string
	urls  map[string]string
}

func NewLinks() *Links {
	return &Links{urls: make(map[string]string)}
}

// Set adds or replaces the URL for name.
func (l *Links) Set(name, url string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	if _, ok := l.urls[name]; !ok {
		l.names = append(l.names, name)
	}
	l.urls[name] = strings.TrimSpace(url)
}

func (l *Links) Get(name string) (string, bool) {
	u, ok := l.urls[name]
	return u, ok
}

func (l *Links) Has(name string) bool {
	_, ok := l.urls[name]
	return ok
}

// Delete removes name and reports whether it was present.
func (l *Links) Delete(name string) bool {
	if _, ok := l.urls[name]; !ok {
		return false
	}
	delete(l.urls, name)
	for i, n := range l.names {
		if n == name {
			l.names = append(l.names[:i], l.names[i+1:]...)
			break
		}
	}
	return true
}

// Names returns the names in file order.
func (l *Links) Names() []string {
	return append([]string(nil), l.names...)
}

func (l *Links) Len() int { return len(l.names) }

// Populate adds an empty link for every author and individual translator of records
// that the table does not know yet. It returns the names it added.
func (l *Links) Populate(records []Record) []string {
	var added []string
	add := func(name string) {
		if name == "" || l.Has(name) {
			return
		}
		l.Set(name, "")
		added = append(added, name)
	}
	for _, r := range records {
		add(strings.TrimSpace(r.Author))
		for _, t := range SplitNames(r.Translator) {
			add(t)
		}
	}
	return added
}
