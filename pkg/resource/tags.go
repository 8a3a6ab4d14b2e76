package resource

// Tags is the tag list of a resource.
type Tags []Tag

// Get returns the first tag with the given key.
// The boolean is false when the resource has no such tag.
func (t Tags) Get(key string) (Tag, bool) {
	for _, tag := range t {
		if tag.Key == key {
			return tag, true
		}
	}
	return Tag{}, false
}

// Value returns the value of the tag with the given key.
func (t Tags) Value(key string) (string, bool) {
	tag, ok := t.Get(key)
	return tag.Value, ok
}

// Name returns the value of the "Name" tag.
func (t Tags) Name() (string, bool) {
	return t.Value("Name")
}
