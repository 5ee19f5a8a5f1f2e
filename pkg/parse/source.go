package parse

// Source describes a piece of source code.
type Source struct {
	Name string
	Code string
	// Whether the source came from a file. Only used to decide how to show
	// the name.
	IsFile bool
}

// SourceForTest returns a Source used for testing.
func SourceForTest(code string) Source {
	return Source{Name: "[test]", Code: code}
}
