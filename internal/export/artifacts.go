package export

// ArtifactSet is an insertion-ordered collection of named export blobs.
// Re-putting an existing name replaces its bytes but keeps its original
// position, so two documents resolving to the same order identifier end up as
// one artifact with the later document's content. That collision behavior is
// deliberate; callers wanting disambiguation must rename before inserting.
type ArtifactSet struct {
	names []string
	data  map[string][]byte
}

func NewArtifactSet() *ArtifactSet {
	return &ArtifactSet{data: make(map[string][]byte)}
}

// Put inserts or replaces an artifact. Last write wins.
func (s *ArtifactSet) Put(name string, blob []byte) {
	if _, ok := s.data[name]; !ok {
		s.names = append(s.names, name)
	}
	s.data[name] = blob
}

// Get returns the artifact bytes, or nil when absent.
func (s *ArtifactSet) Get(name string) []byte {
	return s.data[name]
}

// Names returns the artifact names in insertion order.
func (s *ArtifactSet) Names() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Len returns the number of artifacts.
func (s *ArtifactSet) Len() int {
	return len(s.names)
}
