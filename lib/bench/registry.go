package bench

import (
	"fmt"
	"github.com/ValentinKolb/mediaser/lib/codec"
	"github.com/ValentinKolb/mediaser/lib/serializer"
	"github.com/puzpuzpuz/xsync/v3"
	"sort"
)

// Features describe a serializer the way the result tables group them
type Features struct {
	// Format is the wire format: "json" or "binary"
	Format string
	// Graph is the kind of object graph supported, "flat-tree" for graphs without shared references
	Graph string
	// Class is the implementation style: "manual", "databind" or "reflection"
	Class string
}

// String returns the features in the form format/graph/class
func (f Features) String() string {
	return fmt.Sprintf("%s/%s/%s", f.Format, f.Graph, f.Class)
}

// Factory creates a serializer configured with the given codec options
type Factory func(opts ...codec.Option) serializer.ISerializer

// Entry is a registered serializer
type Entry struct {
	Name     string
	Features Features
	Factory  Factory
}

// Registry maps serializer names to entries. It is safe for concurrent use.
type Registry struct {
	entries *xsync.MapOf[string, Entry]
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{entries: xsync.NewMapOf[string, Entry]()}
}

// DefaultRegistry returns a registry holding every serializer of the serializer package
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, e := range []Entry{
		{
			Name:     serializer.NameJSONManual,
			Features: Features{Format: "json", Graph: "flat-tree", Class: "manual"},
			Factory:  serializer.NewJSONManualSerializer,
		},
		{
			Name:     serializer.NameBinaryManual,
			Features: Features{Format: "binary", Graph: "flat-tree", Class: "manual"},
			Factory:  serializer.NewBinaryManualSerializer,
		},
		{
			Name:     serializer.NameJSONDatabind,
			Features: Features{Format: "json", Graph: "flat-tree", Class: "databind"},
			Factory:  serializer.NewJSONDatabindSerializer,
		},
		{
			Name:     serializer.NameGOB,
			Features: Features{Format: "binary", Graph: "flat-tree", Class: "reflection"},
			Factory:  serializer.NewGOBSerializer,
		},
	} {
		// names are unique, Register cannot fail here
		_ = r.Register(e)
	}
	return r
}

// Register adds an entry. Registering a name twice is an error.
func (r *Registry) Register(e Entry) error {
	if e.Name == "" || e.Factory == nil {
		return fmt.Errorf("invalid entry %q: name and factory are required", e.Name)
	}
	if _, loaded := r.entries.LoadOrStore(e.Name, e); loaded {
		return fmt.Errorf("serializer %q is already registered", e.Name)
	}
	return nil
}

// Get returns the entry registered under name
func (r *Registry) Get(name string) (Entry, bool) {
	return r.entries.Load(name)
}

// Names returns all registered names in lexical order
func (r *Registry) Names() []string {
	names := make([]string, 0, r.entries.Size())
	r.entries.Range(func(name string, _ Entry) bool {
		names = append(names, name)
		return true
	})
	sort.Strings(names)
	return names
}

// Entries returns all entries ordered by name
func (r *Registry) Entries() []Entry {
	names := r.Names()
	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		if e, ok := r.entries.Load(name); ok {
			entries = append(entries, e)
		}
	}
	return entries
}
