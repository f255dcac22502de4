package suite

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ldconformance/ld-test-harness/framework/helpers"

	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
)

// Type tags with special meaning to the loader and to the execution protocol. Manifests may
// spell them with any prefix (for instance "mf:Manifest" or "jld:PositiveEvaluationTest").
const (
	TypeManifest               = "Manifest"
	TypePositiveEvaluationTest = "PositiveEvaluationTest"
	TypeNegativeEvaluationTest = "NegativeEvaluationTest"
)

// DefaultRemoteBaseURL is the location that the suite's documents claim to be published at.
const DefaultRemoteBaseURL = "http://json-ld.org/test-suite"

// DefaultManifestFile is the name of the root manifest inside a suite directory.
const DefaultManifestFile = "manifest.jsonld"

// Loader reads a suite's manifests. The zero value is usable: RootDir defaults to the
// directory of the root manifest and RemoteBaseURL to DefaultRemoteBaseURL.
type Loader struct {
	RootDir       string
	RemoteBaseURL string
}

// LoadManifestFile loads the manifest at path, and every manifest it includes, with default
// settings.
func LoadManifestFile(path string) (*Index, error) {
	return Loader{}.Load(path)
}

// Load reads the root manifest and returns the index of all tests it declares.
func (l Loader) Load(path string) (*Index, error) {
	if l.RootDir == "" {
		l.RootDir = filepath.Dir(path)
	}
	if l.RemoteBaseURL == "" {
		l.RemoteBaseURL = DefaultRemoteBaseURL
	}
	data, err := ReadJSON(path)
	if err != nil {
		return nil, &ManifestLoadError{Path: path, Err: err}
	}
	m, err := newManifest(&l, data, path)
	if err != nil {
		return nil, err
	}
	index := NewIndex()
	if err := m.Load(index); err != nil {
		return nil, err
	}
	return index, nil
}

// Manifest is one manifest document, either the root one or one included from its sequence.
type Manifest struct {
	BaseIRI  string
	Name     string
	Sequence []ldvalue.Value
	Path     string

	loader *Loader
}

func newManifest(loader *Loader, data ldvalue.Value, path string) (*Manifest, error) {
	if data.Type() != ldvalue.ObjectType {
		return nil, &ManifestLoadError{Path: path, Err: errors.New("manifest is not a JSON object")}
	}
	m := &Manifest{
		BaseIRI: data.GetByKey("baseIri").StringValue(),
		Name:    data.GetByKey("name").StringValue(),
		Path:    path,
		loader:  loader,
	}
	switch seq := data.GetByKey("sequence"); seq.Type() {
	case ldvalue.NullType:
	case ldvalue.ArrayType:
		for i := 0; i < seq.Count(); i++ {
			m.Sequence = append(m.Sequence, seq.GetByIndex(i))
		}
	default:
		return nil, &ManifestLoadError{Path: path, Err: errors.New(`"sequence" is not an array`)}
	}
	return m, nil
}

// Dir is the directory that relative references in this manifest are resolved against.
func (m *Manifest) Dir() string { return filepath.Dir(m.Path) }

// Load walks the manifest's sequence in order, registering each test under its type tags and
// recursing into included manifests.
func (m *Manifest) Load(index *Index) error {
	for i, entry := range m.Sequence {
		origin := m.Path
		if entry.Type() == ldvalue.StringType {
			origin = filepath.Join(m.Dir(), filepath.FromSlash(entry.StringValue()))
			loaded, err := ReadJSON(origin)
			if err != nil {
				return &ManifestLoadError{Path: origin, Err: err}
			}
			entry = loaded
		}
		if entry.Type() != ldvalue.ObjectType {
			return &ManifestLoadError{Path: origin, Err: fmt.Errorf("sequence entry %d is not an object", i)}
		}
		if HasType(stringValues(entry.GetByKey("@type")), TypeManifest) {
			nested, err := newManifest(m.loader, entry, origin)
			if err != nil {
				return err
			}
			if err := nested.Load(index); err != nil {
				return err
			}
			continue
		}
		tc, err := newTestCase(m, entry, origin)
		if err != nil {
			return &ManifestLoadError{Path: origin, Err: err}
		}
		index.add(tc)
	}
	return nil
}

// HasType returns true if any of the tags names the given type, with or without a prefix.
func HasType(tags []string, name string) bool {
	for _, tag := range tags {
		if localName(tag) == name {
			return true
		}
	}
	return false
}

func localName(tag string) string {
	if i := strings.LastIndexAny(tag, ":#/"); i >= 0 {
		return tag[i+1:]
	}
	return tag
}

// stringValues reads a property that may hold either a single string or an array of them.
func stringValues(v ldvalue.Value) []string {
	switch v.Type() {
	case ldvalue.StringType:
		return []string{v.StringValue()}
	case ldvalue.ArrayType:
		ret := make([]string, 0, v.Count())
		for i := 0; i < v.Count(); i++ {
			if s := v.GetByIndex(i); s.Type() == ldvalue.StringType {
				ret = append(ret, s.StringValue())
			}
		}
		return ret
	}
	return nil
}

// Index holds every loaded test, grouped by type tag.
type Index struct {
	types  []string
	byType map[string][]*TestCase
}

func NewIndex() *Index {
	return &Index{byType: make(map[string][]*TestCase)}
}

func (x *Index) add(tc *TestCase) {
	for _, tag := range tc.Types {
		if _, ok := x.byType[tag]; !ok {
			x.types = append(x.types, tag)
		}
		x.byType[tag] = append(x.byType[tag], tc)
	}
}

// Tests returns the tests declared with exactly this tag, in registration order.
func (x *Index) Tests(tag string) []*TestCase {
	return append([]*TestCase(nil), x.byType[tag]...)
}

// TestsOfAnyType returns the tests declared with any of the tags. A test that carries more
// than one of them is returned once, at the position of the first tag that matched it.
func (x *Index) TestsOfAnyType(tags ...string) []*TestCase {
	var ret []*TestCase
	for _, tag := range tags {
		ret = helpers.AppendUnique(ret, x.byType[tag]...)
	}
	return ret
}

// Types returns every tag seen, in the order it was first seen.
func (x *Index) Types() []string {
	return append([]string(nil), x.types...)
}

// Count returns the number of (test, tag) pairs in the index.
func (x *Index) Count() int {
	n := 0
	for _, tests := range x.byType {
		n += len(tests)
	}
	return n
}
