package suite

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ldconformance/ld-test-harness/framework/helpers"
	"github.com/ldconformance/ld-test-harness/framework/opt"

	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
)

// Fixture reference properties of a test entry.
const (
	PropertyInput   = "input"
	PropertyContext = "context"
	PropertyFrame   = "frame"
	PropertyExpect  = "expect"
	PropertyOption  = "option"
)

// TestCase is one test declared in a manifest. It is not modified after loading, except for
// the expected and actual values of its most recent run.
type TestCase struct {
	// ID is the manifest's base IRI, the manifest's file name and the test's local @id.
	ID string
	// Name is the manifest name followed by the local ID without its "#t" marker.
	Name  string
	Types []string
	// Base is the remote URL of the test's input document.
	Base string

	manifest *Manifest
	data     ldvalue.Value
	dir      string
	positive bool
	negative bool

	expected ldvalue.Value
	actual   ldvalue.Value
}

func newTestCase(m *Manifest, data ldvalue.Value, origin string) (*TestCase, error) {
	localID := data.GetByKey("@id").StringValue()
	if localID == "" {
		return nil, errors.New(`test entry has no "@id"`)
	}
	types := helpers.AppendUnique(nil, stringValues(data.GetByKey("@type"))...)
	if len(types) == 0 {
		return nil, fmt.Errorf(`test %q has no "@type"`, localID)
	}
	return &TestCase{
		// the "#" of the local ID is kept so that the ID is an IRI into the manifest file
		ID:       m.BaseIRI + filepath.Base(m.Path) + localID,
		Name:     strings.TrimSpace(m.Name + " " + shortID(localID)),
		Types:    types,
		Base:     m.BaseIRI + data.GetByKey(PropertyInput).StringValue(),
		manifest: m,
		data:     data,
		dir:      filepath.Dir(origin),
		positive: HasType(types, TypePositiveEvaluationTest),
		negative: HasType(types, TypeNegativeEvaluationTest),
	}, nil
}

func shortID(localID string) string {
	return strings.TrimPrefix(strings.TrimPrefix(localID, "#"), "t")
}

func (tc *TestCase) IsPositive() bool { return tc.positive }

func (tc *TestCase) IsNegative() bool { return tc.negative }

func (tc *TestCase) Manifest() *Manifest { return tc.manifest }

// Data returns the test entry as it was declared.
func (tc *TestCase) Data() ldvalue.Value { return tc.data }

// Property returns a string-valued property of the test entry, such as "purpose".
func (tc *TestCase) Property(name string) opt.Maybe[string] {
	if v := tc.data.GetByKey(name); v.Type() == ldvalue.StringType {
		return opt.Some(v.StringValue())
	}
	return opt.None[string]()
}

// DeclaredOptions returns the test's "option" object, or a null value if it has none.
func (tc *TestCase) DeclaredOptions() ldvalue.Value {
	if o := tc.data.GetByKey(PropertyOption); o.Type() == ldvalue.ObjectType {
		return o
	}
	return ldvalue.Null()
}

// Expected returns the expected value computed by the most recent run.
func (tc *TestCase) Expected() ldvalue.Value { return tc.expected }

// Actual returns the value the operation produced in the most recent run: its result, or the
// error code it raised.
func (tc *TestCase) Actual() ldvalue.Value { return tc.actual }

// ReadProperty reads the fixture that a property refers to, relative to the file the test was
// declared in. JSON-LD, JSON and YAML fixtures are parsed; anything else is returned as a string.
// If the test does not declare the property, the result is None.
func (tc *TestCase) ReadProperty(name string) (opt.Maybe[ldvalue.Value], error) {
	ref := tc.data.GetByKey(name)
	switch ref.Type() {
	case ldvalue.NullType:
		return opt.None[ldvalue.Value](), nil
	case ldvalue.StringType:
	default:
		return opt.None[ldvalue.Value](), &LoadError{Property: name, Err: errors.New("not a file reference")}
	}
	store := FixtureStore{Root: tc.dir}
	v, err := store.Read(ref.StringValue())
	if err != nil {
		return opt.None[ldvalue.Value](), &LoadError{Property: name, Path: store.Path(ref.StringValue()), Err: err}
	}
	return opt.Some(v), nil
}

// IRI returns the test's ID; it identifies the test in reports.
func (tc *TestCase) IRI() string { return tc.ID }

func (tc *TestCase) Title() string { return tc.Name }

func (tc *TestCase) String() string { return tc.ID }
