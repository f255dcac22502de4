package suite

import (
	"github.com/ldconformance/ld-test-harness/framework/helpers"
	"github.com/ldconformance/ld-test-harness/framework/opt"

	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
)

// Option names that have special handling.
const (
	OptionContentType   = "contentType"
	OptionHTTPLink      = "httpLink"
	OptionHTTPStatus    = "httpStatus"
	OptionRedirectTo    = "redirectTo"
	OptionExpandContext = "expandContext"
)

// FormatNQuads is the format used by the RDF conversion operations.
const FormatNQuads = "application/n-quads"

// transportOptions only describe how the simulated server responds, so they are never passed
// to the operation.
var transportOptions = []string{OptionContentType, OptionHTTPLink, OptionHTTPStatus, OptionRedirectTo} //nolint:gochecknoglobals

// Options is the option set passed to an operation.
type Options struct {
	// Values holds the declared options, other than the ones that have their own field.
	Values         map[string]ldvalue.Value
	DocumentLoader DocumentLoader
	Format         string
	ExpandContext  opt.Maybe[ldvalue.Value]
}

// Get returns an option value, or a null value if it is not set.
func (o Options) Get(name string) ldvalue.Value {
	return o.Values[name]
}

// OptionsOverride is a change applied by CreateOptions after the declared options.
type OptionsOverride = helpers.ConfigOptionFunc[Options]

// WithFormat sets the input or output format of the operation.
func WithFormat(format string) OptionsOverride {
	return func(o *Options) error {
		o.Format = format
		return nil
	}
}

// WithOption sets a single option value.
func WithOption(name string, value ldvalue.Value) OptionsOverride {
	return func(o *Options) error {
		o.Values[name] = value
		return nil
	}
}

// WithExpandContext sets the expand context to a value that has already been parsed.
func WithExpandContext(value ldvalue.Value) OptionsOverride {
	return func(o *Options) error {
		delete(o.Values, OptionExpandContext)
		o.ExpandContext = opt.Some(value)
		return nil
	}
}

// WithDocumentLoader replaces the simulated document loader.
func WithDocumentLoader(loader DocumentLoader) OptionsOverride {
	return func(o *Options) error {
		o.DocumentLoader = loader
		return nil
	}
}

// CreateOptions builds the options for running this test: the declared options minus the
// transport-only ones, a document loader simulator for this test, and then the overrides,
// which always win. A string expandContext option is replaced by the document it refers to.
func (tc *TestCase) CreateOptions(overrides ...OptionsOverride) (Options, error) {
	options := Options{Values: make(map[string]ldvalue.Value)}
	declared := tc.DeclaredOptions()
	for _, name := range declared.Keys(nil) {
		if helpers.SliceContains(name, transportOptions) {
			continue
		}
		options.Values[name] = declared.GetByKey(name)
	}
	options.DocumentLoader = tc.NewDocumentLoader()
	if err := helpers.ApplyOptions(&options, overrides...); err != nil {
		return Options{}, err
	}
	if ec, ok := options.Values[OptionExpandContext]; ok {
		delete(options.Values, OptionExpandContext)
		if ec.Type() == ldvalue.StringType {
			store := FixtureStore{Root: tc.dir}
			v, err := store.Read(ec.StringValue())
			if err != nil {
				return Options{}, &LoadError{Property: OptionExpandContext, Path: store.Path(ec.StringValue()), Err: err}
			}
			ec = v
		}
		options.ExpandContext = opt.Some(ec)
	}
	return options, nil
}
