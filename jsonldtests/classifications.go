package jsonldtests

import (
	"github.com/ldconformance/ld-test-harness/servicedef"
	"github.com/ldconformance/ld-test-harness/suite"
)

// Classification is one kind of test in the suite and the operation that runs it.
type Classification struct {
	// Name is the name of the test scope that groups the classification's tests.
	Name string
	// Tags are the manifest type tags that select tests for this classification.
	Tags []string
	// Command is the processor operation, which is also the capability it requires.
	Command     string
	UsesContext bool
	UsesFrame   bool
	// Format overrides the format option, for operations that read or write RDF.
	Format string
}

// Classifications returns the classifications in the order they are run.
func Classifications() []Classification {
	return []Classification{
		{
			Name:    "expand",
			Tags:    []string{"jld:ExpandTest", "ExpandTest"},
			Command: servicedef.CommandExpand,
		},
		{
			Name:        "compact",
			Tags:        []string{"jld:CompactTest", "CompactTest"},
			Command:     servicedef.CommandCompact,
			UsesContext: true,
		},
		{
			Name:        "flatten",
			Tags:        []string{"jld:FlattenTest", "FlattenTest"},
			Command:     servicedef.CommandFlatten,
			UsesContext: true,
		},
		{
			Name:    "toRdf",
			Tags:    []string{"jld:ToRDFTest", "ToRDFTest"},
			Command: servicedef.CommandToRDF,
			Format:  suite.FormatNQuads,
		},
		{
			Name:    "fromRdf",
			Tags:    []string{"jld:fromRDFTest", "jld:FromRDFTest", "fromRDFTest", "FromRDFTest"},
			Command: servicedef.CommandFromRDF,
			Format:  suite.FormatNQuads,
		},
		{
			Name:      "frame",
			Tags:      []string{"jld:FrameTest", "FrameTest"},
			Command:   servicedef.CommandFrame,
			UsesFrame: true,
		},
		{
			Name:    "normalize",
			Tags:    []string{"jld:NormalizeTest", "NormalizeTest"},
			Command: servicedef.CommandNormalize,
			Format:  suite.FormatNQuads,
		},
	}
}
