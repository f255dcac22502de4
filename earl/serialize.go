package earl

import (
	"bytes"
	"encoding/json"

	"github.com/ldconformance/ld-test-harness/framework/helpers"

	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
)

const (
	assertionDateFormat = "2006-01-02T15:04:05-0700"
	reportDateFormat    = "2006-01-02"
)

func (r *Report) serialize() ([]byte, error) {
	w := jwriter.NewWriter()
	obj := w.Object()
	writeContext(obj.Name("@context"))
	obj.Name("@id").String(r.project.ID)
	types := obj.Name("@type").Array()
	types.String("doap:Project")
	types.String("earl:TestSubject")
	types.String("earl:Software")
	types.End()
	obj.Name("doap:name").String(r.project.Name)
	obj.Name("dc:title").String(r.project.Name)
	obj.Name("doap:homepage").String(r.project.Homepage)
	obj.Name("doap:license").String(r.project.License)
	obj.Name("doap:description").String(r.project.Description)
	obj.Name("doap:programming-language").String(r.project.ProgrammingLanguage)
	obj.Name("dc:creator").String(r.project.Creator)

	dev := obj.Name("doap:developer").Object()
	dev.Name("@id").String(r.project.Developer.ID)
	devTypes := dev.Name("@type").Array()
	devTypes.String("foaf:Person")
	devTypes.String("earl:Assertor")
	devTypes.End()
	dev.Name("foaf:name").String(r.project.Developer.Name)
	dev.Name("foaf:homepage").String(r.project.Developer.Homepage)
	dev.End()

	date := obj.Name("dc:date").Object()
	date.Name("@value").String(r.created.Format(reportDateFormat))
	date.Name("@type").String("xsd:date")
	date.End()

	subjectOf := obj.Name("subjectOf").Array()
	for _, a := range r.assertions {
		writeAssertion(&subjectOf, r.project.Developer.ID, a)
	}
	subjectOf.End()
	obj.End()

	if err := w.Error(); err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, w.Bytes(), "", "  "); err != nil {
		return nil, err
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

func writeContext(w *jwriter.Writer) {
	obj := w.Object()
	obj.Name("doap").String("http://usefulinc.com/ns/doap#")
	obj.Name("foaf").String("http://xmlns.com/foaf/0.1/")
	obj.Name("dc").String("http://purl.org/dc/terms/")
	obj.Name("earl").String("http://www.w3.org/ns/earl#")
	obj.Name("xsd").String("http://www.w3.org/2001/XMLSchema#")
	for _, name := range []string{"doap:homepage", "doap:license", "dc:creator", "foaf:homepage"} {
		typed := obj.Name(name).Object()
		typed.Name("@type").String("@id")
		typed.End()
	}
	reverse := obj.Name("subjectOf").Object()
	reverse.Name("@reverse").String("earl:subject")
	reverse.End()
	for _, name := range []string{"earl:assertedBy", "earl:mode", "earl:test", "earl:outcome"} {
		typed := obj.Name(name).Object()
		typed.Name("@type").String("@id")
		typed.End()
	}
	dateType := obj.Name("dc:date").Object()
	dateType.Name("@type").String("xsd:date")
	dateType.End()
	obj.End()
}

func writeAssertion(arr *jwriter.ArrayState, assertedBy string, a Assertion) {
	obj := arr.Object()
	obj.Name("@type").String("earl:Assertion")
	obj.Name("earl:assertedBy").String(assertedBy)
	obj.Name("earl:mode").String("earl:automatic")
	obj.Name("earl:test").String(a.Test)
	result := obj.Name("earl:result").Object()
	result.Name("@type").String("earl:TestResult")
	result.Name("dc:date").String(a.Date.Format(assertionDateFormat))
	result.Name("earl:outcome").String(helpers.IfElse(a.Passed, "earl:passed", "earl:failed"))
	result.End()
	obj.End()
}
