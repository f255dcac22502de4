package servicedef

import (
	"encoding/json"
	"sort"

	o "github.com/ldconformance/ld-test-harness/framework/opt"

	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/launchdarkly/go-sdk-common/v3/ldvalue"
)

// Commands are the operation names; they are the same strings as the capabilities.
const (
	CommandExpand    = CapabilityExpand
	CommandCompact   = CapabilityCompact
	CommandFlatten   = CapabilityFlatten
	CommandToRDF     = CapabilityToRDF
	CommandFromRDF   = CapabilityFromRDF
	CommandFrame     = CapabilityFrame
	CommandNormalize = CapabilityNormalize
)

// CommandParams is the body of a POST request asking the service to run an operation. Input is
// either a URL, which the service should load through the document loader, or a document.
type CommandParams struct {
	Command string                 `json:"command"`
	Input   ldvalue.Value          `json:"input"`
	Context o.Maybe[ldvalue.Value] `json:"context,omitempty"`
	Frame   o.Maybe[ldvalue.Value] `json:"frame,omitempty"`
	Options CommandOptions         `json:"options"`
}

// CommandOptions are the processor options for a command. In JSON they are a single object:
// Values are written as properties alongside the named fields.
type CommandOptions struct {
	// DocumentLoader is the base URL of a callback endpoint; see CallbackPathDocument.
	DocumentLoader string
	Format         string
	ExpandContext  o.Maybe[ldvalue.Value]
	Values         map[string]ldvalue.Value
}

const (
	optionDocumentLoader = "documentLoader"
	optionFormat         = "format"
	optionExpandContext  = "expandContext"
)

func (c CommandOptions) MarshalJSON() ([]byte, error) {
	w := jwriter.NewWriter()
	obj := w.Object()
	names := make([]string, 0, len(c.Values))
	for name := range c.Values {
		switch name {
		case optionDocumentLoader, optionFormat, optionExpandContext:
		default:
			names = append(names, name)
		}
	}
	sort.Strings(names)
	for _, name := range names {
		c.Values[name].WriteToJSONWriter(obj.Name(name))
	}
	obj.Maybe(optionDocumentLoader, c.DocumentLoader != "").String(c.DocumentLoader)
	obj.Maybe(optionFormat, c.Format != "").String(c.Format)
	if c.ExpandContext.IsDefined() {
		c.ExpandContext.Value().WriteToJSONWriter(obj.Name(optionExpandContext))
	}
	obj.End()
	return w.Bytes(), w.Error()
}

func (c *CommandOptions) UnmarshalJSON(data []byte) error {
	var all map[string]ldvalue.Value
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}
	*c = CommandOptions{Values: make(map[string]ldvalue.Value)}
	for name, value := range all {
		switch name {
		case optionDocumentLoader:
			c.DocumentLoader = value.StringValue()
		case optionFormat:
			c.Format = value.StringValue()
		case optionExpandContext:
			if !value.IsNull() {
				c.ExpandContext = o.Some(value)
			}
		default:
			c.Values[name] = value
		}
	}
	return nil
}

// CommandResponse is the body of the service's response to a command. If the operation failed,
// Error is set and Result is ignored.
type CommandResponse struct {
	Result ldvalue.Value      `json:"result"`
	Error  o.Maybe[ErrorInfo] `json:"error,omitempty"`
}

// ErrorInfo describes an operation failure. Cause, if present, is the error that led to it,
// so a chain of errors can be reported.
type ErrorInfo struct {
	Code    string     `json:"code,omitempty"`
	Message string     `json:"message,omitempty"`
	Cause   *ErrorInfo `json:"cause,omitempty"`
}
