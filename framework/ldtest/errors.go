package ldtest

import (
	"errors"
	"fmt"
	"regexp"
	"runtime"
	"strings"
)

// ErrorWithStacktrace is an assertion failure together with the frames of test code that raised
// it. Frames belonging to ldtest and to functions registered through T.Helper are left out.
type ErrorWithStacktrace struct {
	Message    string
	Stacktrace []StacktraceInfo
}

// StacktraceInfo is one frame of test code.
type StacktraceInfo struct {
	FileName string
	Package  string
	Function string
	Line     int
}

func (e ErrorWithStacktrace) Error() string { return e.Message }

func (s StacktraceInfo) String() string {
	pkg := strings.TrimPrefix(s.Package, rootPackageName()+"/")
	return fmt.Sprintf("%s.%s (%s:%d)", pkg, s.Function, s.FileName, s.Line)
}

// testify prefixes its messages with its own trace, which is meaningless once the failure is
// reported against a conformance test rather than a Go test.
var testifyTracePrefix = regexp.MustCompile(`^(?s:\s*Error Trace:.*\sError:\s*)`)

func stripTestifyTrace(message string) string {
	if !strings.Contains(message, "Error Trace:") {
		return message
	}
	return strings.TrimSpace(testifyTracePrefix.ReplaceAllLiteralString(message, ""))
}

func transformError(err error, stacktrace []StacktraceInfo) error {
	message := stripTestifyTrace(err.Error())
	if len(stacktrace) > 0 {
		return ErrorWithStacktrace{Message: message, Stacktrace: stacktrace}
	}
	return errors.New(message)
}

func currentPackageName() string {
	pc, _, _, ok := runtime.Caller(0)
	if !ok {
		return "?"
	}
	if f := runtime.FuncForPC(pc); f != nil {
		pkg, _ := parsePackageAndFunctionName(f.Name())
		return pkg
	}
	return "?"
}

// rootPackageName is the module path, e.g. github.com/ldconformance/ld-test-harness.
func rootPackageName() string {
	parts := strings.Split(currentPackageName(), "/")
	if len(parts) > 3 {
		parts = parts[:3]
	}
	return strings.Join(parts, "/")
}

// callerPCs returns the program counters above the function that called it.
func callerPCs() []uintptr {
	pcs := make([]uintptr, 32)
	for {
		// skip runtime.Callers, callerPCs and getStacktrace
		n := runtime.Callers(3, pcs)
		if n < len(pcs) {
			return pcs[:n]
		}
		pcs = make([]uintptr, len(pcs)*2)
	}
}

// getStacktrace lists the frames from the caller up to, but not including, ldtest.Run.
func getStacktrace(includeLDTestCode bool, helperFns []string) []StacktraceInfo {
	helpers := make(map[string]struct{}, len(helperFns))
	for _, h := range helperFns {
		helpers[h] = struct{}{}
	}
	ownPackage := currentPackageName()

	var callers []StacktraceInfo
	frames := runtime.CallersFrames(callerPCs())
	for {
		frame, more := frames.Next()
		if frame.Function == "" {
			break
		}
		pkg, fn := parsePackageAndFunctionName(frame.Function)
		if pkg == ownPackage && fn == "Run" {
			break
		}
		_, isHelper := helpers[frame.Function]
		if !isHelper && (includeLDTestCode || pkg != ownPackage) {
			callers = append(callers, StacktraceInfo{
				FileName: frame.File[strings.LastIndex(frame.File, "/")+1:],
				Package:  pkg,
				Function: fn,
				Line:     frame.Line,
			})
		}
		if !more {
			break
		}
	}
	return callers
}

// parsePackageAndFunctionName splits a qualified name such as "a/b/pkg.(*T).run" into "a/b/pkg"
// and "(*T).run".
func parsePackageAndFunctionName(fullName string) (string, string) {
	lastSlash := strings.LastIndex(fullName, "/")
	dot := strings.Index(fullName[lastSlash+1:], ".")
	if dot < 0 {
		return fullName, ""
	}
	split := lastSlash + 1 + dot
	return fullName[:split], fullName[split+1:]
}
