package blendcts

import "fmt"

// Code classifies the outcome of a case or of one iteration.
type Code int

const (
	CodePass Code = iota
	CodeFail
	CodeQualityWarning
	CodeNotSupported
)

// String returns the code name as it appears in result logs.
func (c Code) String() string {
	switch c {
	case CodePass:
		return "Pass"
	case CodeFail:
		return "Fail"
	case CodeQualityWarning:
		return "QualityWarning"
	case CodeNotSupported:
		return "NotSupported"
	default:
		return fmt.Sprintf("Code(%d)", int(c))
	}
}

// Status is a result code with its description.
type Status struct {
	Code        Code
	Description string
}

// Pass returns a passing status.
func Pass(desc string) Status { return Status{Code: CodePass, Description: desc} }

// Fail returns a failing status.
func Fail(desc string) Status { return Status{Code: CodeFail, Description: desc} }

// QualityWarning returns a status that flags a suspicious but acceptable
// result.
func QualityWarning(desc string) Status { return Status{Code: CodeQualityWarning, Description: desc} }

// NotSupported returns the status of a case the device cannot run.
func NotSupported(desc string) Status { return Status{Code: CodeNotSupported, Description: desc} }

// IsFail reports whether s is a failure. Warnings and NotSupported are not.
func (s Status) IsFail() bool { return s.Code == CodeFail }

func (s Status) String() string {
	if s.Description == "" {
		return s.Code.String()
	}
	return s.Code.String() + " (" + s.Description + ")"
}
