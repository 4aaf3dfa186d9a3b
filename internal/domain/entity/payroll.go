package entity

import (
	"encoding/json"
	"strings"
)

// Employee is the subset of an employee record the payroll notification needs.
type Employee struct {
	ID          string `json:"id,omitempty"`
	ChineseName string `json:"chineseName,omitempty"`
	EnglishName string `json:"englishName,omitempty"`
	LineID      string `json:"lineId,omitempty"`
}

// PayrollReport is a monthly payroll record owned by the content-management backend.
// Numeric fields that the backend omits decode as zero.
type PayrollReport struct {
	ID           string    `json:"id,omitempty"`
	Year         int       `json:"year"`
	Month        int       `json:"month"`
	RegularHours float64   `json:"regularHours,omitempty"`
	BasePay      float64   `json:"basePay,omitempty"`
	NetPay       float64   `json:"netPay,omitempty"`
	Status       string    `json:"status,omitempty"`
	Employee     *Employee `json:"employee,omitempty"`

	// doc is the decoded source document, kept for configurable field lookups.
	doc map[string]any
}

// UnmarshalJSON decodes the report and keeps the raw document.
func (r *PayrollReport) UnmarshalJSON(data []byte) error {
	type plain PayrollReport
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	*r = PayrollReport(p)
	r.doc = doc
	return nil
}

// PayrollStatusApproved is the report status that triggers an automatic send.
const PayrollStatusApproved = "approved"

// EmployeeLineID returns the LINE id of the linked employee, or "" when unlinked.
func (r *PayrollReport) EmployeeLineID() string {
	if r == nil || r.Employee == nil {
		return ""
	}
	return r.Employee.LineID
}

// LineIDAt resolves the recipient LINE id at a dotted field path such as
// "employee.lineId". An empty path, or a report that was not decoded from
// JSON, falls back to EmployeeLineID. Missing or non-string values yield "".
func (r *PayrollReport) LineIDAt(path string) string {
	if r == nil {
		return ""
	}
	if path == "" || r.doc == nil {
		return r.EmployeeLineID()
	}
	var cur any = r.doc
	for _, key := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return ""
		}
		cur = m[key]
	}
	s, _ := cur.(string)
	return s
}
