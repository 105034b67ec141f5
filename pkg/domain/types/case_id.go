package types

import (
	"regexp"

	"github.com/m-mizutani/goerr/v2"
)

// CaseID identifies a case within a corpus
type CaseID string

// NewCaseID marks a query case that is not stored in any corpus yet
const NewCaseID CaseID = "NEW"

var caseIDPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.:-]*$`)

// Validate checks if the CaseID is valid
func (id CaseID) Validate() error {
	if id == "" {
		return goerr.New("case ID cannot be empty")
	}
	if !caseIDPattern.MatchString(string(id)) {
		return goerr.New("case ID must be alphanumeric with '_', '.', ':' or '-'", goerr.V("id", id))
	}
	return nil
}

// IsNew reports whether the ID is the query sentinel
func (id CaseID) IsNew() bool {
	return id == NewCaseID
}

// String returns the string representation of CaseID
func (id CaseID) String() string {
	return string(id)
}
