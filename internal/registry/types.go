// Package registry walks the token and contract trees, runs every validator
// in a fixed order per entry and produces the final verdict.
package registry

import "time"

// Socials is the optional block of social links shared by tokens and
// contract projects. Every field is URL-valued and SSRF-checked.
type Socials struct {
	Twitter  string `json:"twitter,omitempty"`
	Telegram string `json:"telegram,omitempty"`
	Discord  string `json:"discord,omitempty"`
	Github   string `json:"github,omitempty"`
	Medium   string `json:"medium,omitempty"`
}

// RedFlag is a community-reported warning attached to a token entry.
type RedFlag struct {
	Severity     string `json:"severity"`
	Description  string `json:"description"`
	Evidence     string `json:"evidence,omitempty"`
	ReportedDate string `json:"reportedDate,omitempty"`
}

// TokenEntry is one token metadata file. Identity key: Address, which must
// equal both the directory name and the file name stem.
type TokenEntry struct {
	Symbol   string    `json:"symbol"`
	Name     string    `json:"name"`
	Address  string    `json:"address"`
	Decimals int       `json:"decimals"`
	Project  string    `json:"project,omitempty"`
	Website  string    `json:"website,omitempty"`
	Email    string    `json:"email,omitempty"`
	Socials  Socials   `json:"socials,omitempty"`
	RedFlags []RedFlag `json:"redFlags,omitempty"`
}

// ContractDescriptor describes one deployed contract inside a project. The
// descriptor must be paired with ${Name}.sol and ${Name}_abi.json files.
type ContractDescriptor struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// ContractProject is a project's info.json. Identity key: directory slug.
type ContractProject struct {
	Name        string               `json:"name"`
	Website     string               `json:"website"`
	Description string               `json:"description"`
	Contact     string               `json:"contact,omitempty"`
	Security    string               `json:"security,omitempty"`
	Contracts   []ContractDescriptor `json:"contracts"`
	Socials     Socials              `json:"socials,omitempty"`
}

// Verdict is the overall outcome of one run.
type Verdict string

const (
	VerdictPassed             Verdict = "passed"
	VerdictPassedWithWarnings Verdict = "passed_with_warnings"
	VerdictFailed             Verdict = "failed"
)

// Phase tracks orchestrator progress through one run.
type Phase string

const (
	PhaseInit                Phase = "init"
	PhaseValidatingTokens    Phase = "validating_tokens"
	PhaseValidatingContracts Phase = "validating_contracts"
	PhaseCrossReferencing    Phase = "cross_referencing"
	PhaseSummarizing         Phase = "summarizing"
	PhaseDone                Phase = "done"
)

// Summary aggregates the results of one validation run.
type Summary struct {
	StartedAt       time.Time `json:"started_at"`
	FinishedAt      time.Time `json:"finished_at"`
	Tokens          int       `json:"tokens"`
	Projects        int       `json:"projects"`
	Contracts       int       `json:"contracts"`
	UniqueAddresses int       `json:"unique_addresses"`
	Errors          int       `json:"errors"`
	Warnings        int       `json:"warnings"`
	Verdict         Verdict   `json:"verdict"`
}
