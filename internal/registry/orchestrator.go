package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"
	"sort"
	"time"

	"github.com/Vinuhub-vinuchain/vinuchain-lists/internal/address"
	"github.com/Vinuhub-vinuchain/vinuchain-lists/internal/config"
	"github.com/Vinuhub-vinuchain/vinuchain-lists/internal/content"
	"github.com/Vinuhub-vinuchain/vinuchain-lists/internal/finding"
	"github.com/Vinuhub-vinuchain/vinuchain-lists/internal/logger"
	"github.com/Vinuhub-vinuchain/vinuchain-lists/internal/logo"
	"github.com/Vinuhub-vinuchain/vinuchain-lists/internal/safety"
	"github.com/Vinuhub-vinuchain/vinuchain-lists/internal/schema"
	"github.com/Vinuhub-vinuchain/vinuchain-lists/internal/urlcheck"
)

// LimitError is a fatal registry-wide cap violation. It aborts the run
// immediately and is reported apart from validation failure.
type LimitError struct {
	Kind finding.Kind
	Msg  string
}

func (e *LimitError) Error() string { return e.Msg }

var slugRe = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// decimalsAdvisoryAbove triggers a warning for unusual (but schema-legal)
// decimal counts.
const decimalsAdvisoryAbove = 18

// Orchestrator drives one validation run. Construct a fresh one per run, or
// reuse: Run builds all mutable state from scratch each time.
type Orchestrator struct {
	cfg     *config.AppConfig
	schemas *schema.Set
	emails  *content.EmailValidator

	// per-run state, rebuilt by Run
	phase    Phase
	rec      *finding.Recorder
	index    *Index
	projects map[string]bool // project slugs whose directory exists
}

func New(cfg *config.AppConfig, schemas *schema.Set) *Orchestrator {
	return &Orchestrator{
		cfg:     cfg,
		schemas: schemas,
		emails:  content.NewEmailValidator(cfg.DisposableDomains),
		phase:   PhaseInit,
	}
}

// Findings returns the findings of the most recent run.
func (o *Orchestrator) Findings() []finding.Finding {
	if o.rec == nil {
		return nil
	}
	return o.rec.Findings()
}

// Run validates the whole registry. The returned error is non-nil only for
// fatal conditions (cap violations, unreadable roots); per-entry problems
// are findings in the Summary, and one bad entry never aborts the run.
func (o *Orchestrator) Run() (*Summary, error) {
	o.phase = PhaseInit
	o.rec = finding.NewRecorder()
	o.index = NewIndex()
	o.projects = make(map[string]bool)
	started := time.Now()

	o.phase = PhaseValidatingTokens
	tokens, err := o.validateTokens()
	if err != nil {
		return nil, err
	}

	o.phase = PhaseValidatingContracts
	projects, contracts, err := o.validateContracts()
	if err != nil {
		return nil, err
	}

	o.phase = PhaseCrossReferencing
	o.crossReference()

	o.phase = PhaseSummarizing
	summary := &Summary{
		StartedAt:       started,
		FinishedAt:      time.Now(),
		Tokens:          tokens,
		Projects:        projects,
		Contracts:       contracts,
		UniqueAddresses: o.index.UniqueAddresses(),
		Errors:          o.rec.Errors(),
		Warnings:        o.rec.Warnings(),
	}
	switch {
	case summary.Errors > 0:
		summary.Verdict = VerdictFailed
	case summary.Warnings > 0:
		summary.Verdict = VerdictPassedWithWarnings
	default:
		summary.Verdict = VerdictPassed
	}
	o.phase = PhaseDone
	return summary, nil
}

// record routes every finding through the recorder, the leveled log and the
// JSON-lines sink.
func (o *Orchestrator) record(f finding.Finding) {
	o.rec.Add(f)
	logger.JSONRecord(f)
	if f.IsError() {
		logger.Error("%s", f)
	} else {
		logger.Warn("%s", f)
	}
}

func (o *Orchestrator) recordAll(fs []finding.Finding) bool {
	for _, f := range fs {
		o.record(f)
	}
	return finding.HasError(fs)
}

// ---- token pass ----

func (o *Orchestrator) validateTokens() (int, error) {
	root := o.cfg.Registry.TokensDir
	dirs, err := listDirs(root)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Info("tokens directory %s does not exist, skipping token pass", root)
			return 0, nil
		}
		return 0, fmt.Errorf("enumerate tokens in %s: %w", root, err)
	}
	if len(dirs) > o.cfg.Limits.MaxTokens {
		return 0, &LimitError{Kind: finding.KindRateLimitExceeded,
			Msg: fmt.Sprintf("%d token directories exceed the limit of %d", len(dirs), o.cfg.Limits.MaxTokens)}
	}

	logger.Info("validating %d token entries", len(dirs))
	valid := 0
	for _, dirName := range dirs {
		if o.validateToken(root, dirName) {
			valid++
		}
	}
	return valid, nil
}

// validateToken runs the fixed per-entry check order. A hard failure stops
// the remaining checks for this entry only; the caller continues with the
// next entry regardless.
func (o *Orchestrator) validateToken(root, dirName string) bool {
	dir, f := address.ValidateDirectory(dirName, root)
	if f != nil {
		o.record(*f)
		return false
	}

	jsonPath, err := safety.ResolveUnder(dir, dirName+".json")
	if err != nil {
		o.record(finding.Errorf(finding.KindPathTraversal, dirName, "resolve token JSON: %v", err))
		return false
	}

	doc, raw, err := safety.LoadObject(jsonPath, o.cfg.Limits.MaxJSONBytes)
	if err != nil {
		o.record(finding.Errorf(classifyLoadError(err), dirName, "load %s: %v", jsonPath, err))
		return false
	}

	if err := o.schemas.ValidateToken(doc); err != nil {
		o.record(finding.Errorf(finding.KindSchemaViolation, dirName, "token JSON violates schema: %v", err))
		return false
	}

	var entry TokenEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		o.record(finding.Errorf(finding.KindSchemaViolation, dirName, "token JSON does not decode: %v", err))
		return false
	}
	subject := entry.Symbol
	if subject == "" {
		subject = dirName
	}

	if f := address.ValidateTokenAddress(entry.Address, dirName, entry.Symbol); f != nil {
		o.record(*f)
		return false
	}

	urlFields := map[string]string{
		"website":          entry.Website,
		"socials.twitter":  entry.Socials.Twitter,
		"socials.telegram": entry.Socials.Telegram,
		"socials.discord":  entry.Socials.Discord,
		"socials.github":   entry.Socials.Github,
		"socials.medium":   entry.Socials.Medium,
	}
	if o.recordAll(urlcheck.CheckFields(subject, urlFields)) {
		return false
	}

	if entry.Email != "" {
		if f := o.emails.Validate(entry.Email, subject, "email"); f != nil {
			o.record(*f)
			return false
		}
	}

	if entry.Decimals > decimalsAdvisoryAbove {
		o.record(finding.Warnf(finding.KindAdvisory, subject,
			"decimals %d is unusually high for an ERC-20", entry.Decimals))
	}
	if n := len(entry.RedFlags); n > 0 {
		o.record(finding.Warnf(finding.KindAdvisory, subject,
			"entry carries %d red flag(s), highest severity %s", n, highestRedFlag(entry.RedFlags)))
	}

	if o.recordAll(logo.Validate(dir, dirName, subject)) {
		return false
	}

	if prev, dup := o.index.AddToken(entry.Address, &entry); dup {
		o.record(finding.Errorf(finding.KindDuplicateAddress, subject,
			"address %s already used by %s", entry.Address, prev))
		return false
	}
	logger.Debug("token %s (%s) valid", subject, entry.Address)
	return true
}

func highestRedFlag(flags []RedFlag) string {
	rank := map[string]int{"low": 1, "medium": 2, "high": 3, "critical": 4}
	best := ""
	bestRank := 0
	for _, fl := range flags {
		if r := rank[fl.Severity]; r > bestRank {
			bestRank = r
			best = fl.Severity
		}
	}
	if best == "" {
		return "unspecified"
	}
	return best
}

// ---- contract pass ----

func (o *Orchestrator) validateContracts() (projects, contracts int, err error) {
	root := o.cfg.Registry.ContractsDir
	dirs, err := listDirs(root)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Info("contracts directory %s does not exist, skipping contract pass", root)
			return 0, 0, nil
		}
		return 0, 0, fmt.Errorf("enumerate projects in %s: %w", root, err)
	}
	if len(dirs) > o.cfg.Limits.MaxProjects {
		return 0, 0, &LimitError{Kind: finding.KindRateLimitExceeded,
			Msg: fmt.Sprintf("%d project directories exceed the limit of %d", len(dirs), o.cfg.Limits.MaxProjects)}
	}

	logger.Info("validating %d contract projects", len(dirs))
	for _, slug := range dirs {
		n, perr := o.validateProject(root, slug)
		if perr != nil {
			return projects, contracts, perr
		}
		if n >= 0 {
			projects++
			contracts += n
		}
	}
	return projects, contracts, nil
}

// validateProject returns the number of valid contracts, or -1 when the
// project itself failed. A non-nil error is fatal.
func (o *Orchestrator) validateProject(root, slug string) (int, error) {
	// The directory exists either way; cross-referencing cares about
	// existence, not validity.
	o.projects[slug] = true

	if !slugRe.MatchString(slug) {
		o.record(finding.Errorf(finding.KindBadFormat, slug, "project slug %q must be lowercase alphanumeric with hyphens", slug))
		return -1, nil
	}
	dir, err := safety.ResolveUnder(root, slug)
	if err != nil {
		o.record(finding.Errorf(finding.KindPathTraversal, slug, "resolve project directory: %v", err))
		return -1, nil
	}

	infoPath, err := safety.ResolveUnder(dir, "info.json")
	if err != nil {
		o.record(finding.Errorf(finding.KindPathTraversal, slug, "resolve info.json: %v", err))
		return -1, nil
	}
	doc, raw, err := safety.LoadObject(infoPath, o.cfg.Limits.MaxJSONBytes)
	if err != nil {
		o.record(finding.Errorf(classifyLoadError(err), slug, "load %s: %v", infoPath, err))
		return -1, nil
	}
	if err := o.schemas.ValidateProject(doc); err != nil {
		o.record(finding.Errorf(finding.KindSchemaViolation, slug, "project info violates schema: %v", err))
		return -1, nil
	}
	var project ContractProject
	if err := json.Unmarshal(raw, &project); err != nil {
		o.record(finding.Errorf(finding.KindSchemaViolation, slug, "project info does not decode: %v", err))
		return -1, nil
	}

	urlFields := map[string]string{
		"website":          project.Website,
		"socials.twitter":  project.Socials.Twitter,
		"socials.telegram": project.Socials.Telegram,
		"socials.discord":  project.Socials.Discord,
		"socials.github":   project.Socials.Github,
		"socials.medium":   project.Socials.Medium,
	}
	o.recordAll(urlcheck.CheckFields(slug, urlFields))
	for field, email := range map[string]string{"contact": project.Contact, "security": project.Security} {
		if email == "" {
			continue
		}
		if f := o.emails.Validate(email, slug, field); f != nil {
			o.record(*f)
		}
	}

	if len(project.Contracts) > o.cfg.Limits.MaxContractsPerProject {
		return -1, &LimitError{Kind: finding.KindRateLimitExceeded,
			Msg: fmt.Sprintf("project %s declares %d contracts, limit is %d", slug, len(project.Contracts), o.cfg.Limits.MaxContractsPerProject)}
	}

	seenNames := make(map[string]bool)
	valid := 0
	for _, c := range project.Contracts {
		if seenNames[c.Name] {
			o.record(finding.Errorf(finding.KindDuplicateName, slug, "contract name %s appears twice in project", c.Name))
			continue
		}
		seenNames[c.Name] = true
		if o.validateContract(dir, slug, c) {
			valid++
		}
	}
	return valid, nil
}

func (o *Orchestrator) validateContract(projDir, slug string, c ContractDescriptor) bool {
	subject := fmt.Sprintf("%s/%s", slug, c.Name)

	if f := content.ValidateContractName(c.Name, subject); f != nil {
		o.record(*f)
		return false
	}
	if f := address.ValidateChecksum(c.Address, subject); f != nil {
		o.record(*f)
		return false
	}

	ok := true
	solPath, err := safety.ResolveUnder(projDir, c.Name+".sol")
	if err != nil {
		o.record(finding.Errorf(finding.KindPathTraversal, subject, "resolve source file: %v", err))
		ok = false
	} else if _, serr := os.Stat(solPath); serr != nil {
		o.record(finding.Errorf(finding.KindReadError, subject, "missing source file %s.sol", c.Name))
		ok = false
	} else if o.recordAll(content.ValidateSolidity(solPath, c.Name, subject, o.cfg.Limits.MaxSourceBytes)) {
		ok = false
	}

	abiPath, err := safety.ResolveUnder(projDir, c.Name+"_abi.json")
	if err != nil {
		o.record(finding.Errorf(finding.KindPathTraversal, subject, "resolve ABI file: %v", err))
		ok = false
	} else if _, serr := os.Stat(abiPath); serr != nil {
		o.record(finding.Errorf(finding.KindReadError, subject, "missing ABI file %s_abi.json", c.Name))
		ok = false
	} else if o.recordAll(content.ValidateABI(abiPath, subject, o.cfg.Limits.MaxJSONBytes)) {
		ok = false
	}

	// The address is meaningful once the checksum holds; record it even if
	// the paired files had problems so duplicates are still caught.
	if prev, dup := o.index.AddContract(c.Address, ContractRef{Project: slug, ContractName: c.Name}); dup {
		o.record(finding.Errorf(finding.KindDuplicateAddress, subject,
			"address %s already used by %s", c.Address, prev))
		ok = false
	}
	return ok
}

// ---- cross-reference pass ----

func (o *Orchestrator) crossReference() {
	logger.Info("cross-referencing %d token addresses against %d projects", len(o.index.Tokens()), len(o.projects))

	for addr, entry := range o.index.Tokens() {
		subject := entry.Symbol
		if entry.Project != "" && !o.projects[entry.Project] {
			o.record(finding.Errorf(finding.KindCrossReference, subject,
				"token declares project %q but no contracts/%s directory exists", entry.Project, entry.Project))
		}
		if ref, ok := o.index.PairedContract(addr); ok {
			if entry.Project == "" {
				o.record(finding.Errorf(finding.KindCrossReference, subject,
					"token address %s is contract %s/%s but the token declares no project", addr, ref.Project, ref.ContractName))
			} else if entry.Project != ref.Project {
				o.record(finding.Errorf(finding.KindCrossReference, subject,
					"token declares project %q but address %s belongs to project %q", entry.Project, addr, ref.Project))
			}
		}
	}
}

// ---- helpers ----

func classifyLoadError(err error) finding.Kind {
	switch {
	case errors.Is(err, safety.ErrPayloadTooLarge):
		return finding.KindPayloadTooLarge
	case errors.Is(err, safety.ErrUnsafeKey):
		return finding.KindUnsafeKey
	case errors.Is(err, safety.ErrParse), errors.Is(err, safety.ErrNotObject),
		errors.Is(err, safety.ErrNotArray), errors.Is(err, safety.ErrTooDeep):
		return finding.KindParseError
	default:
		return finding.KindReadError
	}
}

// listDirs enumerates subdirectory names of root in sorted order so runs
// over an unchanged registry are deterministic.
func listDirs(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}
	var dirs []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, e.Name())
		}
	}
	sort.Strings(dirs)
	return dirs, nil
}
