package content

import (
	"os"
	"regexp"
	"strings"

	"github.com/Vinuhub-vinuchain/vinuchain-lists/internal/finding"
)

var (
	pragmaRe      = regexp.MustCompile(`(?m)^\s*pragma\s+solidity\s+[^;]+;`)
	spdxRe        = regexp.MustCompile(`(?m)SPDX-License-Identifier:\s*\S+`)
	declarationRe = regexp.MustCompile(`(?m)^\s*(?:abstract\s+)?(contract|interface|library)\s+([A-Za-z_][A-Za-z0-9_]*)`)
)

// dangerousConstructs are advisory signals for human review, never hard
// failures: legitimate contracts use all of them.
var dangerousConstructs = []string{"selfdestruct", "delegatecall", "tx.origin"}

// ValidateSolidity checks the source file for contractName: a license or
// pragma declaration must be present and a contract/interface/library with
// the expected identifier must be declared. Known dangerous constructs are
// reported as warnings with their line numbers.
func ValidateSolidity(path, contractName, subject string, maxBytes int64) []finding.Finding {
	st, err := os.Stat(path)
	if err != nil {
		return []finding.Finding{finding.Errorf(finding.KindReadError, subject, "stat %s: %v", path, err)}
	}
	if maxBytes > 0 && st.Size() > maxBytes {
		return []finding.Finding{finding.Errorf(finding.KindPayloadTooLarge, subject,
			"source %s is %d bytes (limit %d)", path, st.Size(), maxBytes)}
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return []finding.Finding{finding.Errorf(finding.KindReadError, subject, "read %s: %v", path, err)}
	}
	src := string(raw)

	var out []finding.Finding
	if !pragmaRe.MatchString(src) && !spdxRe.MatchString(src) {
		out = append(out, finding.Errorf(finding.KindSchemaViolation, subject,
			"source %s has no pragma or SPDX license declaration", path))
	}

	names := declaredNames(src)
	if len(names) == 0 {
		out = append(out, finding.Errorf(finding.KindNameMismatch, subject,
			"source %s declares no contract, interface or library", path))
	} else if !contains(names, contractName) {
		out = append(out, finding.Errorf(finding.KindNameMismatch, subject,
			"source %s declares %s but descriptor expects %s", path, strings.Join(names, ", "), contractName))
	}

	out = append(out, scanDangerousConstructs(src, subject)...)
	return out
}

func declaredNames(src string) []string {
	var names []string
	for _, m := range declarationRe.FindAllStringSubmatch(src, -1) {
		names = append(names, m[2])
	}
	return names
}

func scanDangerousConstructs(src, subject string) []finding.Finding {
	var out []finding.Finding
	lines := strings.Split(src, "\n")
	for _, construct := range dangerousConstructs {
		for i, line := range lines {
			for rest := line; ; {
				col := strings.Index(rest, construct)
				if col < 0 {
					break
				}
				out = append(out, finding.Warnf(finding.KindSecurityPattern, subject,
					"%s at line %d", construct, i+1))
				rest = rest[col+len(construct):]
			}
		}
	}
	return out
}

func contains(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}

// ValidateContractName enforces PascalCase alphanumeric contract names.
func ValidateContractName(name, subject string) *finding.Finding {
	if !contractNameRe.MatchString(name) {
		f := finding.Errorf(finding.KindBadFormat, subject,
			"contract name %q must be PascalCase alphanumeric", name)
		return &f
	}
	return nil
}

var contractNameRe = regexp.MustCompile(`^[A-Z][A-Za-z0-9]*$`)
