package content

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Vinuhub-vinuchain/vinuchain-lists/internal/finding"
)

const goodSource = `// SPDX-License-Identifier: MIT
pragma solidity ^0.8.19;

contract VinuToken {
    string public name = "Vinu Token";
}
`

func writeSource(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "VinuToken.sol")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestValidateSolidityValid(t *testing.T) {
	path := writeSource(t, goodSource)
	if findings := ValidateSolidity(path, "VinuToken", "test/VinuToken", 1<<20); len(findings) != 0 {
		t.Fatalf("expected no findings, got %v", findings)
	}
}

func TestValidateSolidityNameMismatch(t *testing.T) {
	path := writeSource(t, goodSource)
	findings := ValidateSolidity(path, "OtherToken", "test/OtherToken", 1<<20)
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %v", findings)
	}
	f := findings[0]
	if f.Kind != finding.KindNameMismatch {
		t.Fatalf("expected NameMismatch, got %s", f.Kind)
	}
	if !strings.Contains(f.Message, "VinuToken") || !strings.Contains(f.Message, "OtherToken") {
		t.Errorf("message %q does not name both identifiers", f.Message)
	}
}

func TestValidateSolidityMissingPragma(t *testing.T) {
	path := writeSource(t, "contract VinuToken {}\n")
	findings := ValidateSolidity(path, "VinuToken", "test/VinuToken", 1<<20)
	if len(findings) != 1 || findings[0].Kind != finding.KindSchemaViolation {
		t.Fatalf("expected a missing pragma finding, got %v", findings)
	}
}

func TestValidateSolidityNoDeclaration(t *testing.T) {
	path := writeSource(t, "pragma solidity ^0.8.0;\nuint256 constant X = 1;\n")
	findings := ValidateSolidity(path, "VinuToken", "test/VinuToken", 1<<20)
	if len(findings) != 1 || findings[0].Kind != finding.KindNameMismatch {
		t.Fatalf("expected NameMismatch for missing declaration, got %v", findings)
	}
}

func TestValidateSolidityInterfaceAndLibrary(t *testing.T) {
	src := `pragma solidity ^0.8.0;
interface IStaking {
    function stake(uint256 amount) external;
}
`
	path := writeSource(t, src)
	if findings := ValidateSolidity(path, "IStaking", "test/IStaking", 1<<20); len(findings) != 0 {
		t.Fatalf("interface declaration not accepted: %v", findings)
	}
}

func TestValidateSolidityDangerousConstructsAreWarnings(t *testing.T) {
	src := `// SPDX-License-Identifier: MIT
pragma solidity ^0.8.0;

contract Vault {
    function drain(address payable to) external {
        selfdestruct(to);
    }
    function relay(address target, bytes calldata data) external {
        require(tx.origin == msg.sender);
        (bool ok, ) = target.delegatecall(data);
        require(ok);
    }
}
`
	path := writeSource(t, src)
	findings := ValidateSolidity(path, "Vault", "test/Vault", 1<<20)
	if len(findings) != 3 {
		t.Fatalf("expected 3 advisory findings, got %d: %v", len(findings), findings)
	}
	for _, f := range findings {
		if f.IsError() {
			t.Errorf("dangerous construct reported as hard failure: %v", f)
		}
		if f.Kind != finding.KindSecurityPattern {
			t.Errorf("expected SecurityPattern, got %s", f.Kind)
		}
		if !strings.Contains(f.Message, "line") {
			t.Errorf("warning %q does not carry a line number", f.Message)
		}
	}
}

func TestValidateSolidityRepeatedConstructOnOneLine(t *testing.T) {
	src := `// SPDX-License-Identifier: MIT
pragma solidity ^0.8.0;

contract Relay {
    function relay(address a, address b, bytes calldata data) external {
        a.delegatecall(data); b.delegatecall(data);
    }
}
`
	path := writeSource(t, src)
	findings := ValidateSolidity(path, "Relay", "test/Relay", 1<<20)
	if len(findings) != 2 {
		t.Fatalf("expected 2 findings for two occurrences on one line, got %d: %v", len(findings), findings)
	}
	for _, f := range findings {
		if f.Kind != finding.KindSecurityPattern || !strings.Contains(f.Message, "line 6") {
			t.Errorf("unexpected finding %v", f)
		}
	}
}

func TestValidateSoliditySizeLimit(t *testing.T) {
	path := writeSource(t, goodSource)
	findings := ValidateSolidity(path, "VinuToken", "test/VinuToken", 8)
	if len(findings) != 1 || findings[0].Kind != finding.KindPayloadTooLarge {
		t.Fatalf("expected PayloadTooLarge, got %v", findings)
	}
}

func TestValidateContractName(t *testing.T) {
	valid := []string{"Token", "VinuSwapRouter", "X", "ERC20"}
	for _, name := range valid {
		if f := ValidateContractName(name, "test"); f != nil {
			t.Errorf("valid name %q rejected: %v", name, f)
		}
	}
	invalid := []string{"", "token", "My_Token", "My-Token", "9Lives", "Token.sol"}
	for _, name := range invalid {
		if f := ValidateContractName(name, "test"); f == nil {
			t.Errorf("invalid name %q accepted", name)
		}
	}
}
