// Package address implements EIP-55 checksum verification and the
// directory/filename/content consistency rules for registry entries.
package address

import (
	"encoding/hex"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/Vinuhub-vinuchain/vinuchain-lists/internal/finding"
	"github.com/Vinuhub-vinuchain/vinuchain-lists/internal/safety"
)

const zeroAddress = "0x0000000000000000000000000000000000000000"

// Checksum returns the canonical EIP-55 casing for a well-formed hex
// address: each hex letter is capitalized when the corresponding nibble of
// keccak256(lowercase address body) is >= 8.
func Checksum(addr string) (string, bool) {
	if !common.IsHexAddress(addr) {
		return "", false
	}
	body := strings.ToLower(strings.TrimPrefix(strings.TrimPrefix(addr, "0x"), "0X"))
	hash := hex.EncodeToString(crypto.Keccak256([]byte(body)))

	out := make([]byte, len(body))
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c >= 'a' && c <= 'f' && hash[i] >= '8' {
			c = c - 'a' + 'A'
		}
		out[i] = c
	}
	return "0x" + string(out), true
}

// ValidateChecksum checks that addr is a well-formed, non-zero address in
// exact EIP-55 casing. A nil return means valid.
func ValidateChecksum(addr, context string) *finding.Finding {
	want, ok := Checksum(addr)
	if !ok {
		f := finding.Errorf(finding.KindBadFormat, context, "%q is not a 20-byte hex address", addr)
		return &f
	}
	if strings.EqualFold(addr, zeroAddress) {
		f := finding.Errorf(finding.KindZeroAddress, context, "zero address is not allowed")
		return &f
	}
	if addr != want {
		f := finding.Errorf(finding.KindBadChecksum, context, "checksum casing mismatch: got %s, want %s", addr, want)
		return &f
	}
	return nil
}

// ValidateDirectory checks that dirName is itself a checksummed address and
// resolves safely under root. Returns the resolved directory path on success.
func ValidateDirectory(dirName, root string) (string, *finding.Finding) {
	if f := ValidateChecksum(dirName, dirName); f != nil {
		return "", f
	}
	dir, err := safety.ResolveUnder(root, dirName)
	if err != nil {
		f := finding.Errorf(finding.KindPathTraversal, dirName, "unsafe directory name: %v", err)
		return "", &f
	}
	return dir, nil
}

// ValidateTokenAddress composes the checksum check with the requirement that
// the address inside the JSON file equals the directory name byte for byte.
func ValidateTokenAddress(jsonAddr, dirName, symbol string) *finding.Finding {
	if f := ValidateChecksum(jsonAddr, symbol); f != nil {
		return f
	}
	if jsonAddr != dirName {
		f := finding.Errorf(finding.KindAddressMismatch, symbol,
			"address %s in JSON does not match directory name %s (token %s)", jsonAddr, dirName, symbol)
		return &f
	}
	return nil
}
