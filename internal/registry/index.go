package registry

import "fmt"

// ContractRef locates a contract descriptor inside the registry.
type ContractRef struct {
	Project      string
	ContractName string
}

// Index is the per-run accumulator of everything seen during traversal. It
// is created empty at run start and discarded at run end; nothing here is
// package state, so a host process can run validations back to back.
type Index struct {
	holders  map[string]string      // address -> description of first holder
	tokens   map[string]*TokenEntry // address -> token entry
	pairings map[string]ContractRef // token address -> its own contract
}

func NewIndex() *Index {
	return &Index{
		holders:  make(map[string]string),
		tokens:   make(map[string]*TokenEntry),
		pairings: make(map[string]ContractRef),
	}
}

// AddToken records a token address. When the address is already held the
// previous holder's description is returned and the entry is excluded from
// the unique-address count.
func (ix *Index) AddToken(addr string, entry *TokenEntry) (string, bool) {
	if prev, ok := ix.holders[addr]; ok {
		return prev, true
	}
	ix.holders[addr] = fmt.Sprintf("token %s", entry.Symbol)
	ix.tokens[addr] = entry
	return "", false
}

// AddContract records a contract address. The first contract sharing a
// token's address is not a duplicate: it is the token's own contract, and
// the cross-reference pass verifies the token declares the matching project.
// Any further holder of the address, contract or token, is a duplicate.
func (ix *Index) AddContract(addr string, ref ContractRef) (string, bool) {
	if prev, ok := ix.holders[addr]; ok {
		if _, isToken := ix.tokens[addr]; isToken {
			if first, paired := ix.pairings[addr]; paired {
				return fmt.Sprintf("contract %s/%s", first.Project, first.ContractName), true
			}
			ix.pairings[addr] = ref
			return "", false
		}
		return prev, true
	}
	ix.holders[addr] = fmt.Sprintf("contract %s/%s", ref.Project, ref.ContractName)
	return "", false
}

// Tokens returns the address -> entry mapping for the cross-reference pass.
func (ix *Index) Tokens() map[string]*TokenEntry { return ix.tokens }

// PairedContract returns the contract recorded at a token's address.
func (ix *Index) PairedContract(addr string) (ContractRef, bool) {
	ref, ok := ix.pairings[addr]
	return ref, ok
}

// UniqueAddresses counts distinct addresses across tokens and contracts.
func (ix *Index) UniqueAddresses() int { return len(ix.holders) }
