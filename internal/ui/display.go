package ui

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/Vinuhub-vinuchain/vinuchain-lists/internal/finding"
	"github.com/Vinuhub-vinuchain/vinuchain-lists/internal/registry"
)

func PrintBanner(version string) {
	banner := `
             _                  _           _
 _ __ ___ __| |_ _ _ _  _   __ | |_  ___ __| |__
| '_/ -_) _  | | '_| || | / _||   \/ -_) _| / /
|_| \___\__,_|_|_|  \_, | \__||_||_\___\__|_\_\
                    |__/
`
	fmt.Println(color.CyanString(banner))
	fmt.Println(color.HiBlackString("  registry-validator %s - token & contract registry gate", version))
	fmt.Println()
}

func PrintFinding(f finding.Finding) {
	if f.IsError() {
		fmt.Printf("  %s %s\n", color.RedString("✗ %s", f.Kind), f.Message)
		return
	}
	fmt.Printf("  %s %s\n", color.YellowString("! %s", f.Kind), f.Message)
}

func PrintSummary(s *registry.Summary) {
	fmt.Println()
	fmt.Println(color.New(color.Bold).Sprint("Validation Summary"))
	fmt.Printf("  tokens: %d  projects: %d  contracts: %d  unique addresses: %d\n",
		s.Tokens, s.Projects, s.Contracts, s.UniqueAddresses)
	fmt.Printf("  errors: %s  warnings: %s\n",
		color.RedString("%d", s.Errors), color.YellowString("%d", s.Warnings))

	switch s.Verdict {
	case registry.VerdictPassed:
		fmt.Println(color.GreenString("  PASSED"))
	case registry.VerdictPassedWithWarnings:
		fmt.Println(color.YellowString("  PASSED WITH WARNINGS"))
	default:
		fmt.Println(color.RedString("  FAILED"))
	}
}

func PrintFatal(err error) {
	fmt.Println(color.RedString("fatal: %v", err))
}
