package main

import (
	"strings"

	"github.com/spf13/cobra"

	scerr "github.com/utkarsh5026/gitlet/pkg/common/err"
)

const cliPkg = "cli"

// messages maps error codes to the line printed for them.
var messages = map[string]string{
	scerr.CodeRepositoryExists:    "A Gitlet version-control system already exists in the current directory.",
	scerr.CodeNotARepository:      "Not in an initialized Gitlet directory.",
	scerr.CodeFileNotFound:        "File does not exist.",
	scerr.CodeNothingStaged:       "No changes added to the commit.",
	scerr.CodeEmptyMessage:        "Please enter a commit message.",
	scerr.CodeNothingToRemove:     "No reason to remove the file.",
	scerr.CodeFileNotInCommit:     "File does not exist in that commit.",
	scerr.CodeNoSuchCommit:        "No commit with that id exists.",
	scerr.CodeNoSuchBranch:        "No such branch exists.",
	scerr.CodeBranchExists:        "A branch with that name already exists.",
	scerr.CodeCannotDeleteCurrent: "Cannot remove the current branch.",
	scerr.CodeAlreadyOnBranch:     "No need to checkout the current branch.",
	scerr.CodeUntrackedConflict:   "There is an untracked file in the way; delete it, or add and commit it first.",
	scerr.CodeUncommittedChanges:  "You have uncommitted changes.",
	scerr.CodeCannotMergeSelf:     "Cannot merge a branch with itself.",
	scerr.CodeNoMatchingCommit:    "Found no commit with that message.",
	scerr.CodeAmbiguousShortID:    "Commit id is ambiguous.",
	scerr.CodeIncorrectOperands:   "Incorrect operands.",
	scerr.CodeNoCommand:           "Please enter a command.",
}

// userMessage returns the single line shown for err.
func userMessage(err error) string {
	if msg, ok := messages[scerr.GetCode(err)]; ok {
		return msg
	}
	if strings.HasPrefix(err.Error(), "unknown command") {
		return "No command with that name exists."
	}
	return err.Error()
}

func newIncorrectOperandsError(cause error) error {
	return scerr.New(cliPkg, scerr.CodeIncorrectOperands, "args", "incorrect operands", cause)
}

func newNoCommandError() error {
	return scerr.New(cliPkg, scerr.CodeNoCommand, "run", "no command given", nil)
}

// operands reports argument count problems as incorrect operands.
func operands(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return newIncorrectOperandsError(err)
		}
		return nil
	}
}
