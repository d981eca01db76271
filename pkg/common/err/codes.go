package err

// Generic codes.
const (
	CodeInvalidInput  = "INVALID_INPUT"
	CodeNotFound      = "NOT_FOUND"
	CodeAlreadyExists = "ALREADY_EXISTS"
	CodeInternal      = "INTERNAL"
	CodeValidation    = "VALIDATION"
	CodeConflict      = "CONFLICT"
	CodeInvalidFormat = "INVALID_FORMAT"
)

// Repository codes. The CLI maps each of these to a fixed line of output.
const (
	CodeRepositoryExists = "REPOSITORY_EXISTS"
	CodeNotARepository   = "NOT_A_REPOSITORY"

	CodeCorruptObject    = "CORRUPT_OBJECT"
	CodeNoSuchCommit     = "NO_SUCH_COMMIT"
	CodeAmbiguousShortID = "AMBIGUOUS_SHORT_ID"
	CodeNoMatchingCommit = "NO_MATCHING_COMMIT"
	CodeEmptyMessage     = "EMPTY_MESSAGE"

	CodeNoSuchBranch        = "NO_SUCH_BRANCH"
	CodeBranchExists        = "BRANCH_EXISTS"
	CodeInvalidBranchName   = "INVALID_BRANCH_NAME"
	CodeCannotDeleteCurrent = "CANNOT_DELETE_CURRENT"
	CodeAlreadyOnBranch     = "ALREADY_ON_BRANCH"

	CodeFileNotFound      = "FILE_NOT_FOUND"
	CodeFileNotInCommit   = "FILE_NOT_IN_COMMIT"
	CodeNothingToRemove   = "NOTHING_TO_REMOVE"
	CodeNothingStaged     = "NOTHING_STAGED"
	CodeUntrackedConflict = "UNTRACKED_FILE_CONFLICT"

	CodeUncommittedChanges = "UNCOMMITTED_CHANGES"
	CodeCannotMergeSelf    = "CANNOT_MERGE_SELF"
)

// Command-line codes.
const (
	CodeIncorrectOperands = "INCORRECT_OPERANDS"
	CodeNoCommand         = "NO_COMMAND"
)
