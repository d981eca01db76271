package internal

import (
	"context"
	"errors"
	"fmt"
)

// ErrInvalidOperation is returned when an operation is malformed
var ErrInvalidOperation = errors.New("invalid operation")

// FileOperator is the file system seen by a transaction.
type FileOperator interface {
	// Read returns the file content and whether the file existed.
	Read(path string) ([]byte, bool, error)
	Write(path string, data []byte) error
	Delete(path string) error
}

// TransactionResult contains the outcome of an atomic transaction
type TransactionResult struct {
	Success           bool
	OperationsApplied int
	TotalOperations   int
	Err               error
}

func success(opsApplied, totalOps int) TransactionResult {
	return TransactionResult{Success: true, OperationsApplied: opsApplied, TotalOperations: totalOps}
}

func failure(opsApplied, totalOps int, err error) TransactionResult {
	return TransactionResult{OperationsApplied: opsApplied, TotalOperations: totalOps, Err: err}
}

// Execute applies ops in order with contents supplying the bytes of every
// write. Each touched file is backed up in memory first; if any operation
// fails, or ctx is cancelled, the files already changed are restored.
func Execute(ctx context.Context, fo FileOperator, ops []Operation, contents map[string][]byte) TransactionResult {
	if len(ops) == 0 {
		return success(0, 0)
	}
	if err := validateOperations(ops, contents); err != nil {
		return failure(0, len(ops), err)
	}

	backups := make([]Backup, 0, len(ops))
	applied := 0
	for _, op := range ops {
		if err := ctx.Err(); err != nil {
			rollback(fo, backups)
			return failure(applied, len(ops), err)
		}

		prev, existed, err := fo.Read(op.Path)
		if err != nil {
			rollback(fo, backups)
			return failure(applied, len(ops), fmt.Errorf("backup %s: %w", op.Path, err))
		}
		backups = append(backups, Backup{Path: op.Path, Content: prev, Existed: existed})

		if op.Action == ActionDelete {
			err = fo.Delete(op.Path)
		} else {
			err = fo.Write(op.Path, contents[op.Path])
		}
		if err != nil {
			msg := fmt.Sprintf("%s %s failed after %d operations", op.Action, op.Path, applied)
			if !rollback(fo, backups) {
				msg += " (rollback failed, working directory may be inconsistent)"
			}
			return failure(applied, len(ops), fmt.Errorf("%s: %w", msg, err))
		}
		applied++
	}
	return success(applied, len(ops))
}

func validateOperations(ops []Operation, contents map[string][]byte) error {
	seen := make(map[string]bool, len(ops))
	for i, op := range ops {
		if op.Path == "" {
			return fmt.Errorf("%w: operation %d has empty path", ErrInvalidOperation, i)
		}
		if seen[op.Path] {
			return fmt.Errorf("%w: duplicate operation on path %s", ErrInvalidOperation, op.Path)
		}
		seen[op.Path] = true

		switch op.Action {
		case ActionCreate, ActionModify:
			if _, ok := contents[op.Path]; !ok {
				return fmt.Errorf("%w: no content for %s %s", ErrInvalidOperation, op.Action, op.Path)
			}
		case ActionDelete:
		default:
			return fmt.Errorf("%w: operation %d has invalid action %d", ErrInvalidOperation, i, op.Action)
		}
	}
	return nil
}

// rollback restores backups in reverse order.
func rollback(fo FileOperator, backups []Backup) bool {
	ok := true
	for i := len(backups) - 1; i >= 0; i-- {
		b := backups[i]
		var err error
		if b.Existed {
			err = fo.Write(b.Path, b.Content)
		} else {
			err = fo.Delete(b.Path)
		}
		if err != nil {
			ok = false
		}
	}
	return ok
}
