// Package err is the shared error model for every gitlet package.
//
// Each package declares a pkgName constant and builds its failures with New,
// picking a code from codes.go:
//
//	return err.New(pkgName, err.CodeNoSuchBranch, "delete",
//	    fmt.Sprintf("branch %q does not exist", name), nil)
//
// Callers branch on the code, never on the message:
//
//	if err.IsCode(e, err.CodeNothingStaged) {
//	    ...
//	}
//
// errors.Is works as well, since two *Error values with the same code match:
//
//	errors.Is(e, err.Sentinel(err.CodeNothingStaged))
package err
