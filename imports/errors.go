package imports

import "errors"

var (
	// ErrMalformedImport is returned when a statement holds no quoted path literal.
	ErrMalformedImport = errors.New("malformed import: no quoted literal")
	// ErrUnsupportedImportSyntax is returned for a file-relative token whose leading
	// segment is not ".", ".." or "~".
	ErrUnsupportedImportSyntax = errors.New("unsupported import syntax")
	// ErrUnresolvedImport is returned when an implicit import matches neither a
	// directory nor a script file.
	ErrUnresolvedImport = errors.New("unresolved implicit import")
)
