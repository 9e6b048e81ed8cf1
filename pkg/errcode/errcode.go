// Package errcode enumerates error codes used by gn.Error values produced
// throughout biolexica.
package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError
	WriteFileError

	// Logging errors
	CreateLogFileError

	// Configuration errors
	ConfigurationReadError
	ConfigurationInvalidError
	UnknownProcessorError
	InvalidCurieError

	// Term source errors
	SourceUnavailableError
	SourceFormatError

	// Equivalence errors
	AmbiguousEquivalenceError
	EquivalenceChainError
	EquivalenceResolveError

	// Lexicon errors
	LexiconNotFoundError
	LexiconFetchError
	LexiconReadError
	LexiconWriteError

	// Database errors
	DBConnectionError
	DBNotConnectedError
	DBTableExistsCheckError
	SchemaGORMConnectionError
	SchemaMigrateError
	SchemaCollationError
	ExportError

	// Literature errors
	LiteratureSearchError
	LiteratureRetrieveError

	// Web service errors
	ServerError
)
