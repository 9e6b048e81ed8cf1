package iolexicon

import (
	"github.com/gnames/biolexica/internal/iofetch"
	"github.com/gnames/biolexica/internal/iofs"
	"github.com/gnames/biolexica/pkg/ent/literal"
	"github.com/gnames/gnfmt"
)

// ReadFile reads a lexicon TSV file, gzipped or not.
func ReadFile(path string) ([]literal.LiteralMapping, error) {
	var res []literal.LiteralMapping
	err := EachFile(path, func(lm literal.LiteralMapping) error {
		res = append(res, lm)
		return nil
	})
	return res, err
}

// EachFile streams records of a lexicon TSV file to fn.
func EachFile(path string, fn func(literal.LiteralMapping) error) error {
	f, err := iofetch.Open(path)
	if err != nil {
		return ReadError(path, err)
	}
	defer f.Close()

	if err = NewReader(f).Each(fn); err != nil {
		return ReadError(path, err)
	}
	return nil
}

// WriteFile writes records to a lexicon TSV file, gzipped if the path ends
// with .gz. The file appears only after all records are written.
func WriteFile(path string, lms []literal.LiteralMapping) error {
	f, err := iofs.CreateAtomic(path)
	if err != nil {
		return WriteError(path, err)
	}
	w := NewWriter(f)
	for _, lm := range lms {
		if err = w.Write(lm); err != nil {
			f.Abort()
			return WriteError(path, err)
		}
	}
	if err = w.Flush(); err != nil {
		f.Abort()
		return WriteError(path, err)
	}
	if err = f.Commit(); err != nil {
		return WriteError(path, err)
	}
	return nil
}

// WriteGildaFile writes records as Gilda terms, gzipped if the path ends
// with .gz.
func WriteGildaFile(path string, lms []literal.LiteralMapping) error {
	f, err := iofs.CreateAtomic(path)
	if err != nil {
		return WriteError(path, err)
	}
	if err = WriteGilda(f, lms); err != nil {
		f.Abort()
		return WriteError(path, err)
	}
	if err = f.Commit(); err != nil {
		return WriteError(path, err)
	}
	return nil
}

// WriteSummary writes a summary of records as indented JSON.
func WriteSummary(path string, s literal.Summary) error {
	enc := gnfmt.GNjson{Pretty: true}
	data, err := enc.Encode(s)
	if err != nil {
		return WriteError(path, err)
	}
	f, err := iofs.CreateAtomic(path)
	if err != nil {
		return WriteError(path, err)
	}
	if _, err = f.Write(append(data, '\n')); err != nil {
		f.Abort()
		return WriteError(path, err)
	}
	if err = f.Commit(); err != nil {
		return WriteError(path, err)
	}
	return nil
}
