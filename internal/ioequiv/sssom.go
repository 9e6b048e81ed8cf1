package ioequiv

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/gnames/biolexica/internal/iofetch"
	"github.com/gnames/biolexica/pkg/ent/curie"
)

// row is a single mapping of an SSSOM file.
type row struct {
	subject    curie.Reference
	predicate  string
	object     curie.Reference
	confidence float64
}

// readRows reads an SSSOM TSV file. The metadata block (lines starting
// with #) is skipped. Rows without confidence get defaultConf, or 1 if
// it is not set. Rows with malformed CURIEs are skipped.
func readRows(path string, defaultConf float64) ([]row, error) {
	f, err := iofetch.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := parseRows(f, defaultConf)
	if err != nil {
		return nil, fmt.Errorf("cannot parse %s: %w", path, err)
	}
	return rows, nil
}

func parseRows(r io.Reader, defaultConf float64) ([]row, error) {
	if defaultConf <= 0 {
		defaultConf = 1
	}

	br := bufio.NewReader(r)
	for {
		b, err := br.Peek(1)
		if err != nil || b[0] != '#' {
			break
		}
		if _, err = br.ReadString('\n'); err != nil {
			break
		}
	}

	cr := csv.NewReader(br)
	cr.Comma = '\t'
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	idx := make(map[string]int, len(header))
	for i, v := range header {
		idx[strings.TrimSpace(v)] = i
	}
	for _, col := range []string{"subject_id", "object_id"} {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("column '%s' is missing", col)
		}
	}

	var res []row
	var skipped int
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		get := func(col string) string {
			i, ok := idx[col]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}

		subj, err1 := curie.Parse(get("subject_id"))
		obj, err2 := curie.Parse(get("object_id"))
		if err1 != nil || err2 != nil {
			skipped++
			continue
		}
		conf := defaultConf
		if s := get("confidence"); s != "" {
			if v, err := strconv.ParseFloat(s, 64); err == nil {
				conf = v
			}
		}
		pred := strings.ToLower(get("predicate_id"))
		if pred == "" {
			pred = exactMatch
		}
		res = append(res, row{
			subject:    subj,
			predicate:  pred,
			object:     obj,
			confidence: conf,
		})
	}
	if skipped > 0 {
		slog.Debug("Skipped mappings with malformed CURIEs", "count", skipped)
	}
	return res, nil
}
