package iotermsource

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/biolexica/pkg/assembler"
	"github.com/gnames/biolexica/pkg/ent/curie"
	"github.com/gnames/biolexica/pkg/ent/literal"
	"github.com/gnames/biolexica/pkg/lexconf"
	"github.com/gnames/biolexica/pkg/parserpool"
	"github.com/gnames/gnuuid"
	"github.com/sfborg/sflib"
	"golang.org/x/sync/errgroup"
	_ "modernc.org/sqlite"
)

// SFGA reads taxonomic names from Species File Group Archives.
type SFGA struct {
	cacheDir string
	pool     parserpool.Pool
	progress bool
}

// SFGAOption configures an SFGA term source.
type SFGAOption func(*SFGA)

// OptSFGAProgress shows a progress bar while taxa are read.
func OptSFGAProgress(b bool) SFGAOption {
	return func(s *SFGA) {
		s.progress = b
	}
}

// NewSFGA creates an SFGA term source. Archives are unpacked into
// cacheDir. The pool is required only for inputs that ask for canonical
// forms.
func NewSFGA(
	cacheDir string,
	pool parserpool.Pool,
	opts ...SFGAOption,
) *SFGA {
	res := &SFGA{cacheDir: cacheDir, pool: pool}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

type sfgaTaxon struct {
	id, parentID string
	name, auth   string
	code         string
}

// Fetch implements assembler.TermSource. Accepted taxa give labels,
// their synonyms give exact synonyms. Optionally vernacular names give
// alternative labels and canonical forms are added for names that differ
// from them.
func (s *SFGA) Fetch(
	ctx context.Context,
	inp lexconf.Input,
) ([]literal.LiteralMapping, error) {
	if inp.SFGA == nil || inp.SFGA.Location == "" {
		return nil, lexconf.InvalidError("sfga.location", "location is required")
	}
	if inp.SFGA.Canonical && s.pool == nil {
		return nil, lexconf.InvalidError("sfga.canonical",
			"canonical forms need a name parser")
	}

	dbPath, err := s.fetchArchive(inp)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, FormatError(inp, err)
	}
	defer db.Close()
	if err = db.PingContext(ctx); err != nil {
		return nil, FormatError(inp, err)
	}

	res, err := s.fromDB(ctx, db, inp)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, FormatError(inp, err)
	}
	return res, nil
}

func (s *SFGA) fetchArchive(inp lexconf.Input) (string, error) {
	loc := inp.SFGA.Location
	dir := filepath.Join(s.cacheDir, gnuuid.New(loc).String())
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", assembler.SourceUnavailableError(inp, err)
	}

	arc := sflib.NewSfga()
	if err := arc.Fetch(loc, dir); err != nil {
		return "", assembler.SourceUnavailableError(inp, err)
	}
	res := arc.DbPath()
	if res == "" {
		return "", assembler.SourceUnavailableError(inp,
			fmt.Errorf("no database after unpacking %s", loc))
	}
	return res, nil
}

func (s *SFGA) fromDB(
	ctx context.Context,
	db *sql.DB,
	inp lexconf.Input,
) ([]literal.LiteralMapping, error) {
	prefix := strings.ToLower(inp.SFGAPrefix())

	taxa, err := loadTaxa(ctx, db, s.progress)
	if err != nil {
		return nil, err
	}

	var keep map[string]struct{}
	if len(inp.Ancestors) > 0 {
		keep = taxonDescendants(taxa, prefix, inp.Ancestors)
	}

	accepted := make(map[string]sfgaTaxon, len(taxa))
	var res []literal.LiteralMapping
	for _, t := range taxa {
		if keep != nil {
			if _, ok := keep[t.id]; !ok {
				continue
			}
		}
		accepted[t.id] = t
		res = append(res, literal.LiteralMapping{
			Text:      t.name,
			Reference: curie.New(prefix, t.id),
			Name:      t.name,
			Predicate: literal.Label,
			Source:    prefix,
		})
	}

	syns, err := s.synonyms(ctx, db, prefix, accepted)
	if err != nil {
		return nil, err
	}
	res = append(res, syns...)

	if inp.SFGA != nil && inp.SFGA.Vernacular {
		vern, err := vernaculars(ctx, db, prefix, accepted)
		if err != nil {
			return nil, err
		}
		res = append(res, vern...)
	}

	if inp.SFGA != nil && inp.SFGA.Canonical {
		canon, err := s.canonicals(ctx, res, accepted)
		if err != nil {
			return nil, err
		}
		res = append(res, canon...)
	}

	slog.Info("SFGA archive read",
		"source", inp.Source,
		"taxa", humanize.Comma(int64(len(accepted))),
		"records", humanize.Comma(int64(len(res))),
	)
	return res, nil
}

func loadTaxa(
	ctx context.Context,
	db *sql.DB,
	progress bool,
) ([]sfgaTaxon, error) {
	var total int
	err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM taxon").Scan(&total)
	if err != nil {
		return nil, fmt.Errorf("cannot count taxa: %w", err)
	}

	q := `
		SELECT t.col__id, COALESCE(t.col__parent_id, ''),
		       n.col__scientific_name, COALESCE(n.col__authorship, ''),
		       COALESCE(n.col__code_id, '')
		FROM taxon t
		JOIN name n ON n.col__id = t.col__name_id
		ORDER BY t.col__id
	`
	rows, err := db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("cannot query taxa: %w", err)
	}
	defer rows.Close()

	var bar *pb.ProgressBar
	if progress {
		bar = pb.Full.Start(total)
		bar.Set("prefix", "Reading taxa: ")
		bar.Set(pb.CleanOnFinish, true)
		defer bar.Finish()
	}

	res := make([]sfgaTaxon, 0, total)
	for rows.Next() {
		var t sfgaTaxon
		err = rows.Scan(&t.id, &t.parentID, &t.name, &t.auth, &t.code)
		if err != nil {
			return nil, fmt.Errorf("cannot read taxon: %w", err)
		}
		if t.parentID == t.id {
			t.parentID = ""
		}
		res = append(res, t)
		if bar != nil {
			bar.Increment()
		}
	}
	return res, rows.Err()
}

// taxonDescendants walks col__parent_id links down from the ancestors.
func taxonDescendants(
	taxa []sfgaTaxon,
	prefix string,
	ancestors []curie.Reference,
) map[string]struct{} {
	children := make(map[string][]string)
	for _, t := range taxa {
		if t.parentID != "" {
			children[t.parentID] = append(children[t.parentID], t.id)
		}
	}

	res := make(map[string]struct{})
	var queue []string
	for _, v := range ancestors {
		if v.Prefix == prefix {
			queue = append(queue, v.Identifier)
		}
	}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if _, ok := res[id]; ok {
			continue
		}
		res[id] = struct{}{}
		queue = append(queue, children[id]...)
	}
	return res
}

func hasTable(ctx context.Context, db *sql.DB, table string) (bool, error) {
	var exists bool
	err := db.QueryRowContext(ctx, `
		SELECT COUNT(*) > 0 FROM sqlite_master
		WHERE type='table' AND name=?`, table).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("cannot check %s table: %w", table, err)
	}
	return exists, nil
}

func (s *SFGA) synonyms(
	ctx context.Context,
	db *sql.DB,
	prefix string,
	accepted map[string]sfgaTaxon,
) ([]literal.LiteralMapping, error) {
	ok, err := hasTable(ctx, db, "synonym")
	if err != nil || !ok {
		return nil, err
	}

	q := `
		SELECT s.col__taxon_id, n.col__scientific_name
		FROM synonym s
		JOIN name n ON n.col__id = s.col__name_id
		ORDER BY s.col__taxon_id, n.col__scientific_name
	`
	rows, err := db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("cannot query synonyms: %w", err)
	}
	defer rows.Close()

	var res []literal.LiteralMapping
	for rows.Next() {
		var taxonID, name string
		if err = rows.Scan(&taxonID, &name); err != nil {
			return nil, fmt.Errorf("cannot read synonym: %w", err)
		}
		t, ok := accepted[taxonID]
		if !ok {
			continue
		}
		res = append(res, literal.LiteralMapping{
			Text:      name,
			Reference: curie.New(prefix, taxonID),
			Name:      t.name,
			Predicate: literal.ExactSynonym,
			Source:    prefix,
		})
	}
	return res, rows.Err()
}

func vernaculars(
	ctx context.Context,
	db *sql.DB,
	prefix string,
	accepted map[string]sfgaTaxon,
) ([]literal.LiteralMapping, error) {
	ok, err := hasTable(ctx, db, "vernacular")
	if err != nil || !ok {
		return nil, err
	}

	q := `
		SELECT DISTINCT col__taxon_id, col__name, COALESCE(col__language, '')
		FROM vernacular
		ORDER BY col__taxon_id, col__name
	`
	rows, err := db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("cannot query vernacular names: %w", err)
	}
	defer rows.Close()

	var res []literal.LiteralMapping
	for rows.Next() {
		var taxonID, name, lang string
		if err = rows.Scan(&taxonID, &name, &lang); err != nil {
			return nil, fmt.Errorf("cannot read vernacular name: %w", err)
		}
		t, ok := accepted[taxonID]
		if !ok {
			continue
		}
		res = append(res, literal.LiteralMapping{
			Text:      name,
			Reference: curie.New(prefix, taxonID),
			Name:      t.name,
			Predicate: literal.AltLabel,
			Language:  lang,
			Source:    prefix,
		})
	}
	return res, rows.Err()
}

// canonicals parses scientific names of labels and synonyms in parallel
// and returns records for canonical forms that differ from the names.
func (s *SFGA) canonicals(
	ctx context.Context,
	lms []literal.LiteralMapping,
	accepted map[string]sfgaTaxon,
) ([]literal.LiteralMapping, error) {
	forms := make([]string, len(lms))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	const chunk = 10_000
	for start := 0; start < len(lms); start += chunk {
		end := min(start+chunk, len(lms))
		g.Go(func() error {
			for i := start; i < end; i++ {
				lm := lms[i]
				if lm.Predicate == literal.AltLabel {
					continue
				}
				name := lm.Text
				t := accepted[lm.Reference.Identifier]
				if lm.Predicate == literal.Label && t.auth != "" {
					name += " " + t.auth
				}
				forms[i] = s.pool.Canonical(name, parserpool.CodeFromID(t.code))
			}
			return ctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var res []literal.LiteralMapping
	for i, v := range forms {
		if v == "" || v == lms[i].Text {
			continue
		}
		lm := lms[i]
		lm.Text = v
		lm.Predicate = literal.ExactSynonym
		lm.Comment = "canonical form"
		res = append(res, lm)
	}
	return res, nil
}
