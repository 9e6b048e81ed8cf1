package iolexicon

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/gnames/biolexica/internal/iofetch"
	"github.com/gnames/biolexica/pkg/config"
	"github.com/gnames/biolexica/pkg/ent/literal"
	"github.com/gnames/biolexica/pkg/grounder"
	"github.com/gnames/biolexica/pkg/lexconf"
	"github.com/gnames/gnfmt"
)

// Locate finds a local copy of a lexicon. The hint is a name of a
// predefined lexicon, a local path or a URL. Predefined lexica are taken
// from the configured lexica directory when they are present there, and
// are downloaded otherwise. Downloads are cached.
func Locate(
	ctx context.Context,
	cfg *config.Config,
	hint string,
	opts ...iofetch.Option,
) (string, error) {
	fetcher := iofetch.New(config.LexicaCacheDir(cfg.HomeDir), opts...)

	location := hint
	if lexconf.IsPredefined(hint) {
		if path := cfg.LexiconPath(hint); path != "" {
			if _, err := os.Stat(path); err == nil {
				return path, nil
			}
		}
		location = cfg.LexiconURL(hint)
	}

	path, err := fetcher.Local(ctx, location)
	switch {
	case err == nil:
		return path, nil
	case errors.Is(err, context.Canceled):
		return "", err
	case iofetch.IsURL(location):
		return "", FetchError(location, err)
	default:
		return "", NotFoundError(hint, err)
	}
}

// Load reads all records of a lexicon found by Locate.
func Load(
	ctx context.Context,
	cfg *config.Config,
	hint string,
	opts ...iofetch.Option,
) ([]literal.LiteralMapping, error) {
	path, err := Locate(ctx, cfg, hint, opts...)
	if err != nil {
		return nil, err
	}
	return ReadFile(path)
}

// LoadGrounder builds a grounder from a lexicon found by Locate.
func LoadGrounder(
	ctx context.Context,
	cfg *config.Config,
	hint string,
	opts ...iofetch.Option,
) (*grounder.Grounder, error) {
	start := time.Now()
	lms, err := Load(ctx, cfg, hint, opts...)
	if err != nil {
		return nil, err
	}
	res := grounder.New(lms)
	slog.Info("Grounder is ready",
		"lexicon", hint,
		"records", res.Size(),
		"keys", res.Keys(),
		"duration", gnfmt.TimeString(time.Since(start).Seconds()),
	)
	return res, nil
}

// LoadExtras reads SSSLM records from local files or URLs, in the given
// order. Downloads are cached by the fetcher. With skipFailed a location
// that cannot be read is logged and skipped.
func LoadExtras(
	ctx context.Context,
	fetcher *iofetch.Fetcher,
	locations []string,
	skipFailed bool,
) ([]literal.LiteralMapping, error) {
	var res []literal.LiteralMapping
	for _, loc := range locations {
		lms, err := loadExtra(ctx, fetcher, loc)
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		if err != nil {
			if !skipFailed {
				return nil, err
			}
			slog.Warn("Skipping extra records", "location", loc, "error", err)
			continue
		}
		slog.Info("Extra records loaded", "location", loc, "records", len(lms))
		res = append(res, lms...)
	}
	return res, nil
}

func loadExtra(
	ctx context.Context,
	fetcher *iofetch.Fetcher,
	loc string,
) ([]literal.LiteralMapping, error) {
	path, err := fetcher.Local(ctx, loc)
	switch {
	case errors.Is(err, context.Canceled):
		return nil, err
	case err != nil && iofetch.IsURL(loc):
		return nil, FetchError(loc, err)
	case err != nil:
		return nil, NotFoundError(loc, err)
	}
	return ReadFile(path)
}
