package file

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/cbrecommend/pkg/domain/interfaces"
	"github.com/secmon-lab/cbrecommend/pkg/domain/model"
	"github.com/secmon-lab/cbrecommend/pkg/utils/logging"
	"github.com/secmon-lab/cbrecommend/pkg/utils/safe"
	"golang.org/x/sync/errgroup"
)

const defaultMaxConcurrency = 8

type caseRepository struct {
	path           string
	maxConcurrency int
}

var _ interfaces.CaseRepository = &caseRepository{}

func newCaseRepository(path string) *caseRepository {
	return &caseRepository{
		path:           path,
		maxConcurrency: defaultMaxConcurrency,
	}
}

// List reads the corpus. A directory is read as the concatenation of its *.json
// files in lexical order.
func (r *caseRepository) List(ctx context.Context) ([]*model.Case, error) {
	info, err := os.Stat(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, goerr.Wrap(interfaces.ErrCorpusNotFound, "case base file not found", goerr.V("path", r.path))
		}
		return nil, goerr.Wrap(err, "failed to stat case base", goerr.V("path", r.path))
	}

	if !info.IsDir() {
		return readCaseFile(ctx, r.path)
	}
	return r.listDir(ctx)
}

func (r *caseRepository) listDir(ctx context.Context) ([]*model.Case, error) {
	entries, err := os.ReadDir(r.path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read case base directory", goerr.V("path", r.path))
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".json") {
			continue
		}
		files = append(files, filepath.Join(r.path, entry.Name()))
	}
	slices.Sort(files)

	if len(files) == 0 {
		return nil, goerr.Wrap(interfaces.ErrCorpusNotFound, "no case base file in directory", goerr.V("path", r.path))
	}

	results := make([][]*model.Case, len(files))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(r.maxConcurrency)

	for i, path := range files {
		eg.Go(func() error {
			cases, err := readCaseFile(ctx, path)
			if err != nil {
				return err
			}
			results[i] = cases
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	corpus := make([]*model.Case, 0)
	for _, cases := range results {
		corpus = append(corpus, cases...)
	}
	logging.From(ctx).Debug("case base directory loaded",
		"path", r.path, "files", len(files), "cases", len(corpus))
	return corpus, nil
}

func readCaseFile(ctx context.Context, path string) ([]*model.Case, error) {
	if err := ctx.Err(); err != nil {
		return nil, goerr.Wrap(err, "case base loading canceled", goerr.V("path", path))
	}

	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, goerr.Wrap(interfaces.ErrCorpusNotFound, "case base file not found", goerr.V("path", path))
		}
		return nil, goerr.Wrap(err, "failed to open case base file", goerr.V("path", path))
	}
	defer safe.Close(ctx, f)

	cases := []*model.Case{}
	if err := json.NewDecoder(f).Decode(&cases); err != nil {
		return nil, goerr.Wrap(err, "failed to decode case base file", goerr.V("path", path))
	}
	// a literal null decodes to a nil slice; it is still an empty corpus
	if cases == nil {
		return []*model.Case{}, nil
	}
	return slices.DeleteFunc(cases, func(c *model.Case) bool { return c == nil }), nil
}

// Put writes the corpus as a single indented JSON array. Parent directories are
// created when missing.
func (r *caseRepository) Put(ctx context.Context, cases []*model.Case) error {
	if info, err := os.Stat(r.path); err == nil && info.IsDir() {
		return goerr.New("case base path is a directory", goerr.V("path", r.path))
	}

	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return goerr.Wrap(err, "failed to create case base directory", goerr.V("path", r.path))
	}

	out := make([]*model.Case, 0, len(cases))
	for _, c := range cases {
		if c != nil {
			out = append(out, c)
		}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return goerr.Wrap(err, "failed to encode case base")
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return goerr.Wrap(err, "failed to create temporary case base file", goerr.V("path", r.path))
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		safe.Close(ctx, tmp)
		_ = os.Remove(tmpPath)
		return goerr.Wrap(err, "failed to write case base file", goerr.V("path", tmpPath))
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return goerr.Wrap(err, "failed to close case base file", goerr.V("path", tmpPath))
	}
	if err := os.Rename(tmpPath, r.path); err != nil {
		_ = os.Remove(tmpPath)
		return goerr.Wrap(err, "failed to replace case base file", goerr.V("path", r.path))
	}

	logging.From(ctx).Info("case base written", "path", r.path, "cases", len(out))
	return nil
}
