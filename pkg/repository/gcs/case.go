package gcs

import (
	"context"
	"encoding/json"
	"errors"
	"slices"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/cbrecommend/pkg/domain/interfaces"
	"github.com/secmon-lab/cbrecommend/pkg/domain/model"
	"github.com/secmon-lab/cbrecommend/pkg/utils/logging"
	"github.com/secmon-lab/cbrecommend/pkg/utils/safe"
)

type caseRepository struct {
	object *storage.ObjectHandle
}

var _ interfaces.CaseRepository = &caseRepository{}

func newCaseRepository(object *storage.ObjectHandle) *caseRepository {
	return &caseRepository{object: object}
}

func (r *caseRepository) location() string {
	return "gs://" + r.object.BucketName() + "/" + r.object.ObjectName()
}

func (r *caseRepository) List(ctx context.Context) ([]*model.Case, error) {
	reader, err := r.object.NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) || errors.Is(err, storage.ErrBucketNotExist) {
			return nil, goerr.Wrap(interfaces.ErrCorpusNotFound, "case base object not found",
				goerr.V("location", r.location()))
		}
		return nil, goerr.Wrap(err, "failed to open case base object", goerr.V("location", r.location()))
	}
	defer safe.Close(ctx, reader)

	cases := []*model.Case{}
	if err := json.NewDecoder(reader).Decode(&cases); err != nil {
		return nil, goerr.Wrap(err, "failed to decode case base object", goerr.V("location", r.location()))
	}
	if cases == nil {
		return []*model.Case{}, nil
	}
	return slices.DeleteFunc(cases, func(c *model.Case) bool { return c == nil }), nil
}

func (r *caseRepository) Put(ctx context.Context, cases []*model.Case) error {
	out := make([]*model.Case, 0, len(cases))
	for _, c := range cases {
		if c != nil {
			out = append(out, c)
		}
	}

	// canceling the context before Close discards a partial upload
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	w := r.object.NewWriter(ctx)
	w.ContentType = "application/json"

	if err := json.NewEncoder(w).Encode(out); err != nil {
		cancel()
		return goerr.Wrap(err, "failed to encode case base", goerr.V("location", r.location()))
	}
	if err := w.Close(); err != nil {
		return goerr.Wrap(err, "failed to write case base object", goerr.V("location", r.location()))
	}

	logging.From(ctx).Info("case base written to cloud storage",
		"location", r.location(), "cases", len(out))
	return nil
}
