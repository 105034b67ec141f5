package gcs

import (
	"context"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/cbrecommend/pkg/domain/interfaces"
)

// GCS keeps the corpus as one JSON object in a Cloud Storage bucket
type GCS struct {
	client   *storage.Client
	caseRepo *caseRepository
}

var _ interfaces.Repository = &GCS{}

func New(ctx context.Context, bucket, object string) (*GCS, error) {
	if bucket == "" || object == "" {
		return nil, goerr.New("bucket and object are required",
			goerr.V("bucket", bucket), goerr.V("object", object))
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create storage client")
	}

	return &GCS{
		client:   client,
		caseRepo: newCaseRepository(client.Bucket(bucket).Object(object)),
	}, nil
}

func (g *GCS) Case() interfaces.CaseRepository {
	return g.caseRepo
}

func (g *GCS) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}
