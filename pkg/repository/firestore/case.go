package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/cbrecommend/pkg/domain/interfaces"
	"github.com/secmon-lab/cbrecommend/pkg/domain/model"
	"github.com/secmon-lab/cbrecommend/pkg/domain/types"
	"github.com/secmon-lab/cbrecommend/pkg/utils/logging"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type caseRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

var _ interfaces.CaseRepository = &caseRepository{}

func newCaseRepository(client *firestore.Client) *caseRepository {
	return &caseRepository{
		client:           client,
		collectionPrefix: "",
	}
}

// caseDocument is the stored form of a case. Documents are keyed by position so
// that cases with empty or duplicated IDs survive a round trip.
type caseDocument struct {
	Seq             int                `firestore:"seq"`
	CaseID          string             `firestore:"case_id"`
	InteractionType string             `firestore:"interaction_type"`
	Scenario        string             `firestore:"scenario"`
	Behavior        map[string]int     `firestore:"behavior"`
	Context         map[string]int     `firestore:"context"`
	Solutions       []solutionDocument `firestore:"solutions"`
}

type solutionDocument struct {
	Category string `firestore:"category"`
	Type     string `firestore:"type"`
}

// corpusDocument marks that a corpus has been written
type corpusDocument struct {
	Count     int       `firestore:"count"`
	UpdatedAt time.Time `firestore:"updated_at"`
}

func (r *caseRepository) casesCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_cases"
	}
	return "cases"
}

func (r *caseRepository) metaCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_corpus"
	}
	return "corpus"
}

func (r *caseRepository) metaDoc() *firestore.DocumentRef {
	return r.client.Collection(r.metaCollection()).Doc("meta")
}

func docID(seq int) string {
	return fmt.Sprintf("%08d", seq)
}

func (r *caseRepository) List(ctx context.Context) ([]*model.Case, error) {
	if _, err := r.metaDoc().Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(interfaces.ErrCorpusNotFound, "corpus has not been imported",
				goerr.V("collection", r.casesCollection()))
		}
		return nil, goerr.Wrap(err, "failed to get corpus metadata")
	}

	iter := r.client.Collection(r.casesCollection()).OrderBy("seq", firestore.Asc).Documents(ctx)
	defer iter.Stop()

	cases := []*model.Case{}
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate cases")
		}

		var doc caseDocument
		if err := docSnap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode case", goerr.V("doc_id", docSnap.Ref.ID))
		}
		cases = append(cases, doc.toModel())
	}

	return cases, nil
}

// Put replaces the stored corpus. Existing case documents are deleted first and
// the corpus marker is written last.
func (r *caseRepository) Put(ctx context.Context, cases []*model.Case) error {
	if err := r.deleteAll(ctx); err != nil {
		return err
	}

	bw := r.client.BulkWriter(ctx)
	var jobs []*firestore.BulkWriterJob
	seq := 0
	for _, c := range cases {
		if c == nil {
			continue
		}
		ref := r.client.Collection(r.casesCollection()).Doc(docID(seq))
		job, err := bw.Set(ref, newCaseDocument(seq, c))
		if err != nil {
			bw.End()
			return goerr.Wrap(err, "failed to enqueue case", goerr.V("case_id", c.ID))
		}
		jobs = append(jobs, job)
		seq++
	}
	bw.End()

	for _, job := range jobs {
		if _, err := job.Results(); err != nil {
			return goerr.Wrap(err, "failed to write case")
		}
	}

	if _, err := r.metaDoc().Set(ctx, corpusDocument{Count: seq, UpdatedAt: time.Now().UTC()}); err != nil {
		return goerr.Wrap(err, "failed to write corpus metadata")
	}

	logging.From(ctx).Info("corpus written to firestore",
		"collection", r.casesCollection(), "cases", seq)
	return nil
}

func (r *caseRepository) deleteAll(ctx context.Context) error {
	iter := r.client.Collection(r.casesCollection()).Documents(ctx)
	defer iter.Stop()

	bw := r.client.BulkWriter(ctx)
	var jobs []*firestore.BulkWriterJob
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			bw.End()
			return goerr.Wrap(err, "failed to iterate cases")
		}
		job, err := bw.Delete(docSnap.Ref)
		if err != nil {
			bw.End()
			return goerr.Wrap(err, "failed to enqueue case deletion", goerr.V("doc_id", docSnap.Ref.ID))
		}
		jobs = append(jobs, job)
	}
	bw.End()

	for _, job := range jobs {
		if _, err := job.Results(); err != nil {
			return goerr.Wrap(err, "failed to delete case")
		}
	}
	return nil
}

func newCaseDocument(seq int, c *model.Case) *caseDocument {
	doc := &caseDocument{
		Seq:             seq,
		CaseID:          c.ID.String(),
		InteractionType: string(c.UserInfo.InteractionType),
		Scenario:        string(c.UserInfo.Scenario),
		Behavior:        toMap(c.Behavior),
		Context:         toMap(c.Context),
		Solutions:       make([]solutionDocument, 0, len(c.Solutions)),
	}
	for _, s := range c.Solutions {
		doc.Solutions = append(doc.Solutions, solutionDocument{
			Category: string(s.Category),
			Type:     s.Type,
		})
	}
	return doc
}

func (d *caseDocument) toModel() *model.Case {
	c := &model.Case{
		ID: types.CaseID(d.CaseID),
		UserInfo: model.UserInfo{
			InteractionType: types.InteractionType(d.InteractionType),
			Scenario:        types.Scenario(d.Scenario),
		},
		Behavior: fromMap(d.Behavior),
		Context:  fromMap(d.Context),
	}
	for _, s := range d.Solutions {
		c.Solutions = append(c.Solutions, model.Solution{
			Category: types.SolutionCategory(s.Category),
			Type:     s.Type,
		})
	}
	return c
}

func toMap(x model.Indicators) map[string]int {
	m := make(map[string]int, len(x))
	for k, v := range x {
		m[string(k)] = v
	}
	return m
}

func fromMap(m map[string]int) model.Indicators {
	x := make(model.Indicators, len(m))
	for k, v := range m {
		x[types.IndicatorCode(k)] = v
	}
	return x
}
