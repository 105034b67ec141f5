package config

import (
	"context"
	"log/slog"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/cbrecommend/pkg/domain/interfaces"
	"github.com/secmon-lab/cbrecommend/pkg/repository/file"
	"github.com/secmon-lab/cbrecommend/pkg/repository/firestore"
	"github.com/secmon-lab/cbrecommend/pkg/repository/gcs"
	"github.com/secmon-lab/cbrecommend/pkg/repository/memory"
	"github.com/secmon-lab/cbrecommend/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// DefaultCasePath is where the case base file is expected by default
const DefaultCasePath = "data/case_base.json"

// Repository holds CLI flags for the case base backend. The zero value describes
// the source corpus; NewDestinationRepository describes a second backend with
// "dest-" prefixed flags.
type Repository struct {
	flagPrefix string
	envPrefix  string

	backend          string
	path             string
	projectID        string
	databaseID       string
	collectionPrefix string
	bucket           string
	object           string
}

// NewDestinationRepository creates a config whose flags are prefixed with "dest-"
func NewDestinationRepository() *Repository {
	return &Repository{flagPrefix: "dest-", envPrefix: "DEST_"}
}

func (r *Repository) flagName(name string) string {
	return r.flagPrefix + name
}

func (r *Repository) envName(name string) string {
	return "CBRECOMMEND_" + r.envPrefix + strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
}

// Flags returns CLI flags for repository configuration
func (r *Repository) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        r.flagName("repository-backend"),
			Usage:       "Case base backend (file, firestore, gcs or memory)",
			Value:       "file",
			Sources:     cli.EnvVars(r.envName("repository-backend")),
			Destination: &r.backend,
		},
		&cli.StringFlag{
			Name:        r.flagName("case-path"),
			Usage:       "Case base JSON file or directory (file backend)",
			Value:       DefaultCasePath,
			Sources:     cli.EnvVars(r.envName("case-path")),
			Destination: &r.path,
		},
		&cli.StringFlag{
			Name:        r.flagName("firestore-project-id"),
			Usage:       "Firestore Project ID (required when using firestore backend)",
			Sources:     cli.EnvVars(r.envName("firestore-project-id")),
			Destination: &r.projectID,
		},
		&cli.StringFlag{
			Name:        r.flagName("firestore-database-id"),
			Usage:       "Firestore Database ID",
			Sources:     cli.EnvVars(r.envName("firestore-database-id")),
			Destination: &r.databaseID,
		},
		&cli.StringFlag{
			Name:        r.flagName("firestore-collection-prefix"),
			Usage:       "Prefix of the Firestore collections",
			Sources:     cli.EnvVars(r.envName("firestore-collection-prefix")),
			Destination: &r.collectionPrefix,
		},
		&cli.StringFlag{
			Name:        r.flagName("gcs-bucket"),
			Usage:       "Cloud Storage bucket (required when using gcs backend)",
			Sources:     cli.EnvVars(r.envName("gcs-bucket")),
			Destination: &r.bucket,
		},
		&cli.StringFlag{
			Name:        r.flagName("gcs-object"),
			Usage:       "Cloud Storage object holding the case base",
			Value:       "case_base.json",
			Sources:     cli.EnvVars(r.envName("gcs-object")),
			Destination: &r.object,
		},
	}
}

// Backend returns the configured backend type
func (r *Repository) Backend() string {
	return r.backend
}

// LogValue implements slog.LogValuer
func (r Repository) LogValue() slog.Value {
	attrs := []slog.Attr{slog.String("backend", r.backend)}
	switch r.backend {
	case "file":
		attrs = append(attrs, slog.String("path", r.path))
	case "firestore":
		attrs = append(attrs,
			slog.String("project_id", r.projectID),
			slog.String("database_id", r.databaseID),
			slog.String("collection_prefix", r.collectionPrefix),
		)
	case "gcs":
		attrs = append(attrs, slog.String("bucket", r.bucket), slog.String("object", r.object))
	}
	return slog.GroupValue(attrs...)
}

// Configure initializes and returns a repository based on the configured backend.
// The caller is responsible for calling Close() on the returned repository.
func (r *Repository) Configure(ctx context.Context) (interfaces.Repository, error) {
	switch r.backend {
	case "file":
		if r.path == "" {
			return nil, goerr.Wrap(ErrInvalidConfig, r.flagName("case-path")+" is required when using file backend")
		}
		logging.Default().Info("Using file repository", "path", r.path)
		return file.New(r.path), nil

	case "firestore":
		if r.projectID == "" {
			return nil, goerr.Wrap(ErrInvalidConfig, r.flagName("firestore-project-id")+" is required when using firestore backend")
		}
		var opts []firestore.Option
		if r.collectionPrefix != "" {
			opts = append(opts, firestore.WithCollectionPrefix(r.collectionPrefix))
		}
		repo, err := firestore.New(ctx, r.projectID, r.databaseID, opts...)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize firestore repository")
		}
		logging.Default().Info("Using Firestore repository",
			"project_id", r.projectID,
			"database_id", r.databaseID,
		)
		return repo, nil

	case "gcs":
		if r.bucket == "" {
			return nil, goerr.Wrap(ErrInvalidConfig, r.flagName("gcs-bucket")+" is required when using gcs backend")
		}
		repo, err := gcs.New(ctx, r.bucket, r.object)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize cloud storage repository")
		}
		logging.Default().Info("Using Cloud Storage repository", "bucket", r.bucket, "object", r.object)
		return repo, nil

	case "memory":
		logging.Default().Info("Using in-memory repository (development mode)")
		return memory.New(), nil

	default:
		return nil, goerr.Wrap(ErrInvalidBackend, "unknown backend", goerr.V(BackendKey, r.backend))
	}
}
