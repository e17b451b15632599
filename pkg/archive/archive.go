// Package archive stores generated sequences in a local bolt database.
//
// Every call to Record is one run, identified by a random UUID.
// A run keeps its metadata and the sequences in the order they were generated.
package archive

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"slices"
	"time"

	"github.com/boltdb/bolt"
	uuid "github.com/satori/go.uuid"
	"go.llib.dev/frameless/pkg/errorkit"
	"go.llib.dev/frameless/pkg/logger"
	"go.llib.dev/frameless/pkg/logging"
	"go.llib.dev/frameless/port/option"
	"go.llib.dev/testcase/clock"

	"go.llib.dev/seqgen/pkg/seqkit"
)

const (
	ErrRunNotFound  errorkit.Error = "run not found"
	ErrInvalidRunID errorkit.Error = "invalid run id"
)

var (
	runsBucket      = []byte("runs")
	metaKey         = []byte("meta")
	sequencesBucket = []byte("sequences")
)

type RunID uuid.UUID

func NewRunID() RunID { return RunID(uuid.NewV4()) }

func ParseRunID(s string) (RunID, error) {
	id, err := uuid.FromString(s)
	if err != nil {
		return RunID{}, ErrInvalidRunID.Wrap(err)
	}
	return RunID(id), nil
}

func (id RunID) String() string { return uuid.UUID(id).String() }

func (id RunID) key() []byte { return uuid.UUID(id).Bytes() }

type Run struct {
	ID        RunID     `json:"-"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	Count     int       `json:"count"`
}

type Option interface {
	option.Option[Config]
}

type Config struct {
	// Timeout bounds the wait for the file lock of the database.
	// Zero waits forever.
	Timeout time.Duration
}

func WithTimeout(d time.Duration) Option {
	return option.Func[Config](func(c *Config) { c.Timeout = d })
}

type Archive struct {
	DB *bolt.DB
}

// Open opens the archive at path, creating it when it doesn't exist yet.
func Open(path string, opts ...Option) (*Archive, error) {
	c := option.ToConfig[Config](opts)
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: c.Timeout})
	if err != nil {
		return nil, err
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(runsBucket)
		return err
	}); err != nil {
		return nil, errorkit.Merge(err, db.Close())
	}
	return &Archive{DB: db}, nil
}

// Close the archive and release the file lock.
func (a *Archive) Close() error {
	return a.DB.Close()
}

// Record stores the sequences of it as a new run, in one transaction.
// At most limit sequences are stored, unless limit is zero or less.
func (a *Archive) Record(ctx context.Context, name string, it seqkit.Iterator[[]string], limit int) (RunID, int, error) {
	run := Run{
		ID:        NewRunID(),
		Name:      name,
		CreatedAt: clock.Now().UTC(),
	}
	logger.Info(ctx, "recording run",
		logging.Field("run_id", run.ID.String()),
		logging.Field("name", name),
		logging.Field("limit", limit))

	err := a.DB.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.Bucket(runsBucket).CreateBucket(run.ID.key())
		if err != nil {
			return err
		}
		seqs, err := bucket.CreateBucket(sequencesBucket)
		if err != nil {
			return err
		}
		for it.Init(); it.HasValue(); it.Next() {
			if 0 < limit && run.Count == limit {
				break
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			value, err := json.Marshal(it.Value())
			if err != nil {
				return err
			}
			if err := seqs.Put(ordinal(uint64(run.Count)), value); err != nil {
				return err
			}
			run.Count++
		}
		meta, err := json.Marshal(run)
		if err != nil {
			return err
		}
		return bucket.Put(metaKey, meta)
	})
	if err != nil {
		logger.Warn(ctx, "recording run failed",
			logging.Field("run_id", run.ID.String()),
			logging.ErrField(err))
		return RunID{}, 0, err
	}

	logger.Info(ctx, "run recorded",
		logging.Field("run_id", run.ID.String()),
		logging.Field("count", run.Count))
	return run.ID, run.Count, nil
}

// Runs lists the recorded runs, oldest first.
func (a *Archive) Runs(ctx context.Context) ([]Run, error) {
	var runs []Run
	err := a.DB.View(func(tx *bolt.Tx) error {
		return tx.Bucket(runsBucket).ForEach(func(k, v []byte) error {
			if v != nil {
				return nil
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			run, err := decodeRun(k, tx.Bucket(runsBucket).Bucket(k))
			if err != nil {
				return err
			}
			runs = append(runs, run)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(runs, func(a, b Run) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return runs, nil
}

func (a *Archive) Run(ctx context.Context, id RunID) (Run, error) {
	var run Run
	err := a.DB.View(func(tx *bolt.Tx) error {
		bucket, err := runBucket(tx, id)
		if err != nil {
			return err
		}
		run, err = decodeRun(id.key(), bucket)
		return err
	})
	return run, err
}

// Sequences returns the sequences of a run in the order they were recorded.
func (a *Archive) Sequences(ctx context.Context, id RunID) ([][]string, error) {
	var out [][]string
	err := a.DB.View(func(tx *bolt.Tx) error {
		bucket, err := runBucket(tx, id)
		if err != nil {
			return err
		}
		return bucket.Bucket(sequencesBucket).ForEach(func(_, v []byte) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			var seq []string
			if err := json.Unmarshal(v, &seq); err != nil {
				return err
			}
			out = append(out, seq)
			return nil
		})
	})
	return out, err
}

func runBucket(tx *bolt.Tx, id RunID) (*bolt.Bucket, error) {
	bucket := tx.Bucket(runsBucket).Bucket(id.key())
	if bucket == nil {
		return nil, ErrRunNotFound.F("%s", id)
	}
	return bucket, nil
}

func decodeRun(key []byte, bucket *bolt.Bucket) (Run, error) {
	var run Run
	if err := json.Unmarshal(bucket.Get(metaKey), &run); err != nil {
		return Run{}, err
	}
	id, err := uuid.FromBytes(key)
	if err != nil {
		return Run{}, ErrInvalidRunID.Wrap(err)
	}
	run.ID = RunID(id)
	return run, nil
}

// ordinal returns an 8-byte big endian representation of n,
// so the keys of a bucket sort in recording order.
func ordinal(n uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, n)
	return b
}
