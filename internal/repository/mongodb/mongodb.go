package mongodb

import (
	"context"
	"errors"
	"strings"

	"github.com/cmlabs-hris/hrms-lite-go/internal/pkg/database"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const duplicateKeyCode = 11000

// isDuplicateOn reports whether err is a duplicate key error raised by the named unique index.
func isDuplicateOn(err error, indexName string) bool {
	if !mongo.IsDuplicateKeyError(err) {
		return false
	}

	var writeErr mongo.WriteException
	if errors.As(err, &writeErr) {
		for _, we := range writeErr.WriteErrors {
			if we.Code == duplicateKeyCode && violatedIndex(we.Message) == indexName {
				return true
			}
		}
		return false
	}

	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		return violatedIndex(cmdErr.Message) == indexName
	}
	return violatedIndex(err.Error()) == indexName
}

// violatedIndex extracts the index name from an E11000 message such as
// "E11000 duplicate key error collection: db.employees index: employees_email_unique dup key: { ... }".
// Only the first "index: " is considered; the duplicated value follows it.
func violatedIndex(msg string) string {
	const marker = "index: "
	i := strings.Index(msg, marker)
	if i < 0 {
		return ""
	}
	rest := msg[i+len(marker):]
	if end := strings.IndexByte(rest, ' '); end >= 0 {
		rest = rest[:end]
	}
	return rest
}

func hexID(id primitive.ObjectID) string {
	return id.Hex()
}

type transactorImpl struct{}

// NewTransactor returns a Transactor for deployments without multi-document
// transactions: fn runs as-is and a failure after the first write leaves the
// earlier writes in place. Callers report that outcome as an error.
func NewTransactor() database.Transactor {
	return transactorImpl{}
}

func (transactorImpl) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
