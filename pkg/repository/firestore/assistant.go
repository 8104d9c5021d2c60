package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/campus-lab/coursepath/pkg/domain/model"
	"github.com/campus-lab/coursepath/pkg/utils/errutil"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// assistantDoc is the Firestore document representation of model.Assistant
type assistantDoc struct {
	AssistantID  string    `firestore:"AssistantID"`
	UniversityID string    `firestore:"UniversityID"`
	MajorID      string    `firestore:"MajorID"`
	CreatedAt    time.Time `firestore:"CreatedAt"`
}

func toAssistantDoc(a *model.Assistant) *assistantDoc {
	return &assistantDoc{
		AssistantID:  a.AssistantID,
		UniversityID: a.UniversityID,
		MajorID:      a.MajorID,
		CreatedAt:    a.CreatedAt,
	}
}

func fromAssistantDoc(d *assistantDoc) *model.Assistant {
	return &model.Assistant{
		AssistantID:  d.AssistantID,
		UniversityID: d.UniversityID,
		MajorID:      d.MajorID,
		CreatedAt:    d.CreatedAt,
	}
}

type assistantRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newAssistantRepository(client *firestore.Client) *assistantRepository {
	return &assistantRepository{client: client}
}

func (r *assistantRepository) assistantsCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_assistants"
	}
	return "assistants"
}

func (r *assistantRepository) Get(ctx context.Context, key string) (*model.Assistant, error) {
	doc, err := r.client.Collection(r.assistantsCollection()).Doc(key).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.New("assistant registration not found",
				goerr.T(errutil.TagNotFound),
				goerr.V("key", key),
			)
		}
		return nil, goerr.Wrap(err, "failed to get assistant registration",
			goerr.T(errutil.TagUpstream),
			goerr.V("key", key),
		)
	}

	var d assistantDoc
	if err := doc.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal assistant registration",
			goerr.V("key", key),
		)
	}

	return fromAssistantDoc(&d), nil
}

// CreateIfAbsent registers the assistant inside a transaction so that two
// processes racing on the first registration of a key observe the same
// winner. The loser's freshly provisioned assistant is for the caller to
// abandon.
func (r *assistantRepository) CreateIfAbsent(ctx context.Context, assistant *model.Assistant) (*model.Assistant, bool, error) {
	key := assistant.Key()
	docRef := r.client.Collection(r.assistantsCollection()).Doc(key)

	var stored *model.Assistant
	var created bool

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) != codes.NotFound {
				return goerr.Wrap(err, "failed to check assistant registration")
			}

			toStore := *assistant
			if toStore.CreatedAt.IsZero() {
				toStore.CreatedAt = time.Now().UTC()
			}
			stored = &toStore
			created = true
			return tx.Set(docRef, toAssistantDoc(&toStore))
		}

		var d assistantDoc
		if err := doc.DataTo(&d); err != nil {
			return goerr.Wrap(err, "failed to unmarshal assistant registration")
		}
		stored = fromAssistantDoc(&d)
		created = false
		return nil
	})
	if err != nil {
		return nil, false, goerr.Wrap(err, "failed to register assistant",
			goerr.T(errutil.TagUpstream),
			goerr.V("key", key),
		)
	}

	return stored, created, nil
}

func (r *assistantRepository) List(ctx context.Context) ([]*model.Assistant, error) {
	query := r.client.Collection(r.assistantsCollection()).
		OrderBy("CreatedAt", firestore.Desc)

	iter := query.Documents(ctx)
	defer iter.Stop()

	assistants := make([]*model.Assistant, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate assistant registrations",
				goerr.T(errutil.TagUpstream),
			)
		}

		var d assistantDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal assistant registration")
		}

		assistants = append(assistants, fromAssistantDoc(&d))
	}

	return assistants, nil
}
