package account

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// DefaultMongoCollection is the collection used when none is given.
const DefaultMongoCollection = "accounts"

// maxUpdateAttempts bounds the optimistic retry loop in MongoRepository.Update.
const maxUpdateAttempts = 3

type accountDocument struct {
	ID             string    `bson:"_id"`
	Identity       string    `bson:"identity"`
	CredentialHash []byte    `bson:"credential_hash"`
	OTPSecret      string    `bson:"otp_secret"`
	OTPActivated   bool      `bson:"otp_activated"`
	OTPVerified    bool      `bson:"otp_verified"`
	RecoveryCodes  []byte    `bson:"recovery_codes,omitempty"`
	IsActive       bool      `bson:"is_active"`
	IsStaff        bool      `bson:"is_staff"`
	IsSuperuser    bool      `bson:"is_superuser"`
	Version        int64     `bson:"version"`
	CreatedAt      time.Time `bson:"created_at"`
	UpdatedAt      time.Time `bson:"updated_at"`
}

func toDocument(a *Account) accountDocument {
	return accountDocument{
		ID:             a.ID.String(),
		Identity:       a.Identity,
		CredentialHash: a.CredentialHash,
		OTPSecret:      a.OTPSecret,
		OTPActivated:   a.OTPActivated,
		OTPVerified:    a.OTPVerified,
		RecoveryCodes:  a.RecoveryCodes,
		IsActive:       a.IsActive,
		IsStaff:        a.IsStaff,
		IsSuperuser:    a.IsSuperuser,
		Version:        a.Version,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

func (d accountDocument) toAccount() (*Account, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, err
	}
	return &Account{
		ID:             id,
		Identity:       d.Identity,
		CredentialHash: d.CredentialHash,
		OTPSecret:      d.OTPSecret,
		OTPActivated:   d.OTPActivated,
		OTPVerified:    d.OTPVerified,
		RecoveryCodes:  d.RecoveryCodes,
		IsActive:       d.IsActive,
		IsStaff:        d.IsStaff,
		IsSuperuser:    d.IsSuperuser,
		Version:        d.Version,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}, nil
}

// MongoRepository stores accounts as documents keyed by identity.
// Update uses optimistic concurrency on the version field and retries a
// bounded number of times before returning ErrConflict.
type MongoRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewMongoRepository(db *mongo.Database, collection string) *MongoRepository {
	if collection == "" {
		collection = DefaultMongoCollection
	}
	return &MongoRepository{coll: db.Collection(collection), now: time.Now}
}

// EnsureIndexes creates the unique identity index.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "identity", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("identity_unique"),
	})
	if err != nil {
		return errors.Join(ErrUnexpected, err)
	}
	return nil
}

func (r *MongoRepository) Create(ctx context.Context, a *Account) error {
	now := r.now().UTC()
	a.Version = 1
	a.CreatedAt, a.UpdatedAt = now, now

	if _, err := r.coll.InsertOne(ctx, toDocument(a)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrAlreadyExists
		}
		return errors.Join(ErrUnexpected, err)
	}
	return nil
}

func (r *MongoRepository) GetByIdentity(ctx context.Context, identity string) (*Account, error) {
	var doc accountDocument
	if err := r.coll.FindOne(ctx, bson.M{"identity": identity}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, errors.Join(ErrUnexpected, err)
	}

	a, err := doc.toAccount()
	if err != nil {
		return nil, errors.Join(ErrUnexpected, err)
	}
	return a, nil
}

func (r *MongoRepository) Update(ctx context.Context, identity string, fn UpdateFunc) (*Account, error) {
	for range maxUpdateAttempts {
		current, err := r.GetByIdentity(ctx, identity)
		if err != nil {
			return nil, err
		}

		next := current.Clone()
		if err := fn(next); err != nil {
			return nil, err
		}

		next.ID, next.Identity, next.CreatedAt = current.ID, current.Identity, current.CreatedAt
		next.Version = current.Version + 1
		next.UpdatedAt = r.now().UTC()

		res, err := r.coll.ReplaceOne(ctx,
			bson.M{"identity": identity, "version": current.Version},
			toDocument(next),
		)
		if err != nil {
			return nil, errors.Join(ErrUnexpected, err)
		}
		if res.MatchedCount == 1 {
			return next, nil
		}
	}
	return nil, ErrConflict
}
